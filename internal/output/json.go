// internal/output/json.go
package output

import (
	"io"

	"strscan/internal/jsonutil"
	"strscan/internal/scan"
	"strscan/pkg/api"
)

// ToAPISite converts a domain Site to the stable wire schema (v1).
func ToAPISite(s scan.Site) api.SiteV1 {
	return api.SiteV1{
		SequenceID:     s.SequenceID,
		Position:       s.Position,
		Period:         s.Period,
		ForwardRepeats: s.ForwardRepeats,
		RepeatLength:   s.RepeatLength,
		Unit:           s.Unit,
		SourceFile:     s.SourceFile,
	}
}

func toAPISites(list []scan.Site) []api.SiteV1 {
	out := make([]api.SiteV1, 0, len(list))
	for _, s := range list {
		out = append(out, ToAPISite(s))
	}
	return out
}

// WriteJSON writes a single JSON array of v1 sites (pretty-indented).
func WriteJSON(w io.Writer, list []scan.Site) error {
	return jsonutil.EncodePretty(w, toAPISites(list))
}
