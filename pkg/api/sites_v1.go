// pkg/api/sites_v1.go
package api

// SiteV1 is the stable JSON/JSONL schema for per-position STR sites.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type SiteV1 struct {
	SequenceID     string `json:"sequence_id"`
	Position       int    `json:"position"`
	Period         int    `json:"period"`
	ForwardRepeats int    `json:"forward_repeats"`
	RepeatLength   int    `json:"repeat_length"`
	Unit           string `json:"unit"`
	SourceFile     string `json:"source_file,omitempty"`
}
