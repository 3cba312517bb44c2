// internal/output/text.go
package output

import (
	"fmt"
	"io"

	"strscan/internal/scan"
)

// WriteText prints one TSV line per site from a buffered slice.
func WriteText(w io.Writer, list []scan.Site, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for _, s := range list {
		if _, err := fmt.Fprintln(w, FormatSiteRowTSV(s)); err != nil {
			return err
		}
	}
	return nil
}

// StreamText prints one TSV line per site as they arrive.
func StreamText(w io.Writer, in <-chan scan.Site, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for s := range in {
		if _, err := fmt.Fprintln(w, FormatSiteRowTSV(s)); err != nil {
			return err
		}
	}
	return nil
}
