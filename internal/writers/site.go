// internal/writers/site.go
package writers

import (
	"encoding/json"
	"fmt"
	"io"

	"strscan/internal/common"
	"strscan/internal/jsonlutil"
	"strscan/internal/output"
	"strscan/internal/scan"
)

// StartSiteWriter spins up a writer goroutine for scan.Site rows and returns
// the input channel plus a one-shot error channel resolved when the input
// channel is closed and the output flushed.
//
// text streams unless sort is requested; json always buffers (single array);
// jsonl streams one object per line.
func StartSiteWriter(out io.Writer, format string, sort, header bool, bufSize int) (chan<- scan.Site, <-chan error) {
	if format == "jsonl" && !sort {
		return jsonlutil.Start[scan.Site](out, bufSize,
			func(enc *json.Encoder, s scan.Site) error {
				return enc.Encode(output.ToAPISite(s))
			},
			IsBrokenPipe,
		)
	}

	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan scan.Site, bufSize)
	errCh := make(chan error, 1)

	go func() {
		var err error
		switch format {
		case "json":
			var buf []scan.Site
			for s := range in {
				buf = append(buf, s)
			}
			if sort {
				common.SortSites(buf)
			}
			err = output.WriteJSON(out, buf)

		case "jsonl": // sorted jsonl buffers first
			var buf []scan.Site
			for s := range in {
				buf = append(buf, s)
			}
			common.SortSites(buf)
			enc := json.NewEncoder(out)
			for _, s := range buf {
				if err = enc.Encode(output.ToAPISite(s)); err != nil {
					break
				}
			}

		case "text":
			if sort {
				var buf []scan.Site
				for s := range in {
					buf = append(buf, s)
				}
				common.SortSites(buf)
				err = output.WriteText(out, buf, header)
			} else {
				err = output.StreamText(out, in, header)
			}

		default:
			err = fmt.Errorf("unsupported output %q", format)
		}
		// Drain so senders never block after a writer error.
		for range in {
		}
		errCh <- err
	}()

	return in, errCh
}
