// core/fasta/record.go
package fasta

import "bytes"

// Record is one parsed FASTA sequence.
type Record struct {
	ID  string
	Seq []byte
}

func parseHeaderID(hdr []byte) string {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i])
	}
	return string(hdr)
}
