// internal/server/index.go
package server

import (
	"context"
	"fmt"
	"sort"

	"strscan-core/fasta"
	"strscan-core/strs"
)

// Reference is one loaded reference sequence with its scanner. The scanner
// covers the full sequence, so any position can be queried; backward
// extensions resolve lazily on first request and are memoized.
type Reference struct {
	ID         string
	SourceFile string
	Seq        []byte
	STRs       *strs.STRs
}

// Index holds all loaded references keyed by record ID. It is built once at
// startup and read-only afterwards, so handlers share it without locking.
type Index struct {
	maxPeriod int
	refs      map[string]*Reference
	ids       []string
}

// LoadIndex reads every record from the given FASTA files and builds one
// full-window scanner per record. Duplicate record IDs across files are
// rejected: lookups would be ambiguous.
func LoadIndex(ctx context.Context, seqFiles []string, maxPeriod int) (*Index, error) {
	idx := &Index{maxPeriod: maxPeriod, refs: make(map[string]*Reference)}
	for _, path := range seqFiles {
		err := fasta.StreamPathCtx(ctx, path, func(rec fasta.Record) error {
			if _, dup := idx.refs[rec.ID]; dup {
				return fmt.Errorf("duplicate reference id %q (second occurrence in %s)", rec.ID, path)
			}
			subject, err := strs.Of(rec.Seq, 0, len(rec.Seq), maxPeriod)
			if err != nil {
				return fmt.Errorf("%s: %w", rec.ID, err)
			}
			idx.refs[rec.ID] = &Reference{
				ID:         rec.ID,
				SourceFile: path,
				Seq:        rec.Seq,
				STRs:       subject,
			}
			idx.ids = append(idx.ids, rec.ID)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	if len(idx.refs) == 0 {
		return nil, fmt.Errorf("no reference records found in %v", seqFiles)
	}
	sort.Strings(idx.ids)
	return idx, nil
}

// MaxPeriod returns the unit-length bound the index was built with.
func (x *Index) MaxPeriod() int { return x.maxPeriod }

// IDs returns all reference IDs in sorted order.
func (x *Index) IDs() []string { return x.ids }

// Get returns the reference for id, or nil.
func (x *Index) Get(id string) *Reference { return x.refs[id] }
