// internal/common/sort.go
package common

import (
	"sort"

	"strscan/internal/scan"
)

// LessSite defines a stable order for sites (for --sort).
func LessSite(a, b scan.Site) bool {
	if a.SourceFile != b.SourceFile {
		return a.SourceFile < b.SourceFile
	}
	if a.SequenceID != b.SequenceID {
		return a.SequenceID < b.SequenceID
	}
	return a.Position < b.Position
}

func SortSites(sites []scan.Site) {
	sort.Slice(sites, func(i, j int) bool { return LessSite(sites[i], sites[j]) })
}
