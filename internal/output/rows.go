// internal/output/rows.go
package output

import (
	"fmt"

	"strscan/internal/scan"
)

// TSVHeader is the column header for text output.
const TSVHeader = "source_file\tsequence_id\tposition\tperiod\tforward_repeats\trepeat_length\tunit"

// FormatSiteRowTSV returns the 7 base columns (no trailing newline).
func FormatSiteRowTSV(s scan.Site) string {
	return fmt.Sprintf("%s\t%s\t%d\t%d\t%d\t%d\t%s",
		s.SourceFile, s.SequenceID,
		s.Position, s.Period, s.ForwardRepeats, s.RepeatLength,
		s.Unit,
	)
}
