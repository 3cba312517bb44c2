// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"strscan/internal/version"
)

// Options holds all CLI flags and arguments for the batch scanner.
type Options struct {
	// Input
	SeqFiles []string

	// Scan parameters
	MaxPeriod int
	Start     int
	End       int

	// Performance
	Threads int

	// Output
	Output string
	Sort   bool
	Header bool // true unless --no-header
	Quiet  bool

	// Logging
	LogLevel  string
	LogFormat string

	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: per-position short tandem repeat scanner

For every position of the input reference sequences, reports the period of
the best repeating unit starting there and the number of consecutive copies
of that unit around it.

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	// Input
	var seq stringSlice
	fs.Var(&seq, "sequences", "FASTA file(s) (repeatable or '-') [*]")

	// Scan parameters
	fs.IntVar(&opt.MaxPeriod, "max-period", 8, "maximum repeat-unit length considered [8]")
	fs.IntVar(&opt.Start, "start", 0, "per-record window start (0-based, clamped) [0]")
	fs.IntVar(&opt.End, "end", 0, "per-record window end, half-open (0 = record length) [0]")

	// Performance
	fs.IntVar(&opt.Threads, "threads", 0, "number of worker threads (0 = all CPUs) [0]")

	// Output
	fs.StringVar(&opt.Output, "output", "text", "output format: text | json | jsonl [text]")
	fs.BoolVar(&opt.Sort, "sort", false, "sort outputs for determinism (SourceFile,SequenceID,Position) [false]")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in text/TSV [false]")
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress warnings [false]")

	// Logging
	fs.StringVar(&opt.LogLevel, "log-level", "info", "log level: trace|debug|info|warn|error [info]")
	fs.StringVar(&opt.LogFormat, "log-format", "console", "log format: console | json [console]")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.SeqFiles = seq
	opt.Header = !noHeader

	// Validation
	if len(opt.SeqFiles) == 0 {
		return opt, errors.New("at least one --sequences file is required")
	}
	if opt.MaxPeriod < 1 {
		return opt, errors.New("--max-period must be ≥ 1")
	}
	if opt.Start < 0 {
		return opt, errors.New("--start must be ≥ 0")
	}
	if opt.End < 0 {
		return opt, errors.New("--end must be ≥ 0")
	}
	if opt.End > 0 && opt.End <= opt.Start {
		return opt, errors.New("--end must be greater than --start (or 0 for record length)")
	}
	if opt.Threads < 0 {
		return opt, errors.New("--threads must be ≥ 0")
	}
	if opt.Output != "text" && opt.Output != "json" && opt.Output != "jsonl" {
		return opt, fmt.Errorf("invalid --output %q", opt.Output)
	}
	return opt, nil
}

// stringSlice allows repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string     { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }
