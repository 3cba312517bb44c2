// internal/servercli/options.go
package servercli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"strscan/internal/version"
)

// Options holds all flags for the STR query service.
type Options struct {
	SeqFiles    []string
	MaxPeriod   int
	Listen      string
	CORSOrigins []string
	LogLevel    string
	LogFormat   string
	Version     bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: HTTP query service for per-position short tandem repeats

Loads reference FASTA files at startup, scans them once, and serves
period / repeat-length lookups per reference position.

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

	var seq stringSlice
	fs.Var(&seq, "sequences", "reference FASTA file(s) (repeatable) [*]")
	fs.IntVar(&opt.MaxPeriod, "max-period", 8, "maximum repeat-unit length considered [8]")
	fs.StringVar(&opt.Listen, "listen", ":8080", "listen address [:8080]")
	var origins stringSlice
	fs.Var(&origins, "cors-origins", "allowed CORS origin (repeatable; default '*')")
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
	opt.CORSOrigins = origins
	if len(opt.CORSOrigins) == 0 {
		opt.CORSOrigins = []string{"*"}
	}

	if len(opt.SeqFiles) == 0 {
		return opt, errors.New("at least one --sequences file is required")
	}
	if opt.MaxPeriod < 1 {
		return opt, errors.New("--max-period must be ≥ 1")
	}
	if opt.Listen == "" {
		return opt, errors.New("--listen must not be empty")
	}
	return opt, nil
}

// stringSlice allows repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string     { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }
