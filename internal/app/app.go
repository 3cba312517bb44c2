// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"

	"github.com/rs/zerolog"

	"strscan/internal/cli"
	"strscan/internal/logging"
	"strscan/internal/pipeline"
	"strscan/internal/scan"
	"strscan/internal/version"
	"strscan/internal/writers"
)

// RunContext executes the batch scanner CLI. Exit codes: 0 ok, 2 usage or
// validation error, 3 runtime error, 130 canceled.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("strscan")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		fs.SetOutput(outw)
		fs.Usage()
		if err := outw.Flush(); writers.IsBrokenPipe(err) {
			return 0
		} else if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		return 0
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			if e := outw.Flush(); writers.IsBrokenPipe(e) {
				return 0
			} else if e != nil {
				_, _ = fmt.Fprintln(stderr, e)
				return 3
			}
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "strscan version %s\n", version.Version)
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	log := logging.New(logging.Options{
		Level:     opts.LogLevel,
		Format:    opts.LogFormat,
		Component: "strscan",
		Writer:    stderr,
	})
	if opts.Quiet {
		log = log.Level(zerolog.ErrorLevel)
	}

	thr := opts.Threads
	if thr <= 0 {
		thr = runtime.NumCPU()
	}

	inCh, writeErr := writers.StartSiteWriter(outw, opts.Output, opts.Sort, opts.Header, thr*4)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	total := 0
	perr := pipeline.ForEachSite(ctx,
		pipeline.Config{
			Threads:   thr,
			MaxPeriod: opts.MaxPeriod,
			Start:     opts.Start,
			End:       opts.End,
		},
		opts.SeqFiles,
		func(s scan.Site) error {
			select {
			case inCh <- s:
				total++
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	)

	close(inCh)

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return 0
	} else if werr != nil {
		log.Error().Err(werr).Msg("write failed")
		return 3
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		log.Error().Err(e).Msg("flush failed")
		return 3
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return 130
		}
		log.Error().Err(perr).Msg("scan failed")
		return 3
	}
	if total == 0 {
		log.Warn().Msg("no positions scanned (empty inputs or window)")
	}
	return 0
}

// Run executes the CLI with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
