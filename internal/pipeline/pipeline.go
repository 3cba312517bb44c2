// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"sync"

	"strscan-core/fasta"
	"strscan-core/strs"

	"strscan/internal/scan"
)

// Config controls the scanning pipeline.
type Config struct {
	Threads   int // number of worker goroutines (>=1)
	MaxPeriod int // largest repeat-unit length considered
	Start     int // per-record window start (clamped to record bounds)
	End       int // per-record window end; 0 = record length
}

// ForEachSite streams per-position STR sites to the caller via visit.
// It reads whole records from seqFiles, scans each with one strs.STRs per
// record, and emits one Site per window position. Records are scanned in
// parallel; sites within a record arrive in position order, but record
// order is not guaranteed (use --sort downstream for determinism).
// It returns the first error encountered (including context cancellation).
func ForEachSite(
	ctx context.Context,
	cfg Config,
	seqFiles []string,
	visit func(scan.Site) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}

	type job struct {
		rec        fasta.Record
		sourceFile string
	}
	type result struct {
		sites []scan.Site
		err   error
	}
	jobs := make(chan job, cfg.Threads*2)
	results := make(chan result, cfg.Threads*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-jobs:
					if !ok {
						return
					}
					sites, err := scanRecord(j.rec, j.sourceFile, cfg)
					select {
					case results <- result{sites: sites, err: err}:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector
	var (
		cerr error
		cwg  sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		for res := range results {
			if cerr != nil {
				continue
			}
			if res.err != nil {
				cerr = res.err
				continue
			}
			for _, s := range res.sites {
				if err := visit(s); err != nil && cerr == nil {
					cerr = err
				}
			}
		}
	}()

	// Feed work
feed:
	for _, fa := range seqFiles {
		rch, err := fasta.Records(ctx, fa)
		if err != nil {
			// Keep scanning other files; the collector owns cerr, so
			// open errors travel through results like any other.
			select {
			case results <- result{err: err}:
			case <-ctx.Done():
				break feed
			}
			continue
		}
		for rec := range rch {
			select {
			case <-ctx.Done():
				break feed
			case jobs <- job{rec: rec, sourceFile: fa}:
			}
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	return cerr
}

// scanRecord builds one scanner over the whole record and collects a Site
// for every window position. The window clamps to the record bounds, so
// short records simply yield fewer (or zero) sites.
func scanRecord(rec fasta.Record, sourceFile string, cfg Config) ([]scan.Site, error) {
	start, end := clampWindow(cfg.Start, cfg.End, len(rec.Seq))
	subject, err := strs.Of(rec.Seq, start, end, cfg.MaxPeriod)
	if err != nil {
		return nil, err
	}
	sites := make([]scan.Site, 0, end-start)
	for pos := start; pos < end; pos++ {
		period, err := subject.Period(pos)
		if err != nil {
			return nil, err
		}
		forward, err := subject.ForwardRepeats(pos)
		if err != nil {
			return nil, err
		}
		repeats, err := subject.RepeatLength(pos)
		if err != nil {
			return nil, err
		}
		unit, err := subject.RepeatUnitString(pos)
		if err != nil {
			return nil, err
		}
		sites = append(sites, scan.Site{
			SourceFile:     sourceFile,
			SequenceID:     rec.ID,
			Position:       pos,
			Period:         period,
			ForwardRepeats: forward,
			RepeatLength:   repeats,
			Unit:           unit,
		})
	}
	return sites, nil
}

func clampWindow(start, end, length int) (int, int) {
	if start < 0 {
		start = 0
	}
	if start > length {
		start = length
	}
	if end <= 0 || end > length {
		end = length
	}
	if end < start {
		end = start
	}
	return start, end
}
