// core/strs/strs_test.go
package strs

import (
	"errors"
	"math/rand"
	"sync"
	"testing"
)

// Fixture sequences exercising homopolymers, near-repeats, and long
// multi-period STR stretches.
var fixedSequences = []string{
	"TGATTTGCTCTGTCTGCTGCTGCTGCCTTCAGTAGGGTTGCACGCCTGGGCACGCCTGGAAT",
	"AGTATACTGAT",
	"GTCTATATATATTTTAATTAATTAATTAATTAAATATATTTTCTGCTGCCTTTTGGAT",
	"AAAAA",
	"A",
	"",
	"ACGTAGATCTGTAGCACTATCGAGC",
	"TACAACACAATACAATACAATACAATACAATACAAATACAAATACAATACAATACAATACAATACAATACAATACAATAT",
}

// bruteBestPeriodAndRepeat is the reference oracle: try every period,
// keep the one with the most forward repeats (ties to the smaller period),
// then re-count in both directions.
func bruteBestPeriodAndRepeat(seq string, pos, maxPeriod int) (period, repeat int) {
	period = 1
	best := bruteRepeats(seq, pos, 1, true)
	for k := 2; k <= maxPeriod; k++ {
		if c := bruteRepeats(seq, pos, k, true); c > best {
			period, best = k, c
		}
	}
	return period, bruteRepeats(seq, pos, period, false)
}

func bruteRepeats(seq string, pos, period int, forwardOnly bool) int {
	if pos+period > len(seq) {
		return 0
	}
	count := 1
forward:
	for off := pos + period; off <= len(seq)-period; off += period {
		for i := 0; i < period; i++ {
			if seq[off+i] != seq[pos+i] {
				break forward
			}
		}
		count++
	}
	if forwardOnly {
		return count
	}
backward:
	for off := pos - period; off >= 0; off -= period {
		for i := 0; i < period; i++ {
			if seq[off+i] != seq[pos+i] {
				break backward
			}
		}
		count++
	}
	return count
}

// randomSequences builds deterministic random DNA with STR runs injected at
// random positions, so that non-trivial periods actually occur.
func randomSequences(n int) []string {
	rng := rand.New(rand.NewSource(131))
	bases := []byte("ACGT")
	randBases := func(length int) []byte {
		out := make([]byte, length)
		for i := range out {
			out[i] = bases[rng.Intn(len(bases))]
		}
		return out
	}
	out := make([]string, n)
	for i := range out {
		length := rng.Intn(195) + 5
		seq := randBases(length)
		for pos := 0; pos < length; pos++ {
			if rng.Float64() >= 1.0/float64(length) {
				continue
			}
			unit := randBases(rng.Intn(10) + 1)
			copies := rng.Intn(10) + 2
			for r, off := 0, pos; r < copies && off < length-len(unit); r, off = r+1, off+len(unit) {
				copy(seq[off:], unit)
			}
		}
		out[i] = string(seq)
	}
	return out
}

func defaultMaxPeriod(seq string) int {
	if p := len(seq) / 4; p > 5 {
		return p
	}
	return 5
}

func assertAgainstOracle(t *testing.T, subject *STRs, seq string, maxPeriod, start, end int) {
	t.Helper()
	for pos := start; pos < end; pos++ {
		wantPeriod, wantRepeat := bruteBestPeriodAndRepeat(seq, pos, maxPeriod)
		gotPeriod, err := subject.Period(pos)
		if err != nil {
			t.Fatalf("Period(%d): %v", pos, err)
		}
		if gotPeriod != wantPeriod {
			t.Fatalf("pos %d of %q: period=%d, want %d", pos, seq, gotPeriod, wantPeriod)
		}
		gotRepeat, err := subject.RepeatLength(pos)
		if err != nil {
			t.Fatalf("RepeatLength(%d): %v", pos, err)
		}
		if gotRepeat != wantRepeat {
			t.Fatalf("pos %d of %q: repeat=%d, want %d", pos, seq, gotRepeat, wantRepeat)
		}
		wantUnit := seq[pos : pos+wantPeriod]
		if got, err := subject.RepeatUnitString(pos); err != nil || got != wantUnit {
			t.Fatalf("pos %d: unit=%q err=%v, want %q", pos, got, err, wantUnit)
		}
		if got, err := subject.RepeatUnit(pos); err != nil || string(got) != wantUnit {
			t.Fatalf("pos %d: unit bytes=%q err=%v, want %q", pos, got, err, wantUnit)
		}
		if fwd, err := subject.ForwardRepeats(pos); err != nil || fwd < 1 || fwd > gotRepeat {
			t.Fatalf("pos %d: forward=%d err=%v, want 1..%d", pos, fwd, err, gotRepeat)
		}
	}
}

func TestFullSequenceMatchesOracle(t *testing.T) {
	seqs := append(append([]string(nil), fixedSequences...), randomSequences(100)...)
	for _, seq := range seqs {
		maxPeriod := defaultMaxPeriod(seq)
		subject, err := Of([]byte(seq), 0, len(seq), maxPeriod)
		if err != nil {
			t.Fatalf("Of(%q): %v", seq, err)
		}
		assertAgainstOracle(t, subject, seq, maxPeriod, 0, len(seq))
	}
}

// A windowed scanner must give the same answers as a full scanner: context
// outside the window still counts.
func TestWindowedMatchesFullContext(t *testing.T) {
	seqs := append(append([]string(nil), fixedSequences...), randomSequences(10)...)
	for _, seq := range seqs {
		if len(seq) <= 7 {
			continue
		}
		maxPeriod := defaultMaxPeriod(seq)
		for start := 0; start <= 6; start++ {
			for end := 7; end < len(seq); end++ {
				subject, err := Of([]byte(seq), start, end, maxPeriod)
				if err != nil {
					t.Fatalf("Of(%q, %d, %d): %v", seq, start, end, err)
				}
				assertAgainstOracle(t, subject, seq, maxPeriod, start, end)
			}
		}
	}
}

func TestKnownScenarios(t *testing.T) {
	cases := []struct {
		seq       string
		maxPeriod int
		pos       int
		period    int
		repeats   int
		unit      string
	}{
		{"AAAAA", 5, 0, 1, 5, "A"},
		{"AAAAA", 5, 4, 1, 5, "A"},
		{"AGTATACTGAT", 5, 0, 1, 1, "A"},
		{"AGTATACTGAT", 5, 2, 2, 2, "TA"},
		// Regression fixture: long mixed-period STR stretch.
		{"TACAACACAATACAATACAATACAATACAATACAAATACAAATACAATACAATACAATACAATACAATACAATACAATAT", 20, 12, 5, 5, "CAATA"},
	}
	for _, c := range cases {
		subject, err := Of([]byte(c.seq), 0, len(c.seq), c.maxPeriod)
		if err != nil {
			t.Fatalf("Of(%q): %v", c.seq, err)
		}
		if wantPeriod, wantRepeat := bruteBestPeriodAndRepeat(c.seq, c.pos, c.maxPeriod); wantPeriod != c.period || wantRepeat != c.repeats {
			t.Fatalf("fixture drifted from oracle: (%d,%d) vs (%d,%d)", c.period, c.repeats, wantPeriod, wantRepeat)
		}
		if got, _ := subject.Period(c.pos); got != c.period {
			t.Errorf("%q pos %d: period=%d, want %d", c.seq, c.pos, got, c.period)
		}
		if got, _ := subject.RepeatLength(c.pos); got != c.repeats {
			t.Errorf("%q pos %d: repeats=%d, want %d", c.seq, c.pos, got, c.repeats)
		}
		if got, _ := subject.RepeatUnitString(c.pos); got != c.unit {
			t.Errorf("%q pos %d: unit=%q, want %q", c.seq, c.pos, got, c.unit)
		}
	}
}

// Repeated queries must return identical values, and the memoized second
// read must agree with the first.
func TestDeterminism(t *testing.T) {
	seq := []byte("GTCTATATATATTTTAATTAATTAATTAATTAAATATATTTTCTGCTGCCTTTTGGAT")
	subject, err := Of(seq, 0, len(seq), 15)
	if err != nil {
		t.Fatal(err)
	}
	for pos := 0; pos < len(seq); pos++ {
		first, _ := subject.RepeatLength(pos)
		second, _ := subject.RepeatLength(pos)
		if first != second {
			t.Fatalf("pos %d: %d then %d", pos, first, second)
		}
	}
}

func TestConstructionErrors(t *testing.T) {
	seq := []byte("ACGTACGT")
	cases := []struct {
		name             string
		start, end, maxP int
		want             error
	}{
		{"negative start", -1, 4, 5, ErrInvalidWindow},
		{"start past end", 5, 4, 5, ErrInvalidWindow},
		{"end past sequence", 0, 9, 5, ErrInvalidWindow},
		{"zero max period", 0, 8, 0, ErrInvalidMaxPeriod},
		{"negative max period", 0, 8, -3, ErrInvalidMaxPeriod},
	}
	for _, c := range cases {
		if _, err := Of(seq, c.start, c.end, c.maxP); !errors.Is(err, c.want) {
			t.Errorf("%s: err=%v, want %v", c.name, err, c.want)
		}
	}
}

func TestQueryOutOfWindow(t *testing.T) {
	seq := []byte("ACGTACGTACGT")
	subject, err := Of(seq, 2, 8, 4)
	if err != nil {
		t.Fatal(err)
	}
	for _, pos := range []int{-1, 0, 1, 8, 11, 100} {
		if _, err := subject.Period(pos); !errors.Is(err, ErrPositionOutOfWindow) {
			t.Errorf("Period(%d): err=%v, want ErrPositionOutOfWindow", pos, err)
		}
		if _, err := subject.RepeatLength(pos); !errors.Is(err, ErrPositionOutOfWindow) {
			t.Errorf("RepeatLength(%d): err=%v, want ErrPositionOutOfWindow", pos, err)
		}
		if _, err := subject.RepeatUnit(pos); !errors.Is(err, ErrPositionOutOfWindow) {
			t.Errorf("RepeatUnit(%d): err=%v, want ErrPositionOutOfWindow", pos, err)
		}
	}
}

// An empty sequence constructs an empty window; every query is out of range.
func TestEmptySequence(t *testing.T) {
	subject, err := Of(nil, 0, 0, 5)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := subject.Period(0); !errors.Is(err, ErrPositionOutOfWindow) {
		t.Fatalf("expected out-of-window error, got %v", err)
	}
}

// The unit is a view into the caller's buffer, not a copy.
func TestRepeatUnitIsView(t *testing.T) {
	seq := []byte("ACACACAC")
	subject, err := Of(seq, 0, len(seq), 4)
	if err != nil {
		t.Fatal(err)
	}
	unit, err := subject.RepeatUnit(0)
	if err != nil {
		t.Fatal(err)
	}
	if &unit[0] != &seq[0] {
		t.Error("expected RepeatUnit to alias the underlying sequence")
	}
}

// Concurrent first-resolution of the same positions must be safe.
func TestConcurrentRepeatLength(t *testing.T) {
	seqs := randomSequences(1)
	seq := seqs[0]
	subject, err := Of([]byte(seq), 0, len(seq), 10)
	if err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	got := make([][]int, 8)
	for g := range got {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			vals := make([]int, len(seq))
			for pos := 0; pos < len(seq); pos++ {
				v, err := subject.RepeatLength(pos)
				if err != nil {
					t.Errorf("pos %d: %v", pos, err)
					return
				}
				vals[pos] = v
			}
			got[g] = vals
		}(g)
	}
	wg.Wait()
	for g := 1; g < len(got); g++ {
		for pos := range got[g] {
			if got[g][pos] != got[0][pos] {
				t.Fatalf("goroutine %d pos %d: %d vs %d", g, pos, got[g][pos], got[0][pos])
			}
		}
	}
}
