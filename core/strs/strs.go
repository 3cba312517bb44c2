// core/strs/strs.go
package strs

import (
	"bytes"
	"fmt"
	"sync"
)

// STRs answers per-position short-tandem-repeat queries over a reference
// sequence: the period of the best repeating unit starting at a position and
// the number of consecutive copies of that unit around it.
//
// The unit at a position is determined by the sequence from that base
// onwards only. Copies of the same unit immediately upstream extend the
// repeat length but never change the unit choice. Periods and forward counts
// for every window position are computed in a single pass at construction
// (O(window × maxPeriod)); the backward extension is computed on demand and
// memoized.
//
// The scanner keeps a read-only reference to the caller's sequence and never
// copies or mutates it. A shared instance is safe for concurrent queries.
type STRs struct {
	seq       []byte
	start     int
	end       int
	maxPeriod int

	// Fixed at construction, one entry per window position.
	periods []int
	forward []int

	// Lazily resolved total repeat lengths; 0 means not yet computed
	// (any resolvable position has repeat length >= 1).
	mu      sync.Mutex
	repeats []int
}

// Of builds a scanner over seq answering queries for positions in the
// half-open window [start, end). Context outside the window (both before
// start and after end) still participates in repeat detection. maxPeriod
// bounds the unit lengths considered.
func Of(seq []byte, start, end, maxPeriod int) (*STRs, error) {
	if maxPeriod < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMaxPeriod, maxPeriod)
	}
	if start < 0 || start > end || end > len(seq) {
		return nil, fmt.Errorf("%w: [%d, %d) over sequence of length %d",
			ErrInvalidWindow, start, end, len(seq))
	}
	n := end - start
	s := &STRs{
		seq:       seq,
		start:     start,
		end:       end,
		maxPeriod: maxPeriod,
		periods:   make([]int, n),
		forward:   make([]int, n),
		repeats:   make([]int, n),
	}
	s.scanForward()
	return s, nil
}

// Start returns the first queryable position.
func (s *STRs) Start() int { return s.start }

// End returns one past the last queryable position.
func (s *STRs) End() int { return s.end }

// MaxPeriod returns the largest unit length considered.
func (s *STRs) MaxPeriod() int { return s.maxPeriod }

// Period returns the length of the best repeating unit starting at pos.
// Among candidate periods 1..maxPeriod the one with the greatest forward
// repeat count wins; ties go to the smaller period.
func (s *STRs) Period(pos int) (int, error) {
	if err := s.checkPosition(pos); err != nil {
		return 0, err
	}
	return s.periods[pos-s.start], nil
}

// ForwardRepeats returns the number of consecutive unit copies found
// scanning forward only from pos (the copy at pos itself counts as 1).
func (s *STRs) ForwardRepeats(pos int) (int, error) {
	if err := s.checkPosition(pos); err != nil {
		return 0, err
	}
	return s.forward[pos-s.start], nil
}

// RepeatLength returns the total number of consecutive unit copies around
// pos: the forward count plus additional copies of the same unit found
// scanning backward. The backward extension runs at most once per position.
func (s *STRs) RepeatLength(pos int) (int, error) {
	if err := s.checkPosition(pos); err != nil {
		return 0, err
	}
	i := pos - s.start
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.repeats[i] == 0 {
		s.repeats[i] = s.extendBackward(pos)
	}
	return s.repeats[i], nil
}

// RepeatUnit returns the repeating unit at pos as a view into the underlying
// sequence; callers must not modify it.
func (s *STRs) RepeatUnit(pos int) ([]byte, error) {
	if err := s.checkPosition(pos); err != nil {
		return nil, err
	}
	return s.seq[pos : pos+s.periods[pos-s.start]], nil
}

// RepeatUnitString returns the repeating unit at pos as a string.
func (s *STRs) RepeatUnitString(pos int) (string, error) {
	u, err := s.RepeatUnit(pos)
	if err != nil {
		return "", err
	}
	return string(u), nil
}

func (s *STRs) checkPosition(pos int) error {
	if pos < s.start || pos >= s.end {
		return fmt.Errorf("%w: %d not in [%d, %d)", ErrPositionOutOfWindow, pos, s.start, s.end)
	}
	return nil
}

// scanForward selects the best period and forward count for every window
// position. For each candidate period k a right-to-left pass carries
// run = length of the match between the suffixes at p and p+k, so that the
// forward count at p is 1 + run/k. Candidates are visited in ascending
// order and replace the incumbent only on a strictly greater count, which
// yields the tie-break toward smaller periods. A unit that does not fit the
// sequence (p+k > L) counts 0 and therefore never displaces period 1.
func (s *STRs) scanForward() {
	l := len(s.seq)
	for i := range s.periods {
		s.periods[i] = 1
	}
	for k := 1; k <= s.maxPeriod; k++ {
		run := 0
		for p := l - k; p >= s.start; p-- {
			if p+k < l {
				if s.seq[p] == s.seq[p+k] {
					run++
				} else {
					run = 0
				}
			}
			if p >= s.end {
				continue
			}
			i := p - s.start
			if count := 1 + run/k; count > s.forward[i] {
				s.periods[i] = k
				s.forward[i] = count
			}
		}
	}
}

// extendBackward adds copies of the unit at pos found immediately upstream,
// comparing each preceding non-overlapping block against the canonical unit
// until the first mismatch or the start of the sequence.
func (s *STRs) extendBackward(pos int) int {
	i := pos - s.start
	k := s.periods[i]
	count := s.forward[i]
	unit := s.seq[pos : pos+k]
	for off := pos - k; off >= 0; off -= k {
		if !bytes.Equal(s.seq[off:off+k], unit) {
			break
		}
		count++
	}
	return count
}
