package note

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidRange is returned when a range bound is not a valid note
	ErrInvalidRange = errors.New("note range must be within valid MIDI numbers (0-127)")
	// ErrInvalidRangeOrder is returned when the last note is not above the first
	ErrInvalidRangeOrder = errors.New("the last note must be greater than the first")
)

// Range is a closed [First, Last] span of playable notes
type Range struct {
	First Note `json:"first"`
	Last  Note `json:"last"`
}

// DefaultRange is the 88-key piano, A0 to C8
var DefaultRange = Range{First: 21, Last: 108}

// ValidateRange checks both bounds and their order.
// Called once at configuration time, never per event.
func ValidateRange(r Range) error {
	if !r.First.Valid() || !r.Last.Valid() {
		return errors.Wrapf(ErrInvalidRange, "received range: [%d, %d]", int(r.First), int(r.Last))
	}
	if r.First >= r.Last {
		return errors.Wrapf(ErrInvalidRangeOrder, "received range: [%d, %d]", int(r.First), int(r.Last))
	}
	return nil
}

// Contains reports whether n lies within the range (inclusive)
func (r Range) Contains(n Note) bool {
	return n >= r.First && n <= r.Last
}

// Len returns the number of keys in the range
func (r Range) Len() int {
	return int(r.Last-r.First) + 1
}

// Notes lists every note in the range, lowest first
func (r Range) Notes() []Note {
	if r.Last < r.First {
		return nil
	}
	out := make([]Note, 0, r.Len())
	for n := r.First; n <= r.Last; n++ {
		out = append(out, n)
	}
	return out
}
