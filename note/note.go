package note

import (
	"fmt"

	"github.com/pkg/errors"
)

// Note is a MIDI note number (C4 = 60)
type Note int

const (
	Min          Note = 0
	Max          Note = 127
	C0           Note = 12
	OctaveLength      = 12
)

// KeyColor identifies the colour of a piano key
type KeyColor string

const (
	White KeyColor = "white"
	Black KeyColor = "black"
)

// black key template for a single octave, starting at C
var blackInOctave = [OctaveLength]bool{
	false, true, false, true, false,
	false, true, false, true, false, true, false,
}

var names = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// IsValid reports whether x is a legal MIDI note number
func IsValid(x int) bool {
	return x >= int(Min) && x <= int(Max)
}

// Valid reports whether n is within 0-127
func (n Note) Valid() bool {
	return IsValid(int(n))
}

// IsBlack reports whether n is a black key. Panics if n is not valid.
func (n Note) IsBlack() bool {
	n.mustBeValid()
	return blackInOctave[int(n)%OctaveLength]
}

// IsWhite reports whether n is a white key. Panics if n is not valid.
func (n Note) IsWhite() bool {
	return !n.IsBlack()
}

// Color returns the key colour. Panics if n is not valid.
func (n Note) Color() KeyColor {
	if n.IsBlack() {
		return Black
	}
	return White
}

// Octave returns the scientific pitch octave (60 -> 4)
func (n Note) Octave() int {
	d := int(n - C0)
	if d < 0 {
		return (d - OctaveLength + 1) / OctaveLength
	}
	return d / OctaveLength
}

// Name returns a readable name, e.g. "C4" or "F#3"
func (n Note) Name() string {
	if !n.Valid() {
		return fmt.Sprintf("?%d", int(n))
	}
	return fmt.Sprintf("%s%d", names[int(n)%OctaveLength], n.Octave())
}

func (n Note) String() string {
	return n.Name()
}

func (n Note) mustBeValid() {
	if !n.Valid() {
		panic(fmt.Sprintf("note: expected a valid midi number 0-127, received %d", int(n)))
	}
}

// Info describes a key derived from a note number
type Info struct {
	Note   Note
	Color  KeyColor
	Octave int
}

// Describe returns the derived attributes of n, or an error if n is not a valid note
func Describe(n Note) (Info, error) {
	if !n.Valid() {
		return Info{}, errors.Errorf("describe: expected a valid midi number 0-127, received %d", int(n))
	}
	return Info{
		Note:   n,
		Color:  n.Color(),
		Octave: n.Octave(),
	}, nil
}
