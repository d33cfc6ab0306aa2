package widgets

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-klavier/note"
	"go-klavier/theme"
)

// Key geometry in terminal cells
const (
	DefaultWhiteWidth = 4
	DefaultKeyHeight  = 4
	blackKeyWidth     = 2
)

// keySpan is the horizontal extent [X0, X1) of one key
type keySpan struct {
	Note   note.Note
	X0, X1 int
	Black  bool
}

// Keyboard lays out a note range as terminal cells. White keys sit side
// by side; each black key straddles the boundary between its neighbours
// and covers the top rows only.
type Keyboard struct {
	keys       note.Range
	whiteWidth int
	height     int
	blackRows  int
	width      int

	spans   []keySpan
	whiteAt []int // column -> index into spans, -1 for none
	blackAt []int
}

// NewKeyboard lays out keys with the default geometry
func NewKeyboard(keys note.Range) *Keyboard {
	return NewKeyboardSize(keys, DefaultWhiteWidth, DefaultKeyHeight)
}

// NewKeyboardSize lays out keys with white keys whiteWidth cells wide and
// height rows tall. Black keys take the top half.
func NewKeyboardSize(keys note.Range, whiteWidth, height int) *Keyboard {
	if whiteWidth < 3 {
		whiteWidth = 3
	}
	if height < 2 {
		height = 2
	}
	kb := &Keyboard{
		keys:       keys,
		whiteWidth: whiteWidth,
		height:     height,
		blackRows:  (height + 1) / 2,
	}
	kb.layout()
	return kb
}

func (kb *Keyboard) layout() {
	notes := kb.keys.Notes()
	if len(notes) == 0 {
		return
	}

	offset := 0
	if notes[0].IsBlack() {
		offset = blackKeyWidth / 2
	}

	whites := 0
	for _, n := range notes {
		edge := offset + whites*kb.whiteWidth
		if n.IsBlack() {
			kb.spans = append(kb.spans, keySpan{Note: n, X0: edge - blackKeyWidth/2, X1: edge + blackKeyWidth/2, Black: true})
			continue
		}
		kb.spans = append(kb.spans, keySpan{Note: n, X0: edge, X1: edge + kb.whiteWidth})
		whites++
	}

	kb.width = offset + whites*kb.whiteWidth
	if notes[len(notes)-1].IsBlack() {
		kb.width += blackKeyWidth / 2
	}

	kb.whiteAt = make([]int, kb.width)
	kb.blackAt = make([]int, kb.width)
	for x := range kb.whiteAt {
		kb.whiteAt[x] = -1
		kb.blackAt[x] = -1
	}
	for i, s := range kb.spans {
		col := kb.whiteAt
		if s.Black {
			col = kb.blackAt
		}
		for x := s.X0; x < s.X1; x++ {
			col[x] = i
		}
	}
}

// Width returns the rendered width in cells
func (kb *Keyboard) Width() int {
	return kb.width
}

// Height returns the number of key rows
func (kb *Keyboard) Height() int {
	return kb.height
}

// Range returns the laid out notes
func (kb *Keyboard) Range() note.Range {
	return kb.keys
}

func (kb *Keyboard) spanAt(x, y int) (keySpan, bool) {
	if x < 0 || x >= kb.width || y < 0 || y >= kb.height {
		return keySpan{}, false
	}
	if y < kb.blackRows && kb.blackAt[x] >= 0 {
		return kb.spans[kb.blackAt[x]], true
	}
	if kb.whiteAt[x] >= 0 {
		return kb.spans[kb.whiteAt[x]], true
	}
	return keySpan{}, false
}

// HitTest returns the note drawn at cell (x, y), relative to the keyboard
func (kb *Keyboard) HitTest(x, y int) (note.Note, bool) {
	s, ok := kb.spanAt(x, y)
	return s.Note, ok
}

// NoteAt is HitTest for fractional surface coordinates
func (kb *Keyboard) NoteAt(x, y float64) (note.Note, bool) {
	return kb.HitTest(int(math.Floor(x)), int(math.Floor(y)))
}

// Render draws the keys, highlighting active notes
func (kb *Keyboard) Render(th *theme.Theme, active []note.Note) string {
	on := make(map[note.Note]bool, len(active))
	for _, n := range active {
		on[n] = true
	}

	lines := make([]string, 0, kb.height)
	for y := 0; y < kb.height; y++ {
		var line strings.Builder
		var run strings.Builder
		current, inRun := keySpan{}, false

		flush := func() {
			if run.Len() == 0 {
				return
			}
			if inRun {
				line.WriteString(th.KeyStyle(current.Black, on[current.Note]).Render(run.String()))
			} else {
				line.WriteString(run.String())
			}
			run.Reset()
		}

		for x := 0; x < kb.width; x++ {
			s, ok := kb.spanAt(x, y)
			if ok != inRun || s != current {
				flush()
				current, inRun = s, ok
			}
			switch {
			case !ok:
				run.WriteRune(' ')
			case !s.Black && x == s.X1-1:
				run.WriteRune(th.Symbols.KeyEdge)
			default:
				run.WriteRune(th.Symbols.KeyFill)
			}
		}
		flush()
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// Labels renders octave names under each C
func (kb *Keyboard) Labels(th *theme.Theme) string {
	row := []rune(strings.Repeat(" ", kb.width))
	for _, s := range kb.spans {
		if s.Black || int(s.Note)%note.OctaveLength != 0 {
			continue
		}
		for i, r := range s.Note.Name() {
			if s.X0+i < len(row) {
				row[s.X0+i] = r
			}
		}
	}
	return lipgloss.NewStyle().Foreground(th.Muted()).Render(string(row))
}
