package keymap

import (
	"sort"

	"github.com/pkg/errors"

	"go-klavier/note"
)

// Entry pairs a computer key with a note
type Entry struct {
	Key  string    `json:"key"`
	Note note.Note `json:"note"`
}

// KeyMap is an ordered list of entries. The first entry for a key wins.
type KeyMap []Entry

// Lookup returns the note bound to key
func (m KeyMap) Lookup(key string) (note.Note, bool) {
	if key == "" {
		return 0, false
	}
	for _, e := range m {
		if e.Key == key {
			return e.Note, true
		}
	}
	return 0, false
}

// KeysFor returns every key bound to n, in map order
func (m KeyMap) KeysFor(n note.Note) []string {
	var keys []string
	for _, e := range m {
		if e.Note == n && e.Key != "" {
			keys = append(keys, e.Key)
		}
	}
	return keys
}

// Transpose returns a copy with every note shifted by semitones.
// Entries that would leave 0-127 are dropped.
func (m KeyMap) Transpose(semitones int) KeyMap {
	out := make(KeyMap, 0, len(m))
	for _, e := range m {
		n := e.Note + note.Note(semitones)
		if !n.Valid() {
			continue
		}
		out = append(out, Entry{Key: e.Key, Note: n})
	}
	return out
}

// TopRow maps the qwerty row (naturals) and the digit row (accidentals)
// from C4
var TopRow = KeyMap{
	{"q", 60}, {"2", 61}, {"w", 62}, {"3", 63}, {"e", 64},
	{"r", 65}, {"5", 66}, {"t", 67}, {"6", 68}, {"y", 69}, {"7", 70}, {"u", 71},
	{"i", 72}, {"9", 73}, {"o", 74}, {"0", 75}, {"p", 76},
	{"[", 77}, {"=", 78}, {"]", 79},
}

// BottomRow maps zxcv (naturals) and asdf (accidentals) from C3
var BottomRow = KeyMap{
	{"z", 48}, {"s", 49}, {"x", 50}, {"d", 51}, {"c", 52},
	{"v", 53}, {"g", 54}, {"b", 55}, {"h", 56}, {"n", 57}, {"j", 58}, {"m", 59},
	{",", 60},
}

// Default is the two-row layout
var Default = append(append(KeyMap{}, TopRow...), BottomRow...)

// HomeRow follows piano fingering on the home row from C4:
// naturals on asdf..., accidentals on the row above.
var HomeRow = KeyMap{
	{"a", 60}, {"w", 61}, {"s", 62}, {"e", 63}, {"d", 64},
	{"f", 65}, {"t", 66}, {"g", 67}, {"y", 68}, {"h", 69}, {"u", 70}, {"j", 71},
	{"k", 72}, {"o", 73}, {"l", 74}, {"p", 75}, {";", 76}, {"'", 77},
}

var named = map[string]KeyMap{
	"default":  Default,
	"top-row":  TopRow,
	"home-row": HomeRow,
}

// ByName returns a built-in keymap
func ByName(name string) (KeyMap, error) {
	m, ok := named[name]
	if !ok {
		return nil, errors.Errorf("unknown keymap %q (available: %v)", name, Names())
	}
	return m, nil
}

// Names lists the built-in keymaps
func Names() []string {
	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
