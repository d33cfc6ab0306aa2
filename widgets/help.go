package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-klavier/keymap"
	"go-klavier/note"
	"go-klavier/theme"
)

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeyMapSection lists the playable bindings of km within keys, in map order
func KeyMapSection(title string, km keymap.KeyMap, keys note.Range) KeySection {
	sec := KeySection{Title: title}
	seen := map[string]bool{}
	for _, e := range km {
		if e.Key == "" || seen[e.Key] || !keys.Contains(e.Note) {
			continue
		}
		seen[e.Key] = true
		sec.Keys = append(sec.Keys, KeyBinding{Key: e.Key, Desc: e.Note.Name()})
	}
	return sec
}

// RenderNoteList renders active notes as highlighted chips, in press order
func RenderNoteList(th *theme.Theme, notes []note.Note) string {
	if len(notes) == 0 {
		return lipgloss.NewStyle().Foreground(th.Muted()).Render("-")
	}
	chip := lipgloss.NewStyle().
		Foreground(th.BlackKey()).
		Background(th.Active()).
		Padding(0, 1)

	parts := make([]string, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, chip.Render(n.Name()))
	}
	return strings.Join(parts, " ")
}
