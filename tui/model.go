package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-klavier/config"
	"go-klavier/debug"
	"go-klavier/input"
	"go-klavier/klavier"
	"go-klavier/ledger"
	"go-klavier/midi"
	"go-klavier/note"
	"go-klavier/theme"
	"go-klavier/widgets"
)

const leftMargin = 2

// layoutBounds holds cached layout info
type layoutBounds struct {
	keysTop  int
	keysLeft int
}

// hoverState tracks the key under a held pointer, to synthesize enter/leave
type hoverState struct {
	note note.Note
	on   bool
}

type Model struct {
	Klavier  *klavier.Klavier
	Bus      *input.Bus
	Keyboard *widgets.Keyboard
	Monitor  *midi.Monitor
	Theme    *theme.Theme
	Releaser *KeyReleaser

	cfg       *config.Config
	transpose int
	showHelp  bool
	quitting  bool
	bounds    *layoutBounds
	hover     *hoverState
}

// NewModel builds the keyboard described by cfg. In controlled mode the
// model owns the active notes and accepts every change the keyboard asks for.
func NewModel(cfg *config.Config, th *theme.Theme) (Model, error) {
	if err := cfg.Validate(); err != nil {
		return Model{}, err
	}
	km, err := cfg.ResolveKeyMap()
	if err != nil {
		return Model{}, err
	}

	bus := input.NewBus()
	kb := widgets.NewKeyboardSize(cfg.NoteRange, cfg.UI.WhiteKeyWidth, cfg.UI.KeyHeight)
	mon := midi.NewMonitor(cfg.Monitor.Channel, cfg.Monitor.Velocity, cfg.Monitor.Size)

	var k *klavier.Klavier
	kcfg := klavier.Config{
		NoteRange:          cfg.NoteRange,
		DefaultActiveNotes: cfg.DefaultActiveNotes,
		Mode:               ledger.Uncontrolled{},
		Interactive: klavier.Interactivity{
			Mouse:    cfg.Interactive.Mouse,
			Touch:    cfg.Interactive.Touch,
			Keyboard: cfg.Interactive.Keyboard,
		},
		KeyMap:    km,
		HitTester: kb,
		OnPress:   mon.NoteOn,
		OnRelease: mon.NoteOff,
	}
	if cfg.Controlled {
		kcfg.Mode = ledger.Controlled{Notes: cfg.DefaultActiveNotes}
		kcfg.OnChange = func(active []note.Note) {
			debug.Log("tui", "owner accepts %v", active)
			k.SetMode(ledger.Controlled{Notes: active})
		}
	}

	k, err = klavier.New(bus, kcfg)
	if err != nil {
		return Model{}, err
	}

	return Model{
		Klavier:   k,
		Bus:       bus,
		Keyboard:  kb,
		Monitor:   mon,
		Theme:     th,
		Releaser:  NewKeyReleaser(time.Duration(cfg.UI.KeyReleaseMs) * time.Millisecond),
		cfg:       cfg,
		transpose: cfg.Transpose,
		showHelp:  cfg.UI.ShowKeyMapHelp,
		bounds:    &layoutBounds{keysLeft: leftMargin},
		hover:     &hoverState{},
	}, nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			m.Klavier.Close()
			return m, tea.Quit

		case "up":
			m.transpose = m.shiftOctave(1)

		case "down":
			m.transpose = m.shiftOctave(-1)

		case "tab":
			m.showHelp = !m.showHelp

		case "ctrl+r":
			// panic button
			for _, n := range m.Klavier.ActiveNotes() {
				m.Klavier.Release(n)
			}

		default:
			key, mods, ok := keyEvent(msg)
			if !ok {
				return m, nil
			}
			m.Bus.Dispatch(input.KeyEvent(input.KeyDown, key, mods))
			// modified keys never play, so they get no synthesized key-up
			if m.Releaser != nil && !mods.Any() {
				m.Releaser.Touch(key)
			}
		}

	case KeyUpMsg:
		m.Bus.Dispatch(input.KeyEvent(input.KeyUp, msg.Key, input.Modifiers{}))

	case tea.MouseMsg:
		m.handleMouse(msg)
	}

	return m, nil
}

// keyEvent converts a terminal key press into a physical key identity.
// Uppercase letters arrive without a separate shift flag.
func keyEvent(msg tea.KeyMsg) (string, input.Modifiers, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return "", input.Modifiers{}, false
	}
	r := msg.Runes[0]
	mods := input.Modifiers{Alt: msg.Alt}
	if unicode.IsUpper(r) {
		mods.Shift = true
		r = unicode.ToLower(r)
	}
	return string(r), mods, true
}

// shiftOctave moves the computer keymap and returns the new transposition
func (m Model) shiftOctave(dir int) int {
	next := m.transpose + dir*note.OctaveLength
	km, err := m.cfg.ResolveKeyMap()
	if err != nil {
		return m.transpose
	}
	km = km.Transpose(next - m.cfg.Transpose)
	if len(km) == 0 {
		return m.transpose
	}
	m.Klavier.SetKeyMap(km)
	return next
}

func (m Model) noteAt(x, y int) (note.Note, bool) {
	return m.Keyboard.HitTest(x-m.bounds.keysLeft, y-m.bounds.keysTop)
}

func (m Model) handleMouse(msg tea.MouseMsg) {
	n, onKey := m.noteAt(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		m.hover.note, m.hover.on = n, onKey
		if onKey {
			m.Bus.Dispatch(input.OnKey(input.PointerDown, n))
		}

	case tea.MouseActionMotion:
		m.moveHover(n, onKey)

	case tea.MouseActionRelease:
		m.moveHover(n, onKey)
		if onKey {
			m.Bus.Dispatch(input.OnKey(input.PointerUp, n))
		}
		m.Bus.Dispatch(input.Event{Kind: input.GlobalPointerUp})
	}
}

func (m Model) moveHover(n note.Note, onKey bool) {
	if onKey == m.hover.on && (!onKey || n == m.hover.note) {
		return
	}
	if m.hover.on {
		m.Bus.Dispatch(input.OnKey(input.PointerLeave, m.hover.note))
	}
	if onKey {
		m.Bus.Dispatch(input.OnKey(input.PointerEnter, n))
	}
	m.hover.note, m.hover.on = n, onKey
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	fgStyle := lipgloss.NewStyle().Foreground(m.Theme.FG())

	mode := "uncontrolled"
	if m.Klavier.Controlled() {
		mode = "controlled"
	}
	r := m.Klavier.Range()
	octave := ""
	if km := m.Klavier.KeyMap(); len(km) > 0 {
		octave = km[0].Note.Name()
	}
	header := headerStyle.Render(fmt.Sprintf("go-klavier  %s-%s  %s  keys:%s@%s",
		r.First.Name(), r.Last.Name(), mode, m.cfg.KeyMap, octave))

	active := m.Klavier.ActiveNotes()
	margin := strings.Repeat(" ", m.bounds.keysLeft)
	keys := indent(m.Keyboard.Render(m.Theme, active), margin)
	labels := margin + m.Keyboard.Labels(m.Theme)

	// Compute layout bounds: blank line, header, blank line
	m.bounds.keysTop = 1 + lipgloss.Height(header) + 1

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(keys)
	out.WriteString("\n")
	out.WriteString(labels)
	out.WriteString("\n\n")
	out.WriteString(fgStyle.Render("active  "))
	out.WriteString(widgets.RenderNoteList(m.Theme, active))
	out.WriteString("\n\n")

	for _, e := range m.Monitor.Recent() {
		out.WriteString(dimStyle.Render(e.String()))
		out.WriteString("\n")
	}

	help := dimStyle.Render("keys/mouse:play  up/down:octave  tab:keymap  ctrl+r:release all  esc:quit")
	out.WriteString("\n")
	out.WriteString(help)

	if m.showHelp {
		sec := widgets.KeyMapSection("keymap", m.Klavier.KeyMap(), r)
		out.WriteString("\n\n")
		out.WriteString(dimStyle.Render(widgets.RenderKeyHelp([]widgets.KeySection{sec})))
	}

	return out.String()
}

func indent(block, margin string) string {
	lines := strings.Split(block, "\n")
	for i, l := range lines {
		lines[i] = margin + l
	}
	return strings.Join(lines, "\n")
}
