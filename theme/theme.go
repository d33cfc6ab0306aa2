package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	KeyEdge rune // │ gap between white keys
	KeyFill rune // inside a key
}

func New(palette *Palette) *Theme {
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			KeyEdge: '│',
			KeyFill: ' ',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBlackKey = 0.0 // near black
	RoleMuted    = 0.2 // key edges, help text
	RoleFG       = 0.4 // labels
	RoleAccent   = 0.5 // header
	RoleActive   = 0.7 // pressed key
	RoleWarning  = 0.8 // errors
	RoleWhiteKey = 1.0 // ivory
)

// Style helpers

func (t *Theme) FG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleFG))
}

func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleAccent))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Active() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleActive))
}

func (t *Theme) Warning() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleWarning))
}

func (t *Theme) WhiteKey() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleWhiteKey))
}

func (t *Theme) BlackKey() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleBlackKey))
}

// KeyStyle returns the style for a key given its colour and state
func (t *Theme) KeyStyle(black, active bool) lipgloss.Style {
	s := lipgloss.NewStyle()
	switch {
	case active:
		return s.Background(t.Active()).Foreground(t.BlackKey())
	case black:
		return s.Background(t.BlackKey()).Foreground(t.Muted())
	default:
		return s.Background(t.WhiteKey()).Foreground(t.Muted())
	}
}

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
