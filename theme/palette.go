package theme

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type RGB [3]uint8

type Palette struct {
	Name   string
	Colors []RGB
}

// LoadGPL reads a GIMP .gpl palette file
func LoadGPL(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open palette")
	}
	defer f.Close()

	p, err := ParseGPL(f)
	if err != nil {
		return nil, errors.Wrapf(err, "palette %s", path)
	}
	return p, nil
}

// ParseGPL reads GIMP palette text. The file must start with the
// "GIMP Palette" magic line; each colour line is "R G B [label]" with
// components 0-255. Malformed colour lines are errors, not skipped.
func ParseGPL(r io.Reader) (*Palette, error) {
	p := &Palette{}
	sc := bufio.NewScanner(r)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())

		if lineNo == 1 {
			if line != gplMagic {
				return nil, errors.Errorf("line 1: expected %q header", gplMagic)
			}
			continue
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if key, val, ok := strings.Cut(line, ":"); ok && !startsWithDigit(key) {
			if key == "Name" {
				p.Name = strings.TrimSpace(val)
			}
			continue
		}

		c, err := parseRGB(strings.Fields(line))
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
		p.Colors = append(p.Colors, c)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read")
	}
	if lineNo == 0 {
		return nil, errors.New("empty palette")
	}
	if len(p.Colors) == 0 {
		return nil, errors.New("no colors")
	}
	return p, nil
}

const gplMagic = "GIMP Palette"

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

func parseRGB(fields []string) (RGB, error) {
	var c RGB
	if len(fields) < 3 {
		return c, errors.Errorf("want R G B, got %d fields", len(fields))
	}
	for i := range c {
		v, err := strconv.ParseUint(fields[i], 10, 8)
		if err != nil {
			return c, errors.Wrapf(err, "component %d", i)
		}
		c[i] = uint8(v)
	}
	return c, nil
}

// Default is the built-in keyboard palette, dark to light
func Default() *Palette {
	return &Palette{
		Name: "ivory",
		Colors: []RGB{
			{20, 18, 24},    // black keys
			{58, 52, 66},    // edges
			{120, 110, 128}, // labels
			{168, 130, 190},
			{200, 120, 170}, // accent
			{232, 150, 96},
			{240, 110, 90}, // pressed
			{236, 196, 92},
			{246, 226, 180},
			{252, 248, 236}, // white keys
		},
	}
}

// Load reads a GIMP palette, or returns Default for an empty path
func Load(path string) (*Palette, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadGPL(path)
}

// Lookup returns interpolated color for normalized value 0-1
func (p *Palette) Lookup(norm float64) RGB {
	if norm <= 0 {
		return p.Colors[0]
	}
	if norm >= 1 {
		return p.Colors[len(p.Colors)-1]
	}

	// Find the two colors to interpolate between
	pos := norm * float64(len(p.Colors)-1)
	i := int(pos)
	frac := pos - float64(i)

	c0 := p.Colors[i]
	c1 := p.Colors[i+1]

	return RGB{
		lerp(c0[0], c1[0], frac),
		lerp(c0[1], c1[1], frac),
		lerp(c0[2], c1[2], frac),
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a)*(1-t) + float64(b)*t)
}

// Index returns color at specific index (no interpolation)
func (p *Palette) Index(i int) RGB {
	if i < 0 {
		return p.Colors[0]
	}
	if i >= len(p.Colors) {
		return p.Colors[len(p.Colors)-1]
	}
	return p.Colors[i]
}
