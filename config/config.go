package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"go-klavier/keymap"
	"go-klavier/note"
)

// InteractiveConfig switches each input channel
type InteractiveConfig struct {
	Mouse    bool `json:"mouse"`
	Touch    bool `json:"touch"`
	Keyboard bool `json:"keyboard"`
}

// MonitorConfig controls the note message monitor
type MonitorConfig struct {
	Channel  uint8 `json:"channel"`
	Velocity uint8 `json:"velocity"`
	Size     int   `json:"size"`
}

// UIConfig stores UI preferences
type UIConfig struct {
	Palette        string `json:"palette,omitempty"` // GIMP .gpl path, empty = built-in
	WhiteKeyWidth  int    `json:"whiteKeyWidth,omitempty"`
	KeyHeight      int    `json:"keyHeight,omitempty"`
	KeyReleaseMs   int    `json:"keyReleaseMs,omitempty"` // terminals report no key-up
	ShowKeyMapHelp bool   `json:"showKeyMapHelp"`
}

// Config is the main configuration structure
type Config struct {
	NoteRange          note.Range        `json:"noteRange"`
	DefaultActiveNotes []note.Note       `json:"defaultActiveNotes,omitempty"`
	KeyMap             string            `json:"keyMap"`
	Transpose          int               `json:"transpose,omitempty"`
	Interactive        InteractiveConfig `json:"interactive"`
	Controlled         bool              `json:"controlled,omitempty"`
	Monitor            MonitorConfig     `json:"monitor"`
	UI                 UIConfig          `json:"ui"`
	Debug              bool              `json:"debug,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		NoteRange: note.Range{First: 48, Last: 84},
		KeyMap:    "default",
		Interactive: InteractiveConfig{
			Mouse:    true,
			Touch:    true,
			Keyboard: true,
		},
		Monitor: MonitorConfig{
			Channel:  0,
			Velocity: 100,
			Size:     8,
		},
		UI: UIConfig{
			WhiteKeyWidth:  4,
			KeyHeight:      4,
			KeyReleaseMs:   500,
			ShowKeyMapHelp: false,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-klavier"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. Missing fields keep their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrap(err, "read config")
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}

	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path, creating its directory
func (c *Config) SaveFile(path string) error {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks the note range and keymap name
func (c *Config) Validate() error {
	if err := note.ValidateRange(c.NoteRange); err != nil {
		return err
	}
	if _, err := keymap.ByName(c.KeyMap); err != nil {
		return err
	}
	for _, n := range c.DefaultActiveNotes {
		if !n.Valid() {
			return errors.Errorf("default active note %d is not a valid midi number", int(n))
		}
	}
	return nil
}

// ResolveKeyMap returns the named keymap shifted by Transpose
func (c *Config) ResolveKeyMap() (keymap.KeyMap, error) {
	km, err := keymap.ByName(c.KeyMap)
	if err != nil {
		return nil, err
	}
	if c.Transpose != 0 {
		km = km.Transpose(c.Transpose)
	}
	return km, nil
}
