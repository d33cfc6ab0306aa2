package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"go-klavier/config"
	"go-klavier/debug"
	"go-klavier/note"
	"go-klavier/theme"
	"go-klavier/tui"
)

type playFlags struct {
	configPath  string
	first, last int
	active      []int
	keyMap      string
	transpose   int
	controlled  bool
	noMouse     bool
	noTouch     bool
	noKeyboard  bool
	palette     string
	debug       bool
	save        bool
}

var flags playFlags

var rootCmd = &cobra.Command{
	Use:           "go-klavier",
	Short:         "Terminal piano keyboard",
	Long:          `Play a piano keyboard in the terminal with the mouse or the computer keyboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return play(cfg)
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&flags.configPath, "config", "", "config file (default ~/.config/go-klavier/config.json)")
	f.IntVar(&flags.first, "first", 0, "lowest midi note shown")
	f.IntVar(&flags.last, "last", 0, "highest midi note shown")
	f.IntSliceVar(&flags.active, "active", nil, "notes active at start")
	f.StringVar(&flags.keyMap, "keymap", "", "computer keymap name")
	f.IntVar(&flags.transpose, "transpose", 0, "shift the computer keymap by semitones")
	f.BoolVar(&flags.controlled, "controlled", false, "the app owns the active notes")
	f.BoolVar(&flags.noMouse, "no-mouse", false, "ignore the mouse")
	f.BoolVar(&flags.noTouch, "no-touch", false, "ignore touch contacts")
	f.BoolVar(&flags.noKeyboard, "no-keyboard", false, "ignore the computer keyboard")
	f.StringVar(&flags.palette, "palette", "", "GIMP .gpl palette")
	f.BoolVar(&flags.debug, "debug", false, "log to ~/.config/go-klavier/debug.log")
	f.BoolVar(&flags.save, "save", false, "write the resulting config back to disk")
}

// loadConfig reads the config file and lays the changed flags over it
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if flags.configPath != "" {
		cfg, err = config.LoadFile(flags.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("first") {
		cfg.NoteRange.First = note.Note(flags.first)
	}
	if changed("last") {
		cfg.NoteRange.Last = note.Note(flags.last)
	}
	if changed("active") {
		cfg.DefaultActiveNotes = cfg.DefaultActiveNotes[:0]
		for _, n := range flags.active {
			cfg.DefaultActiveNotes = append(cfg.DefaultActiveNotes, note.Note(n))
		}
	}
	if changed("keymap") {
		cfg.KeyMap = flags.keyMap
	}
	if changed("transpose") {
		cfg.Transpose = flags.transpose
	}
	if changed("controlled") {
		cfg.Controlled = flags.controlled
	}
	if changed("no-mouse") {
		cfg.Interactive.Mouse = !flags.noMouse
	}
	if changed("no-touch") {
		cfg.Interactive.Touch = !flags.noTouch
	}
	if changed("no-keyboard") {
		cfg.Interactive.Keyboard = !flags.noKeyboard
	}
	if changed("palette") {
		cfg.UI.Palette = flags.palette
	}
	if changed("debug") {
		cfg.Debug = flags.debug
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	if flags.save {
		if flags.configPath != "" {
			err = cfg.SaveFile(flags.configPath)
		} else {
			err = cfg.Save()
		}
		if err != nil {
			return nil, errors.Wrap(err, "save config")
		}
	}
	return cfg, nil
}

func play(cfg *config.Config) error {
	if cfg.Debug {
		if err := debug.Enable(); err != nil {
			return errors.Wrap(err, "enable debug log")
		}
		defer debug.Disable()
	}

	palette, err := theme.Load(cfg.UI.Palette)
	if err != nil {
		return err
	}
	th := theme.New(palette)

	m, err := tui.NewModel(cfg, th)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	m.Releaser.SetSender(p.Send)

	debug.Log("main", "range %v-%v keymap %s controlled %v", cfg.NoteRange.First, cfg.NoteRange.Last, cfg.KeyMap, cfg.Controlled)
	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "run tui")
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
