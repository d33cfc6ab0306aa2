package main

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"go-klavier/keymap"
	"go-klavier/note"
	"go-klavier/widgets"
)

func init() {
	rootCmd.AddCommand(keymapsCmd)
	rootCmd.AddCommand(notesCmd)
}

var keymapsCmd = &cobra.Command{
	Use:   "keymaps [name]",
	Short: "Lists the computer keymaps",
	Long:  `Lists the built-in computer keymaps, or the bindings of one of them.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			for _, name := range keymap.Names() {
				fmt.Println(name)
			}
			return nil
		}
		km, err := keymap.ByName(args[0])
		if err != nil {
			return err
		}
		sec := widgets.KeyMapSection(args[0], km, note.Range{First: note.Min, Last: note.Max})
		fmt.Println(widgets.RenderKeyHelp([]widgets.KeySection{sec}))
		return nil
	},
}

var notesCmd = &cobra.Command{
	Use:   "notes FIRST LAST",
	Short: "Describes the keys of a note range",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		first, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.Wrap(err, "first")
		}
		last, err := strconv.Atoi(args[1])
		if err != nil {
			return errors.Wrap(err, "last")
		}
		r := note.Range{First: note.Note(first), Last: note.Note(last)}
		if err := note.ValidateRange(r); err != nil {
			return err
		}
		for _, n := range r.Notes() {
			info, err := note.Describe(n)
			if err != nil {
				return err
			}
			fmt.Printf("%3d  %-4s  %-5s  octave %d\n", int(info.Note), info.Note.Name(), info.Color, info.Octave)
		}
		return nil
	},
}
