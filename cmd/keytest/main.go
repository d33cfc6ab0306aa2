package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go-klavier/input"
	"go-klavier/klavier"
	"go-klavier/ledger"
	"go-klavier/midi"
	"go-klavier/note"
	"go-klavier/theme"
	"go-klavier/widgets"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "layout":
		testLayout(os.Args[2:])
	case "play":
		testPlay(os.Args[2:])
	case "controlled":
		testControlled()
	default:
		usage()
	}
}

func usage() {
	fmt.Println("Keyboard Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  layout [FIRST LAST]  - Draw a range and its hit map")
	fmt.Println("  play KEYS            - Type KEYS on the default keymap, print messages")
	fmt.Println("  controlled           - Show an owner rejecting and accepting changes")
}

func parseRange(args []string) (note.Range, error) {
	if len(args) < 2 {
		return note.Range{First: 60, Last: 72}, nil
	}
	first, err := strconv.Atoi(args[0])
	if err != nil {
		return note.Range{}, err
	}
	last, err := strconv.Atoi(args[1])
	if err != nil {
		return note.Range{}, err
	}
	r := note.Range{First: note.Note(first), Last: note.Note(last)}
	return r, note.ValidateRange(r)
}

func testLayout(args []string) {
	r, err := parseRange(args)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	th := theme.New(theme.Default())
	kb := widgets.NewKeyboard(r)
	fmt.Printf("=== %s-%s (%d keys, %d cells) ===\n", r.First.Name(), r.Last.Name(), r.Len(), kb.Width())
	fmt.Println(kb.Render(th, nil))
	fmt.Println(kb.Labels(th))

	fmt.Println("\n=== Hit map (top row, bottom row) ===")
	for _, y := range []int{0, kb.Height() - 1} {
		var row strings.Builder
		for x := 0; x < kb.Width(); x++ {
			n, ok := kb.HitTest(x, y)
			switch {
			case !ok:
				row.WriteByte('.')
			case n.IsBlack():
				row.WriteByte('#')
			default:
				row.WriteString(n.Name()[:1])
			}
		}
		fmt.Println(row.String())
	}
}

func testPlay(args []string) {
	if len(args) == 0 {
		fmt.Println("Need some keys to type, e.g. play qwe")
		return
	}

	mon := midi.NewMonitor(0, 100, 64)
	bus := input.NewBus()
	cfg := klavier.DefaultConfig()
	cfg.OnPress = mon.NoteOn
	cfg.OnRelease = mon.NoteOff
	cfg.OnChange = func(active []note.Note) {
		fmt.Printf("  active: %v\n", active)
	}
	k, err := klavier.New(bus, cfg)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer k.Close()

	keys := strings.Split(args[0], "")
	for _, key := range keys {
		fmt.Printf("key down %q\n", key)
		bus.Dispatch(input.KeyEvent(input.KeyDown, key, input.Modifiers{}))
	}
	for _, key := range keys {
		fmt.Printf("key up %q\n", key)
		bus.Dispatch(input.KeyEvent(input.KeyUp, key, input.Modifiers{}))
	}

	fmt.Println("\n=== Messages ===")
	for _, e := range mon.Recent() {
		fmt.Printf("  %s  % X\n", e.String(), e.Message.Bytes())
		ev, ok := midi.Decode(e.Message)
		if !ok {
			fmt.Println("    (not a note message)")
			continue
		}
		kind := "on"
		if ev.Type == midi.NoteOff {
			kind = "off"
		}
		fmt.Printf("    decoded: note %s ch %d key %d vel %d\n", kind, ev.Channel, ev.Note, ev.Velocity)
	}
}

func testControlled() {
	bus := input.NewBus()
	cfg := klavier.DefaultConfig()
	cfg.Mode = ledger.Controlled{Notes: []note.Note{60, 64, 67}}

	var requested []note.Note
	cfg.OnChange = func(active []note.Note) {
		requested = active
		fmt.Printf("  requested: %v\n", active)
	}
	k, err := klavier.New(bus, cfg)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer k.Close()

	fmt.Printf("owner holds %v\n", k.ActiveNotes())

	fmt.Println("press D4 (owner ignores it)")
	bus.Dispatch(input.OnKey(input.PointerDown, 62))
	bus.Dispatch(input.Event{Kind: input.GlobalPointerUp})
	fmt.Printf("  visible: %v\n", k.ActiveNotes())

	fmt.Println("owner accepts the last request")
	k.SetMode(ledger.Controlled{Notes: requested})
	fmt.Printf("  visible: %v\n", k.ActiveNotes())

	fmt.Println("owner hands control back")
	k.SetMode(ledger.Uncontrolled{})
	bus.Dispatch(input.OnKey(input.PointerDown, 65))
	bus.Dispatch(input.Event{Kind: input.GlobalPointerUp})
	fmt.Printf("  visible: %v\n", k.ActiveNotes())
}
