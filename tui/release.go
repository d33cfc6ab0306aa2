package tui

import (
	"sync"
	"time"

	"github.com/bep/debounce"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyUpMsg is a synthesized key release
type KeyUpMsg struct {
	Key string
}

// KeyReleaser synthesizes key-up events. Terminals only report key
// presses (plus auto-repeat), so a key counts as released once no repeat
// has arrived for the delay.
type KeyReleaser struct {
	delay time.Duration

	mu      sync.Mutex
	send    func(tea.Msg)
	pending map[string]func(func())
}

// NewKeyReleaser creates a releaser; SetSender must be called before use
func NewKeyReleaser(delay time.Duration) *KeyReleaser {
	return &KeyReleaser{
		delay:   delay,
		pending: make(map[string]func(func())),
	}
}

// SetSender sets where KeyUpMsg values go, usually tea.Program.Send
func (r *KeyReleaser) SetSender(send func(tea.Msg)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.send = send
}

// Touch (re)starts the release timer for key
func (r *KeyReleaser) Touch(key string) {
	r.mu.Lock()
	d, ok := r.pending[key]
	if !ok {
		d = debounce.New(r.delay)
		r.pending[key] = d
	}
	r.mu.Unlock()

	d(func() {
		r.mu.Lock()
		send := r.send
		r.mu.Unlock()
		if send != nil {
			send(KeyUpMsg{Key: key})
		}
	})
}
