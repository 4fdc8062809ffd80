package input

import (
	"sync"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"geosearch/internal/ui/input/types"
)

// ShortcutFunc produces the action for a matched shortcut
type ShortcutFunc func() types.Action

type shortcut struct {
	id      uint64
	binding key.Binding
	fn      ShortcutFunc
}

// Shortcuts holds the keyboard shortcuts that apply whatever field has
// focus. Each registration is released explicitly by its owner; nothing is
// registered at package level.
type Shortcuts struct {
	mu      sync.RWMutex
	entries []shortcut
	nextID  uint64
}

// NewShortcuts creates an empty registry
func NewShortcuts() *Shortcuts {
	return &Shortcuts{}
}

// Register adds a shortcut and returns the function that removes it.
// Calling the release function more than once is harmless.
func (s *Shortcuts) Register(binding key.Binding, fn ShortcutFunc) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.entries = append(s.entries, shortcut{id: id, binding: binding, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, e := range s.entries {
			if e.id == id {
				s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
				return
			}
		}
	}
}

// Match returns the action of the first registered shortcut matching msg
func (s *Shortcuts) Match(msg tea.KeyMsg) (types.Action, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.entries {
		if key.Matches(msg, e.binding) {
			return e.fn(), true
		}
	}
	return nil, false
}

// Len reports how many shortcuts are registered
func (s *Shortcuts) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
