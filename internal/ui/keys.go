package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings shown in the help footer. Field-specific keys
// are handled by the input modes; these are the ones worth advertising.
type keyMap struct {
	FocusQuery key.Binding
	NextField  key.Binding
	PrevField  key.Binding
	Submit     key.Binding
	Step       key.Binding
	Pages      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		FocusQuery: key.NewBinding(
			// terminals report ctrl+/ as ctrl+_
			key.WithKeys("ctrl+_", "ctrl+/"),
			key.WithHelp("ctrl+/", "search"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		Step: key.NewBinding(
			key.WithKeys("up", "down"),
			key.WithHelp("↑/↓", "change size"),
		),
		Pages: key.NewBinding(
			key.WithKeys("left", "right", "h", "l"),
			key.WithHelp("←/→", "pick page"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.FocusQuery, k.NextField, k.Submit, k.Pages, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.FocusQuery, k.Submit},
		{k.NextField, k.PrevField},
		{k.Step, k.Pages},
		{k.Help, k.Quit},
	}
}
