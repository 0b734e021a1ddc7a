package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the picker keybindings.
type KeyMap struct {
	// Up navigates up in the candidate list.
	Up key.Binding

	// Down navigates down in the candidate list.
	Down key.Binding

	// Select confirms the highlighted candidate.
	Select key.Binding

	// Cancel dismisses the picker without choosing.
	Cancel key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "q", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
	}
}
