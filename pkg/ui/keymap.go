package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds all key bindings for the playground.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Sweep  key.Binding
	Cancel key.Binding
	Pick1  key.Binding
	Pick2  key.Binding
	Pick3  key.Binding
	Pick4  key.Binding
	Pick5  key.Binding
	Copy   key.Binding
	Export key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "move right"),
		),
		Sweep: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "start/end sweep"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel sweep"),
		),
		Pick1: key.NewBinding(key.WithKeys("1"), key.WithHelp("1-5", "pick suggestion")),
		Pick2: key.NewBinding(key.WithKeys("2")),
		Pick3: key.NewBinding(key.WithKeys("3")),
		Pick4: key.NewBinding(key.WithKeys("4")),
		Pick5: key.NewBinding(key.WithKeys("5")),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy text"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export trail"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Sweep, k.Cancel, k.Pick1, k.Copy, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Sweep, k.Cancel, k.Pick1},
		{k.Copy, k.Export, k.Help, k.Quit},
	}
}
