package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	Focus      key.Binding
	Back       key.Binding
	SwitchPane key.Binding
	ToggleBox  key.Binding
	Up         key.Binding
	Down       key.Binding
	Open       key.Binding
	StarLeft   key.Binding
	StarRight  key.Binding
	Rate       key.Binding
	Add        key.Binding
	Delete     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		Focus: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "close movie"),
		),
		SwitchPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		ToggleBox: key.NewBinding(
			key.WithKeys("+", "-"),
			key.WithHelp("+/-", "toggle box"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("o", " "),
			key.WithHelp("o", "open"),
		),
		StarLeft: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "less"),
		),
		StarRight: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "more"),
		),
		Rate: key.NewBinding(
			key.WithKeys(" ", "1", "2", "3", "4", "5", "6", "7", "8", "9", "0"),
			key.WithHelp("space/0-9", "rate"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add to list"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "x"),
			key.WithHelp("d", "delete"),
		),
	}
}
