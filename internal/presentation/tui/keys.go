package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	All       key.Binding
	Last5s    key.Binding
	Last30s   key.Binding
	Last60s   key.Binding
	Custom    key.Binding
	Help      key.Binding
	Enter     key.Binding
	Esc       key.Binding
	NextInput key.Binding
}

var keys = keyMap{
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	All:       key.NewBinding(key.WithKeys("a", "0"), key.WithHelp("a", "all")),
	Last5s:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "last 5s")),
	Last30s:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "last 30s")),
	Last60s:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "last 1m")),
	Custom:    key.NewBinding(key.WithKeys("r", "/"), key.WithHelp("r", "set range")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
	Esc:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	NextInput: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "start/end")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.All, k.Last5s, k.Last30s, k.Last60s, k.Custom, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.All, k.Last5s, k.Last30s, k.Last60s},
		{k.Custom, k.NextInput, k.Enter, k.Esc},
		{k.Help, k.Quit},
	}
}
