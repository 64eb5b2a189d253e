package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	checkout key.Binding
	ret      key.Binding
	stats    key.Binding
	log      key.Binding
	back     key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		checkout: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "checkout")),
		ret:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "return")),
		stats:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stats")),
		log:      key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "log")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.checkout},
		{k.ret, k.stats, k.log},
		{k.back, k.quit},
	}
}
