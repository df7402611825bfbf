package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	MoveLeft  key.Binding
	MoveRight key.Binding
	Search    key.Binding
	Filter    key.Binding
	Reload    key.Binding
	Details   key.Binding
	Back      key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "coluna")),
	Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "coluna")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "card")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "card")),
	MoveLeft:  key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("shift+←", "mover")),
	MoveRight: key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("shift+→", "mover")),
	Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "buscar")),
	Filter:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "status")),
	Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recarregar")),
	Details:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "detalhes")),
	Back:      key.NewBinding(key.WithKeys("esc")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "sair")),
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.MoveLeft, k.MoveRight, k.Search, k.Filter, k.Reload, k.Details, k.Quit}
}
