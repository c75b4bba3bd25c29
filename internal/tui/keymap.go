package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the dashboard bindings. The operand fields take every
// printable key, so actions sit on control and function keys.
type KeyMap struct {
	NextField  key.Binding
	PrevField  key.Binding
	Run        key.Binding
	Compare    key.Binding
	NextEngine key.Binding
	PrevEngine key.Binding
	Cancel     key.Binding
	Clear      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextField:  key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next operand")),
		PrevField:  key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous operand")),
		Run:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "multiply")),
		Compare:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "compare engines")),
		NextEngine: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "next engine")),
		PrevEngine: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "previous engine")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel run")),
		Clear:      key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
		Help:       key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c", "ctrl+q"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Run, k.Compare, k.NextEngine, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField, k.Clear},
		{k.Run, k.Compare, k.Cancel},
		{k.NextEngine, k.PrevEngine},
		{k.Help, k.Quit},
	}
}
