package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the key bindings of the TUI
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	YearLeft  key.Binding
	YearRight key.Binding
	Select    key.Binding
	EditDate  key.Binding
	Back      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous scenario")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next scenario")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "claim a month earlier")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "claim a month later")),
		YearLeft:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "claim a year earlier")),
		YearRight: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "claim a year later")),
		Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "calculate scenario")),
		EditDate:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "type a claim date")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Bindings lists every binding, for the help screen
func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Left, k.Right, k.YearLeft, k.YearRight, k.EditDate, k.Back, k.Help, k.Quit}
}
