package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the key bindings of the settings screen.
type KeyMap struct {
	Next        key.Binding
	Prev        key.Binding
	Left        key.Binding
	Right       key.Binding
	Press       key.Binding
	Toggle      key.Binding
	Filter      key.Binding
	ClearFilter key.Binding
	QuickSync   key.Binding
	Dismiss     key.Binding
	DismissAll  key.Binding
	Reload      key.Binding
	Quit        key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next:        key.NewBinding(key.WithKeys("tab", "down", "j"), key.WithHelp("tab", "next")),
		Prev:        key.NewBinding(key.WithKeys("shift+tab", "up", "k"), key.WithHelp("shift+tab", "prev")),
		Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "change")),
		Right:       key.NewBinding(key.WithKeys("right", "l")),
		Press:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Filter:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter zones")),
		ClearFilter: key.NewBinding(key.WithKeys("esc")),
		QuickSync:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sync now")),
		Dismiss:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "close toast")),
		DismissAll:  key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "close all")),
		Reload:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp lists the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Left, k.Press, k.Toggle, k.Filter, k.QuickSync, k.Dismiss, k.Reload, k.Quit}
}
