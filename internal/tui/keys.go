package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the wizard.
type KeyMap struct {
	Next      key.Binding
	Prev      key.Binding
	NextField key.Binding
	PrevField key.Binding
	Toggle    key.Binding
	Inc       key.Binding
	Dec       key.Binding
	IncCycles key.Binding
	DecCycles key.Binding
	Override  key.Binding
	Climb     key.Binding
	NoClimb   key.Binding
	Rating    key.Binding
	Notes     key.Binding
	First     key.Binding
	Endgame   key.Binding
	Review    key.Binding
	Save      key.Binding
	Reset     key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default keybinding configuration.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("n", "right", "enter"),
			key.WithHelp("n/→", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("p", "left", "esc"),
			key.WithHelp("p/←", "back"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "left", "right"),
			key.WithHelp("space", "switch"),
		),
		Inc: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "add"),
		),
		Dec: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "remove"),
		),
		IncCycles: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "cycle +1"),
		),
		DecCycles: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "cycle -1"),
		),
		Override: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "override"),
		),
		Climb: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "climb"),
		),
		NoClimb: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "scored w/o climb"),
		),
		Rating: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next rating"),
		),
		Notes: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "notes"),
		),
		First: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "first shift"),
		),
		Endgame: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "endgame"),
		),
		Review: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "review"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reset form"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// digit returns the 1-based number typed, or 0.
func digit(s string) int {
	if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		return int(s[0] - '0')
	}
	return 0
}
