// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
//
// Option toggles carry an alt chord, usable while typing a query, and a
// bare key that only applies while the result list has focus.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Search runs the query.
	Search key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Detail opens or closes the line detail pane for the selected result.
	Detail key.Binding

	// Edit returns focus to the query input.
	Edit key.Binding

	// ToggleRegex switches between term and regex queries.
	ToggleRegex key.Binding

	// ToggleCase switches case sensitivity.
	ToggleCase key.Binding

	// ToggleWholeWord switches whole-word term matching.
	ToggleWholeWord key.Binding

	// ToggleMode cycles the all/any match mode.
	ToggleMode key.Binding

	// RangeUp widens the proximity range.
	RangeUp key.Binding

	// RangeDown narrows the proximity range.
	RangeDown key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "f1"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Search: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Detail: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "lines"),
		),
		Edit: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "edit query"),
		),
		ToggleRegex: key.NewBinding(
			key.WithKeys("alt+r", "r"),
			key.WithHelp("alt+r", "regex"),
		),
		ToggleCase: key.NewBinding(
			key.WithKeys("alt+c", "c"),
			key.WithHelp("alt+c", "case"),
		),
		ToggleWholeWord: key.NewBinding(
			key.WithKeys("alt+w", "w"),
			key.WithHelp("alt+w", "whole word"),
		),
		ToggleMode: key.NewBinding(
			key.WithKeys("alt+m", "m"),
			key.WithHelp("alt+m", "mode"),
		),
		RangeUp: key.NewBinding(
			key.WithKeys("alt+=", "+", "="),
			key.WithHelp("alt+=", "range +"),
		),
		RangeDown: key.NewBinding(
			key.WithKeys("alt+-", "-"),
			key.WithHelp("alt+-", "range -"),
		),
	}
}

// ShortHelp returns the hints shown while typing a query.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.ToggleRegex, k.ToggleMode, k.Quit}
}

// ResultsHelp returns keybindings for the results view.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.Up, k.Detail, k.Edit, k.Help, k.Quit}
}

// OptionsHelp returns the option toggles.
func (k *KeyMap) OptionsHelp() []key.Binding {
	return []key.Binding{
		k.ToggleRegex, k.ToggleCase, k.ToggleWholeWord,
		k.ToggleMode, k.RangeUp, k.RangeDown,
	}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Detail},
		{k.Search, k.Edit, k.Back},
		k.OptionsHelp(),
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
