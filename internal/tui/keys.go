package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the TUI.
type KeyMap struct {
	// Navigation
	PrevTheme      key.Binding
	NextTheme      key.Binding
	PrevBackground key.Binding
	NextBackground key.Binding
	First          key.Binding
	Last           key.Binding

	// Actions
	Apply   key.Binding
	Delete  key.Binding
	Search  key.Binding
	Refresh key.Binding
	Back    key.Binding
	Yes     key.Binding
	No      key.Binding

	// Global
	Quit key.Binding
	Help key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevTheme, k.NextTheme, k.NextBackground, k.PrevBackground},
		{k.First, k.Last, k.Apply, k.Delete},
		{k.Search, k.Refresh, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		PrevTheme: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous theme"),
		),
		NextTheme: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next theme"),
		),
		PrevBackground: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "previous background"),
		),
		NextBackground: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "next background"),
		),
		First: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home/g", "first theme"),
		),
		Last: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end/G", "last theme"),
		),
		Apply: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete", "x"),
			key.WithHelp("del/x", "delete theme"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}
