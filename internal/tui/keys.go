package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hay-kot/omiquji/internal/core/config"
)

// KeyMap resolves key presses to editor actions from the configured
// keybindings.
type KeyMap struct {
	actions  map[string]string
	bindings map[string]key.Binding
}

// NewKeyMap builds a KeyMap from cfg.Keybindings.
func NewKeyMap(cfg *config.Config) KeyMap {
	km := KeyMap{
		actions:  make(map[string]string, len(cfg.Keybindings)),
		bindings: make(map[string]key.Binding, len(config.Actions)),
	}
	for k, action := range cfg.Keybindings {
		km.actions[k] = action
	}

	for _, action := range config.Actions {
		keys := cfg.KeysFor(action)
		b := key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(strings.Join(keys, "/"), shortHelp(action)),
		)
		if len(keys) == 0 {
			b.SetEnabled(false)
		}
		km.bindings[action] = b
	}
	return km
}

// Action returns the action bound to msg.
func (k KeyMap) Action(msg tea.KeyMsg) (string, bool) {
	a, ok := k.actions[msg.String()]
	return a, ok
}

// Binding returns the help binding of action.
func (k KeyMap) Binding(action string) key.Binding {
	return k.bindings[action]
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.bindings[config.ActionSwitchList],
		k.bindings[config.ActionAdd],
		k.bindings[config.ActionEdit],
		k.bindings[config.ActionDelete],
		k.bindings[config.ActionFind],
		k.bindings[config.ActionSave],
		k.bindings[config.ActionHelp],
		k.bindings[config.ActionQuit],
	}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	var rows [][]key.Binding
	var row []key.Binding
	for _, action := range config.Actions {
		row = append(row, k.bindings[action])
		if len(row) == 4 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}

func shortHelp(action string) string {
	switch action {
	case config.ActionSwitchList:
		return "switch list"
	case config.ActionFindNext:
		return "next"
	case config.ActionSaveAs:
		return "save as"
	default:
		return action
	}
}
