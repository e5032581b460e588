package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/omiquji/internal/core/config"
)

func TestKeyMap_Action(t *testing.T) {
	cfg, err := config.Load("", t.TempDir())
	require.NoError(t, err)
	km := NewKeyMap(cfg)

	tests := []struct {
		msg  tea.KeyMsg
		want string
	}{
		{tea.KeyMsg{Type: tea.KeyTab}, config.ActionSwitchList},
		{tea.KeyMsg{Type: tea.KeyCtrlS}, config.ActionSave},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, config.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("S")}, config.ActionSaveAs},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")}, config.ActionFind},
	}
	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			got, ok := km.Action(tt.msg)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := km.Action(tea.KeyMsg{Type: tea.KeyDown})
	assert.False(t, ok, "navigation keys fall through to the list")
}

func TestKeyMap_UserOverride(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Keybindings = map[string]string{"x": config.ActionDelete}
	km := NewKeyMap(&cfg)

	got, ok := km.Action(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	require.True(t, ok)
	assert.Equal(t, config.ActionDelete, got)

	assert.True(t, km.Binding(config.ActionDelete).Enabled())
	assert.False(t, km.Binding(config.ActionSave).Enabled(), "unbound actions are hidden from help")
	assert.Equal(t, "x", km.Binding(config.ActionDelete).Help().Key)
}

func TestKeyMap_FullHelpCoversActions(t *testing.T) {
	cfg, err := config.Load("", t.TempDir())
	require.NoError(t, err)

	n := 0
	for _, row := range NewKeyMap(cfg).FullHelp() {
		assert.LessOrEqual(t, len(row), 4)
		n += len(row)
	}
	assert.Equal(t, len(config.Actions), n)
}
