package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/omiquji/internal/core/search"
)

// validConfig returns a Config with all required fields set for testing.
func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Keybindings = mergeKeybindings(defaultKeybindings, nil)
	return &cfg
}

func TestValidateDeep_ValidConfig(t *testing.T) {
	cfg := validConfig(t)
	assert.NoError(t, cfg.ValidateDeep(""))
}

func TestValidateDeep_UnknownTheme(t *testing.T) {
	cfg := validConfig(t)
	cfg.TUI.Theme = "neon"

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "tui.theme", fieldErrs[0].Field)
	assert.Contains(t, fieldErrs[0].Err.Error(), "unknown theme")
}

func TestValidateDeep_DataDirIsFile(t *testing.T) {
	cfg := validConfig(t)
	file := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	cfg.DataDir = file

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "data_dir", fieldErrs[0].Field)
}

func TestValidateDeep_ConfigPathIsDirectory(t *testing.T) {
	cfg := validConfig(t)

	err := cfg.ValidateDeep(t.TempDir())

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "config_file", fieldErrs[0].Field)
}

func TestWarnings(t *testing.T) {
	cfg := validConfig(t)
	assert.Empty(t, cfg.Warnings())

	cfg.Search.WholeWords = true
	cfg.Search.Regexp = true
	delete(cfg.Keybindings, "?")

	warnings := cfg.Warnings()
	require.Len(t, warnings, 2)
	assert.Equal(t, "Search", warnings[0].Category)
	assert.Equal(t, ActionHelp, warnings[1].Item)
}

func TestValidateSearch(t *testing.T) {
	assert.NoError(t, ValidateSearch(search.Request{Text: "kichi"}))
	assert.NoError(t, ValidateSearch(search.Request{Text: "^k.*i$", IsRegexp: true}))

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, ValidateSearch(search.Request{Text: "(", IsRegexp: true}), &fieldErrs)
	assert.Equal(t, "text", fieldErrs[0].Field)

	require.ErrorAs(t, ValidateSearch(search.Request{}), &fieldErrs)
	assert.Contains(t, fieldErrs[0].Err.Error(), "empty")
}
