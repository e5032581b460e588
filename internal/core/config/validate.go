package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/omiquji/internal/core/search"
	"github.com/hay-kot/omiquji/internal/core/styles"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration
// including file accessibility and option combinations. The configPath
// argument specifies the config file location to validate (empty string
// skips config file check). This calls Validate() first for basic
// structural validation.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		criterio.Run("tui.theme", c.TUI.Theme, themeExists),
		c.validateKeybindings(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Search.WholeWords && c.Search.Regexp {
		warnings = append(warnings, ValidationWarning{
			Category: "Search",
			Message:  "whole_words takes precedence over regexp; regexp is ignored",
		})
	}

	for _, action := range Actions {
		if len(c.KeysFor(action)) == 0 {
			warnings = append(warnings, ValidationWarning{
				Category: "Keybindings",
				Item:     action,
				Message:  "action has no key bound",
			})
		}
	}

	return warnings
}

// validateFileAccess checks the config file and data directory.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

func themeExists(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", name, styles.ThemeNames())
	}
	return nil
}

func (c *Config) validateKeybindings() error {
	var errs criterio.FieldErrorsBuilder

	keys := make([]string, 0, len(c.Keybindings))
	for k := range c.Keybindings {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		field := fmt.Sprintf("keybindings[%s]", key)
		if key == "" {
			errs = errs.Append(field, fmt.Errorf("key cannot be empty"))
		}
		if action := c.Keybindings[key]; !isValidAction(action) {
			errs = errs.Append(field, fmt.Errorf("invalid action %q", action))
		}
	}

	return errs.ToError()
}

// ValidateSearch checks a search request the way the find dialog does
// before running it: the text must be non-empty and any pattern must
// compile.
func ValidateSearch(req search.Request) error {
	return criterio.ValidateStruct(
		criterio.Run("text", req.Text, func(string) error {
			_, err := search.Compile(req)
			return err
		}),
	)
}
