// Package config handles configuration loading and validation for omiquji.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/hay-kot/omiquji/internal/core/search"
)

// Editor actions that keys can be bound to.
const (
	ActionSwitchList = "switch-list"
	ActionAdd        = "add"
	ActionInsert     = "insert"
	ActionEdit       = "edit"
	ActionDelete     = "delete"
	ActionFind       = "find"
	ActionFindNext   = "find-next"
	ActionSave       = "save"
	ActionSaveAs     = "save-as"
	ActionOpen       = "open"
	ActionRecent     = "recent"
	ActionHelp       = "help"
	ActionQuit       = "quit"
)

// Actions lists every bindable action in help order.
var Actions = []string{
	ActionSwitchList, ActionAdd, ActionInsert, ActionEdit, ActionDelete,
	ActionFind, ActionFindNext, ActionSave, ActionSaveAs, ActionOpen,
	ActionRecent, ActionHelp, ActionQuit,
}

// defaultKeybindings maps keys to actions; users can add or override keys.
var defaultKeybindings = map[string]string{
	"tab":    ActionSwitchList,
	"a":      ActionAdd,
	"i":      ActionInsert,
	"enter":  ActionEdit,
	"e":      ActionEdit,
	"d":      ActionDelete,
	"/":      ActionFind,
	"n":      ActionFindNext,
	"ctrl+s": ActionSave,
	"S":      ActionSaveAs,
	"o":      ActionOpen,
	"r":      ActionRecent,
	"?":      ActionHelp,
	"q":      ActionQuit,
	"ctrl+c": ActionQuit,
}

// Config holds the application configuration.
type Config struct {
	Recent      RecentConfig      `yaml:"recent"`
	Search      SearchConfig      `yaml:"search"`
	Decode      DecodeConfig      `yaml:"decode"`
	TUI         TUIConfig         `yaml:"tui"`
	Keybindings map[string]string `yaml:"keybindings"`
	DataDir     string            `yaml:"-"` // set by caller, not from config file
}

// RecentConfig sizes the recent files and searches lists.
type RecentConfig struct {
	MaxFiles    int `yaml:"max_files"`
	MaxSearches int `yaml:"max_searches"`
}

// SearchConfig holds the initial options of the find dialog.
type SearchConfig struct {
	MatchCase  bool `yaml:"match_case"`
	WholeWords bool `yaml:"whole_words"`
	Regexp     bool `yaml:"regexp"`
	Backwards  bool `yaml:"backwards"`
	FromStart  bool `yaml:"from_start"`
}

// Request returns a search request for text with these defaults.
func (s SearchConfig) Request(text string) search.Request {
	return search.Request{
		Text:            text,
		FromStart:       s.FromStart,
		MatchCase:       s.MatchCase,
		MatchWholeWords: s.WholeWords,
		IsRegexp:        s.Regexp,
		SearchBackwards: s.Backwards,
	}
}

// DecodeConfig controls how omifiles are read.
type DecodeConfig struct {
	// Strict rejects an omifile with any corrupt table slot instead of
	// loading its valid entries.
	Strict bool `yaml:"strict"`
}

// TUIConfig holds editor presentation options.
type TUIConfig struct {
	Theme       string `yaml:"theme"`
	ConfirmQuit *bool  `yaml:"confirm_quit"`
}

// ShouldConfirmQuit reports whether quitting with unsaved changes prompts.
func (t TUIConfig) ShouldConfirmQuit() bool {
	return t.ConfirmQuit == nil || *t.ConfirmQuit
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Recent: RecentConfig{
			MaxFiles:    10,
			MaxSearches: 20,
		},
		TUI: TUIConfig{
			Theme: "tokyo-night",
		},
		Keybindings: map[string]string{},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.Keybindings = mergeKeybindings(defaultKeybindings, cfg.Keybindings)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Recent.MaxFiles == 0 {
		c.Recent.MaxFiles = defaults.Recent.MaxFiles
	}
	if c.Recent.MaxSearches == 0 {
		c.Recent.MaxSearches = defaults.Recent.MaxSearches
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
}

// mergeKeybindings merges user keybindings into defaults.
// User keybindings override defaults for the same key.
func mergeKeybindings(defaults, user map[string]string) map[string]string {
	result := make(map[string]string, len(defaults)+len(user))
	for k, v := range defaults {
		result[k] = v
	}
	for k, v := range user {
		result[k] = v
	}
	return result
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if c.Recent.MaxFiles < 1 {
		return fmt.Errorf("recent.max_files must be at least 1")
	}

	if c.Recent.MaxSearches < 1 {
		return fmt.Errorf("recent.max_searches must be at least 1")
	}

	for key, action := range c.Keybindings {
		if !isValidAction(action) {
			return fmt.Errorf("keybinding %q has invalid action %q", key, action)
		}
	}

	return nil
}

// KeysFor returns the keys bound to action, sorted.
func (c *Config) KeysFor(action string) []string {
	var keys []string
	for k, a := range c.Keybindings {
		if a == action {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

// StateFile returns the path to the recent lists JSON file.
func (c *Config) StateFile() string {
	return filepath.Join(c.DataDir, "state.json")
}

// LogFile returns the default log file path.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "omiquji.log")
}

func isValidAction(action string) bool {
	return slices.Contains(Actions, action)
}
