package commands

import (
	"fmt"

	"github.com/hay-kot/omiquji/internal/core/omidoc"
)

// listSelection resolves a --list flag value. "all" selects both lists.
func listSelection(value string) ([]omidoc.List, error) {
	if value == "" || value == "all" {
		return []omidoc.List{omidoc.Comments, omidoc.Fortunes}, nil
	}
	l, ok := omidoc.ParseList(value)
	if !ok {
		return nil, fmt.Errorf("invalid --list %q (want comments, fortunes or all)", value)
	}
	return []omidoc.List{l}, nil
}

// singleList resolves a --list flag that must name exactly one list.
func singleList(value string) (omidoc.List, error) {
	if value == "" {
		return omidoc.Fortunes, nil
	}
	l, ok := omidoc.ParseList(value)
	if !ok {
		return 0, fmt.Errorf("invalid --list %q (want comments or fortunes)", value)
	}
	return l, nil
}

// requireArg returns the positional argument at i or a usage error.
func requireArg(args []string, i int, name string) (string, error) {
	if i >= len(args) || args[i] == "" {
		return "", fmt.Errorf("missing %s argument", name)
	}
	return args[i], nil
}
