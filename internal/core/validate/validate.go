// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"os"
	"strings"

	"github.com/hay-kot/criterio"
)

// EntryText validates that an entry has text other than whitespace.
func EntryText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text is required")
	}
	return nil
}

// EntryTextField returns a criterio validator for entry text.
func EntryTextField(field, text string) error {
	return criterio.Run(field, text, EntryText)
}

// DocumentPath validates a path to open or save a document at. The file
// may not exist yet, but the path must not name a directory.
func DocumentPath(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("a file path is required")
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

// DocumentPathField returns a criterio validator for document paths.
func DocumentPathField(field, path string) error {
	return criterio.Run(field, path, DocumentPath)
}
