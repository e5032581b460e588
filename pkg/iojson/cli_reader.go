package iojson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// ErrNoInput is returned by FileReader.Read when neither a file nor piped
// stdin is available.
var ErrNoInput = errors.New("no input provided (stdin is a terminal); use --from or pipe JSON input")

// FileReader decodes a JSON value of type T from the file named by its
// flag, or from stdin when the flag is empty.
type FileReader[T any] struct {
	fileFlagValue string
}

func (fr *FileReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "from",
		Usage:       "read a JSON array of entries from `FILE` (\"-\" for stdin)",
		Destination: &fr.fileFlagValue,
	}
}

// Set reports whether the flag was given.
func (fr *FileReader[T]) Set() bool {
	return fr.fileFlagValue != ""
}

// Read decodes from the flag's file, or from stdin for "-". A stdin that
// is an interactive terminal yields ErrNoInput.
func (fr *FileReader[T]) Read(stdin io.Reader) (T, error) {
	var reader io.Reader
	var input T

	switch {
	case fr.fileFlagValue != "" && fr.fileFlagValue != "-":
		f, err := os.Open(fr.fileFlagValue)
		if err != nil {
			return input, fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	default:
		if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return input, ErrNoInput
		}
		reader = stdin
	}

	if err := json.NewDecoder(reader).Decode(&input); err != nil {
		return input, fmt.Errorf("decode JSON: %w", err)
	}

	return input, nil
}
