package commands

import (
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/omiquji/internal/omiquji"
)

// Description is the long help text of the root command.
const Description = `omiquji edits omikuji collections: two ordered lists of short texts,
comments and fortunes, stored in the binary .omi format or as a plain
Unix fortune (strfile) text file.

Run 'omiquji [FILE]' to open the interactive editor.
Run 'omiquji show FILE' to print a collection.`

// RegisterAll adds every subcommand to root and returns the TUI command,
// which callers install as the root action.
func RegisterAll(root *cli.Command, flags *Flags, app *omiquji.App) *TuiCmd {
	root = NewShowCmd(flags, app).Register(root)
	root = NewAddCmd(flags, app).Register(root)
	root = NewFindCmd(flags, app).Register(root)
	root = NewConvertCmd(flags, app).Register(root)
	root = NewInfoCmd(flags, app).Register(root)
	root = NewRecentCmd(flags, app).Register(root)
	root = NewDocCmd(flags).Register(root)
	_ = NewConfigValidateCmd(flags).Register(root)

	return NewTuiCmd(flags, app)
}
