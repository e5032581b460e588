// Package docs holds the user guides shown by 'omiquji doc' and the TUI help
// overlay.
package docs

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/hay-kot/omiquji/internal/core/config"
	"github.com/hay-kot/omiquji/internal/core/styles"
)

// ActionHelp describes each bindable editor action.
var ActionHelp = map[string]string{
	config.ActionSwitchList: "Switch between the comment and fortune lists",
	config.ActionAdd:        "Append a new entry to the focused list",
	config.ActionInsert:     "Insert a new entry before the selection",
	config.ActionEdit:       "Edit the selected entry",
	config.ActionDelete:     "Delete the selected entry",
	config.ActionFind:       "Open the find dialog",
	config.ActionFindNext:   "Repeat the last search",
	config.ActionSave:       "Save the collection",
	config.ActionSaveAs:     "Save the collection under a new name",
	config.ActionOpen:       "Open another collection",
	config.ActionRecent:     "Pick from recently opened files",
	config.ActionHelp:       "Show this help",
	config.ActionQuit:       "Quit, asking to save unsaved changes",
}

// Keybindings returns a markdown table of the actions bound in cfg.
func Keybindings(cfg *config.Config) string {
	var b strings.Builder
	b.WriteString("# Keybindings\n\n")
	b.WriteString("| Keys | Action | Description |\n")
	b.WriteString("|------|--------|-------------|\n")
	for _, action := range config.Actions {
		keys := cfg.KeysFor(action)
		quoted := make([]string, len(keys))
		for i, k := range keys {
			quoted[i] = "`" + k + "`"
		}
		if len(quoted) == 0 {
			quoted = []string{"-"}
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", strings.Join(quoted, ", "), action, ActionHelp[action])
	}
	b.WriteString("\nIn the find dialog, `tab` moves between fields, `space` toggles an option,\n")
	b.WriteString("`up`/`down` recall recent searches and `enter` finds the next match.\n")
	return b.String()
}

// Format is the guide to the two on-disk formats.
const Format = `# Collection Formats

A collection holds two ordered lists of text: **comments** and **fortunes**.
The file suffix picks the format. Files ending in ` + "`.omi`" + ` (exact case) are
omifiles; everything else is read and written as strfile text.

## omifile

All integers are big-endian unsigned 32-bit.

| Offset | Size | Field |
|--------|------|-------|
| 0 | 7 | signature ` + "`omikuji`" + ` |
| 7 | 1 | version, always 0 |
| 8 | 8 | comment table (offset, length) |
| 16 | 8 | fortune table (offset, length) |

Each table holds ` + "`length`" + ` entries of (offset, length) pointing at UTF-8
text. An empty list has the table descriptor (0, 0) and no table. The
payload follows both tables: comments first, then fortunes.

Loading is lenient by default. Table entries that point outside the file
or into the header are skipped and reported; set ` + "`decode.strict: true`" + ` to
refuse such files instead. Use ` + "`omiquji info FILE --slots`" + ` to see which
slots are damaged.

## strfile

The plain text input of the Unix ` + "`strfile`" + ` tool. Entries are separated
by a line holding a single ` + "`%`" + `:

` + "```" + `
You will find what you seek.
%
Beware of the dog.
` + "```" + `

Strfile has no comment list. Comments are written as leading fortunes and
come back as fortunes when the file is read again. ` + "`omiquji convert`" + ` and
save both warn when this happens.
`

// Render renders markdown for a terminal of the given width using the
// active theme.
func Render(md string, width int) (string, error) {
	style := styles.GlamourStyle()
	noMargin := uint(0)
	style.Document.Margin = &noMargin

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
