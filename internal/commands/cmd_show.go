package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/omiquji/internal/core/omidoc"
	"github.com/hay-kot/omiquji/internal/omiquji"
	"github.com/hay-kot/omiquji/internal/printer"
	"github.com/hay-kot/omiquji/pkg/iojson"
)

type ShowCmd struct {
	flags *Flags
	app   *omiquji.App

	// flags
	list       string
	jsonOutput bool
}

// NewShowCmd creates a new show command
func NewShowCmd(flags *Flags, app *omiquji.App) *ShowCmd {
	return &ShowCmd{flags: flags, app: app}
}

// Register adds the show command to the application
func (cmd *ShowCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "show",
		Usage:     "Print the entries of a collection",
		UsageText: "omiquji show FILE [--list comments|fortunes|all] [--json]",
		Description: `Prints the comments and fortunes of FILE with their indexes.

Files ending in .omi are read as omifiles; anything else as strfile text.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "list",
				Aliases:     []string{"l"},
				Usage:       "which list to print (comments, fortunes, all)",
				Value:       "all",
				Destination: &cmd.list,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		ShellComplete: RecentFileCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

type showOutput struct {
	Path     string   `json:"path"`
	Format   string   `json:"format"`
	Comments []string `json:"comments,omitempty"`
	Fortunes []string `json:"fortunes,omitempty"`
	Skipped  int      `json:"skipped,omitempty"`
}

func (cmd *ShowCmd) run(ctx context.Context, c *cli.Command) error {
	path, err := requireArg(c.Args().Slice(), 0, "FILE")
	if err != nil {
		return err
	}

	lists, err := listSelection(cmd.list)
	if err != nil {
		return err
	}

	loaded, err := cmd.app.Open(ctx, path)
	if err != nil {
		return err
	}

	if cmd.jsonOutput {
		out := showOutput{Path: path, Format: loaded.Format.String(), Skipped: loaded.Skipped}
		for _, l := range lists {
			if l == omidoc.Comments {
				out.Comments = loaded.Doc.Entries(l)
			} else {
				out.Fortunes = loaded.Doc.Entries(l)
			}
		}
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, out)
	}

	p := printer.Ctx(ctx)
	for i, l := range lists {
		if i > 0 {
			p.Printf("")
		}
		entries := loaded.Doc.Entries(l)
		p.Header(fmt.Sprintf("%s (%d)", l, len(entries)))
		for j, e := range entries {
			p.Entry(j, e)
		}
	}

	if loaded.Skipped > 0 {
		p.Warnf("%d corrupt table slot(s) were skipped", loaded.Skipped)
	}
	return nil
}
