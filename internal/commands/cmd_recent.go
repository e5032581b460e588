package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/omiquji/internal/core/recent"
	"github.com/hay-kot/omiquji/internal/omiquji"
	"github.com/hay-kot/omiquji/internal/printer"
	"github.com/hay-kot/omiquji/pkg/iojson"
)

type RecentCmd struct {
	flags *Flags
	app   *omiquji.App

	// flags
	searches   bool
	clear      bool
	jsonOutput bool
}

// NewRecentCmd creates a new recent command
func NewRecentCmd(flags *Flags, app *omiquji.App) *RecentCmd {
	return &RecentCmd{flags: flags, app: app}
}

// Register adds the recent command to the application
func (cmd *RecentCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "recent",
		Usage:     "List recently opened files or searches",
		UsageText: "omiquji recent [--searches] [--clear] [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "searches",
				Aliases:     []string{"s"},
				Usage:       "show recent search terms instead of files",
				Destination: &cmd.searches,
			},
			&cli.BoolFlag{
				Name:        "clear",
				Usage:       "forget the selected list",
				Destination: &cmd.clear,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RecentCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	kind := recent.Files
	if cmd.searches {
		kind = recent.Searches
	}

	if cmd.clear {
		if err := cmd.app.State.Clear(ctx, kind); err != nil {
			return fmt.Errorf("clear recent %s: %w", kind, err)
		}
		p.Successf("cleared recent %s", kind)
		return nil
	}

	entries, err := cmd.app.State.List(ctx, kind)
	if err != nil {
		return fmt.Errorf("list recent %s: %w", kind, err)
	}

	if cmd.jsonOutput {
		if entries == nil {
			entries = []recent.Entry{}
		}
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, entries)
	}

	if len(entries) == 0 {
		p.Infof("no recent %s", kind)
		return nil
	}

	w := tabwriter.NewWriter(p.Out(), 0, 0, 2, ' ', 0)
	for _, e := range entries {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", e.UsedAt.Local().Format(time.DateTime), e.Value)
	}
	return w.Flush()
}
