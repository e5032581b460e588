package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/omiquji/internal/core/docio"
	"github.com/hay-kot/omiquji/internal/core/omifile"
	"github.com/hay-kot/omiquji/internal/core/strfile"
	"github.com/hay-kot/omiquji/internal/omiquji"
	"github.com/hay-kot/omiquji/internal/printer"
	"github.com/hay-kot/omiquji/pkg/iojson"
)

type InfoCmd struct {
	flags *Flags
	app   *omiquji.App

	// flags
	slots      bool
	jsonOutput bool
}

// NewInfoCmd creates a new info command
func NewInfoCmd(flags *Flags, app *omiquji.App) *InfoCmd {
	return &InfoCmd{flags: flags, app: app}
}

// Register adds the info command to the application
func (cmd *InfoCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "info",
		Usage:     "Describe the on-disk structure of a collection",
		UsageText: "omiquji info FILE [--slots] [--json]",
		Description: `Prints the header and table layout of an omifile without decoding its
text, and flags table slots a lenient load would skip.

For strfile text only the entry count and digest are reported.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "slots",
				Usage:       "list every table slot",
				Destination: &cmd.slots,
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

type infoOutput struct {
	Path    string          `json:"path"`
	Format  string          `json:"format"`
	Size    int             `json:"size"`
	Digest  string          `json:"digest"`
	Entries int             `json:"entries,omitempty"`
	Layout  *omifile.Layout `json:"layout,omitempty"`
}

func (cmd *InfoCmd) run(ctx context.Context, c *cli.Command) error {
	path, err := requireArg(c.Args().Slice(), 0, "FILE")
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	format := docio.FormatFor(path)
	out := infoOutput{
		Path:   path,
		Format: format.String(),
		Size:   len(data),
		Digest: fmt.Sprintf("%016x", docio.Digest(data)),
	}

	if format == docio.Omikuji {
		layout, err := omifile.Inspect(data)
		if err != nil {
			return fmt.Errorf("inspect %s: %w", path, err)
		}
		out.Layout = &layout
	} else {
		out.Entries = len(strfile.Decode(data))
	}

	if cmd.jsonOutput {
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, out)
	}

	p := printer.Ctx(ctx)
	p.Header(path)
	p.Printf("format  %s", out.Format)
	p.Printf("size    %d bytes", out.Size)
	p.Printf("digest  %s", out.Digest)

	if out.Layout == nil {
		p.Printf("entries %d", out.Entries)
		return nil
	}

	p.Printf("")
	w := tabwriter.NewWriter(p.Out(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "LIST\tOFFSET\tLENGTH\tINVALID")
	for _, t := range out.Layout.Tables {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", t.Name, t.Descriptor.Offset, t.Descriptor.Length, t.Invalid())
	}
	_ = w.Flush()

	if cmd.slots {
		for _, t := range out.Layout.Tables {
			if len(t.Slots) == 0 {
				continue
			}
			p.Printf("")
			p.Header(t.Name)
			w := tabwriter.NewWriter(p.Out(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "SLOT\tAT\tOFFSET\tLENGTH\tSTATUS")
			for _, s := range t.Slots {
				status := "ok"
				if !s.Valid() {
					status = string(s.Reason)
				}
				_, _ = fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%s\n", s.Index, s.Offset, s.Entry.Offset, s.Entry.Length, status)
			}
			_ = w.Flush()
		}
	}

	for _, t := range out.Layout.Tables {
		if n := t.Invalid(); n > 0 {
			p.Warnf("%s table has %d corrupt slot(s)", t.Name, n)
		}
	}
	return nil
}
