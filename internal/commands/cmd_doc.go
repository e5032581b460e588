package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/omiquji/internal/core/config"
	"github.com/hay-kot/omiquji/internal/core/docs"
)

type DocCmd struct {
	flags *Flags
	raw   bool
	width int
}

func NewDocCmd(flags *Flags) *DocCmd {
	return &DocCmd{flags: flags}
}

func (cmd *DocCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "doc",
		Usage: "Show user guides",
		Description: `Prints the omiquji guides as rendered markdown.

Use 'omiquji doc format' for the omifile and strfile layouts.
Use 'omiquji doc keys' for the editor keybindings.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "raw",
				Usage:       "print markdown source instead of rendering it",
				Destination: &cmd.raw,
			},
			&cli.IntFlag{
				Name:        "width",
				Usage:       "wrap width (defaults to the terminal width)",
				Destination: &cmd.width,
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "format",
				Usage: "Describe the omifile and strfile formats",
				Action: func(ctx context.Context, c *cli.Command) error {
					return cmd.print(c, docs.Format)
				},
			},
			{
				Name:  "keys",
				Usage: "List the editor keybindings from the current config",
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg := cmd.flags.Config
					if cfg == nil {
						d := config.DefaultConfig()
						cfg = &d
					}
					return cmd.print(c, docs.Keybindings(cfg))
				},
			},
		},
	})
	return app
}

func (cmd *DocCmd) print(c *cli.Command, md string) error {
	w := c.Root().Writer
	if cmd.raw {
		_, err := fmt.Fprint(w, md)
		return err
	}

	out, err := docs.Render(md, cmd.wrapWidth())
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = fmt.Fprint(w, out)
	return err
}

func (cmd *DocCmd) wrapWidth() int {
	if cmd.width > 0 {
		return cmd.width
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return min(w, 100)
	}
	return 80
}
