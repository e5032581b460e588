package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/omiquji/internal/omiquji"
	"github.com/hay-kot/omiquji/internal/tui"
)

type TuiCmd struct {
	flags *Flags
	app   *omiquji.App
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *omiquji.App) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		app:   app,
	}
}

// Run opens the editor on the optional FILE argument. Exported for use as
// the root action.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() > 1 {
		return fmt.Errorf("expected at most one FILE, got %d arguments", c.Args().Len())
	}

	opts := tui.Options{
		Path:      c.Args().First(),
		SessionID: uuid.NewString(),
	}
	log.Info().
		Str("session_id", opts.SessionID).
		Str("path", opts.Path).
		Msg("starting editor")

	p := tea.NewProgram(tui.New(ctx, cmd.app, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
