package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/omiquji/internal/omiquji"
)

// RecentFileCompleter returns a ShellCompleteFunc that suggests recently
// opened files as positional completions.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func RecentFileCompleter(app *omiquji.App) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		// Delegate to default flag completion when typing a flag
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		if app == nil || app.Recent == nil {
			return
		}

		w := cmd.Root().Writer
		for _, path := range app.Recent.Files(ctx) {
			_, _ = fmt.Fprintln(w, path)
		}
	}
}
