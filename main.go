package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/omiquji/internal/commands"
	"github.com/hay-kot/omiquji/internal/core/config"
	"github.com/hay-kot/omiquji/internal/core/logging"
	"github.com/hay-kot/omiquji/internal/core/styles"
	"github.com/hay-kot/omiquji/internal/omiquji"
	"github.com/hay-kot/omiquji/internal/printer"
	"github.com/hay-kot/omiquji/internal/store/jsonfile"
	"github.com/hay-kot/omiquji/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func buildInfo() omiquji.BuildInfo {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	return omiquji.BuildInfo{Version: v, Commit: c, Date: d}
}

func build() string {
	b := buildInfo()

	short := b.Commit
	if len(short) > 7 {
		short = short[:7]
	}

	return fmt.Sprintf("%s (%s) %s", b.Version, short, b.Date)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		app       = &omiquji.App{}
	)

	flags := &commands.Flags{}

	root := &cli.Command{
		Name:        "omiquji",
		Usage:       "Edit omikuji fortune collections",
		UsageText:   "omiquji [global options] [FILE]\n   omiquji [global options] command [command options]",
		Description: commands.Description,
		Version:     build(),
		Flags:       commands.GlobalFlags(flags),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			// Always log to a file; use explicit path or default to <datadir>/omiquji.log
			logFile := flags.LogFile
			if logFile == "" {
				logFile = cfg.LogFile()
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer

			if !styles.UseTheme(cfg.TUI.Theme) {
				log.Warn().Str("theme", cfg.TUI.Theme).Msg("unknown theme, using default")
			}

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*app = *omiquji.NewApp(
				cfg,
				jsonfile.NewStateStore(cfg.StateFile()),
				logging.Component("app"),
				buildInfo(),
			)

			ctx = printer.WithPrinter(ctx, printer.New(c.Root().Writer, c.Root().ErrWriter))
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.RegisterAll(root, flags, app)

	// Open the editor when no subcommand is provided
	root.ArgsUsage = "[FILE]"
	root.Action = tuiCmd.Run

	exitCode := 0
	if err := root.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
