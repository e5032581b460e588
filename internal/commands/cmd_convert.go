package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/omiquji/internal/core/docio"
	"github.com/hay-kot/omiquji/internal/omiquji"
	"github.com/hay-kot/omiquji/internal/printer"
)

type ConvertCmd struct {
	flags *Flags
	app   *omiquji.App

	// flags
	format string
	outDir string
	force  bool
	dryRun bool
}

// NewConvertCmd creates a new convert command
func NewConvertCmd(flags *Flags, app *omiquji.App) *ConvertCmd {
	return &ConvertCmd{flags: flags, app: app}
}

// Register adds the convert command to the application
func (cmd *ConvertCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "convert",
		Usage:     "Convert collections between omifile and strfile",
		UsageText: "omiquji convert SRC... [--format omi|strfile] [--out-dir DIR] [--force]",
		Description: `Reads every SRC and writes it in the other format next to the source,
or into --out-dir. SRC may be a glob; ** matches across directories.

Converting to strfile folds comments into the fortune list, since the
text format has no place for them.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "target format (omi, strfile); default is the opposite of each source",
				Destination: &cmd.format,
			},
			&cli.StringFlag{
				Name:        "out-dir",
				Aliases:     []string{"o"},
				Usage:       "directory to write converted files into",
				Destination: &cmd.outDir,
			},
			&cli.BoolFlag{
				Name:        "force",
				Usage:       "overwrite existing targets",
				Destination: &cmd.force,
			},
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "print what would be converted without writing",
				Destination: &cmd.dryRun,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ConvertCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	if c.Args().Len() == 0 {
		return errors.New("missing SRC argument")
	}

	var target *docio.Format
	if cmd.format != "" {
		f, err := docio.ParseFormat(cmd.format)
		if err != nil {
			return err
		}
		target = &f
	}

	sources, err := expandSources(c.Args().Slice())
	if err != nil {
		return err
	}

	var failed int
	for _, src := range sources {
		format := opposite(docio.FormatFor(src))
		if target != nil {
			format = *target
		}

		dst := TargetPath(src, format, cmd.outDir)
		if dst == src {
			p.Warnf("%s: already %s, skipping", src, format)
			continue
		}

		if err := cmd.convert(ctx, p, src, dst); err != nil {
			p.Errorf("%s: %v", src, err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed to convert", failed, len(sources))
	}
	return nil
}

func (cmd *ConvertCmd) convert(ctx context.Context, p *printer.Printer, src, dst string) error {
	if !cmd.force {
		if _, err := os.Stat(dst); err == nil {
			return fmt.Errorf("%s exists (use --force to overwrite)", dst)
		}
	}

	loaded, err := cmd.app.Files.Load(ctx, src)
	if err != nil {
		return err
	}

	snap := loaded.Doc.Snapshot()
	if docio.Lossy(docio.FormatFor(dst), snap) {
		p.Warnf("%s: %d comment(s) will be written as fortunes", src, len(snap.Comments))
	}

	if cmd.dryRun {
		p.Infof("%s -> %s", src, dst)
		return nil
	}

	if _, err := cmd.app.Files.Save(ctx, dst, snap); err != nil {
		return err
	}

	p.Successf("%s -> %s (%d comments, %d fortunes)", src, dst, len(snap.Comments), len(snap.Fortunes))
	return nil
}

// expandSources resolves glob patterns. Arguments without glob
// metacharacters are kept as given so a missing file is reported by the
// loader rather than silently dropped.
func expandSources(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			if !seen[arg] {
				seen[arg] = true
				out = append(out, arg)
			}
			continue
		}

		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%q matched no files: %w", arg, fs.ErrNotExist)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out, nil
}

// TargetPath returns where src is written in format f. Omifiles get the
// .omi suffix added; strfiles get it removed, or ".txt" when src had none.
func TargetPath(src string, f docio.Format, outDir string) string {
	dst := src
	switch {
	case f == docio.Omikuji && !strings.HasSuffix(src, docio.OmiExt):
		dst = strings.TrimSuffix(src, filepath.Ext(src)) + docio.OmiExt
	case f == docio.Strfile && strings.HasSuffix(src, docio.OmiExt):
		dst = strings.TrimSuffix(src, docio.OmiExt)
		if filepath.Ext(dst) == "" {
			dst += ".txt"
		}
	}

	if outDir != "" {
		dst = filepath.Join(outDir, filepath.Base(dst))
	}
	return dst
}

func opposite(f docio.Format) docio.Format {
	if f == docio.Omikuji {
		return docio.Strfile
	}
	return docio.Omikuji
}
