package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/omiquji/internal/core/omidoc"
	"github.com/hay-kot/omiquji/internal/core/styles"
	"github.com/hay-kot/omiquji/internal/core/validate"
	"github.com/hay-kot/omiquji/internal/omiquji"
	"github.com/hay-kot/omiquji/internal/printer"
	"github.com/hay-kot/omiquji/pkg/iojson"
)

type AddCmd struct {
	flags *Flags
	app   *omiquji.App

	// flags
	comment bool
	at      int
	input   iojson.FileReader[[]string]

	// stdin is read when no text argument is given; nil means os.Stdin.
	stdin io.Reader
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags, app *omiquji.App) *AddCmd {
	return &AddCmd{flags: flags, app: app, at: -1}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Add an entry to a collection",
		UsageText: "omiquji add FILE [--comment] [--at N] [TEXT]",
		Description: `Appends TEXT as a fortune (or a comment with --comment) and saves FILE.
FILE is created when it does not exist.

Without TEXT the entry is read from stdin, or prompted for when stdin is a
terminal. --from reads a JSON array of entries and adds each one.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "comment",
				Usage:       "add to the comment list instead of the fortunes",
				Destination: &cmd.comment,
			},
			&cli.IntFlag{
				Name:        "at",
				Usage:       "insert before index N instead of appending",
				Value:       -1,
				Destination: &cmd.at,
			},
			cmd.input.Flag(),
		},
		ShellComplete: RecentFileCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)
	args := c.Args().Slice()

	path, err := requireArg(args, 0, "FILE")
	if err != nil {
		return err
	}

	texts, err := cmd.texts(args[1:])
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	loaded, err := cmd.app.OpenOrNew(ctx, path)
	if err != nil {
		return err
	}

	list := omidoc.Fortunes
	if cmd.comment {
		list = omidoc.Comments
	}

	doc := loaded.Doc
	at := cmd.at
	if at > doc.Count(list) {
		return fmt.Errorf("--at %d is out of range (the %s list has %d entries)", at, list, doc.Count(list))
	}

	for _, text := range texts {
		if at < 0 {
			doc.Add(list, text)
			continue
		}
		doc.InsertAt(list, at, text)
		at++
	}

	if _, err := cmd.app.Save(ctx, path, doc.Snapshot()); err != nil {
		return err
	}

	p.Successf("added %d %s to %s", len(texts), list, path)
	return nil
}

// texts collects the entries to add from the argument, --from, stdin or an
// interactive prompt, in that order of preference.
func (cmd *AddCmd) texts(args []string) ([]string, error) {
	if len(args) > 0 {
		text := strings.Join(args, " ")
		if err := validate.EntryText(text); err != nil {
			return nil, err
		}
		return []string{text}, nil
	}

	stdin := cmd.stdin
	if stdin == nil {
		stdin = os.Stdin
	}

	if cmd.input.Set() {
		texts, err := cmd.input.Read(stdin)
		if err != nil {
			return nil, err
		}
		if len(texts) == 0 {
			return nil, errors.New("--from input holds no entries")
		}
		return texts, nil
	}

	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		text, err := promptText(cmd.comment)
		if err != nil {
			return nil, err
		}
		return []string{text}, nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	if err := validate.EntryText(string(data)); err != nil {
		return nil, fmt.Errorf("no text given on stdin: %w", err)
	}
	return []string{string(data)}, nil
}

func promptText(comment bool) (string, error) {
	title := "New fortune"
	if comment {
		title = "New comment"
	}

	var text string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title(title).
				Description("alt+enter for a new line").
				Validate(validate.EntryText).
				Value(&text),
		),
	).WithTheme(styles.FormTheme()).Run()
	return text, err
}
