package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/omiquji/internal/core/config"
	"github.com/hay-kot/omiquji/internal/core/search"
	"github.com/hay-kot/omiquji/internal/omiquji"
	"github.com/hay-kot/omiquji/internal/printer"
	"github.com/hay-kot/omiquji/pkg/iojson"
)

// errNoMatch makes find exit non-zero without printing an error, like grep.
var errNoMatch = cli.Exit("", 1)

type FindCmd struct {
	flags *Flags
	app   *omiquji.App

	// flags
	list       string
	matchCase  bool
	wholeWords bool
	regexp     bool
	backwards  bool
	all        bool
	jsonOutput bool
}

// NewFindCmd creates a new find command
func NewFindCmd(flags *Flags, app *omiquji.App) *FindCmd {
	return &FindCmd{flags: flags, app: app}
}

// Register adds the find command to the application
func (cmd *FindCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "find",
		Usage:     "Search one list of a collection",
		UsageText: "omiquji find FILE TEXT [--list comments|fortunes] [--case] [--word] [--regexp] [--backwards] [--all]",
		Description: `Runs the editor's find-next search over one list and prints the first
match, or every match with --all. Exits 1 when nothing matches.

Search options default to the search section of the config file; flags
given on the command line switch an option on.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "list",
				Aliases:     []string{"l"},
				Usage:       "list to search (comments, fortunes)",
				Value:       "fortunes",
				Destination: &cmd.list,
			},
			&cli.BoolFlag{Name: "case", Usage: "match case", Destination: &cmd.matchCase},
			&cli.BoolFlag{Name: "word", Usage: "match whole words", Destination: &cmd.wholeWords},
			&cli.BoolFlag{Name: "regexp", Aliases: []string{"E"}, Usage: "treat TEXT as a regular expression", Destination: &cmd.regexp},
			&cli.BoolFlag{Name: "backwards", Usage: "search from the last entry towards the first", Destination: &cmd.backwards},
			&cli.BoolFlag{Name: "all", Aliases: []string{"a"}, Usage: "print every match", Destination: &cmd.all},
			&cli.BoolFlag{Name: "json", Usage: "output as JSON", Destination: &cmd.jsonOutput},
		},
		ShellComplete: RecentFileCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

// Match is one search hit.
type Match struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

func (cmd *FindCmd) run(ctx context.Context, c *cli.Command) error {
	args := c.Args().Slice()
	path, err := requireArg(args, 0, "FILE")
	if err != nil {
		return err
	}
	text, err := requireArg(args, 1, "TEXT")
	if err != nil {
		return err
	}

	list, err := singleList(cmd.list)
	if err != nil {
		return err
	}

	req := cmd.request(text)
	if err := config.ValidateSearch(req); err != nil {
		return err
	}

	loaded, err := cmd.app.Open(ctx, path)
	if err != nil {
		return err
	}

	entries := loaded.Doc.Entries(list)
	matches := FindAll(search.NewEngine(), list.String(), req, entries, cmd.all)
	if len(matches) > 0 {
		cmd.app.Recent.AddSearch(ctx, text)
	}

	if cmd.jsonOutput {
		if matches == nil {
			matches = []Match{}
		}
		if err := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, matches); err != nil {
			return err
		}
	} else {
		p := printer.Ctx(ctx)
		for _, m := range matches {
			p.Entry(m.Index, m.Text)
		}
	}

	if len(matches) == 0 {
		return errNoMatch
	}
	return nil
}

func (cmd *FindCmd) request(text string) search.Request {
	req := cmd.flags.searchDefaults().Request(text)
	req.FromStart = true
	req.MatchCase = req.MatchCase || cmd.matchCase
	req.MatchWholeWords = req.MatchWholeWords || cmd.wholeWords
	req.IsRegexp = req.IsRegexp || cmd.regexp
	req.SearchBackwards = req.SearchBackwards || cmd.backwards
	return req
}

// FindAll runs find-next over entries until the search runs past the end.
// With all unset it stops after the first match.
func FindAll(e *search.Engine, target string, req search.Request, entries []string, all bool) []Match {
	var matches []Match
	seen := make(map[int]bool)
	for {
		idx, ok := e.FindNext(target, req, entries, -1)
		// A repeat after a match in the last entry wraps to the start, so
		// stop at the first index seen twice.
		if !ok || seen[idx] {
			return matches
		}
		seen[idx] = true
		matches = append(matches, Match{Index: idx, Text: entries[idx]})
		if !all {
			return matches
		}
	}
}

func (f *Flags) searchDefaults() config.SearchConfig {
	if f.Config == nil {
		return config.SearchConfig{}
	}
	return f.Config.Search
}

