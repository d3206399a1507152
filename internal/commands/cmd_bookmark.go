package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/kk-code-lab/rtxt/internal/bookmark"
)

type BookmarkCmd struct {
	flags *Flags
}

// NewBookmarkCmd creates the bookmark command
func NewBookmarkCmd(flags *Flags) *BookmarkCmd {
	return &BookmarkCmd{flags: flags}
}

// Register adds the bookmark command to the application
func (cmd *BookmarkCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "bookmark",
		Usage:     "Inspect and edit saved reading positions",
		UsageText: "rtxt bookmark <command>",
		Description: `Bookmarks are keyed by the file's base name, cut to a short key, so a
file keeps its position wherever it is opened from.`,
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Print the saved line of FILE (-1 when none)",
				UsageText: "rtxt bookmark get FILE",
				Action:    cmd.runGet,
			},
			{
				Name:      "set",
				Usage:     "Save LINE as the position of FILE",
				UsageText: "rtxt bookmark set FILE LINE",
				Action:    cmd.runSet,
			},
			{
				Name:      "rm",
				Usage:     "Forget the position of FILE",
				UsageText: "rtxt bookmark rm FILE",
				Action:    cmd.runRm,
			},
			{
				Name:      "ls",
				Usage:     "List all saved positions",
				UsageText: "rtxt bookmark ls",
				Action:    cmd.runLs,
			},
		},
	})
	return app
}

func (cmd *BookmarkCmd) runGet(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("missing FILE argument. Usage: %s", c.UsageText)
	}
	line, err := cmd.flags.Bookmarks.Load(ctx, bookmark.IdentityOf(c.Args().First()))
	if err != nil {
		return fmt.Errorf("load bookmark: %w", err)
	}
	_, _ = fmt.Fprintln(c.Root().Writer, line)
	return nil
}

func (cmd *BookmarkCmd) runSet(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 2 {
		return fmt.Errorf("missing arguments. Usage: %s", c.UsageText)
	}
	line, err := strconv.Atoi(c.Args().Get(1))
	if err != nil || line < 0 {
		return fmt.Errorf("invalid line %q: must be a non-negative integer", c.Args().Get(1))
	}
	if err := cmd.flags.Bookmarks.Save(ctx, bookmark.IdentityOf(c.Args().First()), line); err != nil {
		return fmt.Errorf("save bookmark: %w", err)
	}
	return nil
}

func (cmd *BookmarkCmd) runRm(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("missing FILE argument. Usage: %s", c.UsageText)
	}
	if err := cmd.flags.Bookmarks.Delete(ctx, bookmark.IdentityOf(c.Args().First())); err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	return nil
}

func (cmd *BookmarkCmd) runLs(ctx context.Context, c *cli.Command) error {
	entries, err := cmd.flags.Bookmarks.List(ctx)
	if err != nil {
		return fmt.Errorf("list bookmarks: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintf(os.Stderr, "No bookmarks saved\n")
		return nil
	}

	w := tabwriter.NewWriter(c.Root().Writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "KEY\tLINE")
	for _, e := range entries {
		_, _ = fmt.Fprintf(w, "%s\t%d\n", e.Key, e.Line)
	}
	return w.Flush()
}
