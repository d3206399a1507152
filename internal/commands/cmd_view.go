package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli/v3"

	apppkg "github.com/kk-code-lab/rtxt/internal/app"
	fsutil "github.com/kk-code-lab/rtxt/internal/fs"
	statepkg "github.com/kk-code-lab/rtxt/internal/state"
	"github.com/kk-code-lab/rtxt/internal/storage"
	pagerui "github.com/kk-code-lab/rtxt/internal/ui/pager"
)

// newScreen returns the screen the device is drawn on; nil means the
// terminal.
var newScreen = func() tcell.Screen { return nil }

type ViewCmd struct {
	flags *Flags
}

// NewViewCmd creates the view command
func NewViewCmd(flags *Flags) *ViewCmd {
	return &ViewCmd{flags: flags}
}

// Register adds the view command to the application
func (cmd *ViewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "view",
		Usage:     "Read a file in the emulated display",
		UsageText: "rtxt view FILE",
		Description: `Opens FILE at its bookmark. Up/Down scroll one line, PgUp/PgDn one screen,
Home/End jump. Enter or Esc closes the file and saves the position.`,
		Action: cmd.run,
	})
	return app
}

func (cmd *ViewCmd) run(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("missing FILE argument. Usage: %s", c.UsageText)
	}
	return runDevice(ctx, cmd.flags, statepkg.OpenFileAction{Path: c.Args().First()})
}

type BrowseCmd struct {
	flags *Flags
}

// NewBrowseCmd creates the browse command
func NewBrowseCmd(flags *Flags) *BrowseCmd {
	return &BrowseCmd{flags: flags}
}

// Register adds the browse command to the application
func (cmd *BrowseCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "browse",
		Usage:     "Pick a text file from a directory",
		UsageText: "rtxt browse [DIR]",
		Description: `Lists the .txt files in DIR (default: the current directory) in a menu.
Selecting "< Back" or pressing q leaves rtxt.`,
		Action: cmd.run,
	})
	return app
}

func (cmd *BrowseCmd) run(ctx context.Context, c *cli.Command) error {
	dir := "."
	if c.NArg() > 0 {
		dir = c.Args().First()
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", dir, err)
	}
	return runDevice(ctx, cmd.flags, statepkg.LoadDirectoryAction{Dir: abs})
}

// runDevice shows the emulated reader until the user quits.
func runDevice(ctx context.Context, flags *Flags, initial statepkg.Action) error {
	cfg := flags.Config
	decoder, err := flags.decoder()
	if err != nil {
		return err
	}

	logger := flags.Logger.With().Str("component", "device").Logger()
	book := pagerui.New(
		flags.newReader(storage.OS{}, 0),
		flags.Bookmarks,
		cfg.Display.LinesPerScreen,
		cfg.Bookmarks.SaveEvery,
		logger,
	)
	defer func() {
		if err := book.Close(ctx); err != nil {
			logger.Error().Err(err).Msg("close book")
		}
	}()

	app, err := apppkg.NewApplication(ctx, newScreen(), book, fsutil.ListTextFiles, apppkg.Options{
		Columns:  cfg.Display.Width,
		Rows:     cfg.Display.LinesPerScreen,
		MaxFiles: cfg.Menu.MaxFiles,
		Decoder:  decoder,
	}, logger)
	if err != nil {
		return fmt.Errorf("initialize screen: %w", err)
	}

	app.Dispatch(initial)
	app.Run()
	return nil
}
