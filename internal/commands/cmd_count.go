package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	fsutil "github.com/kk-code-lab/rtxt/internal/fs"
	"github.com/kk-code-lab/rtxt/internal/storage"
)

type CountCmd struct {
	flags *Flags
}

// NewCountCmd creates the count command
func NewCountCmd(flags *Flags) *CountCmd {
	return &CountCmd{flags: flags}
}

// Register adds the count command to the application
func (cmd *CountCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "count",
		Usage:     "Show how many display lines a file has",
		UsageText: "rtxt count FILE",
		Description: `Builds the display-line index for FILE and reports its size. A file is
truncated when it has more display lines than the index can address, or when
a single line wraps more times than allowed.`,
		Action: cmd.run,
	})
	return app
}

func (cmd *CountCmd) run(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("missing FILE argument. Usage: %s", c.UsageText)
	}
	path := c.Args().First()

	r := cmd.flags.newReader(storage.OS{}, 0)
	if err := r.Open(path); err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	total, err := r.TotalDisplayLines()
	if err != nil {
		return err
	}
	truncated, err := r.Truncated()
	if err != nil {
		return err
	}
	size, err := r.Size()
	if err != nil {
		return err
	}

	head := fsutil.Entry{}
	if enc, binary, err := fsutil.SniffFile(path); err == nil {
		head.Encoding, head.Binary = enc, binary
	}

	w := tabwriter.NewWriter(c.Root().Writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "file\t%s\n", path)
	_, _ = fmt.Fprintf(w, "bytes\t%d\n", size)
	_, _ = fmt.Fprintf(w, "lines\t%d\n", total)
	_, _ = fmt.Fprintf(w, "width\t%d\n", r.Options().Width)
	_, _ = fmt.Fprintf(w, "truncated\t%t\n", truncated)
	_, _ = fmt.Fprintf(w, "encoding\t%s\n", head.Kind())
	return w.Flush()
}
