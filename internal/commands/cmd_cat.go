package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/kk-code-lab/rtxt/internal/reader"
	"github.com/kk-code-lab/rtxt/internal/storage"
)

// stdinName is the FILE argument that reads standard input.
const stdinName = "-"

type CatCmd struct {
	flags *Flags

	// flags
	start  int
	count  int
	fit    bool
	number bool
}

// NewCatCmd creates the cat command
func NewCatCmd(flags *Flags) *CatCmd {
	return &CatCmd{flags: flags}
}

// Register adds the cat command to the application
func (cmd *CatCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "cat",
		Usage:     "Print display lines of a file",
		UsageText: "rtxt cat [--start N] [--count M] [--fit] [--number] FILE",
		Description: `Prints the file wrapped exactly as the display shows it. Use "-" as FILE
to read standard input. --fit wraps to the terminal width instead of the
configured display width.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "start",
				Aliases:     []string{"s"},
				Usage:       "first display line (0-based)",
				Destination: &cmd.start,
			},
			&cli.IntFlag{
				Name:        "count",
				Aliases:     []string{"n"},
				Usage:       "number of display lines (0 = to the end)",
				Destination: &cmd.count,
			},
			&cli.BoolFlag{
				Name:        "fit",
				Usage:       "wrap to the terminal width",
				Destination: &cmd.fit,
			},
			&cli.BoolFlag{
				Name:        "number",
				Usage:       "prefix each line with its display line number",
				Destination: &cmd.number,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *CatCmd) run(ctx context.Context, c *cli.Command) error {
	if c.NArg() < 1 {
		return fmt.Errorf("missing FILE argument. Usage: %s", c.UsageText)
	}
	path := c.Args().First()

	width := 0
	if cmd.fit {
		width = terminalWidth(os.Stdout)
		if cmd.number && width > 8 {
			width -= 8
		}
	}

	st, err := openSource(path, os.Stdin)
	if err != nil {
		return err
	}
	r := cmd.flags.newReader(st, width)
	if err := r.Open(path); err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	return cmd.print(c.Root().Writer, r)
}

func (cmd *CatCmd) print(out io.Writer, r *reader.Reader) error {
	decoder, err := cmd.flags.decoder()
	if err != nil {
		return err
	}

	total, err := r.TotalDisplayLines()
	if err != nil {
		return err
	}
	count := cmd.count
	if count <= 0 {
		count = total
	}

	lines, readErr := r.ReadRange(cmd.start, count)

	w := bufio.NewWriter(out)
	start := max(cmd.start, 0)
	for i, line := range lines {
		if cmd.number {
			_, _ = fmt.Fprintf(w, "%6d  ", start+i)
		}
		_, _ = w.WriteString(decoder.String(line))
		_ = w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return readErr
}

// openSource returns the storage FILE is read from: standard input for "-",
// the filesystem otherwise.
func openSource(path string, stdin io.Reader) (storage.Storage, error) {
	if path != stdinName {
		return storage.OS{}, nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	mem := storage.NewMem()
	mem.Put(stdinName, data)
	return mem, nil
}

// terminalWidth returns the column count of f, or 0 when f is not a terminal.
func terminalWidth(f *os.File) int {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return w
}
