package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/kk-code-lab/rtxt/internal/bookmark"
	"github.com/kk-code-lab/rtxt/internal/config"
	"github.com/kk-code-lab/rtxt/internal/kvstore"
	"github.com/kk-code-lab/rtxt/internal/logging"
)

// NewRoot builds the rtxt command tree.
func NewRoot(version string) *cli.Command {
	var (
		logCloser func()
		database  *kvstore.Store
	)

	flags := &Flags{}

	app := &cli.Command{
		Name:      "rtxt",
		Usage:     "Read plain text files on a pocket-reader sized screen",
		UsageText: "rtxt [global options] command [command options]",
		Description: `rtxt pages through text files 32 characters and 4 lines at a time, the way a
pocket e-reader with a tiny OLED does. Long files are never loaded into memory:
a byte-offset index maps display lines to file positions.

The last line read in every file is remembered and restored next time.`,
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("RTXT_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/rtxt.log)",
				Sources:     cli.EnvVars("RTXT_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("RTXT_CONFIG"),
				Value:       config.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory (bookmarks database and logs)",
				Sources:     cli.EnvVars("RTXT_DATA_DIR"),
				Value:       config.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.IntFlag{
				Name:        "width",
				Usage:       "characters per display line (overrides config)",
				Destination: &flags.Width,
			},
			&cli.IntFlag{
				Name:        "lines",
				Usage:       "display lines per screen (overrides config)",
				Destination: &flags.Lines,
			},
			&cli.StringFlag{
				Name:        "charset",
				Usage:       "single-byte charset used to draw text (latin1, cp437, windows-1252, ...)",
				Destination: &flags.Charset,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg
			if err := flags.applyOverrides(); err != nil {
				return ctx, fmt.Errorf("invalid flags: %w", err)
			}

			// Always log to a file; the terminal belongs to the reader.
			logFile := flags.LogFile
			if logFile == "" {
				logFile = cfg.LogFile()
			}
			logger, closer, err := logging.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer
			flags.Logger = logger

			database, err = kvstore.Open(cfg.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("open database: %w", err)
			}
			flags.Bookmarks = bookmark.NewStore(database, cfg.Bookmarks.KeyLimit)

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if database != nil {
				if err := database.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close database")
					return err
				}
			}
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	app = NewViewCmd(flags).Register(app)
	app = NewBrowseCmd(flags).Register(app)
	app = NewCatCmd(flags).Register(app)
	app = NewCountCmd(flags).Register(app)
	app = NewBookmarkCmd(flags).Register(app)

	return app
}
