package commands

import (
	"github.com/rs/zerolog"

	"github.com/kk-code-lab/rtxt/internal/bookmark"
	"github.com/kk-code-lab/rtxt/internal/config"
	"github.com/kk-code-lab/rtxt/internal/reader"
	"github.com/kk-code-lab/rtxt/internal/storage"
	"github.com/kk-code-lab/rtxt/internal/textutil"
)

// Flags holds the global flags and what the Before hook builds from them.
type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string
	Width      int
	Lines      int
	Charset    string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Bookmarks is backed by the database opened in the Before hook
	Bookmarks *bookmark.Store

	Logger zerolog.Logger
}

// applyOverrides copies command-line geometry over the loaded config.
func (f *Flags) applyOverrides() error {
	if f.Width > 0 {
		f.Config.Display.Width = f.Width
	}
	if f.Lines > 0 {
		f.Config.Display.LinesPerScreen = f.Lines
	}
	if f.Charset != "" {
		f.Config.Display.Charset = f.Charset
	}
	return f.Config.Validate()
}

func (f *Flags) newReader(s storage.Storage, width int) *reader.Reader {
	opts := f.Config.ReaderOptions()
	if width > 0 {
		opts.Width = width
	}
	return reader.New(s, opts, f.Logger.With().Str("component", "reader").Logger())
}

func (f *Flags) decoder() (*textutil.Decoder, error) {
	return textutil.NewDecoder(f.Config.Display.Charset)
}
