// Package reader pages through a text file in fixed-width display lines
// without holding the file in memory.
package reader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/rs/zerolog"

	"github.com/kk-code-lab/rtxt/internal/storage"
	"github.com/kk-code-lab/rtxt/internal/textutil"
)

// Reader owns at most one open file (the session) together with its
// display-line index. The index is built on first use and dropped when the
// file is closed or another file is opened.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	storage storage.Storage
	opts    Options
	log     zerolog.Logger

	path  string
	file  storage.File
	index *Index
	buf   []byte
}

// New returns a Reader with no open file.
func New(s storage.Storage, opts Options, logger zerolog.Logger) *Reader {
	opts = opts.withDefaults()
	return &Reader{
		storage: s,
		opts:    opts,
		log:     logger,
		buf:     make([]byte, 0, opts.RawLineCapacity),
	}
}

// Options returns the geometry in effect.
func (r *Reader) Options() Options {
	return r.opts
}

// Open starts a session on path, closing any previous one first.
func (r *Reader) Open(path string) error {
	if err := r.Close(); err != nil {
		r.log.Warn().Err(err).Msg("closing previous file")
	}

	f, err := r.storage.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("open %s: %w", path, ErrNotFound)
		}
		return &IOError{Op: "open", Path: path, Err: err}
	}

	r.path = path
	r.file = f
	r.index = nil
	r.log.Debug().Str("path", path).Int64("size", f.Size()).Msg("file opened")
	return nil
}

// Close ends the session. It is a no-op when nothing is open.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	path := r.path
	err := r.file.Close()
	r.file = nil
	r.index = nil
	r.path = ""
	if err != nil {
		return &IOError{Op: "close", Path: path, Err: err}
	}
	r.log.Debug().Str("path", path).Msg("file closed")
	return nil
}

// IsOpen reports whether a session is active.
func (r *Reader) IsOpen() bool {
	return r.file != nil
}

// Path is the path of the open file, or "" when none is open.
func (r *Reader) Path() string {
	return r.path
}

// Size is the byte size of the open file.
func (r *Reader) Size() (int64, error) {
	if r.file == nil {
		return 0, ErrNotOpen
	}
	return r.file.Size(), nil
}

// TotalDisplayLines returns the number of addressable display lines,
// scanning the file once per session to build the index.
func (r *Reader) TotalDisplayLines() (int, error) {
	if err := r.ensureIndex(); err != nil {
		return 0, err
	}
	return r.index.Len(), nil
}

// Truncated reports whether part of the file cannot be reached through the
// index. Truncated files still page normally up to the last indexed line.
func (r *Reader) Truncated() (bool, error) {
	if err := r.ensureIndex(); err != nil {
		return false, err
	}
	return r.index.Truncated(), nil
}

func (r *Reader) ensureIndex() error {
	if r.file == nil {
		return ErrNotOpen
	}
	if r.index != nil {
		return nil
	}

	started := time.Now()
	ix, err := BuildIndex(r.file, r.opts)
	if err != nil {
		return &IOError{Op: "index", Path: r.path, Err: err}
	}
	r.index = ix

	event := r.log.Debug()
	if ix.Truncated() {
		event = r.log.Info()
	}
	event.
		Str("path", r.path).
		Int("lines", ix.Len()).
		Int64("bytes", ix.scanned).
		Bool("full", ix.Full()).
		Int("clipped", ix.ClippedLines()).
		Dur("took", time.Since(started)).
		Msg("index built")
	return nil
}

// ReadRange returns up to count display lines starting at display line
// start. A negative start reads from the top; a start past the last line
// yields no lines. Fewer lines come back near the end of the indexed range.
//
// Each call seeks to the raw line holding start and wraps forward from there;
// nothing is cached between calls. If storage fails part way, the lines read
// so far are returned with the error.
func (r *Reader) ReadRange(start, count int) ([]string, error) {
	if err := r.ensureIndex(); err != nil {
		return nil, err
	}

	total := r.index.Len()
	if start < 0 {
		start = 0
	}
	if count <= 0 || start >= total {
		return nil, nil
	}

	if err := r.file.Seek(r.index.Offset(start)); err != nil {
		return nil, &IOError{Op: "seek", Path: r.path, Err: err}
	}

	lines := make([]string, 0, min(count, total-start))
	current := r.index.firstSibling(start)

	for len(lines) < count && current < total {
		raw, _, err := readRawLine(r.file, r.buf, r.opts.RawLineCapacity)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return lines, &IOError{Op: "read", Path: r.path, Err: err}
		}

		wrapped, _ := textutil.Wrap(raw, r.opts.Width, r.opts.MaxWrapsPerLine)
		for _, line := range wrapped {
			if current >= total || len(lines) == count {
				break
			}
			if current >= start {
				lines = append(lines, line)
			}
			current++
		}
	}
	return lines, nil
}
