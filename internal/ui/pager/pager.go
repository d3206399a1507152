// Package pager keeps the reading position for one open book: it pages
// through a reader.Reader and persists the top line as a bookmark.
package pager

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/kk-code-lab/rtxt/internal/bookmark"
	"github.com/kk-code-lab/rtxt/internal/reader"
)

// Pager is not safe for concurrent use.
type Pager struct {
	reader    *reader.Reader
	store     *bookmark.Store
	rows      int
	saveEvery int
	logger    zerolog.Logger

	tracker   *bookmark.Tracker
	top       int
	total     int
	truncated bool
}

// New returns a Pager showing rows lines at a time. store may be nil, in
// which case positions are not remembered.
func New(r *reader.Reader, store *bookmark.Store, rows, saveEvery int, logger zerolog.Logger) *Pager {
	if rows < 1 {
		rows = 1
	}
	return &Pager{
		reader:    r,
		store:     store,
		rows:      rows,
		saveEvery: saveEvery,
		logger:    logger,
	}
}

// Open starts reading path at its bookmark, if any. Any book already open
// is closed first.
func (p *Pager) Open(ctx context.Context, path string) error {
	if p.reader.IsOpen() {
		if err := p.Close(ctx); err != nil {
			p.logger.Warn().Err(err).Msg("close previous book")
		}
	}

	if err := p.reader.Open(path); err != nil {
		return err
	}
	total, err := p.reader.TotalDisplayLines()
	if err != nil {
		_ = p.reader.Close()
		return err
	}
	truncated, _ := p.reader.Truncated()

	p.total = total
	p.truncated = truncated
	p.top = 0
	p.tracker = nil

	if p.store != nil {
		identity := bookmark.IdentityOf(path)
		saved, err := p.store.Load(ctx, identity)
		if err != nil {
			p.logger.Warn().Err(err).Str("path", path).Msg("load bookmark")
		} else if saved != bookmark.None {
			p.top = p.clamp(saved)
		}
		p.tracker = bookmark.NewTracker(p.store, identity, p.saveEvery)
	}

	p.logger.Info().
		Str("path", path).
		Int("total", total).
		Int("top", p.top).
		Bool("truncated", truncated).
		Msg("book opened")
	return nil
}

// Close saves the position and releases the file. It is a no-op when no
// book is open.
func (p *Pager) Close(ctx context.Context) error {
	if !p.reader.IsOpen() {
		return nil
	}

	var saveErr error
	if p.tracker != nil {
		saveErr = p.tracker.Flush(ctx, p.top)
	}
	closeErr := p.reader.Close()

	p.tracker = nil
	p.top = 0
	p.total = 0
	p.truncated = false
	return errors.Join(saveErr, closeErr)
}

// IsOpen reports whether a book is open.
func (p *Pager) IsOpen() bool { return p.reader.IsOpen() }

// Path returns the open book's path.
func (p *Pager) Path() string { return p.reader.Path() }

// Top is the display line at the top of the window.
func (p *Pager) Top() int { return p.top }

// Total is the number of indexed display lines.
func (p *Pager) Total() int { return p.total }

// Rows is the window height in display lines.
func (p *Pager) Rows() int { return p.rows }

// Truncated reports whether the book is longer than its index.
func (p *Pager) Truncated() bool { return p.truncated }

// MaxTop is the last top line that still fills the window.
func (p *Pager) MaxTop() int {
	if p.total <= p.rows {
		return 0
	}
	return p.total - p.rows
}

func (p *Pager) clamp(line int) int {
	if line < 0 {
		return 0
	}
	if maxTop := p.MaxTop(); line > maxTop {
		return maxTop
	}
	return line
}

// ScrollBy moves the window by delta lines. Moves that hit an edge without
// changing the top line are not counted toward the save cadence.
func (p *Pager) ScrollBy(ctx context.Context, delta int) (bool, error) {
	return p.JumpTo(ctx, p.top+delta)
}

// PageDown advances one window.
func (p *Pager) PageDown(ctx context.Context) (bool, error) {
	return p.ScrollBy(ctx, p.rows)
}

// PageUp goes back one window.
func (p *Pager) PageUp(ctx context.Context) (bool, error) {
	return p.ScrollBy(ctx, -p.rows)
}

// JumpTo moves the top of the window to line, clamped to the book.
func (p *Pager) JumpTo(ctx context.Context, line int) (bool, error) {
	if !p.reader.IsOpen() {
		return false, reader.ErrNotOpen
	}
	next := p.clamp(line)
	if next == p.top {
		return false, nil
	}
	p.top = next
	if p.tracker != nil {
		saved, err := p.tracker.Moved(ctx, next)
		if err != nil {
			return true, err
		}
		if saved {
			p.logger.Debug().Str("path", p.Path()).Int("line", next).Msg("bookmark saved")
		}
	}
	return true, nil
}

// Visible returns the display lines currently in the window.
func (p *Pager) Visible() ([]string, error) {
	return p.reader.ReadRange(p.top, p.rows)
}
