package state

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/kk-code-lab/rtxt/internal/reader"
)

// StateReducer applies actions to the AppState. It owns the side effects:
// listing directories and driving the open Book.
type StateReducer struct {
	ctx    context.Context
	book   Book
	list   Lister
	logger zerolog.Logger
}

// NewStateReducer creates a reducer around book and list.
func NewStateReducer(ctx context.Context, book Book, list Lister, logger zerolog.Logger) *StateReducer {
	return &StateReducer{ctx: ctx, book: book, list: list, logger: logger}
}

// Reduce applies action to state. Errors are also shown on the error screen;
// the returned error is for logging.
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	switch a := action.(type) {

	// ===== NAVIGATION =====

	case NavigateDownAction:
		switch state.Mode {
		case ModeMenu:
			if state.SelectedIndex >= state.MenuItemCount()-1 {
				return state, nil
			}
			state.SelectedIndex++
			state.updateScrollVisibility()
		case ModeReading:
			return state, r.scroll(state, func(ctx context.Context) (bool, error) {
				return r.book.ScrollBy(ctx, 1)
			})
		}
		return state, nil

	case NavigateUpAction:
		switch state.Mode {
		case ModeMenu:
			if state.SelectedIndex == 0 {
				return state, nil
			}
			state.SelectedIndex--
			state.updateScrollVisibility()
		case ModeReading:
			return state, r.scroll(state, func(ctx context.Context) (bool, error) {
				return r.book.ScrollBy(ctx, -1)
			})
		}
		return state, nil

	case ScrollPageDownAction:
		switch state.Mode {
		case ModeMenu:
			state.SelectedIndex = min(state.SelectedIndex+state.Rows, state.MenuItemCount()-1)
			state.updateScrollVisibility()
		case ModeReading:
			return state, r.scroll(state, r.book.PageDown)
		}
		return state, nil

	case ScrollPageUpAction:
		switch state.Mode {
		case ModeMenu:
			state.SelectedIndex = max(state.SelectedIndex-state.Rows, 0)
			state.updateScrollVisibility()
		case ModeReading:
			return state, r.scroll(state, r.book.PageUp)
		}
		return state, nil

	case ScrollHomeAction:
		switch state.Mode {
		case ModeMenu:
			state.SelectedIndex = 0
			state.updateScrollVisibility()
		case ModeReading:
			return state, r.scroll(state, func(ctx context.Context) (bool, error) {
				return r.book.JumpTo(ctx, 0)
			})
		}
		return state, nil

	case ScrollEndAction:
		switch state.Mode {
		case ModeMenu:
			state.SelectedIndex = state.MenuItemCount() - 1
			state.updateScrollVisibility()
		case ModeReading:
			return state, r.scroll(state, func(ctx context.Context) (bool, error) {
				return r.book.JumpTo(ctx, r.book.MaxTop())
			})
		}
		return state, nil

	case SelectAction:
		switch state.Mode {
		case ModeMenu:
			if state.SelectedIndex == 0 {
				state.ShouldQuit = true
				return state, nil
			}
			file := state.CurrentFile()
			if file == nil {
				return state, nil
			}
			if !file.Readable() {
				r.showError(state, "Unsupported", file.Kind())
				return state, nil
			}
			return state, r.openBook(state, file.FullPath)
		case ModeReading:
			return state, r.leaveBook(state)
		case ModeError:
			r.dismissError(state)
		}
		return state, nil

	case BackAction:
		switch state.Mode {
		case ModeReading:
			return state, r.leaveBook(state)
		case ModeError:
			r.dismissError(state)
		}
		return state, nil

	// ===== FILES =====

	case OpenFileAction:
		return state, r.openBook(state, a.Path)

	case LoadDirectoryAction:
		state.Dir = a.Dir
		state.HasMenu = true
		state.SelectedIndex = 0
		state.ScrollOffset = 0
		return state, r.loadDirectory(state)

	case RefreshDirectoryAction:
		if !state.HasMenu || state.Mode != ModeMenu {
			return state, nil
		}
		selected := ""
		if file := state.CurrentFile(); file != nil {
			selected = file.Name
		}
		if err := r.loadDirectory(state); err != nil {
			return state, err
		}
		state.SelectedIndex = 0
		for i, f := range state.Files {
			if f.Name == selected {
				state.SelectedIndex = i + 1
				break
			}
		}
		state.updateScrollVisibility()
		return state, nil

	// ===== VIEW =====

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		return state, nil

	// ===== APPLICATION =====

	case QuitAction:
		state.ShouldQuit = true
		if state.Mode == ModeReading {
			return state, r.closeBook(state)
		}
		return state, nil
	}

	return state, nil
}

func (r *StateReducer) scroll(state *AppState, move func(context.Context) (bool, error)) error {
	moved, err := move(r.ctx)
	if err != nil && !moved {
		return r.readFailed(state, err)
	}
	if err != nil {
		// bookmark write failed; keep reading
		r.logger.Warn().Err(err).Str("path", r.book.Path()).Msg("save bookmark")
	}
	if !moved {
		return nil
	}
	if rerr := r.refreshReading(state); rerr != nil {
		return rerr
	}
	return err
}

func (r *StateReducer) openBook(state *AppState, path string) error {
	if err := r.book.Open(r.ctx, path); err != nil {
		name := filepath.Base(path)
		switch {
		case errors.Is(err, reader.ErrNotFound):
			r.showError(state, "File Not Found", name)
		default:
			r.showError(state, "Read Error", name)
		}
		state.LastError = err
		return err
	}
	state.Mode = ModeReading
	state.Reading = ReadingView{Name: filepath.Base(path)}
	return r.refreshReading(state)
}

func (r *StateReducer) refreshReading(state *AppState) error {
	lines, err := r.book.Visible()
	state.Reading.Lines = lines
	state.Reading.Top = r.book.Top()
	state.Reading.Total = r.book.Total()
	state.Reading.Truncated = r.book.Truncated()
	if err != nil {
		return r.readFailed(state, err)
	}
	return nil
}

func (r *StateReducer) readFailed(state *AppState, err error) error {
	name := state.Reading.Name
	if cerr := r.book.Close(r.ctx); cerr != nil {
		r.logger.Warn().Err(cerr).Msg("close after read failure")
	}
	r.showError(state, "Read Error", name)
	state.LastError = err
	return err
}

func (r *StateReducer) leaveBook(state *AppState) error {
	err := r.closeBook(state)
	if state.HasMenu {
		state.Mode = ModeMenu
	} else {
		state.ShouldQuit = true
	}
	return err
}

func (r *StateReducer) closeBook(state *AppState) error {
	err := r.book.Close(r.ctx)
	state.Reading = ReadingView{}
	if err != nil {
		state.LastError = err
	}
	return err
}

func (r *StateReducer) loadDirectory(state *AppState) error {
	files, truncated, err := r.list(state.Dir, state.MaxFiles)
	if err != nil {
		state.Files = nil
		state.FilesTruncated = false
		r.showError(state, "Folder Error", filepath.Base(state.Dir))
		state.LastError = err
		return err
	}
	state.Files = files
	state.FilesTruncated = truncated
	state.Mode = ModeMenu
	return nil
}

func (r *StateReducer) showError(state *AppState, title, detail string) {
	state.Mode = ModeError
	state.ErrorTitle = title
	state.ErrorDetail = detail
}

func (r *StateReducer) dismissError(state *AppState) {
	state.ErrorTitle = ""
	state.ErrorDetail = ""
	if state.HasMenu {
		state.Mode = ModeMenu
		return
	}
	state.ShouldQuit = true
}

// updateScrollVisibility keeps the menu cursor inside the visible window.
func (s *AppState) updateScrollVisibility() {
	rows := s.Rows
	if rows < 1 {
		rows = 1
	}
	if s.SelectedIndex < s.ScrollOffset {
		s.ScrollOffset = s.SelectedIndex
	}
	if s.SelectedIndex >= s.ScrollOffset+rows {
		s.ScrollOffset = s.SelectedIndex - rows + 1
	}
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
}
