package state

import (
	"context"

	fsutil "github.com/kk-code-lab/rtxt/internal/fs"
)

// FileEntry mirrors fs.Entry so UI/state code can rely on a stable type.
type FileEntry = fsutil.Entry

// Mode is the screen the device is showing.
type Mode int

const (
	ModeMenu Mode = iota
	ModeReading
	ModeError
)

func (m Mode) String() string {
	switch m {
	case ModeReading:
		return "reading"
	case ModeError:
		return "error"
	default:
		return "menu"
	}
}

// BackLabel is the first menu entry.
const BackLabel = "< Back"

// EmptyMenuLabel is shown when a directory has no text files.
const EmptyMenuLabel = "No TXT Files Found"

// Book is the open-file controller the reducer drives.
type Book interface {
	Open(ctx context.Context, path string) error
	Close(ctx context.Context) error
	ScrollBy(ctx context.Context, delta int) (bool, error)
	PageUp(ctx context.Context) (bool, error)
	PageDown(ctx context.Context) (bool, error)
	JumpTo(ctx context.Context, line int) (bool, error)
	Visible() ([]string, error)
	Path() string
	Top() int
	MaxTop() int
	Total() int
	Truncated() bool
}

// Lister enumerates the text files of a directory.
type Lister func(dir string, max int) ([]FileEntry, bool, error)

// ReadingView is what the reading screen draws.
type ReadingView struct {
	Name      string
	Lines     []string
	Top       int
	Total     int
	Truncated bool
}

// AppState is the single source of truth
type AppState struct {
	Mode Mode

	// File menu
	Dir            string
	HasMenu        bool
	Files          []FileEntry
	FilesTruncated bool
	MaxFiles       int
	SelectedIndex  int // 0 is the back entry, i+1 is Files[i]
	ScrollOffset   int

	// Reading
	Reading ReadingView

	// Error screen
	ErrorTitle  string
	ErrorDetail string

	// Geometry of the emulated device window.
	Columns int
	Rows    int

	// Dimensions
	ScreenWidth  int
	ScreenHeight int

	ShouldQuit bool
	LastError  error
}

// MenuItemCount counts the back entry plus one entry per file.
func (s *AppState) MenuItemCount() int {
	return len(s.Files) + 1
}

// MenuLabel returns the text of menu item i.
func (s *AppState) MenuLabel(i int) string {
	if i == 0 {
		return BackLabel
	}
	if i-1 < len(s.Files) {
		return s.Files[i-1].Name
	}
	return ""
}

// CurrentFile returns the file under the cursor, or nil on the back entry.
func (s *AppState) CurrentFile() *FileEntry {
	if s.SelectedIndex < 1 || s.SelectedIndex > len(s.Files) {
		return nil
	}
	return &s.Files[s.SelectedIndex-1]
}

// VisibleMenuRange returns the half-open range of menu items on screen.
func (s *AppState) VisibleMenuRange() (int, int) {
	end := s.ScrollOffset + s.Rows
	if total := s.MenuItemCount(); end > total {
		end = total
	}
	return s.ScrollOffset, end
}
