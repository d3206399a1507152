package state

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	fsutil "github.com/kk-code-lab/rtxt/internal/fs"
	"github.com/kk-code-lab/rtxt/internal/reader"
	"github.com/kk-code-lab/rtxt/internal/storage"
	pagerui "github.com/kk-code-lab/rtxt/internal/ui/pager"
)

func numbered(n int) []byte {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	return []byte(b.String())
}

type fixture struct {
	reducer *StateReducer
	state   *AppState
	pager   *pagerui.Pager
	listErr error
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mem := storage.NewMem()
	mem.Put("/books/alpha.txt", numbered(20))
	mem.Put("/books/beta.txt", numbered(3))

	r := reader.New(mem, reader.DefaultOptions(), zerolog.Nop())
	p := pagerui.New(r, nil, 4, 10, zerolog.Nop())

	f := &fixture{pager: p}
	list := func(dir string, max int) ([]FileEntry, bool, error) {
		if f.listErr != nil {
			return nil, false, f.listErr
		}
		return []FileEntry{
			{Name: "alpha.txt", FullPath: dir + "/alpha.txt"},
			{Name: "beta.txt", FullPath: dir + "/beta.txt"},
			{Name: "gone.txt", FullPath: dir + "/gone.txt"},
			{Name: "wide.txt", FullPath: dir + "/wide.txt", Encoding: fsutil.EncodingUTF16LE},
		}, false, nil
	}
	f.reducer = NewStateReducer(context.Background(), p, list, zerolog.Nop())
	f.state = &AppState{Columns: 32, Rows: 4, MaxFiles: 50}
	return f
}

func (f *fixture) dispatch(t *testing.T, actions ...Action) error {
	t.Helper()
	var last error
	for _, a := range actions {
		_, last = f.reducer.Reduce(f.state, a)
	}
	return last
}

func TestMenuNavigationClampsAndScrolls(t *testing.T) {
	f := newFixture(t)
	if err := f.dispatch(t, LoadDirectoryAction{Dir: "/books"}); err != nil {
		t.Fatalf("load: %v", err)
	}
	if f.state.Mode != ModeMenu || f.state.MenuItemCount() != 5 {
		t.Fatalf("mode=%v items=%d", f.state.Mode, f.state.MenuItemCount())
	}
	if f.state.MenuLabel(0) != BackLabel || f.state.CurrentFile() != nil {
		t.Fatalf("expected back entry selected first")
	}

	f.dispatch(t, NavigateUpAction{})
	if f.state.SelectedIndex != 0 {
		t.Fatalf("cursor moved above back entry")
	}

	f.dispatch(t, NavigateDownAction{}, NavigateDownAction{}, NavigateDownAction{}, NavigateDownAction{}, NavigateDownAction{})
	if f.state.SelectedIndex != 4 {
		t.Fatalf("SelectedIndex = %d, want 4", f.state.SelectedIndex)
	}
	if f.state.ScrollOffset != 1 {
		t.Fatalf("ScrollOffset = %d, want 1", f.state.ScrollOffset)
	}
	start, end := f.state.VisibleMenuRange()
	if start != 1 || end != 5 {
		t.Fatalf("visible range = %d..%d", start, end)
	}

	f.dispatch(t, ScrollHomeAction{})
	if f.state.SelectedIndex != 0 || f.state.ScrollOffset != 0 {
		t.Fatalf("home: selected=%d offset=%d", f.state.SelectedIndex, f.state.ScrollOffset)
	}
}

func TestSelectOpensAndBackReturnsToMenu(t *testing.T) {
	f := newFixture(t)
	f.dispatch(t, LoadDirectoryAction{Dir: "/books"}, NavigateDownAction{})

	if err := f.dispatch(t, SelectAction{}); err != nil {
		t.Fatalf("select: %v", err)
	}
	if f.state.Mode != ModeReading {
		t.Fatalf("mode = %v, want reading", f.state.Mode)
	}
	view := f.state.Reading
	if view.Name != "alpha.txt" || view.Total != 20 || len(view.Lines) != 4 || view.Lines[0] != "line 0" {
		t.Fatalf("unexpected view: %+v", view)
	}

	f.dispatch(t, NavigateDownAction{}, ScrollPageDownAction{})
	if f.state.Reading.Top != 5 || f.state.Reading.Lines[0] != "line 5" {
		t.Fatalf("after scrolling: top=%d lines=%q", f.state.Reading.Top, f.state.Reading.Lines)
	}
	f.dispatch(t, ScrollEndAction{})
	if f.state.Reading.Top != 16 || f.state.Reading.Lines[3] != "line 19" {
		t.Fatalf("end: top=%d lines=%q", f.state.Reading.Top, f.state.Reading.Lines)
	}

	f.dispatch(t, SelectAction{})
	if f.state.Mode != ModeMenu || f.pager.IsOpen() {
		t.Fatalf("expected menu with book closed, mode=%v", f.state.Mode)
	}
	if f.state.SelectedIndex != 1 {
		t.Fatalf("menu cursor lost: %d", f.state.SelectedIndex)
	}
}

func TestSelectBackEntryQuits(t *testing.T) {
	f := newFixture(t)
	f.dispatch(t, LoadDirectoryAction{Dir: "/books"}, SelectAction{})
	if !f.state.ShouldQuit {
		t.Fatalf("expected quit from back entry")
	}
}

func TestMissingFileShowsErrorScreen(t *testing.T) {
	f := newFixture(t)
	f.dispatch(t, LoadDirectoryAction{Dir: "/books"}, NavigateDownAction{}, NavigateDownAction{}, NavigateDownAction{})
	if f.state.SelectedIndex != 3 {
		t.Fatalf("SelectedIndex = %d, want 3", f.state.SelectedIndex)
	}

	err := f.dispatch(t, SelectAction{})
	if !errors.Is(err, reader.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if f.state.Mode != ModeError || f.state.ErrorTitle != "File Not Found" || f.state.ErrorDetail != "gone.txt" {
		t.Fatalf("unexpected error screen: %v %q %q", f.state.Mode, f.state.ErrorTitle, f.state.ErrorDetail)
	}

	f.dispatch(t, BackAction{})
	if f.state.Mode != ModeMenu || f.state.ErrorTitle != "" {
		t.Fatalf("error screen not dismissed")
	}
}

func TestWideFileIsRejected(t *testing.T) {
	f := newFixture(t)
	f.dispatch(t, LoadDirectoryAction{Dir: "/books"}, ScrollEndAction{}, SelectAction{})
	if f.state.Mode != ModeError || f.state.ErrorTitle != "Unsupported" {
		t.Fatalf("expected unsupported error, got %v %q", f.state.Mode, f.state.ErrorTitle)
	}
	if f.pager.IsOpen() {
		t.Fatalf("wide file must not be opened")
	}
}

func TestBinaryFileIsRejected(t *testing.T) {
	f := newFixture(t)
	f.reducer.list = func(dir string, max int) ([]FileEntry, bool, error) {
		return []FileEntry{{Name: "alpha.txt", FullPath: "/books/alpha.txt", Binary: true}}, false, nil
	}
	f.dispatch(t, LoadDirectoryAction{Dir: "/books"}, NavigateDownAction{}, SelectAction{})
	if f.state.Mode != ModeError || f.state.ErrorTitle != "Unsupported" || f.state.ErrorDetail != "binary" {
		t.Fatalf("expected binary rejection, got %v %q %q", f.state.Mode, f.state.ErrorTitle, f.state.ErrorDetail)
	}
	if f.pager.IsOpen() {
		t.Fatalf("binary file must not be opened")
	}
}

func TestDirectoryErrorShowsErrorScreen(t *testing.T) {
	f := newFixture(t)
	f.listErr = errors.New("no card")
	if err := f.dispatch(t, LoadDirectoryAction{Dir: "/books"}); err == nil {
		t.Fatalf("expected error")
	}
	if f.state.Mode != ModeError || f.state.ErrorTitle != "Folder Error" {
		t.Fatalf("unexpected state: %v %q", f.state.Mode, f.state.ErrorTitle)
	}
}

func TestViewWithoutMenuQuitsOnBack(t *testing.T) {
	f := newFixture(t)
	if err := f.dispatch(t, OpenFileAction{Path: "/books/beta.txt"}); err != nil {
		t.Fatalf("open: %v", err)
	}
	if f.state.Reading.Total != 3 || len(f.state.Reading.Lines) != 3 {
		t.Fatalf("unexpected view: %+v", f.state.Reading)
	}
	f.dispatch(t, BackAction{})
	if !f.state.ShouldQuit || f.pager.IsOpen() {
		t.Fatalf("expected quit with book closed")
	}
}

func TestQuitClosesBook(t *testing.T) {
	f := newFixture(t)
	f.dispatch(t, OpenFileAction{Path: "/books/alpha.txt"}, QuitAction{})
	if !f.state.ShouldQuit || f.pager.IsOpen() {
		t.Fatalf("expected quit with book closed")
	}
}

func TestRefreshKeepsSelection(t *testing.T) {
	f := newFixture(t)
	f.dispatch(t, LoadDirectoryAction{Dir: "/books"}, NavigateDownAction{}, NavigateDownAction{})
	f.dispatch(t, RefreshDirectoryAction{})
	if file := f.state.CurrentFile(); file == nil || file.Name != "beta.txt" {
		t.Fatalf("selection lost after refresh: %+v", file)
	}
}
