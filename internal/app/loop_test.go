package app

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/kk-code-lab/rtxt/internal/bookmark"
	fsutil "github.com/kk-code-lab/rtxt/internal/fs"
	"github.com/kk-code-lab/rtxt/internal/reader"
	statepkg "github.com/kk-code-lab/rtxt/internal/state"
	"github.com/kk-code-lab/rtxt/internal/storage"
	pagerui "github.com/kk-code-lab/rtxt/internal/ui/pager"
)

type mapKV map[string]int

func (m mapKV) PutInt(_ context.Context, ns, key string, v int) error {
	m[ns+"/"+key] = v
	return nil
}

func (m mapKV) GetInt(_ context.Context, ns, key string) (int, bool, error) {
	v, ok := m[ns+"/"+key]
	return v, ok, nil
}

func (m mapKV) Delete(_ context.Context, ns, key string) error {
	delete(m, ns+"/"+key)
	return nil
}

func (m mapKV) Keys(context.Context, string) ([]string, error) { return nil, nil }

type harness struct {
	app    *Application
	screen tcell.SimulationScreen
	pager  *pagerui.Pager
	kv     mapKV
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	var b strings.Builder
	for i := 0; i < 40; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	mem := storage.NewMem()
	mem.Put("/books/novel.txt", []byte(b.String()))

	kv := mapKV{}
	r := reader.New(mem, reader.DefaultOptions(), zerolog.Nop())
	p := pagerui.New(r, bookmark.NewStore(kv, 0), 4, 10, zerolog.Nop())
	list := func(dir string, max int) ([]fsutil.Entry, bool, error) {
		return []fsutil.Entry{{Name: "novel.txt", FullPath: dir + "/novel.txt"}}, false, nil
	}

	screen := tcell.NewSimulationScreen("")
	app, err := NewApplication(context.Background(), screen, p, list, Options{Columns: 32, Rows: 4, MaxFiles: 50}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewApplication: %v", err)
	}
	screen.SetSize(80, 12)
	return &harness{app: app, screen: screen, pager: p, kv: kv}
}

func (h *harness) run(t *testing.T) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		h.app.Run()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestRunReadsAndSavesBookmarkOnQuit(t *testing.T) {
	h := newHarness(t)
	h.app.Dispatch(statepkg.LoadDirectoryAction{Dir: "/books"})

	h.screen.InjectKey(tcell.KeyDown, 0, tcell.ModNone)
	h.screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	h.screen.InjectKey(tcell.KeyPgDn, 0, tcell.ModNone)
	h.screen.InjectKey(tcell.KeyDown, 0, tcell.ModNone)
	h.screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	h.run(t)

	if h.pager.IsOpen() {
		t.Fatal("book left open after quit")
	}
	if got := h.kv["bookmarks/novel_txt"]; got != 5 {
		t.Fatalf("bookmark = %d, want 5", got)
	}
}

func TestRunEndsWhenViewedFileIsClosed(t *testing.T) {
	h := newHarness(t)
	h.kv["bookmarks/novel_txt"] = 7
	h.app.Dispatch(statepkg.OpenFileAction{Path: "/books/novel.txt"})

	if h.app.State().Reading.Top != 7 {
		t.Fatalf("bookmark not restored: top=%d", h.app.State().Reading.Top)
	}

	h.screen.InjectKey(tcell.KeyUp, 0, tcell.ModNone)
	h.screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	h.run(t)

	if got := h.kv["bookmarks/novel_txt"]; got != 6 {
		t.Fatalf("bookmark = %d, want 6", got)
	}
}

func TestRunQuitsAfterDismissingOpenError(t *testing.T) {
	h := newHarness(t)
	h.app.Dispatch(statepkg.OpenFileAction{Path: "/books/missing.txt"})
	if h.app.State().Mode != statepkg.ModeError {
		t.Fatalf("mode = %v, want error", h.app.State().Mode)
	}

	h.screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	h.run(t)
	if !h.app.State().ShouldQuit {
		t.Fatal("expected quit after dismissing error without a menu")
	}
}

// endlessScreen always has another event ready, so the goroutine polling it
// can only stop once Run has returned.
type endlessScreen struct {
	tcell.SimulationScreen
	polls atomic.Int32
}

func (s *endlessScreen) PollEvent() tcell.Event {
	if s.polls.Add(1) == 1 {
		return tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)
	}
	time.Sleep(time.Millisecond)
	return tcell.NewEventInterrupt(nil)
}

func TestRunStopsEventPollerOnQuit(t *testing.T) {
	// A plain run first, so one-time runtime goroutines (signal handling)
	// exist before the baseline is taken.
	warm := newHarness(t)
	warm.screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	warm.run(t)

	baseline := runtime.NumGoroutine()

	h := newHarness(t)
	screen := &endlessScreen{SimulationScreen: tcell.NewSimulationScreen("")}
	app, err := NewApplication(context.Background(), screen, h.pager, nil, Options{Columns: 32, Rows: 4}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewApplication: %v", err)
	}
	screen.SetSize(80, 12)
	h.app = app
	h.run(t)

	deadline := time.Now().Add(2 * time.Second)
	for runtime.NumGoroutine() > baseline {
		if time.Now().After(deadline) {
			t.Fatalf("event poller still running: %d goroutines, baseline %d", runtime.NumGoroutine(), baseline)
		}
		time.Sleep(5 * time.Millisecond)
	}
}
