package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	fsutil "github.com/kk-code-lab/rtxt/internal/fs"
	statepkg "github.com/kk-code-lab/rtxt/internal/state"
	"github.com/kk-code-lab/rtxt/internal/textutil"
)

func TestTruncateTextToWidth(t *testing.T) {
	r := NewRenderer(nil, nil)

	tests := []struct {
		name   string
		text   string
		width  int
		expect string
	}{
		{
			name:   "fits without truncation",
			text:   "file.txt",
			width:  20,
			expect: "file.txt",
		},
		{
			name:   "adds ellipsis when needed",
			text:   "verylongname",
			width:  6,
			expect: "veryl…",
		},
		{
			name:   "only ellipsis when width too small",
			text:   "example",
			width:  1,
			expect: "…",
		},
		{
			name:   "multi-byte characters respected",
			text:   "你好世界",
			width:  5,
			expect: "你好…",
		},
		{
			name:   "returns empty when width is zero",
			text:   "anything",
			width:  0,
			expect: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := r.truncateTextToWidth(tt.text, tt.width)
			if actual != tt.expect {
				t.Fatalf("expected %q, got %q (width %d)", tt.expect, actual, tt.width)
			}
		})
	}
}

func TestMeasureTextWidth(t *testing.T) {
	r := NewRenderer(nil, nil)

	if got := r.measureTextWidth("abc"); got != 3 {
		t.Fatalf("expected ASCII width 3, got %d", got)
	}

	if got := r.measureTextWidth("你好"); got != 4 {
		t.Fatalf("expected wide rune width 4, got %d", got)
	}
}

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)
	return screen
}

// rowText reads back n cells of row y starting at x.
func rowText(screen tcell.SimulationScreen, x, y, n int) string {
	cells, w, _ := screen.GetContents()
	var b strings.Builder
	for i := x; i < x+n && i < w; i++ {
		cell := cells[y*w+i]
		if len(cell.Runes) == 0 {
			b.WriteByte(' ')
			continue
		}
		b.WriteString(string(cell.Runes))
	}
	return b.String()
}

func baseState() *statepkg.AppState {
	return &statepkg.AppState{Columns: 32, Rows: 4}
}

func TestRenderReadingDecodesBytes(t *testing.T) {
	screen := newSimScreen(t, 80, 10)
	decoder, err := textutil.NewDecoder("latin1")
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}
	r := NewRenderer(screen, decoder)

	state := baseState()
	state.Mode = statepkg.ModeReading
	state.Reading = statepkg.ReadingView{
		Name:  "book.txt",
		Lines: []string{"The quick brown", "caf\xe9"},
		Top:   0,
		Total: 10,
	}
	r.Render(state)

	if got := rowText(screen, 2, 2, 15); got != "The quick brown" {
		t.Fatalf("row 0 = %q", got)
	}
	if got := rowText(screen, 2, 3, 4); got != "café" {
		t.Fatalf("row 1 = %q", got)
	}
	if got := rowText(screen, 0, 9, 30); !strings.Contains(got, "book.txt · 1-2/10 · 20%") {
		t.Fatalf("status = %q", got)
	}
}

func TestRenderMenuShowsCursorAndBackEntry(t *testing.T) {
	screen := newSimScreen(t, 80, 10)
	r := NewRenderer(screen, nil)

	state := baseState()
	state.Dir = "/books"
	state.Files = []fsutil.Entry{{Name: "alpha.txt"}, {Name: "beta.txt"}}
	state.SelectedIndex = 1
	r.Render(state)

	if got := rowText(screen, 2, 2, 8); got != "  < Back" {
		t.Fatalf("row 0 = %q", got)
	}
	if got := rowText(screen, 2, 3, 11); got != "> alpha.txt" {
		t.Fatalf("row 1 = %q", got)
	}
	if got := rowText(screen, 0, 9, 20); !strings.Contains(got, "books · 2 files") {
		t.Fatalf("status = %q", got)
	}
}

func TestRenderEmptyMenu(t *testing.T) {
	screen := newSimScreen(t, 80, 10)
	r := NewRenderer(screen, nil)

	state := baseState()
	state.Dir = "/empty"
	r.Render(state)

	if got := rowText(screen, 4, 3, len(statepkg.EmptyMenuLabel)); got != statepkg.EmptyMenuLabel {
		t.Fatalf("row 1 = %q", got)
	}
}

func TestRenderErrorCentersLines(t *testing.T) {
	screen := newSimScreen(t, 80, 10)
	r := NewRenderer(screen, nil)

	state := baseState()
	state.Mode = statepkg.ModeError
	state.ErrorTitle = "Read Error"
	state.ErrorDetail = "book.txt"
	r.Render(state)

	// 4 rows, 2 lines: rows 1 and 2 of the panel, centered in 32 columns
	if got := rowText(screen, 2+11, 3, 10); got != "Read Error" {
		t.Fatalf("title row = %q", got)
	}
	if got := rowText(screen, 2+12, 4, 8); got != "book.txt" {
		t.Fatalf("detail row = %q", got)
	}
}

func TestRenderTooSmall(t *testing.T) {
	screen := newSimScreen(t, 20, 4)
	r := NewRenderer(screen, nil)

	r.Render(baseState())
	if got := rowText(screen, 0, 0, 8); got != "terminal" {
		t.Fatalf("row 0 = %q", got)
	}
}

func TestFormatReadingStatus(t *testing.T) {
	got := formatReadingStatus(statepkg.ReadingView{
		Name:      "war.txt",
		Lines:     []string{"a", "b", "c", "d"},
		Top:       12_000,
		Total:     24_100,
		Truncated: true,
	})
	want := "war.txt · 12001-12004/24.1k · 49% · truncated"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	if got := formatReadingStatus(statepkg.ReadingView{Name: "e.txt"}); got != "e.txt · empty" {
		t.Fatalf("empty book status = %q", got)
	}
}
