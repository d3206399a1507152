package render

import (
	"fmt"
	"path/filepath"
	"strings"

	statepkg "github.com/kk-code-lab/rtxt/internal/state"
)

func formatStatus(state *statepkg.AppState) string {
	switch state.Mode {
	case statepkg.ModeReading:
		return formatReadingStatus(state.Reading)
	case statepkg.ModeError:
		return "error · " + state.ErrorTitle
	default:
		return formatMenuStatus(state)
	}
}

func formatReadingStatus(view statepkg.ReadingView) string {
	parts := []string{view.Name}
	if view.Total > 0 {
		last := view.Top + len(view.Lines)
		parts = append(parts,
			fmt.Sprintf("%d-%d/%s", view.Top+1, last, formatCompactNumber(view.Total)),
			formatPercent(last, view.Total),
		)
	} else {
		parts = append(parts, "empty")
	}
	if view.Truncated {
		parts = append(parts, "truncated")
	}
	return strings.Join(parts, " · ")
}

func formatMenuStatus(state *statepkg.AppState) string {
	dir := filepath.Base(state.Dir)
	if dir == "." || dir == "" {
		dir = state.Dir
	}
	count := fmt.Sprintf("%d files", len(state.Files))
	if len(state.Files) == 1 {
		count = "1 file"
	}
	if state.FilesTruncated {
		count = fmt.Sprintf("first %d files", len(state.Files))
	}
	return dir + " · " + count
}

func formatTooSmall(state *statepkg.AppState) string {
	return fmt.Sprintf("terminal too small for a %dx%d display", state.Columns, state.Rows)
}

func formatPercent(n, total int) string {
	if total <= 0 {
		return "0%"
	}
	return fmt.Sprintf("%d%%", n*100/total)
}

func formatCompactNumber(n int) string {
	switch {
	case n >= 1_000_000:
		return trimTrailingZero(fmt.Sprintf("%.1f", float64(n)/1_000_000.0)) + "M"
	case n >= 10_000:
		return trimTrailingZero(fmt.Sprintf("%.1f", float64(n)/1_000.0)) + "k"
	default:
		return fmt.Sprintf("%d", n)
	}
}

func trimTrailingZero(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	return strings.TrimSuffix(strings.TrimSuffix(s, "0"), ".")
}
