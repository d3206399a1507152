package render

import (
	"strings"

	statepkg "github.com/kk-code-lab/rtxt/internal/state"
)

// buildFooterHelpText returns the contextual footer hint string with leading/trailing padding.
func buildFooterHelpText(state *statepkg.AppState) string {
	parts := buildFooterHelpSegments(state)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

func buildFooterHelpSegments(state *statepkg.AppState) []string {
	if state == nil {
		return nil
	}
	switch state.Mode {
	case statepkg.ModeReading:
		return []string{"↑↓: line", "PgUp/PgDn: page", "Home/End: jump", "↵/Esc: back"}
	case statepkg.ModeError:
		return []string{"↵/Esc: back"}
	default:
		return []string{"↑↓: select", "↵: open", "r: refresh", "q: quit"}
	}
}
