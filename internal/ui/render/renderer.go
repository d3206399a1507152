package render

import (
	"github.com/gdamore/tcell/v2"

	statepkg "github.com/kk-code-lab/rtxt/internal/state"
	"github.com/kk-code-lab/rtxt/internal/textutil"
)

const (
	// panelMargin is the gap between the terminal edge and the bezel.
	panelMargin = 1
	cursorMark  = '>'
)

// Renderer handles all UI rendering
type Renderer struct {
	screen         tcell.Screen
	theme          ColorTheme
	decoder        *textutil.Decoder
	runeWidthCache [128]int // ASCII cache (0-127)
	runeWidthWide  map[rune]int
}

// NewRenderer creates a new renderer. decoder turns file bytes into runes;
// nil selects the default charset.
func NewRenderer(screen tcell.Screen, decoder *textutil.Decoder) *Renderer {
	if decoder == nil {
		decoder, _ = textutil.NewDecoder(textutil.DefaultCharset)
	}
	return &Renderer{
		screen:        screen,
		theme:         GetColorTheme(),
		decoder:       decoder,
		runeWidthWide: make(map[rune]int),
	}
}

// panel is the emulated display inside its bezel.
type panel struct {
	x, y          int
	width, height int
}

func (r *Renderer) computePanel(state *statepkg.AppState, w, h int) (panel, bool) {
	p := panel{
		x:      panelMargin + 1,
		y:      panelMargin + 1,
		width:  state.Columns,
		height: state.Rows,
	}
	// bezel on both sides plus the status line
	fits := p.x+p.width+1 <= w && p.y+p.height+1 < h
	return p, fits
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.AppState) {
	r.screen.Clear()
	w, h := r.screen.Size()

	p, fits := r.computePanel(state, w, h)
	if !fits {
		r.drawTooSmall(state, w, h)
		r.screen.Show()
		return
	}

	r.drawBezel(p)
	panelStyle := tcell.StyleDefault.Background(r.theme.PanelBg).Foreground(r.theme.PanelFg)
	r.fill(p.x, p.y, p.x+p.width, p.y+p.height, panelStyle)

	switch state.Mode {
	case statepkg.ModeReading:
		r.drawReading(state, p, panelStyle)
	case statepkg.ModeError:
		r.drawError(state, p, panelStyle)
	default:
		r.drawMenu(state, p, panelStyle)
	}

	r.drawStatusLine(state, w, h)
	r.screen.Show()
}

func (r *Renderer) drawBezel(p panel) {
	style := tcell.StyleDefault.Foreground(r.theme.BezelFg)
	left, top := p.x-1, p.y-1
	right, bottom := p.x+p.width, p.y+p.height

	r.screen.SetContent(left, top, tcell.RuneULCorner, nil, style)
	r.screen.SetContent(right, top, tcell.RuneURCorner, nil, style)
	r.screen.SetContent(left, bottom, tcell.RuneLLCorner, nil, style)
	r.screen.SetContent(right, bottom, tcell.RuneLRCorner, nil, style)
	for x := p.x; x < right; x++ {
		r.screen.SetContent(x, top, tcell.RuneHLine, nil, style)
		r.screen.SetContent(x, bottom, tcell.RuneHLine, nil, style)
	}
	for y := p.y; y < bottom; y++ {
		r.screen.SetContent(left, y, tcell.RuneVLine, nil, style)
		r.screen.SetContent(right, y, tcell.RuneVLine, nil, style)
	}
}

// drawReading fills the panel with text only, one file byte per cell.
func (r *Renderer) drawReading(state *statepkg.AppState, p panel, style tcell.Style) {
	for i, line := range state.Reading.Lines {
		if i >= p.height {
			break
		}
		r.drawCells(p.x, p.y+i, p.width, r.decoder.Runes(line), style)
	}
}

func (r *Renderer) drawMenu(state *statepkg.AppState, p panel, style tcell.Style) {
	cursorStyle := style.Foreground(r.theme.CursorFg).Bold(true)
	disabledStyle := style.Foreground(r.theme.DisabledFg)
	labelWidth := p.width - 2

	start, end := state.VisibleMenuRange()
	for i := start; i < end; i++ {
		y := p.y + i - start
		itemStyle := style
		if i == state.SelectedIndex {
			r.screen.SetContent(p.x, y, cursorMark, nil, cursorStyle)
			itemStyle = cursorStyle
		}
		if i > 0 && !state.Files[i-1].Readable() {
			itemStyle = disabledStyle
		}
		label := textutil.SanitizeTerminalText(state.MenuLabel(i))
		r.drawTextLine(p.x+2, y, labelWidth, r.truncateTextToWidth(label, labelWidth), itemStyle)
	}

	if len(state.Files) == 0 && p.height > 1 {
		r.drawTextLine(p.x+2, p.y+1, labelWidth, r.truncateTextToWidth(statepkg.EmptyMenuLabel, labelWidth), style)
	}
}

func (r *Renderer) drawError(state *statepkg.AppState, p panel, style tcell.Style) {
	errStyle := style.Foreground(r.theme.ErrorFg).Bold(true)
	lines := []string{state.ErrorTitle}
	if state.ErrorDetail != "" {
		lines = append(lines, state.ErrorDetail)
	}

	top := p.y + (p.height-len(lines))/2
	for i, line := range lines {
		text := r.truncateTextToWidth(textutil.SanitizeTerminalText(line), p.width)
		x := p.x + (p.width-r.measureTextWidth(text))/2
		lineStyle := style
		if i == 0 {
			lineStyle = errStyle
		}
		r.drawTextLine(x, top+i, p.width, text, lineStyle)
	}
}

func (r *Renderer) drawTooSmall(state *statepkg.AppState, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	msg := r.truncateTextToWidth(formatTooSmall(state), w)
	r.drawTextLine(0, 0, w, msg, tcell.StyleDefault.Foreground(r.theme.ErrorFg))
}

// drawStatusLine renders the bottom row: what is shown on the left, key
// hints on the right when they fit.
func (r *Renderer) drawStatusLine(state *statepkg.AppState, w, h int) {
	y := h - 1
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	dimStyle := style.Foreground(r.theme.FooterDimFg)
	r.fill(0, y, w, h, style)

	left := " " + textutil.SanitizeTerminalText(formatStatus(state))
	endX := r.drawTextLine(0, y, w, r.truncateTextToWidth(left, w), style)

	help := buildFooterHelpText(state)
	helpWidth := r.measureTextWidth(help)
	if help != "" && endX+helpWidth+1 <= w {
		r.drawTextLine(w-helpWidth, y, helpWidth, help, dimStyle)
	}
}
