package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	Background  tcell.Color
	Foreground  tcell.Color
	PanelBg     tcell.Color // the emulated display
	PanelFg     tcell.Color
	BezelFg     tcell.Color
	CursorFg    tcell.Color
	DisabledFg  tcell.Color
	ErrorFg     tcell.Color
	FooterBg    tcell.Color
	FooterFg    tcell.Color
	FooterDimFg tcell.Color
}

// GetColorTheme returns the default color scheme. The panel imitates a
// monochrome OLED: light text on black.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:  tcell.ColorDefault,
		Foreground:  tcell.ColorDefault,
		PanelBg:     tcell.ColorBlack,
		PanelFg:     tcell.Color153, // pale blue, like the OLED glass
		BezelFg:     tcell.ColorLightSlateGray,
		CursorFg:    tcell.ColorWhite,
		DisabledFg:  tcell.Color240,
		ErrorFg:     tcell.Color210,
		FooterBg:    tcell.ColorDefault,
		FooterFg:    tcell.ColorDefault,
		FooterDimFg: tcell.ColorLightSlateGray,
	}
}
