// Package app runs the emulated reader device in a terminal.
package app

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	statepkg "github.com/kk-code-lab/rtxt/internal/state"
	"github.com/kk-code-lab/rtxt/internal/textutil"
	inputui "github.com/kk-code-lab/rtxt/internal/ui/input"
	renderui "github.com/kk-code-lab/rtxt/internal/ui/render"
)

// Options describes the emulated display.
type Options struct {
	Columns  int
	Rows     int
	MaxFiles int
	Decoder  *textutil.Decoder
}

// Application represents the running app.
type Application struct {
	screen     tcell.Screen
	state      *statepkg.AppState
	reducer    *statepkg.StateReducer
	renderer   *renderui.Renderer
	input      *inputui.InputHandler
	actionCh   chan statepkg.Action
	logger     zerolog.Logger
	shouldQuit bool
}

// State returns the current application state.
func (app *Application) State() *statepkg.AppState {
	return app.state
}

// Dispatch applies action before the next frame. It is meant for the
// initial screen, before Run.
func (app *Application) Dispatch(action statepkg.Action) {
	app.handleAction(action)
}

// Close cleans up resources.
func (app *Application) Close() error {
	app.screen.Fini()
	return nil
}
