package app

import (
	statepkg "github.com/kk-code-lab/rtxt/internal/state"
)

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	if _, ok := action.(statepkg.SuspendAction); ok {
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	}

	prevMode := app.state.Mode
	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.logger.Warn().Err(err).Type("action", action).Msg("action failed")
	}
	if app.state.Mode != prevMode {
		app.logger.Debug().Stringer("from", prevMode).Stringer("to", app.state.Mode).Msg("screen changed")
	}
	if app.state.ShouldQuit {
		app.shouldQuit = true
	}
	return true
}
