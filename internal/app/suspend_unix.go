//go:build !windows

package app

import (
	"syscall"

	"github.com/gdamore/tcell/v2"
)

// suspendToShell hands the terminal back and stops the process with SIGTSTP.
// Execution continues here once the shell sends SIGCONT.
func (app *Application) suspendToShell() {
	if err := app.screen.Suspend(); err != nil {
		app.logger.Warn().Err(err).Msg("suspend screen")
		return
	}
	app.logger.Debug().Stringer("mode", app.state.Mode).Msg("suspended")
	// Signal the pid, not the group, so `fg` in the launching shell works.
	if err := syscall.Kill(syscall.Getpid(), syscall.SIGTSTP); err != nil {
		app.logger.Warn().Err(err).Msg("stop process")
	}
}

// resumeAfterStop takes the terminal back. It reports false when the screen
// was not suspended, which happens when SIGCONT arrives after the resume
// already ran.
func (app *Application) resumeAfterStop() bool {
	if err := app.screen.Resume(); err != nil {
		return false
	}
	app.screen.Sync()
	w, h := app.screen.Size()
	if w > 0 && h > 0 {
		app.state.ScreenWidth = w
		app.state.ScreenHeight = h
	}
	app.logger.Debug().Int("width", w).Int("height", h).Msg("resumed")
	_ = app.screen.PostEvent(tcell.NewEventInterrupt(nil))
	return true
}
