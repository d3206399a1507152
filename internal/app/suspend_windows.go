//go:build windows

package app

// Windows consoles have no job control; Ctrl-Z only gets logged.
func (app *Application) suspendToShell() {
	app.logger.Debug().Msg("suspend not supported on windows")
}

func (app *Application) resumeAfterStop() bool {
	return false
}
