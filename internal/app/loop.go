package app

import (
	"context"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	statepkg "github.com/kk-code-lab/rtxt/internal/state"
	"github.com/kk-code-lab/rtxt/internal/ui/input"
	renderui "github.com/kk-code-lab/rtxt/internal/ui/render"
)

// NewApplication prepares the screen and wiring. screen may be nil to use
// the real terminal.
func NewApplication(ctx context.Context, screen tcell.Screen, book statepkg.Book, list statepkg.Lister, opts Options, logger zerolog.Logger) (*Application, error) {
	if screen == nil {
		var err error
		screen, err = tcell.NewScreen()
		if err != nil {
			return nil, err
		}
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	state := newInitialState(opts)
	w, h := screen.Size()
	state.ScreenWidth = w
	state.ScreenHeight = h

	actionCh := make(chan statepkg.Action, 10)

	app := &Application{
		screen:   screen,
		state:    state,
		reducer:  statepkg.NewStateReducer(ctx, book, list, logger),
		renderer: renderui.NewRenderer(screen, opts.Decoder),
		input:    input.NewInputHandler(actionCh),
		actionCh: actionCh,
		logger:   logger,
	}
	return app, nil
}

func newInitialState(opts Options) *statepkg.AppState {
	return &statepkg.AppState{
		Mode:     statepkg.ModeMenu,
		Columns:  opts.Columns,
		Rows:     opts.Rows,
		MaxFiles: opts.MaxFiles,
	}
}

// Run processes events until the user quits.
func (app *Application) Run() {
	defer app.screen.Fini()

	if app.state.ShouldQuit {
		return
	}
	app.renderer.Render(app.state)
	renderPending := false

	eventChan := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-done:
				return
			}
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	for !app.shouldQuit {
		if renderPending {
			app.renderer.Render(app.state)
			renderPending = false
		}

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		app.input.ProcessEvent(ev)
	case *tcell.EventResize:
		app.screen.Sync()
		app.input.ProcessEvent(ev)
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
	return true
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}
