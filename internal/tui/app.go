package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"

	"github.com/Iron-Ham/sift/internal/event"
	"github.com/Iron-Ham/sift/internal/logging"
	"github.com/Iron-Ham/sift/internal/record"
	"github.com/Iron-Ham/sift/internal/watch"
)

// App wraps the Bubbletea program
type App struct {
	program *tea.Program
	model   Model
	fs      afero.Fs
	paths   []string
	bus     *event.Bus
	logger  *logging.Logger
}

// New creates a new TUI application. paths are the dataset files model was
// built from; they are re-read on change when watching.
func New(model Model, fs afero.Fs, paths []string, bus *event.Bus, logger *logging.Logger) *App {
	if logger == nil {
		logger = logging.NopLogger()
	}
	if bus == nil {
		bus = event.NewBusWithLogger(logger)
	}
	return &App{
		model:  model,
		fs:     fs,
		paths:  paths,
		bus:    bus,
		logger: logger.WithComponent("app"),
	}
}

// Run starts the TUI application and blocks until the user quits or ctx is
// cancelled. With a watcher, dataset changes are reloaded into the running
// program.
func (a *App) Run(ctx context.Context, w *watch.Watcher) error {
	a.program = tea.NewProgram(
		a.model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if w != nil {
		w.OnChange(func(changed []string) {
			a.program.Send(a.reload(ctx, changed))
		})
		w.Start()
		defer w.Stop()
	}

	_, err := a.program.Run()
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// reload reads every dataset file again and announces the result on the bus.
func (a *App) reload(ctx context.Context, changed []string) ReloadMsg {
	records, err := record.LoadAll(ctx, a.fs, a.paths)
	a.bus.Publish(event.NewDatasetReloadedEvent(changed, len(records), err))
	if err != nil {
		a.logger.Warn("reload failed", "paths", changed, "error", err)
	}
	return ReloadMsg{Paths: changed, Records: records, Err: err}
}
