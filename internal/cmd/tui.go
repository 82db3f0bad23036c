package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/Iron-Ham/sift/internal/event"
	"github.com/Iron-Ham/sift/internal/tui"
	"github.com/Iron-Ham/sift/internal/tui/styles"
	"github.com/Iron-Ham/sift/internal/watch"
)

func newTUICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui [files...]",
		Short: "Browse the dataset with an interactive filter panel",
		Long: `Tui opens the filter panel next to the record list. Filter changes are
staged in the panel and applied to the list when enter is pressed.

With --watch the dataset is reloaded when one of its files changes, keeping
the staged filters.`,
		RunE: runTUI,
	}

	cmd.Flags().Bool("watch", false, "reload the dataset when a file changes")
	cmd.Flags().String("theme", "", "color theme (default from tui.theme)")
	_ = viper.BindPFlag("data.watch", cmd.Flags().Lookup("watch"))
	_ = viper.BindPFlag("tui.theme", cmd.Flags().Lookup("theme"))

	return cmd
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fs := afero.NewOsFs()
	s, err := openSession(ctx, fs, args)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	applyTheme(cmd, fs, s.cfg.TUI.Theme)

	bus := event.NewBusWithLogger(s.logger)
	bus.SubscribeAll(func(e event.Event) {
		s.logger.Debug("event", "type", e.EventType())
	})

	// Get terminal dimensions
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width == 0 || height == 0 {
		width, height = tui.DefaultWidth, tui.DefaultHeight
	}

	model, err := tui.NewModel(s.records, s.cfg.Filters, tui.Options{
		Width:      width,
		Height:     height,
		PanelWidth: s.cfg.TUI.PanelWidth,
		MaxRows:    s.cfg.TUI.MaxRows,
		Logger:     s.logger,
		Bus:        bus,
	})
	if err != nil {
		return fmt.Errorf("invalid filters: %w", err)
	}

	var w *watch.Watcher
	if s.cfg.Data.Watch {
		w, err = watch.New(s.paths, s.cfg.Data.Debounce(), s.logger)
		if err != nil {
			return fmt.Errorf("failed to watch dataset: %w", err)
		}
	}

	return tui.New(model, fs, s.paths, bus, s.logger).Run(ctx, w)
}

// applyTheme loads custom themes and activates name, falling back to the
// default theme with a warning when name is unknown.
func applyTheme(cmd *cobra.Command, fs afero.Fs, name string) {
	_, errs := styles.DiscoverCustomThemes(fs, styles.ThemesDir())
	for _, err := range errs {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: theme: %v\n", err)
	}

	if !styles.IsValidTheme(name) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: unknown theme %q, using %q\n", name, styles.ThemeDefault)
		name = string(styles.ThemeDefault)
	}
	styles.SetActiveTheme(styles.ThemeName(name))
}
