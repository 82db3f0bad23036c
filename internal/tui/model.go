package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/sift/internal/errors"
	"github.com/Iron-Ham/sift/internal/event"
	core "github.com/Iron-Ham/sift/internal/filter"
	"github.com/Iron-Ham/sift/internal/logging"
	"github.com/Iron-Ham/sift/internal/record"
	"github.com/Iron-Ham/sift/internal/rule"
	"github.com/Iron-Ham/sift/internal/tui/filter"
)

// Layout defaults
const (
	DefaultWidth      = 100
	DefaultHeight     = 30
	DefaultPanelWidth = 36

	// header (2) + status line (1) + help bar (2)
	chromeHeight = 5
)

// Options configures a Model.
type Options struct {
	Width      int // Initial terminal width, 0 = DefaultWidth
	Height     int // Initial terminal height, 0 = DefaultHeight
	PanelWidth int // Filter panel width, 0 = DefaultPanelWidth
	MaxRows    int // Rendered record limit, 0 = fit to screen
	Logger     *logging.Logger
	Bus        *event.Bus
}

// Model holds the TUI application state
type Model struct {
	panel       *filter.Panel
	descriptors []core.Descriptor[record.Record]
	managerOpts []core.Option
	logger      *logging.Logger

	rows  []record.Record
	total int

	width      int
	height     int
	panelWidth int
	maxRows    int

	infoMessage  string
	errorMessage string
	quitting     bool
}

// NewModel compiles specs and creates a model over records.
func NewModel(records []record.Record, specs []rule.Spec, opts Options) (Model, error) {
	descriptors, err := rule.CompileAll(specs)
	if err != nil {
		return Model{}, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	managerOpts := []core.Option{core.WithLogger(logger)}
	if opts.Bus != nil {
		managerOpts = append(managerOpts, core.WithBus(opts.Bus))
	}

	manager := core.Init(records, descriptors, managerOpts...)

	m := Model{
		panel:       filter.New(manager, specs),
		descriptors: descriptors,
		managerOpts: managerOpts,
		logger:      logger.WithComponent("tui"),
		rows:        manager.Filtered(),
		total:       len(records),
		width:       opts.Width,
		height:      opts.Height,
		panelWidth:  opts.PanelWidth,
		maxRows:     opts.MaxRows,
	}
	if m.width <= 0 {
		m.width = DefaultWidth
	}
	if m.height <= 0 {
		m.height = DefaultHeight
	}
	if m.panelWidth <= 0 {
		m.panelWidth = DefaultPanelWidth
	}
	return m, nil
}

// Manager returns the filter manager currently shown.
func (m Model) Manager() *filter.Manager {
	return m.panel.Manager()
}

// Rows returns the records currently displayed.
func (m Model) Rows() []record.Record {
	return m.rows
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		res, cmd := m.panel.HandleKey(msg)
		if res.Quit {
			m.quitting = true
			return m, tea.Quit
		}
		if res.Activate {
			m.infoMessage = ""
			return m, activate(m.panel.Manager())
		}
		return m, cmd

	case FilteredMsg:
		// Results from a manager replaced by a reload are stale.
		if msg.ManagerID != m.panel.Manager().ID() {
			return m, nil
		}
		m.rows = msg.Items
		m.panel.MarkActivated(msg.Active)
		m.errorMessage = ""
		return m, nil

	case ReloadMsg:
		if msg.Err != nil {
			m.errorMessage = "Reload failed, see the log for details"
			if errors.IsUserFacing(msg.Err) {
				m.errorMessage = fmt.Sprintf("Reload failed: %v", msg.Err)
			}
			m.logger.Warn("dataset reload failed", "paths", msg.Paths, "error", msg.Err)
			return m, nil
		}
		next := m.rebuild(msg.Records)
		m.panel.SetManager(next)
		m.total = len(msg.Records)
		m.errorMessage = ""
		m.infoMessage = fmt.Sprintf("Reloaded %d records", len(msg.Records))
		m.logger.Info("dataset reloaded",
			"paths", msg.Paths,
			"records", len(msg.Records),
			"manager_id", next.ID())
		return m, activate(next)
	}

	return m, nil
}

// rebuild creates a manager over records with the staged state of the
// current manager carried over by name. Payloads of inactive filters are
// kept too.
func (m Model) rebuild(records []record.Record) *filter.Manager {
	next := core.Init(records, m.descriptors, m.managerOpts...)
	for _, s := range m.panel.Manager().States() {
		switch {
		case s.Active:
			next.Apply(s.Name, s.Payload)
		case s.Payload != nil:
			next.Remove(s.Name, s.Payload)
		}
	}
	return next
}
