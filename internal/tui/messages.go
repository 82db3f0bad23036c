package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/sift/internal/record"
	"github.com/Iron-Ham/sift/internal/tui/filter"
)

// FilteredMsg carries the output of an activation and the filters it was
// computed with.
type FilteredMsg struct {
	ManagerID string
	Items     []record.Record
	Active    []string
}

// ReloadMsg carries a freshly loaded dataset.
type ReloadMsg struct {
	Paths   []string
	Records []record.Record
	Err     error
}

// activate recomputes m's output off the event loop.
func activate(m *filter.Manager) tea.Cmd {
	return func() tea.Msg {
		m.Activate()
		items, activated := m.Output()
		return FilteredMsg{
			ManagerID: m.ID(),
			Items:     items,
			Active:    activated,
		}
	}
}
