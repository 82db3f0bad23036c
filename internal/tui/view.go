package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/sift/internal/tui/filter"
	"github.com/Iron-Ham/sift/internal/tui/styles"
	"github.com/Iron-Ham/sift/internal/util"
)

// View renders the screen
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	panel := filter.RenderPanel(m.panel, m.panelWidth)
	contentWidth := max(m.width-lipgloss.Width(panel)-1, 10)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panel, " ", m.renderRows(contentWidth)))
	b.WriteString("\n")

	switch {
	case m.errorMessage != "":
		b.WriteString(styles.Error.Render(m.errorMessage))
	case m.infoMessage != "":
		b.WriteString(styles.Muted.Render(m.infoMessage))
	}
	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderHeader() string {
	line := "sift  " + styles.Muted.Render(fmt.Sprintf("%d of %d records", len(m.rows), m.total))
	if m.panel.Pending() {
		line += "  " + styles.FilterPending.Render("(pending)")
	}
	return styles.Header.Render(util.TruncateANSI(line, m.width))
}

func (m Model) visibleRows() int {
	n := m.height - chromeHeight
	if m.maxRows > 0 && m.maxRows < n {
		n = m.maxRows
	}
	return max(n, 1)
}

func (m Model) renderRows(width int) string {
	if len(m.rows) == 0 {
		return styles.Muted.Render("No records match the active filters.")
	}

	limit := m.visibleRows()
	shown := m.rows
	if len(shown) > limit {
		shown = shown[:limit-1]
	}

	lines := make([]string, 0, len(shown)+1)
	for _, r := range shown {
		lines = append(lines, util.TruncateANSI(styles.Text.Render(r.String()), width))
	}
	if hidden := len(m.rows) - len(shown); hidden > 0 {
		lines = append(lines, styles.Muted.Render(fmt.Sprintf("… %d more", hidden)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderHelp() string {
	keys := []struct{ key, desc string }{
		{"j/k", "move"},
		{"space", "toggle"},
		{"a", "apply"},
		{"x", "remove"},
		{"p", "payload"},
		{"c", "clear"},
		{"r", "reset"},
		{"enter", "activate"},
		{"q", "quit"},
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, styles.HelpKey.Render("["+k.key+"]")+" "+k.desc)
	}
	return styles.HelpBar.Render(strings.Join(parts, "  "))
}
