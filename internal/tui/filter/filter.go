package filter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	core "github.com/Iron-Ham/sift/internal/filter"
	"github.com/Iron-Ham/sift/internal/record"
	"github.com/Iron-Ham/sift/internal/rule"
	"github.com/Iron-Ham/sift/internal/tui/styles"
	"github.com/Iron-Ham/sift/internal/util"
)

// Manager is the filter manager type the panel drives.
type Manager = core.Manager[record.Record]

// Panel holds the cursor, payload editor and activation bookkeeping for a
// filter manager.
type Panel struct {
	manager *Manager
	rules   map[string]rule.Spec

	cursor  int
	editing bool
	input   textinput.Model

	// applied holds the filters active at the last activation.
	applied map[string]bool
	pending bool
}

// New creates a panel over m. specs supply the one-line descriptions shown
// under each filter and may be nil.
func New(m *Manager, specs []rule.Spec) *Panel {
	ti := textinput.New()
	ti.Prompt = "payload: "
	ti.Placeholder = "value, number, true/false or [list]"
	ti.CharLimit = 256
	ti.Cursor.SetMode(cursor.CursorStatic)

	p := &Panel{
		manager: m,
		rules:   make(map[string]rule.Spec, len(specs)),
		input:   ti,
		applied: make(map[string]bool),
	}
	for _, s := range specs {
		p.rules[s.Name] = s
	}
	return p
}

// Manager returns the manager the panel drives.
func (p *Panel) Manager() *Manager {
	return p.manager
}

// SetManager swaps in a rebuilt manager, keeping the cursor in range.
func (p *Panel) SetManager(m *Manager) {
	p.manager = m
	if n := len(m.States()); p.cursor >= n {
		p.cursor = max(n-1, 0)
	}
}

// Cursor returns the index of the selected filter.
func (p *Panel) Cursor() int {
	return p.cursor
}

// Editing reports whether the payload editor has focus.
func (p *Panel) Editing() bool {
	return p.editing
}

// Pending reports whether changes were staged since the last activation.
func (p *Panel) Pending() bool {
	return p.pending
}

// Applied reports whether name was active at the last activation.
func (p *Panel) Applied(name string) bool {
	return p.applied[name]
}

// MarkActivated records the filters that produced the current output.
// Changes staged since that activation stay pending.
func (p *Panel) MarkActivated(active []string) {
	p.applied = make(map[string]bool, len(active))
	for _, name := range active {
		p.applied[name] = true
	}
	p.pending = !slices.Equal(p.manager.ActiveNames(), active)
}

func (p *Panel) selected() (core.State[record.Record], bool) {
	states := p.manager.States()
	if p.cursor < 0 || p.cursor >= len(states) {
		return core.State[record.Record]{}, false
	}
	return states[p.cursor], true
}

// InputResult captures the result of handling a key press.
type InputResult struct {
	Activate bool // Recompute the output
	Quit     bool // Leave the program
}

// HandleKey handles keyboard input for the panel.
func (p *Panel) HandleKey(msg tea.KeyMsg) (InputResult, tea.Cmd) {
	if p.editing {
		return p.handleEditKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return InputResult{Quit: true}, nil

	case "j", "down":
		if p.cursor < len(p.manager.States())-1 {
			p.cursor++
		}
		return InputResult{}, nil

	case "k", "up":
		if p.cursor > 0 {
			p.cursor--
		}
		return InputResult{}, nil

	case "enter":
		return InputResult{Activate: true}, nil

	case "r":
		p.manager.Reset()
		p.pending = true
		return InputResult{}, nil
	}

	s, ok := p.selected()
	if !ok {
		return InputResult{}, nil
	}

	switch msg.String() {
	case " ", "t":
		p.manager.Toggle(s.Name, s.Payload)
		p.pending = true

	case "a":
		p.manager.Apply(s.Name, s.Payload)
		p.pending = true

	case "x":
		p.manager.Remove(s.Name, s.Payload)
		p.pending = true

	case "c":
		// Clearing keeps the staged activation.
		if s.Active {
			p.manager.Apply(s.Name)
		} else {
			p.manager.Remove(s.Name)
		}
		p.pending = true

	case "p":
		p.editing = true
		value := util.FormatPayload(s.Payload)
		if str, isString := s.Payload.(string); isString {
			value = str
		}
		p.input.SetValue(value)
		p.input.CursorEnd()
		return InputResult{}, p.input.Focus()
	}

	return InputResult{}, nil
}

func (p *Panel) handleEditKey(msg tea.KeyMsg) (InputResult, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		p.stopEditing()
		return InputResult{}, nil

	case tea.KeyEnter:
		if s, ok := p.selected(); ok {
			p.manager.Apply(s.Name, rule.ParsePayload(p.input.Value()))
			p.pending = true
		}
		p.stopEditing()
		return InputResult{}, nil
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return InputResult{}, cmd
}

func (p *Panel) stopEditing() {
	p.editing = false
	p.input.Blur()
	p.input.Reset()
}

// RenderPanel renders the filter list with staged state and payloads.
func RenderPanel(p *Panel, width int) string {
	var b strings.Builder
	inner := max(width-4, 10)

	b.WriteString(styles.Title.Render("Filters"))
	b.WriteString("\n")

	states := p.manager.States()
	if len(states) == 0 {
		b.WriteString(styles.Muted.Render("No filters configured."))
		b.WriteString("\n")
	}

	for i, s := range states {
		cursor := "  "
		if i == p.cursor {
			cursor = styles.FilterCursor.Render("> ")
		}

		var checkbox string
		var labelStyle lipgloss.Style
		if s.Active {
			checkbox = styles.FilterCheckbox.Render("[✓]")
			labelStyle = styles.FilterCategoryEnabled
		} else {
			checkbox = styles.FilterCheckboxEmpty.Render("[ ]")
			labelStyle = styles.FilterCategoryDisabled
		}

		mark := " "
		if p.applied[s.Name] {
			mark = styles.Secondary.Render("●")
		}

		line := fmt.Sprintf("%s%s %s %s", cursor, checkbox, mark, labelStyle.Render(s.Name))
		if payload := util.FormatPayload(s.Payload); payload != "" {
			line += " " + styles.FilterPayload.Render("= "+payload)
		}
		b.WriteString(util.TruncateANSI(line, inner))
		b.WriteString("\n")

		if spec, ok := p.rules[s.Name]; ok && i == p.cursor {
			b.WriteString(util.TruncateANSI("      "+styles.Muted.Render(spec.String()), inner))
			b.WriteString("\n")
		}
	}

	if p.editing {
		b.WriteString("\n")
		b.WriteString(p.input.View())
		b.WriteString("\n")
		b.WriteString(styles.Muted.Render("[enter] apply  [esc] cancel"))
	} else if p.pending {
		b.WriteString("\n")
		b.WriteString(styles.FilterPending.Render("Pending changes: press enter to activate"))
	}

	return styles.ContentBox.Width(width - 2).Render(b.String())
}
