package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"

	"github.com/Iron-Ham/sift/internal/errors"
	"github.com/Iron-Ham/sift/internal/event"
	"github.com/Iron-Ham/sift/internal/record"
	"github.com/Iron-Ham/sift/internal/rule"
)

var books = []record.Record{
	{"title": "Harry Potter", "genre": "Fantasy", "year": 1997},
	{"title": "The Hobbit", "genre": "Fantasy", "year": 1937},
	{"title": "1984", "genre": "Dystopia", "year": 1949},
	{"title": "To Kill a Mockingbird", "genre": "Classic", "year": 1960},
	{"title": "Ready Player One", "genre": "Science Fiction", "year": 2011},
}

var specs = []rule.Spec{
	{Name: "fantasy", Field: "genre", Op: "eq", Value: "Fantasy"},
	{Name: "after", Field: "year", Op: "gt", Value: 1990},
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	m, err := NewModel(books, specs, Options{Width: 120, Height: 40})
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	return m
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send feeds msg to the model and runs any returned command, feeding its
// message back in, the way the Bubble Tea runtime would.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	for cmd != nil {
		out := cmd()
		if out == nil {
			break
		}
		if _, quit := out.(tea.QuitMsg); quit {
			break
		}
		next, cmd = m.Update(out)
		m = next.(Model)
	}
	return m
}

func titles(rows []record.Record) string {
	var out []string
	for _, r := range rows {
		out = append(out, r["title"].(string))
	}
	return strings.Join(out, ",")
}

func TestNewModel_ShowsSource(t *testing.T) {
	m := newTestModel(t)
	if len(m.Rows()) != len(books) {
		t.Errorf("Rows() = %d, want %d", len(m.Rows()), len(books))
	}
}

func TestNewModel_InvalidRules(t *testing.T) {
	_, err := NewModel(books, []rule.Spec{{Name: "x", Field: "y", Op: "newer"}}, Options{})
	if err == nil {
		t.Error("expected rule compile error")
	}
}

func TestUpdate_StageThenActivate(t *testing.T) {
	m := newTestModel(t)

	m = send(t, m, runeKey("a"))
	if len(m.Rows()) != len(books) {
		t.Fatal("staging must not change rows")
	}
	if !strings.Contains(m.View(), "(pending)") {
		t.Error("header should show pending changes")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := titles(m.Rows()); got != "Harry Potter,The Hobbit" {
		t.Errorf("rows = %s", got)
	}
	if strings.Contains(m.View(), "(pending)") {
		t.Error("pending hint should clear after activation")
	}
	if !strings.Contains(m.View(), "2 of 5 records") {
		t.Errorf("header should count rows:\n%s", m.View())
	}
}

func TestUpdate_FilteredMsgKeepsLaterStagingPending(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, runeKey("a"))

	// The activation finishes after "after" has been staged.
	mgr := m.Manager()
	mgr.Activate()
	m = send(t, m, runeKey("j"))
	m = send(t, m, runeKey("a"))

	items, activated := mgr.Output()
	m = send(t, m, FilteredMsg{ManagerID: mgr.ID(), Items: items, Active: activated})

	if got := titles(m.Rows()); got != "Harry Potter,The Hobbit" {
		t.Errorf("rows = %s", got)
	}
	if !strings.Contains(m.View(), "(pending)") {
		t.Error("header should still show pending changes")
	}
}

func TestUpdate_Intersection(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, runeKey("a"))
	m = send(t, m, runeKey("j"))
	m = send(t, m, runeKey("a"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if got := titles(m.Rows()); got != "Harry Potter" {
		t.Errorf("rows = %s, want Harry Potter", got)
	}
}

func TestUpdate_PayloadOverride(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, runeKey("j"))
	m = send(t, m, runeKey("p"))
	for _, r := range "2000" {
		m = send(t, m, runeKey(string(r)))
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}) // close editor, stage
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}) // activate

	if got := titles(m.Rows()); got != "Ready Player One" {
		t.Errorf("rows = %s, want Ready Player One", got)
	}
}

func TestUpdate_ResetRestoresSource(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, runeKey("a"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = send(t, m, runeKey("r"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if len(m.Rows()) != len(books) {
		t.Errorf("rows = %d, want all %d", len(m.Rows()), len(books))
	}
}

func TestUpdate_Quit(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty when quitting")
	}
}

func TestUpdate_WindowSize(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 8})
	if m.width != 80 || m.height != 8 {
		t.Errorf("size = %dx%d, want 80x8", m.width, m.height)
	}
	if !strings.Contains(m.View(), "more") {
		t.Errorf("short terminal should elide rows:\n%s", m.View())
	}
}

func TestUpdate_IgnoresStaleFilteredMsg(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, FilteredMsg{ManagerID: "someone-else", Items: nil})
	if len(m.Rows()) != len(books) {
		t.Error("stale FilteredMsg should be ignored")
	}
}

func TestUpdate_ReloadCarriesState(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, runeKey("j"))
	m = send(t, m, runeKey("p"))
	for _, r := range "1950" {
		m = send(t, m, runeKey(string(r)))
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	before := m.Manager().ID()

	reloaded := append([]record.Record{{"title": "Dune", "genre": "Science Fiction", "year": 1965}}, books...)
	m = send(t, m, ReloadMsg{Paths: []string{"books.json"}, Records: reloaded})

	if m.Manager().ID() == before {
		t.Error("reload should build a new manager")
	}
	s := m.Manager().GetFilter("after").State
	if s == nil || !s.Active || s.Payload != int64(1950) {
		t.Fatalf("after = %+v, want active with 1950", s)
	}
	if got := titles(m.Rows()); got != "Dune,Harry Potter,To Kill a Mockingbird,Ready Player One" {
		t.Errorf("rows = %s", got)
	}
	if !strings.Contains(m.View(), "Reloaded 6 records") {
		t.Error("view should report the reload")
	}
}

func TestUpdate_ReloadError(t *testing.T) {
	m := newTestModel(t)
	before := m.Manager().ID()
	m = send(t, m, ReloadMsg{Err: errors.New("boom")})

	if m.Manager().ID() != before {
		t.Error("failed reload should keep the manager")
	}
	if !strings.Contains(m.View(), "Reload failed, see the log") {
		t.Errorf("view should hide an internal reload error:\n%s", m.View())
	}

	dsErr := errors.NewDatasetError("cannot read file", errors.ErrDatasetNotFound).WithPath("books.json")
	m = send(t, m, ReloadMsg{Err: dsErr})
	if !strings.Contains(m.View(), "Reload failed: dataset error [path=books.json]") {
		t.Errorf("view should show a dataset error:\n%s", m.View())
	}
}

func TestView_Empty(t *testing.T) {
	m := newTestModel(t)
	m.Manager().Apply("fantasy", "Horror")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(m.View(), "No records match") {
		t.Errorf("expected empty state:\n%s", m.View())
	}
}

func TestApp_ReloadPublishesEvent(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "books.json", []byte(`[{"title": "Dune"}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	bus := event.NewBus()
	var got []event.DatasetReloadedEvent
	bus.Subscribe(event.TypeDatasetReloaded, func(e event.Event) {
		got = append(got, e.(event.DatasetReloadedEvent))
	})

	app := New(newTestModel(t), fs, []string{"books.json"}, bus, nil)
	msg := app.reload(context.Background(), []string{"books.json"})

	if msg.Err != nil || len(msg.Records) != 1 {
		t.Fatalf("reload = %+v", msg)
	}
	if len(got) != 1 || got[0].Records != 1 {
		t.Errorf("events = %+v", got)
	}
}

func TestApp_ReloadError(t *testing.T) {
	app := New(newTestModel(t), afero.NewMemMapFs(), []string{"missing.json"}, nil, nil)
	if msg := app.reload(context.Background(), nil); msg.Err == nil {
		t.Error("expected error for missing dataset")
	}
}
