package update

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/dayplan/internal/model"
	"github.com/sandeepkv93/dayplan/internal/planner"
)

func newTestModel() Model {
	p := planner.NewWithNow(func() time.Time {
		return time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	})
	return NewModel(p, model.PriorityMedium)
}

func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("update returned %T, want Model", next)
	}
	return out
}

func pressKey(t *testing.T, m Model, key string) Model {
	t.Helper()
	switch key {
	case "enter":
		return press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		return press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	default:
		return press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	}
}

func typeString(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestViewSwitching(t *testing.T) {
	m := newTestModel()
	if m.CurrentView != ViewTasks {
		t.Fatalf("initial view = %s, want Tasks", m.CurrentView)
	}
	m = pressKey(t, m, "2")
	if m.CurrentView != ViewAgenda {
		t.Fatalf("view = %s, want Agenda", m.CurrentView)
	}
	m = pressKey(t, m, "1")
	if m.CurrentView != ViewTasks {
		t.Fatalf("view = %s, want Tasks", m.CurrentView)
	}
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel()
	m = pressKey(t, m, "?")
	if !m.HelpVisible {
		t.Fatal("help should be visible after ?")
	}
	m = pressKey(t, m, "?")
	if m.HelpVisible {
		t.Fatal("help should hide after second ?")
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !next.(Model).Quitting {
		t.Fatal("q should set Quitting")
	}
	if cmd == nil {
		t.Fatal("q should produce a quit command")
	}
}

func TestQuickAddFlow(t *testing.T) {
	m := newTestModel()
	m = pressKey(t, m, "a")
	m = typeString(t, m, "Buy milk")
	m = pressKey(t, m, "enter")

	tasks := m.Planner.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}
	if tasks[0].Description != "Buy milk" {
		t.Fatalf("description = %q", tasks[0].Description)
	}
	if tasks[0].Priority != model.PriorityMedium {
		t.Fatalf("priority = %q, want the configured default", tasks[0].Priority)
	}
	if m.Status.IsError || !strings.Contains(m.Status.Text, "task 1 added") {
		t.Fatalf("status = %+v", m.Status)
	}
}

func TestQuickAddRejectsEmptyDescription(t *testing.T) {
	m := newTestModel()
	m = pressKey(t, m, "a")
	m = pressKey(t, m, "enter")
	if len(m.Planner.Tasks()) != 0 {
		t.Fatal("empty description must not create a task")
	}
	if !m.Status.IsError {
		t.Fatalf("status should flag the error: %+v", m.Status)
	}
}

func TestQuickAddEscCancels(t *testing.T) {
	m := newTestModel()
	m = pressKey(t, m, "a")
	m = typeString(t, m, "half typed")
	m = pressKey(t, m, "esc")
	if len(m.Planner.Tasks()) != 0 {
		t.Fatal("esc must not create a task")
	}
}

func TestScheduleFlow(t *testing.T) {
	m := newTestModel()
	id := m.Planner.AddTask("Buy milk", model.PriorityHigh)

	m = pressKey(t, m, "s")
	m = typeString(t, m, "09:30")
	m = pressKey(t, m, "enter")

	slot, ok := m.Planner.SlotOf(id)
	if !ok {
		t.Fatal("task should be scheduled")
	}
	if slot.String() != "09:30" {
		t.Fatalf("slot = %s, want 09:30", slot)
	}
	if m.Status.IsError {
		t.Fatalf("status = %+v", m.Status)
	}
}

func TestScheduleFlowInvalidTime(t *testing.T) {
	m := newTestModel()
	id := m.Planner.AddTask("Buy milk", model.PriorityHigh)

	m = pressKey(t, m, "s")
	m = typeString(t, m, "9:5")
	m = pressKey(t, m, "enter")

	if _, ok := m.Planner.SlotOf(id); ok {
		t.Fatal("invalid time must not schedule the task")
	}
	if !m.Status.IsError {
		t.Fatalf("status should flag the parse failure: %+v", m.Status)
	}
}

func TestCompleteAndRemoveKeys(t *testing.T) {
	m := newTestModel()
	id := m.Planner.AddTask("Buy milk", model.PriorityMedium)

	m = pressKey(t, m, "c")
	task, _ := m.Planner.Task(id)
	if !task.Completed {
		t.Fatal("c should complete the selected task")
	}

	m = pressKey(t, m, "x")
	if len(m.Planner.Tasks()) != 0 {
		t.Fatal("x should remove the selected task")
	}
}

func TestUnscheduleKey(t *testing.T) {
	m := newTestModel()
	id := m.Planner.AddTask("Buy milk", model.PriorityMedium)
	if err := m.Planner.Schedule(id, "09:30"); err != nil {
		t.Fatalf("schedule: %v", err)
	}

	m = pressKey(t, m, "f")
	if _, ok := m.Planner.SlotOf(id); ok {
		t.Fatal("f should unschedule the selected task")
	}
}

func TestPaletteDispatch(t *testing.T) {
	m := newTestModel()
	m.Planner.AddTask("Buy milk", model.PriorityMedium)

	m = pressKey(t, m, "/")
	m = typeString(t, m, "done 1")
	m = pressKey(t, m, "enter")

	task, _ := m.Planner.Task(1)
	if !task.Completed {
		t.Fatal("palette done command should complete the task")
	}
	if m.Status.IsError {
		t.Fatalf("status = %+v", m.Status)
	}
}

func TestPaletteUnknownCommand(t *testing.T) {
	m := newTestModel()
	m = pressKey(t, m, "/")
	m = typeString(t, m, "frobnicate")
	m = pressKey(t, m, "enter")
	if !m.Status.IsError {
		t.Fatalf("unknown command should set an error status: %+v", m.Status)
	}
}

func TestPaletteScheduleReportsNotFound(t *testing.T) {
	m := newTestModel()
	m = pressKey(t, m, "/")
	m = typeString(t, m, "at 99 08:00")
	m = pressKey(t, m, "enter")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "not found") {
		t.Fatalf("scheduling an unknown task must be rejected: %+v", m.Status)
	}
}

func TestStatusMessages(t *testing.T) {
	m := newTestModel()
	next, _ := m.Update(SetStatusMsg{Text: "hello", IsError: true})
	m = next.(Model)
	if m.Status.Text != "hello" || !m.Status.IsError {
		t.Fatalf("status = %+v", m.Status)
	}
	next, _ = m.Update(ClearStatusMsg{})
	m = next.(Model)
	if m.Status.Text != "" {
		t.Fatalf("status should be cleared: %+v", m.Status)
	}
}

func TestViewRendersHeaderAndFooter(t *testing.T) {
	m := newTestModel()
	out := m.View()
	if !strings.Contains(out, "dayplan | view: Tasks") {
		t.Fatalf("header missing from view:\n%s", out)
	}
	if !strings.Contains(out, "quit") {
		t.Fatalf("footer missing from view:\n%s", out)
	}
}
