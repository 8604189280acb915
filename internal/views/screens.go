package views

import (
	"fmt"
	"strings"
)

type TaskItemData struct {
	ID          int
	Description string
	Priority    string
	Completed   bool
	Slot        string
}

type TasksPanelData struct {
	QuickAddView string
	ListView     string
}

type AgendaRowData struct {
	Slot        string
	ID          int
	Description string
	Priority    string
	Completed   bool
}

type AgendaPanelData struct {
	TableView string
	Count     int
}

func RenderTasksPanel(data TasksPanelData) string {
	var b strings.Builder
	b.WriteString("tasks:\n")
	b.WriteString(data.QuickAddView + "\n")
	b.WriteString("actions: [enter]add [j/k]move [c]complete [x]remove [s]schedule [f]unschedule\n")
	b.WriteString(data.ListView)
	return strings.TrimSpace(b.String())
}

func RenderAgendaPanel(data AgendaPanelData) string {
	var b strings.Builder
	b.WriteString("agenda:\n")
	if data.Count == 0 {
		b.WriteString("(no scheduled tasks)\n")
	}
	b.WriteString(data.TableView)
	return strings.TrimSpace(b.String())
}

// FormatTaskLine renders a single task the way the task list shows it:
// completion mark, id, priority marker, description, and the slot when
// scheduled.
func FormatTaskLine(item TaskItemData) string {
	mark := " "
	if item.Completed {
		mark = "x"
	}
	prio := priorityMarker(item.Priority)
	line := fmt.Sprintf("[%s] %d. %s %s", mark, item.ID, prio, item.Description)
	if item.Slot != "" {
		line += " @ " + item.Slot
	}
	if item.Completed {
		return doneStyle.Render(line)
	}
	return line
}

func priorityMarker(priority string) string {
	switch strings.ToLower(priority) {
	case "high":
		return "!"
	case "low":
		return "~"
	default:
		return "-"
	}
}

const helpMarkdown = "# dayplan\n\n" +
	"## Views\n" +
	"- `1` tasks, `2` agenda, `?` toggle help, `q` quit\n\n" +
	"## Tasks view\n" +
	"- type a description and press `enter` to add\n" +
	"- `j`/`k` move, `c` complete, `x` remove\n" +
	"- `s` schedule the selected task, `f` unschedule it\n\n" +
	"## Command palette (`/`)\n" +
	"- `add <description> [!high|!low]`\n" +
	"- `rm <id>`, `done <id>`\n" +
	"- `at <id> <HH:MM>`, `free <id>`\n"

func RenderHelpPanel() string {
	return RenderMarkdown(helpMarkdown)
}
