package update

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/dayplan/internal/commands"
	"github.com/sandeepkv93/dayplan/internal/model"
	"github.com/sandeepkv93/dayplan/internal/planner"
	"github.com/sandeepkv93/dayplan/internal/views"
)

type View string

const (
	ViewTasks  View = "Tasks"
	ViewAgenda View = "Agenda"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Tasks  string
	Agenda string
	Help   string
	Quit   string
}

type inputMode int

const (
	modeBrowse inputMode = iota
	modeAdd
	modeSchedule
	modePalette
)

type Model struct {
	CurrentView View
	Planner     *planner.Planner
	Status      StatusBar
	Keys        GlobalKeyMap
	HelpVisible bool
	Quitting    bool

	defaultPriority model.Priority
	mode            inputMode
	cursor          int
	scheduleTarget  int

	taskList      list.Model
	agendaTable   table.Model
	quickAddInput textinput.Model
	scheduleInput textinput.Model
	commandInput  textinput.Model
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

func NewModel(p *planner.Planner, defaultPriority model.Priority) Model {
	m := Model{
		CurrentView:     ViewTasks,
		Planner:         p,
		defaultPriority: defaultPriority,
		Keys: GlobalKeyMap{
			Tasks:  "1",
			Agenda: "2",
			Help:   "?",
			Quit:   "q",
		},
	}
	if !m.defaultPriority.IsValid() {
		m.defaultPriority = model.PriorityMedium
	}
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

func (m *Model) initBubbleComponents() {
	m.taskList = list.New([]list.Item{}, list.NewDefaultDelegate(), 56, 12)
	m.taskList.Title = "Tasks"
	m.taskList.SetShowHelp(false)
	m.taskList.SetFilteringEnabled(false)

	cols := []table.Column{
		{Title: "Time", Width: 7},
		{Title: "ID", Width: 4},
		{Title: "Pri", Width: 7},
		{Title: "Task", Width: 34},
	}
	m.agendaTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(10))

	m.quickAddInput = textinput.New()
	m.quickAddInput.Prompt = "add> "
	m.quickAddInput.CharLimit = 256
	m.quickAddInput.Width = 42

	m.scheduleInput = textinput.New()
	m.scheduleInput.Prompt = "time (HH:MM)> "
	m.scheduleInput.CharLimit = 5
	m.scheduleInput.Width = 12

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		next := m.handleKey(typed)
		next.syncBubbleData()
		return next, next.quitCmd()
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	}
	return m, nil
}

func (m Model) quitCmd() tea.Cmd {
	if m.Quitting {
		return tea.Quit
	}
	return nil
}

func (m Model) handleKey(msg tea.KeyMsg) Model {
	if msg.String() == "ctrl+c" {
		m.Quitting = true
		return m
	}

	switch m.mode {
	case modeAdd:
		return m.handleAddKey(msg)
	case modeSchedule:
		return m.handleScheduleKey(msg)
	case modePalette:
		return m.handlePaletteKey(msg)
	}

	switch msg.String() {
	case m.Keys.Tasks:
		m.CurrentView = ViewTasks
		return m
	case m.Keys.Agenda:
		m.CurrentView = ViewAgenda
		return m
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m
	case m.Keys.Quit:
		m.Quitting = true
		return m
	case "/":
		m.mode = modePalette
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
		return m
	}

	if m.CurrentView == ViewTasks {
		return m.handleTasksKey(msg)
	}
	return m.handleAgendaKey(msg)
}

func (m Model) handleTasksKey(msg tea.KeyMsg) Model {
	tasks := m.Planner.Tasks()
	switch msg.String() {
	case "a":
		m.mode = modeAdd
		m.quickAddInput.SetValue("")
		m.quickAddInput.Focus()
		m.Status = StatusBar{Text: "enter a task description"}
	case "j", "down":
		if m.cursor < len(tasks)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "c":
		if task, ok := m.selectedTask(tasks); ok {
			m.Planner.MarkComplete(task.ID)
			m.Status = StatusBar{Text: fmt.Sprintf("task %d completed", task.ID)}
		}
	case "x":
		if task, ok := m.selectedTask(tasks); ok {
			m.Planner.RemoveTask(task.ID)
			if m.cursor > 0 {
				m.cursor--
			}
			m.Status = StatusBar{Text: fmt.Sprintf("task %d removed", task.ID)}
		}
	case "s":
		if task, ok := m.selectedTask(tasks); ok {
			m.mode = modeSchedule
			m.scheduleTarget = task.ID
			m.scheduleInput.SetValue("")
			m.scheduleInput.Focus()
			m.Status = StatusBar{Text: fmt.Sprintf("schedule task %d", task.ID)}
		}
	case "f":
		if task, ok := m.selectedTask(tasks); ok {
			if m.Planner.Unschedule(task.ID) {
				m.Status = StatusBar{Text: fmt.Sprintf("task %d unscheduled", task.ID)}
			} else {
				m.Status = StatusBar{Text: fmt.Sprintf("task %d was not scheduled", task.ID)}
			}
		}
	}
	return m
}

func (m Model) handleAgendaKey(msg tea.KeyMsg) Model {
	var cmd tea.Cmd
	m.agendaTable, cmd = m.agendaTable.Update(msg)
	_ = cmd
	return m
}

func (m Model) handleAddKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.quickAddInput.Blur()
		m.Status = StatusBar{}
	case "enter":
		description := m.quickAddInput.Value()
		m.mode = modeBrowse
		m.quickAddInput.SetValue("")
		m.quickAddInput.Blur()
		if description == "" {
			m.Status = StatusBar{Text: "task description must not be empty", IsError: true}
			return m
		}
		id := m.Planner.AddTask(description, m.defaultPriority)
		m.Status = StatusBar{Text: fmt.Sprintf("task %d added", id)}
	default:
		var cmd tea.Cmd
		m.quickAddInput, cmd = m.quickAddInput.Update(msg)
		_ = cmd
	}
	return m
}

func (m Model) handleScheduleKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.scheduleInput.Blur()
		m.Status = StatusBar{}
	case "enter":
		raw := m.scheduleInput.Value()
		m.mode = modeBrowse
		m.scheduleInput.SetValue("")
		m.scheduleInput.Blur()
		m.Status = m.scheduleStatus(m.scheduleTarget, raw)
	default:
		var cmd tea.Cmd
		m.scheduleInput, cmd = m.scheduleInput.Update(msg)
		_ = cmd
	}
	return m
}

func (m Model) scheduleStatus(id int, raw string) StatusBar {
	err := m.Planner.Schedule(id, raw)
	switch {
	case errors.Is(err, planner.ErrInvalidTime):
		return StatusBar{Text: fmt.Sprintf("invalid time %q, use HH:MM", raw), IsError: true}
	case errors.Is(err, planner.ErrTaskNotFound):
		return StatusBar{Text: fmt.Sprintf("task %d not found", id), IsError: true}
	case err != nil:
		return StatusBar{Text: err.Error(), IsError: true}
	}
	slot, _ := m.Planner.SlotOf(id)
	return StatusBar{Text: fmt.Sprintf("task %d scheduled for %s", id, slot)}
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		raw := m.commandInput.Value()
		m.mode = modeBrowse
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m = m.executePaletteCommand(raw)
	default:
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
	}
	return m
}

func (m Model) executePaletteCommand(raw string) Model {
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			id := m.Planner.AddTask(a.Description, a.Priority)
			return commands.Result{Message: fmt.Sprintf("task %d added: %s", id, a.Description)}, nil
		},
		Remove: func(a commands.RemoveArgs) (commands.Result, error) {
			if !m.Planner.RemoveTask(a.ID) {
				return commands.Result{Message: fmt.Sprintf("task %d not found", a.ID)}, nil
			}
			return commands.Result{Message: fmt.Sprintf("task %d removed", a.ID)}, nil
		},
		Done: func(a commands.DoneArgs) (commands.Result, error) {
			if !m.Planner.MarkComplete(a.ID) {
				return commands.Result{Message: fmt.Sprintf("task %d not found", a.ID)}, nil
			}
			return commands.Result{Message: fmt.Sprintf("task %d completed", a.ID)}, nil
		},
		At: func(a commands.AtArgs) (commands.Result, error) {
			status := m.scheduleStatus(a.ID, a.When)
			if status.IsError {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: status.Text}
			}
			return commands.Result{Message: status.Text}, nil
		},
		Free: func(a commands.FreeArgs) (commands.Result, error) {
			if !m.Planner.Unschedule(a.ID) {
				return commands.Result{Message: fmt.Sprintf("task %d was not scheduled", a.ID)}, nil
			}
			return commands.Result{Message: fmt.Sprintf("task %d unscheduled", a.ID)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Status = StatusBar{Text: res.Message}
	return m
}

func (m *Model) selectedTask(tasks []model.Task) (model.Task, bool) {
	if len(tasks) == 0 {
		m.Status = StatusBar{Text: "no tasks"}
		return model.Task{}, false
	}
	if m.cursor >= len(tasks) {
		m.cursor = len(tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return tasks[m.cursor], true
}

func (m *Model) syncBubbleData() {
	tasks := m.Planner.Tasks()
	items := make([]list.Item, 0, len(tasks))
	for _, task := range tasks {
		slot := ""
		if s, ok := m.Planner.SlotOf(task.ID); ok {
			slot = s.String()
		}
		items = append(items, listItem{
			title: views.FormatTaskLine(views.TaskItemData{
				ID:          task.ID,
				Description: task.Description,
				Priority:    string(task.Priority),
				Completed:   task.Completed,
				Slot:        slot,
			}),
			description: string(task.Priority),
		})
	}
	m.taskList.SetItems(items)
	if len(items) > 0 {
		if m.cursor >= len(items) {
			m.cursor = len(items) - 1
		}
		m.taskList.Select(m.cursor)
	}

	rows := make([]table.Row, 0)
	for _, entry := range m.Planner.Agenda() {
		for _, id := range entry.TaskIDs {
			task, ok := m.Planner.Task(id)
			if !ok {
				continue
			}
			rows = append(rows, table.Row{
				entry.Slot.String(),
				strconv.Itoa(task.ID),
				string(task.Priority),
				task.Description,
			})
		}
	}
	m.agendaTable.SetRows(rows)
}

func (m Model) View() string {
	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewTasks:
		leftPane = views.RenderTasksPanel(views.TasksPanelData{
			QuickAddView: m.activeInputView(),
			ListView:     m.taskList.View(),
		})
		rightPane = m.renderHelpIfVisible()
	case ViewAgenda:
		leftPane = views.RenderAgendaPanel(views.AgendaPanelData{
			TableView: m.agendaTable.View(),
			Count:     len(m.Planner.Agenda()),
		})
		rightPane = m.renderHelpIfVisible()
	}

	return views.RenderApp(views.AppData{
		Header:      fmt.Sprintf("dayplan | view: %s", m.CurrentView),
		LeftPane:    leftPane,
		RightPane:   rightPane,
		StatusLine:  m.Status.Text,
		StatusError: m.Status.IsError,
		Footer: fmt.Sprintf("keys: %s tasks | %s agenda | / palette | %s help | %s quit",
			m.Keys.Tasks, m.Keys.Agenda, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) activeInputView() string {
	switch m.mode {
	case modeAdd:
		return m.quickAddInput.View()
	case modeSchedule:
		return m.scheduleInput.View()
	case modePalette:
		return m.commandInput.View()
	default:
		return "press [a] to add a task"
	}
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return "press ? for help"
	}
	return views.RenderHelpPanel()
}
