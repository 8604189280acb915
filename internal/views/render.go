package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// AppData is everything one frame needs: the wide main pane holds the
// active view, the narrow side pane holds help or a hint, and the
// status line carries its error flag instead of encoding it in text.
type AppData struct {
	Header      string
	LeftPane    string
	RightPane   string
	StatusLine  string
	StatusError bool
	Footer      string
}

const (
	mainPaneWidth = 66
	sidePaneWidth = 38
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	mainPaneStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(mainPaneWidth)
	sidePaneStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1).Width(sidePaneWidth).Foreground(lipgloss.Color("7"))
	statusOKStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Padding(0, 1)
	statusErrStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")).Padding(0, 1)
	footerStyle    = lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("8")).Padding(0, 1)
	doneStyle      = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8"))
)

func RenderApp(data AppData) string {
	sections := []string{
		headerStyle.Render(data.Header),
		lipgloss.JoinHorizontal(lipgloss.Top,
			mainPaneStyle.Render(data.LeftPane),
			sidePaneStyle.Render(data.RightPane),
		),
	}
	if line := renderStatus(data.StatusLine, data.StatusError); line != "" {
		sections = append(sections, line)
	}
	if data.Footer != "" {
		sections = append(sections, footerStyle.Render(data.Footer))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderStatus(line string, isError bool) string {
	if line == "" {
		return ""
	}
	if isError {
		return statusErrStyle.Render("! " + line)
	}
	return statusOKStyle.Render(line)
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
