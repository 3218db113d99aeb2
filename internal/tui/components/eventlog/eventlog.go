package eventlog

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/dayquest/internal/models"
)

var (
	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(17)

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Width(26)

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("246"))

	gainStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

type Model struct {
	viewport viewport.Model
	events   []models.Event
	width    int
	height   int
}

func New(width, height int) Model {
	vp := viewport.New(width, height)
	return Model{viewport: vp}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.events) == 0 {
		return "\n  Nothing logged yet."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetEvents(events []models.Event) {
	m.events = events
	m.Render()
}

func (m *Model) Render() {
	var b strings.Builder
	for _, e := range m.events {
		line := fmt.Sprintf("%s %s %s",
			timeStyle.Render(e.Timestamp.Local().Format("2006-01-02 15:04")),
			typeStyle.Render(string(e.Type)),
			detailStyle.Render(e.Details),
		)
		if delta := formatDelta(e); delta != "" {
			line += " " + delta
		}
		b.WriteString(line + "\n")
	}
	m.viewport.SetContent(b.String())
}

func formatDelta(e models.Event) string {
	var parts []string
	if e.XPChange != 0 {
		s := fmt.Sprintf("%+d XP", e.XPChange)
		if e.XPChange > 0 {
			parts = append(parts, gainStyle.Render(s))
		} else {
			parts = append(parts, lossStyle.Render(s))
		}
	}
	if e.CoinChange != 0 {
		s := fmt.Sprintf("%+d coins", e.CoinChange)
		if e.CoinChange > 0 {
			parts = append(parts, gainStyle.Render(s))
		} else {
			parts = append(parts, lossStyle.Render(s))
		}
	}
	return strings.Join(parts, " ")
}
