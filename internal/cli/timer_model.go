package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dquispe/jornada/internal/cli/formatter"
	"github.com/dquispe/jornada/internal/domain"
	"github.com/dquispe/jornada/internal/session"
)

// timerAction is what the operator chose when the timer view closed.
type timerAction int

const (
	timerKeepRunning timerAction = iota
	timerStop
	timerSwitch
)

// timerModel is the full-screen ticking view shown while an activity runs.
// It free-runs on the local clock from a store-synced baseline; past the
// stale threshold it shows a hint that the next sync will re-align it.
type timerModel struct {
	width  int
	height int

	clock   *session.Clock
	display session.Display

	action timerAction
}

type timerKeyMap struct {
	Stop   key.Binding
	Switch key.Binding
	Quit   key.Binding
}

var timerKeys = timerKeyMap{
	Stop:   key.NewBinding(key.WithKeys("s", "S")),
	Switch: key.NewBinding(key.WithKeys("c", "C")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
}

type timerTickMsg struct{}

func newTimerModel(clock *session.Clock, display session.Display) timerModel {
	return timerModel{clock: clock, display: display}
}

func timerTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{}
	})
}

func (m timerModel) Init() tea.Cmd {
	return timerTick()
}

func (m timerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return m, timerTick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, timerKeys.Stop):
			m.action = timerStop
			return m, tea.Quit
		case key.Matches(msg, timerKeys.Switch):
			m.action = timerSwitch
			return m, tea.Quit
		case key.Matches(msg, timerKeys.Quit):
			m.action = timerKeepRunning
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m timerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Cargando..."
	}

	now := time.Now()
	elapsed := formatter.StyleHeader.Render(domain.FormatHMS(m.display.ElapsedSec(now)))
	if m.display.Stale(now) {
		elapsed += " " + formatter.StyleYellow.Render("~")
	}

	lines := []string{
		formatter.StyleGreen.Render("● REGISTRANDO"),
		"",
		formatter.Bold(m.clock.ActivityName),
	}
	if m.clock.Subactivity != nil {
		lines = append(lines, formatter.Dim(*m.clock.Subactivity))
	}
	lines = append(lines, "", elapsed)
	if m.clock.StartTime != nil {
		lines = append(lines, "", formatter.Dim(fmt.Sprintf("Inicio %s", m.clock.StartTime.Local().Format("15:04:05"))))
	}
	if m.clock.Note != nil && *m.clock.Note != "" {
		lines = append(lines, formatter.Dim("Nota: "+*m.clock.Note))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	panel := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height - 1).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)

	help := lipgloss.NewStyle().
		Foreground(formatter.ColorDim).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width).
		Render("s detener · c cambiar actividad · q salir (sigue corriendo)")

	return lipgloss.JoinVertical(lipgloss.Left, panel, help)
}

// runTimer shows the timer view and reports the chosen action.
func runTimer(clock *session.Clock, display session.Display) (timerAction, error) {
	p := tea.NewProgram(newTimerModel(clock, display), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return timerKeepRunning, err
	}
	return final.(timerModel).action, nil
}
