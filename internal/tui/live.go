// Package tui provides a terminal live view of the stress tensor at one
// surface point as it evolves through the forcing cycle.
package tui

import (
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/tidestress/internal/stress"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

type tickMsg time.Time

type model struct {
	calc   *stress.Calculator
	name   string
	theta  float64 // rad
	phi    float64 // rad
	t      float64 // s
	dt     float64 // s per frame
	paused bool
}

// Run starts the live view at the given point (degrees) advancing the
// simulation clock by dt seconds per frame.
func Run(calc *stress.Calculator, name string, lat, lon, dt float64) error {
	m := model{
		calc:  calc,
		name:  name,
		theta: (90 - lat) * math.Pi / 180,
		phi:   lon * math.Pi / 180,
		dt:    dt,
	}
	_, err := tea.NewProgram(m).Run()
	return err
}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return tick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if !m.paused {
			m.t += m.dt
		}
		return m, tick()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "+", "=":
			m.dt *= 2
		case "-":
			m.dt /= 2
		case "0":
			m.t = 0
		}
	}
	return m, nil
}

func (m model) View() string {
	tau := m.calc.Tensor(m.theta, m.phi, m.t)
	pr := tau.Principal()

	lat := 90 - m.theta*180/math.Pi
	lon := m.phi * 180 / math.Pi

	header := titleStyle.Render(fmt.Sprintf("%s  lat %.1f  lon %.1f", m.name, lat, lon))

	rows := fmt.Sprintf(
		"%s %s\n%s %s\n\n%s %s\n%s %s\n%s %s\n\n%s %s\n%s %s\n%s %s",
		labelStyle.Render("t          "), valueStyle.Render(fmt.Sprintf("%.4g s", m.t)),
		labelStyle.Render("dt/frame   "), valueStyle.Render(fmt.Sprintf("%.4g s", m.dt)),
		labelStyle.Render("Ttt        "), valueStyle.Render(fmt.Sprintf("%+.4e Pa", tau.Ttt)),
		labelStyle.Render("Tpt        "), valueStyle.Render(fmt.Sprintf("%+.4e Pa", tau.Tpt)),
		labelStyle.Render("Tpp        "), valueStyle.Render(fmt.Sprintf("%+.4e Pa", tau.Tpp)),
		labelStyle.Render("sigma max  "), valueStyle.Render(fmt.Sprintf("%+.4e Pa", pr.Max)),
		labelStyle.Render("sigma min  "), valueStyle.Render(fmt.Sprintf("%+.4e Pa", pr.Min)),
		labelStyle.Render("azimuth    "), valueStyle.Render(fmt.Sprintf("%.1f deg", pr.Azimuth*180/math.Pi)),
	)

	status := "running"
	if m.paused {
		status = "paused"
	}
	help := helpStyle.Render(fmt.Sprintf("[%s]  space pause  +/- speed  0 reset  q quit", status))

	return lipgloss.JoinVertical(lipgloss.Left, header, boxStyle.Render(rows), help) + "\n"
}
