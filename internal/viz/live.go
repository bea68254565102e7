package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tanklab/tanksim/internal/experiment"
	"github.com/tanklab/tanksim/internal/refsig"
)

const historyCapacity = 600

var (
	liveHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	liveLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	liveValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	liveGraphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	liveHelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// TickMsg drives the live simulation clock.
type TickMsg time.Time

// Model is the bubbletea model stepping the closed loop sample by sample.
type Model struct {
	res  *experiment.Result
	loop *stepper
	ctrl *stepper

	n       int
	running bool
	outputs []float64
	efforts []float64
	fps     int
}

// NewModel prepares a live view for a prepared run. The experiment result
// supplies the composed models and the reference parameters; the view
// re-runs the loop incrementally for display.
func NewModel(res *experiment.Result, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	return Model{
		res:     res,
		loop:    newStepper(res.ClosedLoop),
		ctrl:    newStepper(res.Controller),
		running: true,
		outputs: make([]float64, 0, historyCapacity),
		efforts: make([]float64, 0, historyCapacity),
		fps:     fps,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) reference(n int) float64 {
	t := float64(n) * m.res.Config.SamplePeriod
	if m.res.Config.Reference == refsig.Ramp {
		return m.res.Config.RampSlope * t
	}
	return m.res.Config.StepAmplitude
}

func (m Model) totalSamples() int {
	return m.res.Output.Len()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.loop.reset()
			m.ctrl.reset()
			m.n = 0
			m.outputs = m.outputs[:0]
			m.efforts = m.efforts[:0]
			m.running = true
		}
		return m, nil

	case TickMsg:
		if m.running && m.n < m.totalSamples() {
			ref := m.reference(m.n)
			y := m.loop.step(ref)
			u := m.ctrl.step(ref - y)

			m.outputs = append(m.outputs, y)
			m.efforts = append(m.efforts, u)
			if len(m.outputs) > historyCapacity {
				m.outputs = m.outputs[1:]
				m.efforts = m.efforts[1:]
			}
			m.n++
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(liveHeaderStyle.Render(fmt.Sprintf("tank level loop, T = %gs (%s reference)",
		m.res.Config.SamplePeriod, m.res.Config.Reference)))
	sb.WriteString("\n")

	if len(m.outputs) > 1 {
		sb.WriteString(liveGraphStyle.Render(PlotSeries(m.outputs, "output")))
		sb.WriteString("\n")
	}

	t := float64(m.n) * m.res.Config.SamplePeriod
	writeStat := func(label, value string) {
		sb.WriteString(liveLabelStyle.Render(label))
		sb.WriteString(liveValueStyle.Render(value))
		sb.WriteString("\n")
	}
	writeStat("t", fmt.Sprintf("%.0f s", t))
	writeStat("sample", fmt.Sprintf("%d / %d", m.n, m.totalSamples()))
	if m.n > 0 {
		ref := m.reference(m.n - 1)
		y := m.outputs[len(m.outputs)-1]
		writeStat("reference", fmt.Sprintf("%.4f m", ref))
		writeStat("output", fmt.Sprintf("%.4f m", y))
		writeStat("error", fmt.Sprintf("%.4f m", ref-y))
		writeStat("effort", fmt.Sprintf("%.6f", m.efforts[len(m.efforts)-1]))
	}

	status := "running"
	if !m.running {
		status = "paused"
	} else if m.n >= m.totalSamples() {
		status = "done"
	}
	writeStat("status", status)

	sb.WriteString(liveHelpStyle.Render("space pause · r reset · q quit"))
	sb.WriteString("\n")
	return sb.String()
}
