// Package report renders performance metrics as styled terminal text.
// It consumes experiment results and never feeds back into the core.
package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tanklab/tanksim/internal/experiment"
)

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(24)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// Render formats one run's metrics.
func Render(res *experiment.Result) string {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render(fmt.Sprintf("%s response, T = %gs", res.Config.Reference, res.Config.SamplePeriod)))
	sb.WriteString("\n")

	switch {
	case res.Step != nil:
		writeRow(&sb, "final value", fmt.Sprintf("%.4f m", res.Step.FinalValue))
		writeRow(&sb, "steady-state error", fmt.Sprintf("%.6f m", math.Abs(res.Step.SteadyStateError)))
		writeRow(&sb, "overshoot", fmt.Sprintf("%.2f%%", res.Step.OvershootPercent))
		if res.Step.Settled {
			writeRow(&sb, "settling time (2%)", fmt.Sprintf("%.0f s", res.Step.SettlingTime))
		} else {
			writeRow(&sb, "settling time (2%)", "not settled in lookback window")
		}
		writeRow(&sb, "max control effort", fmt.Sprintf("%.6f", res.Step.MaxEffort))
	case res.Ramp != nil:
		writeRow(&sb, "velocity error", fmt.Sprintf("%.6f m", res.Ramp.VelocityError))
		writeRow(&sb, "max control effort", fmt.Sprintf("%.6f", res.Ramp.MaxEffort))
	}

	if res.Warning != "" {
		sb.WriteString(warningStyle.Render("warning: " + res.Warning))
		sb.WriteString("\n")
	}

	return sb.String()
}

// RenderSweep formats every item of a sweep, including failed runs.
func RenderSweep(items []experiment.SweepItem) string {
	var sb strings.Builder
	for i, item := range items {
		if i > 0 {
			sb.WriteString("\n")
		}
		if item.Err != nil {
			sb.WriteString(headerStyle.Render(fmt.Sprintf("T = %gs", item.SamplePeriod)))
			sb.WriteString("\n")
			sb.WriteString(errorStyle.Render("run failed: " + item.Err.Error()))
			sb.WriteString("\n")
			continue
		}
		sb.WriteString(Render(item.Result))
	}
	return sb.String()
}

func writeRow(sb *strings.Builder, label, value string) {
	sb.WriteString(labelStyle.Render(label))
	sb.WriteString(valueStyle.Render(value))
	sb.WriteString("\n")
}
