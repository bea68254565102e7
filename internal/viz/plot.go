// Package viz draws simulation traces in the terminal and hosts the
// live closed-loop viewer.
package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/tanklab/tanksim/internal/sim"
)

const (
	plotHeight = 10
	plotWidth  = 80
)

// PlotSeries renders one data series as an ascii graph.
func PlotSeries(data []float64, caption string) string {
	if len(data) == 0 {
		return fmt.Sprintf("(%s: no data)", caption)
	}
	return asciigraph.Plot(data,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// PlotTrace renders a closed-loop trace: output, reference, tracking
// error and, when provided, the control effort.
func PlotTrace(output sim.Trace, effort []float64) string {
	var sb strings.Builder

	sb.WriteString(PlotSeries(output.Output, "output"))
	sb.WriteString("\n\n")
	sb.WriteString(PlotSeries(output.Input, "reference"))
	sb.WriteString("\n\n")
	sb.WriteString(PlotSeries(output.Error(), "tracking error"))
	if len(effort) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(PlotSeries(effort, "control effort"))
	}
	sb.WriteString("\n")
	return sb.String()
}
