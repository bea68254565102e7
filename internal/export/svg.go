// Package export writes simulation traces as standalone SVG figures.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/tanklab/tanksim/internal/sim"
)

// TraceToSVG renders a closed-loop trace as an SVG figure: solid output
// polyline, dashed reference.
func TraceToSVG(tr sim.Trace, width, height int) string {
	if tr.Len() < 2 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	minV, maxV := bounds(tr.Output, tr.Input)
	sb.WriteString(polyline(tr.Time, tr.Input, minV, maxV, width, height,
		`stroke="#ff5555" stroke-dasharray="6,4"`))
	sb.WriteString(polyline(tr.Time, tr.Output, minV, maxV, width, height,
		`stroke="#00ccff"`))

	sb.WriteString("</svg>\n")
	return sb.String()
}

// WriteSVG writes the rendered trace to a file.
func WriteSVG(path string, tr sim.Trace, width, height int) error {
	svg := TraceToSVG(tr, width, height)
	if svg == "" {
		return fmt.Errorf("export: trace too short to plot")
	}
	return os.WriteFile(path, []byte(svg), 0644)
}

func polyline(time, values []float64, minV, maxV float64, width, height int, stroke string) string {
	t0 := time[0]
	tRange := time[len(time)-1] - t0
	if tRange == 0 {
		tRange = 1
	}
	vRange := maxV - minV
	if vRange == 0 {
		vRange = 1
	}

	const margin = 10.0
	w := float64(width) - 2*margin
	h := float64(height) - 2*margin

	var pts strings.Builder
	for i := range time {
		x := margin + w*(time[i]-t0)/tRange
		y := margin + h*(1-(values[i]-minV)/vRange)
		if i > 0 {
			pts.WriteByte(' ')
		}
		fmt.Fprintf(&pts, "%.1f,%.1f", x, y)
	}

	return fmt.Sprintf("<polyline fill=\"none\" %s stroke-width=\"2\" points=\"%s\"/>\n", stroke, pts.String())
}

func bounds(series ...[]float64) (minV, maxV float64) {
	first := true
	for _, s := range series {
		for _, v := range s {
			if first {
				minV, maxV = v, v
				first = false
				continue
			}
			if v < minV {
				minV = v
			}
			if v > maxV {
				maxV = v
			}
		}
	}
	return minV, maxV
}
