package forecast

import (
	"fmt"
	"strings"
)

// Chart geometry. The plot area is the frame minus the padding band.
const (
	chartWidth  = 640.0
	chartHeight = 240.0
	chartPad    = 32.0
)

// mapX spreads n samples evenly across the plot width.
func mapX(i, n int) float64 {
	if n <= 1 {
		return chartWidth / 2
	}
	return chartPad + float64(i)*(chartWidth-2*chartPad)/float64(n-1)
}

// mapY scales a value linearly between the observed min and max. A flat
// series has no vertical extent, so it sits on the middle line.
func mapY(v, min, max float64) float64 {
	if max == min {
		return chartHeight / 2
	}
	return chartHeight - chartPad - (v-min)*(chartHeight-2*chartPad)/(max-min)
}

// RenderChart draws predicted (dashed) and actual (solid) demand as SVG.
func RenderChart(points []Point) string {
	var b strings.Builder

	fmt.Fprintf(&b,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`,
		chartWidth, chartHeight, chartWidth, chartHeight)
	b.WriteString(`<rect width="100%" height="100%" fill="white"/>`)

	if len(points) == 0 {
		fmt.Fprintf(&b,
			`<text x="%.0f" y="%.0f" text-anchor="middle" font-family="sans-serif" font-size="14" fill="#666">no forecast data</text>`,
			chartWidth/2, chartHeight/2)
		b.WriteString(`</svg>`)
		return b.String()
	}

	min, max := points[0].PredictedQty, points[0].PredictedQty
	for _, p := range points {
		for _, v := range plottedValues(p) {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}

	// axes
	fmt.Fprintf(&b,
		`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#ccc"/>`,
		chartPad, chartHeight-chartPad, chartWidth-chartPad, chartHeight-chartPad)
	fmt.Fprintf(&b,
		`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#ccc"/>`,
		chartPad, chartPad, chartPad, chartHeight-chartPad)

	writePolyline(&b, points, min, max, true)
	writePolyline(&b, points, min, max, false)

	// scale labels
	fmt.Fprintf(&b,
		`<text x="%.1f" y="%.1f" font-family="sans-serif" font-size="10" fill="#666">%.1f</text>`,
		4.0, chartPad+4, max)
	fmt.Fprintf(&b,
		`<text x="%.1f" y="%.1f" font-family="sans-serif" font-size="10" fill="#666">%.1f</text>`,
		4.0, chartHeight-chartPad, min)
	fmt.Fprintf(&b,
		`<text x="%.1f" y="%.1f" font-family="sans-serif" font-size="10" fill="#666">%s</text>`,
		chartPad, chartHeight-8, points[0].Day)
	fmt.Fprintf(&b,
		`<text x="%.1f" y="%.1f" text-anchor="end" font-family="sans-serif" font-size="10" fill="#666">%s</text>`,
		chartWidth-chartPad, chartHeight-8, points[len(points)-1].Day)

	b.WriteString(`</svg>`)
	return b.String()
}

func plottedValues(p Point) []float64 {
	vals := []float64{p.PredictedQty}
	if p.ActualQty != nil {
		vals = append(vals, *p.ActualQty)
	}
	return vals
}

func writePolyline(b *strings.Builder, points []Point, min, max float64, predicted bool) {
	var coords []string
	for i, p := range points {
		v := p.PredictedQty
		if !predicted {
			if p.ActualQty == nil {
				continue
			}
			v = *p.ActualQty
		}
		coords = append(coords,
			fmt.Sprintf("%.1f,%.1f", mapX(i, len(points)), mapY(v, min, max)))
	}
	if len(coords) == 0 {
		return
	}

	stroke := "#82ca9d"
	dash := ""
	if predicted {
		stroke = "#8884d8"
		dash = ` stroke-dasharray="6 3"`
	}

	fmt.Fprintf(b,
		`<polyline fill="none" stroke="%s" stroke-width="2"%s points="%s"/>`,
		stroke, dash, strings.Join(coords, " "))
}
