// Package charts renders the PNG visualizations embedded in analysis
// reports.
package charts

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
)

const (
	chartWidth  = 640
	chartHeight = 420
)

// Histogram renders a binned distribution of values and returns the PNG as
// base64.
func Histogram(title string, values []float64, bins int) (string, error) {
	if len(values) == 0 {
		return "", fmt.Errorf("histogram %q: no values", title)
	}
	if bins < 1 {
		bins = 10
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	width := (max - min) / float64(bins)
	if width == 0 {
		// Degenerate distribution, one bar carries everything.
		width = 1
		bins = 1
	}

	counts := make([]int, bins)
	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}

	// Label every few bars so the axis stays readable.
	labelEvery := bins / 6
	if labelEvery < 1 {
		labelEvery = 1
	}

	bars := make([]chart.Value, bins)
	for i, n := range counts {
		label := ""
		if i%labelEvery == 0 {
			label = fmt.Sprintf("%.4g", min+float64(i)*width)
		}
		bars[i] = chart.Value{Value: float64(n), Label: label}
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: maxInt(4, (chartWidth-100)/bins-4),
		Bars:     bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return "", fmt.Errorf("render histogram %q: %w", title, err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
