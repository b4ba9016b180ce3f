// Package chart renders reconstructed balance series as an HTML line chart.
package chart

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/theCalcaholic/findus/internal/domain"
	"github.com/theCalcaholic/findus/internal/usecase"
)

// Renderer draws balance-over-time line charts.
type Renderer struct {
	now func() time.Time
}

func NewRenderer() *Renderer {
	return &Renderer{now: time.Now}
}

// WithNow overrides the clock used for axis labels.
func (r *Renderer) WithNow(now func() time.Time) *Renderer {
	r.now = now
	return r
}

// Render writes an HTML chart of the given series. Series points are ordered
// newest first and get reversed onto a chronological axis ending today.
func (r *Renderer) Render(w io.Writer, series []usecase.Series) error {
	if len(series) == 0 {
		return domain.ErrEmptySeries
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Account balances"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	line.SetXAxis(r.axisLabels(longestSeries(series)))

	for _, s := range series {
		line.AddSeries(s.Label, lineData(s, longestSeries(series)))
	}

	if err := line.Render(w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}

	return nil
}

// RenderFile renders the chart into an HTML file at path.
func (r *Renderer) RenderFile(path string, series []usecase.Series) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	defer file.Close()

	return r.Render(file, series)
}

func (r *Renderer) axisLabels(length int) []string {
	today := r.now()

	labels := make([]string, 0, length)
	for offset := length - 1; offset >= 0; offset-- {
		labels = append(labels, today.AddDate(0, 0, -offset).Format("2006-01-02"))
	}

	return labels
}

// lineData reverses the series onto the chronological axis, left-padding
// shorter series with gaps so every series ends at today.
func lineData(s usecase.Series, length int) []opts.LineData {
	data := make([]opts.LineData, 0, length)
	for pad := length - len(s.Points); pad > 0; pad-- {
		data = append(data, opts.LineData{Value: nil})
	}
	for i := len(s.Points) - 1; i >= 0; i-- {
		data = append(data, opts.LineData{Value: s.Points[i].InexactFloat64()})
	}

	return data
}

func longestSeries(series []usecase.Series) int {
	longest := 0
	for _, s := range series {
		if len(s.Points) > longest {
			longest = len(s.Points)
		}
	}

	return longest
}
