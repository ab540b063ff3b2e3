// Package anomaly flags IQR outliers in the numeric columns of the shared
// dataset.
package anomaly

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/SyedaAimanAli/AIAgents/internal/application/port/input"
	"github.com/SyedaAimanAli/AIAgents/internal/domain/entity"
	"github.com/SyedaAimanAli/AIAgents/internal/usecase/agents"
)

const (
	agentID = "anomaly"

	// Tukey fences at 1.5 x IQR.
	iqrFactor = 1.5

	maxSampleValues = 10
)

var _ input.Agent = (*Agent)(nil)

type Agent struct {
	agents.ModelCaller
}

func New(caller agents.ModelCaller) *Agent {
	return &Agent{ModelCaller: caller}
}

func (a *Agent) ID() string { return agentID }

func (a *Agent) Execute(ctx context.Context, ds *entity.Dataset, _ *entity.ResultSet) entity.Result {
	start := time.Now()

	report := &entity.AnomalyReport{
		ByColumn: make(map[string]entity.ColumnOutliers),
	}

	rows := ds.Rows()
	for _, col := range ds.NumericColumns() {
		found, ok := detect(col, rows)
		if !ok {
			continue
		}
		report.ByColumn[col.Name] = found
		report.Summary = append(report.Summary,
			fmt.Sprintf("%s: %d outliers (%.2f%%)", col.Name, found.Count, found.Percentage))
		report.Total += found.Count
	}

	report.ModelInsights = a.Ask(ctx,
		"Provide a concise business-oriented summary and recommendations based on the detected anomalies.",
		map[string]any{"outliers_by_column": report.ByColumn})

	return entity.Succeed(agentID, report, time.Since(start))
}

// detect returns the outliers of one column, or ok=false when the column has
// none or too little data to compute quartiles.
func detect(col *entity.Column, rows int) (entity.ColumnOutliers, bool) {
	present := col.Present()
	if len(present) < 4 || rows == 0 {
		return entity.ColumnOutliers{}, false
	}
	sorted := append([]float64(nil), present...)
	sort.Float64s(sorted)

	q1 := stat.Quantile(0.25, stat.Empirical, sorted, nil)
	q3 := stat.Quantile(0.75, stat.Empirical, sorted, nil)
	iqr := q3 - q1
	lower := q1 - iqrFactor*iqr
	upper := q3 + iqrFactor*iqr

	var sample []float64
	count := 0
	for i, v := range col.Floats {
		if col.Missing[i] {
			continue
		}
		if v < lower || v > upper {
			count++
			if len(sample) < maxSampleValues {
				sample = append(sample, v)
			}
		}
	}
	if count == 0 {
		return entity.ColumnOutliers{}, false
	}

	return entity.ColumnOutliers{
		Count:      count,
		Percentage: float64(count) / float64(rows) * 100,
		LowerBound: lower,
		UpperBound: upper,
		Sample:     sample,
	}, true
}
