// Package eda computes per-column summary statistics, pairwise correlations
// and distribution charts for the shared dataset.
package eda

import (
	"context"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/SyedaAimanAli/AIAgents/internal/application/port/input"
	"github.com/SyedaAimanAli/AIAgents/internal/domain/entity"
	"github.com/SyedaAimanAli/AIAgents/internal/infrastructure/charts"
	"github.com/SyedaAimanAli/AIAgents/internal/usecase/agents"
)

const (
	agentID = "eda"

	// Only the first few numeric columns get a distribution chart, matching
	// the report's layout budget.
	maxChartColumns = 3
	histogramBins   = 12
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

	numeric := ds.NumericColumns()
	report := &entity.EDAReport{
		Stats:        make(map[string]entity.ColumnStats, len(numeric)),
		Correlations: make(map[string]map[string]float64),
	}

	for _, col := range numeric {
		report.Stats[col.Name] = describe(col)
	}

	if len(numeric) > 1 {
		report.Correlations = correlationMatrix(numeric)
	}

	for i, col := range numeric {
		if i >= maxChartColumns {
			break
		}
		png, err := charts.Histogram("Distribution of "+col.Name, col.Present(), histogramBins)
		if err != nil {
			if a.Logger != nil {
				a.Logger.Warn("chart skipped", "column", col.Name, "error", err.Error())
			}
			continue
		}
		report.Charts = append(report.Charts, entity.Chart{
			Kind:      "distribution_" + col.Name,
			PNGBase64: png,
		})
	}

	report.ModelInsights = a.Ask(ctx, "Provide 3 key insights from this dataset.", map[string]any{
		"numeric_columns": len(numeric),
		"statistics":      report.Stats,
	})

	return entity.Succeed(agentID, report, time.Since(start))
}

func describe(col *entity.Column) entity.ColumnStats {
	present := col.Present()
	if len(present) == 0 {
		return entity.ColumnStats{}
	}
	sorted := append([]float64(nil), present...)
	sort.Float64s(sorted)

	mean, std := stat.MeanStdDev(present, nil)
	return entity.ColumnStats{
		Count:  len(present),
		Mean:   mean,
		Std:    std,
		Min:    sorted[0],
		Q1:     stat.Quantile(0.25, stat.Empirical, sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Q3:     stat.Quantile(0.75, stat.Empirical, sorted, nil),
		Max:    sorted[len(sorted)-1],
	}
}

// correlationMatrix computes pairwise Pearson correlations over rows where
// both columns are present.
func correlationMatrix(cols []*entity.Column) map[string]map[string]float64 {
	out := make(map[string]map[string]float64, len(cols))
	for _, a := range cols {
		row := make(map[string]float64, len(cols))
		for _, b := range cols {
			row[b.Name] = pairwiseCorrelation(a, b)
		}
		out[a.Name] = row
	}
	return out
}

func pairwiseCorrelation(a, b *entity.Column) float64 {
	if a == b {
		return 1
	}
	var xs, ys []float64
	n := a.Len()
	for i := 0; i < n; i++ {
		if !a.Missing[i] && !b.Missing[i] {
			xs = append(xs, a.Floats[i])
			ys = append(ys, b.Floats[i])
		}
	}
	if len(xs) < 2 {
		return 0
	}
	return stat.Correlation(xs, ys, nil)
}
