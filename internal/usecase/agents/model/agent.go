// Package model ranks features by how strongly they track a target column.
// The point is interpretability, not accuracy: the ranking tells the report
// which features drive the target.
package model

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/SyedaAimanAli/AIAgents/internal/application/port/input"
	"github.com/SyedaAimanAli/AIAgents/internal/domain/entity"
	"github.com/SyedaAimanAli/AIAgents/internal/usecase/agents"
)

const (
	agentID = "ml"

	topInsights = 3
)

var _ input.Agent = (*Agent)(nil)

type Agent struct {
	agents.ModelCaller

	// target is the column to explain; empty means auto-select the first
	// numeric column. Chosen at construction time, per run.
	target string
}

func New(caller agents.ModelCaller, target string) *Agent {
	return &Agent{ModelCaller: caller, target: target}
}

func (a *Agent) ID() string { return agentID }

func (a *Agent) Execute(ctx context.Context, ds *entity.Dataset, _ *entity.ResultSet) entity.Result {
	start := time.Now()

	report := &entity.ModelReport{}

	target := a.target
	if target == "" {
		numeric := ds.NumericColumns()
		if len(numeric) < 2 {
			// Nothing to explain; an empty ranking is still a valid outcome.
			return entity.Succeed(agentID, report, time.Since(start))
		}
		target = numeric[0].Name
	}

	targetCol, ok := ds.Column(target)
	if !ok {
		return entity.Fail(agentID,
			fmt.Sprintf("target column %s not in dataset", target), time.Since(start))
	}
	report.Target = target

	y := encode(targetCol)

	var scores []entity.FeatureScore
	total := 0.0
	for i := range ds.Columns {
		col := &ds.Columns[i]
		if col.Name == target {
			continue
		}
		x := encode(col)
		score := math.Abs(correlate(x, y))
		if math.IsNaN(score) {
			score = 0
		}
		scores = append(scores, entity.FeatureScore{Feature: col.Name, Score: score})
		total += score
	}

	if total > 0 {
		for i := range scores {
			scores[i].Score /= total
		}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })
	report.Importance = scores

	for i, fs := range scores {
		if i >= topInsights {
			break
		}
		report.Insights = append(report.Insights,
			fmt.Sprintf("%s important (score=%.3f)", fs.Feature, fs.Score))
	}

	importanceCtx := make(map[string]any, len(scores))
	for _, fs := range scores {
		importanceCtx[fs.Feature] = fs.Score
	}
	report.ModelInsights = a.Ask(ctx,
		"Provide business-relevant insights based on the top features and model importance.",
		importanceCtx)

	return entity.Succeed(agentID, report, time.Since(start))
}

// encode turns any column into a numeric vector: numerics keep their values
// with missing cells as 0, categoricals get a stable ordinal per distinct
// value.
func encode(col *entity.Column) []float64 {
	n := col.Len()
	out := make([]float64, n)

	if col.Kind == entity.KindNumeric {
		for i := 0; i < n; i++ {
			if !col.Missing[i] {
				out[i] = col.Floats[i]
			}
		}
		return out
	}

	distinct := make([]string, 0)
	seen := make(map[string]bool)
	for i, v := range col.Strings {
		if !col.Missing[i] && !seen[v] {
			seen[v] = true
			distinct = append(distinct, v)
		}
	}
	sort.Strings(distinct)
	codes := make(map[string]float64, len(distinct))
	for i, v := range distinct {
		codes[v] = float64(i)
	}

	for i, v := range col.Strings {
		if !col.Missing[i] {
			out[i] = codes[v]
		}
	}
	return out
}

func correlate(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0
	}
	return stat.Correlation(x, y, nil)
}
