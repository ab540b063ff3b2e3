// Package cleaning repairs the shared dataset: median-fills numeric gaps,
// mode-fills categorical gaps and drops duplicate rows, reporting every
// operation it applied.
package cleaning

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/SyedaAimanAli/AIAgents/internal/application/port/input"
	"github.com/SyedaAimanAli/AIAgents/internal/domain/entity"
	"github.com/SyedaAimanAli/AIAgents/internal/usecase/agents"
)

const agentID = "cleaning"

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

	rows, cols := ds.Shape()
	report := &entity.CleaningReport{
		OriginalRows:  rows,
		OriginalCols:  cols,
		MissingBefore: ds.MissingByColumn(),
	}

	advice := a.Ask(ctx, "Provide a JSON cleaning strategy for this dataset.", map[string]any{
		"rows":    rows,
		"cols":    cols,
		"missing": report.MissingBefore,
	})
	report.ModelAdvice = advice

	cleaned := ds.Clone()

	for i := range cleaned.Columns {
		col := &cleaned.Columns[i]
		if col.MissingCount() == 0 {
			continue
		}
		switch col.Kind {
		case entity.KindNumeric:
			fillMedian(col, report)
		case entity.KindCategorical:
			fillMode(col, report)
		}
	}

	if removed := dropDuplicates(cleaned); removed > 0 {
		report.Operations = append(report.Operations,
			fmt.Sprintf("Removed %d duplicate rows", removed))
	}

	report.CleanedRows, report.CleanedCols = cleaned.Shape()
	report.MissingAfter = cleaned.MissingByColumn()
	report.Cleaned = cleaned

	return entity.Succeed(agentID, report, time.Since(start))
}

func fillMedian(col *entity.Column, report *entity.CleaningReport) {
	present := col.Present()
	if len(present) == 0 {
		return
	}
	sort.Float64s(present)
	median := stat.Quantile(0.5, stat.Empirical, present, nil)

	for i := range col.Floats {
		if col.Missing[i] {
			col.Floats[i] = median
			col.Missing[i] = false
		}
	}
	report.Operations = append(report.Operations,
		fmt.Sprintf("Filled %s nulls with median: %g", col.Name, median))
}

func fillMode(col *entity.Column, report *entity.CleaningReport) {
	counts := make(map[string]int)
	for i, v := range col.Strings {
		if !col.Missing[i] {
			counts[v]++
		}
	}
	mode := "Unknown"
	best := 0
	for v, n := range counts {
		if n > best || (n == best && v < mode) {
			mode, best = v, n
		}
	}

	for i := range col.Strings {
		if col.Missing[i] {
			col.Strings[i] = mode
			col.Missing[i] = false
		}
	}
	report.Operations = append(report.Operations,
		fmt.Sprintf("Filled %s nulls with mode: %s", col.Name, mode))
}

// dropDuplicates removes rows whose full signature repeats an earlier row
// and returns how many were removed.
func dropDuplicates(ds *entity.Dataset) int {
	rows := ds.Rows()
	seen := make(map[string]bool, rows)
	keep := make([]int, 0, rows)

	for r := 0; r < rows; r++ {
		var sig strings.Builder
		for i := range ds.Columns {
			col := &ds.Columns[i]
			if col.Missing[r] {
				sig.WriteString("\x00")
			} else if col.Kind == entity.KindNumeric {
				fmt.Fprintf(&sig, "%v", col.Floats[r])
			} else {
				sig.WriteString(col.Strings[r])
			}
			sig.WriteString("\x1f")
		}
		key := sig.String()
		if !seen[key] {
			seen[key] = true
			keep = append(keep, r)
		}
	}

	removed := rows - len(keep)
	if removed == 0 {
		return 0
	}

	for i := range ds.Columns {
		col := &ds.Columns[i]
		if col.Kind == entity.KindNumeric {
			vals := make([]float64, len(keep))
			for j, r := range keep {
				vals[j] = col.Floats[r]
			}
			col.Floats = vals
		} else {
			vals := make([]string, len(keep))
			for j, r := range keep {
				vals[j] = col.Strings[r]
			}
			col.Strings = vals
		}
		miss := make([]bool, len(keep))
		for j, r := range keep {
			miss[j] = col.Missing[r]
		}
		col.Missing = miss
	}
	return removed
}
