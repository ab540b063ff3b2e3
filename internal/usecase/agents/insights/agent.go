// Package insights synthesizes the stage-1 analysis envelopes into an
// executive summary, key findings and recommendations. Model text is used
// when available; deterministic fallbacks keep the report useful when it is
// not.
package insights

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SyedaAimanAli/AIAgents/internal/application/port/input"
	"github.com/SyedaAimanAli/AIAgents/internal/domain/entity"
	"github.com/SyedaAimanAli/AIAgents/internal/usecase/agents"
)

const (
	agentID = "insights"

	maxFindings        = 5
	maxRecommendations = 5
)

var _ input.Agent = (*Agent)(nil)

type Agent struct {
	agents.ModelCaller
}

func New(caller agents.ModelCaller) *Agent {
	return &Agent{ModelCaller: caller}
}

func (a *Agent) ID() string { return agentID }

func (a *Agent) Execute(ctx context.Context, _ *entity.Dataset, prior *entity.ResultSet) entity.Result {
	start := time.Now()

	out := &entity.Insights{}

	docCtx := make(map[string]any)
	for _, r := range prior.All() {
		if r.OK() {
			docCtx[r.AgentID] = r.Payload
		} else {
			docCtx[r.AgentID] = nil
		}
	}

	text := a.Ask(ctx,
		"Generate a concise executive summary, top key findings, and actionable recommendations based on the dataset analysis results.",
		docCtx)
	if text != "" {
		parseModelText(text, out)
	}

	applyFallbacks(prior, out)

	if out.ExecutiveSummary == "" {
		out.ExecutiveSummary = "No major findings detected. Dataset appears structured normally."
	}

	return entity.Succeed(agentID, out, time.Since(start))
}

// parseModelText slices the model's answer by line: summary first, then
// findings, then recommendations.
func parseModelText(text string, out *entity.Insights) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if l := strings.TrimSpace(line); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return
	}

	out.ExecutiveSummary = lines[0]
	rest := lines[1:]
	if len(rest) > maxFindings {
		out.KeyFindings = rest[:maxFindings]
		rest = rest[maxFindings:]
	} else {
		out.KeyFindings = rest
		rest = nil
	}
	if len(rest) > maxRecommendations {
		rest = rest[:maxRecommendations]
	}
	out.Recommendations = rest
}

// applyFallbacks derives findings directly from the stage-1 payloads so the
// synthesis degrades gracefully when model commentary is unavailable.
func applyFallbacks(prior *entity.ResultSet, out *entity.Insights) {
	if r, ok := prior.Get("cleaning"); ok && r.OK() && out.ExecutiveSummary == "" {
		if cr, ok := r.Payload.(*entity.CleaningReport); ok {
			out.ExecutiveSummary = fmt.Sprintf(
				"Processed dataset with %d rows and %d columns.", cr.OriginalRows, cr.OriginalCols)
		}
	}

	if r, ok := prior.Get("anomaly"); ok && r.OK() {
		if ar, ok := r.Payload.(*entity.AnomalyReport); ok && ar.Total > 0 {
			out.KeyFindings = append(out.KeyFindings,
				fmt.Sprintf("Detected %d anomalies across numeric columns.", ar.Total))
			out.Recommendations = append(out.Recommendations,
				"Investigate outliers for data quality or business trends.")
		}
	}

	if r, ok := prior.Get("ml"); ok && r.OK() {
		if mr, ok := r.Payload.(*entity.ModelReport); ok && len(mr.Insights) > 0 {
			n := len(mr.Insights)
			if n > maxFindings {
				n = maxFindings
			}
			out.KeyFindings = append(out.KeyFindings, mr.Insights[:n]...)
			out.Recommendations = append(out.Recommendations,
				"Leverage top features to improve predictive modeling and decision-making.")
		}
	}
}
