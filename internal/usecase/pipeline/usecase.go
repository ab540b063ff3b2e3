package pipeline

import (
	"context"

	"github.com/SyedaAimanAli/AIAgents/internal/application/port/input"
	"github.com/SyedaAimanAli/AIAgents/internal/application/port/output"
	"github.com/SyedaAimanAli/AIAgents/internal/domain/entity"
)

var _ input.PipelineRunner = (*UseCase)(nil)

// UseCase sequences the three stages of a run: the independent analysts
// fan out over the shared dataset, the insights agent consumes their
// envelopes, the reporter consumes everything. Each stage waits for the
// previous one to fully quiesce, and a failing agent never stops the
// pipeline from advancing.
type UseCase struct {
	analysts []input.Agent
	insights input.Agent
	reporter input.Agent
	logger   output.LoggerPort
}

func New(analysts []input.Agent, insights, reporter input.Agent, logger output.LoggerPort) *UseCase {
	return &UseCase{
		analysts: analysts,
		insights: insights,
		reporter: reporter,
		logger:   logger,
	}
}

// Run executes the full pipeline and returns every envelope from all stages,
// in registration order. It never aborts early and never returns a partial
// set: every registered agent has an envelope in the output, success or
// failure.
func (uc *UseCase) Run(ctx context.Context, ds *entity.Dataset) *entity.ResultSet {
	rows, cols := ds.Shape()
	uc.logger.Info("pipeline starting", "rows", rows, "cols", cols, "analysts", len(uc.analysts))

	results := entity.NewResultSet()
	results.Merge(runPhase(ctx, uc.analysts, ds, entity.NewResultSet(), uc.logger))

	// Insights only starts once every analyst envelope is present.
	results.Merge(runPhase(ctx, []input.Agent{uc.insights}, ds, results, uc.logger))

	// The reporter sees the union of both previous stages.
	results.Merge(runPhase(ctx, []input.Agent{uc.reporter}, ds, results, uc.logger))

	failed := 0
	for _, r := range results.All() {
		if !r.OK() {
			failed++
		}
	}
	uc.logger.Info("pipeline complete", "agents", results.Len(), "failed", failed)
	return results
}
