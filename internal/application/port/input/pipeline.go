package input

import (
	"context"

	"github.com/SyedaAimanAli/AIAgents/internal/domain/entity"
)

// Agent is the contract every analysis step satisfies: given the shared
// dataset and, for later stages, the envelopes accumulated so far, produce
// exactly one envelope. An agent catches its own faults and reports them as
// a failure envelope; a fault must never cross this boundary.
type Agent interface {
	ID() string
	Execute(ctx context.Context, ds *entity.Dataset, prior *entity.ResultSet) entity.Result
}

// PipelineRunner is the pipeline entry point shared by the CLI and the web
// front end. It always completes and always returns a full result set mixing
// successes and failures.
type PipelineRunner interface {
	Run(ctx context.Context, ds *entity.Dataset) *entity.ResultSet
}
