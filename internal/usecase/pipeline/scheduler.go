package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SyedaAimanAli/AIAgents/internal/application/port/input"
	"github.com/SyedaAimanAli/AIAgents/internal/application/port/output"
	"github.com/SyedaAimanAli/AIAgents/internal/domain/entity"
)

// runPhase dispatches every agent concurrently and joins them all before
// returning. Envelopes are recorded in registration order regardless of
// completion order, and a phase finishes only when every agent has an
// envelope. One agent failing never blocks the others.
func runPhase(ctx context.Context, agents []input.Agent, ds *entity.Dataset, prior *entity.ResultSet, log output.LoggerPort) *entity.ResultSet {
	slots := make([]entity.Result, len(agents))

	var wg sync.WaitGroup
	for i, ag := range agents {
		wg.Add(1)
		go func(i int, ag input.Agent) {
			defer wg.Done()
			slots[i] = callAgent(ctx, ag, ds, prior)
		}(i, ag)
	}
	wg.Wait()

	set := entity.NewResultSet()
	for _, r := range slots {
		if log != nil {
			log.Info("agent finished", "agent", r.AgentID, "status", string(r.Status), "duration", r.Duration.String())
		}
		set.Add(r)
	}
	return set
}

// callAgent invokes one agent, stamps the wall-clock duration the scheduler
// measured, and converts a contract-violating panic into a synthesized
// failure envelope so the phase itself never crashes.
func callAgent(ctx context.Context, ag input.Agent, ds *entity.Dataset, prior *entity.ResultSet) (res entity.Result) {
	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			res = entity.Fail(ag.ID(), fmt.Sprintf("agent panicked: %v", p), 0)
		}
	}()

	res = ag.Execute(ctx, ds, prior)
	res.AgentID = ag.ID()
	res.Duration = time.Since(start)
	return res
}
