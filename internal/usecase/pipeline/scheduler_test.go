package pipeline

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SyedaAimanAli/AIAgents/internal/application/port/input"
	"github.com/SyedaAimanAli/AIAgents/internal/application/port/output"
	"github.com/SyedaAimanAli/AIAgents/internal/domain/entity"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...any)                  {}
func (nopLogger) Info(string, ...any)                   {}
func (nopLogger) Warn(string, ...any)                   {}
func (nopLogger) Error(string, ...any)                  {}
func (nopLogger) WithField(string, any) output.LoggerPort { return nopLogger{} }
func (nopLogger) Close() error                          { return nil }

// stubAgent is a scriptable agent for scheduler tests.
type stubAgent struct {
	id    string
	sleep time.Duration
	fail  bool
	panic bool
	fn    func(ctx context.Context, ds *entity.Dataset, prior *entity.ResultSet) entity.Result
}

func (a *stubAgent) ID() string { return a.id }

func (a *stubAgent) Execute(ctx context.Context, ds *entity.Dataset, prior *entity.ResultSet) entity.Result {
	if a.sleep > 0 {
		time.Sleep(a.sleep)
	}
	if a.panic {
		panic("nil column reference")
	}
	if a.fn != nil {
		return a.fn(ctx, ds, prior)
	}
	if a.fail {
		return entity.Fail(a.id, "scripted failure", 0)
	}
	return entity.Succeed(a.id, a.id+" payload", 0)
}

func smallDataset() *entity.Dataset {
	return &entity.Dataset{Columns: []entity.Column{{
		Name:    "x",
		Kind:    entity.KindNumeric,
		Floats:  []float64{1, 2, 3},
		Missing: []bool{false, false, false},
	}}}
}

func TestRunPhaseRecordsRegistrationOrder(t *testing.T) {
	// Completion order is the reverse of registration order.
	agents := []input.Agent{
		&stubAgent{id: "a", sleep: 30 * time.Millisecond},
		&stubAgent{id: "b", sleep: 20 * time.Millisecond},
		&stubAgent{id: "c", sleep: 10 * time.Millisecond},
		&stubAgent{id: "d"},
	}

	set := runPhase(context.Background(), agents, smallDataset(), entity.NewResultSet(), nopLogger{})

	assert.Equal(t, []string{"a", "b", "c", "d"}, set.IDs())
	assert.Equal(t, 4, set.Len())
}

func TestRunPhaseRunsAgentsConcurrently(t *testing.T) {
	const each = 40 * time.Millisecond
	agents := []input.Agent{
		&stubAgent{id: "a", sleep: each},
		&stubAgent{id: "b", sleep: each},
		&stubAgent{id: "c", sleep: each},
		&stubAgent{id: "d", sleep: each},
	}

	start := time.Now()
	set := runPhase(context.Background(), agents, smallDataset(), entity.NewResultSet(), nopLogger{})
	elapsed := time.Since(start)

	assert.Equal(t, 4, set.Len())
	// Serial execution would take 4*each; fan-out keeps it near one agent's time.
	assert.Less(t, elapsed, 3*each)
}

func TestRunPhaseIsolatesPanics(t *testing.T) {
	agents := []input.Agent{
		&stubAgent{id: "a"},
		&stubAgent{id: "b", panic: true},
		&stubAgent{id: "c"},
		&stubAgent{id: "d"},
	}

	set := runPhase(context.Background(), agents, smallDataset(), entity.NewResultSet(), nopLogger{})

	require.Equal(t, 4, set.Len())
	assert.Equal(t, []string{"a", "b", "c", "d"}, set.IDs())

	crashed, ok := set.Get("b")
	require.True(t, ok)
	assert.Equal(t, entity.StatusFailure, crashed.Status)
	assert.Contains(t, crashed.Error, "agent panicked")
	assert.Contains(t, crashed.Error, "nil column reference")
	assert.Zero(t, crashed.Duration)
	assert.True(t, crashed.Valid())

	for _, id := range []string{"a", "c", "d"} {
		r, ok := set.Get(id)
		require.True(t, ok)
		assert.True(t, r.OK())
	}
}

func TestCallAgentStampsIdentityAndDuration(t *testing.T) {
	// The agent reports a wrong ID and no duration; the scheduler overrides both.
	ag := &stubAgent{id: "eda", sleep: 15 * time.Millisecond, fn: func(context.Context, *entity.Dataset, *entity.ResultSet) entity.Result {
		return entity.Succeed("impostor", 42, 0)
	}}

	res := callAgent(context.Background(), ag, smallDataset(), entity.NewResultSet())

	assert.Equal(t, "eda", res.AgentID)
	assert.GreaterOrEqual(t, res.Duration, 15*time.Millisecond)
	assert.True(t, res.OK())
	assert.Equal(t, 42, res.Payload)
}

func TestRunPhaseOrderIsDeterministicAcrossRuns(t *testing.T) {
	agents := make([]input.Agent, 6)
	for i := range agents {
		agents[i] = &stubAgent{
			id:    fmt.Sprintf("agent-%d", i),
			sleep: time.Duration(5-i) * 4 * time.Millisecond,
		}
	}

	want := []string{"agent-0", "agent-1", "agent-2", "agent-3", "agent-4", "agent-5"}
	for run := 0; run < 5; run++ {
		set := runPhase(context.Background(), agents, smallDataset(), entity.NewResultSet(), nopLogger{})
		assert.Equal(t, want, set.IDs())
	}
}
