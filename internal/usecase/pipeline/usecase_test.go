package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SyedaAimanAli/AIAgents/internal/application/port/input"
	"github.com/SyedaAimanAli/AIAgents/internal/domain/entity"
)

func TestRunProducesOneEnvelopePerAgentInOrder(t *testing.T) {
	analysts := []input.Agent{
		&stubAgent{id: "cleaning"},
		&stubAgent{id: "eda"},
		&stubAgent{id: "anomaly"},
		&stubAgent{id: "ml"},
	}
	uc := New(analysts, &stubAgent{id: "insights"}, &stubAgent{id: "report"}, nopLogger{})

	set := uc.Run(context.Background(), smallDataset())

	assert.Equal(t, []string{"cleaning", "eda", "anomaly", "ml", "insights", "report"}, set.IDs())
	for _, r := range set.All() {
		assert.True(t, r.Valid(), "envelope for %s violates the shape invariant", r.AgentID)
	}
}

func TestRunStageBarriers(t *testing.T) {
	analysts := []input.Agent{
		&stubAgent{id: "cleaning"},
		&stubAgent{id: "eda", sleep: 25 * time.Millisecond}, // slowest analyst
		&stubAgent{id: "anomaly"},
	}

	// The insights agent asserts every analyst envelope is already present,
	// including the slow one; the reporter asserts it sees insights too.
	insights := &stubAgent{id: "insights", fn: func(_ context.Context, _ *entity.Dataset, prior *entity.ResultSet) entity.Result {
		if prior.Len() != 3 {
			return entity.Fail("insights", "started before the analyst stage quiesced", 0)
		}
		for _, id := range []string{"cleaning", "eda", "anomaly"} {
			if _, ok := prior.Get(id); !ok {
				return entity.Fail("insights", "missing analyst envelope "+id, 0)
			}
		}
		return entity.Succeed("insights", "ok", 0)
	}}
	reporter := &stubAgent{id: "report", fn: func(_ context.Context, _ *entity.Dataset, prior *entity.ResultSet) entity.Result {
		if prior.Len() != 4 {
			return entity.Fail("report", "started before the insights stage quiesced", 0)
		}
		ins, ok := prior.Get("insights")
		if !ok || !ins.OK() {
			return entity.Fail("report", "insights envelope not visible", 0)
		}
		return entity.Succeed("report", "ok", 0)
	}}

	set := New(analysts, insights, reporter, nopLogger{}).Run(context.Background(), smallDataset())

	for _, id := range []string{"insights", "report"} {
		r, ok := set.Get(id)
		require.True(t, ok)
		assert.True(t, r.OK(), "%s: %s", id, r.Error)
	}
}

func TestRunNeverAbortsOnFailures(t *testing.T) {
	analysts := []input.Agent{
		&stubAgent{id: "cleaning", fail: true},
		&stubAgent{id: "eda", panic: true},
		&stubAgent{id: "anomaly", fail: true},
		&stubAgent{id: "ml", fail: true},
	}
	uc := New(analysts, &stubAgent{id: "insights"}, &stubAgent{id: "report"}, nopLogger{})

	set := uc.Run(context.Background(), smallDataset())

	// Every stage still ran; downstream agents got their turn despite an
	// entirely failed analyst stage.
	require.Equal(t, 6, set.Len())
	for _, id := range []string{"insights", "report"} {
		r, ok := set.Get(id)
		require.True(t, ok)
		assert.True(t, r.OK())
	}
	failed := 0
	for _, r := range set.All() {
		assert.True(t, r.Valid())
		if !r.OK() {
			failed++
		}
	}
	assert.Equal(t, 4, failed)
}

func TestRunDownstreamSeesFailureEnvelopes(t *testing.T) {
	analysts := []input.Agent{
		&stubAgent{id: "cleaning"},
		&stubAgent{id: "eda", fail: true},
	}
	insights := &stubAgent{id: "insights", fn: func(_ context.Context, _ *entity.Dataset, prior *entity.ResultSet) entity.Result {
		r, ok := prior.Get("eda")
		if !ok {
			return entity.Fail("insights", "failure envelope was dropped", 0)
		}
		if r.OK() || r.Error == "" {
			return entity.Fail("insights", "failure envelope lost its error", 0)
		}
		return entity.Succeed("insights", "saw the failure", 0)
	}}

	set := New(analysts, insights, &stubAgent{id: "report"}, nopLogger{}).Run(context.Background(), smallDataset())

	r, ok := set.Get("insights")
	require.True(t, ok)
	assert.True(t, r.OK(), r.Error)
}
