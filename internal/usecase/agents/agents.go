// Package agents holds the shared plumbing for the analysis agents: the
// model caller that routes every generative call through the retrying
// invoker and degrades to silence when the model is unreachable.
package agents

import (
	"context"
	"errors"

	"github.com/SyedaAimanAli/AIAgents/internal/application/port/output"
	"github.com/SyedaAimanAli/AIAgents/internal/infrastructure/retry"
)

// ModelCaller is embedded by agents that enrich their reports with model
// commentary. Commentary is always optional: an unconfigured client, an
// exhausted retry budget, or a cancelled context all yield an empty string
// and the agent carries on without it.
type ModelCaller struct {
	Client output.InsightPort
	Logger output.LoggerPort
	Retry  retry.Config
}

// Ask sends one prompt with a context document and returns the model text,
// or "" when no insight is available.
func (m ModelCaller) Ask(ctx context.Context, prompt string, docCtx map[string]any) string {
	text, err := m.ask(ctx, prompt, docCtx)
	if err != nil {
		// An unconfigured client is expected and already announced once at
		// startup; only exhausted or aborted calls are worth a warning here.
		if m.Logger != nil && !errors.Is(err, retry.ErrUnavailable) {
			m.Logger.Warn("model commentary unavailable", "error", err.Error())
		}
		return ""
	}
	return text
}

// ask distinguishes the two no-insight cases: retry.ErrUnavailable for an
// unconfigured client, which bypasses the backoff loop since there is nothing
// to wait for, and retry.ErrExhausted after the full schedule failed.
func (m ModelCaller) ask(ctx context.Context, prompt string, docCtx map[string]any) (string, error) {
	if m.Client == nil {
		return "", retry.ErrUnavailable
	}

	cfg := m.Retry
	if cfg.Logger == nil {
		cfg.Logger = m.Logger
	}

	return retry.Do(ctx, cfg, func(ctx context.Context) (string, error) {
		return m.Client.Generate(ctx, prompt, docCtx)
	})
}
