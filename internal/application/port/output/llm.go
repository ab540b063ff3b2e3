package output

import "context"

// InsightPort is the single-attempt interface to the generative model used
// for commentary. One call is one attempt: implementations do not retry, the
// caller wraps the port with the retrying invoker.
type InsightPort interface {
	// Generate sends a prompt, optionally prefixed with a JSON-rendered
	// context document, and returns the model's text. An empty completion is
	// reported as an error.
	Generate(ctx context.Context, prompt string, docCtx map[string]any) (string, error)
}
