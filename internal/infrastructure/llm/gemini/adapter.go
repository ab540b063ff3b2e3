// Package gemini talks to the Gemini generative API through its
// OpenAI-compatible endpoint.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"github.com/SyedaAimanAli/AIAgents/internal/application/port/output"
)

var _ output.InsightPort = (*Adapter)(nil)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float32
	MaxTokens   int
	Logger      output.LoggerPort
}

func DefaultConfig(apiKey, model string) Config {
	return Config{
		APIKey:      apiKey,
		Model:       model,
		BaseURL:     defaultBaseURL,
		Temperature: 0.2,
		MaxTokens:   800,
	}
}

type Adapter struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	logger      output.LoggerPort
}

type loggingTransport struct {
	base   http.RoundTripper
	logger output.LoggerPort
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.logger.Debug("model request", "method", req.Method, "url", req.URL.Path)
	resp, err := t.base.RoundTrip(req)
	if resp != nil {
		t.logger.Debug("model response", "status", resp.Status)
	}
	return resp, err
}

func New(cfg Config) *Adapter {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	if cfg.Logger != nil {
		config.HTTPClient = &http.Client{
			Transport: &loggingTransport{base: http.DefaultTransport, logger: cfg.Logger},
		}
	}

	return &Adapter{
		client:      openai.NewClientWithConfig(config),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		logger:      cfg.Logger,
	}
}

// Generate performs a single attempt. The caller owns retries; here a
// transport fault and an empty completion are both just errors.
func (a *Adapter) Generate(ctx context.Context, prompt string, docCtx map[string]any) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(prompt, docCtx)},
		},
		Temperature: a.temperature,
		MaxTokens:   a.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty completion")
	}
	return resp.Choices[0].Message.Content, nil
}

// BuildPrompt prefixes the prompt with a JSON rendering of the context
// document, when one is given.
func BuildPrompt(prompt string, docCtx map[string]any) string {
	if len(docCtx) == 0 {
		return prompt
	}
	data, err := json.MarshalIndent(docCtx, "", "  ")
	if err != nil {
		return prompt
	}
	return "Context:\n" + string(data) + "\n\n" + prompt
}
