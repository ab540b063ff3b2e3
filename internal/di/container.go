package di

import (
	"fmt"

	"github.com/SyedaAimanAli/AIAgents/internal/application/port/input"
	"github.com/SyedaAimanAli/AIAgents/internal/application/port/output"
	"github.com/SyedaAimanAli/AIAgents/internal/infrastructure/llm/gemini"
	"github.com/SyedaAimanAli/AIAgents/internal/infrastructure/logger"
	"github.com/SyedaAimanAli/AIAgents/internal/infrastructure/report"
	"github.com/SyedaAimanAli/AIAgents/internal/infrastructure/retry"
	"github.com/SyedaAimanAli/AIAgents/internal/usecase/agents"
	"github.com/SyedaAimanAli/AIAgents/internal/usecase/agents/anomaly"
	"github.com/SyedaAimanAli/AIAgents/internal/usecase/agents/cleaning"
	"github.com/SyedaAimanAli/AIAgents/internal/usecase/agents/eda"
	"github.com/SyedaAimanAli/AIAgents/internal/usecase/agents/insights"
	"github.com/SyedaAimanAli/AIAgents/internal/usecase/agents/model"
	"github.com/SyedaAimanAli/AIAgents/internal/usecase/agents/reporter"
	"github.com/SyedaAimanAli/AIAgents/internal/usecase/pipeline"
)

type Container struct {
	Logger output.LoggerPort
	Model  output.InsightPort
	Retry  retry.Config

	reportDir string
}

type Config struct {
	// GeminiAPIKey may be empty: agents then run without model commentary.
	GeminiAPIKey string
	GeminiModel  string
	ReportDir    string
	LogLevel     string
	Retry        retry.Config
}

func NewContainer(cfg Config) (*Container, error) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.ReportDir == "" {
		cfg.ReportDir = "reports"
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = retry.DefaultConfig()
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	var insightModel output.InsightPort
	if cfg.GeminiAPIKey != "" {
		llmCfg := gemini.DefaultConfig(cfg.GeminiAPIKey, cfg.GeminiModel)
		llmCfg.Logger = log.WithField("component", "gemini")
		insightModel = gemini.New(llmCfg)
	} else {
		log.Warn("no model API key configured, agents run without commentary")
	}

	return &Container{
		Logger:    log,
		Model:     insightModel,
		Retry:     cfg.Retry,
		reportDir: cfg.ReportDir,
	}, nil
}

// NewPipeline wires a fresh pipeline for one run. The target column varies
// per run, so agents are constructed here rather than held on the container.
func (c *Container) NewPipeline(target string) input.PipelineRunner {
	caller := agents.ModelCaller{
		Client: c.Model,
		Logger: c.Logger,
		Retry:  c.Retry,
	}

	analysts := []input.Agent{
		cleaning.New(caller),
		eda.New(caller),
		anomaly.New(caller),
		model.New(caller, target),
	}
	synthesizer := insights.New(caller)
	rendering := reporter.New(caller, report.NewPDFRenderer(c.reportDir))

	return pipeline.New(analysts, synthesizer, rendering, c.Logger)
}

func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}
