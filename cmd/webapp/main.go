package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SyedaAimanAli/AIAgents/internal/application/port/input"
	"github.com/SyedaAimanAli/AIAgents/internal/di"
	"github.com/SyedaAimanAli/AIAgents/internal/infrastructure/env"
	"github.com/SyedaAimanAli/AIAgents/internal/infrastructure/retry"
	"github.com/SyedaAimanAli/AIAgents/internal/infrastructure/webapp"
)

// retryFromEnv reads the backoff knobs, falling back to the production
// schedule.
func retryFromEnv(envService *env.Service) retry.Config {
	defaults := retry.DefaultConfig()
	return retry.Config{
		MaxAttempts: envService.GetInt("RETRY_MAX_ATTEMPTS", defaults.MaxAttempts),
		BaseDelay:   envService.GetDuration("RETRY_BASE_DELAY", defaults.BaseDelay),
		Jitter:      envService.GetDuration("RETRY_JITTER", defaults.Jitter),
	}
}

func main() {
	envService := env.NewService()

	reportDir := envService.GetDefault("REPORT_DIR", "reports")
	container, err := di.NewContainer(di.Config{
		GeminiAPIKey: envService.Get("GEMINI_API_KEY"),
		GeminiModel:  envService.GetDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		ReportDir:    reportDir,
		LogLevel:     envService.GetDefault("LOG_LEVEL", "info"),
		Retry:        retryFromEnv(envService),
	})
	if err != nil {
		log.Fatalf("initialization failed: %v", err)
	}
	defer container.Close()

	server, err := webapp.New(webapp.Config{
		Addr:      envService.GetDefault("LISTEN_ADDR", ":8080"),
		UploadDir: envService.GetDefault("UPLOAD_DIR", "uploads"),
		ReportDir: reportDir,
		Pipelines: func(target string) input.PipelineRunner {
			return container.NewPipeline(target)
		},
		Logger: container.Logger,
	})
	if err != nil {
		log.Fatalf("server setup failed: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			container.Logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	container.Logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		container.Logger.Error("shutdown failed", "error", err)
	}
}
