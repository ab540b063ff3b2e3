package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/SyedaAimanAli/AIAgents/internal/di"
	"github.com/SyedaAimanAli/AIAgents/internal/domain/entity"
	"github.com/SyedaAimanAli/AIAgents/internal/infrastructure/dataset"
	"github.com/SyedaAimanAli/AIAgents/internal/infrastructure/env"
	"github.com/SyedaAimanAli/AIAgents/internal/infrastructure/retry"
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
	csvPath := flag.String("csv", "", "path to the CSV file to analyze")
	target := flag.String("target", "", "target column for the modeling agent")
	sample := flag.Bool("sample", false, "generate the demo dataset and analyze it")
	flag.Parse()

	envService := env.NewService()

	if *sample {
		path := "sample_data.csv"
		if err := dataset.Save(dataset.GenerateSample(), path); err != nil {
			log.Fatalf("could not write sample dataset: %v", err)
		}
		fmt.Printf("Sample dataset created at %q\n", path)
		*csvPath = path
		if *target == "" {
			*target = "profit"
		}
	}
	if *csvPath == "" {
		fmt.Fprintln(os.Stderr, "usage: agent -csv data.csv [-target column] | agent -sample")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	container, err := di.NewContainer(di.Config{
		GeminiAPIKey: envService.Get("GEMINI_API_KEY"),
		GeminiModel:  envService.GetDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		ReportDir:    envService.GetDefault("REPORT_DIR", "reports"),
		LogLevel:     envService.GetDefault("LOG_LEVEL", "info"),
		Retry:        retryFromEnv(envService),
	})
	if err != nil {
		log.Fatalf("initialization failed: %v", err)
	}
	defer container.Close()

	ds, err := dataset.Load(*csvPath)
	if err != nil {
		log.Fatalf("could not load dataset: %v", err)
	}
	rows, cols := ds.Shape()

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("Multi-Agent Pipeline Starting")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Loaded dataset: %d rows, %d columns\n", rows, cols)

	start := time.Now()
	results := container.NewPipeline(*target).Run(ctx, ds)

	for _, r := range results.All() {
		status := "SUCCESS"
		if !r.OK() {
			status = "ERROR"
		}
		fmt.Printf("%-25s %-8s (%.2fs)\n", r.AgentID, status, r.Duration.Seconds())
	}

	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Pipeline complete - total time: %.2fs\n", time.Since(start).Seconds())

	if rep, ok := results.Get("report"); ok && rep.OK() {
		if artifact, ok := rep.Payload.(*entity.ReportArtifact); ok {
			fmt.Println("PDF report at:", artifact.PDFPath)
		}
	}
}
