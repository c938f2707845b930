package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/dentalops/vob-extractor/internal/common"
	"github.com/dentalops/vob-extractor/internal/export"
	"github.com/dentalops/vob-extractor/internal/extract"
	"github.com/dentalops/vob-extractor/internal/llm/gemini"
	"github.com/dentalops/vob-extractor/internal/match"
	"github.com/dentalops/vob-extractor/internal/pipeline"
	"github.com/dentalops/vob-extractor/internal/repository"
	"github.com/dentalops/vob-extractor/internal/server"
)

func main() {
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := repository.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Error("creating DB pool", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := repository.HealthCheck(ctx, pool, cfg.Database.HealthTimeout); err != nil {
		log.Error("DB health failed", "err", err)
		os.Exit(1)
	}
	log.Info("DB health OK")

	extractor := extract.NewExtractor(extract.Config{
		LineTolerance: cfg.Extract.LineTolerance,
		MaxPages:      cfg.Extract.MaxPages,
	}, log)
	matcher := match.NewMatcher(log)
	jobs := repository.NewExtractJobRepository(pool, log)

	opts := []pipeline.Option{pipeline.WithJobRepository(jobs)}
	if cfg.LLM.AIEnabled() {
		ai := gemini.NewClient(gemini.Config{
			APIKey:      cfg.LLM.APIKey,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			TopK:        cfg.LLM.TopK,
			Timeout:     cfg.LLM.Timeout,
			MaxAttempts: cfg.LLM.MaxAttempts,
			RetryDelay:  cfg.LLM.RetryDelay,
		}, log)
		opts = append(opts, pipeline.WithAI(ai, cfg.LLM.MinTextLen))
		log.Info("AI extraction enabled", "model", cfg.LLM.Model)
	} else {
		log.Info("AI extraction disabled, heuristic matching only")
	}

	processor := pipeline.NewProcessor(extractor, matcher, log, opts...)
	forms := repository.NewFormRepository(pool, log)
	exporter := export.NewService(forms, log)

	srv := server.New(processor, forms, jobs, exporter, pool, cfg.Server, log)
	if err := srv.Run(ctx); err != nil {
		log.Error("http serve", "err", err)
		os.Exit(1)
	}
	fmt.Println("stopped.")
}
