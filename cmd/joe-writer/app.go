package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/joestump/joe-writer/internal/config"
	"github.com/joestump/joe-writer/internal/llm"
	"github.com/joestump/joe-writer/internal/logging"
	"github.com/joestump/joe-writer/internal/prompt"
	"github.com/joestump/joe-writer/internal/writer"
)

// app bundles what both serve and generate need.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	writer *writer.Writer
	// genErr is set when the generation service could not be initialized;
	// writer is nil in that case.
	genErr error
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger}
	gen, err := llm.New(ctx, cfg.LLM)
	if err != nil {
		a.genErr = err
		logger.Error("generation service unavailable", zap.String("provider", cfg.LLM.Provider), zap.Error(err))
		return a, nil
	}

	store := prompt.NewStore(os.DirFS(cfg.Prompts.Dir))
	a.writer = writer.New(gen, store, writer.Mode(cfg.Generation.Mode), logger)
	logger.Info("generation service ready",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model),
		zap.String("mode", cfg.Generation.Mode),
		zap.Bool("grounding", cfg.LLM.Grounding),
		zap.Bool("fresh_client", cfg.LLM.FreshClient),
		zap.String("prompts_dir", cfg.Prompts.Dir),
	)
	return a, nil
}
