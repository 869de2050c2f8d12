package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/sqlpilot/sqlpilot/internal/cli/sqlpilot"
	"github.com/sqlpilot/sqlpilot/internal/config"
	"github.com/sqlpilot/sqlpilot/internal/nl2sql"
	"github.com/sqlpilot/sqlpilot/internal/observability"
	"github.com/sqlpilot/sqlpilot/internal/pipeline"
	"github.com/sqlpilot/sqlpilot/internal/sqlguard"
	sqlitestore "github.com/sqlpilot/sqlpilot/internal/store/sqlite"
)

func main() {
	cfg, err := config.LoadFromEnv("sqlpilot")
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg, os.Stderr)

	dataStore, err := sqlitestore.New(cfg.Database.Path)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}

	prompt, err := nl2sql.LoadPromptTemplate(cfg.AI.PromptTemplatePath)
	if err != nil {
		logger.Error("failed to load prompt template", slog.Any("error", err))
		os.Exit(1)
	}
	translator, err := nl2sql.NewGeminiTranslator(nl2sql.GeminiConfig{
		BaseURL:     cfg.AI.BaseURL,
		APIKey:      cfg.AI.APIKey,
		Model:       cfg.AI.Model,
		Temperature: cfg.AI.Temperature,
		Timeout:     cfg.AI.Timeout,
		Prompt:      prompt,
	})
	if err != nil {
		logger.Error("failed to initialize translator", slog.Any("error", err))
		os.Exit(1)
	}

	code := sqlpilot.Run(context.Background(), sqlpilot.Options{
		Pipeline: &pipeline.Pipeline{
			Translator: translator,
			Validator:  sqlguard.New(cfg.Validator.Strict),
			Store:      dataStore,
			Logger:     logger,
		},
		Store:      dataStore,
		SampleRows: 3,
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	})
	os.Exit(code)
}
