package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sqlpilot/sqlpilot/internal/api"
	"github.com/sqlpilot/sqlpilot/internal/api/uistatic"
	"github.com/sqlpilot/sqlpilot/internal/config"
	"github.com/sqlpilot/sqlpilot/internal/nl2sql"
	"github.com/sqlpilot/sqlpilot/internal/observability"
	"github.com/sqlpilot/sqlpilot/internal/pipeline"
	"github.com/sqlpilot/sqlpilot/internal/sqlguard"
	sqlitestore "github.com/sqlpilot/sqlpilot/internal/store/sqlite"
)

func main() {
	cfg, err := config.LoadFromEnv("sqlpilot-api")
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg, os.Stdout)

	dataStore, err := sqlitestore.New(cfg.Database.Path)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}

	var translator nl2sql.Translator
	if cfg.AI.Enabled {
		prompt, err := nl2sql.LoadPromptTemplate(cfg.AI.PromptTemplatePath)
		if err != nil {
			logger.Error("failed to load prompt template", slog.Any("error", err))
			os.Exit(1)
		}
		translator, err = nl2sql.NewGeminiTranslator(nl2sql.GeminiConfig{
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
	}

	deps := api.Dependencies{
		Logger:           logger,
		Store:            dataStore,
		SchemaSampleRows: cfg.UI.SchemaSampleRows,
		TranslatorReady:  translator != nil,
		UI:               uistatic.Handler(),
	}
	if translator != nil {
		deps.Pipeline = &pipeline.Pipeline{
			Translator: translator,
			Validator:  sqlguard.New(cfg.Validator.Strict),
			Store:      dataStore,
			Logger:     logger,
		}
	}

	handler := api.NewHandler(cfg, deps)
	server := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting api server", slog.String("addr", cfg.HTTP.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down api server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
		_ = server.Close()
		os.Exit(1)
	}
}
