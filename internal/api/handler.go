package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sqlpilot/sqlpilot/internal/config"
	"github.com/sqlpilot/sqlpilot/internal/examples"
	"github.com/sqlpilot/sqlpilot/internal/observability"
	"github.com/sqlpilot/sqlpilot/internal/pipeline"
	"github.com/sqlpilot/sqlpilot/internal/store"
)

// QuestionRunner is the pipeline surface the API consumes.
type QuestionRunner interface {
	Run(ctx context.Context, question string) pipeline.Outcome
}

type Dependencies struct {
	Logger           *slog.Logger
	Pipeline         QuestionRunner
	Store            store.Store
	SchemaSampleRows int
	TranslatorReady  bool
	UI               http.Handler
}

func NewHandler(cfg config.Config, deps Dependencies) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":           "ok",
			"service":          cfg.Service.Name,
			"translator_ready": deps.TranslatorReady,
		})
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /api/query", func(w http.ResponseWriter, r *http.Request) {
		handleQuery(deps, w, r)
	})
	mux.HandleFunc("GET /api/database-info", func(w http.ResponseWriter, r *http.Request) {
		handleDatabaseInfo(deps, w, r)
	})
	mux.HandleFunc("GET /api/examples", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"examples": examples.List()})
	})
	if deps.UI != nil {
		mux.Handle("GET /{path...}", deps.UI)
	}

	middlewares := []func(http.Handler) http.Handler{
		observability.TraceMiddleware,
		observability.MetricsMiddleware,
	}
	if deps.Logger != nil {
		middlewares = append(middlewares, observability.LoggingMiddleware(deps.Logger))
	}
	return chain(mux, middlewares...)
}

func chain(base http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	wrapped := base
	for i := len(middlewares) - 1; i >= 0; i-- {
		wrapped = middlewares[i](wrapped)
	}
	return wrapped
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, code, message string, extra map[string]any) {
	payload := map[string]any{
		"error_code": code,
		"message":    message,
		"trace_id":   observability.TraceIDFromContext(ctx),
	}
	for key, value := range extra {
		payload[key] = value
	}
	writeJSON(w, status, payload)
}
