package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sqlpilot/sqlpilot/internal/config"
	"github.com/sqlpilot/sqlpilot/internal/pipeline"
	"github.com/sqlpilot/sqlpilot/internal/store"
)

type stubRunner struct {
	outcome pipeline.Outcome
	asked   string
}

func (s *stubRunner) Run(_ context.Context, question string) pipeline.Outcome {
	s.asked = question
	return s.outcome
}

type stubStore struct {
	schema    map[string][]string
	samples   map[string][]map[string]any
	schemaErr error
}

func (s *stubStore) Execute(_ context.Context, _ string) (store.Result, error) {
	return store.Result{}, errors.New("not used")
}

func (s *stubStore) Schema(_ context.Context) (map[string][]string, error) {
	return s.schema, s.schemaErr
}

func (s *stubStore) Sample(_ context.Context, _ int) (map[string][]map[string]any, error) {
	return s.samples, nil
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Load("sqlpilot-api", func(string) (string, bool) { return "", false })
	if err != nil {
		t.Fatalf("config load failed: %v", err)
	}
	return cfg
}

func TestHealthEndpoint(t *testing.T) {
	h := NewHandler(testConfig(t), Dependencies{TranslatorReady: true})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("json decode failed: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("status field = %v", body["status"])
	}
	if body["translator_ready"] != true {
		t.Fatalf("translator_ready = %v", body["translator_ready"])
	}
}

func TestExamplesEndpoint(t *testing.T) {
	h := NewHandler(testConfig(t), Dependencies{})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/examples", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var body struct {
		Examples []struct {
			Query       string `json:"query"`
			Description string `json:"description"`
		} `json:"examples"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("json decode failed: %v", err)
	}
	if len(body.Examples) != 6 {
		t.Fatalf("examples = %d", len(body.Examples))
	}
	if body.Examples[0].Query != "How many customers signed up in July?" {
		t.Fatalf("first example = %q", body.Examples[0].Query)
	}
}

func TestDatabaseInfoEndpoint(t *testing.T) {
	h := NewHandler(testConfig(t), Dependencies{
		Store: &stubStore{
			schema: map[string][]string{"customers": {"id", "name", "signup_date"}},
			samples: map[string][]map[string]any{
				"customers": {{"id": int64(1), "name": "John Smith", "signup_date": "2025-01-15"}},
			},
		},
	})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/database-info", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "signup_date") {
		t.Fatalf("body = %s", rr.Body.String())
	}
}

func TestDatabaseInfoSchemaFailure(t *testing.T) {
	h := NewHandler(testConfig(t), Dependencies{
		Store: &stubStore{schemaErr: errors.New("file is not a database")},
	})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/database-info", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestDatabaseInfoNotConfigured(t *testing.T) {
	h := NewHandler(testConfig(t), Dependencies{})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/database-info", nil))

	if rr.Code != http.StatusNotImplemented {
		t.Fatalf("status = %d", rr.Code)
	}
}
