package nl2sql

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCleanCandidateSQL(t *testing.T) {
	got := CleanCandidateSQL("```sql\nSELECT 1\n```")
	if got != "SELECT 1" {
		t.Fatalf("CleanCandidateSQL() = %q", got)
	}
}

func TestCleanCandidateSQLLeavesPlainTextAlone(t *testing.T) {
	got := CleanCandidateSQL("  SELECT name FROM customers  ")
	if got != "SELECT name FROM customers" {
		t.Fatalf("CleanCandidateSQL() = %q", got)
	}
}

func TestCleanCandidateSQLPreservesInterior(t *testing.T) {
	got := CleanCandidateSQL("```sql\nSELECT id,\n       name\nFROM customers\n```")
	if got != "SELECT id,\n       name\nFROM customers" {
		t.Fatalf("CleanCandidateSQL() = %q", got)
	}
}

func TestNewGeminiTranslatorRequiresCredentials(t *testing.T) {
	if _, err := NewGeminiTranslator(GeminiConfig{APIKey: "k"}); err == nil {
		t.Fatal("expected error for missing base URL")
	}
	if _, err := NewGeminiTranslator(GeminiConfig{BaseURL: "http://localhost"}); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func TestGeminiTranslateFillsPromptAndStripsFences(t *testing.T) {
	var gotPath string
	var gotPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var body struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		gotPrompt = body.Contents[0].Parts[0].Text
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": "```sql\nSELECT COUNT(*) FROM customers\n```"}}}},
			},
		})
	}))
	defer server.Close()

	translator, err := NewGeminiTranslator(GeminiConfig{BaseURL: server.URL, APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewGeminiTranslator() error = %v", err)
	}

	sql, err := translator.Translate(context.Background(), "How many customers are there?")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if sql != "SELECT COUNT(*) FROM customers" {
		t.Fatalf("Translate() = %q", sql)
	}
	if gotPath != "/v1beta/models/gemini-1.5-flash:generateContent" {
		t.Fatalf("request path = %q", gotPath)
	}
	if !strings.Contains(gotPrompt, "How many customers are there?") {
		t.Fatalf("prompt did not contain the question: %q", gotPrompt)
	}
	if strings.Contains(gotPrompt, "{query}") {
		t.Fatal("placeholder was not substituted")
	}
}

func TestGeminiTranslateEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))
	defer server.Close()

	translator, err := NewGeminiTranslator(GeminiConfig{BaseURL: server.URL, APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewGeminiTranslator() error = %v", err)
	}

	_, err = translator.Translate(context.Background(), "anything")
	if err == nil {
		t.Fatal("expected error for empty response")
	}
	if err.Error() != "No response from the language model." {
		t.Fatalf("error = %q", err.Error())
	}
}

func TestGeminiTranslateServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	translator, err := NewGeminiTranslator(GeminiConfig{BaseURL: server.URL, APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewGeminiTranslator() error = %v", err)
	}

	_, err = translator.Translate(context.Background(), "anything")
	if err == nil || !strings.Contains(err.Error(), "status=429") {
		t.Fatalf("error = %v", err)
	}
}
