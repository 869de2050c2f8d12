package nl2sql

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultPromptTemplateFill(t *testing.T) {
	filled := DefaultPromptTemplate().Fill("Show me all orders above $1000")
	if !strings.Contains(filled, "User query: Show me all orders above $1000") {
		t.Fatalf("Fill() = %q", filled)
	}
	if strings.Contains(filled, "{query}") {
		t.Fatal("placeholder left in filled prompt")
	}
}

func TestNewPromptTemplateRequiresOnePlaceholder(t *testing.T) {
	if _, err := NewPromptTemplate("no placeholder here"); err == nil {
		t.Fatal("expected error for missing placeholder")
	}
	if _, err := NewPromptTemplate("{query} and {query}"); err == nil {
		t.Fatal("expected error for duplicate placeholder")
	}
}

func TestLoadPromptTemplateFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.txt")
	if err := os.WriteFile(path, []byte("Translate this: {query}"), 0o600); err != nil {
		t.Fatalf("write template: %v", err)
	}

	tmpl, err := LoadPromptTemplate(path)
	if err != nil {
		t.Fatalf("LoadPromptTemplate() error = %v", err)
	}
	if got := tmpl.Fill("hi"); got != "Translate this: hi" {
		t.Fatalf("Fill() = %q", got)
	}
}

func TestLoadPromptTemplateFallsBackWhenAbsent(t *testing.T) {
	tmpl, err := LoadPromptTemplate(filepath.Join(t.TempDir(), "missing.txt"))
	if err != nil {
		t.Fatalf("LoadPromptTemplate() error = %v", err)
	}
	if tmpl.text != DefaultPromptText {
		t.Fatal("expected built-in default template")
	}
}

func TestLoadPromptTemplateEmptyPathUsesDefault(t *testing.T) {
	tmpl, err := LoadPromptTemplate("")
	if err != nil {
		t.Fatalf("LoadPromptTemplate() error = %v", err)
	}
	if tmpl.text != DefaultPromptText {
		t.Fatal("expected built-in default template")
	}
}
