package nl2sql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Wording is part of the presentation contract and surfaced verbatim.
var errEmptyResponse = errors.New("No response from the language model.")

type GeminiConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration
	Prompt      PromptTemplate
}

// GeminiTranslator calls the Gemini generateContent endpoint with a filled
// prompt template and extracts a single SQL statement from the response.
type GeminiTranslator struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	prompt      PromptTemplate
	client      *http.Client
}

func NewGeminiTranslator(cfg GeminiConfig) (*GeminiTranslator, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gemini-1.5-flash"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	prompt := cfg.Prompt
	if prompt.text == "" {
		prompt = DefaultPromptTemplate()
	}
	return &GeminiTranslator{
		baseURL:     strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:      strings.TrimSpace(cfg.APIKey),
		model:       model,
		temperature: cfg.Temperature,
		prompt:      prompt,
		client:      &http.Client{Timeout: timeout},
	}, nil
}

func (t *GeminiTranslator) Translate(ctx context.Context, question string) (string, error) {
	payload := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": t.prompt.Fill(question)}}},
		},
		"generationConfig": map[string]any{
			"temperature": t.temperature,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal generate payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", t.baseURL, t.model, url.QueryEscape(t.apiKey))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request content generation: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	rawRespBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read generate response body: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("content generation failed status=%d body=%s", resp.StatusCode, string(rawRespBody))
	}

	var parsed struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(rawRespBody, &parsed); err != nil {
		return "", fmt.Errorf("decode generate response: %w", err)
	}

	var text strings.Builder
	if len(parsed.Candidates) > 0 {
		for _, part := range parsed.Candidates[0].Content.Parts {
			text.WriteString(part.Text)
		}
	}
	sql := CleanCandidateSQL(text.String())
	if sql == "" {
		return "", errEmptyResponse
	}
	return sql, nil
}

// CleanCandidateSQL strips a leading ```sql fence marker and a trailing ```
// fence marker from raw model output. Only that exact prefix/suffix pair is
// handled; nested or repeated fences pass through untouched.
func CleanCandidateSQL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "```sql")
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}
