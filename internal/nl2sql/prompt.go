package nl2sql

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

const questionPlaceholder = "{query}"

// DefaultPromptText describes the provisioned two-table schema and the
// formatting rules the model is expected to follow.
const DefaultPromptText = `You are a helpful SQL assistant. Convert the user's natural language query into a valid SQL query based on this schema:

Table: customers(id, name, signup_date)
Table: orders(id, customer_id, amount, order_date)

Important guidelines:
1. Only generate SQL queries, no explanations
2. Use proper SQL syntax
3. Handle date comparisons appropriately
4. Use JOIN when querying across tables
5. Return only the SQL query, no markdown formatting

User query: {query}`

// PromptTemplate is an immutable prompt with a single question placeholder.
// It is constructed once and handed to the translator; there is no ambient
// template state.
type PromptTemplate struct {
	text string
}

func NewPromptTemplate(text string) (PromptTemplate, error) {
	if strings.Count(text, questionPlaceholder) != 1 {
		return PromptTemplate{}, fmt.Errorf("prompt template must contain exactly one %s placeholder", questionPlaceholder)
	}
	return PromptTemplate{text: text}, nil
}

func DefaultPromptTemplate() PromptTemplate {
	return PromptTemplate{text: DefaultPromptText}
}

// LoadPromptTemplate reads the template from path. An empty path or a
// missing file falls back to the built-in default.
func LoadPromptTemplate(path string) (PromptTemplate, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultPromptTemplate(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultPromptTemplate(), nil
		}
		return PromptTemplate{}, fmt.Errorf("read prompt template %q: %w", path, err)
	}
	return NewPromptTemplate(string(raw))
}

func (t PromptTemplate) Fill(question string) string {
	return strings.Replace(t.text, questionPlaceholder, question, 1)
}
