package nl2sql

import "context"

// Translator turns a natural-language question into a single candidate SQL
// statement. The returned SQL has not been validated for safety.
type Translator interface {
	Translate(ctx context.Context, question string) (string, error)
}
