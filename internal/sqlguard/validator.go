// Package sqlguard gates candidate SQL behind a read-only check.
//
// The default mode is a keyword heuristic, not a parser: a statement that
// contains both SELECT and a mutating keyword passes. That behavior is part
// of the compatibility contract and is covered by tests; strict mode closes
// the hole for deployments that want it.
package sqlguard

import (
	"fmt"
	"strings"
)

var mutatingKeywords = []string{"DROP", "DELETE", "UPDATE", "INSERT", "ALTER", "CREATE"}

type Validator struct {
	strict bool
}

func New(strict bool) *Validator {
	return &Validator{strict: strict}
}

// Validate reports whether candidate is an acceptable read-only query.
// On rejection the returned reason is suitable for display to the end user.
func (v *Validator) Validate(candidate string) (bool, string) {
	normalized := strings.ToUpper(strings.TrimSpace(candidate))

	if v.strict {
		return validateStrict(normalized)
	}

	for _, keyword := range mutatingKeywords {
		if strings.Contains(normalized, keyword) && !strings.Contains(normalized, "SELECT") {
			return false, fmt.Sprintf("query contains potentially dangerous keyword: %s", keyword)
		}
	}

	if !strings.HasPrefix(normalized, "SELECT") {
		return false, "only read-only queries are permitted"
	}

	return true, ""
}

func validateStrict(normalized string) (bool, string) {
	if !strings.HasPrefix(normalized, "SELECT") {
		return false, "only read-only queries are permitted"
	}
	for _, keyword := range mutatingKeywords {
		if strings.Contains(normalized, keyword) {
			return false, fmt.Sprintf("query contains potentially dangerous keyword: %s", keyword)
		}
	}
	trimmed := strings.TrimSuffix(normalized, ";")
	if strings.Contains(trimmed, ";") {
		return false, "multiple statements are not permitted"
	}
	return true, ""
}
