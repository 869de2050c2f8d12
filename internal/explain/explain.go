// Package explain produces a one-sentence description of a SQL query from
// keyword markers. It is a display heuristic, not semantic analysis.
package explain

import "strings"

// Describe returns a human-readable sentence for the given SQL text. It is
// pure and never fails; unrecognized queries fall back to "retrieves data".
func Describe(sql string) string {
	upper := strings.ToUpper(sql)

	var b strings.Builder
	b.WriteString("This query ")

	switch {
	case strings.Contains(upper, "COUNT(*)"):
		b.WriteString("counts the total number of records")
	case strings.Contains(upper, "AVG("):
		b.WriteString("calculates the average")
	case strings.Contains(upper, "SUM("):
		b.WriteString("calculates the sum")
	case strings.Contains(upper, "MAX("):
		b.WriteString("finds the maximum value")
	case strings.Contains(upper, "MIN("):
		b.WriteString("finds the minimum value")
	default:
		b.WriteString("retrieves data")
	}

	if strings.Contains(upper, "WHERE") {
		b.WriteString(" that match specific conditions")
	}
	if strings.Contains(upper, "ORDER BY") {
		b.WriteString(" and sorts the results")
	}
	if strings.Contains(upper, "GROUP BY") {
		b.WriteString(" and groups the results")
	}

	b.WriteString(".")
	return b.String()
}
