package store

import "context"

// Result holds a fully materialized query result. An empty Rows slice is a
// valid result, distinct from an execution error.
type Result struct {
	Columns []string
	Rows    [][]any
}

// Records converts the result into column-keyed row maps, the shape the
// JSON API serves.
func (r Result) Records() []map[string]any {
	records := make([]map[string]any, 0, len(r.Rows))
	for _, row := range r.Rows {
		record := make(map[string]any, len(r.Columns))
		for i, column := range r.Columns {
			if i < len(row) {
				record[column] = row[i]
			}
		}
		records = append(records, record)
	}
	return records
}

// Store is a read-only SQL-speaking service over the provisioned dataset.
type Store interface {
	Execute(ctx context.Context, sql string) (Result, error)
	Schema(ctx context.Context) (map[string][]string, error)
	Sample(ctx context.Context, limit int) (map[string][]map[string]any, error)
}
