// Package sqlite runs read-only queries against the provisioned SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/sqlpilot/sqlpilot/internal/store"
)

const driverName = "sqlite"

// Store executes SQL against a single database file. Every operation opens
// and closes its own connection, so the zero value of concurrent use needs
// no locking and resource lifetime is bounded to one call.
type Store struct {
	path string
}

// New returns a Store for the database at path. The file must already
// exist; provisioning is the seeder's job.
func New(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("database path is required")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("database not found at %q, run sqlpilot-seed first: %w", path, err)
	}
	return &Store{path: path}, nil
}

func (s *Store) Execute(ctx context.Context, sqlText string) (store.Result, error) {
	if strings.TrimSpace(sqlText) == "" {
		return store.Result{}, fmt.Errorf("sql is required")
	}

	db, err := sql.Open(driverName, s.path)
	if err != nil {
		return store.Result{}, fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	return queryAll(ctx, db, sqlText)
}

func (s *Store) Schema(ctx context.Context) (map[string][]string, error) {
	db, err := sql.Open(driverName, s.path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	tables, err := listTables(ctx, db)
	if err != nil {
		return nil, err
	}

	schema := make(map[string][]string, len(tables))
	for _, table := range tables {
		columns, err := tableColumns(ctx, db, table)
		if err != nil {
			return nil, err
		}
		schema[table] = columns
	}
	return schema, nil
}

// Sample fetches up to limit rows per table. A failure on one table leaves
// that table mapped to an empty row set and does not abort the others.
func (s *Store) Sample(ctx context.Context, limit int) (map[string][]map[string]any, error) {
	if limit <= 0 {
		limit = 5
	}

	schema, err := s.Schema(ctx)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, s.path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	tables := make([]string, 0, len(schema))
	for table := range schema {
		tables = append(tables, table)
	}
	return sampleTables(ctx, db, tables, limit), nil
}

func sampleTables(ctx context.Context, db *sql.DB, tables []string, limit int) map[string][]map[string]any {
	samples := make(map[string][]map[string]any, len(tables))
	for _, table := range tables {
		result, err := queryAll(ctx, db, "SELECT * FROM "+quoteIdent(table)+" LIMIT "+strconv.Itoa(limit))
		if err != nil {
			samples[table] = []map[string]any{}
			continue
		}
		samples[table] = result.Records()
	}
	return samples
}

func queryAll(ctx context.Context, db *sql.DB, sqlText string) (store.Result, error) {
	rows, err := db.QueryContext(ctx, sqlText)
	if err != nil {
		return store.Result{}, fmt.Errorf("execute query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return store.Result{}, fmt.Errorf("query columns: %w", err)
	}

	resultRows := make([][]any, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		scanTargets := make([]any, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return store.Result{}, fmt.Errorf("scan row: %w", err)
		}
		resultRows = append(resultRows, normalizeValues(values))
	}
	if err := rows.Err(); err != nil {
		return store.Result{}, fmt.Errorf("iterate rows: %w", err)
	}

	return store.Result{Columns: columns, Rows: resultRows}, nil
}

func listTables(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, "SELECT name FROM sqlite_master WHERE type='table'")
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tables: %w", err)
	}
	return tables, nil
}

func tableColumns(ctx context.Context, db *sql.DB, table string) ([]string, error) {
	rows, err := db.QueryContext(ctx, "PRAGMA table_info("+quoteIdent(table)+")")
	if err != nil {
		return nil, fmt.Errorf("table info for %q: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	var columns []string
	for rows.Next() {
		var (
			cid        int
			name       string
			columnType string
			notNull    int
			defaultVal sql.NullString
			primaryKey int
		)
		if err := rows.Scan(&cid, &name, &columnType, &notNull, &defaultVal, &primaryKey); err != nil {
			return nil, fmt.Errorf("scan column info for %q: %w", table, err)
		}
		columns = append(columns, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate columns for %q: %w", table, err)
	}
	return columns, nil
}

func normalizeValues(values []any) []any {
	normalized := make([]any, len(values))
	for i, value := range values {
		switch typed := value.(type) {
		case []byte:
			normalized[i] = string(typed)
		default:
			normalized[i] = typed
		}
	}
	return normalized
}

func quoteIdent(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}
