package api

import "net/http"

func handleDatabaseInfo(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Store == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "SCHEMA_NOT_CONFIGURED", "database dependency is not configured", nil)
		return
	}

	schema, err := deps.Store.Schema(r.Context())
	if err != nil {
		writeError(r.Context(), w, http.StatusInternalServerError, "SCHEMA_FETCH_FAILED", "failed to load database schema", map[string]any{"details": err.Error()})
		return
	}

	samples, err := deps.Store.Sample(r.Context(), schemaSampleRows(deps))
	if err != nil {
		writeError(r.Context(), w, http.StatusInternalServerError, "SAMPLE_FETCH_FAILED", "failed to load sample data", map[string]any{"details": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"schema":      schema,
		"sample_data": samples,
	})
}

func schemaSampleRows(deps Dependencies) int {
	if deps.SchemaSampleRows > 0 {
		return deps.SchemaSampleRows
	}
	return 5
}
