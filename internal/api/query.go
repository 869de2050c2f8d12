package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sqlpilot/sqlpilot/internal/pipeline"
)

type queryRequest struct {
	Question string `json:"question"`
}

func handleQuery(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Pipeline == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "QUERY_NOT_CONFIGURED", "query pipeline is not configured", nil)
		return
	}

	var req queryRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "INVALID_JSON", "invalid query request body", map[string]any{"details": err.Error()})
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(r.Context(), w, http.StatusBadRequest, "QUESTION_REQUIRED", "question is required", nil)
		return
	}

	outcome := deps.Pipeline.Run(r.Context(), strings.TrimSpace(req.Question))
	if !outcome.OK() {
		status := http.StatusBadRequest
		code := "QUERY_EXECUTION_FAILED"
		switch outcome.FailedStage {
		case pipeline.StageTranslate:
			status = http.StatusBadGateway
			code = "TRANSLATE_FAILED"
		case pipeline.StageValidate:
			code = "SQL_REJECTED"
		}
		extra := map[string]any{"stage": string(outcome.FailedStage)}
		if outcome.SQL != "" {
			extra["sql"] = outcome.SQL
			extra["explanation"] = outcome.Explanation
		}
		writeError(r.Context(), w, status, code, outcome.Message, extra)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"sql":         outcome.SQL,
		"data":        outcome.Result.Records(),
		"explanation": outcome.Explanation,
		"row_count":   len(outcome.Result.Rows),
	})
}
