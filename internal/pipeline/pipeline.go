// Package pipeline sequences translation, validation, execution, and
// explanation for a single natural-language question.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/sqlpilot/sqlpilot/internal/explain"
	"github.com/sqlpilot/sqlpilot/internal/nl2sql"
	"github.com/sqlpilot/sqlpilot/internal/observability"
	"github.com/sqlpilot/sqlpilot/internal/sqlguard"
	"github.com/sqlpilot/sqlpilot/internal/store"
)

type Stage string

const (
	StageTranslate Stage = "translate"
	StageValidate  Stage = "validate"
	StageExecute   Stage = "execute"
)

// Outcome is the result of one pipeline run. FailedStage is empty on
// success. Explanation is populated whenever translation produced SQL, even
// if a later stage failed; callers display it alongside the error.
type Outcome struct {
	SQL         string
	Result      store.Result
	Explanation string
	FailedStage Stage
	Message     string
}

func (o Outcome) OK() bool {
	return o.FailedStage == ""
}

// Pipeline is stateless and reentrant; one value may serve concurrent
// callers.
type Pipeline struct {
	Translator nl2sql.Translator
	Validator  *sqlguard.Validator
	Store      store.Store
	Logger     *slog.Logger
}

func (p *Pipeline) Run(ctx context.Context, question string) Outcome {
	start := time.Now()
	sql, err := p.Translator.Translate(ctx, question)
	observability.ObservePipelineStage(string(StageTranslate), time.Since(start))
	if err != nil {
		observability.ObservePipelineRun(string(StageTranslate))
		p.log(ctx, "translation failed", slog.Any("error", err))
		return Outcome{FailedStage: StageTranslate, Message: err.Error()}
	}

	if ok, reason := p.Validator.Validate(sql); !ok {
		observability.IncrementValidationRejection()
		observability.ObservePipelineRun(string(StageValidate))
		p.log(ctx, "candidate rejected", slog.String("sql", sql), slog.String("reason", reason))
		return Outcome{
			SQL:         sql,
			Explanation: explain.Describe(sql),
			FailedStage: StageValidate,
			Message:     reason,
		}
	}

	execStart := time.Now()
	result, err := p.Store.Execute(ctx, sql)
	observability.ObservePipelineStage(string(StageExecute), time.Since(execStart))
	if err != nil {
		observability.ObservePipelineRun(string(StageExecute))
		p.log(ctx, "execution failed", slog.String("sql", sql), slog.Any("error", err))
		return Outcome{
			SQL:         sql,
			Explanation: explain.Describe(sql),
			FailedStage: StageExecute,
			Message:     err.Error(),
		}
	}

	observability.ObservePipelineRun("success")
	return Outcome{
		SQL:         sql,
		Result:      result,
		Explanation: explain.Describe(sql),
	}
}

func (p *Pipeline) log(ctx context.Context, msg string, attrs ...any) {
	if p.Logger != nil {
		p.Logger.DebugContext(ctx, msg, attrs...)
	}
}
