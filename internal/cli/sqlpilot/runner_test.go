package sqlpilot

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sqlpilot/sqlpilot/internal/pipeline"
	"github.com/sqlpilot/sqlpilot/internal/store"
)

type scriptedRunner struct {
	outcome pipeline.Outcome
	asked   []string
}

func (s *scriptedRunner) Run(_ context.Context, question string) pipeline.Outcome {
	s.asked = append(s.asked, question)
	return s.outcome
}

type fixedStore struct{}

func (fixedStore) Execute(_ context.Context, _ string) (store.Result, error) {
	return store.Result{}, errors.New("not used")
}

func (fixedStore) Schema(_ context.Context) (map[string][]string, error) {
	return map[string][]string{
		"customers": {"id", "name", "signup_date"},
		"orders":    {"id", "customer_id", "amount", "order_date"},
	}, nil
}

func (fixedStore) Sample(_ context.Context, _ int) (map[string][]map[string]any, error) {
	return map[string][]map[string]any{
		"customers": {{"id": int64(1), "name": "John Smith", "signup_date": "2025-01-15"}},
		"orders":    {{"id": int64(1), "customer_id": int64(1), "amount": 150.0, "order_date": "2025-01-20"}},
	}, nil
}

func TestRunAnswersQuestionAndQuits(t *testing.T) {
	runner := &scriptedRunner{outcome: pipeline.Outcome{
		SQL: "SELECT COUNT(*) FROM customers",
		Result: store.Result{
			Columns: []string{"COUNT(*)"},
			Rows:    [][]any{{int64(10)}},
		},
		Explanation: "This query counts the total number of records.",
	}}

	var stdout bytes.Buffer
	code := Run(context.Background(), Options{
		Pipeline: runner,
		Store:    fixedStore{},
		Stdin:    strings.NewReader("How many customers are there?\nquit\n"),
		Stdout:   &stdout,
	})

	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if len(runner.asked) != 1 || runner.asked[0] != "How many customers are there?" {
		t.Fatalf("asked = %v", runner.asked)
	}
	output := stdout.String()
	for _, want := range []string{
		"Generated SQL: SELECT COUNT(*) FROM customers",
		"Query Results (1 rows):",
		"Explanation: This query counts the total number of records.",
		"Goodbye!",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q:\n%s", want, output)
		}
	}
}

func TestRunShowsSchemaOnStartup(t *testing.T) {
	var stdout bytes.Buffer
	Run(context.Background(), Options{
		Pipeline: &scriptedRunner{},
		Store:    fixedStore{},
		Stdin:    strings.NewReader("quit\n"),
		Stdout:   &stdout,
	})

	output := stdout.String()
	if !strings.Contains(output, "customers(id, name, signup_date)") {
		t.Fatalf("output missing schema:\n%s", output)
	}
	if !strings.Contains(output, "orders(id, customer_id, amount, order_date)") {
		t.Fatalf("output missing orders schema:\n%s", output)
	}
}

func TestRunHelpListsExamples(t *testing.T) {
	runner := &scriptedRunner{}
	var stdout bytes.Buffer
	Run(context.Background(), Options{
		Pipeline: runner,
		Store:    fixedStore{},
		Stdin:    strings.NewReader("help\nquit\n"),
		Stdout:   &stdout,
	})

	if len(runner.asked) != 0 {
		t.Fatalf("help should not reach the pipeline: %v", runner.asked)
	}
	if !strings.Contains(stdout.String(), "How many customers signed up in July?") {
		t.Fatalf("output missing examples:\n%s", stdout.String())
	}
}

func TestRunSurfacesPipelineFailure(t *testing.T) {
	runner := &scriptedRunner{outcome: pipeline.Outcome{
		SQL:         "DROP TABLE customers",
		Explanation: "This query retrieves data.",
		FailedStage: pipeline.StageValidate,
		Message:     "query contains potentially dangerous keyword: DROP",
	}}
	var stdout bytes.Buffer
	Run(context.Background(), Options{
		Pipeline: runner,
		Store:    fixedStore{},
		Stdin:    strings.NewReader("drop it\nquit\n"),
		Stdout:   &stdout,
	})

	output := stdout.String()
	if !strings.Contains(output, "Error: query contains potentially dangerous keyword: DROP") {
		t.Fatalf("output missing error:\n%s", output)
	}
	if !strings.Contains(output, "Explanation: This query retrieves data.") {
		t.Fatalf("output missing explanation:\n%s", output)
	}
}

func TestRunEmptyResultPrintsNoData(t *testing.T) {
	runner := &scriptedRunner{outcome: pipeline.Outcome{
		SQL:         "SELECT * FROM orders WHERE amount > 1000000",
		Result:      store.Result{Columns: []string{"id"}},
		Explanation: "This query retrieves data that match specific conditions.",
	}}
	var stdout bytes.Buffer
	Run(context.Background(), Options{
		Pipeline: runner,
		Store:    fixedStore{},
		Stdin:    strings.NewReader("any huge orders?\nquit\n"),
		Stdout:   &stdout,
	})

	if !strings.Contains(stdout.String(), "No data found.") {
		t.Fatalf("output missing empty-result notice:\n%s", stdout.String())
	}
}

func TestRunRequiresDependencies(t *testing.T) {
	var stderr bytes.Buffer
	code := Run(context.Background(), Options{Stderr: &stderr})
	if code != 2 {
		t.Fatalf("exit code = %d", code)
	}
}
