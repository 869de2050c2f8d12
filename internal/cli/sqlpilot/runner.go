// Package sqlpilot implements the interactive question/answer loop.
package sqlpilot

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sqlpilot/sqlpilot/internal/examples"
	"github.com/sqlpilot/sqlpilot/internal/pipeline"
	"github.com/sqlpilot/sqlpilot/internal/store"
)

type QuestionRunner interface {
	Run(ctx context.Context, question string) pipeline.Outcome
}

type Options struct {
	Pipeline   QuestionRunner
	Store      store.Store
	SampleRows int
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
}

// Run drives the interactive loop until quit or EOF and returns an exit
// code.
func Run(ctx context.Context, opts Options) int {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = io.Discard
	}
	if opts.Pipeline == nil || opts.Store == nil || opts.Stdin == nil {
		_, _ = fmt.Fprintln(stderr, "pipeline, store, and stdin are required")
		return 2
	}

	_, _ = fmt.Fprintln(stdout, "sqlpilot - ask the database a question in plain language")
	_, _ = fmt.Fprintln(stdout, "Type 'help' for examples, 'schema' for database info, or 'quit' to exit.")
	showDatabaseInfo(ctx, opts, stdout)

	scanner := bufio.NewScanner(opts.Stdin)
	for {
		_, _ = fmt.Fprint(stdout, "\nYour question: ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(question) {
		case "quit", "exit", "q":
			_, _ = fmt.Fprintln(stdout, "Goodbye!")
			return 0
		case "help":
			showExamples(stdout)
			continue
		case "schema":
			showDatabaseInfo(ctx, opts, stdout)
			continue
		case "":
			continue
		}

		processQuestion(ctx, opts.Pipeline, stdout, question)
	}
	if err := scanner.Err(); err != nil {
		_, _ = fmt.Fprintf(stderr, "read input: %v\n", err)
		return 1
	}
	return 0
}

func processQuestion(ctx context.Context, runner QuestionRunner, w io.Writer, question string) {
	_, _ = fmt.Fprintf(w, "\nProcessing: %s\n", question)

	outcome := runner.Run(ctx, question)
	if outcome.SQL != "" {
		_, _ = fmt.Fprintf(w, "Generated SQL: %s\n", outcome.SQL)
	}
	if !outcome.OK() {
		_, _ = fmt.Fprintf(w, "Error: %s\n", outcome.Message)
		if outcome.Explanation != "" {
			_, _ = fmt.Fprintf(w, "Explanation: %s\n", outcome.Explanation)
		}
		return
	}

	renderResult(w, outcome.Result)
	_, _ = fmt.Fprintf(w, "Explanation: %s\n", outcome.Explanation)
}

func renderResult(w io.Writer, result store.Result) {
	if len(result.Rows) == 0 {
		_, _ = fmt.Fprintln(w, "No data found.")
		return
	}
	_, _ = fmt.Fprintf(w, "Query Results (%d rows):\n", len(result.Rows))
	renderTable(w, result)
}

func renderTable(w io.Writer, result store.Result) {
	if len(result.Rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(result.Columns))
	for i, column := range result.Columns {
		headerRow[i] = column
	}
	t.AppendHeader(headerRow)

	for _, row := range result.Rows {
		prettyRow := make(table.Row, len(row))
		for i, value := range row {
			prettyRow[i] = formatValue(value)
		}
		t.AppendRow(prettyRow)
	}
	t.Render()
}

func showExamples(w io.Writer) {
	_, _ = fmt.Fprintln(w, "\nExample Questions:")
	for i, example := range examples.List() {
		_, _ = fmt.Fprintf(w, "  %d. %s\n", i+1, example.Query)
	}
}

func showDatabaseInfo(ctx context.Context, opts Options, w io.Writer) {
	schema, err := opts.Store.Schema(ctx)
	if err != nil {
		_, _ = fmt.Fprintf(w, "failed to load schema: %v\n", err)
		return
	}

	tables := make([]string, 0, len(schema))
	for name := range schema {
		tables = append(tables, name)
	}
	sort.Strings(tables)

	_, _ = fmt.Fprintln(w, "\nDatabase Schema:")
	for _, name := range tables {
		_, _ = fmt.Fprintf(w, "  %s(%s)\n", name, strings.Join(schema[name], ", "))
	}

	sampleRows := opts.SampleRows
	if sampleRows <= 0 {
		sampleRows = 3
	}
	samples, err := opts.Store.Sample(ctx, sampleRows)
	if err != nil {
		_, _ = fmt.Fprintf(w, "failed to load sample data: %v\n", err)
		return
	}
	_, _ = fmt.Fprintln(w, "\nSample Data:")
	for _, name := range tables {
		_, _ = fmt.Fprintf(w, "\n%s (first %d rows):\n", strings.ToUpper(name), sampleRows)
		renderTable(w, recordsToResult(schema[name], samples[name]))
	}
}

func recordsToResult(columns []string, records []map[string]any) store.Result {
	rows := make([][]any, 0, len(records))
	for _, record := range records {
		row := make([]any, len(columns))
		for i, column := range columns {
			row[i] = record[column]
		}
		rows = append(rows, row)
	}
	return store.Result{Columns: columns, Rows: rows}
}

func formatValue(value any) string {
	if value == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", value)
}
