package render

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"time"

	"github.com/awslabs/interop/internal/report"

	sigsyaml "sigs.k8s.io/yaml"
)

// OutputFormat represents the desired output format.
type OutputFormat string

const (
	// FormatTable renders a colored terminal grid.
	FormatTable OutputFormat = "table"
	// FormatMarkdown renders a GitHub-flavored matrix.
	FormatMarkdown OutputFormat = "markdown"
	// FormatJSON re-emits the report as indented JSON.
	FormatJSON OutputFormat = "json"
	// FormatYAML re-emits the report as YAML with JSON field names.
	FormatYAML OutputFormat = "yaml"
)

// ParseFormat validates a format name given on the command line.
func ParseFormat(name string) (OutputFormat, error) {
	switch OutputFormat(name) {
	case FormatTable, FormatMarkdown, FormatJSON, FormatYAML:
		return OutputFormat(name), nil
	case "":
		return FormatTable, nil
	}
	return "", fmt.Errorf("unknown output format %q (want table, markdown, json or yaml)", name)
}

// Options configures rendering behavior.
type Options struct {
	Format OutputFormat
	// Color enables ANSI styling in table output.
	Color bool
}

// Render writes the report to w in the requested format.
func Render(w io.Writer, doc *report.Report, opts Options) error {
	switch opts.Format {
	case FormatJSON:
		return renderJSON(w, doc)
	case FormatYAML:
		return renderYAML(w, doc)
	case FormatMarkdown:
		return renderMarkdown(w, doc)
	default:
		return renderTable(w, doc, opts)
	}
}

func renderJSON(w io.Writer, doc *report.Report) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func renderYAML(w io.Writer, doc *report.Report) error {
	data, err := sigsyaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// matrix re-keys the result grid for rendering, one cell per client/server
// pair in row-major order with entries sorted by abbreviation.
type matrix struct {
	cells [][]report.ResultEntry
}

func buildMatrix(doc *report.Report) (*matrix, error) {
	m := &matrix{}
	err := doc.EachPair(func(_, _ string, results []report.ResultEntry, _ []report.Measurement) {
		entries := make([]report.ResultEntry, len(results))
		copy(entries, results)
		sort.Slice(entries, func(i, j int) bool { return entries[i].Abbr < entries[j].Abbr })
		m.cells = append(m.cells, entries)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (m *matrix) at(row, col, width int) []report.ResultEntry {
	return m.cells[row*width+col]
}

func glyphFor(result report.Result) string {
	switch result {
	case report.ResultSucceeded:
		return "✓"
	case report.ResultFailed:
		return "✕"
	case report.ResultUnsupported:
		return "?"
	}
	return ""
}

// formatTime renders an epoch-seconds timestamp, or "" when absent.
func formatTime(ts *float64) string {
	if ts == nil {
		return ""
	}
	sec, frac := math.Modf(*ts)
	return time.Unix(int64(sec), int64(frac*float64(time.Second))).UTC().Format(time.RFC3339)
}

// formatDuration renders the span between two timestamps, or "" when either
// end is missing.
func formatDuration(start, end *float64) string {
	if start == nil || end == nil {
		return ""
	}
	return time.Duration((*end - *start) * float64(time.Second)).Round(time.Second).String()
}

// rawScalar renders an opaque version field. JSON strings lose their quotes,
// anything else keeps its wire form.
func rawScalar(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
