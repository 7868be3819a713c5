package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/awslabs/interop/internal/report"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// tableRenderer draws the terminal grid and summary block.
type tableRenderer struct {
	color bool
}

func renderTable(w io.Writer, doc *report.Report, opts Options) error {
	m, err := buildMatrix(doc)
	if err != nil {
		return err
	}
	r := &tableRenderer{color: opts.Color}

	grid := r.newTable(w)
	header := table.Row{r.paint(text.FgHiCyan, `CLIENT \ SERVER`)}
	for _, server := range doc.Servers {
		header = append(header, r.paint(text.FgHiCyan, server))
	}
	grid.AppendHeader(header)
	for i, client := range doc.Clients {
		row := table.Row{r.paint(text.FgHiCyan, client)}
		for j := range doc.Servers {
			row = append(row, r.formatCell(m.at(i, j, len(doc.Servers))))
		}
		grid.AppendRow(row)
	}
	grid.Render()

	return r.renderSummary(w, doc)
}

func (r *tableRenderer) newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	// Implementation names are case-sensitive, keep headers verbatim.
	t.Style().Format.Header = text.FormatDefault
	return t
}

func (r *tableRenderer) paint(color text.Color, value string) string {
	if !r.color {
		return value
	}
	return color.Sprint(value)
}

// formatCell condenses one pair's results into pass/fail/unsupported counts.
func (r *tableRenderer) formatCell(entries []report.ResultEntry) string {
	if len(entries) == 0 {
		return "-"
	}
	var succeeded, failed, unsupported int
	for _, entry := range entries {
		switch entry.Result {
		case report.ResultSucceeded:
			succeeded++
		case report.ResultFailed:
			failed++
		case report.ResultUnsupported:
			unsupported++
		}
	}
	parts := make([]string, 0, 3)
	if succeeded > 0 {
		parts = append(parts, r.paint(text.FgGreen, fmt.Sprintf("✓ %d", succeeded)))
	}
	if failed > 0 {
		parts = append(parts, r.paint(text.FgRed, fmt.Sprintf("✕ %d", failed)))
	}
	if unsupported > 0 {
		parts = append(parts, r.paint(text.FgYellow, fmt.Sprintf("? %d", unsupported)))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "  ")
}

func (r *tableRenderer) renderSummary(w io.Writer, doc *report.Report) error {
	rows := make([]table.Row, 0, 8)
	appendRow := func(key, value string) {
		if value != "" {
			rows = append(rows, table.Row{r.paint(text.FgHiCyan, key), value})
		}
	}
	appendRow("Start", formatTime(doc.StartTime))
	appendRow("End", formatTime(doc.EndTime))
	appendRow("Duration", formatDuration(doc.StartTime, doc.EndTime))
	appendRow("QUIC version", rawScalar(doc.QuicVersion))
	appendRow("QUIC draft", rawScalar(doc.QuicDraft))
	appendRow("Tests", fmt.Sprintf("%d", len(doc.Tests)))
	appendRow("New version", doc.NewVersion)
	appendRow("Previous version", doc.PrevVersion)
	if doc.Regression != nil {
		if *doc.Regression {
			appendRow("Regression", r.paint(text.FgRed, "detected"))
		} else {
			appendRow("Regression", r.paint(text.FgGreen, "none"))
		}
	}
	if len(rows) == 0 {
		return nil
	}

	summary := r.newTable(w)
	summary.AppendHeader(table.Row{
		r.paint(text.FgHiCyan, "KEY"),
		r.paint(text.FgHiCyan, "VALUE"),
	})
	summary.AppendRows(rows)
	summary.Render()
	return nil
}
