package render

import (
	"fmt"
	"io"
	"sort"
	"text/template"

	"github.com/awslabs/interop/internal/report"

	"github.com/Masterminds/sprig/v3"
)

// matrixTemplate emits the interop grid as a GitHub-flavored table. Cells
// carry one glyph-prefixed abbreviation per test; empty cells collapse to a
// dash.
const matrixTemplate = `# QUIC Interop Report
{{- if .Start }}

_{{ .Start }} to {{ .End }}{{ with .Duration }} ({{ . }}){{ end }}_
{{- end }}
{{- if .HasRegression }}

> **Regression**: {{ .NewVersion }} fails tests that {{ .PrevVersion }} passed.
{{- end }}

| client \ server |{{ range .Servers }} {{ link .Name .URL }} |{{ end }}
| --- |{{ range .Servers }} --- |{{ end }}
{{- range .Rows }}
| {{ link .Impl.Name .Impl.URL }} |{{ range .Cells }} {{ join " " . | default "-" }} |{{ end }}
{{- end }}
{{- if .Tests }}

## Tests

| Abbr | Name |
| --- | --- |
{{- range .Tests }}
| {{ .Abbr }} | {{ .Name }} |
{{- end }}
{{- end }}
`

type implView struct {
	Name string
	URL  string
}

type rowView struct {
	Impl implView
	// Cells holds one token list per server, each token a glyph plus the
	// test abbreviation.
	Cells [][]string
}

type testView struct {
	Abbr string
	Name string
}

type reportView struct {
	Start         string
	End           string
	Duration      string
	HasRegression bool
	NewVersion    string
	PrevVersion   string
	Servers       []implView
	Rows          []rowView
	Tests         []testView
}

func newFuncMap() template.FuncMap {
	fm := sprig.TxtFuncMap()

	extra := map[string]any{
		"link": func(name, url string) string {
			if url == "" {
				return name
			}
			return "[" + name + "](" + url + ")"
		},
	}

	for name, fn := range extra {
		fm[name] = fn
	}

	return fm
}

func renderMarkdown(w io.Writer, doc *report.Report) error {
	m, err := buildMatrix(doc)
	if err != nil {
		return err
	}

	view := reportView{
		Start:       formatTime(doc.StartTime),
		End:         formatTime(doc.EndTime),
		Duration:    formatDuration(doc.StartTime, doc.EndTime),
		NewVersion:  doc.NewVersion,
		PrevVersion: doc.PrevVersion,
	}
	view.HasRegression = doc.Regression != nil && *doc.Regression
	for _, server := range doc.Servers {
		view.Servers = append(view.Servers, implView{Name: server, URL: doc.URLs[server]})
	}
	for i, client := range doc.Clients {
		row := rowView{Impl: implView{Name: client, URL: doc.URLs[client]}}
		for j := range doc.Servers {
			entries := m.at(i, j, len(doc.Servers))
			tokens := make([]string, 0, len(entries))
			for _, entry := range entries {
				tokens = append(tokens, glyphFor(entry.Result)+entry.Abbr)
			}
			row.Cells = append(row.Cells, tokens)
		}
		view.Rows = append(view.Rows, row)
	}
	for _, abbr := range sortedAbbrs(doc.Tests) {
		view.Tests = append(view.Tests, testView{Abbr: abbr, Name: doc.Tests[abbr].Name})
	}

	tmpl, err := template.New("matrix").Funcs(newFuncMap()).Parse(matrixTemplate)
	if err != nil {
		return fmt.Errorf("parsing matrix template: %w", err)
	}
	return tmpl.Execute(w, view)
}

func sortedAbbrs(tests map[string]report.TestInfo) []string {
	abbrs := make([]string, 0, len(tests))
	for abbr := range tests {
		abbrs = append(abbrs, abbr)
	}
	sort.Strings(abbrs)
	return abbrs
}
