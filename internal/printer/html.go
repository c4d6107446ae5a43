package printer

import (
	"html/template"
	"io"

	"github.com/slok/tasktrack/internal/report"
)

var monthReportTpl = template.Must(template.New("month").Funcs(template.FuncMap{
	"timestamp": FormatTimestamp,
}).Parse(`<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Done report {{ .Year }}-{{ printf "%02d" .Month }}</title>
  <style>
    body { font-family: sans-serif; margin: 2rem; }
    .task { border: 1px solid #ddd; border-radius: 6px; padding: 1rem; margin-bottom: 1rem; }
    .subtask { margin-left: 1rem; padding: 0.25rem 0; }
    .muted { color: #666; }
    .date { color: #2a7a2a; font-size: 0.9em; }
  </style>
</head>
<body>
<h1>Done in {{ .Month }} {{ .Year }}</h1>
{{- range .Entries }}
<div class="task">
  <h2>{{ .Title }}</h2>
  {{- if .Description }}
  <p class="muted">{{ .Description }}</p>
  {{- end }}
  <p class="meta">Priority: {{ .Priority }}</p>
  {{- with .TaskFinishedAt }}
  <p class="date">Task finished: {{ timestamp . }}</p>
  {{- end }}
  {{- if .Subtasks }}
  <h3>Done subtasks</h3>
  {{- range .Subtasks }}
  <div class="subtask">
    <strong>{{ .Title }}</strong>
    {{- if .Description }}
    <div class="muted">{{ .Description }}</div>
    {{- end }}
    <div class="date">Finished: {{ timestamp .FinishedAt }}</div>
  </div>
  {{- end }}
  {{- end }}
</div>
{{- end }}
</body>
</html>
`))

// HTMLPrinter prints month reports as a standalone HTML document.
type HTMLPrinter struct {
	writer io.Writer
}

// NewHTMLPrinter creates a new HTML printer.
func NewHTMLPrinter(w io.Writer) *HTMLPrinter {
	return &HTMLPrinter{writer: w}
}

// PrintMonthReport renders the report, task content is escaped.
func (h *HTMLPrinter) PrintMonthReport(r report.MonthReport) error {
	return monthReportTpl.Execute(h.writer, r)
}
