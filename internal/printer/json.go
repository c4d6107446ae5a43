package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/slok/tasktrack/internal/model"
	"github.com/slok/tasktrack/internal/report"
)

// JSONPrinter prints task information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

// taskOutput represents a task with its subtasks.
type taskOutput struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Priority    string          `json:"priority"`
	Status      string          `json:"status"`
	FinishedAt  *time.Time      `json:"finished_at"`
	Subtasks    []subtaskOutput `json:"subtasks"`
}

// subtaskOutput represents a subtask.
type subtaskOutput struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	FinishedAt     *time.Time `json:"finished_at"`
	EstimatedHours float64    `json:"estimated_hours"`
	ActualHours    *float64   `json:"actual_hours"`
}

// summaryOutput represents the task statistics.
type summaryOutput struct {
	Tasks          map[string]int `json:"tasks"`
	Subtasks       map[string]int `json:"subtasks"`
	Weekly         []weekOutput   `json:"weekly"`
	EstimatedHours float64        `json:"estimated_hours"`
	ActualHours    float64        `json:"actual_hours"`
}

// weekOutput represents the tasks done in a week.
type weekOutput struct {
	Week  string `json:"week"`
	Count int    `json:"count"`
}

// monthReportOutput represents the work done in a month.
type monthReportOutput struct {
	Year    int                `json:"year"`
	Month   int                `json:"month"`
	Entries []monthEntryOutput `json:"entries"`
}

// monthEntryOutput represents a task in a month report.
type monthEntryOutput struct {
	TaskID         string               `json:"task_id"`
	Title          string               `json:"title"`
	Description    string               `json:"description"`
	Priority       string               `json:"priority"`
	TaskFinishedAt *time.Time           `json:"task_finished_at"`
	Subtasks       []monthSubtaskOutput `json:"subtasks"`
}

// monthSubtaskOutput represents a subtask in a month report.
type monthSubtaskOutput struct {
	SubtaskID   string    `json:"subtask_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	FinishedAt  time.Time `json:"finished_at"`
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

// PrintTasks prints tasks in JSON format.
func (j *JSONPrinter) PrintTasks(tasks []model.Task) error {
	items := make([]taskOutput, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, newTaskOutput(t))
	}
	return j.encode(items)
}

// PrintTask prints a task in JSON format.
func (j *JSONPrinter) PrintTask(task model.Task) error {
	return j.encode(newTaskOutput(task))
}

// PrintSummary prints the task statistics in JSON format.
func (j *JSONPrinter) PrintSummary(summary report.Summary) error {
	output := summaryOutput{
		Tasks:          map[string]int{},
		Subtasks:       map[string]int{},
		Weekly:         make([]weekOutput, 0, len(summary.Weekly)),
		EstimatedHours: summary.Totals.EstimatedHours,
		ActualHours:    summary.Totals.ActualHours,
	}
	for _, st := range model.StatusOrder {
		output.Tasks[string(st)] = summary.Distribution.Tasks[st]
		output.Subtasks[string(st)] = summary.Distribution.Subtasks[st]
	}
	for _, w := range summary.Weekly {
		output.Weekly = append(output.Weekly, weekOutput{Week: w.Label(), Count: w.Count})
	}

	return j.encode(output)
}

// PrintMonthReport prints the work done in a month in JSON format.
func (j *JSONPrinter) PrintMonthReport(r report.MonthReport) error {
	output := monthReportOutput{
		Year:    r.Year,
		Month:   int(r.Month),
		Entries: make([]monthEntryOutput, 0, len(r.Entries)),
	}
	for _, e := range r.Entries {
		entry := monthEntryOutput{
			TaskID:         e.TaskID,
			Title:          e.Title,
			Description:    e.Description,
			Priority:       string(e.Priority),
			TaskFinishedAt: utc(e.TaskFinishedAt),
			Subtasks:       make([]monthSubtaskOutput, 0, len(e.Subtasks)),
		}
		for _, s := range e.Subtasks {
			entry.Subtasks = append(entry.Subtasks, monthSubtaskOutput{
				SubtaskID:   s.SubtaskID,
				Title:       s.Title,
				Description: s.Description,
				FinishedAt:  s.FinishedAt.UTC(),
			})
		}
		output.Entries = append(output.Entries, entry)
	}

	return j.encode(output)
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}

func (j *JSONPrinter) encode(v any) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTaskOutput(t model.Task) taskOutput {
	out := taskOutput{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		FinishedAt:  utc(t.FinishedAt),
		Subtasks:    make([]subtaskOutput, 0, len(t.Subtasks)),
	}
	for _, s := range t.Subtasks {
		out.Subtasks = append(out.Subtasks, subtaskOutput{
			ID:             s.ID,
			Title:          s.Title,
			Description:    s.Description,
			Status:         string(s.Status),
			FinishedAt:     utc(s.FinishedAt),
			EstimatedHours: s.EstimatedHours,
			ActualHours:    s.ActualHours,
		})
	}
	return out
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
