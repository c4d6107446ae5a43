package printer

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/slok/tasktrack/internal/model"
	"github.com/slok/tasktrack/internal/report"
)

// TablePrinter prints task information in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintTasks prints tasks in a table format.
func (t *TablePrinter) PrintTasks(tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	// Print header
	fmt.Fprintln(tw, "ID\tTITLE\tPRIORITY\tSTATUS\tSUBTASKS\tFINISHED")

	// Print rows
	for _, task := range tasks {
		finished := "-"
		if task.FinishedAt != nil {
			finished = TimeAgo(*task.FinishedAt)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			task.ID,
			task.Title,
			task.Priority,
			task.Status,
			subtaskProgress(task),
			finished,
		)
	}

	return nil
}

// PrintTask prints detailed task information with its subtasks.
func (t *TablePrinter) PrintTask(task model.Task) error {
	fmt.Fprintf(t.writer, "ID:           %s\n", task.ID)
	fmt.Fprintf(t.writer, "Title:        %s\n", task.Title)
	if task.Description != "" {
		fmt.Fprintf(t.writer, "Description:  %s\n", task.Description)
	}
	fmt.Fprintf(t.writer, "Priority:     %s\n", task.Priority)
	fmt.Fprintf(t.writer, "Status:       %s\n", task.Status)
	fmt.Fprintf(t.writer, "Finished:     %s\n", FormatFinished(task.FinishedAt))

	if !task.HasSubtasks() {
		return nil
	}

	fmt.Fprintln(t.writer)
	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "SUBTASK\tTITLE\tSTATUS\tESTIMATED\tACTUAL\tFINISHED")
	for _, s := range task.Subtasks {
		estimated := s.EstimatedHours
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			s.ID,
			s.Title,
			s.Status,
			FormatHours(&estimated),
			FormatHours(s.ActualHours),
			FormatFinished(s.FinishedAt),
		)
	}

	return nil
}

// PrintSummary prints the task statistics.
func (t *TablePrinter) PrintSummary(summary report.Summary) error {
	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)

	// Print status distribution.
	fmt.Fprintln(tw, "STATUS\tTASKS\tSUBTASKS")
	for _, st := range model.StatusOrder {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", st, summary.Distribution.Tasks[st], summary.Distribution.Subtasks[st])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	// Print weekly completions.
	if len(summary.Weekly) > 0 {
		fmt.Fprintln(t.writer)
		fmt.Fprintln(tw, "WEEK\tDONE")
		for _, w := range summary.Weekly {
			fmt.Fprintf(tw, "%s\t%d\n", w.Label(), w.Count)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintln(t.writer)
	fmt.Fprintf(t.writer, "Estimated:  %s\n", FormatHours(&summary.Totals.EstimatedHours))
	fmt.Fprintf(t.writer, "Actual:     %s\n", FormatHours(&summary.Totals.ActualHours))

	return nil
}

// PrintMonthReport prints the work finished in a month.
func (t *TablePrinter) PrintMonthReport(r report.MonthReport) error {
	fmt.Fprintf(t.writer, "Done in %s %d\n", r.Month, r.Year)

	for _, e := range r.Entries {
		fmt.Fprintf(t.writer, "\n%s [%s] (%s)\n", e.Title, e.TaskID, e.Priority)
		if e.Description != "" {
			fmt.Fprintf(t.writer, "  %s\n", e.Description)
		}
		if e.TaskFinishedAt != nil {
			fmt.Fprintf(t.writer, "  Finished:  %s\n", FormatTimestamp(*e.TaskFinishedAt))
		}
		for _, s := range e.Subtasks {
			fmt.Fprintf(t.writer, "  - %s [%s] finished %s\n", s.Title, s.SubtaskID, FormatTimestamp(s.FinishedAt))
		}
	}

	return nil
}

// PrintMessage prints a simple text message.
func (t *TablePrinter) PrintMessage(msg string) error {
	fmt.Fprintln(t.writer, msg)
	return nil
}

func subtaskProgress(task model.Task) string {
	if !task.HasSubtasks() {
		return "-"
	}

	done := 0
	for _, s := range task.Subtasks {
		if s.Done() {
			done++
		}
	}
	return fmt.Sprintf("%d/%d", done, len(task.Subtasks))
}
