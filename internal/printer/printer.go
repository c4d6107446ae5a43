package printer

import (
	"github.com/slok/tasktrack/internal/model"
	"github.com/slok/tasktrack/internal/report"
)

// Printer knows how to print task information in different formats.
type Printer interface {
	PrintTasks(tasks []model.Task) error
	PrintTask(task model.Task) error
	PrintSummary(summary report.Summary) error
	MonthReportPrinter
	PrintMessage(msg string) error
}

// MonthReportPrinter knows how to print a month report.
type MonthReportPrinter interface {
	PrintMonthReport(r report.MonthReport) error
}
