package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/tasktrack/internal/conventions"
	"github.com/slok/tasktrack/internal/model"
	"github.com/slok/tasktrack/internal/printer"
)

type ExportCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	year   int
	month  int
	format string
	out    string
}

// NewExportCommand returns the export command.
func NewExportCommand(rootCmd *RootCommand, app *kingpin.Application) *ExportCommand {
	c := &ExportCommand{rootCmd: rootCmd}

	now := time.Now()
	c.Cmd = app.Command("export", "Export the work done in a month.")
	c.Cmd.Flag("year", "Year of the report.").Default(fmt.Sprint(now.Year())).IntVar(&c.year)
	c.Cmd.Flag("month", "Month of the report (1-12).").Default(fmt.Sprint(int(now.Month()))).IntVar(&c.month)
	c.Cmd.Flag("format", "Output format (html, json, table).").Default(formatHTML).EnumVar(&c.format, formatHTML, formatJSON, formatTable)
	c.Cmd.Flag("out", "Output file, HTML defaults to todo_export_YYYY_MM.html and the rest to stdout, '-' is stdout.").Short('o').StringVar(&c.out)

	return c
}

func (c ExportCommand) Name() string { return c.Cmd.FullCommand() }

func (c ExportCommand) Run(ctx context.Context) error {
	eng, err := c.rootCmd.newEngine(ctx)
	if err != nil {
		return err
	}
	defer eng.Close()

	r, err := eng.ExportMonth(c.year, time.Month(c.month))
	if err != nil {
		if errors.Is(err, model.ErrNoResults) {
			return fmt.Errorf("nothing was finished in %04d-%02d: %w", c.year, c.month, err)
		}
		return fmt.Errorf("could not export month: %w", err)
	}

	out := c.out
	if out == "" && c.format == formatHTML {
		out = conventions.ExportFileName(c.year, c.month)
	}

	render := func(w io.Writer) error {
		var p printer.MonthReportPrinter
		switch c.format {
		case formatHTML:
			p = printer.NewHTMLPrinter(w)
		case formatJSON:
			p = printer.NewJSONPrinter(w)
		default:
			p = printer.NewTablePrinter(w)
		}
		return p.PrintMonthReport(*r)
	}

	if out == "" || out == "-" {
		if err := render(c.rootCmd.Stdout); err != nil {
			return fmt.Errorf("could not print report: %w", err)
		}
		return nil
	}

	if err := writeExportFile(out, render); err != nil {
		return err
	}
	c.rootCmd.Logger.Infof("Export saved to %s", out)

	return nil
}

// writeExportFile renders the report in memory and only replaces the file
// once rendering succeeded, an existing report is never left half written.
func writeExportFile(path string, render func(io.Writer) error) error {
	var b bytes.Buffer
	if err := render(&b); err != nil {
		return fmt.Errorf("could not print report: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("could not create export file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(b.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("could not write export file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("could not write export file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("could not write export file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("could not write export file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("could not write export file: %w", err)
	}

	return nil
}
