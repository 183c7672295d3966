package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/specialistvlad/evmsim/internal/ctxlog"
	"github.com/specialistvlad/evmsim/internal/experiment"
)

// Columns is the CSV header, in column order.
var Columns = []string{
	"run_id",
	"step",
	"completion_percent",
	"earned_value",
	"actual_cost",
	"cpi",
	"spi",
	"active_agents",
	"planned_value",
	"step_cost",
	"tasks_done",
}

// CSVReporter writes the concatenated series of all successful runs to a file.
type CSVReporter struct {
	Path string
}

// NewCSVReporter creates a reporter writing to path.
func NewCSVReporter(path string) *CSVReporter {
	return &CSVReporter{Path: path}
}

// Report implements Reporter. The parent directory is created if needed. A
// result without successful runs produces a header-only file.
func (r *CSVReporter) Report(ctx context.Context, res *experiment.Result) error {
	if dir := filepath.Dir(r.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %q: %w", dir, err)
		}
	}

	f, err := os.Create(r.Path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer f.Close()

	rows := res.Rows()
	if err := WriteCSV(f, rows); err != nil {
		return fmt.Errorf("failed to write %q: %w", r.Path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %q: %w", r.Path, err)
	}

	ctxlog.FromContext(ctx).Info("Results saved.", "path", r.Path, "rows", len(rows))
	return nil
}

// WriteCSV writes the header followed by one record per row.
func WriteCSV(w io.Writer, rows []experiment.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(record(row)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func record(row experiment.Row) []string {
	return []string{
		strconv.Itoa(row.RunID),
		strconv.Itoa(row.Step),
		formatFloat(row.CompletionPercent),
		formatFloat(row.EarnedValue),
		formatFloat(row.ActualCost),
		formatFloat(row.CPI),
		formatFloat(row.SPI),
		strconv.Itoa(row.ActiveAgents),
		formatFloat(row.PlannedValue),
		formatFloat(row.StepCost),
		strconv.Itoa(row.TasksDone),
	}
}

// formatFloat uses the shortest exact representation; infinities render as
// "+Inf".
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
