package report

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/specialistvlad/evmsim/internal/experiment"
	"github.com/specialistvlad/evmsim/internal/simulation"
)

// ConsoleReporter prints the end-of-batch summary: the final snapshot of the
// most recent successful run, followed by the Monte Carlo statistics.
type ConsoleReporter struct {
	out io.Writer
}

// NewConsoleReporter creates a reporter printing to out, or to stdout when
// out is nil.
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleReporter{out: out}
}

// Report implements Reporter.
func (r *ConsoleReporter) Report(_ context.Context, res *experiment.Result) error {
	fmt.Fprintf(r.out, "\nRuns: %d requested, %d successful, %d failed\n",
		res.Requested, res.Successful(), len(res.Failures))

	last, ok := res.LastSuccessful()
	if !ok {
		pterm.Warning.WithWriter(r.out).Println("No successful runs; nothing to summarize.")
		return nil
	}

	final := last.Final()
	fmt.Fprintf(r.out, "\nSimulation summary (run %d)\n", last.RunID)
	if err := r.render(pterm.TableData{
		{"Metric", "Value"},
		{"Termination", last.Termination.String()},
		{"Total steps", strconv.Itoa(last.Steps)},
		{"Planned finish", fmt.Sprintf("%.1f", res.PlannedFinish)},
		{"Completion", fmt.Sprintf("%.2f%%", final.CompletionPercent)},
		{"Earned value (EV)", fmt.Sprintf("%.2f", final.EarnedValue)},
		{"Actual cost (AC)", fmt.Sprintf("%.2f", final.ActualCost)},
		{"Planned value (PV)", fmt.Sprintf("%.2f", final.PlannedValue)},
		{"CPI", FormatIndex(final.CPI)},
		{"SPI", FormatIndex(final.SPI)},
	}); err != nil {
		return err
	}

	st, err := experiment.ComputeStatistics(res)
	if err != nil {
		return fmt.Errorf("failed to compute statistics: %w", err)
	}
	fmt.Fprintf(r.out, "\nMonte Carlo statistics (%d runs)\n", st.Runs)
	if err := r.render(pterm.TableData{
		{"Metric", "Mean", "StdDev", "Min", "P50", "P80", "P90", "Max"},
		distributionRow("Actual cost", st.ActualCost),
		distributionRow("Steps", st.Steps),
		distributionRow("Completion %", st.Completion),
	}); err != nil {
		return err
	}

	terminations := pterm.TableData{{"Termination", "Runs"}}
	for _, t := range simulation.Terminations {
		terminations = append(terminations, []string{t.String(), strconv.Itoa(st.Terminations[t])})
	}
	if err := r.render(terminations); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Mean CPI: %s  Mean SPI: %s\n", FormatIndex(st.MeanCPI), FormatIndex(st.MeanSPI))
	return nil
}

func (r *ConsoleReporter) render(data pterm.TableData) error {
	s, err := pterm.DefaultTable.
		WithHasHeader(true).
		WithBoxed(false).
		WithData(data).
		Srender()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	fmt.Fprintln(r.out, s)
	return nil
}

func distributionRow(name string, d experiment.Distribution) []string {
	row := []string{name}
	for _, v := range []float64{d.Mean, d.StdDev, d.Min, d.P50, d.P80, d.P90, d.Max} {
		row = append(row, fmt.Sprintf("%.2f", v))
	}
	return row
}

// FormatIndex renders a performance index: "Inf" for +Inf, "n/a" for zero or
// NaN, two decimals otherwise.
func FormatIndex(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "Inf"
	case math.IsNaN(v), math.Abs(v) < 1e-9:
		return "n/a"
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
