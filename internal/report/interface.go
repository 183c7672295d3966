package report

import (
	"context"
	"errors"

	"github.com/specialistvlad/evmsim/internal/experiment"
)

// Reporter publishes the result of a batch.
type Reporter interface {
	Report(ctx context.Context, res *experiment.Result) error
}

// MultiReporter fans a result out to several reporters. Every reporter is
// called even if an earlier one fails.
type MultiReporter struct {
	reporters []Reporter
}

// NewMultiReporter combines reporters, called in the given order.
func NewMultiReporter(reporters ...Reporter) *MultiReporter {
	return &MultiReporter{reporters: reporters}
}

// Report implements Reporter.
func (m *MultiReporter) Report(ctx context.Context, res *experiment.Result) error {
	var errs []error
	for _, r := range m.reporters {
		if err := r.Report(ctx, res); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
