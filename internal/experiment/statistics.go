package experiment

import (
	"math"

	"github.com/montanaflynn/stats"
	"github.com/specialistvlad/evmsim/internal/simulation"
)

// Distribution summarizes one metric across runs.
type Distribution struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	P50    float64
	P80    float64
	P90    float64
}

// Statistics summarizes the final state of every successful run.
type Statistics struct {
	Runs         int
	Terminations map[simulation.Termination]int
	ActualCost   Distribution
	Steps        Distribution
	Completion   Distribution
	// MeanCPI and MeanSPI average the finite final indices only. They are
	// NaN when no run has a finite value.
	MeanCPI float64
	MeanSPI float64
}

// ComputeStatistics aggregates the final snapshots of the successful runs.
// The zero Statistics (with an empty termination map) is returned for an
// empty result.
func ComputeStatistics(res *Result) (Statistics, error) {
	st := Statistics{
		Terminations: make(map[simulation.Termination]int),
		MeanCPI:      math.NaN(),
		MeanSPI:      math.NaN(),
	}
	if res == nil || res.Empty() {
		return st, nil
	}

	var costs, steps, completion, cpis, spis stats.Float64Data
	for _, run := range res.Runs {
		final := run.Final()
		st.Terminations[run.Termination]++
		costs = append(costs, final.ActualCost)
		steps = append(steps, float64(run.Steps))
		completion = append(completion, final.CompletionPercent)
		if !math.IsInf(final.CPI, 0) {
			cpis = append(cpis, final.CPI)
		}
		if !math.IsInf(final.SPI, 0) {
			spis = append(spis, final.SPI)
		}
	}
	st.Runs = len(res.Runs)

	var err error
	if st.ActualCost, err = distribution(costs); err != nil {
		return st, err
	}
	if st.Steps, err = distribution(steps); err != nil {
		return st, err
	}
	if st.Completion, err = distribution(completion); err != nil {
		return st, err
	}
	if len(cpis) > 0 {
		if st.MeanCPI, err = cpis.Mean(); err != nil {
			return st, err
		}
	}
	if len(spis) > 0 {
		if st.MeanSPI, err = spis.Mean(); err != nil {
			return st, err
		}
	}
	return st, nil
}

func distribution(data stats.Float64Data) (Distribution, error) {
	var d Distribution
	var err error
	if d.Mean, err = data.Mean(); err != nil {
		return d, err
	}
	if d.StdDev, err = data.StandardDeviation(); err != nil {
		return d, err
	}
	if d.Min, err = data.Min(); err != nil {
		return d, err
	}
	if d.Max, err = data.Max(); err != nil {
		return d, err
	}
	if d.P50, err = data.Percentile(50); err != nil {
		return d, err
	}
	if d.P80, err = data.Percentile(80); err != nil {
		return d, err
	}
	if d.P90, err = data.Percentile(90); err != nil {
		return d, err
	}
	return d, nil
}
