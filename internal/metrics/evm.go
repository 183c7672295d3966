package metrics

import (
	"math"

	"github.com/specialistvlad/evmsim/internal/model"
)

// PerformanceIndex returns value/cost, the shape shared by CPI (EV/AC) and
// SPI (EV/PV). When cost is zero the index is +Inf if value is positive and
// 0 otherwise.
func PerformanceIndex(value, cost float64) float64 {
	if cost > 0 {
		return value / cost
	}
	if value > 0 {
		return math.Inf(1)
	}
	return 0
}

// CompletionPercent is the duration-weighted progress of the project, in
// [0, 100]. Only tasks with a positive duration are weighed. When no task
// has one, the result is 100 if every task is finished and 0 otherwise.
func CompletionPercent(p *model.Project) float64 {
	var total, done float64
	allFinished := true
	for _, t := range p.Tasks() {
		if t.Progress() < 1 {
			allFinished = false
		}
		if t.PlannedDuration > 0 {
			total += t.PlannedDuration
			done += t.PlannedDuration * t.Progress()
		}
	}
	if total == 0 {
		if allFinished {
			return 100
		}
		return 0
	}
	return min(100, max(0, done/total*100))
}

// EarnedValue is the budgeted cost of the work performed so far.
func EarnedValue(p *model.Project) float64 {
	ev := 0.0
	for _, t := range p.Tasks() {
		ev += t.PlannedCost * t.Progress()
	}
	return ev
}
