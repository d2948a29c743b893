package schedule

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"dexAccel/internal/compare"
	"dexAccel/internal/conflict"
	"dexAccel/internal/model"
)

// Solve schedules req.PendingOrders, using the caller's conflict matrix when
// present and the write-set matrix otherwise.
func Solve(ctx context.Context, req model.SchedulerRequest, opts ...compare.Option) model.SchedulerResponse {
	resp, _ := Evaluate(ctx, req, opts...)
	return resp
}

// Evaluate is Solve plus the raw strategy timings. Matrix construction is
// counted in metrics.solver_ms but not in either strategy.
func Evaluate(ctx context.Context, req model.SchedulerRequest, opts ...compare.Option) (model.SchedulerResponse, compare.Timing) {
	start := time.Now()

	var m conflict.Matrix
	if req.ConflictMatrix != nil {
		m = conflict.FromRows(req.ConflictMatrix)
	} else {
		m = conflict.Build(req.PendingOrders)
	}
	in := Input{Orders: req.PendingOrders, Conflict: m}

	res := compare.Run[Input, Plan](ctx, Scheduler{}, in, opts...)
	reduction := compare.Round(res.ImprovementPct, 2)
	pairs := m.Pairs()

	return model.SchedulerResponse{
		Schedule:          Slots(req.PendingOrders, res.Optimized.Assignment),
		TotalSlots:        res.Optimized.Slots,
		ConflictReduction: ConflictReduction(reduction, pairs),
		ConflictMatrix:    m.Rows(),
		TotalConflicts:    pairs,
		Comparison: model.SchedulerComparison{
			BaselineSlots:               res.Baseline.Slots,
			BaselineConflictsRemaining:  res.Baseline.Remaining,
			OptimizedSlots:              res.Optimized.Slots,
			OptimizedConflictsRemaining: res.Optimized.Remaining,
			SlotsReductionPct:           reduction,
			Winner:                      string(res.Winner),
		},
		Metrics: model.SchedulerMetrics{
			GraphNodes:    m.Size(),
			GraphEdges:    pairs,
			ColoringSlots: res.Optimized.Slots,
			BaselineSlots: res.Baseline.Slots,
			SolverMs:      compare.Millis(time.Since(start)),
		},
	}, res.Timing()
}

// ConflictReduction summarizes the slot saving, or "0%" when no orders
// conflict. Whole percentages keep one decimal place ("50.0%").
func ConflictReduction(pct float64, conflicts int) string {
	if conflicts == 0 {
		return "0%"
	}
	d := decimal.NewFromFloat(pct)
	if d.Equal(d.Truncate(0)) {
		return d.StringFixed(1) + "% slots saved"
	}
	return d.String() + "% slots saved"
}
