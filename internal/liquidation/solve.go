package liquidation

import (
	"context"

	"dexAccel/internal/compare"
	"dexAccel/internal/model"
)

// Solve ranks req.Positions and returns the prioritized plan.
func Solve(ctx context.Context, req model.LiquidationRequest, opts ...compare.Option) model.LiquidationResponse {
	resp, _ := Evaluate(ctx, req, opts...)
	return resp
}

// Evaluate is Solve plus the raw strategy timings.
func Evaluate(ctx context.Context, req model.LiquidationRequest, opts ...compare.Option) (model.LiquidationResponse, compare.Timing) {
	res := compare.Run[[]model.Position, Selection](ctx, Ranker{}, req.Positions, opts...)
	optimized := res.Optimized
	selected := optimized.IDs()

	strategy := make([]model.LiquidationStep, len(optimized.Positions))
	for i, p := range optimized.Positions {
		strategy[i] = model.LiquidationStep{Position: p.ID, Action: "liquidate", Priority: i + 1}
	}

	elapsed := compare.Millis(res.OptimizedElapsed)
	return model.LiquidationResponse{
		SelectedPositions: selected,
		Strategy:          strategy,
		EstimatedRecovery: compare.Round(optimized.Recovery, 4),
		SimulationTimeMs:  elapsed,
		Comparison: model.LiquidationComparison{
			BaselineRecovery:  compare.Round(res.Baseline.Recovery, 4),
			BaselineSelected:  res.Baseline.IDs(),
			OptimizedRecovery: compare.Round(optimized.Recovery, 4),
			OptimizedSelected: selected,
			ImprovementPct:    compare.Round(res.ImprovementPct, 2),
			Winner:            string(res.Winner),
		},
		Metrics: model.LiquidationMetrics{
			PositionsEvaluated: len(req.Positions),
			PositionsSelected:  len(selected),
			SolverMs:           compare.Millis(res.BaselineElapsed + res.OptimizedElapsed),
		},
	}, res.Timing()
}
