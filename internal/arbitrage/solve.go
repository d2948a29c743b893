package arbitrage

import (
	"context"
	"time"

	"dexAccel/internal/compare"
	"dexAccel/internal/graph"
	"dexAccel/internal/model"
)

// Solve builds the pool graph for req, runs both routing strategies and
// returns the plan of the optimized route with the comparison attached.
// The caller's max_hops is echoed in the metrics but the search cutoffs stay
// fixed at BaselineCutoff and OptimizedCutoff.
func Solve(ctx context.Context, req model.ArbitrageRequest, opts ...compare.Option) model.ArbitrageResponse {
	resp, _ := Evaluate(ctx, req, opts...)
	return resp
}

// Evaluate is Solve plus the raw strategy timings.
func Evaluate(ctx context.Context, req model.ArbitrageRequest, opts ...compare.Option) (model.ArbitrageResponse, compare.Timing) {
	start := time.Now()
	g := graph.Build(req.Pools)
	q := Query{Graph: g, TokenIn: req.TokenIn, TokenOut: req.TokenOut, AmountIn: req.AmountIn}

	res := compare.Run[Query, Route](ctx, Pathfinder{}, q, opts...)
	optimized := res.Optimized
	baseline := res.Baseline

	return model.ArbitrageResponse{
		OptimalPath:      optimized.Path,
		ExpectedProfit:   compare.Round(Profit(optimized.AmountOut, baseline.AmountOut), 2),
		Transactions:     Transactions(optimized, req.Pools, req.AmountIn),
		SimulationTimeMs: compare.Millis(res.OptimizedElapsed),
		BaselineProfit:   compare.Round(baseline.AmountOut, 2),
		Comparison: model.ArbitrageComparison{
			BaselinePath:    baseline.Path,
			BaselineProfit:  compare.Round(baseline.AmountOut, 2),
			BaselineTimeMs:  compare.Millis(res.BaselineElapsed),
			OptimizedPath:   optimized.Path,
			OptimizedProfit: compare.Round(optimized.AmountOut, 2),
			OptimizedTimeMs: compare.Millis(res.OptimizedElapsed),
			ImprovementPct:  compare.Round(res.ImprovementPct, 2),
			Winner:          string(res.Winner),
		},
		Metrics: model.ArbitrageMetrics{
			PathsEvaluated:   optimized.Evaluated,
			MaxHops:          OptimizedCutoff,
			RequestedMaxHops: req.MaxHops,
			GraphNodes:       g.NodeCount(),
			GraphEdges:       g.EdgeCount(),
			SolverMs:         compare.Millis(time.Since(start)),
		},
	}, res.Timing()
}

// Profit is the optimized output net of the baseline output when the
// baseline produced anything, otherwise the optimized output itself.
func Profit(optimizedOut, baselineOut float64) float64 {
	if baselineOut > 0 {
		return optimizedOut - baselineOut
	}
	return optimizedOut
}

// Transactions turns a priced route into swap legs. Each leg references the
// pool that priced the hop and carries the hop's input amount. When nothing
// can be derived a single swap of the full input through the first pool is
// returned, so the list is never empty for a non-empty pool set.
func Transactions(r Route, pools []model.Pool, amountIn float64) []model.TransactionRef {
	txs := make([]model.TransactionRef, 0, len(r.Hops))
	for i, hop := range r.Hops {
		if i+1 >= len(r.Path) || !poolMatches(pools, hop.Edge.Pool, r.Path[i], r.Path[i+1]) {
			continue
		}
		txs = append(txs, model.TransactionRef{Pool: hop.Edge.Pool, Action: "swap", Amount: compare.Round(hop.AmountIn, 6)})
	}
	if len(txs) == 0 && len(pools) > 0 {
		txs = append(txs, model.TransactionRef{Pool: pools[0].Address, Action: "swap", Amount: amountIn})
	}
	return txs
}

func poolMatches(pools []model.Pool, address, a, b string) bool {
	for _, p := range pools {
		if p.Address == address && p.HasPair(a, b) {
			return true
		}
	}
	return false
}
