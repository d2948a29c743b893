package arbitrage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dexAccel/internal/compare"
	"dexAccel/internal/graph"
	"dexAccel/internal/model"
)

func pool(addr, a, b string, ra, rb float64, fee int) model.Pool {
	return model.Pool{Address: addr, Tokens: []string{a, b}, Reserves: []float64{ra, rb}, FeeBps: fee}
}

func cpOut(a, rin, rout, f float64) float64 {
	return a * rout * f / (rin + a*f)
}

func TestSolveTwoHopScenario(t *testing.T) {
	req := model.ArbitrageRequest{
		TokenIn:  "A",
		TokenOut: "C",
		AmountIn: 100,
		Pools: []model.Pool{
			pool("0xab", "A", "B", 1000, 1000, 300),
			pool("0xbc", "B", "C", 1000, 1000, 300),
		},
	}
	resp := Solve(context.Background(), req)

	want := cpOut(cpOut(100, 1000, 1000, 0.97), 1000, 1000, 0.97)
	assert.Equal(t, []string{"A", "B", "C"}, resp.OptimalPath)
	assert.InDelta(t, compare.Round(want, 2), resp.Comparison.OptimizedProfit, 1e-9)

	// the naive router finds the same two-hop path, so profit is net of it
	assert.Equal(t, []string{"A", "B", "C"}, resp.Comparison.BaselinePath)
	assert.InDelta(t, 0, resp.ExpectedProfit, 1e-9)
	assert.Equal(t, "optimized", resp.Comparison.Winner)

	require.Len(t, resp.Transactions, 2)
	assert.Equal(t, "0xab", resp.Transactions[0].Pool)
	assert.Equal(t, 100.0, resp.Transactions[0].Amount)
	assert.Equal(t, "0xbc", resp.Transactions[1].Pool)
	assert.Equal(t, "swap", resp.Transactions[1].Action)
}

func TestBaselineUsesDirectPool(t *testing.T) {
	g := graph.Build([]model.Pool{
		pool("ab", "A", "B", 1000, 1000, 30),
		pool("bc", "B", "C", 1000, 1000, 30),
		pool("ac", "A", "C", 10, 10, 30),
	})
	r := Pathfinder{}.Baseline(Query{Graph: g, TokenIn: "A", TokenOut: "C", AmountIn: 5})
	assert.Equal(t, []string{"A", "C"}, r.Path)
	assert.InDelta(t, cpOut(5, 10, 10, 0.997), r.AmountOut, 1e-9)
}

func TestOptimizedBeatsShallowDirectPool(t *testing.T) {
	req := model.ArbitrageRequest{
		TokenIn:  "A",
		TokenOut: "C",
		AmountIn: 5,
		Pools: []model.Pool{
			pool("ab", "A", "B", 1000, 1000, 30),
			pool("bc", "B", "C", 1000, 1000, 30),
			pool("ac", "A", "C", 10, 10, 30),
		},
	}
	resp := Solve(context.Background(), req)
	assert.Equal(t, []string{"A", "B", "C"}, resp.OptimalPath)
	assert.Equal(t, []string{"A", "C"}, resp.Comparison.BaselinePath)
	assert.Greater(t, resp.Comparison.ImprovementPct, 0.0)
	assert.Greater(t, resp.ExpectedProfit, 0.0)
	assert.Equal(t, "optimized", resp.Comparison.Winner)
	assert.Equal(t, 2, resp.Metrics.PathsEvaluated)
}

func TestBaselineTakesFirstPathNotBest(t *testing.T) {
	g := graph.Build([]model.Pool{
		pool("ab", "A", "B", 10, 10, 30),
		pool("bd", "B", "D", 10, 10, 30),
		pool("ac", "A", "C", 1000, 1000, 30),
		pool("cd", "C", "D", 1000, 1000, 30),
	})
	q := Query{Graph: g, TokenIn: "A", TokenOut: "D", AmountIn: 5}
	assert.Equal(t, []string{"A", "B", "D"}, Pathfinder{}.Baseline(q).Path)
	assert.Equal(t, []string{"A", "C", "D"}, Pathfinder{}.Optimized(q).Path)
}

func TestBaselineCutoffIsTwoHops(t *testing.T) {
	g := graph.Build([]model.Pool{
		pool("ab", "A", "B", 1000, 1000, 30),
		pool("bc", "B", "C", 1000, 1000, 30),
		pool("cd", "C", "D", 1000, 1000, 30),
	})
	q := Query{Graph: g, TokenIn: "A", TokenOut: "D", AmountIn: 5}
	base := Pathfinder{}.Baseline(q)
	assert.Equal(t, []string{"A", "D"}, base.Path)
	assert.Zero(t, base.AmountOut)

	opt := Pathfinder{}.Optimized(q)
	assert.Equal(t, []string{"A", "B", "C", "D"}, opt.Path)
	assert.Greater(t, opt.AmountOut, 0.0)
}

func TestOptimizedCutoffIsFourHops(t *testing.T) {
	g := graph.Build([]model.Pool{
		pool("1", "A", "B", 1000, 1000, 0),
		pool("2", "B", "C", 1000, 1000, 0),
		pool("3", "C", "D", 1000, 1000, 0),
		pool("4", "D", "E", 1000, 1000, 0),
		pool("5", "E", "F", 1000, 1000, 0),
	})
	q := Query{Graph: g, TokenIn: "A", TokenOut: "F", AmountIn: 1}
	r := Pathfinder{}.Optimized(q)
	assert.Equal(t, []string{"A", "F"}, r.Path)
	assert.Zero(t, r.AmountOut)

	q.TokenOut = "E"
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, Pathfinder{}.Optimized(q).Path)
}

// max_hops from the caller is reported but does not change the search: the
// cutoffs are fixed at 2 (baseline) and 4 (optimized).
func TestSolveIgnoresCallerMaxHops(t *testing.T) {
	pools := []model.Pool{
		pool("1", "A", "B", 1000, 1000, 0),
		pool("2", "B", "C", 1000, 1000, 0),
		pool("3", "C", "D", 1000, 1000, 0),
		pool("4", "D", "E", 1000, 1000, 0),
	}
	for _, hops := range []int{1, 3, 10} {
		resp := Solve(context.Background(), model.ArbitrageRequest{TokenIn: "A", TokenOut: "E", AmountIn: 10, MaxHops: hops, Pools: pools})
		assert.Equal(t, []string{"A", "B", "C", "D", "E"}, resp.OptimalPath, "max_hops=%d", hops)
		assert.Equal(t, OptimizedCutoff, resp.Metrics.MaxHops)
		assert.Equal(t, hops, resp.Metrics.RequestedMaxHops)
	}
}

func TestSolveIsDeterministic(t *testing.T) {
	req := model.ArbitrageRequest{
		TokenIn:  "WETH",
		TokenOut: "USDC",
		AmountIn: 3,
		Pools: []model.Pool{
			pool("p1", "WETH", "USDC", 500, 1_000_000, 30),
			pool("p2", "WETH", "USDT", 800, 1_700_000, 30),
			pool("p3", "USDT", "USDC", 2_000_000, 2_000_000, 5),
			pool("p4", "WETH", "DAI", 100, 210_000, 30),
			pool("p5", "DAI", "USDC", 500_000, 500_000, 5),
		},
	}
	first := Solve(context.Background(), req)
	second := Solve(context.Background(), req)
	assert.Equal(t, first.OptimalPath, second.OptimalPath)
	assert.Equal(t, first.Comparison.OptimizedProfit, second.Comparison.OptimizedProfit)
	assert.Equal(t, first.Transactions, second.Transactions)
}

func TestSolveNoPath(t *testing.T) {
	req := model.ArbitrageRequest{
		TokenIn:  "A",
		TokenOut: "Z",
		AmountIn: 100,
		Pools:    []model.Pool{pool("ab", "A", "B", 1000, 1000, 300)},
	}
	resp := Solve(context.Background(), req)
	assert.Equal(t, []string{"A", "Z"}, resp.OptimalPath)
	assert.Zero(t, resp.ExpectedProfit)
	assert.Zero(t, resp.Comparison.ImprovementPct)
	assert.Equal(t, "optimized", resp.Comparison.Winner)
	require.Len(t, resp.Transactions, 1)
	assert.Equal(t, model.TransactionRef{Pool: "ab", Action: "swap", Amount: 100}, resp.Transactions[0])
}

func TestSolveZeroReserves(t *testing.T) {
	req := model.ArbitrageRequest{
		TokenIn:  "A",
		TokenOut: "B",
		AmountIn: 100,
		Pools:    []model.Pool{pool("dry", "A", "B", 0, 0, 300)},
	}
	resp := Solve(context.Background(), req)
	assert.Equal(t, []string{"A", "B"}, resp.OptimalPath)
	assert.Zero(t, resp.Comparison.OptimizedProfit)
	assert.Zero(t, resp.BaselineProfit)
	assert.Zero(t, resp.Comparison.ImprovementPct)
	require.NotEmpty(t, resp.Transactions)
}

func TestProbeDoesNotChangeRoute(t *testing.T) {
	req := model.ArbitrageRequest{
		TokenIn:  "A",
		TokenOut: "C",
		AmountIn: 100,
		Pools: []model.Pool{
			pool("0xab", "A", "B", 1000, 1000, 300),
			pool("0xbc", "B", "C", 1000, 1000, 300),
		},
	}
	var sizes []int
	probe := compare.ProbeFunc(func(ctx context.Context, size int) error {
		sizes = append(sizes, size)
		return errors.New("unreachable")
	})

	plain := Solve(context.Background(), req)
	probed := Solve(context.Background(), req, compare.WithProbe(probe, 50*time.Millisecond))

	assert.Equal(t, plain.OptimalPath, probed.OptimalPath)
	assert.Equal(t, plain.ExpectedProfit, probed.ExpectedProfit)
	assert.Equal(t, plain.Transactions, probed.Transactions)
	assert.Equal(t, []int{6}, sizes)
}

func TestProfit(t *testing.T) {
	assert.Equal(t, 5.0, Profit(15, 10))
	assert.Equal(t, 15.0, Profit(15, 0))
}
