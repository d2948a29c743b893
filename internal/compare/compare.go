// Package compare runs a baseline and an optimized strategy over the same
// input and folds both outcomes into one comparison.
package compare

import (
	"context"
	"time"
)

// Winner labels the strategy with the better metric.
type Winner string

const (
	WinnerOptimized Winner = "optimized"
	WinnerBaseline  Winner = "baseline"
)

// Orientation tells the reducer which direction of a metric is better.
type Orientation int

const (
	HigherIsBetter Orientation = iota
	LowerIsBetter
)

// Evaluator is implemented by each solver: two strategies over one input and
// a scalar metric for their outputs.
type Evaluator[In, Out any] interface {
	Baseline(in In) Out
	Optimized(in In) Out
	Metric(out Out) float64
	Orientation() Orientation
}

// ProbeSizer is optionally implemented by an Evaluator to size the probe's
// placeholder objective from the optimized output.
type ProbeSizer[Out any] interface {
	ProbeSize(out Out) int
}

// Result is the reduced comparison of one evaluation.
type Result[Out any] struct {
	Baseline         Out
	Optimized        Out
	BaselineMetric   float64
	OptimizedMetric  float64
	BaselineElapsed  time.Duration
	OptimizedElapsed time.Duration
	ImprovementPct   float64
	Winner           Winner
}

// Timing is the unrounded wall time of each strategy.
type Timing struct {
	Baseline  time.Duration
	Optimized time.Duration
}

func (r Result[Out]) Timing() Timing {
	return Timing{Baseline: r.BaselineElapsed, Optimized: r.OptimizedElapsed}
}

// Run executes both strategies, times them and applies the tie-break: the
// optimized strategy wins whenever its metric is at least as good.
func Run[In, Out any](ctx context.Context, e Evaluator[In, Out], in In, opts ...Option) Result[Out] {
	cfg := newRunConfig(opts)

	start := cfg.now()
	baseline := e.Baseline(in)
	baselineElapsed := cfg.now().Sub(start)

	start = cfg.now()
	optimized := e.Optimized(in)
	if cfg.probe != nil {
		size := 0
		if sizer, ok := any(e).(ProbeSizer[Out]); ok {
			size = sizer.ProbeSize(optimized)
		}
		tryProbe(ctx, cfg.probe, cfg.probeTimeout, size)
	}
	optimizedElapsed := cfg.now().Sub(start)

	baseMetric := e.Metric(baseline)
	optMetric := e.Metric(optimized)
	orientation := e.Orientation()

	return Result[Out]{
		Baseline:         baseline,
		Optimized:        optimized,
		BaselineMetric:   baseMetric,
		OptimizedMetric:  optMetric,
		BaselineElapsed:  baselineElapsed,
		OptimizedElapsed: optimizedElapsed,
		ImprovementPct:   Improvement(baseMetric, optMetric, orientation),
		Winner:           Pick(baseMetric, optMetric, orientation),
	}
}

// Pick applies the tie-break rule for the given orientation.
func Pick(baseline, optimized float64, o Orientation) Winner {
	if o == LowerIsBetter {
		if optimized <= baseline {
			return WinnerOptimized
		}
		return WinnerBaseline
	}
	if optimized >= baseline {
		return WinnerOptimized
	}
	return WinnerBaseline
}

// Improvement returns the relative gain of optimized over baseline in percent.
// For higher-is-better metrics a zero baseline yields 0; for lower-is-better
// metrics the baseline is floored at 1.
func Improvement(baseline, optimized float64, o Orientation) float64 {
	if o == LowerIsBetter {
		denom := baseline
		if denom < 1 {
			denom = 1
		}
		return (baseline - optimized) / denom * 100
	}
	if baseline == 0 {
		return 0
	}
	return (optimized - baseline) / baseline * 100
}
