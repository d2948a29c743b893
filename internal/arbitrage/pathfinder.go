// Package arbitrage finds swap routes across constant-product pools and
// compares an exhaustive bounded search against a direct-route heuristic.
package arbitrage

import (
	"dexAccel/internal/compare"
	"dexAccel/internal/graph"
)

const (
	// BaselineCutoff bounds the fallback search of the naive router.
	BaselineCutoff = 2
	// OptimizedCutoff bounds the exhaustive search.
	OptimizedCutoff = 4
)

// Query is the pathfinder input for one request.
type Query struct {
	Graph    *graph.Graph
	TokenIn  string
	TokenOut string
	AmountIn float64
}

// Route is a priced token path.
type Route struct {
	Path      []string
	AmountOut float64
	Hops      []graph.Hop
	Evaluated int
}

// Pathfinder implements compare.Evaluator over routes.
type Pathfinder struct{}

var _ compare.Evaluator[Query, Route] = Pathfinder{}

// Baseline prices the first direct pool if there is one. Otherwise it takes
// the first path found within BaselineCutoff hops without comparing others.
func (Pathfinder) Baseline(q Query) Route {
	if edges := q.Graph.Edges(q.TokenIn, q.TokenOut); len(edges) > 0 {
		e := edges[0]
		out := graph.AmountOut(e, q.AmountIn)
		return Route{
			Path:      []string{q.TokenIn, q.TokenOut},
			AmountOut: out,
			Hops:      []graph.Hop{{Edge: e, AmountIn: q.AmountIn, AmountOut: out}},
			Evaluated: 1,
		}
	}

	path := q.Graph.FirstPath(q.TokenIn, q.TokenOut, BaselineCutoff)
	if path == nil {
		return trivialRoute(q)
	}
	out, hops := q.Graph.Quote(path, q.AmountIn)
	return Route{Path: path, AmountOut: out, Hops: hops, Evaluated: 1}
}

// Optimized prices every simple path within OptimizedCutoff hops and keeps
// the one with the largest final output. The first path found wins ties.
func (Pathfinder) Optimized(q Query) Route {
	var best Route
	found := false
	evaluated := 0

	q.Graph.SimplePaths(q.TokenIn, q.TokenOut, OptimizedCutoff, func(path []string) bool {
		evaluated++
		out, hops := q.Graph.Quote(path, q.AmountIn)
		if !found || out > best.AmountOut {
			best = Route{Path: append([]string(nil), path...), AmountOut: out, Hops: hops}
			found = true
		}
		return true
	})

	if !found {
		r := trivialRoute(q)
		r.Evaluated = evaluated
		return r
	}
	best.Evaluated = evaluated
	return best
}

// Metric compares routes by final output amount.
func (Pathfinder) Metric(r Route) float64 { return r.AmountOut }

func (Pathfinder) Orientation() compare.Orientation { return compare.HigherIsBetter }

// ProbeSize sizes the placeholder annealing objective: two variables per
// path node, capped at ten.
func (Pathfinder) ProbeSize(r Route) int {
	n := 2 * len(r.Path)
	if n > 10 {
		n = 10
	}
	return n
}

func trivialRoute(q Query) Route {
	return Route{Path: []string{q.TokenIn, q.TokenOut}}
}
