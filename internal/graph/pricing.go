package graph

// AmountOut applies the constant-product rule with fee to an input amount.
// It is 0 when the input reserve or the denominator is 0.
func AmountOut(e Edge, amountIn float64) float64 {
	if e.ReserveIn == 0 {
		return 0
	}
	effective := amountIn * e.FeeMultiplier
	denom := e.ReserveIn + effective
	if denom == 0 {
		return 0
	}
	return effective * e.ReserveOut / denom
}

// BestEdge prices every pool between from and to and returns the one with the
// highest output. The first pool wins ties. ok is false when no pool exists.
func (g *Graph) BestEdge(from, to string, amountIn float64) (best Edge, out float64, ok bool) {
	for _, e := range g.Edges(from, to) {
		amt := AmountOut(e, amountIn)
		if !ok || amt > out {
			best, out, ok = e, amt, true
		}
	}
	return best, out, ok
}

// Hop is a priced leg of a path.
type Hop struct {
	Edge      Edge
	AmountIn  float64
	AmountOut float64
}

// Quote composes AmountOut along path, feeding each hop's output into the
// next. It returns the final amount and the priced hops; a path with a
// missing edge yields zero output.
func (g *Graph) Quote(path []string, amountIn float64) (float64, []Hop) {
	if len(path) < 2 {
		return 0, nil
	}
	hops := make([]Hop, 0, len(path)-1)
	amt := amountIn
	for i := 0; i+1 < len(path); i++ {
		e, out, ok := g.BestEdge(path[i], path[i+1], amt)
		if !ok {
			return 0, nil
		}
		hops = append(hops, Hop{Edge: e, AmountIn: amt, AmountOut: out})
		amt = out
	}
	return amt, hops
}
