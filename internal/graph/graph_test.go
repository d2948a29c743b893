package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dexAccel/internal/model"
)

func pool(addr, a, b string, ra, rb float64, fee int) model.Pool {
	return model.Pool{Address: addr, Tokens: []string{a, b}, Reserves: []float64{ra, rb}, FeeBps: fee}
}

func TestBuildInsertsBothDirections(t *testing.T) {
	g := Build([]model.Pool{pool("p1", "A", "B", 1000, 2000, 300)})

	require.True(t, g.HasEdge("A", "B"))
	require.True(t, g.HasEdge("B", "A"))
	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 2, g.EdgeCount())

	ab := g.Edges("A", "B")[0]
	assert.Equal(t, "p1", ab.Pool)
	assert.Equal(t, 1000.0, ab.ReserveIn)
	assert.Equal(t, 2000.0, ab.ReserveOut)
	assert.InDelta(t, 0.97, ab.FeeMultiplier, 1e-12)

	ba := g.Edges("B", "A")[0]
	assert.Equal(t, 2000.0, ba.ReserveIn)
	assert.Equal(t, 1000.0, ba.ReserveOut)
}

func TestBuildIsDeterministic(t *testing.T) {
	pools := []model.Pool{
		pool("p1", "A", "B", 1000, 1000, 30),
		pool("p2", "B", "C", 1000, 1000, 30),
		pool("p3", "A", "C", 1000, 1000, 30),
	}
	g1 := Build(pools)
	g2 := Build(pools)
	assert.Equal(t, g1.Nodes(), g2.Nodes())
	assert.Equal(t, g1.Neighbors("A"), g2.Neighbors("A"))
	assert.Equal(t, []string{"B", "C"}, g1.Neighbors("A"))
}

func TestBuildKeepsZeroReservePools(t *testing.T) {
	g := Build([]model.Pool{pool("dry", "A", "B", 0, 1000, 300)})
	require.True(t, g.HasEdge("A", "B"))
	assert.Zero(t, AmountOut(g.Edges("A", "B")[0], 100))
}

func TestAmountOut(t *testing.T) {
	e := Edge{ReserveIn: 1000, ReserveOut: 1000, FeeMultiplier: 0.97}
	want := 100 * 0.97 * 1000 / (1000 + 100*0.97)
	assert.InDelta(t, want, AmountOut(e, 100), 1e-9)

	assert.Zero(t, AmountOut(Edge{ReserveIn: 0, ReserveOut: 10, FeeMultiplier: 1}, 5))
	assert.Zero(t, AmountOut(Edge{ReserveIn: 10, ReserveOut: 10, FeeMultiplier: 1}, 0))
	assert.Zero(t, AmountOut(Edge{ReserveIn: 10, ReserveOut: 10, FeeMultiplier: 1}, -10))
}

func TestBestEdgePicksDeepestPool(t *testing.T) {
	g := Build([]model.Pool{
		pool("shallow", "A", "B", 100, 100, 30),
		pool("deep", "A", "B", 10000, 10000, 30),
	})
	e, out, ok := g.BestEdge("A", "B", 50)
	require.True(t, ok)
	assert.Equal(t, "deep", e.Pool)
	assert.Greater(t, out, 0.0)
	assert.Equal(t, []string{"B"}, g.Neighbors("A"))
}

func TestSimplePathsRespectsCutoff(t *testing.T) {
	g := Build([]model.Pool{
		pool("p1", "A", "B", 1, 1, 0),
		pool("p2", "B", "C", 1, 1, 0),
		pool("p3", "C", "D", 1, 1, 0),
		pool("p4", "A", "D", 1, 1, 0),
	})

	var got [][]string
	g.SimplePaths("A", "D", 4, func(p []string) bool {
		got = append(got, append([]string(nil), p...))
		return true
	})
	assert.Equal(t, [][]string{{"A", "B", "C", "D"}, {"A", "D"}}, got)

	got = nil
	g.SimplePaths("A", "D", 2, func(p []string) bool {
		got = append(got, append([]string(nil), p...))
		return true
	})
	assert.Equal(t, [][]string{{"A", "D"}}, got)

	assert.Nil(t, g.FirstPath("A", "Z", 4))
	assert.Nil(t, g.FirstPath("A", "A", 4))
}

func TestQuoteComposesHops(t *testing.T) {
	g := Build([]model.Pool{
		pool("p1", "A", "B", 1000, 1000, 300),
		pool("p2", "B", "C", 1000, 1000, 300),
	})
	out, hops := g.Quote([]string{"A", "B", "C"}, 100)
	require.Len(t, hops, 2)

	first := 100 * 0.97 * 1000 / (1000 + 100*0.97)
	second := first * 0.97 * 1000 / (1000 + first*0.97)
	assert.InDelta(t, second, out, 1e-9)
	assert.InDelta(t, first, hops[1].AmountIn, 1e-9)

	out, hops = g.Quote([]string{"A", "C"}, 100)
	assert.Zero(t, out)
	assert.Nil(t, hops)
}
