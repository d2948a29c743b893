// Package graph turns pool snapshots into a directed token graph priced with
// the constant-product rule.
package graph

import "dexAccel/internal/model"

// Edge is one swap direction through a pool.
type Edge struct {
	From          string
	To            string
	Pool          string
	ReserveIn     float64
	ReserveOut    float64
	FeeMultiplier float64
}

// Graph holds directed edges keyed by source token. Neighbour order follows
// the first appearance of each token pair in the pool list.
type Graph struct {
	nodes     []string
	nodeIndex map[string]struct{}
	adj       map[string][]string
	edges     map[string]map[string][]Edge
	edgeCount int
}

// Build inserts two directed edges per pool. Pools are not validated here;
// zero reserves are kept and priced as zero output.
func Build(pools []model.Pool) *Graph {
	g := &Graph{
		nodeIndex: make(map[string]struct{}),
		adj:       make(map[string][]string),
		edges:     make(map[string]map[string][]Edge),
	}
	for _, p := range pools {
		if len(p.Tokens) < 2 || len(p.Reserves) < 2 {
			continue
		}
		f := p.FeeMultiplier()
		g.addEdge(Edge{From: p.Tokens[0], To: p.Tokens[1], Pool: p.Address, ReserveIn: p.Reserves[0], ReserveOut: p.Reserves[1], FeeMultiplier: f})
		g.addEdge(Edge{From: p.Tokens[1], To: p.Tokens[0], Pool: p.Address, ReserveIn: p.Reserves[1], ReserveOut: p.Reserves[0], FeeMultiplier: f})
	}
	return g
}

func (g *Graph) addEdge(e Edge) {
	g.addNode(e.From)
	g.addNode(e.To)
	out := g.edges[e.From]
	if out == nil {
		out = make(map[string][]Edge)
		g.edges[e.From] = out
	}
	if _, ok := out[e.To]; !ok {
		g.adj[e.From] = append(g.adj[e.From], e.To)
	}
	out[e.To] = append(out[e.To], e)
	g.edgeCount++
}

func (g *Graph) addNode(token string) {
	if _, ok := g.nodeIndex[token]; ok {
		return
	}
	g.nodeIndex[token] = struct{}{}
	g.nodes = append(g.nodes, token)
}

// HasNode reports whether token appears in any pool.
func (g *Graph) HasNode(token string) bool {
	_, ok := g.nodeIndex[token]
	return ok
}

// Nodes returns tokens in insertion order.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// NodeCount returns the number of distinct tokens.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of directed edges (two per pool).
func (g *Graph) EdgeCount() int { return g.edgeCount }

// Neighbors returns the distinct tokens reachable in one hop from token.
func (g *Graph) Neighbors(token string) []string {
	return g.adj[token]
}

// Edges returns every pool edge from -> to, in pool order.
func (g *Graph) Edges(from, to string) []Edge {
	return g.edges[from][to]
}

// HasEdge reports whether at least one pool connects from -> to.
func (g *Graph) HasEdge(from, to string) bool {
	return len(g.edges[from][to]) > 0
}
