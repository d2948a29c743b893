package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	DefaultAmountIn = 1000.0
	DefaultMaxHops  = 3
)

// ArbitrageRequest asks for the best swap path between two tokens.
type ArbitrageRequest struct {
	TokenIn  string  `json:"token_in"`
	TokenOut string  `json:"token_out"`
	Pools    []Pool  `json:"pools"`
	AmountIn float64 `json:"amount_in"`
	MaxHops  int     `json:"max_hops"`
}

// UnmarshalJSON fills amount_in and max_hops defaults.
func (r *ArbitrageRequest) UnmarshalJSON(data []byte) error {
	type Alias ArbitrageRequest
	a := Alias{AmountIn: DefaultAmountIn, MaxHops: DefaultMaxHops}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*r = ArbitrageRequest(a)
	return nil
}

// Validate rejects payloads the pathfinder cannot be handed.
func (r ArbitrageRequest) Validate() error {
	if strings.TrimSpace(r.TokenIn) == "" || strings.TrimSpace(r.TokenOut) == "" {
		return fmt.Errorf("%w: token_in and token_out are required", ErrInvalidRequest)
	}
	if len(r.Pools) == 0 {
		return fmt.Errorf("%w: at least one pool is required", ErrInvalidRequest)
	}
	for _, pool := range r.Pools {
		if err := pool.Validate(); err != nil {
			return err
		}
	}
	if r.AmountIn < 0 {
		return fmt.Errorf("%w: amount_in must not be negative", ErrInvalidRequest)
	}
	if r.MaxHops < 0 {
		return fmt.Errorf("%w: max_hops must not be negative", ErrInvalidRequest)
	}
	return nil
}

// TransactionRef is one swap leg of an execution plan.
type TransactionRef struct {
	Pool   string  `json:"pool"`
	Action string  `json:"action"`
	Amount float64 `json:"amount"`
}

// ArbitrageComparison reports the baseline route against the optimized one.
type ArbitrageComparison struct {
	BaselinePath    []string `json:"baseline_path"`
	BaselineProfit  float64  `json:"baseline_profit"`
	BaselineTimeMs  float64  `json:"baseline_time_ms"`
	OptimizedPath   []string `json:"optimized_path"`
	OptimizedProfit float64  `json:"optimized_profit"`
	OptimizedTimeMs float64  `json:"optimized_time_ms"`
	ImprovementPct  float64  `json:"improvement_pct"`
	Winner          string   `json:"winner"`
}

// ArbitrageMetrics describes the search effort.
type ArbitrageMetrics struct {
	PathsEvaluated   int     `json:"paths_evaluated"`
	MaxHops          int     `json:"max_hops"`
	RequestedMaxHops int     `json:"requested_max_hops"`
	GraphNodes       int     `json:"graph_nodes"`
	GraphEdges       int     `json:"graph_edges"`
	SolverMs         float64 `json:"solver_ms"`
}

// ArbitrageResponse is the execution plan for a swap.
type ArbitrageResponse struct {
	OptimalPath      []string            `json:"optimal_path"`
	ExpectedProfit   float64             `json:"expected_profit"`
	Transactions     []TransactionRef    `json:"transactions"`
	SimulationTimeMs float64             `json:"simulation_time_ms"`
	BaselineProfit   float64             `json:"baseline_profit"`
	Comparison       ArbitrageComparison `json:"comparison"`
	Metrics          ArbitrageMetrics    `json:"metrics"`
}
