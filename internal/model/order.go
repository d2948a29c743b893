package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Order is a pending order with the state keys it touches.
type Order struct {
	ID      string   `json:"id"`
	Type    string   `json:"type"`
	Pair    string   `json:"pair"`
	Account string   `json:"account"`
	Reads   []string `json:"reads"`
	Writes  []string `json:"writes"`
}

// UnmarshalJSON defaults the order type to swap.
func (o *Order) UnmarshalJSON(data []byte) error {
	type Alias Order
	a := Alias{Type: "swap"}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*o = Order(a)
	return nil
}

// SchedulerRequest carries the orders to place into execution slots.
type SchedulerRequest struct {
	PendingOrders  []Order `json:"pending_orders"`
	ConflictMatrix [][]int `json:"conflict_matrix,omitempty"`
}

// Validate checks id uniqueness and the shape of a caller-supplied matrix.
func (r SchedulerRequest) Validate() error {
	seen := make(map[string]struct{}, len(r.PendingOrders))
	for i, order := range r.PendingOrders {
		if strings.TrimSpace(order.ID) == "" {
			return fmt.Errorf("%w: order %d has no id", ErrInvalidRequest, i)
		}
		if _, ok := seen[order.ID]; ok {
			return fmt.Errorf("%w: duplicate order id %s", ErrInvalidRequest, order.ID)
		}
		seen[order.ID] = struct{}{}
	}

	if r.ConflictMatrix == nil {
		return nil
	}
	n := len(r.PendingOrders)
	if len(r.ConflictMatrix) != n {
		return fmt.Errorf("%w: conflict_matrix has %d rows, want %d", ErrInvalidRequest, len(r.ConflictMatrix), n)
	}
	for i, row := range r.ConflictMatrix {
		if len(row) != n {
			return fmt.Errorf("%w: conflict_matrix row %d has %d columns, want %d", ErrInvalidRequest, i, len(row), n)
		}
		for j, v := range row {
			if v != 0 && v != 1 {
				return fmt.Errorf("%w: conflict_matrix[%d][%d] must be 0 or 1", ErrInvalidRequest, i, j)
			}
		}
	}
	return nil
}

// SchedulerComparison reports sequential execution against slot coloring.
type SchedulerComparison struct {
	BaselineSlots               int     `json:"baseline_slots"`
	BaselineConflictsRemaining  int     `json:"baseline_conflicts_remaining"`
	OptimizedSlots              int     `json:"optimized_slots"`
	OptimizedConflictsRemaining int     `json:"optimized_conflicts_remaining"`
	SlotsReductionPct           float64 `json:"slots_reduction_pct"`
	Winner                      string  `json:"winner"`
}

// SchedulerMetrics describes the conflict graph that was colored.
type SchedulerMetrics struct {
	GraphNodes    int     `json:"graph_nodes"`
	GraphEdges    int     `json:"graph_edges"`
	ColoringSlots int     `json:"coloring_slots"`
	BaselineSlots int     `json:"baseline_slots"`
	SolverMs      float64 `json:"solver_ms"`
}

// SchedulerResponse maps slots to the orders executed in them.
type SchedulerResponse struct {
	Schedule          map[string][]string `json:"schedule"`
	TotalSlots        int                 `json:"total_slots"`
	ConflictReduction string              `json:"conflict_reduction"`
	ConflictMatrix    [][]int             `json:"conflict_matrix"`
	TotalConflicts    int                 `json:"total_conflicts"`
	Comparison        SchedulerComparison `json:"comparison"`
	Metrics           SchedulerMetrics    `json:"metrics"`
}
