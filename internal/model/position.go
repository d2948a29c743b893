package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// DefaultLiquidationBonus is applied when a position omits its bonus.
const DefaultLiquidationBonus = 0.1

// Position is a collateralized debt position. Lower health means more at risk.
type Position struct {
	ID               string   `json:"position_id"`
	Collateral       []string `json:"collateral"`
	Debt             []string `json:"debt"`
	HealthFactor     float64  `json:"health_factor"`
	LiquidationBonus float64  `json:"liquidation_bonus"`
}

// UnmarshalJSON defaults the liquidation bonus.
func (p *Position) UnmarshalJSON(data []byte) error {
	type Alias Position
	a := Alias{LiquidationBonus: DefaultLiquidationBonus}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = Position(a)
	return nil
}

// LiquidationRequest lists the positions eligible for liquidation.
type LiquidationRequest struct {
	Positions           []Position             `json:"positions_to_liquidate"`
	AvailableLiquidity  map[string]float64     `json:"available_liquidity,omitempty"`
	ProtocolConstraints map[string]interface{} `json:"protocol_constraints,omitempty"`
}

// Validate rejects positions without ids or with non-finite risk figures.
func (r LiquidationRequest) Validate() error {
	for i, pos := range r.Positions {
		if strings.TrimSpace(pos.ID) == "" {
			return fmt.Errorf("%w: position %d has no position_id", ErrInvalidRequest, i)
		}
		if math.IsNaN(pos.HealthFactor) || math.IsInf(pos.HealthFactor, 0) {
			return fmt.Errorf("%w: position %s health_factor is not finite", ErrInvalidRequest, pos.ID)
		}
		if math.IsNaN(pos.LiquidationBonus) || math.IsInf(pos.LiquidationBonus, 0) {
			return fmt.Errorf("%w: position %s liquidation_bonus is not finite", ErrInvalidRequest, pos.ID)
		}
	}
	return nil
}

// LiquidationStep is one prioritized action of a liquidation plan.
type LiquidationStep struct {
	Position string `json:"position"`
	Action   string `json:"action"`
	Priority int    `json:"priority"`
}

// LiquidationComparison reports first-K selection against risk-ranked selection.
type LiquidationComparison struct {
	BaselineRecovery  float64  `json:"baseline_recovery"`
	BaselineSelected  []string `json:"baseline_selected"`
	OptimizedRecovery float64  `json:"optimized_recovery"`
	OptimizedSelected []string `json:"optimized_selected"`
	ImprovementPct    float64  `json:"improvement_pct"`
	Winner            string   `json:"winner"`
}

// LiquidationMetrics describes the ranking effort.
type LiquidationMetrics struct {
	PositionsEvaluated int     `json:"positions_evaluated"`
	PositionsSelected  int     `json:"positions_selected"`
	SolverMs           float64 `json:"solver_ms"`
}

// LiquidationResponse is the prioritized liquidation plan.
type LiquidationResponse struct {
	SelectedPositions []string              `json:"selected_positions"`
	Strategy          []LiquidationStep     `json:"strategy"`
	EstimatedRecovery float64               `json:"estimated_recovery"`
	SimulationTimeMs  float64               `json:"simulation_time_ms"`
	Comparison        LiquidationComparison `json:"comparison"`
	Metrics           LiquidationMetrics    `json:"metrics"`
}
