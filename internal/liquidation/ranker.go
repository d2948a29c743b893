// Package liquidation selects which at-risk positions to liquidate first.
package liquidation

import (
	"sort"

	"dexAccel/internal/compare"
	"dexAccel/internal/model"
)

// MaxSelected caps how many positions one plan liquidates.
const MaxSelected = 5

// BaseRecoveryRate is the recovery assumed before the liquidation bonus.
const BaseRecoveryRate = 0.9

// Selection is an ordered subset of positions with its estimated recovery.
type Selection struct {
	Positions []model.Position
	Recovery  float64
}

// IDs returns the selected position ids in priority order.
func (s Selection) IDs() []string {
	ids := make([]string, len(s.Positions))
	for i, p := range s.Positions {
		ids[i] = p.ID
	}
	return ids
}

// Ranker implements compare.Evaluator over position selections.
type Ranker struct{}

var _ compare.Evaluator[[]model.Position, Selection] = Ranker{}

// Baseline takes the first positions in input order without assessing risk.
func (Ranker) Baseline(positions []model.Position) Selection {
	k := limit(len(positions))
	picked := append([]model.Position(nil), positions[:k]...)
	return Selection{Positions: picked, Recovery: Recovery(picked)}
}

// Optimized takes the lowest health factors first. Equal health factors
// keep their input order.
func (Ranker) Optimized(positions []model.Position) Selection {
	sorted := append([]model.Position(nil), positions...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].HealthFactor < sorted[j].HealthFactor
	})
	picked := sorted[:limit(len(sorted))]
	return Selection{Positions: picked, Recovery: Recovery(picked)}
}

func (Ranker) Metric(s Selection) float64 { return s.Recovery }

func (Ranker) Orientation() compare.Orientation { return compare.HigherIsBetter }

// Recovery is the mean of BaseRecoveryRate plus each position's bonus. It is
// a rate proxy, not a collateral valuation. An empty set recovers 0.
func Recovery(positions []model.Position) float64 {
	if len(positions) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range positions {
		sum += BaseRecoveryRate + p.LiquidationBonus
	}
	return sum / float64(len(positions))
}

func limit(n int) int {
	if n > MaxSelected {
		return MaxSelected
	}
	return n
}
