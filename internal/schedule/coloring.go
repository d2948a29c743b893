// Package schedule packs pending orders into execution slots so that no two
// conflicting orders run in the same slot.
package schedule

import (
	"fmt"

	"dexAccel/internal/compare"
	"dexAccel/internal/conflict"
	"dexAccel/internal/model"
)

// Input is one scheduling problem.
type Input struct {
	Orders   []model.Order
	Conflict conflict.Matrix
}

// Plan assigns every order index to a zero-based slot.
type Plan struct {
	Assignment []int
	Slots      int
	// Remaining counts conflicting pairs that ended up sharing a slot.
	Remaining int
}

// Scheduler implements compare.Evaluator over slot plans.
type Scheduler struct{}

var _ compare.Evaluator[Input, Plan] = Scheduler{}

// Baseline runs orders sequentially, one per slot. An empty order list still
// occupies one slot.
func (Scheduler) Baseline(in Input) Plan {
	n := len(in.Orders)
	assignment := make([]int, n)
	for i := range assignment {
		assignment[i] = i
	}
	slots := n
	if slots < 1 {
		slots = 1
	}
	return Plan{Assignment: assignment, Slots: slots}
}

// Optimized colors the conflict graph greedily in input order.
func (Scheduler) Optimized(in Input) Plan {
	assignment := Color(in.Conflict, len(in.Orders))
	slots := 1
	for _, c := range assignment {
		if c+1 > slots {
			slots = c + 1
		}
	}
	return Plan{Assignment: assignment, Slots: slots, Remaining: Remaining(in.Conflict, assignment)}
}

func (Scheduler) Metric(p Plan) float64 { return float64(p.Slots) }

func (Scheduler) Orientation() compare.Orientation { return compare.LowerIsBetter }

// Color gives each of the first n orders the smallest color not used by an
// already colored conflicting order.
func Color(m conflict.Matrix, n int) []int {
	colors := make([]int, n)
	for u := range colors {
		colors[u] = -1
	}
	for u := 0; u < n; u++ {
		used := make(map[int]struct{})
		for v := 0; v < n; v++ {
			if colors[v] >= 0 && m.Conflicts(u, v) {
				used[colors[v]] = struct{}{}
			}
		}
		c := 0
		for {
			if _, taken := used[c]; !taken {
				break
			}
			c++
		}
		colors[u] = c
	}
	return colors
}

// Remaining counts conflicting pairs placed in the same slot.
func Remaining(m conflict.Matrix, assignment []int) int {
	count := 0
	for i := range assignment {
		for j := i + 1; j < len(assignment); j++ {
			if assignment[i] == assignment[j] && m.Conflicts(i, j) {
				count++
			}
		}
	}
	return count
}

// SlotID names the zero-based slot c.
func SlotID(c int) string {
	return fmt.Sprintf("slot_%d", c+1)
}

// Slots groups order ids by slot. Orders keep their input order within a
// slot and an empty order list yields a single empty slot.
func Slots(orders []model.Order, assignment []int) map[string][]string {
	if len(orders) == 0 {
		return map[string][]string{SlotID(0): {}}
	}
	out := make(map[string][]string)
	for i, o := range orders {
		id := SlotID(assignment[i])
		out[id] = append(out[id], o.ID)
	}
	return out
}
