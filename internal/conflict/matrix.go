// Package conflict derives pairwise write conflicts between pending orders.
package conflict

import "dexAccel/internal/model"

// Matrix is a square 0/1 conflict matrix over an order list. It is read
// symmetrically: a pair conflicts when either triangle marks it.
type Matrix [][]int

// Build marks every pair of orders whose write sets intersect. The diagonal
// is always zero.
func Build(orders []model.Order) Matrix {
	n := len(orders)
	writes := make([]map[string]struct{}, n)
	for i, o := range orders {
		set := make(map[string]struct{}, len(o.Writes))
		for _, key := range o.Writes {
			set[key] = struct{}{}
		}
		writes[i] = set
	}

	m := New(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if intersects(writes[i], writes[j]) {
				m[i][j] = 1
				m[j][i] = 1
			}
		}
	}
	return m
}

// New returns an n×n matrix with no conflicts.
func New(n int) Matrix {
	m := make(Matrix, n)
	for i := range m {
		m[i] = make([]int, n)
	}
	return m
}

// FromRows adopts a caller-supplied matrix. Rows are copied and the result
// is symmetrized with a zero diagonal.
func FromRows(rows [][]int) Matrix {
	n := len(rows)
	m := New(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n && j < len(rows[i]); j++ {
			if i != j && rows[i][j] != 0 {
				m[i][j] = 1
				m[j][i] = 1
			}
		}
	}
	return m
}

// Size is the number of orders covered.
func (m Matrix) Size() int { return len(m) }

// Conflicts reports whether orders i and j may not share a slot.
func (m Matrix) Conflicts(i, j int) bool {
	if i == j || i < 0 || j < 0 || i >= len(m) || j >= len(m) {
		return false
	}
	return m[i][j] != 0 || m[j][i] != 0
}

// Pairs counts unordered conflicting pairs.
func (m Matrix) Pairs() int {
	count := 0
	for i := range m {
		for j := i + 1; j < len(m); j++ {
			if m.Conflicts(i, j) {
				count++
			}
		}
	}
	return count
}

// Rows returns a copy suitable for serialization.
func (m Matrix) Rows() [][]int {
	out := make([][]int, len(m))
	for i, row := range m {
		out[i] = append([]int(nil), row...)
	}
	return out
}

func intersects(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for key := range a {
		if _, ok := b[key]; ok {
			return true
		}
	}
	return false
}
