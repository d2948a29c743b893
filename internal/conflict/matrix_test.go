package conflict

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dexAccel/internal/model"
)

func TestBuildThreeOrders(t *testing.T) {
	orders := []model.Order{
		{ID: "o1", Writes: []string{"pool:weth-usdc"}},
		{ID: "o2", Writes: []string{"pool:weth-usdc", "acct:b"}},
		{ID: "o3", Writes: []string{"pool:usdt-usdc"}},
	}
	m := Build(orders)
	assert.Equal(t, [][]int{{0, 1, 0}, {1, 0, 0}, {0, 0, 0}}, m.Rows())
	assert.Equal(t, 1, m.Pairs())
	assert.True(t, m.Conflicts(0, 1))
	assert.True(t, m.Conflicts(1, 0))
	assert.False(t, m.Conflicts(0, 2))
}

func TestBuildIgnoresReads(t *testing.T) {
	orders := []model.Order{
		{ID: "a", Reads: []string{"k"}, Writes: []string{"x"}},
		{ID: "b", Reads: []string{"k"}, Writes: []string{"y"}},
	}
	assert.Zero(t, Build(orders).Pairs())
}

func TestBuildDuplicateWriteKeysKeepDiagonalZero(t *testing.T) {
	orders := []model.Order{{ID: "a", Writes: []string{"k", "k"}}}
	assert.Equal(t, [][]int{{0}}, Build(orders).Rows())
}

func TestBuildEmpty(t *testing.T) {
	m := Build(nil)
	assert.Zero(t, m.Size())
	assert.Zero(t, m.Pairs())
	assert.Equal(t, [][]int{}, m.Rows())
}

func TestFromRowsSymmetrizes(t *testing.T) {
	m := FromRows([][]int{
		{1, 1, 0},
		{0, 0, 0},
		{0, 1, 0},
	})
	assert.Equal(t, [][]int{{0, 1, 0}, {1, 0, 1}, {0, 1, 0}}, m.Rows())
	assert.Equal(t, 2, m.Pairs())
}

func TestConflictsOutOfRange(t *testing.T) {
	m := New(2)
	assert.False(t, m.Conflicts(-1, 0))
	assert.False(t, m.Conflicts(0, 5))
}
