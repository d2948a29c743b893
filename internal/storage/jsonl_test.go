package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dexAccel/internal/model"
)

func TestJsonlRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap", "pools.jsonl")
	store := NewJsonlStorage(path)
	pools := []model.Pool{
		{Address: "0x1", Tokens: []string{"A", "B"}, Reserves: []float64{10, 20}, FeeBps: 30},
		{Address: "0x2", Tokens: []string{"B", "C"}, Reserves: []float64{5, 7}, FeeBps: 0},
	}
	require.NoError(t, store.PutPools(context.Background(), pools))
	require.NoError(t, store.PutPools(context.Background(), pools[:1]))

	got, err := store.ReadPools(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, pools[1], got[1])
	assert.Equal(t, 0, got[1].FeeBps)
}

func TestDecodePoolsArrayAppliesDefaultFee(t *testing.T) {
	pools, err := DecodePools([]byte(`[{"address":"p","tokens":["A","B"],"reserves":[1,2]}]`))
	require.NoError(t, err)
	require.Len(t, pools, 1)
	assert.Equal(t, model.DefaultFeeBps, pools[0].FeeBps)
}

func TestDecodePoolsRejectsMalformed(t *testing.T) {
	_, err := DecodePools([]byte(`{"address":"p","tokens":["A"],"reserves":[1,2]}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidRequest))

	_, err = DecodePools([]byte("{not json}\n"))
	require.Error(t, err)
}

func TestDecodePoolsEmpty(t *testing.T) {
	pools, err := DecodePools([]byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, pools)
}

func TestReadPoolsMissingFile(t *testing.T) {
	_, err := NewJsonlStorage(filepath.Join(t.TempDir(), "missing.jsonl")).ReadPools(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReadPoolsLatestSnapshotWins(t *testing.T) {
	store := NewJsonlStorage(filepath.Join(t.TempDir(), "pools.jsonl"))
	ctx := context.Background()

	first := []model.Pool{
		{Address: "0xab", Tokens: []string{"A", "B"}, Reserves: []float64{1000, 5000}, FeeBps: 30},
		{Address: "0xbc", Tokens: []string{"B", "C"}, Reserves: []float64{10, 10}, FeeBps: 30},
	}
	second := []model.Pool{
		{Address: "0xAB", Tokens: []string{"A", "B"}, Reserves: []float64{1000, 1000}, FeeBps: 30},
	}
	require.NoError(t, store.PutPools(ctx, first))
	require.NoError(t, store.PutPools(ctx, second))

	pools, err := store.ReadPools(ctx)
	require.NoError(t, err)
	require.Len(t, pools, 2)
	assert.Equal(t, second[0], pools[0])
	assert.Equal(t, first[1], pools[1])
}
