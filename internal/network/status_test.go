package network

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChain struct {
	chainErr error
	gasErr   error
	block    uint64
}

func (f fakeChain) ChainID(ctx context.Context) (*big.Int, error) {
	if f.chainErr != nil {
		return nil, f.chainErr
	}
	return big.NewInt(688688), nil
}

func (f fakeChain) LatestBlockNumber(ctx context.Context) (uint64, error) {
	return f.block, nil
}

func (f fakeChain) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	if f.gasErr != nil {
		return nil, f.gasErr
	}
	return big.NewInt(1_000_000_000), nil
}

func TestStatusConnected(t *testing.T) {
	stats := NewStatusProvider(fakeChain{block: 42}, time.Second, nil).Status(context.Background())
	require.True(t, stats.Connected)
	assert.Equal(t, uint64(688688), *stats.ChainID)
	assert.Equal(t, uint64(42), *stats.BlockNumber)
	assert.Equal(t, uint64(1_000_000_000), *stats.GasPrice)
	assert.Nil(t, stats.Message)
}

func TestStatusWithoutGasPrice(t *testing.T) {
	stats := NewStatusProvider(fakeChain{block: 1, gasErr: errors.New("method not found")}, 0, nil).Status(context.Background())
	assert.True(t, stats.Connected)
	assert.Nil(t, stats.GasPrice)
}

func TestStatusDisconnected(t *testing.T) {
	stats := NewStatusProvider(fakeChain{chainErr: errors.New("dial tcp: refused")}, 0, nil).Status(context.Background())
	assert.False(t, stats.Connected)
	require.NotNil(t, stats.Message)
	assert.Contains(t, *stats.Message, "refused")
	assert.Nil(t, stats.ChainID)
}

func TestStatusWithoutChain(t *testing.T) {
	stats := NewStatusProvider(nil, 0, nil).Status(context.Background())
	assert.False(t, stats.Connected)
	assert.Equal(t, "rpc not configured", *stats.Message)
}
