// Package network reports connectivity and head-of-chain figures for the
// configured RPC endpoint.
package network

import (
	"context"
	"math/big"
	"time"

	"go.uber.org/zap"

	"dexAccel/internal/model"
)

// DefaultTimeout bounds one status poll.
const DefaultTimeout = 5 * time.Second

// ChainReader is the subset of the chain client used for status.
type ChainReader interface {
	ChainID(ctx context.Context) (*big.Int, error)
	LatestBlockNumber(ctx context.Context) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
}

// StatusProvider polls a node for network statistics.
type StatusProvider struct {
	chain   ChainReader
	timeout time.Duration
	logger  *zap.Logger
}

func NewStatusProvider(chain ChainReader, timeout time.Duration, logger *zap.Logger) *StatusProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &StatusProvider{chain: chain, timeout: timeout, logger: logger}
}

// Status never fails: an unreachable node is reported as disconnected with
// the reason in Message. Gas price is optional.
func (p *StatusProvider) Status(ctx context.Context) model.NetworkStats {
	if p.chain == nil {
		return disconnected("rpc not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	chainID, err := p.chain.ChainID(ctx)
	if err != nil {
		p.logger.Warn("chain id query failed", zap.Error(err))
		return disconnected(err.Error())
	}
	block, err := p.chain.LatestBlockNumber(ctx)
	if err != nil {
		p.logger.Warn("block number query failed", zap.Error(err))
		return disconnected(err.Error())
	}

	id := chainID.Uint64()
	stats := model.NetworkStats{
		Connected:   true,
		ChainID:     &id,
		BlockNumber: &block,
	}

	if gas, err := p.chain.SuggestGasPrice(ctx); err == nil && gas.IsUint64() {
		price := gas.Uint64()
		stats.GasPrice = &price
	} else if err != nil {
		p.logger.Debug("gas price query failed", zap.Error(err))
	}
	return stats
}

func disconnected(msg string) model.NetworkStats {
	return model.NetworkStats{Connected: false, Message: &msg}
}
