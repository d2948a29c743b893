package poolsource

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"dexAccel/internal/dex"
	"dexAccel/internal/model"
)

// ErrNoPairs is returned when the registry has nothing to poll.
var ErrNoPairs = errors.New("no pairs registered")

// ChainProvider reads reserves of registered constant-product pairs.
type ChainProvider struct {
	caller   ethereum.ContractCaller
	registry Registry
	tokens   *dex.TokenMetaCache
	logger   *zap.Logger
}

func NewChainProvider(caller ethereum.ContractCaller, registry Registry, logger *zap.Logger) *ChainProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChainProvider{
		caller:   caller,
		registry: registry,
		tokens:   dex.NewTokenMetaCache(),
		logger:   logger,
	}
}

// Pools loads every registered pair. Pairs that fail to load are skipped;
// the call fails only when none loads.
func (p *ChainProvider) Pools(ctx context.Context) ([]model.Pool, error) {
	pairs, err := p.registry.ListPairs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pairs: %w", err)
	}
	if len(pairs) == 0 {
		return nil, ErrNoPairs
	}

	pools := make([]model.Pool, 0, len(pairs))
	var lastErr error
	for _, ref := range pairs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pool, err := dex.LoadPool(ctx, p.caller, common.HexToAddress(ref.Address), ref.FeeBps, p.tokens, p.logger)
		if err != nil {
			lastErr = err
			p.logger.Warn("pair load failed", zap.String("pair", ref.Address), zap.Error(err))
			continue
		}
		pools = append(pools, pool)
	}

	if len(pools) == 0 {
		return nil, fmt.Errorf("all %d pairs failed: %w", len(pairs), lastErr)
	}
	return pools, nil
}
