package dex

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"dexAccel/internal/model"
)

// PairState is the raw on-chain state of a constant-product pair.
type PairState struct {
	Address  common.Address
	Token0   common.Address
	Token1   common.Address
	Reserve0 *big.Int
	Reserve1 *big.Int
}

// TokenMeta holds the ERC20 fields needed to scale reserves.
type TokenMeta struct {
	Address  common.Address
	Decimals uint8
	Symbol   string
}

// TokenMetaCache caches token metadata by address.
type TokenMetaCache struct {
	mu   sync.RWMutex
	data map[common.Address]TokenMeta
}

func NewTokenMetaCache() *TokenMetaCache {
	return &TokenMetaCache{data: make(map[common.Address]TokenMeta)}
}

func (c *TokenMetaCache) Get(address common.Address) (TokenMeta, bool) {
	c.mu.RLock()
	meta, ok := c.data[address]
	c.mu.RUnlock()
	return meta, ok
}

func (c *TokenMetaCache) Set(address common.Address, meta TokenMeta) {
	c.mu.Lock()
	c.data[address] = meta
	c.mu.Unlock()
}

// FetchPairState reads token0, token1 and getReserves from a pair contract.
func FetchPairState(ctx context.Context, caller ethereum.ContractCaller, pair common.Address) (PairState, error) {
	if caller == nil {
		return PairState{}, fmt.Errorf("contract caller is nil")
	}

	pairABI, err := V2PairABI()
	if err != nil {
		return PairState{}, fmt.Errorf("parse pair abi: %w", err)
	}

	state := PairState{Address: pair}

	values, err := callMethod(ctx, caller, pair, pairABI, "token0")
	if err != nil {
		return PairState{}, err
	}
	if state.Token0, err = asAddress(values[0]); err != nil {
		return PairState{}, fmt.Errorf("token0: %w", err)
	}

	values, err = callMethod(ctx, caller, pair, pairABI, "token1")
	if err != nil {
		return PairState{}, err
	}
	if state.Token1, err = asAddress(values[0]); err != nil {
		return PairState{}, fmt.Errorf("token1: %w", err)
	}

	values, err = callMethod(ctx, caller, pair, pairABI, "getReserves")
	if err != nil {
		return PairState{}, err
	}
	if len(values) < 2 {
		return PairState{}, fmt.Errorf("getReserves: expected 3 outputs, got %d", len(values))
	}
	if state.Reserve0, err = asBigInt(values[0]); err != nil {
		return PairState{}, fmt.Errorf("reserve0: %w", err)
	}
	if state.Reserve1, err = asBigInt(values[1]); err != nil {
		return PairState{}, fmt.Errorf("reserve1: %w", err)
	}

	return state, nil
}

// FetchTokenMeta loads decimals and, best effort, the symbol of token.
func FetchTokenMeta(ctx context.Context, caller ethereum.ContractCaller, token common.Address, logger *zap.Logger) (TokenMeta, error) {
	meta := TokenMeta{Address: token}
	if caller == nil {
		return meta, fmt.Errorf("contract caller is nil")
	}

	tokenABI, err := ERC20ABI()
	if err != nil {
		return meta, fmt.Errorf("parse erc20 abi: %w", err)
	}

	values, err := callMethod(ctx, caller, token, tokenABI, "decimals")
	if err != nil {
		return meta, err
	}
	if meta.Decimals, err = asUint8(values[0]); err != nil {
		return meta, fmt.Errorf("decimals: %w", err)
	}

	if values, err := callMethod(ctx, caller, token, tokenABI, "symbol"); err == nil {
		if symbol, ok := values[0].(string); ok {
			meta.Symbol = symbol
		}
	} else if logger != nil {
		logger.Debug("symbol call failed", zap.String("token", token.Hex()), zap.Error(err))
	}

	return meta, nil
}

// LoadPool reads a pair and converts it into a model.Pool with reserves
// scaled by token decimals. Token metadata is cached in tokens when given;
// tokens whose decimals cannot be read are treated as 18-decimal.
func LoadPool(ctx context.Context, caller ethereum.ContractCaller, pair common.Address, feeBps int, tokens *TokenMetaCache, logger *zap.Logger) (model.Pool, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	state, err := FetchPairState(ctx, caller, pair)
	if err != nil {
		return model.Pool{}, fmt.Errorf("pair %s: %w", pair.Hex(), err)
	}

	meta0 := tokenMeta(ctx, caller, state.Token0, tokens, logger)
	meta1 := tokenMeta(ctx, caller, state.Token1, tokens, logger)

	return model.Pool{
		Address:  pair.Hex(),
		Tokens:   []string{state.Token0.Hex(), state.Token1.Hex()},
		Reserves: []float64{ScaleAmount(state.Reserve0, meta0.Decimals), ScaleAmount(state.Reserve1, meta1.Decimals)},
		FeeBps:   feeBps,
	}, nil
}

// ScaleAmount converts a raw token amount into whole units.
func ScaleAmount(raw *big.Int, decimals uint8) float64 {
	if raw == nil {
		return 0
	}
	return decimal.NewFromBigInt(raw, -int32(decimals)).InexactFloat64()
}

func tokenMeta(ctx context.Context, caller ethereum.ContractCaller, token common.Address, cache *TokenMetaCache, logger *zap.Logger) TokenMeta {
	if cache != nil {
		if meta, ok := cache.Get(token); ok {
			return meta
		}
	}
	meta, err := FetchTokenMeta(ctx, caller, token, logger)
	if err != nil {
		logger.Warn("token metadata fetch failed", zap.String("token", token.Hex()), zap.Error(err))
		meta = TokenMeta{Address: token, Decimals: 18}
		return meta
	}
	if cache != nil {
		cache.Set(token, meta)
	}
	return meta
}

func callMethod(ctx context.Context, caller ethereum.ContractCaller, to common.Address, parsed abi.ABI, method string) ([]interface{}, error) {
	data, err := parsed.Pack(method)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	msg := ethereum.CallMsg{To: &to, Data: data}
	resp, err := caller.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	values, err := parsed.Unpack(method, resp)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("unpack %s: no outputs", method)
	}
	return values, nil
}

func asAddress(value interface{}) (common.Address, error) {
	switch v := value.(type) {
	case common.Address:
		return v, nil
	case *common.Address:
		return *v, nil
	default:
		return common.Address{}, fmt.Errorf("unsupported address type %T", value)
	}
}

func asBigInt(value interface{}) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		return new(big.Int).Set(v), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	default:
		return nil, fmt.Errorf("unsupported int type %T", value)
	}
}

func asUint8(value interface{}) (uint8, error) {
	switch v := value.(type) {
	case uint8:
		return v, nil
	case *big.Int:
		return uint8(v.Uint64()), nil
	default:
		return 0, fmt.Errorf("unsupported uint8 type %T", value)
	}
}
