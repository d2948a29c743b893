// Package poolsource supplies pool snapshots to the arbitrage endpoints:
// a built-in demo set, a snapshot file, or live on-chain pairs, optionally
// behind a TTL cache that falls back to the demo set.
package poolsource

import (
	"context"

	"dexAccel/internal/model"
	"dexAccel/internal/storage"
)

// Provider returns the current pool list.
type Provider interface {
	Pools(ctx context.Context) ([]model.Pool, error)
}

// Source names used in logs and metrics.
const (
	SourceStatic = "static"
	SourceFile   = "file"
	SourceChain  = "chain"
)

// Demo token addresses.
const (
	USDC = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
	WETH = "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"
	USDT = "0xdAC17F958D2ee523a2206206994597C13D831ec7"
)

// DemoPools is the fallback dataset served when no live source answers.
func DemoPools() []model.Pool {
	return []model.Pool{
		{
			Address:  "0xB4e16d0168e52d35CaCD2c6185b44281Ec28C9Dc",
			Tokens:   []string{USDC, WETH},
			Reserves: []float64{42_000_000, 12_000},
			FeeBps:   30,
		},
		{
			Address:  "0x0d4a11d5EEaaC28EC3F61d100daF4d40471f1852",
			Tokens:   []string{WETH, USDT},
			Reserves: []float64{9_500, 33_500_000},
			FeeBps:   30,
		},
		{
			Address:  "0x3041CbD36888bECc7bbCBc0045E3B1f144466f5f",
			Tokens:   []string{USDC, USDT},
			Reserves: []float64{2_500_000, 2_500_000},
			FeeBps:   5,
		},
	}
}

// StaticProvider serves a fixed pool list.
type StaticProvider struct {
	pools []model.Pool
}

// NewStaticProvider serves pools, or the demo dataset when pools is empty.
func NewStaticProvider(pools []model.Pool) *StaticProvider {
	if len(pools) == 0 {
		pools = DemoPools()
	}
	return &StaticProvider{pools: pools}
}

func (p *StaticProvider) Pools(ctx context.Context) ([]model.Pool, error) {
	return clonePools(p.pools), nil
}

// FileProvider reads pools from a snapshot file on every call.
type FileProvider struct {
	reader storage.PoolReader
}

func NewFileProvider(reader storage.PoolReader) *FileProvider {
	return &FileProvider{reader: reader}
}

func (p *FileProvider) Pools(ctx context.Context) ([]model.Pool, error) {
	return p.reader.ReadPools(ctx)
}

func clonePools(pools []model.Pool) []model.Pool {
	out := make([]model.Pool, len(pools))
	for i, p := range pools {
		out[i] = model.Pool{
			Address:  p.Address,
			Tokens:   append([]string(nil), p.Tokens...),
			Reserves: append([]float64(nil), p.Reserves...),
			FeeBps:   p.FeeBps,
		}
	}
	return out
}
