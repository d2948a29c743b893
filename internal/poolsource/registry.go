package poolsource

import (
	"context"

	"dexAccel/internal/model"
)

// Registry lists the on-chain pairs to poll. The Postgres store satisfies it.
type Registry interface {
	ListPairs(ctx context.Context) ([]model.PairRef, error)
}

// StaticRegistry is a registry configured up front.
type StaticRegistry []model.PairRef

func (r StaticRegistry) ListPairs(ctx context.Context) ([]model.PairRef, error) {
	return append([]model.PairRef(nil), r...), nil
}

// ParsePairs builds registry entries from addresses sharing one fee.
func ParsePairs(addresses []string, feeBps int) (StaticRegistry, error) {
	out := make(StaticRegistry, 0, len(addresses))
	for _, addr := range addresses {
		ref := model.PairRef{Address: addr, FeeBps: feeBps}
		if err := ref.Validate(); err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, nil
}
