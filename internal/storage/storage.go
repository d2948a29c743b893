package storage

import (
	"context"

	"dexAccel/internal/model"
)

// PoolSink persists pool snapshots.
type PoolSink interface {
	PutPools(ctx context.Context, pools []model.Pool) error
}

// PoolReader loads a pool snapshot.
type PoolReader interface {
	ReadPools(ctx context.Context) ([]model.Pool, error)
}
