package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dexAccel/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS dex_pairs (
	pair_address TEXT PRIMARY KEY,
	fee_bps      INTEGER NOT NULL DEFAULT 300,
	label        TEXT NOT NULL DEFAULT '',
	enabled      BOOLEAN NOT NULL DEFAULT TRUE,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Store is the Postgres-backed pair registry.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// EnsureSchema creates the registry table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create dex_pairs: %w", err)
	}
	return nil
}

// ListPairs returns enabled pairs ordered by address.
func (s *Store) ListPairs(ctx context.Context) ([]model.PairRef, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT pair_address, fee_bps, label
		FROM dex_pairs
		WHERE enabled
		ORDER BY pair_address
	`)
	if err != nil {
		return nil, fmt.Errorf("query dex_pairs: %w", err)
	}
	pairs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.PairRef, error) {
		var p model.PairRef
		err := row.Scan(&p.Address, &p.FeeBps, &p.Label)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan dex_pairs: %w", err)
	}
	return pairs, nil
}

// UpsertPairs inserts or updates registry entries and re-enables them.
func (s *Store) UpsertPairs(ctx context.Context, pairs []model.PairRef) error {
	if len(pairs) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, p := range pairs {
		batch.Queue(`
			INSERT INTO dex_pairs (pair_address, fee_bps, label, enabled, created_at, updated_at)
			VALUES ($1, $2, $3, TRUE, now(), now())
			ON CONFLICT (pair_address)
			DO UPDATE SET
				fee_bps = EXCLUDED.fee_bps,
				label = EXCLUDED.label,
				enabled = TRUE,
				updated_at = now()
		`, pairKey(p.Address), p.FeeBps, p.Label)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range pairs {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// DisablePair hides a pair from ListPairs. It reports whether the pair existed.
func (s *Store) DisablePair(ctx context.Context, address string) (bool, error) {
	if !common.IsHexAddress(address) {
		return false, fmt.Errorf("pair address %q is not a hex address", address)
	}
	var updated string
	row := s.pool.QueryRow(ctx, `
		UPDATE dex_pairs SET enabled = FALSE, updated_at = now()
		WHERE pair_address = $1
		RETURNING pair_address
	`, pairKey(address))
	if err := row.Scan(&updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// pairKey is the stored form of a pair address: EIP-55 checksummed.
func pairKey(address string) string {
	return common.HexToAddress(address).Hex()
}
