package storage

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"dexAccel/internal/model"
)

const maxLineBytes = 1 << 20

// JsonlStorage keeps pool snapshots in a file. Writes append one pool per
// line; reads accept the same JSONL layout or a single JSON array and return
// the latest record per pool address.
type JsonlStorage struct {
	path string
	mu   sync.Mutex
}

func NewJsonlStorage(path string) *JsonlStorage {
	return &JsonlStorage{path: path}
}

// Path returns the backing file path.
func (s *JsonlStorage) Path() string { return s.path }

// PutPools appends pools as JSON lines.
func (s *JsonlStorage) PutPools(ctx context.Context, pools []model.Pool) error {
	if len(pools) == 0 {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, pool := range pools {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := json.Marshal(pool)
		if err != nil {
			return fmt.Errorf("marshal pool: %w", err)
		}
		if _, err := writer.Write(line); err != nil {
			return fmt.Errorf("write pool: %w", err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("write newline: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	return nil
}

// ReadPools loads every pool in the file and validates each one.
func (s *JsonlStorage) ReadPools(ctx context.Context) ([]model.Pool, error) {
	s.mu.Lock()
	data, err := os.ReadFile(s.path)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("read pool file: %w", err)
	}

	pools, err := DecodePools(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return pools, ctx.Err()
}

// DecodePools parses a JSON array of pools or one pool per line.
func DecodePools(data []byte) ([]model.Pool, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var pools []model.Pool
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &pools); err != nil {
			return nil, fmt.Errorf("decode pool array: %w", err)
		}
	} else {
		scanner := bufio.NewScanner(bytes.NewReader(trimmed))
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
		line := 0
		for scanner.Scan() {
			line++
			raw := bytes.TrimSpace(scanner.Bytes())
			if len(raw) == 0 {
				continue
			}
			var pool model.Pool
			if err := json.Unmarshal(raw, &pool); err != nil {
				return nil, fmt.Errorf("decode pool line %d: %w", line, err)
			}
			pools = append(pools, pool)
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("scan pools: %w", err)
		}
	}

	for i, pool := range pools {
		if err := pool.Validate(); err != nil {
			return nil, fmt.Errorf("pool %d: %w", i, err)
		}
	}
	return latestPerAddress(pools), nil
}

// latestPerAddress keeps the last record of each pool address, at the
// position the address first appeared. Addresses compare case-insensitively.
func latestPerAddress(pools []model.Pool) []model.Pool {
	index := make(map[string]int, len(pools))
	out := pools[:0:0]
	for _, pool := range pools {
		key := strings.ToLower(pool.Address)
		if i, ok := index[key]; ok {
			out[i] = pool
			continue
		}
		index[key] = len(out)
		out = append(out, pool)
	}
	return out
}
