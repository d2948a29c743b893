package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServeDefaults(t *testing.T) {
	cfg, err := LoadServe("", nil)
	require.NoError(t, err)
	assert.Equal(t, ":8000", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORSOrigins)
	assert.Equal(t, PoolSourceStatic, cfg.Pools.Kind)
	assert.Equal(t, 30*time.Second, cfg.Pools.CacheTTL)
	assert.Equal(t, 250*time.Millisecond, cfg.AnnealerTimeout)
	assert.Equal(t, 2, cfg.RefreshRetries)
}

func TestLoadServeFlagsAndEnv(t *testing.T) {
	t.Setenv("ACCEL_POOL_CACHE_TTL", "45s")
	t.Setenv("ACCEL_CORS_ORIGINS", "https://a.example, https://b.example")

	flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	flags.String("addr", ":8000", "")
	flags.String("log-level", "info", "")
	require.NoError(t, flags.Parse([]string{"--addr=:9100", "--log-level=debug"}))

	cfg, err := LoadServe("", flags)
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 45*time.Second, cfg.Pools.CacheTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoadServeConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
pool-source: chain
rpc: https://rpc.example
pairs:
  - "0x1000000000000000000000000000000000000001"
  - "0x2000000000000000000000000000000000000002"
pair-fee-bps: 25
pair-fees:
  "0x2000000000000000000000000000000000000002": 5
`), 0o644))

	cfg, err := LoadServe(path, nil)
	require.NoError(t, err)
	assert.Equal(t, PoolSourceChain, cfg.Pools.Kind)
	assert.Len(t, cfg.Pools.Pairs, 2)
	assert.Equal(t, 25, cfg.Pools.FeeFor("0x1000000000000000000000000000000000000001"))
	assert.Equal(t, 5, cfg.Pools.FeeFor("0x2000000000000000000000000000000000000002"))
}

func TestLoadServeMissingConfigFile(t *testing.T) {
	_, err := LoadServe(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestPoolSourceValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  PoolSourceConfig
		ok   bool
	}{
		{"static", PoolSourceConfig{Kind: PoolSourceStatic}, true},
		{"file without path", PoolSourceConfig{Kind: PoolSourceFile}, false},
		{"file", PoolSourceConfig{Kind: PoolSourceFile, File: "pools.jsonl"}, true},
		{"chain without rpc", PoolSourceConfig{Kind: PoolSourceChain, Pairs: []string{"0x1"}}, false},
		{"chain without pairs", PoolSourceConfig{Kind: PoolSourceChain, RPCURL: "http://x"}, false},
		{"chain with registry", PoolSourceConfig{Kind: PoolSourceChain, RPCURL: "http://x", PGDSN: "postgres://"}, true},
		{"unknown", PoolSourceConfig{Kind: "ipfs"}, false},
		{"bad fee", PoolSourceConfig{Kind: PoolSourceStatic, PairFeeBps: 10000}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestLoadServeRejectsBadEnvSource(t *testing.T) {
	t.Setenv("ACCEL_POOL_SOURCE", "file")
	_, err := LoadServe("", nil)
	assert.Error(t, err)
}

func TestGetIntMapFromEnv(t *testing.T) {
	t.Setenv("ACCEL_PAIR_FEES", "0xa=30, 0xb=5")
	cfg, err := LoadPools("", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"0xa": 30, "0xb": 5}, cfg.Pools.PairFees)

	t.Setenv("ACCEL_PAIR_FEES", "0xa=cheap")
	_, err = LoadPools("", nil)
	assert.Error(t, err)
}

func TestLoadSolve(t *testing.T) {
	flags := pflag.NewFlagSet("solve", pflag.ContinueOnError)
	flags.String("in", "-", "")
	require.NoError(t, flags.Parse([]string{"--in=req.json"}))

	cfg, err := LoadSolve("", flags)
	require.NoError(t, err)
	assert.Equal(t, "req.json", cfg.In)
	assert.Empty(t, cfg.AnnealerURL)
	assert.Equal(t, 250*time.Millisecond, cfg.AnnealerTimeout)
}

func TestLoadNetwork(t *testing.T) {
	t.Setenv("ACCEL_RPC", "https://rpc.example")
	cfg, err := LoadNetwork("", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://rpc.example", cfg.RPCURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestSplitAndClean(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitAndClean(" a, ,b "))
	assert.Nil(t, splitAndClean(""))
}
