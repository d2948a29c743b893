package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// Pool source kinds.
const (
	PoolSourceStatic = "static"
	PoolSourceFile   = "file"
	PoolSourceChain  = "chain"
)

// PoolSourceConfig selects and tunes the pool-data provider.
type PoolSourceConfig struct {
	Kind       string
	File       string
	RPCURL     string
	Pairs      []string
	PairFeeBps int
	PairFees   map[string]int
	PGDSN      string
	RedisURL   string
	CacheTTL   time.Duration
}

// Validate checks that the selected source has what it needs.
func (c PoolSourceConfig) Validate() error {
	switch c.Kind {
	case PoolSourceStatic:
	case PoolSourceFile:
		if c.File == "" {
			return fmt.Errorf("pool-source file requires pool-file")
		}
	case PoolSourceChain:
		if c.RPCURL == "" {
			return fmt.Errorf("pool-source chain requires rpc")
		}
		if len(c.Pairs) == 0 && c.PGDSN == "" {
			return fmt.Errorf("pool-source chain requires pairs or pg-dsn")
		}
	default:
		return fmt.Errorf("unknown pool-source %q (want static, file or chain)", c.Kind)
	}
	if c.PairFeeBps < 0 || c.PairFeeBps >= 10000 {
		return fmt.Errorf("pair-fee-bps %d out of range", c.PairFeeBps)
	}
	return nil
}

// FeeFor returns the per-pair fee override or the shared default. Addresses
// compare case-insensitively.
func (c PoolSourceConfig) FeeFor(address string) int {
	if fee, ok := c.PairFees[strings.ToLower(address)]; ok {
		return fee
	}
	return c.PairFeeBps
}

// ServeConfig holds configuration for the serve command.
type ServeConfig struct {
	Addr            string
	LogLevel        string
	CORSOrigins     []string
	Pools           PoolSourceConfig
	RefreshRetries  int
	RefreshBackoff  time.Duration
	AnnealerURL     string
	AnnealerTimeout time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// LoadServe merges config file, environment variables, and flags into ServeConfig.
func LoadServe(cfgFile string, flags *pflag.FlagSet) (ServeConfig, error) {
	v, err := load(cfgFile, flags, map[string]interface{}{
		"addr":             ":8000",
		"cors-origins":     "http://localhost:3000,http://127.0.0.1:3000",
		"pool-source":      PoolSourceStatic,
		"pair-fee-bps":     30,
		"pool-cache-ttl":   30 * time.Second,
		"refresh-retries":  2,
		"refresh-backoff":  500 * time.Millisecond,
		"annealer-timeout": 250 * time.Millisecond,
		"read-timeout":     10 * time.Second,
		"write-timeout":    30 * time.Second,
		"idle-timeout":     60 * time.Second,
		"shutdown-timeout": 10 * time.Second,
	})
	if err != nil {
		return ServeConfig{}, err
	}

	pools, err := poolSource(v)
	if err != nil {
		return ServeConfig{}, err
	}

	cfg := ServeConfig{
		Addr:            v.GetString("addr"),
		LogLevel:        v.GetString("log-level"),
		CORSOrigins:     getStringSlice(v, "cors-origins"),
		Pools:           pools,
		RefreshRetries:  v.GetInt("refresh-retries"),
		RefreshBackoff:  v.GetDuration("refresh-backoff"),
		AnnealerURL:     v.GetString("annealer-url"),
		AnnealerTimeout: v.GetDuration("annealer-timeout"),
		ReadTimeout:     v.GetDuration("read-timeout"),
		WriteTimeout:    v.GetDuration("write-timeout"),
		IdleTimeout:     v.GetDuration("idle-timeout"),
		ShutdownTimeout: v.GetDuration("shutdown-timeout"),
	}
	if err := cfg.Pools.Validate(); err != nil {
		return ServeConfig{}, err
	}
	return cfg, nil
}
