package config

import (
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// PoolsConfig holds configuration for the pools subcommands.
type PoolsConfig struct {
	LogLevel string
	In       string
	Out      string
	Pools    PoolSourceConfig
}

// LoadPools merges config file, environment variables, and flags into PoolsConfig.
// The pool source is not validated here because import only needs pg-dsn.
func LoadPools(cfgFile string, flags *pflag.FlagSet) (PoolsConfig, error) {
	v, err := load(cfgFile, flags, map[string]interface{}{
		"pool-source":    PoolSourceStatic,
		"pair-fee-bps":   30,
		"pool-cache-ttl": 30 * time.Second,
	})
	if err != nil {
		return PoolsConfig{}, err
	}

	pools, err := poolSource(v)
	if err != nil {
		return PoolsConfig{}, err
	}

	return PoolsConfig{
		LogLevel: v.GetString("log-level"),
		In:       v.GetString("in"),
		Out:      v.GetString("out"),
		Pools:    pools,
	}, nil
}

func poolSource(v *viper.Viper) (PoolSourceConfig, error) {
	fees, err := getIntMap(v, "pair-fees")
	if err != nil {
		return PoolSourceConfig{}, err
	}
	return PoolSourceConfig{
		Kind:       v.GetString("pool-source"),
		File:       v.GetString("pool-file"),
		RPCURL:     v.GetString("rpc"),
		Pairs:      getStringSlice(v, "pairs"),
		PairFeeBps: v.GetInt("pair-fee-bps"),
		PairFees:   fees,
		PGDSN:      v.GetString("pg-dsn"),
		RedisURL:   v.GetString("redis-url"),
		CacheTTL:   v.GetDuration("pool-cache-ttl"),
	}, nil
}
