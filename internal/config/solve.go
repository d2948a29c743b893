package config

import (
	"time"

	"github.com/spf13/pflag"
)

// SolveConfig holds configuration for the one-shot solve commands.
type SolveConfig struct {
	LogLevel        string
	In              string
	Out             string
	AnnealerURL     string
	AnnealerTimeout time.Duration
}

// LoadSolve merges config file, environment variables, and flags into SolveConfig.
func LoadSolve(cfgFile string, flags *pflag.FlagSet) (SolveConfig, error) {
	v, err := load(cfgFile, flags, map[string]interface{}{
		"in":               "-",
		"annealer-timeout": 250 * time.Millisecond,
	})
	if err != nil {
		return SolveConfig{}, err
	}

	return SolveConfig{
		LogLevel:        v.GetString("log-level"),
		In:              v.GetString("in"),
		Out:             v.GetString("out"),
		AnnealerURL:     v.GetString("annealer-url"),
		AnnealerTimeout: v.GetDuration("annealer-timeout"),
	}, nil
}

// NetworkConfig holds configuration for the network command.
type NetworkConfig struct {
	LogLevel string
	RPCURL   string
	Timeout  time.Duration
}

// LoadNetwork merges config file, environment variables, and flags into NetworkConfig.
func LoadNetwork(cfgFile string, flags *pflag.FlagSet) (NetworkConfig, error) {
	v, err := load(cfgFile, flags, map[string]interface{}{
		"timeout": 5 * time.Second,
	})
	if err != nil {
		return NetworkConfig{}, err
	}
	return NetworkConfig{
		LogLevel: v.GetString("log-level"),
		RPCURL:   v.GetString("rpc"),
		Timeout:  v.GetDuration("timeout"),
	}, nil
}
