package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultFeeBps is applied when a pool payload omits its fee.
const DefaultFeeBps = 300

// MaxFeeBps is the exclusive upper bound for a pool fee.
const MaxFeeBps = 10000

// Pool is a two-token constant-product pool snapshot.
type Pool struct {
	Address  string    `json:"address"`
	Tokens   []string  `json:"tokens"`
	Reserves []float64 `json:"reserves"`
	FeeBps   int       `json:"fee"`
}

// FeeMultiplier returns 1 - fee/10000.
func (p Pool) FeeMultiplier() float64 {
	return 1 - float64(p.FeeBps)/MaxFeeBps
}

// HasPair reports whether the pool's token set equals {a, b}.
func (p Pool) HasPair(a, b string) bool {
	if len(p.Tokens) != 2 {
		return false
	}
	return (p.Tokens[0] == a && p.Tokens[1] == b) || (p.Tokens[0] == b && p.Tokens[1] == a)
}

// Validate checks the structural pool invariants.
func (p Pool) Validate() error {
	if strings.TrimSpace(p.Address) == "" {
		return fmt.Errorf("%w: pool address is required", ErrInvalidRequest)
	}
	if len(p.Tokens) != 2 {
		return fmt.Errorf("%w: pool %s must have exactly two tokens, got %d", ErrInvalidRequest, p.Address, len(p.Tokens))
	}
	if len(p.Reserves) != 2 {
		return fmt.Errorf("%w: pool %s must have exactly two reserves, got %d", ErrInvalidRequest, p.Address, len(p.Reserves))
	}
	for i, token := range p.Tokens {
		if strings.TrimSpace(token) == "" {
			return fmt.Errorf("%w: pool %s token%d is empty", ErrInvalidRequest, p.Address, i)
		}
	}
	for i, r := range p.Reserves {
		if r < 0 {
			return fmt.Errorf("%w: pool %s reserve%d is negative", ErrInvalidRequest, p.Address, i)
		}
	}
	if p.FeeBps < 0 || p.FeeBps >= MaxFeeBps {
		return fmt.Errorf("%w: pool %s fee %d out of range [0, %d)", ErrInvalidRequest, p.Address, p.FeeBps, MaxFeeBps)
	}
	return nil
}

// UnmarshalJSON applies the default fee when the field is absent.
func (p *Pool) UnmarshalJSON(data []byte) error {
	type Alias Pool
	a := Alias{FeeBps: DefaultFeeBps}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = Pool(a)
	return nil
}
