package model

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// PairRef registers an on-chain pair to poll for reserves.
type PairRef struct {
	Address string `json:"address"`
	FeeBps  int    `json:"fee"`
	Label   string `json:"label,omitempty"`
}

// Validate checks the address format and fee range.
func (p PairRef) Validate() error {
	if !common.IsHexAddress(p.Address) {
		return fmt.Errorf("%w: pair address %q is not a hex address", ErrInvalidRequest, p.Address)
	}
	if p.FeeBps < 0 || p.FeeBps >= MaxFeeBps {
		return fmt.Errorf("%w: pair %s fee %d out of range [0, %d)", ErrInvalidRequest, p.Address, p.FeeBps, MaxFeeBps)
	}
	return nil
}
