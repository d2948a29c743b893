package model

// NetworkStats is a snapshot of the RPC endpoint's view of the chain.
type NetworkStats struct {
	Connected   bool    `json:"connected"`
	ChainID     *uint64 `json:"chain_id"`
	BlockNumber *uint64 `json:"block_number"`
	GasPrice    *uint64 `json:"gas_price"`
	Message     *string `json:"message"`
}
