// Package annealer calls an external annealing sampler over JSON-RPC. The
// sample is a timing experiment: its answer is read and discarded.
package annealer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"dexAccel/internal/compare"
	"dexAccel/internal/metrics"
)

// Method is the JSON-RPC method invoked per sample.
const Method = "anneal_sample"

// DefaultReads is the number of reads requested per sample.
const DefaultReads = 100

// SampleRequest is a placeholder binary quadratic objective.
type SampleRequest struct {
	NumVars   int                `json:"num_vars"`
	NumReads  int                `json:"num_reads"`
	Linear    []float64          `json:"linear"`
	Quadratic map[string]float64 `json:"quadratic"`
}

// Client is a compare.Probe backed by a remote sampler.
type Client struct {
	rpc    *rpc.Client
	reads  int
	logger *zap.Logger
}

var _ compare.Probe = (*Client)(nil)

// Dial connects to url. HTTP endpoints are not contacted until the first
// sample.
func Dial(ctx context.Context, url string, logger *zap.Logger) (*Client, error) {
	c, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dial annealer: %w", err)
	}
	return New(c, logger), nil
}

// New wraps an existing RPC client.
func New(c *rpc.Client, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{rpc: c, reads: DefaultReads, logger: logger}
}

func (c *Client) Close() {
	if c.rpc != nil {
		c.rpc.Close()
	}
}

// Sample submits a placeholder objective with size variables.
func (c *Client) Sample(ctx context.Context, size int) error {
	if size <= 0 {
		size = 1
	}
	var result json.RawMessage
	err := c.rpc.CallContext(ctx, &result, Method, Objective(size, c.reads))
	if err != nil {
		metrics.ProbeTotal.WithLabelValues("error").Inc()
		c.logger.Debug("annealer sample failed", zap.Int("vars", size), zap.Error(err))
		return err
	}
	metrics.ProbeTotal.WithLabelValues("ok").Inc()
	c.logger.Debug("annealer sample done", zap.Int("vars", size), zap.Int("bytes", len(result)))
	return nil
}

// Objective builds a chain-coupled objective over size variables: every
// variable is rewarded for being set and neighbours are penalised for both
// being set.
func Objective(size, reads int) SampleRequest {
	linear := make([]float64, size)
	quadratic := make(map[string]float64, size)
	for i := range linear {
		linear[i] = -1
		if i+1 < size {
			quadratic[fmt.Sprintf("%d,%d", i, i+1)] = 2
		}
	}
	return SampleRequest{NumVars: size, NumReads: reads, Linear: linear, Quadratic: quadratic}
}
