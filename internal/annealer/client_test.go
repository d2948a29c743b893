package annealer

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampler struct {
	got  []SampleRequest
	fail bool
}

func (s *sampler) Sample(req SampleRequest) (map[string]int, error) {
	s.got = append(s.got, req)
	if s.fail {
		return nil, errors.New("solver busy")
	}
	return map[string]int{"energy": -1}, nil
}

func newInProc(t *testing.T, s *sampler) *Client {
	t.Helper()
	server := rpc.NewServer()
	require.NoError(t, server.RegisterName("anneal", s))
	t.Cleanup(server.Stop)
	c := New(rpc.DialInProc(server), nil)
	t.Cleanup(c.Close)
	return c
}

func TestSampleSendsObjective(t *testing.T) {
	s := &sampler{}
	c := newInProc(t, s)

	require.NoError(t, c.Sample(context.Background(), 6))
	require.Len(t, s.got, 1)
	assert.Equal(t, 6, s.got[0].NumVars)
	assert.Equal(t, DefaultReads, s.got[0].NumReads)
	assert.Len(t, s.got[0].Linear, 6)
	assert.Len(t, s.got[0].Quadratic, 5)
}

func TestSampleReportsRemoteError(t *testing.T) {
	c := newInProc(t, &sampler{fail: true})
	assert.Error(t, c.Sample(context.Background(), 3))
}

func TestSampleClampsSize(t *testing.T) {
	s := &sampler{}
	c := newInProc(t, s)
	require.NoError(t, c.Sample(context.Background(), 0))
	assert.Equal(t, 1, s.got[0].NumVars)
	assert.Empty(t, s.got[0].Quadratic)
}

func TestObjective(t *testing.T) {
	obj := Objective(3, 10)
	assert.Equal(t, []float64{-1, -1, -1}, obj.Linear)
	assert.Equal(t, map[string]float64{"0,1": 2, "1,2": 2}, obj.Quadratic)
	assert.Equal(t, 10, obj.NumReads)
}
