package compare

import "time"

// DefaultProbeTimeout bounds a probe call when none is configured.
const DefaultProbeTimeout = 250 * time.Millisecond

type runConfig struct {
	now          func() time.Time
	probe        Probe
	probeTimeout time.Duration
}

// Option configures Run.
type Option func(*runConfig)

func newRunConfig(opts []Option) runConfig {
	cfg := runConfig{
		now:          time.Now,
		probeTimeout: DefaultProbeTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithProbe attaches an optional timing probe to the optimized strategy.
// A nil probe disables it.
func WithProbe(p Probe, timeout time.Duration) Option {
	return func(c *runConfig) {
		c.probe = p
		if timeout > 0 {
			c.probeTimeout = timeout
		}
	}
}

// WithClock replaces the wall clock, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *runConfig) {
		if now != nil {
			c.now = now
		}
	}
}
