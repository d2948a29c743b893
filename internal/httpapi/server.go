// Package httpapi exposes the solvers, the pool source and the network
// status over HTTP.
package httpapi

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"dexAccel/internal/compare"
	"dexAccel/internal/model"
	"dexAccel/internal/poolsource"
)

const maxBodyBytes = 4 << 20

// NetworkReporter returns the current network statistics.
type NetworkReporter interface {
	Status(ctx context.Context) model.NetworkStats
}

// Config wires the server's collaborators. Nil Pools falls back to the demo
// dataset; nil Probe disables the annealer experiment.
type Config struct {
	Pools        poolsource.Provider
	Network      NetworkReporter
	Probe        compare.Probe
	ProbeTimeout time.Duration
	Registry     *prometheus.Registry
	CORSOrigins  []string
	Version      string
	Logger       *zap.Logger
}

// Server routes HTTP requests to handlers.
type Server struct {
	cfg    Config
	logger *zap.Logger
	mux    *http.ServeMux
	ready  atomic.Bool
}

func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Pools == nil {
		cfg.Pools = poolsource.NewStaticProvider(nil)
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	s := &Server{cfg: cfg, logger: cfg.Logger, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.handle("GET /{$}", s.handleRoot)
	s.handle("GET /api/health", s.handleHealth)
	s.handle("GET /healthz", s.handleHealthz)
	s.handle("GET /readyz", s.handleReadyz)
	s.handle("GET /version", s.handleVersion)
	s.handle("GET /api/quantum/status", s.handleQuantumStatus)
	s.handle("POST /api/quantum/arbitrage", s.handleArbitrage)
	s.handle("POST /api/quantum/scheduler", s.handleScheduler)
	s.handle("POST /api/quantum/liquidation", s.handleLiquidation)
	s.handle("GET /api/pharos/network", s.handleNetwork)
	s.handle("GET /api/pharos/pools", s.handlePools)
	if s.cfg.Registry != nil {
		s.mux.Handle("GET /metrics", metricsHandler(s.cfg.Registry))
	}
}

func (s *Server) handle(pattern string, h http.HandlerFunc) {
	s.mux.Handle(pattern, instrument(pattern, h))
}

// SetReady flips the readiness probe.
func (s *Server) SetReady(v bool) { s.ready.Store(v) }

// Handler returns the routed handler wrapped in middleware.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.mux
	h = CORS(s.cfg.CORSOrigins)(h)
	h = Logger(s.logger)(h)
	h = RequestID(h)
	return h
}
