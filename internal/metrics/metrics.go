package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	SolverDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "solver_duration_ms",
		Help:    "Strategy wall time by solver and strategy",
		Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
	}, []string{"solver", "strategy"})
	SolverWinnerTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "solver_winner_total",
		Help: "Comparison winners by solver",
	}, []string{"solver", "winner"})
	PoolRefreshTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pool_refresh_total",
		Help: "Pool source refreshes by source and result",
	}, []string{"source", "result"})
	PoolFallbackTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pool_fallback_total",
		Help: "Pool reads answered from the demo dataset",
	})
	PoolCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pool_count",
		Help: "Pools in the last successful refresh",
	})
	ProbeTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "annealer_probe_total",
		Help: "Annealer probe calls by result",
	}, []string{"result"})
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by route, method and status",
	}, []string{"route", "method", "status"})
	HTTPRequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_ms",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.ExponentialBuckets(0.1, 4, 10),
	}, []string{"route"})
)

// Init registers every collector with a fresh registry.
func Init(logger *zap.Logger) *prometheus.Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	reg := prometheus.NewRegistry()
	toRegister := []prometheus.Collector{
		SolverDurationMs, SolverWinnerTotal,
		PoolRefreshTotal, PoolFallbackTotal, PoolCount,
		ProbeTotal,
		HTTPRequestsTotal, HTTPRequestDurationMs,
		collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	}
	for _, c := range toRegister {
		if err := reg.Register(c); err != nil {
			logger.Warn("metric registration failed", zap.Error(err))
		}
	}
	logger.Info("prometheus metrics initialized")
	return reg
}

// Handler exposes reg in the text exposition format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// ObserveSolve records one dual-strategy evaluation.
func ObserveSolve(solver string, baseline, optimized time.Duration, winner string) {
	SolverDurationMs.WithLabelValues(solver, "baseline").Observe(ms(baseline))
	SolverDurationMs.WithLabelValues(solver, "optimized").Observe(ms(optimized))
	SolverWinnerTotal.WithLabelValues(solver, winner).Inc()
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
