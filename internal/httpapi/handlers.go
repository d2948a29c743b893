package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"dexAccel/internal/arbitrage"
	"dexAccel/internal/compare"
	"dexAccel/internal/liquidation"
	"dexAccel/internal/metrics"
	"dexAccel/internal/model"
	"dexAccel/internal/schedule"
)

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type validator interface {
	Validate() error
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service":    "dex accelerator core API",
		"version":    s.cfg.Version,
		"status":     "experimental",
		"disclaimer": "Research prototype. Annealing is simulated; results are advisory.",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if s.ready.Load() {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
		return
	}
	http.Error(w, "not ready", http.StatusServiceUnavailable)
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.cfg.Version})
}

func (s *Server) handleQuantumStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"backend":   "classical",
		"simulator": "greedy heuristics with optional remote annealer timing",
		"annealer":  s.cfg.Probe != nil,
		"ready":     true,
		"message":   "Quantum computations are simulated for this prototype.",
	})
}

func (s *Server) handleArbitrage(w http.ResponseWriter, r *http.Request) {
	var req model.ArbitrageRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if len(req.Pools) == 0 {
		pools, err := s.cfg.Pools.Pools(r.Context())
		if err != nil {
			s.writeError(w, r, http.StatusBadGateway, fmt.Errorf("pool source unavailable: %w", err))
			return
		}
		req.Pools = pools
	}
	if !s.validate(w, r, req) {
		return
	}
	var opts []compare.Option
	if s.cfg.Probe != nil {
		opts = append(opts, compare.WithProbe(s.cfg.Probe, s.cfg.ProbeTimeout))
	}
	resp, timing := arbitrage.Evaluate(r.Context(), req, opts...)
	metrics.ObserveSolve("arbitrage", timing.Baseline, timing.Optimized, resp.Comparison.Winner)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleScheduler(w http.ResponseWriter, r *http.Request) {
	var req model.SchedulerRequest
	if !s.decode(w, r, &req) {
		return
	}
	resp, timing := schedule.Evaluate(r.Context(), req)
	metrics.ObserveSolve("scheduler", timing.Baseline, timing.Optimized, resp.Comparison.Winner)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLiquidation(w http.ResponseWriter, r *http.Request) {
	var req model.LiquidationRequest
	if !s.decode(w, r, &req) {
		return
	}
	resp, timing := liquidation.Evaluate(r.Context(), req)
	metrics.ObserveSolve("liquidation", timing.Baseline, timing.Optimized, resp.Comparison.Winner)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleNetwork(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Network == nil {
		msg := "rpc not configured"
		writeJSON(w, http.StatusOK, model.NetworkStats{Message: &msg})
		return
	}
	writeJSON(w, http.StatusOK, s.cfg.Network.Status(r.Context()))
}

func (s *Server) handlePools(w http.ResponseWriter, r *http.Request) {
	pools, err := s.cfg.Pools.Pools(r.Context())
	if err != nil {
		s.logger.Warn("pool listing failed", zap.Error(err))
		s.writeError(w, r, http.StatusBadGateway, fmt.Errorf("pool source unavailable: %w", err))
		return
	}
	if pools == nil {
		pools = []model.Pool{}
	}
	writeJSON(w, http.StatusOK, pools)
}

// decode reads and validates a JSON body. It writes a 400 and returns false
// on any failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v validator) bool {
	return s.decodeJSON(w, r, v) && s.validate(w, r, v)
}

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("%w: %v", model.ErrInvalidRequest, err))
		return false
	}
	return true
}

func (s *Server) validate(w http.ResponseWriter, r *http.Request, v validator) bool {
	if err := v.Validate(); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if !errors.Is(err, model.ErrInvalidRequest) {
		s.logger.Debug("request failed", zap.Int("status", status), zap.Error(err))
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), RequestID: GetRequestID(r.Context())})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func metricsHandler(reg *prometheus.Registry) http.Handler {
	return metrics.Handler(reg)
}
