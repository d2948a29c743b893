package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveSolveCountsWinner(t *testing.T) {
	before := testutil.ToFloat64(SolverWinnerTotal.WithLabelValues("scheduler", "optimized"))
	ObserveSolve("scheduler", 200*time.Microsecond, 100*time.Microsecond, "optimized")
	after := testutil.ToFloat64(SolverWinnerTotal.WithLabelValues("scheduler", "optimized"))
	assert.Equal(t, before+1, after)
}

func TestHandlerExposesRegisteredMetrics(t *testing.T) {
	reg := Init(nil)
	PoolFallbackTotal.Inc()

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "pool_fallback_total"))
	assert.True(t, strings.Contains(string(body), "go_goroutines"))
}
