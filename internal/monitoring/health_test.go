package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getHealth(t *testing.T, h *HealthChecker) (int, HealthStatus) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var status HealthStatus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&status))
	return rec.Code, status
}

func TestHealthChecker_Healthy(t *testing.T) {
	h := NewHealthChecker()
	h.MarkSignal(50000)

	code, status := getHealth(t, h)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, 50000.0, status.LastPrice)
}

func TestHealthChecker_UnhealthyAfterErrors(t *testing.T) {
	h := NewHealthChecker()
	h.MarkSignal(50000)
	h.MarkError("kline fetch failed")

	code, status := getHealth(t, h)

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "unhealthy", status.Status)
	assert.Contains(t, status.Errors, "kline fetch failed")
}

func TestHealthChecker_KeepsLastTenErrors(t *testing.T) {
	h := NewHealthChecker()
	for i := 0; i < 15; i++ {
		h.MarkError("err")
	}

	_, status := getHealth(t, h)
	assert.Len(t, status.Errors, 10)
}
