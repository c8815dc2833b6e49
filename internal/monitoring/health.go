package monitoring

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

var startTime = time.Now()

// HealthChecker tracks the liveness of the evaluation loop for the /health
// endpoint.
type HealthChecker struct {
	mu         sync.RWMutex
	lastSignal time.Time
	lastPrice  float64
	errors     []string
}

type HealthStatus struct {
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
	LastSignal time.Time `json:"last_signal"`
	LastPrice  float64   `json:"last_price"`
	Uptime     string    `json:"uptime"`
	Errors     []string  `json:"errors,omitempty"`
}

func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		errors: make([]string, 0),
	}
}

// MarkSignal records that a signal evaluation completed at the given price.
func (h *HealthChecker) MarkSignal(price float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastSignal = time.Now()
	h.lastPrice = price
}

// MarkError records an error for the health report.
func (h *HealthChecker) MarkError(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors = append(h.errors, msg)
	if len(h.errors) > 10 {
		h.errors = h.errors[len(h.errors)-10:]
	}
}

func (h *HealthChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	status := "healthy"
	if !h.lastSignal.IsZero() && time.Since(h.lastSignal) > 2*time.Hour {
		status = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	if len(h.errors) > 0 {
		status = "unhealthy"
		w.WriteHeader(http.StatusInternalServerError)
	}

	health := HealthStatus{
		Status:     status,
		Timestamp:  time.Now(),
		LastSignal: h.lastSignal,
		LastPrice:  h.lastPrice,
		Uptime:     time.Since(startTime).String(),
		Errors:     h.errors,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}
