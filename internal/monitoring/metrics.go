package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Signal metrics
	signalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signal_bot_signals_total",
			Help: "Total number of signals generated",
		},
		[]string{"symbol", "action"},
	)

	signalConfidence = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "signal_bot_signal_confidence",
			Help: "Confidence of the most recent signal",
		},
		[]string{"symbol"},
	)

	// Trade metrics
	tradesClosedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signal_bot_trades_closed_total",
			Help: "Total number of closed paper trades",
		},
		[]string{"symbol", "exit_reason"},
	)

	tradePnL = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "signal_bot_trade_pnl",
			Help:    "Distribution of realized trade P&L",
			Buckets: prometheus.LinearBuckets(-500, 100, 11),
		},
		[]string{"symbol"},
	)

	// Market data metrics
	currentPrice = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "signal_bot_current_price",
			Help: "Current price of the trading symbol",
		},
		[]string{"symbol"},
	)

	sentimentScore = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "signal_bot_sentiment_score",
			Help: "Aggregated sentiment score in [-1,1]",
		},
		[]string{"symbol"},
	)

	// Backtest metrics
	backtestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "signal_bot_backtest_duration_seconds",
			Help:    "Wall-clock duration of backtest runs",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Error metrics
	errorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signal_bot_errors_total",
			Help: "Total number of errors",
		},
		[]string{"type"},
	)
)

func init() {
	prometheus.MustRegister(signalsTotal)
	prometheus.MustRegister(signalConfidence)
	prometheus.MustRegister(tradesClosedTotal)
	prometheus.MustRegister(tradePnL)
	prometheus.MustRegister(currentPrice)
	prometheus.MustRegister(sentimentScore)
	prometheus.MustRegister(backtestDuration)
	prometheus.MustRegister(errorsTotal)
}

// MetricsHandler handles the Prometheus metrics endpoint
type MetricsHandler struct{}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// ServeHTTP serves the Prometheus metrics endpoint
func (m *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// RecordSignal records a generated signal
func RecordSignal(symbol, action string, confidence float64) {
	signalsTotal.WithLabelValues(symbol, action).Inc()
	signalConfidence.WithLabelValues(symbol).Set(confidence)
}

// RecordTradeClosed records a closed paper trade
func RecordTradeClosed(symbol, exitReason string, pnl float64) {
	tradesClosedTotal.WithLabelValues(symbol, exitReason).Inc()
	tradePnL.WithLabelValues(symbol).Observe(pnl)
}

// UpdatePrice updates the current price metric
func UpdatePrice(symbol string, price float64) {
	currentPrice.WithLabelValues(symbol).Set(price)
}

// UpdateSentiment updates the aggregated sentiment metric
func UpdateSentiment(symbol string, score float64) {
	sentimentScore.WithLabelValues(symbol).Set(score)
}

// ObserveBacktestDuration records how long a backtest run took
func ObserveBacktestDuration(seconds float64) {
	backtestDuration.Observe(seconds)
}

// RecordError records an error metric
func RecordError(errorType string) {
	errorsTotal.WithLabelValues(errorType).Inc()
}
