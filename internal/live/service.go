package live

import (
	"time"

	"github.com/rs/zerolog"

	engerr "github.com/ducminhle1904/crypto-signal-bot/internal/errors"
	"github.com/ducminhle1904/crypto-signal-bot/internal/indicators"
	"github.com/ducminhle1904/crypto-signal-bot/internal/monitoring"
	"github.com/ducminhle1904/crypto-signal-bot/internal/position"
	"github.com/ducminhle1904/crypto-signal-bot/internal/sentiment"
	"github.com/ducminhle1904/crypto-signal-bot/internal/signal"
	"github.com/ducminhle1904/crypto-signal-bot/pkg/types"
)

// Service wires the signal generator and position manager for live paper
// trading. An external scheduler decides when to call it (signal evaluation
// hourly, stop checks every few minutes); the service itself never blocks,
// schedules, or persists. Bars and readings come in, signals and trade
// records go out, and storage is the caller's concern.
type Service struct {
	symbol     string
	rule       signal.Rule
	calc       *indicators.Calculator
	aggregator *sentiment.Aggregator
	manager    *position.Manager
	health     *monitoring.HealthChecker
	logger     zerolog.Logger
}

// NewService creates a live evaluation service. The rule is required: the
// engine never falls back to default parameters silently.
func NewService(symbol string, rule signal.Rule, positionSize float64, lookback time.Duration, logger zerolog.Logger) (*Service, error) {
	if rule == nil {
		return nil, engerr.NewEngineError(engerr.ErrorCategoryStrategy, "live", "new_service",
			engerr.ErrNoActiveStrategy.Error())
	}
	if positionSize <= 0 {
		return nil, engerr.InvalidParameter("live", "position_size must be positive")
	}
	return &Service{
		symbol:     symbol,
		rule:       rule,
		calc:       indicators.NewCalculator(),
		aggregator: sentiment.NewAggregator(lookback, logger),
		manager:    position.NewManager(symbol, positionSize, rule.StopLossPercent(), rule.TakeProfitPercent(), logger),
		health:     monitoring.NewHealthChecker(),
		logger:     logger,
	}, nil
}

// Health exposes the health checker for mounting on an HTTP mux.
func (s *Service) Health() *monitoring.HealthChecker {
	return s.health
}

// OpenPosition returns the currently open position, or nil.
func (s *Service) OpenPosition() *position.Position {
	return s.manager.Open()
}

// EvaluateSignal generates a signal from the latest bars and sentiment
// readings and applies it to the position state. The returned trade record
// is non-nil when a position was opened or closed by the signal.
func (s *Service) EvaluateSignal(bars []types.PriceBar, readings []types.SentimentReading) (*signal.Signal, *position.Trade, error) {
	if len(bars) == 0 {
		monitoring.RecordError("insufficient_data")
		return nil, nil, engerr.InsufficientData("live", "no price bars supplied")
	}

	last := bars[len(bars)-1]
	snap := s.calc.Snapshot(bars)
	sent := s.aggregator.Aggregate(readings, last.Timestamp)

	sig := s.rule.Evaluate(last.Close, snap, sent, last.Timestamp)
	sig.Symbol = s.symbol

	monitoring.RecordSignal(s.symbol, string(sig.Action), sig.Confidence)
	monitoring.UpdatePrice(s.symbol, last.Close)
	if sent.HasData {
		monitoring.UpdateSentiment(s.symbol, sent.Value)
	}
	s.health.MarkSignal(last.Close)

	s.logger.Info().
		Str("symbol", s.symbol).
		Str("action", string(sig.Action)).
		Float64("confidence", sig.Confidence).
		Float64("price", last.Close).
		Msg("generated signal")

	trade := s.manager.OnSignal(sig)
	if trade != nil && trade.Status == position.StatusClosed {
		monitoring.RecordTradeClosed(s.symbol, string(trade.ExitReason), *trade.PnL)
	}

	return &sig, trade, nil
}

// CheckStops runs the stop-loss/take-profit check against the current
// price. Intended for a tighter cadence than signal evaluation.
func (s *Service) CheckStops(price float64, ts time.Time) *position.Trade {
	monitoring.UpdatePrice(s.symbol, price)
	trade := s.manager.CheckStops(price, ts)
	if trade != nil {
		monitoring.RecordTradeClosed(s.symbol, string(trade.ExitReason), *trade.PnL)
	}
	return trade
}
