package backtest

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	engerr "github.com/ducminhle1904/crypto-signal-bot/internal/errors"
	"github.com/ducminhle1904/crypto-signal-bot/internal/indicators"
	"github.com/ducminhle1904/crypto-signal-bot/internal/position"
	"github.com/ducminhle1904/crypto-signal-bot/internal/sentiment"
	"github.com/ducminhle1904/crypto-signal-bot/internal/signal"
	"github.com/ducminhle1904/crypto-signal-bot/pkg/types"
)

const (
	// MinBars is the minimum number of bars for a run; RSI and MA(200)
	// need this much history to stabilize.
	MinBars = 250

	// WarmupBars are skipped before the first evaluation so MA(50) and the
	// RSI seed have real history behind them.
	WarmupBars = 50

	// sentimentWindow is how far back readings count toward a bar's
	// sentiment during replay.
	sentimentWindow = time.Hour
)

// Config carries the per-run inputs that are not part of the decision rule.
type Config struct {
	Symbol         string
	PositionSize   float64
	InitialBalance float64
}

// Engine replays a decision rule chronologically over historical bars.
// Every run owns its own position and equity state, so independent runs may
// execute concurrently with a shared Engine.
type Engine struct {
	calc   *indicators.Calculator
	logger zerolog.Logger
}

// NewEngine creates a backtest engine
func NewEngine(logger zerolog.Logger) *Engine {
	return &Engine{
		calc:   indicators.NewCalculator(),
		logger: logger,
	}
}

// Run replays the rule over bars (oldest first) with the given sentiment
// readings. Indicators at bar k are computed from bars[..k] only; appending
// future bars to the input cannot change any decision made before them.
//
// The per-bar order is: indicators, sentiment, signal, stop-loss/take-profit
// checks, then the fresh signal. A stop close consumes the bar, so a new
// entry can happen no earlier than the next bar. Balance is realized-only:
// it moves when a trade closes and the equity curve records it every bar.
func (e *Engine) Run(bars []types.PriceBar, readings []types.SentimentReading, rule signal.Rule, cfg Config) (*Result, error) {
	if cfg.PositionSize <= 0 {
		return nil, engerr.InvalidParameter("backtest", "position_size must be positive")
	}
	if cfg.InitialBalance <= 0 {
		return nil, engerr.InvalidParameter("backtest", "initial_balance must be positive")
	}

	result := &Result{
		Symbol: cfg.Symbol,
		Parameters: RunParameters{
			Rule:              rule.Name(),
			PositionSize:      cfg.PositionSize,
			StopLossPercent:   rule.StopLossPercent(),
			TakeProfitPercent: rule.TakeProfitPercent(),
			InitialBalance:    cfg.InitialBalance,
		},
		Trades:      []position.Trade{},
		EquityCurve: []EquityPoint{},
	}
	if len(bars) > 0 {
		result.PeriodStart = bars[0].Timestamp
		result.PeriodEnd = bars[len(bars)-1].Timestamp
	}
	result.DataPoints = len(bars)

	if len(bars) < MinBars {
		reason := fmt.Sprintf("insufficient data: %d price bars (need >= %d)", len(bars), MinBars)
		e.logger.Warn().Str("symbol", cfg.Symbol).Msg("backtest aborted: " + reason)
		result.Status = StatusError
		result.ErrorReason = &reason
		result.Metrics = emptyMetrics(cfg.InitialBalance)
		return result, nil
	}

	sorted := make([]types.SentimentReading, len(readings))
	copy(sorted, readings)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	aggregator := sentiment.NewAggregator(sentimentWindow, e.logger)
	manager := position.NewManager(cfg.Symbol, cfg.PositionSize, rule.StopLossPercent(), rule.TakeProfitPercent(), e.logger)
	balance := cfg.InitialBalance

	// Sliding window over sorted readings; lo/hi only move forward
	lo, hi := 0, 0

	for i := WarmupBars; i < len(bars); i++ {
		bar := bars[i]

		windowStart := 0
		if i+1 > indicators.MaxLookback {
			windowStart = i + 1 - indicators.MaxLookback
		}
		snap := e.calc.Snapshot(bars[windowStart : i+1])

		since := bar.Timestamp.Add(-sentimentWindow)
		for lo < len(sorted) && sorted[lo].Timestamp.Before(since) {
			lo++
		}
		for hi < len(sorted) && !sorted[hi].Timestamp.After(bar.Timestamp) {
			hi++
		}
		sent := aggregator.Aggregate(sorted[lo:hi], bar.Timestamp)

		sig := rule.Evaluate(bar.Close, snap, sent, bar.Timestamp)
		sig.Symbol = cfg.Symbol

		// Stops take priority over a fresh signal and consume the bar
		if trade := manager.CheckStops(bar.Close, bar.Timestamp); trade != nil {
			balance += *trade.PnL
			result.Trades = append(result.Trades, *trade)
			result.EquityCurve = append(result.EquityCurve, EquityPoint{Timestamp: bar.Timestamp, Balance: round2(balance)})
			continue
		}

		if trade := manager.OnSignal(sig); trade != nil && trade.Status == position.StatusClosed {
			balance += *trade.PnL
			result.Trades = append(result.Trades, *trade)
		}

		result.EquityCurve = append(result.EquityCurve, EquityPoint{Timestamp: bar.Timestamp, Balance: round2(balance)})
	}

	// Anything still open is closed at the final bar
	last := bars[len(bars)-1]
	if trade := manager.ForceClose(last.Close, last.Timestamp); trade != nil {
		balance += *trade.PnL
		result.Trades = append(result.Trades, *trade)
		result.EquityCurve = append(result.EquityCurve, EquityPoint{Timestamp: last.Timestamp, Balance: round2(balance)})
	}

	result.Status = StatusCompleted
	result.Metrics = CalculateMetrics(result.Trades, result.EquityCurve, cfg.InitialBalance)

	e.logger.Info().
		Str("symbol", cfg.Symbol).
		Str("rule", rule.Name()).
		Int("bars", len(bars)).
		Int("trades", result.Metrics.TotalTrades).
		Float64("total_pnl", result.Metrics.TotalPnL).
		Float64("win_rate", result.Metrics.WinRate).
		Msg("backtest complete")

	return result, nil
}

// RunRequest executes the external RSI-only request contract. Bars and
// readings outside the request's [start, end] window are dropped before the
// replay; a zero boundary leaves that side open.
func (e *Engine) RunRequest(req Request, bars []types.PriceBar, readings []types.SentimentReading) (*Result, error) {
	rule, err := signal.NewRSIOnlyRule(
		req.StrategyParams.RSIOversold,
		req.StrategyParams.RSIOverbought,
		req.StrategyParams.StopLossPercent,
		req.StrategyParams.TakeProfitPercent,
	)
	if err != nil {
		return nil, err
	}

	inWindow := func(ts time.Time) bool {
		if !req.StartDate.IsZero() && ts.Before(req.StartDate) {
			return false
		}
		if !req.EndDate.IsZero() && ts.After(req.EndDate) {
			return false
		}
		return true
	}

	var windowBars []types.PriceBar
	for _, bar := range bars {
		if inWindow(bar.Timestamp) {
			windowBars = append(windowBars, bar)
		}
	}
	var windowReadings []types.SentimentReading
	for _, r := range readings {
		if inWindow(r.Timestamp) {
			windowReadings = append(windowReadings, r)
		}
	}

	return e.Run(windowBars, windowReadings, rule, Config{
		Symbol:         req.Symbol,
		PositionSize:   req.StrategyParams.PositionSize,
		InitialBalance: req.StrategyParams.InitialBalance,
	})
}
