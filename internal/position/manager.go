package position

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/ducminhle1904/crypto-signal-bot/internal/signal"
)

// Manager owns the single-position lifecycle for one symbol: at most one
// position is open at any time. Transitions are driven by signals and by
// the current price (stop-loss / take-profit checks). Stop checks run on a
// tighter cadence than signal evaluation, so callers must invoke CheckStops
// before applying a fresh signal for the same bar.
type Manager struct {
	symbol            string
	positionSize      float64
	stopLossPercent   float64
	takeProfitPercent float64

	open   *Position
	logger zerolog.Logger
}

// NewManager creates a manager for one symbol with a fixed position size
// and SL/TP percentages.
func NewManager(symbol string, positionSize, stopLossPercent, takeProfitPercent float64, logger zerolog.Logger) *Manager {
	return &Manager{
		symbol:            symbol,
		positionSize:      positionSize,
		stopLossPercent:   stopLossPercent,
		takeProfitPercent: takeProfitPercent,
		logger:            logger,
	}
}

// Open returns the currently open position, or nil.
func (m *Manager) Open() *Position {
	return m.open
}

// HasOpen reports whether a position is currently open.
func (m *Manager) HasOpen() bool {
	return m.open != nil
}

// OnSignal applies a signal to the current state. A BUY with no open
// position opens one at the signal price; a SELL with an open position
// closes it with reason signal_sell. Everything else is a no-op, including
// a BUY while a position is already open. The returned trade record is nil
// when no transition happened.
func (m *Manager) OnSignal(sig signal.Signal) *Trade {
	switch sig.Action {
	case signal.ActionBuy:
		if m.open != nil {
			m.logger.Debug().
				Str("symbol", m.symbol).
				Msg("BUY signal ignored, position already open")
			return nil
		}
		return m.openPosition(sig.PriceAtSignal, sig.Timestamp)

	case signal.ActionSell:
		if m.open == nil {
			return nil
		}
		return m.closePosition(sig.PriceAtSignal, sig.Timestamp, ExitSignalSell)
	}
	return nil
}

// CheckStops closes the open position when the price has crossed its
// stop-loss or take-profit level. Stop-loss is checked first. Returns the
// closed trade, or nil when nothing triggered.
func (m *Manager) CheckStops(price float64, ts time.Time) *Trade {
	if m.open == nil {
		return nil
	}
	if price <= m.open.StopLossPrice {
		m.logger.Warn().
			Str("symbol", m.symbol).
			Float64("price", price).
			Float64("stop_loss", m.open.StopLossPrice).
			Msg("stop-loss triggered")
		return m.closePosition(price, ts, ExitStopLoss)
	}
	if price >= m.open.TakeProfitPrice {
		m.logger.Info().
			Str("symbol", m.symbol).
			Float64("price", price).
			Float64("take_profit", m.open.TakeProfitPrice).
			Msg("take-profit triggered")
		return m.closePosition(price, ts, ExitTakeProfit)
	}
	return nil
}

// ForceClose closes any open position at the given price with reason
// end_of_period. Used when a backtest range runs out of bars.
func (m *Manager) ForceClose(price float64, ts time.Time) *Trade {
	if m.open == nil {
		return nil
	}
	return m.closePosition(price, ts, ExitEndOfPeriod)
}

func (m *Manager) openPosition(price float64, ts time.Time) *Trade {
	m.open = &Position{
		Symbol:          m.symbol,
		EntryPrice:      price,
		Quantity:        m.positionSize,
		StopLossPrice:   price * (1 - m.stopLossPercent/100),
		TakeProfitPrice: price * (1 + m.takeProfitPercent/100),
		OpenedAt:        ts,
	}

	m.logger.Info().
		Str("symbol", m.symbol).
		Float64("entry", price).
		Float64("quantity", m.positionSize).
		Float64("stop_loss", m.open.StopLossPrice).
		Float64("take_profit", m.open.TakeProfitPrice).
		Msg("opened position")

	return &Trade{
		Symbol:     m.symbol,
		EntryPrice: price,
		Quantity:   m.positionSize,
		Status:     StatusOpen,
		OpenedAt:   ts,
	}
}

func (m *Manager) closePosition(price float64, ts time.Time, reason ExitReason) *Trade {
	pos := m.open
	m.open = nil

	pnl := round2((price - pos.EntryPrice) * pos.Quantity)
	pnlPct := 0.0
	if pos.EntryPrice != 0 {
		pnlPct = round2((price - pos.EntryPrice) / pos.EntryPrice * 100)
	}
	closedAt := ts

	m.logger.Info().
		Str("symbol", m.symbol).
		Str("reason", string(reason)).
		Float64("entry", pos.EntryPrice).
		Float64("exit", price).
		Float64("pnl", pnl).
		Msg("closed position")

	return &Trade{
		Symbol:     pos.Symbol,
		EntryPrice: pos.EntryPrice,
		ExitPrice:  &price,
		Quantity:   pos.Quantity,
		PnL:        &pnl,
		PnLPercent: &pnlPct,
		Status:     StatusClosed,
		ExitReason: reason,
		OpenedAt:   pos.OpenedAt,
		ClosedAt:   &closedAt,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
