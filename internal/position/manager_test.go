package position

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ducminhle1904/crypto-signal-bot/internal/signal"
)

var tradeTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func buySignal(price float64) signal.Signal {
	return signal.Signal{Action: signal.ActionBuy, PriceAtSignal: price, Timestamp: tradeTime}
}

func sellSignal(price float64, ts time.Time) signal.Signal {
	return signal.Signal{Action: signal.ActionSell, PriceAtSignal: price, Timestamp: ts}
}

func newTestManager() *Manager {
	return NewManager("BTCUSDT", 0.1, 3.0, 5.0, zerolog.Nop())
}

func TestManager_OpensOnBuy(t *testing.T) {
	m := newTestManager()

	trade := m.OnSignal(buySignal(68000))
	require.NotNil(t, trade)

	assert.Equal(t, StatusOpen, trade.Status)
	assert.Equal(t, 68000.0, trade.EntryPrice)
	assert.Equal(t, 0.1, trade.Quantity)
	assert.Nil(t, trade.ExitPrice)
	assert.Nil(t, trade.PnL)

	pos := m.Open()
	require.NotNil(t, pos)
	// 3% stop, 5% target off the entry
	assert.InDelta(t, 65960.0, pos.StopLossPrice, 1e-6)
	assert.InDelta(t, 71400.0, pos.TakeProfitPrice, 1e-6)
}

func TestManager_SingleOpenPosition(t *testing.T) {
	m := newTestManager()

	require.NotNil(t, m.OnSignal(buySignal(68000)))
	assert.Nil(t, m.OnSignal(buySignal(69000)), "second BUY must be a no-op")

	// Entry price of the original position is untouched
	assert.Equal(t, 68000.0, m.Open().EntryPrice)
}

func TestManager_SellWithoutPosition(t *testing.T) {
	m := newTestManager()
	assert.Nil(t, m.OnSignal(sellSignal(68000, tradeTime)))
}

func TestManager_ClosesOnSell(t *testing.T) {
	m := newTestManager()
	m.OnSignal(buySignal(68000))

	closedAt := tradeTime.Add(6 * time.Hour)
	trade := m.OnSignal(sellSignal(70000, closedAt))
	require.NotNil(t, trade)

	assert.Equal(t, StatusClosed, trade.Status)
	assert.Equal(t, ExitSignalSell, trade.ExitReason)
	require.NotNil(t, trade.PnL)
	// (70000-68000) * 0.1 = 200.00
	assert.Equal(t, 200.0, *trade.PnL)
	require.NotNil(t, trade.PnLPercent)
	assert.InDelta(t, 2.94, *trade.PnLPercent, 1e-9)
	assert.Equal(t, closedAt, *trade.ClosedAt)
	assert.False(t, m.HasOpen())
}

func TestManager_TakeProfit(t *testing.T) {
	m := newTestManager()
	m.OnSignal(buySignal(68000))

	// Below the 71400 target: nothing triggers
	assert.Nil(t, m.CheckStops(71000, tradeTime.Add(time.Hour)))

	trade := m.CheckStops(71450, tradeTime.Add(2*time.Hour))
	require.NotNil(t, trade)
	assert.Equal(t, ExitTakeProfit, trade.ExitReason)
	// (71450-68000) * 0.1 = 345.00
	assert.Equal(t, 345.0, *trade.PnL)
}

func TestManager_StopLoss(t *testing.T) {
	m := newTestManager()
	m.OnSignal(buySignal(68000))

	trade := m.CheckStops(65900, tradeTime.Add(time.Hour))
	require.NotNil(t, trade)
	assert.Equal(t, ExitStopLoss, trade.ExitReason)
	// (65900-68000) * 0.1 = -210.00
	assert.Equal(t, -210.0, *trade.PnL)
	assert.False(t, m.HasOpen())
}

func TestManager_StopLossPriority(t *testing.T) {
	// Pathological configuration where one price satisfies both levels:
	// stop-loss must win
	m := NewManager("BTCUSDT", 1.0, 0.0, 0.0, zerolog.Nop())
	m.OnSignal(buySignal(100))

	trade := m.CheckStops(100, tradeTime.Add(time.Minute))
	require.NotNil(t, trade)
	assert.Equal(t, ExitStopLoss, trade.ExitReason)
}

func TestManager_ForceClose(t *testing.T) {
	m := newTestManager()

	assert.Nil(t, m.ForceClose(68000, tradeTime), "nothing to close")

	m.OnSignal(buySignal(68000))
	trade := m.ForceClose(68500, tradeTime.Add(24*time.Hour))
	require.NotNil(t, trade)
	assert.Equal(t, ExitEndOfPeriod, trade.ExitReason)
	assert.Equal(t, 50.0, *trade.PnL)
}

func TestManager_CheckStopsWithoutPosition(t *testing.T) {
	m := newTestManager()
	assert.Nil(t, m.CheckStops(1, tradeTime))
}

func TestTrade_HoldDuration(t *testing.T) {
	closed := tradeTime.Add(90 * time.Minute)
	trade := Trade{OpenedAt: tradeTime, ClosedAt: &closed}
	assert.Equal(t, 90*time.Minute, trade.HoldDuration())

	open := Trade{OpenedAt: tradeTime}
	assert.Equal(t, time.Duration(0), open.HoldDuration())
}
