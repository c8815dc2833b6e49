package reporting

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ducminhle1904/crypto-signal-bot/internal/backtest"
	"github.com/ducminhle1904/crypto-signal-bot/internal/position"
)

func sampleResult() *backtest.Result {
	opened := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	closed := opened.Add(6 * time.Hour)
	exit := 71400.0
	pnl := 340.0
	pnlPct := 5.0

	trades := []position.Trade{{
		Symbol:     "BTCUSDT",
		EntryPrice: 68000,
		ExitPrice:  &exit,
		Quantity:   0.1,
		PnL:        &pnl,
		PnLPercent: &pnlPct,
		Status:     position.StatusClosed,
		ExitReason: position.ExitTakeProfit,
		OpenedAt:   opened,
		ClosedAt:   &closed,
	}}

	equity := []backtest.EquityPoint{
		{Timestamp: opened, Balance: 10000},
		{Timestamp: closed, Balance: 10340},
	}

	return &backtest.Result{
		Status:      backtest.StatusCompleted,
		Symbol:      "BTCUSDT",
		PeriodStart: opened.Add(-24 * time.Hour),
		PeriodEnd:   closed,
		DataPoints:  300,
		Parameters: backtest.RunParameters{
			Rule:              "rsi_only",
			PositionSize:      0.1,
			StopLossPercent:   3,
			TakeProfitPercent: 5,
			InitialBalance:    10000,
		},
		Trades:      trades,
		EquityCurve: equity,
		Metrics:     backtest.CalculateMetrics(trades, equity, 10000),
	}
}

func TestWriteResultJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "result.json")

	require.NoError(t, WriteResultJSON(sampleResult(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded backtest.Result
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, backtest.StatusCompleted, decoded.Status)
	assert.Equal(t, "BTCUSDT", decoded.Symbol)
	assert.Len(t, decoded.Trades, 1)
}

func TestJSONReporter_FormatResult(t *testing.T) {
	data, err := NewJSONReporter().FormatResult(sampleResult())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"rsi_only"`)
	assert.Contains(t, string(data), `"take_profit"`)
}

func TestExcelReporter_WriteResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "result.xlsx")

	require.NoError(t, NewExcelReporter().WriteResult(sampleResult(), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestConsoleReporter_OutputResult(t *testing.T) {
	// Render both the completed and the error shape; the reporter must not
	// panic on either
	NewConsoleReporter().OutputResult(sampleResult())

	reason := "insufficient data: 100 price bars (need >= 250)"
	NewConsoleReporter().OutputResult(&backtest.Result{
		Status:      backtest.StatusError,
		Symbol:      "BTCUSDT",
		ErrorReason: &reason,
	})
}
