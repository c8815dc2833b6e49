package indicators

import (
	"github.com/ducminhle1904/crypto-signal-bot/pkg/types"
)

// Standard indicator periods used across live evaluation and backtesting.
const (
	RSIPeriod        = 14
	MACDFastPeriod   = 12
	MACDSlowPeriod   = 26
	MACDSignalPeriod = 9
	MAShortPeriod    = 20
	MAMediumPeriod   = 50
	MALongPeriod     = 200

	// MaxLookback caps the causal window fed into the calculator. 250 bars
	// covers MA(200) plus warm-up room for RSI and MACD.
	MaxLookback = 250
)

// Calculator computes a full indicator snapshot over a causal bar window.
// It holds no state between calls, so one instance is safe to share across
// concurrent backtest runs.
type Calculator struct {
	rsi   *RSI
	macd  *MACD
	ma20  *SMA
	ma50  *SMA
	ma200 *SMA
}

// NewCalculator creates a Calculator with the standard periods
func NewCalculator() *Calculator {
	return &Calculator{
		rsi:   NewRSI(RSIPeriod),
		macd:  NewMACD(MACDFastPeriod, MACDSlowPeriod, MACDSignalPeriod),
		ma20:  NewSMA(MAShortPeriod),
		ma50:  NewSMA(MAMediumPeriod),
		ma200: NewSMA(MALongPeriod),
	}
}

// Snapshot computes every indicator that has enough history in the given
// bars (oldest first). Indicators without enough bars are left nil; callers
// must treat nil as "condition not evaluable", never as an error.
func (c *Calculator) Snapshot(bars []types.PriceBar) types.IndicatorSnapshot {
	closes := Closes(bars)
	if len(closes) > MaxLookback {
		closes = closes[len(closes)-MaxLookback:]
	}

	snap := types.IndicatorSnapshot{DataPoints: len(closes)}

	if v, err := c.rsi.Calculate(closes); err == nil {
		snap.RSI = &v
	}
	if v, err := c.macd.Calculate(closes); err == nil {
		snap.MACD = v
	}
	if v, err := c.ma20.Calculate(closes); err == nil {
		snap.MA20 = &v
	}
	if v, err := c.ma50.Calculate(closes); err == nil {
		snap.MA50 = &v
	}
	if v, err := c.ma200.Calculate(closes); err == nil {
		snap.MA200 = &v
	}

	return snap
}

// Closes extracts closing prices from bars, oldest first
func Closes(bars []types.PriceBar) []float64 {
	closes := make([]float64, len(bars))
	for i, bar := range bars {
		closes[i] = bar.Close
	}
	return closes
}
