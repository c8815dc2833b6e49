package signal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ducminhle1904/crypto-signal-bot/internal/sentiment"
	"github.com/ducminhle1904/crypto-signal-bot/pkg/types"
)

var evalTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func fptr(v float64) *float64 { return &v }

func snapshot(rsi, ma50 float64) types.IndicatorSnapshot {
	return types.IndicatorSnapshot{
		RSI:        fptr(rsi),
		MA50:       fptr(ma50),
		DataPoints: 250,
	}
}

func sentScore(v float64) sentiment.Score {
	return sentiment.Score{Value: v, HasData: true, SourcesUsed: 3}
}

func TestGenerator_Buy(t *testing.T) {
	gen := NewGenerator(35, 65, 0.05)

	// RSI oversold, positive sentiment, price below MA(50)
	sig := gen.Evaluate(49000, snapshot(28, 50000), sentScore(0.4), evalTime)

	assert.Equal(t, ActionBuy, sig.Action)
	assert.Equal(t, 1.0, sig.Confidence)
	assert.Equal(t, 3, sig.Reasons.BuyConditions)
	assert.Equal(t, "oversold", sig.Reasons.RSISignal)
	assert.Equal(t, "positive", sig.Reasons.SentimentSignal)
	assert.Equal(t, "below", sig.Reasons.PriceVsMA50)
	assert.Equal(t, 49000.0, sig.PriceAtSignal)
}

func TestGenerator_Sell(t *testing.T) {
	gen := NewGenerator(35, 65, 0.05)

	// RSI overbought, negative sentiment, price above MA(50)
	sig := gen.Evaluate(51000, snapshot(72, 50000), sentScore(-0.3), evalTime)

	assert.Equal(t, ActionSell, sig.Action)
	assert.Equal(t, 1.0, sig.Confidence)
	assert.Equal(t, 3, sig.Reasons.SellConditions)
	assert.Equal(t, "overbought", sig.Reasons.RSISignal)
	assert.Equal(t, "negative", sig.Reasons.SentimentSignal)
	assert.Equal(t, "above", sig.Reasons.PriceVsMA50)
}

func TestGenerator_HoldConfidence(t *testing.T) {
	gen := NewGenerator(35, 65, 0.05)

	// Two of three buy conditions: confidence = round(1 - 2/3) = 0.33
	sig := gen.Evaluate(49000, snapshot(28, 50000), sentScore(-0.5), evalTime)
	assert.Equal(t, ActionHold, sig.Action)
	assert.Equal(t, 0.33, sig.Confidence)

	// One condition: confidence = round(1 - 1/3) = 0.67
	sig = gen.Evaluate(51000, snapshot(50, 50000), sentScore(0.4), evalTime)
	assert.Equal(t, ActionHold, sig.Action)
	assert.Equal(t, 0.67, sig.Confidence)

	// Zero conditions on either side: confidence = 1.0
	sig = gen.Evaluate(50000, types.IndicatorSnapshot{}, sentiment.Score{}, evalTime)
	assert.Equal(t, ActionHold, sig.Action)
	assert.Equal(t, 1.0, sig.Confidence)
}

func TestGenerator_MissingIndicators(t *testing.T) {
	gen := NewGenerator(35, 65, 0.05)

	// No RSI/MA(50): their conditions count as not met, never as errors
	sig := gen.Evaluate(50000, types.IndicatorSnapshot{DataPoints: 5}, sentScore(0.9), evalTime)

	assert.Equal(t, ActionHold, sig.Action)
	assert.Equal(t, 1, sig.Reasons.BuyConditions)
	assert.Empty(t, sig.Reasons.RSISignal)
	assert.Empty(t, sig.Reasons.PriceVsMA50)
}

func TestGenerator_MissingSentiment(t *testing.T) {
	gen := NewGenerator(35, 65, 0.05)

	// Neutral-from-no-data must not satisfy the sentiment condition even
	// with a negative threshold
	gen = NewGenerator(35, 65, -0.2)
	sig := gen.Evaluate(49000, snapshot(28, 50000), sentiment.Score{}, evalTime)

	assert.Equal(t, ActionHold, sig.Action)
	assert.Equal(t, 2, sig.Reasons.BuyConditions)
	assert.Nil(t, sig.SentimentScore)
	assert.Empty(t, sig.Reasons.SentimentSignal)
}

func TestGenerator_BuyWinsWhenBothSidesScore(t *testing.T) {
	// Negative sentiment above the threshold scores for both sides; with
	// the other two buy conditions met the decision is still BUY
	gen := NewGenerator(80, 20, -0.9)

	sig := gen.Evaluate(49000, snapshot(75, 50000), sentScore(-0.5), evalTime)

	assert.Equal(t, 3, sig.Reasons.BuyConditions)
	assert.Equal(t, 1, sig.Reasons.SellConditions)
	assert.Equal(t, ActionBuy, sig.Action)
}

func TestGenerator_MACDInformational(t *testing.T) {
	gen := NewGenerator(35, 65, 0.05)

	snap := snapshot(50, 50000)
	snap.MACD = &types.MACDValue{Line: 10, Signal: 4, Histogram: 6}

	sig := gen.Evaluate(50000, snap, sentScore(0.0), evalTime)

	assert.Equal(t, "bullish", sig.Reasons.MACDTrend)
	// MACD never contributes to either side
	assert.Equal(t, 0, sig.Reasons.BuyConditions)
	assert.Equal(t, 0, sig.Reasons.SellConditions)
}

func TestGenerator_ThresholdsEchoed(t *testing.T) {
	gen := NewGenerator(29, 71, 0.2)

	sig := gen.Evaluate(50000, snapshot(50, 50000), sentScore(0.0), evalTime)

	assert.Equal(t, 29.0, sig.Reasons.Thresholds.RSIBuy)
	assert.Equal(t, 71.0, sig.Reasons.Thresholds.RSISell)
	assert.Equal(t, 0.2, sig.Reasons.Thresholds.SentimentMin)
}
