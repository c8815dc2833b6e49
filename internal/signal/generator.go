package signal

import (
	"fmt"
	"math"
	"time"

	"github.com/ducminhle1904/crypto-signal-bot/internal/sentiment"
	"github.com/ducminhle1904/crypto-signal-bot/pkg/types"
)

// Generator evaluates the three-condition decision rule against one bar.
// Each call is a pure function of its inputs; no state is carried between
// evaluations.
//
// BUY requires all three: RSI below the buy threshold, sentiment above the
// minimum, and price below MA(50). SELL requires all three: RSI above the
// sell threshold, negative sentiment, and price above MA(50). Anything else
// is a HOLD whose confidence reflects how far from a full signal we were.
// A missing indicator or missing sentiment counts its condition as not met;
// the generator degrades to HOLD rather than failing.
type Generator struct {
	rsiBuy       float64
	rsiSell      float64
	sentimentMin float64
}

// NewGenerator creates a generator with explicit decision thresholds
func NewGenerator(rsiBuy, rsiSell, sentimentMin float64) *Generator {
	return &Generator{
		rsiBuy:       rsiBuy,
		rsiSell:      rsiSell,
		sentimentMin: sentimentMin,
	}
}

// Evaluate produces a signal for the given price, indicator snapshot and
// aggregated sentiment at ts.
func (g *Generator) Evaluate(price float64, snap types.IndicatorSnapshot, sent sentiment.Score, ts time.Time) Signal {
	reasons := Reasons{
		RSI:          snap.RSI,
		CurrentPrice: price,
		MA50:         snap.MA50,
		Thresholds: ThresholdSnapshot{
			RSIBuy:       g.rsiBuy,
			RSISell:      g.rsiSell,
			SentimentMin: g.sentimentMin,
		},
	}

	var sentValue *float64
	if sent.HasData {
		v := sent.Value
		sentValue = &v
		reasons.Sentiment = &v
	}

	buyConditions := 0
	sellConditions := 0

	if snap.RSI != nil {
		switch {
		case *snap.RSI < g.rsiBuy:
			buyConditions++
			reasons.RSISignal = "oversold"
		case *snap.RSI > g.rsiSell:
			sellConditions++
			reasons.RSISignal = "overbought"
		default:
			reasons.RSISignal = "neutral"
		}
	}

	if sent.HasData {
		switch {
		case sent.Value > g.sentimentMin:
			buyConditions++
			reasons.SentimentSignal = "positive"
		case sent.Value < 0:
			reasons.SentimentSignal = "negative"
		default:
			reasons.SentimentSignal = "neutral"
		}
		if sent.Value < 0 {
			sellConditions++
		}
	}

	if snap.MA50 != nil {
		if price < *snap.MA50 {
			buyConditions++
			reasons.PriceVsMA50 = "below"
		} else if price > *snap.MA50 {
			sellConditions++
			reasons.PriceVsMA50 = "above"
		}
	}

	reasons.BuyConditions = buyConditions
	reasons.SellConditions = sellConditions

	// MACD context is informational only, never part of the decision
	if snap.MACD != nil {
		if snap.MACD.Histogram > 0 {
			reasons.MACDTrend = "bullish"
		} else {
			reasons.MACDTrend = "bearish"
		}
	}

	var action Action
	var confidence float64
	switch {
	// BUY wins if inconsistent inputs ever satisfy both sides at once
	case buyConditions == 3:
		action = ActionBuy
		confidence = 1.0
		reasons.Decision = fmt.Sprintf(
			"All BUY conditions met: RSI<%.1f, sentiment>%.2f, price<MA(50)",
			g.rsiBuy, g.sentimentMin)
	case sellConditions == 3:
		action = ActionSell
		confidence = 1.0
		reasons.Decision = fmt.Sprintf(
			"All SELL conditions met: RSI>%.1f, negative sentiment, price>MA(50)",
			g.rsiSell)
	default:
		action = ActionHold
		maxPartial := buyConditions
		if sellConditions > maxPartial {
			maxPartial = sellConditions
		}
		confidence = math.Round((1.0-float64(maxPartial)/3.0)*100) / 100
		reasons.Decision = fmt.Sprintf(
			"HOLD: buy_conditions=%d/3, sell_conditions=%d/3",
			buyConditions, sellConditions)
	}

	return Signal{
		Action:              action,
		Confidence:          confidence,
		PriceAtSignal:       price,
		Reasons:             reasons,
		TechnicalIndicators: snap,
		SentimentScore:      sentValue,
		Timestamp:           ts,
	}
}
