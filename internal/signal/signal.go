package signal

import (
	"time"

	"github.com/ducminhle1904/crypto-signal-bot/pkg/types"
)

// Action is the terminal outcome of one signal evaluation.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// ThresholdSnapshot echoes the decision thresholds in the reasons record so
// a stored signal can be audited against the parameters that produced it.
type ThresholdSnapshot struct {
	RSIBuy       float64 `json:"rsi_buy"`
	RSISell      float64 `json:"rsi_sell"`
	SentimentMin float64 `json:"sentiment_min"`
}

// Reasons names every condition that was evaluated and whether it held.
// Label fields are empty when the corresponding input was unavailable.
type Reasons struct {
	RSI             *float64          `json:"rsi"`
	Sentiment       *float64          `json:"sentiment"`
	CurrentPrice    float64           `json:"current_price"`
	MA50            *float64          `json:"ma_50"`
	RSISignal       string            `json:"rsi_signal,omitempty"`       // oversold / neutral / overbought
	SentimentSignal string            `json:"sentiment_signal,omitempty"` // positive / neutral / negative
	PriceVsMA50     string            `json:"price_vs_ma50,omitempty"`    // below / above
	MACDTrend       string            `json:"macd_trend,omitempty"`       // bullish / bearish
	BuyConditions   int               `json:"buy_conditions"`
	SellConditions  int               `json:"sell_conditions"`
	Decision        string            `json:"decision"`
	Thresholds      ThresholdSnapshot `json:"strategy_params"`
}

// Signal is one immutable BUY/SELL/HOLD decision with its full audit trail.
type Signal struct {
	Symbol              string                  `json:"symbol,omitempty"`
	Action              Action                  `json:"action"`
	Confidence          float64                 `json:"confidence"`
	PriceAtSignal       float64                 `json:"price_at_signal"`
	Reasons             Reasons                 `json:"reasons"`
	TechnicalIndicators types.IndicatorSnapshot `json:"technical_indicators"`
	SentimentScore      *float64                `json:"sentiment_score"`
	Timestamp           time.Time               `json:"timestamp"`
}
