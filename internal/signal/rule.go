package signal

import (
	"fmt"
	"time"

	engerr "github.com/ducminhle1904/crypto-signal-bot/internal/errors"
	"github.com/ducminhle1904/crypto-signal-bot/internal/sentiment"
	"github.com/ducminhle1904/crypto-signal-bot/internal/strategy"
	"github.com/ducminhle1904/crypto-signal-bot/pkg/types"
)

// Rule is the decision contract the backtest engine replays. Both the full
// weighted-sentiment parameter set and the simplified RSI-only backtest
// shape implement it, so the replay loop stays agnostic to which one it was
// given.
type Rule interface {
	// Evaluate returns the signal for one bar given its causal indicator
	// snapshot and the aggregated sentiment at that time.
	Evaluate(price float64, snap types.IndicatorSnapshot, sent sentiment.Score, ts time.Time) Signal

	// Name identifies the rule variant for logs and reports
	Name() string

	// StopLossPercent and TakeProfitPercent feed the position manager
	StopLossPercent() float64
	TakeProfitPercent() float64
}

// WeightedSentimentRule drives decisions from a full seven-parameter
// strategy set, typically derived from an aggressiveness scalar.
type WeightedSentimentRule struct {
	params    strategy.Parameters
	generator *Generator
}

// NewWeightedSentimentRule validates the parameter set and wraps it in a rule
func NewWeightedSentimentRule(params strategy.Parameters) (*WeightedSentimentRule, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &WeightedSentimentRule{
		params:    params,
		generator: NewGenerator(params.RSIBuy, params.RSISell, params.SentimentMin),
	}, nil
}

// Evaluate implements Rule
func (r *WeightedSentimentRule) Evaluate(price float64, snap types.IndicatorSnapshot, sent sentiment.Score, ts time.Time) Signal {
	return r.generator.Evaluate(price, snap, sent, ts)
}

// Name implements Rule
func (r *WeightedSentimentRule) Name() string {
	return "weighted_sentiment"
}

// StopLossPercent implements Rule
func (r *WeightedSentimentRule) StopLossPercent() float64 {
	return r.params.StopLossPercent
}

// TakeProfitPercent implements Rule
func (r *WeightedSentimentRule) TakeProfitPercent() float64 {
	return r.params.TakeProfitPercent
}

// Parameters returns the underlying parameter set
func (r *WeightedSentimentRule) Parameters() strategy.Parameters {
	return r.params
}

// RSIOnlyRule is the simplified backtest-request shape: RSI oversold and
// overbought thresholds plus SL/TP percentages. Its sentiment terms are
// fixed (buy above 0, sell below 0) and a bar with no sentiment data can
// satisfy neither, matching the historical replay contract.
type RSIOnlyRule struct {
	oversold   float64
	overbought float64
	stopLoss   float64
	takeProfit float64
	generator  *Generator
}

// NewRSIOnlyRule validates thresholds and builds the rule
func NewRSIOnlyRule(oversold, overbought, stopLossPercent, takeProfitPercent float64) (*RSIOnlyRule, error) {
	if oversold >= overbought {
		return nil, engerr.InvalidParameter("signal",
			fmt.Sprintf("rsi_oversold (%.2f) must be below rsi_overbought (%.2f)", oversold, overbought))
	}
	if stopLossPercent <= 0 || takeProfitPercent <= 0 {
		return nil, engerr.InvalidParameter("signal",
			"stop_loss_percent and take_profit_percent must be positive")
	}
	return &RSIOnlyRule{
		oversold:   oversold,
		overbought: overbought,
		stopLoss:   stopLossPercent,
		takeProfit: takeProfitPercent,
		generator:  NewGenerator(oversold, overbought, 0),
	}, nil
}

// Evaluate implements Rule
func (r *RSIOnlyRule) Evaluate(price float64, snap types.IndicatorSnapshot, sent sentiment.Score, ts time.Time) Signal {
	return r.generator.Evaluate(price, snap, sent, ts)
}

// Name implements Rule
func (r *RSIOnlyRule) Name() string {
	return "rsi_only"
}

// StopLossPercent implements Rule
func (r *RSIOnlyRule) StopLossPercent() float64 {
	return r.stopLoss
}

// TakeProfitPercent implements Rule
func (r *RSIOnlyRule) TakeProfitPercent() float64 {
	return r.takeProfit
}
