package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ducminhle1904/crypto-signal-bot/internal/strategy"
)

func TestWeightedSentimentRule(t *testing.T) {
	params, err := strategy.FromAggressiveness(50)
	require.NoError(t, err)

	rule, err := NewWeightedSentimentRule(params)
	require.NoError(t, err)

	assert.Equal(t, "weighted_sentiment", rule.Name())
	assert.Equal(t, params.StopLossPercent, rule.StopLossPercent())
	assert.Equal(t, params.TakeProfitPercent, rule.TakeProfitPercent())
	assert.Equal(t, params, rule.Parameters())
}

func TestWeightedSentimentRule_RejectsInvalidParams(t *testing.T) {
	bad := strategy.Parameters{RSIBuy: 70, RSISell: 30, StopLossPercent: 3, TakeProfitPercent: 5}
	_, err := NewWeightedSentimentRule(bad)
	assert.Error(t, err)
}

func TestRSIOnlyRule(t *testing.T) {
	rule, err := NewRSIOnlyRule(30, 70, 3, 5)
	require.NoError(t, err)

	assert.Equal(t, "rsi_only", rule.Name())
	assert.Equal(t, 3.0, rule.StopLossPercent())
	assert.Equal(t, 5.0, rule.TakeProfitPercent())

	// Sentiment threshold is zero, so neutral-positive sentiment plus
	// oversold RSI and price under MA(50) still buys
	sig := rule.Evaluate(49000, snapshot(25, 50000), sentScore(0.1), evalTime)
	assert.Equal(t, ActionBuy, sig.Action)
}

func TestRSIOnlyRule_RejectsInvalidThresholds(t *testing.T) {
	_, err := NewRSIOnlyRule(70, 30, 3, 5)
	assert.Error(t, err)

	_, err = NewRSIOnlyRule(30, 70, 0, 5)
	assert.Error(t, err)

	_, err = NewRSIOnlyRule(30, 70, 3, -1)
	assert.Error(t, err)
}
