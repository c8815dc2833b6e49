package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromAggressiveness_Conservative(t *testing.T) {
	params, err := FromAggressiveness(0)
	require.NoError(t, err)

	assert.InDelta(t, 25.0, params.RSIBuy, 1e-9)
	assert.InDelta(t, 75.0, params.RSISell, 1e-9)
	assert.InDelta(t, 0.20, params.SentimentWeight, 1e-9)
	assert.InDelta(t, 0.30, params.SentimentMin, 1e-9)
	assert.InDelta(t, 0.70, params.MinConfidence, 1e-9)
	assert.InDelta(t, 2.0, params.StopLossPercent, 1e-9)
	assert.InDelta(t, 8.0, params.TakeProfitPercent, 1e-9)
}

func TestFromAggressiveness_Balanced(t *testing.T) {
	params, err := FromAggressiveness(50)
	require.NoError(t, err)

	assert.InDelta(t, 35.0, params.RSIBuy, 1e-9)
	assert.InDelta(t, 65.0, params.RSISell, 1e-9)
	assert.InDelta(t, 0.40, params.SentimentWeight, 1e-9)
	assert.InDelta(t, 0.05, params.SentimentMin, 1e-9)
	assert.InDelta(t, 0.50, params.MinConfidence, 1e-9)
	assert.InDelta(t, 3.5, params.StopLossPercent, 1e-9)
	assert.InDelta(t, 5.5, params.TakeProfitPercent, 1e-9)
}

func TestFromAggressiveness_Aggressive(t *testing.T) {
	params, err := FromAggressiveness(100)
	require.NoError(t, err)

	assert.InDelta(t, 45.0, params.RSIBuy, 1e-9)
	assert.InDelta(t, 55.0, params.RSISell, 1e-9)
	assert.InDelta(t, 0.60, params.SentimentWeight, 1e-9)
	assert.InDelta(t, -0.20, params.SentimentMin, 1e-9)
	assert.InDelta(t, 0.30, params.MinConfidence, 1e-9)
	assert.InDelta(t, 5.0, params.StopLossPercent, 1e-9)
	assert.InDelta(t, 3.0, params.TakeProfitPercent, 1e-9)
}

func TestFromAggressiveness_Interpolated(t *testing.T) {
	params, err := FromAggressiveness(20)
	require.NoError(t, err)
	assert.InDelta(t, 29.0, params.RSIBuy, 1e-9)
	assert.InDelta(t, 2.6, params.StopLossPercent, 1e-9)
	assert.InDelta(t, 7.0, params.TakeProfitPercent, 1e-9)

	params, err = FromAggressiveness(80)
	require.NoError(t, err)
	assert.InDelta(t, 41.0, params.RSIBuy, 1e-9)
	assert.InDelta(t, -0.10, params.SentimentMin, 1e-9)
}

func TestFromAggressiveness_OutOfRange(t *testing.T) {
	_, err := FromAggressiveness(-0.01)
	assert.Error(t, err)

	_, err = FromAggressiveness(100.01)
	assert.Error(t, err)
}

func TestParameters_Validate(t *testing.T) {
	valid := Parameters{
		RSIBuy: 30, RSISell: 70,
		StopLossPercent: 3, TakeProfitPercent: 5,
	}
	assert.NoError(t, valid.Validate())

	inverted := valid
	inverted.RSIBuy, inverted.RSISell = 70, 30
	assert.Error(t, inverted.Validate())

	noStop := valid
	noStop.StopLossPercent = 0
	assert.Error(t, noStop.Validate())

	noTarget := valid
	noTarget.TakeProfitPercent = -1
	assert.Error(t, noTarget.Validate())
}

func TestPresetsAreValid(t *testing.T) {
	assert.NoError(t, Conservative.Validate())
	assert.NoError(t, Balanced.Validate())
	assert.NoError(t, Aggressive.Validate())
}

func TestPresetsMatchInterpolation(t *testing.T) {
	// Aggressiveness 0 hits the conservative anchor exactly
	conservative, err := FromAggressiveness(0)
	require.NoError(t, err)
	assert.Equal(t, Conservative, conservative)
}

func TestPreview(t *testing.T) {
	result, err := Preview(50)
	require.NoError(t, err)

	assert.Equal(t, 50.0, result.Aggressiveness)
	assert.Equal(t, RiskMedium, result.RiskLevel)
	// 0.3 + 0.5*4.5 = 2.55 trades/day
	assert.InDelta(t, 2.55, result.EstimatedTradesPerDay, 1e-9)
	// 0.75 - 0.5*0.2 = 0.65
	assert.InDelta(t, 0.65, result.EstimatedWinRate, 1e-9)
}

func TestPreview_RiskBuckets(t *testing.T) {
	low, err := Preview(0)
	require.NoError(t, err)
	assert.Equal(t, RiskLow, low.RiskLevel)

	edge, err := Preview(29.9)
	require.NoError(t, err)
	assert.Equal(t, RiskLow, edge.RiskLevel)

	medium, err := Preview(30)
	require.NoError(t, err)
	assert.Equal(t, RiskMedium, medium.RiskLevel)

	high, err := Preview(70)
	require.NoError(t, err)
	assert.Equal(t, RiskHigh, high.RiskLevel)
}

func TestPreview_OutOfRange(t *testing.T) {
	_, err := Preview(101)
	assert.Error(t, err)
}
