package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMACD_Calculate_ConstantPrices(t *testing.T) {
	macd := NewMACD(12, 26, 9)

	prices := make([]float64, 40)
	for i := range prices {
		prices[i] = 50000.0
	}

	value, err := macd.Calculate(prices)
	require.NoError(t, err)
	require.NotNil(t, value)

	// Every EMA of a constant series is that constant
	assert.InDelta(t, 0, value.Line, 1e-9)
	assert.InDelta(t, 0, value.Signal, 1e-9)
	assert.InDelta(t, 0, value.Histogram, 1e-9)
}

func TestMACD_Calculate_Uptrend(t *testing.T) {
	macd := NewMACD(12, 26, 9)

	prices := make([]float64, 60)
	for i := range prices {
		prices[i] = 100.0 + float64(i)
	}

	value, err := macd.Calculate(prices)
	require.NoError(t, err)

	// Fast EMA tracks a rising series more closely than the slow EMA
	assert.Greater(t, value.Line, 0.0)
}

func TestMACD_Calculate_Downtrend(t *testing.T) {
	macd := NewMACD(12, 26, 9)

	prices := make([]float64, 60)
	for i := range prices {
		prices[i] = 1000.0 - float64(i)*2
	}

	value, err := macd.Calculate(prices)
	require.NoError(t, err)

	assert.Less(t, value.Line, 0.0)
}

func TestMACD_InsufficientData(t *testing.T) {
	macd := NewMACD(12, 26, 9)

	prices := make([]float64, 34)
	for i := range prices {
		prices[i] = 100.0
	}

	_, err := macd.Calculate(prices)
	assert.Error(t, err)
}

func TestMACD_RequiredPeriods(t *testing.T) {
	assert.Equal(t, 35, NewMACD(12, 26, 9).GetRequiredPeriods())
}
