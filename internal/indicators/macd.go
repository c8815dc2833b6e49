package indicators

import (
	"errors"

	"github.com/ducminhle1904/crypto-signal-bot/pkg/types"
)

// MACD computes the Moving Average Convergence Divergence indicator
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// NewMACD creates a new MACD instance with specified fast, slow, and signal periods
func NewMACD(fast, slow, signal int) *MACD {
	return &MACD{
		fastPeriod:   fast,
		slowPeriod:   slow,
		signalPeriod: signal,
	}
}

// Calculate computes the MACD line, signal line, and histogram from closing
// prices (oldest first). The MACD line is EMA(fast) - EMA(slow); the signal
// line is an EMA of the MACD line itself. Requires slow + signal closes.
func (m *MACD) Calculate(prices []float64) (*types.MACDValue, error) {
	if len(prices) < m.GetRequiredPeriods() {
		return nil, errors.New("insufficient data for MACD calculation")
	}

	fastSeries, err := NewEMA(m.fastPeriod).Series(prices)
	if err != nil {
		return nil, err
	}
	slowSeries, err := NewEMA(m.slowPeriod).Series(prices)
	if err != nil {
		return nil, err
	}

	// MACD line only exists once the slow EMA does
	macdSeries := make([]float64, 0, len(prices)-m.slowPeriod+1)
	for i := m.slowPeriod - 1; i < len(prices); i++ {
		macdSeries = append(macdSeries, fastSeries[i]-slowSeries[i])
	}

	signalSeries, err := NewEMA(m.signalPeriod).Series(macdSeries)
	if err != nil {
		return nil, err
	}

	line := macdSeries[len(macdSeries)-1]
	signal := signalSeries[len(signalSeries)-1]

	return &types.MACDValue{
		Line:      line,
		Signal:    signal,
		Histogram: line - signal,
	}, nil
}

// GetName returns the indicator name
func (m *MACD) GetName() string {
	return "MACD"
}

// GetRequiredPeriods returns the minimum number of closes needed
func (m *MACD) GetRequiredPeriods() int {
	return m.slowPeriod + m.signalPeriod
}
