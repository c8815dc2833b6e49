package indicators

import (
	"errors"
	"math"
)

// RSI calculates the Relative Strength Index using Wilder smoothing
type RSI struct {
	period int
}

// NewRSI creates a new RSI instance with the given period
func NewRSI(period int) *RSI {
	return &RSI{period: period}
}

// Calculate computes the RSI value from the given closing prices (oldest first).
// The seed averages are simple means of the first `period` deltas; every
// later delta is folded in with avg = (avg*(period-1) + delta) / period.
func (r *RSI) Calculate(prices []float64) (float64, error) {
	if len(prices) < r.period+1 {
		return 0, errors.New("insufficient data for RSI calculation")
	}

	deltas := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		deltas[i-1] = prices[i] - prices[i-1]
	}

	avgGain := 0.0
	avgLoss := 0.0
	for _, d := range deltas[:r.period] {
		if d > 0 {
			avgGain += d
		} else {
			avgLoss += math.Abs(d)
		}
	}
	avgGain /= float64(r.period)
	avgLoss /= float64(r.period)

	for _, d := range deltas[r.period:] {
		gain := 0.0
		loss := 0.0
		if d > 0 {
			gain = d
		} else {
			loss = math.Abs(d)
		}
		avgGain = (avgGain*float64(r.period-1) + gain) / float64(r.period)
		avgLoss = (avgLoss*float64(r.period-1) + loss) / float64(r.period)
	}

	// All-loss-free windows (including flat prices) read as maximum strength
	if avgLoss == 0 {
		return 100, nil
	}

	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs)), nil
}

// GetName returns the indicator name
func (r *RSI) GetName() string {
	return "RSI"
}

// GetRequiredPeriods returns the minimum number of closes needed
func (r *RSI) GetRequiredPeriods() int {
	return r.period + 1
}
