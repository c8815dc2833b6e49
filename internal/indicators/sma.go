package indicators

import "errors"

// SMA represents the Simple Moving Average technical indicator
type SMA struct {
	period int
}

// NewSMA creates a new SMA indicator
func NewSMA(period int) *SMA {
	return &SMA{period: period}
}

// Calculate returns the arithmetic mean of the last `period` closes
func (s *SMA) Calculate(prices []float64) (float64, error) {
	if len(prices) < s.period {
		return 0, errors.New("insufficient data for SMA calculation")
	}

	sum := 0.0
	for _, p := range prices[len(prices)-s.period:] {
		sum += p
	}
	return sum / float64(s.period), nil
}

// GetName returns the indicator name
func (s *SMA) GetName() string {
	return "SMA"
}

// GetRequiredPeriods returns the minimum number of closes needed
func (s *SMA) GetRequiredPeriods() int {
	return s.period
}
