package indicators

import "errors"

// EMA represents the Exponential Moving Average technical indicator
type EMA struct {
	period     int
	multiplier float64
}

// NewEMA creates a new EMA indicator
func NewEMA(period int) *EMA {
	return &EMA{
		period:     period,
		multiplier: 2.0 / float64(period+1),
	}
}

// Series computes the EMA over the whole input and returns a slice aligned
// with values: entries before index period-1 are zero and not meaningful.
// The EMA is seeded with the simple average of the first `period` values.
func (e *EMA) Series(values []float64) ([]float64, error) {
	if len(values) < e.period {
		return nil, errors.New("insufficient data for EMA calculation")
	}

	out := make([]float64, len(values))

	seed := 0.0
	for _, v := range values[:e.period] {
		seed += v
	}
	seed /= float64(e.period)
	out[e.period-1] = seed

	for i := e.period; i < len(values); i++ {
		out[i] = (values[i]-out[i-1])*e.multiplier + out[i-1]
	}

	return out, nil
}

// Calculate returns the latest EMA value
func (e *EMA) Calculate(values []float64) (float64, error) {
	series, err := e.Series(values)
	if err != nil {
		return 0, err
	}
	return series[len(series)-1], nil
}

// GetName returns the indicator name
func (e *EMA) GetName() string {
	return "EMA"
}

// GetRequiredPeriods returns the minimum number of closes needed
func (e *EMA) GetRequiredPeriods() int {
	return e.period
}
