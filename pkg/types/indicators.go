package types

// MACDValue carries the three components of a MACD calculation.
type MACDValue struct {
	Line      float64 `json:"macd_line"`
	Signal    float64 `json:"signal_line"`
	Histogram float64 `json:"histogram"`
}

// IndicatorSnapshot holds whichever indicators had enough history at the
// evaluation point. Nil fields mean "not enough bars yet"; consumers must
// treat them as not evaluable rather than zero.
type IndicatorSnapshot struct {
	RSI        *float64   `json:"rsi"`
	MACD       *MACDValue `json:"macd"`
	MA20       *float64   `json:"ma_20"`
	MA50       *float64   `json:"ma_50"`
	MA200      *float64   `json:"ma_200"`
	DataPoints int        `json:"data_points"`
}
