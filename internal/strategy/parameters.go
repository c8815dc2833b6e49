package strategy

import (
	"fmt"

	engerr "github.com/ducminhle1904/crypto-signal-bot/internal/errors"
)

// Parameters is the full seven-value decision parameter set used by the
// weighted-sentiment rule and the position manager.
type Parameters struct {
	RSIBuy            float64 `json:"rsi_buy"`
	RSISell           float64 `json:"rsi_sell"`
	SentimentWeight   float64 `json:"sentiment_weight"`
	SentimentMin      float64 `json:"sentiment_min"`
	MinConfidence     float64 `json:"min_confidence"`
	StopLossPercent   float64 `json:"stop_loss_percent"`
	TakeProfitPercent float64 `json:"take_profit_percent"`
}

// Validate checks the structural invariants of a parameter set
func (p Parameters) Validate() error {
	if p.RSIBuy >= p.RSISell {
		return engerr.InvalidParameter("strategy",
			fmt.Sprintf("rsi_buy (%.2f) must be below rsi_sell (%.2f)", p.RSIBuy, p.RSISell))
	}
	if p.StopLossPercent <= 0 {
		return engerr.InvalidParameter("strategy",
			fmt.Sprintf("stop_loss_percent must be positive, got %.2f", p.StopLossPercent))
	}
	if p.TakeProfitPercent <= 0 {
		return engerr.InvalidParameter("strategy",
			fmt.Sprintf("take_profit_percent must be positive, got %.2f", p.TakeProfitPercent))
	}
	return nil
}

// FromAggressiveness maps a 0-100 aggressiveness scalar to a full parameter
// set by linear interpolation between the conservative and aggressive
// anchors. Values outside [0,100] are rejected, never silently clamped.
func FromAggressiveness(aggressiveness float64) (Parameters, error) {
	if aggressiveness < 0 || aggressiveness > 100 {
		return Parameters{}, engerr.InvalidParameter("strategy",
			fmt.Sprintf("aggressiveness must be in [0,100], got %.2f", aggressiveness))
	}

	agg := aggressiveness
	return Parameters{
		RSIBuy:            25 + agg*0.20,  // 25 -> 45
		RSISell:           75 - agg*0.20,  // 75 -> 55
		SentimentWeight:   0.20 + agg*0.004, // 0.20 -> 0.60
		SentimentMin:      0.30 - agg*0.005, // 0.30 -> -0.20
		MinConfidence:     0.70 - agg*0.004, // 0.70 -> 0.30
		StopLossPercent:   2.0 + agg*0.03,  // 2% -> 5%
		TakeProfitPercent: 8.0 - agg*0.05,  // 8% -> 3%
	}, nil
}

// Preset parameter sets matching the documented strategy profiles.
var (
	Conservative = Parameters{
		RSIBuy:            25,
		RSISell:           75,
		SentimentWeight:   0.2,
		SentimentMin:      0.3,
		MinConfidence:     0.7,
		StopLossPercent:   2.0,
		TakeProfitPercent: 8.0,
	}

	Balanced = Parameters{
		RSIBuy:            35,
		RSISell:           65,
		SentimentWeight:   0.4,
		SentimentMin:      0.0,
		MinConfidence:     0.5,
		StopLossPercent:   3.0,
		TakeProfitPercent: 5.0,
	}

	Aggressive = Parameters{
		RSIBuy:            45,
		RSISell:           55,
		SentimentWeight:   0.6,
		SentimentMin:      -0.2,
		MinConfidence:     0.3,
		StopLossPercent:   5.0,
		TakeProfitPercent: 3.0,
	}
)
