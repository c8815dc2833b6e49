package strategy

import "math"

// RiskLevel buckets an aggressiveness value for display purposes.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// PreviewResult describes what a given aggressiveness would produce, with
// rough activity and win-rate estimates for display alongside the parameters.
type PreviewResult struct {
	Aggressiveness        float64    `json:"aggressiveness"`
	Parameters            Parameters `json:"parameters"`
	EstimatedTradesPerDay float64    `json:"estimated_trades_per_day"`
	EstimatedWinRate      float64    `json:"estimated_win_rate"`
	RiskLevel             RiskLevel  `json:"risk_level"`
}

// Preview computes the parameter set and display estimates for an
// aggressiveness value. The estimates are heuristic, not backtested.
func Preview(aggressiveness float64) (PreviewResult, error) {
	params, err := FromAggressiveness(aggressiveness)
	if err != nil {
		return PreviewResult{}, err
	}

	trades := 0.3 + (aggressiveness/100)*4.5
	winRate := 0.75 - (aggressiveness/100)*0.2

	level := RiskHigh
	switch {
	case aggressiveness < 30:
		level = RiskLow
	case aggressiveness < 70:
		level = RiskMedium
	}

	return PreviewResult{
		Aggressiveness:        aggressiveness,
		Parameters:            params,
		EstimatedTradesPerDay: round2(trades),
		EstimatedWinRate:      round2(winRate),
		RiskLevel:             level,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
