package backtest

import (
	"math"

	"github.com/ducminhle1904/crypto-signal-bot/internal/position"
)

// tradePeriodsPerYear annualizes the per-trade Sharpe ratio; ~3 trades/day
// matches the cadence the engine was tuned for.
const tradePeriodsPerYear = 1095

// CalculateMetrics computes the full metrics block from the closed trades
// and realized equity curve of one run. Every numeric edge case (no trades,
// no losses, zero variance) produces a defined value or null, never an error.
func CalculateMetrics(trades []position.Trade, equity []EquityPoint, initialBalance float64) Metrics {
	if len(trades) == 0 {
		return emptyMetrics(initialBalance)
	}

	var pnls []float64
	var wins, losses []float64
	for _, t := range trades {
		if t.PnL == nil {
			continue
		}
		pnls = append(pnls, *t.PnL)
		if *t.PnL > 0 {
			wins = append(wins, *t.PnL)
		} else {
			losses = append(losses, *t.PnL)
		}
	}
	if len(pnls) == 0 {
		return emptyMetrics(initialBalance)
	}

	totalPnL := sum(pnls)
	totalPnLPercent := 0.0
	if initialBalance != 0 {
		totalPnLPercent = totalPnL / initialBalance * 100
	}

	m := Metrics{
		TotalTrades:     len(pnls),
		WinningTrades:   len(wins),
		LosingTrades:    len(losses),
		WinRate:         round2(float64(len(wins)) / float64(len(pnls)) * 100),
		TotalPnL:        round2(totalPnL),
		TotalPnLPercent: round2(totalPnLPercent),
		BestTrade:       round2(maxOf(pnls)),
		WorstTrade:      round2(minOf(pnls)),
		FinalBalance:    round2(initialBalance + totalPnL),
	}

	if len(wins) > 0 {
		m.AvgWin = round2(sum(wins) / float64(len(wins)))
	}
	if len(losses) > 0 {
		m.AvgLoss = round2(sum(losses) / float64(len(losses)))
	}

	// Profit factor is undefined without any losing trade
	grossProfit := sum(wins)
	grossLoss := math.Abs(sum(losses))
	if grossLoss > 0 {
		pf := round4(grossProfit / grossLoss)
		m.ProfitFactor = &pf
	}

	m.MaxDrawdown, m.MaxDrawdownPercent = maxDrawdown(equity)

	// Sharpe is undefined for fewer than two trades or zero variance
	if len(pnls) >= 2 {
		mean := totalPnL / float64(len(pnls))
		variance := 0.0
		for _, p := range pnls {
			variance += (p - mean) * (p - mean)
		}
		variance /= float64(len(pnls) - 1)
		std := math.Sqrt(variance)
		if std > 0 {
			sharpe := round4(mean / std * math.Sqrt(tradePeriodsPerYear))
			m.SharpeRatio = &sharpe
		}
	}

	var hours []float64
	for _, t := range trades {
		if t.ClosedAt != nil {
			hours = append(hours, t.HoldDuration().Hours())
		}
	}
	if len(hours) > 0 {
		avg := round2(sum(hours) / float64(len(hours)))
		m.AvgHoldDurationHours = &avg
	}

	return m
}

// maxDrawdown returns the largest peak-to-trough decline over the equity
// curve, in absolute balance and as a percentage of the running peak.
func maxDrawdown(equity []EquityPoint) (float64, float64) {
	peak := math.Inf(-1)
	maxDD := 0.0
	maxDDPct := 0.0
	for _, pt := range equity {
		if pt.Balance > peak {
			peak = pt.Balance
		}
		dd := peak - pt.Balance
		if dd > maxDD {
			maxDD = dd
		}
		if peak > 0 {
			if pct := dd / peak * 100; pct > maxDDPct {
				maxDDPct = pct
			}
		}
	}
	return round2(maxDD), round2(maxDDPct)
}

func emptyMetrics(initialBalance float64) Metrics {
	return Metrics{FinalBalance: round2(initialBalance)}
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
