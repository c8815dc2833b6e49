package reporting

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ducminhle1904/crypto-signal-bot/internal/backtest"
)

// ConsoleReporter prints backtest results as terminal tables
type ConsoleReporter struct{}

// NewConsoleReporter creates a new console reporter
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{}
}

// OutputResult prints the metrics block and a trade summary to stdout
func (r *ConsoleReporter) OutputResult(result *backtest.Result) {
	if result.Status == backtest.StatusError {
		reason := ""
		if result.ErrorReason != nil {
			reason = *result.ErrorReason
		}
		fmt.Printf("❌ Backtest failed for %s: %s\n", result.Symbol, reason)
		return
	}

	m := result.Metrics

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("BACKTEST RESULTS: %s (%s)", result.Symbol, result.Parameters.Rule))
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"Period", fmt.Sprintf("%s → %s",
			result.PeriodStart.Format("2006-01-02 15:04"),
			result.PeriodEnd.Format("2006-01-02 15:04"))},
		{"Bars", result.DataPoints},
		{"Initial Balance", fmt.Sprintf("$%.2f", result.Parameters.InitialBalance)},
		{"Final Balance", fmt.Sprintf("$%.2f", m.FinalBalance)},
		{"Total P&L", fmt.Sprintf("$%.2f (%.2f%%)", m.TotalPnL, m.TotalPnLPercent)},
		{"Total Trades", m.TotalTrades},
		{"Win Rate", fmt.Sprintf("%.1f%%", m.WinRate)},
		{"Avg Win / Avg Loss", fmt.Sprintf("$%.2f / $%.2f", m.AvgWin, m.AvgLoss)},
		{"Profit Factor", formatNullable(m.ProfitFactor)},
		{"Max Drawdown", fmt.Sprintf("$%.2f (%.2f%%)", m.MaxDrawdown, m.MaxDrawdownPercent)},
		{"Sharpe Ratio", formatNullable(m.SharpeRatio)},
		{"Best / Worst Trade", fmt.Sprintf("$%.2f / $%.2f", m.BestTrade, m.WorstTrade)},
		{"Avg Hold (hours)", formatNullable(m.AvgHoldDurationHours)},
	})
	t.Render()

	if len(result.Trades) > 0 {
		r.outputTrades(result)
	}
}

func (r *ConsoleReporter) outputTrades(result *backtest.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("TRADES")
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"#", "Opened", "Closed", "Entry", "Exit", "Qty", "P&L", "Exit Reason"})

	for i, trade := range result.Trades {
		closed := ""
		exitPrice := ""
		pnl := ""
		if trade.ClosedAt != nil {
			closed = trade.ClosedAt.Format("2006-01-02 15:04")
		}
		if trade.ExitPrice != nil {
			exitPrice = fmt.Sprintf("%.2f", *trade.ExitPrice)
		}
		if trade.PnL != nil {
			pnl = fmt.Sprintf("%.2f", *trade.PnL)
		}
		t.AppendRow(table.Row{
			i + 1,
			trade.OpenedAt.Format("2006-01-02 15:04"),
			closed,
			fmt.Sprintf("%.2f", trade.EntryPrice),
			exitPrice,
			fmt.Sprintf("%.4f", trade.Quantity),
			pnl,
			trade.ExitReason,
		})
	}
	t.Render()
}

func formatNullable(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", *v)
}
