package backtest

import (
	"time"

	"github.com/ducminhle1904/crypto-signal-bot/internal/position"
)

// RunStatus reports whether a backtest produced a usable result.
type RunStatus string

const (
	StatusCompleted RunStatus = "completed"
	StatusError     RunStatus = "error"
)

// EquityPoint is one sample of the realized balance during a replay.
// Balance only moves when a trade closes; unrealized P&L is not included.
type EquityPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Balance   float64   `json:"balance"`
}

// RequestParams is the simplified RSI-only parameter shape accepted by the
// external backtest contract.
type RequestParams struct {
	RSIOversold       float64 `json:"rsi_oversold"`
	RSIOverbought     float64 `json:"rsi_overbought"`
	PositionSize      float64 `json:"position_size"`
	StopLossPercent   float64 `json:"stop_loss_percent"`
	TakeProfitPercent float64 `json:"take_profit_percent"`
	InitialBalance    float64 `json:"initial_balance"`
}

// Request is the external backtest request contract.
type Request struct {
	Symbol         string        `json:"symbol"`
	StartDate      time.Time     `json:"start_date"`
	EndDate        time.Time     `json:"end_date"`
	StrategyParams RequestParams `json:"strategy_params"`
}

// RunParameters records the inputs a result was produced with.
type RunParameters struct {
	Rule              string  `json:"rule"`
	PositionSize      float64 `json:"position_size"`
	StopLossPercent   float64 `json:"stop_loss_percent"`
	TakeProfitPercent float64 `json:"take_profit_percent"`
	InitialBalance    float64 `json:"initial_balance"`
}

// Metrics aggregates performance statistics over the closed trades of one
// run. Pointer fields are null when the statistic is undefined (no losses,
// fewer than two trades, zero variance).
type Metrics struct {
	TotalTrades          int      `json:"total_trades"`
	WinningTrades        int      `json:"winning_trades"`
	LosingTrades         int      `json:"losing_trades"`
	WinRate              float64  `json:"win_rate"`
	TotalPnL             float64  `json:"total_pnl"`
	TotalPnLPercent      float64  `json:"total_pnl_percent"`
	AvgWin               float64  `json:"avg_win"`
	AvgLoss              float64  `json:"avg_loss"`
	ProfitFactor         *float64 `json:"profit_factor"`
	MaxDrawdown          float64  `json:"max_drawdown"`
	MaxDrawdownPercent   float64  `json:"max_drawdown_percent"`
	SharpeRatio          *float64 `json:"sharpe_ratio"`
	BestTrade            float64  `json:"best_trade"`
	WorstTrade           float64  `json:"worst_trade"`
	AvgHoldDurationHours *float64 `json:"avg_hold_duration_hours"`
	FinalBalance         float64  `json:"final_balance"`
}

// Result is the complete outcome of one backtest run. It is always fully
// populated: error runs carry a reason and empty trades/equity curve rather
// than a partial structure.
type Result struct {
	Status      RunStatus        `json:"status"`
	Symbol      string           `json:"symbol"`
	PeriodStart time.Time        `json:"period_start"`
	PeriodEnd   time.Time        `json:"period_end"`
	DataPoints  int              `json:"data_points"`
	Parameters  RunParameters    `json:"parameters"`
	Trades      []position.Trade `json:"trades"`
	EquityCurve []EquityPoint    `json:"equity_curve"`
	Metrics     Metrics          `json:"metrics"`
	ErrorReason *string          `json:"error_reason"`
}
