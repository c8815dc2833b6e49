package position

import (
	"time"
)

// Status of a trade record.
type Status string

const (
	StatusOpen   Status = "OPEN"
	StatusClosed Status = "CLOSED"
)

// ExitReason explains why a position was closed.
type ExitReason string

const (
	ExitSignalSell  ExitReason = "signal_sell"
	ExitStopLoss    ExitReason = "stop_loss"
	ExitTakeProfit  ExitReason = "take_profit"
	ExitEndOfPeriod ExitReason = "end_of_period"
)

// Position is the live state of one open holding.
type Position struct {
	Symbol          string    `json:"symbol"`
	EntryPrice      float64   `json:"entry_price"`
	Quantity        float64   `json:"quantity"`
	StopLossPrice   float64   `json:"stop_loss_price"`
	TakeProfitPrice float64   `json:"take_profit_price"`
	OpenedAt        time.Time `json:"opened_at"`
}

// Trade is the record emitted when a position opens or closes. Exit fields
// stay nil while the trade is open.
type Trade struct {
	Symbol     string     `json:"symbol,omitempty"`
	EntryPrice float64    `json:"entry_price"`
	ExitPrice  *float64   `json:"exit_price"`
	Quantity   float64    `json:"quantity"`
	PnL        *float64   `json:"pnl"`
	PnLPercent *float64   `json:"pnl_percent,omitempty"`
	Status     Status     `json:"status"`
	ExitReason ExitReason `json:"exit_reason,omitempty"`
	OpenedAt   time.Time  `json:"opened_at"`
	ClosedAt   *time.Time `json:"closed_at"`
}

// HoldDuration returns how long the trade was (or has been) held.
func (t *Trade) HoldDuration() time.Duration {
	if t.ClosedAt == nil {
		return 0
	}
	return t.ClosedAt.Sub(t.OpenedAt)
}
