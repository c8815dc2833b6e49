package reporting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/ducminhle1904/crypto-signal-bot/internal/backtest"
)

// ExcelReporter writes a backtest result to an .xlsx workbook with
// Trades, Equity Curve and Metrics sheets.
type ExcelReporter struct{}

// NewExcelReporter creates a new Excel reporter
func NewExcelReporter() *ExcelReporter {
	return &ExcelReporter{}
}

type excelStyles struct {
	Header int
	Win    int
	Loss   int
}

// WriteResult writes the result workbook to path, creating parent
// directories as needed.
func (r *ExcelReporter) WriteResult(result *backtest.Result, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()

	const tradesSheet = "Trades"
	const equitySheet = "Equity Curve"
	const metricsSheet = "Metrics"

	fx.SetSheetName(fx.GetSheetName(0), tradesSheet)
	fx.NewSheet(equitySheet)
	fx.NewSheet(metricsSheet)

	styles, err := r.createStyles(fx)
	if err != nil {
		return err
	}

	if err := r.writeTradesSheet(fx, tradesSheet, result, styles); err != nil {
		return err
	}
	if err := r.writeEquitySheet(fx, equitySheet, result, styles); err != nil {
		return err
	}
	if err := r.writeMetricsSheet(fx, metricsSheet, result, styles); err != nil {
		return err
	}

	return fx.SaveAs(path)
}

func (r *ExcelReporter) createStyles(fx *excelize.File) (excelStyles, error) {
	var styles excelStyles
	var err error

	styles.Header, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF", Family: "Calibri"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"2F5496"}, Pattern: 1},
	})
	if err != nil {
		return styles, err
	}

	styles.Win, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "006100"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C6EFCE"}, Pattern: 1},
	})
	if err != nil {
		return styles, err
	}

	styles.Loss, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "9C0006"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
	})
	return styles, err
}

func (r *ExcelReporter) writeTradesSheet(fx *excelize.File, sheet string, result *backtest.Result, styles excelStyles) error {
	headers := []string{"#", "Symbol", "Opened", "Closed", "Entry Price", "Exit Price", "Quantity", "PnL", "PnL %", "Status", "Exit Reason"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		fx.SetCellValue(sheet, cell, h)
		fx.SetCellStyle(sheet, cell, cell, styles.Header)
	}

	fx.SetColWidth(sheet, "A", "A", 6)
	fx.SetColWidth(sheet, "B", "B", 10)
	fx.SetColWidth(sheet, "C", "D", 20)
	fx.SetColWidth(sheet, "E", "I", 12)
	fx.SetColWidth(sheet, "J", "K", 14)

	for i, trade := range result.Trades {
		row := i + 2
		fx.SetCellValue(sheet, cellAt(1, row), i+1)
		fx.SetCellValue(sheet, cellAt(2, row), trade.Symbol)
		fx.SetCellValue(sheet, cellAt(3, row), trade.OpenedAt.Format("2006-01-02 15:04:05"))
		if trade.ClosedAt != nil {
			fx.SetCellValue(sheet, cellAt(4, row), trade.ClosedAt.Format("2006-01-02 15:04:05"))
		}
		fx.SetCellValue(sheet, cellAt(5, row), trade.EntryPrice)
		if trade.ExitPrice != nil {
			fx.SetCellValue(sheet, cellAt(6, row), *trade.ExitPrice)
		}
		fx.SetCellValue(sheet, cellAt(7, row), trade.Quantity)
		if trade.PnL != nil {
			pnlCell := cellAt(8, row)
			fx.SetCellValue(sheet, pnlCell, *trade.PnL)
			if *trade.PnL > 0 {
				fx.SetCellStyle(sheet, pnlCell, pnlCell, styles.Win)
			} else if *trade.PnL < 0 {
				fx.SetCellStyle(sheet, pnlCell, pnlCell, styles.Loss)
			}
		}
		if trade.PnLPercent != nil {
			fx.SetCellValue(sheet, cellAt(9, row), *trade.PnLPercent)
		}
		fx.SetCellValue(sheet, cellAt(10, row), string(trade.Status))
		fx.SetCellValue(sheet, cellAt(11, row), string(trade.ExitReason))
	}
	return nil
}

func (r *ExcelReporter) writeEquitySheet(fx *excelize.File, sheet string, result *backtest.Result, styles excelStyles) error {
	headers := []string{"Timestamp", "Balance"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		fx.SetCellValue(sheet, cell, h)
		fx.SetCellStyle(sheet, cell, cell, styles.Header)
	}
	fx.SetColWidth(sheet, "A", "A", 20)
	fx.SetColWidth(sheet, "B", "B", 14)

	for i, point := range result.EquityCurve {
		row := i + 2
		fx.SetCellValue(sheet, cellAt(1, row), point.Timestamp.Format("2006-01-02 15:04:05"))
		fx.SetCellValue(sheet, cellAt(2, row), point.Balance)
	}
	return nil
}

func (r *ExcelReporter) writeMetricsSheet(fx *excelize.File, sheet string, result *backtest.Result, styles excelStyles) error {
	m := result.Metrics
	rows := [][2]interface{}{
		{"Symbol", result.Symbol},
		{"Rule", result.Parameters.Rule},
		{"Period Start", result.PeriodStart.Format("2006-01-02 15:04:05")},
		{"Period End", result.PeriodEnd.Format("2006-01-02 15:04:05")},
		{"Data Points", result.DataPoints},
		{"Initial Balance", result.Parameters.InitialBalance},
		{"Final Balance", m.FinalBalance},
		{"Total Trades", m.TotalTrades},
		{"Winning Trades", m.WinningTrades},
		{"Losing Trades", m.LosingTrades},
		{"Win Rate %", m.WinRate},
		{"Total PnL", m.TotalPnL},
		{"Total PnL %", m.TotalPnLPercent},
		{"Avg Win", m.AvgWin},
		{"Avg Loss", m.AvgLoss},
		{"Profit Factor", nullableCell(m.ProfitFactor)},
		{"Max Drawdown", m.MaxDrawdown},
		{"Max Drawdown %", m.MaxDrawdownPercent},
		{"Sharpe Ratio", nullableCell(m.SharpeRatio)},
		{"Best Trade", m.BestTrade},
		{"Worst Trade", m.WorstTrade},
		{"Avg Hold Hours", nullableCell(m.AvgHoldDurationHours)},
	}

	fx.SetColWidth(sheet, "A", "A", 20)
	fx.SetColWidth(sheet, "B", "B", 22)

	headerCell := cellAt(1, 1)
	fx.SetCellValue(sheet, headerCell, "Metric")
	fx.SetCellStyle(sheet, headerCell, headerCell, styles.Header)
	valueCell := cellAt(2, 1)
	fx.SetCellValue(sheet, valueCell, "Value")
	fx.SetCellStyle(sheet, valueCell, valueCell, styles.Header)

	for i, pair := range rows {
		row := i + 2
		fx.SetCellValue(sheet, cellAt(1, row), pair[0])
		fx.SetCellValue(sheet, cellAt(2, row), pair[1])
	}
	return nil
}

func cellAt(col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	return cell
}

func nullableCell(v *float64) interface{} {
	if v == nil {
		return "n/a"
	}
	return *v
}
