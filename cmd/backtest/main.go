package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/ducminhle1904/crypto-signal-bot/internal/backtest"
	"github.com/ducminhle1904/crypto-signal-bot/internal/config"
	"github.com/ducminhle1904/crypto-signal-bot/internal/logger"
	"github.com/ducminhle1904/crypto-signal-bot/internal/monitoring"
	"github.com/ducminhle1904/crypto-signal-bot/internal/signal"
	"github.com/ducminhle1904/crypto-signal-bot/internal/strategy"
	"github.com/ducminhle1904/crypto-signal-bot/pkg/data"
	"github.com/ducminhle1904/crypto-signal-bot/pkg/reporting"
	"github.com/ducminhle1904/crypto-signal-bot/pkg/types"
)

const (
	AppName    = "Signal Backtest"
	AppVersion = "1.0.0"
)

func main() {
	var (
		envFile       = flag.String("env", ".env", "Environment file to load")
		dataFile      = flag.String("data", "", "Path to OHLCV CSV file (required)")
		sentimentFile = flag.String("sentiment", "", "Path to sentiment CSV file (optional)")
		symbol        = flag.String("symbol", "", "Trading symbol (default from config)")
		ruleName      = flag.String("rule", "weighted_sentiment", "Decision rule: weighted_sentiment or rsi_only")

		aggressiveness = flag.Float64("aggressiveness", -1, "Aggressiveness 0-100 for weighted_sentiment (default from config)")
		rsiOversold    = flag.Float64("rsi-oversold", 30, "RSI buy threshold for rsi_only")
		rsiOverbought  = flag.Float64("rsi-overbought", 70, "RSI sell threshold for rsi_only")
		stopLoss       = flag.Float64("sl", 3.0, "Stop-loss percent for rsi_only")
		takeProfit     = flag.Float64("tp", 5.0, "Take-profit percent for rsi_only")

		positionSize   = flag.Float64("position-size", -1, "Position quantity per trade (default from config)")
		initialBalance = flag.Float64("balance", -1, "Initial balance (default from config)")

		startDate = flag.String("start", "", "Start of the replay window (RFC3339 or 2006-01-02)")
		endDate   = flag.String("end", "", "End of the replay window (RFC3339 or 2006-01-02)")

		jsonOut = flag.String("json", "", "Write the full result JSON to this path")
		xlsxOut = flag.String("xlsx", "", "Write the result workbook to this path")

		showVersion = flag.Bool("version", false, "Show version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s v%s\n", AppName, AppVersion)
		return
	}

	if *dataFile == "" {
		log.Fatalf("❌ -data is required")
	}

	loadEnvironment(*envFile)
	cfg := config.Load()
	zlog := logger.NewConsole(cfg.LogLevel)

	if *symbol == "" {
		*symbol = cfg.Trading.Symbol
	}
	if *aggressiveness < 0 {
		*aggressiveness = cfg.Strategy.Aggressiveness
	}
	if *positionSize < 0 {
		*positionSize = cfg.Trading.PositionSize
	}
	if *initialBalance < 0 {
		*initialBalance = cfg.Trading.InitialBalance
	}

	log.Printf("🚀 %s v%s", AppName, AppVersion)
	log.Printf("📊 Symbol: %s | Rule: %s", *symbol, *ruleName)

	// Load and validate market data
	provider := data.NewCSVProvider()
	bars, err := provider.LoadBars(*dataFile, *symbol)
	if err != nil {
		log.Fatalf("❌ Failed to load bars: %v", err)
	}
	if err := provider.ValidateBars(bars); err != nil {
		log.Fatalf("❌ Invalid market data: %v", err)
	}
	log.Printf("✅ Loaded %d bars from %s", len(bars), *dataFile)

	filter := data.NewDefaultBarFilter()
	start, end, err := parseWindow(*startDate, *endDate, bars[0].Timestamp, bars[len(bars)-1].Timestamp)
	if err != nil {
		log.Fatalf("❌ Invalid date range: %v", err)
	}
	bars = filter.FilterByDateRange(bars, start, end)
	log.Printf("📅 Window %s → %s (%d bars)", start.Format("2006-01-02"), end.Format("2006-01-02"), len(bars))

	// Optional sentiment feed
	sentimentReadings, err := loadSentiment(*sentimentFile, *symbol)
	if err != nil {
		log.Fatalf("❌ Failed to load sentiment: %v", err)
	}
	if len(sentimentReadings) > 0 {
		sentimentReadings = filter.FilterSentimentByDateRange(sentimentReadings, start, end)
		log.Printf("💬 Loaded %d sentiment readings", len(sentimentReadings))
	}

	rule, err := buildRule(*ruleName, *aggressiveness, *rsiOversold, *rsiOverbought, *stopLoss, *takeProfit)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	engine := backtest.NewEngine(zlog)
	runStart := time.Now()
	result, err := engine.Run(bars, sentimentReadings, rule, backtest.Config{
		Symbol:         *symbol,
		PositionSize:   *positionSize,
		InitialBalance: *initialBalance,
	})
	if err != nil {
		log.Fatalf("❌ Backtest failed: %v", err)
	}
	monitoring.ObserveBacktestDuration(time.Since(runStart).Seconds())

	reporting.NewConsoleReporter().OutputResult(result)

	if *jsonOut != "" {
		if err := reporting.WriteResultJSON(result, *jsonOut); err != nil {
			log.Fatalf("❌ Failed to write JSON: %v", err)
		}
		log.Printf("💾 Result written to %s", *jsonOut)
	}
	if *xlsxOut != "" {
		if err := reporting.NewExcelReporter().WriteResult(result, *xlsxOut); err != nil {
			log.Fatalf("❌ Failed to write workbook: %v", err)
		}
		log.Printf("📈 Workbook written to %s", *xlsxOut)
	}
}

func loadEnvironment(envFile string) {
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			log.Printf("⚠️ Could not load %s: %v", envFile, err)
		}
	}
}

func loadSentiment(path, symbol string) ([]types.SentimentReading, error) {
	if path == "" {
		return nil, nil
	}
	return data.LoadSentimentCSV(path, symbol)
}

func buildRule(name string, aggressiveness, oversold, overbought, sl, tp float64) (signal.Rule, error) {
	switch name {
	case "weighted_sentiment":
		params, err := strategy.FromAggressiveness(aggressiveness)
		if err != nil {
			return nil, err
		}
		return signal.NewWeightedSentimentRule(params)
	case "rsi_only":
		return signal.NewRSIOnlyRule(oversold, overbought, sl, tp)
	default:
		return nil, fmt.Errorf("unknown rule %q (use weighted_sentiment or rsi_only)", name)
	}
}

func parseWindow(startRaw, endRaw string, first, last time.Time) (time.Time, time.Time, error) {
	start, end := first, last
	var err error
	if startRaw != "" {
		if start, err = parseDate(startRaw); err != nil {
			return start, end, err
		}
	}
	if endRaw != "" {
		if end, err = parseDate(endRaw); err != nil {
			return start, end, err
		}
	}
	if end.Before(start) {
		return start, end, fmt.Errorf("end %s is before start %s", end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return start, end, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
