package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ducminhle1904/crypto-signal-bot/internal/config"
	"github.com/ducminhle1904/crypto-signal-bot/internal/exchange/bybit"
	"github.com/ducminhle1904/crypto-signal-bot/internal/live"
	"github.com/ducminhle1904/crypto-signal-bot/internal/logger"
	"github.com/ducminhle1904/crypto-signal-bot/internal/monitoring"
	enginesignal "github.com/ducminhle1904/crypto-signal-bot/internal/signal"
	"github.com/ducminhle1904/crypto-signal-bot/internal/strategy"
	"github.com/ducminhle1904/crypto-signal-bot/pkg/data"
	"github.com/ducminhle1904/crypto-signal-bot/pkg/types"
)

const (
	AppName    = "Signal Bot"
	AppVersion = "1.0.0"

	signalInterval = time.Hour
	stopInterval   = 5 * time.Minute
)

func main() {
	var (
		envFile       = flag.String("env", ".env", "Environment file to load")
		dataFile      = flag.String("data", "", "Evaluate once from this OHLCV CSV instead of fetching live data")
		sentimentFile = flag.String("sentiment", "", "Path to sentiment CSV file (optional)")
		symbol        = flag.String("symbol", "", "Trading symbol (default from config)")
		serve         = flag.Bool("serve", false, "Run continuously: hourly signals plus metrics and health endpoints")
		showVersion   = flag.Bool("version", false, "Show version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s v%s\n", AppName, AppVersion)
		return
	}

	if _, err := os.Stat(*envFile); err == nil {
		if err := godotenv.Load(*envFile); err != nil {
			log.Printf("⚠️ Could not load %s: %v", *envFile, err)
		}
	}

	cfg := config.Load()
	zlog := logger.New(cfg.LogLevel)

	if *symbol == "" {
		*symbol = cfg.Trading.Symbol
	}

	params, err := strategy.FromAggressiveness(cfg.Strategy.Aggressiveness)
	if err != nil {
		log.Fatalf("❌ Invalid aggressiveness: %v", err)
	}
	rule, err := enginesignal.NewWeightedSentimentRule(params)
	if err != nil {
		log.Fatalf("❌ Invalid strategy parameters: %v", err)
	}

	service, err := live.NewService(*symbol, rule, cfg.Trading.PositionSize, cfg.Strategy.SentimentLookback, zlog)
	if err != nil {
		log.Fatalf("❌ Failed to build service: %v", err)
	}

	log.Printf("🚀 %s v%s | %s | aggressiveness %.0f", AppName, AppVersion, *symbol, cfg.Strategy.Aggressiveness)

	if *dataFile != "" {
		runOnce(service, *dataFile, *sentimentFile, *symbol)
		return
	}

	if !*serve {
		log.Fatalf("❌ Provide -data for a one-shot evaluation or -serve for continuous mode")
	}

	runLive(service, cfg, *symbol)
}

// runOnce evaluates the latest bar of a CSV file and prints the signal.
func runOnce(service *live.Service, dataFile, sentimentFile, symbol string) {
	provider := data.NewCSVProvider()
	bars, err := provider.LoadBars(dataFile, symbol)
	if err != nil {
		log.Fatalf("❌ Failed to load bars: %v", err)
	}
	if err := provider.ValidateBars(bars); err != nil {
		log.Fatalf("❌ Invalid market data: %v", err)
	}

	var readings []types.SentimentReading
	if sentimentFile != "" {
		if readings, err = data.LoadSentimentCSV(sentimentFile, symbol); err != nil {
			log.Fatalf("❌ Failed to load sentiment: %v", err)
		}
	}

	sig, trade, err := service.EvaluateSignal(bars, readings)
	if err != nil {
		log.Fatalf("❌ Signal evaluation failed: %v", err)
	}

	out, _ := json.MarshalIndent(sig, "", "  ")
	fmt.Println(string(out))

	if trade != nil {
		tradeOut, _ := json.MarshalIndent(trade, "", "  ")
		fmt.Println(string(tradeOut))
	}
}

// runLive fetches klines from Bybit on a schedule, evaluates signals hourly
// and checks stops every few minutes, with Prometheus metrics and a health
// endpoint exposed on the configured ports.
func runLive(service *live.Service, cfg *config.Config, symbol string) {
	client := bybit.NewClient(bybit.Config{
		APIKey:    os.Getenv("BYBIT_API_KEY"),
		APISecret: os.Getenv("BYBIT_API_SECRET"),
		Testnet:   os.Getenv("BYBIT_TESTNET") == "true",
	})

	go serveHTTP(fmt.Sprintf(":%d", cfg.Monitoring.PrometheusPort), "/metrics", monitoring.NewMetricsHandler())
	go serveHTTP(fmt.Sprintf(":%d", cfg.Monitoring.HealthPort), "/health", service.Health())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	signalTicker := time.NewTicker(signalInterval)
	defer signalTicker.Stop()
	stopTicker := time.NewTicker(stopInterval)
	defer stopTicker.Stop()

	evaluate := func() {
		bars, err := client.GetKlines(ctx, bybit.KlineParams{
			Category: "spot",
			Symbol:   symbol,
			Interval: bybit.Interval1h,
			Limit:    250,
		})
		if err != nil {
			log.Printf("⚠️ Kline fetch failed: %v", err)
			monitoring.RecordError("kline_fetch")
			return
		}
		if _, _, err := service.EvaluateSignal(bars, nil); err != nil {
			log.Printf("⚠️ Signal evaluation failed: %v", err)
		}
	}

	evaluate()

	for {
		select {
		case <-signalTicker.C:
			evaluate()
		case <-stopTicker.C:
			price, err := client.GetLatestPrice(ctx, "spot", symbol)
			if err != nil {
				log.Printf("⚠️ Price fetch failed: %v", err)
				monitoring.RecordError("price_fetch")
				continue
			}
			if trade := service.CheckStops(price, time.Now().UTC()); trade != nil {
				log.Printf("🔔 Position closed: %s at %.2f (pnl %.2f)", trade.ExitReason, price, *trade.PnL)
			}
		case <-sigCh:
			log.Printf("👋 Shutting down")
			return
		}
	}
}

func serveHTTP(addr, path string, handler http.Handler) {
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("⚠️ HTTP server %s stopped: %v", addr, err)
	}
}
