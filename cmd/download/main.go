package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/ducminhle1904/crypto-signal-bot/internal/exchange/bybit"
	"github.com/ducminhle1904/crypto-signal-bot/pkg/types"
)

func main() {
	var (
		envFile  = flag.String("env", ".env", "Environment file to load")
		symbol   = flag.String("symbol", "BTCUSDT", "Symbol to download")
		category = flag.String("category", "spot", "Bybit category: spot or linear")
		interval = flag.String("interval", "60", "Kline interval: 1, 5, 15, 60, 240, D")
		days     = flag.Int("days", 365, "Number of days of history to download")
		outdir   = flag.String("outdir", "data", "Output directory root")
	)
	flag.Parse()

	if _, err := os.Stat(*envFile); err == nil {
		if err := godotenv.Load(*envFile); err != nil {
			log.Printf("⚠️ Could not load %s: %v", *envFile, err)
		}
	}

	client := bybit.NewClient(bybit.Config{
		APIKey:    os.Getenv("BYBIT_API_KEY"),
		APISecret: os.Getenv("BYBIT_API_SECRET"),
		Testnet:   os.Getenv("BYBIT_TESTNET") == "true",
	})

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -*days)

	log.Printf("⬇️ Downloading %s %s klines (%s) from %s to %s",
		*category, *symbol, *interval, start.Format("2006-01-02"), end.Format("2006-01-02"))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	bars, err := client.GetKlineRange(ctx, *category, *symbol, bybit.KlineInterval(*interval), start, end)
	if err != nil {
		log.Fatalf("❌ Download failed: %v", err)
	}
	if len(bars) == 0 {
		log.Fatalf("❌ No klines returned for %s", *symbol)
	}

	outPath := filepath.Join(*outdir, "bybit", *symbol, *interval, "candles.csv")
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		log.Fatalf("❌ Failed to create output directory: %v", err)
	}
	if err := saveToCSV(bars, outPath); err != nil {
		log.Fatalf("❌ Failed to write CSV: %v", err)
	}

	log.Printf("✅ Saved %d bars to %s", len(bars), outPath)
	fmt.Printf("First bar: %s  Last bar: %s\n",
		bars[0].Timestamp.Format(time.RFC3339), bars[len(bars)-1].Timestamp.Format(time.RFC3339))
}

func saveToCSV(bars []types.PriceBar, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"timestamp", "open", "high", "low", "close", "volume"}); err != nil {
		return err
	}

	for _, bar := range bars {
		record := []string{
			bar.Timestamp.Format("2006-01-02 15:04:05"),
			strconv.FormatFloat(bar.Open, 'f', -1, 64),
			strconv.FormatFloat(bar.High, 'f', -1, 64),
			strconv.FormatFloat(bar.Low, 'f', -1, 64),
			strconv.FormatFloat(bar.Close, 'f', -1, 64),
			strconv.FormatFloat(bar.Volume, 'f', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	return writer.Error()
}
