package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ducminhle1904/crypto-signal-bot/internal/strategy"
)

func main() {
	var (
		aggressiveness = flag.Float64("aggressiveness", -1, "Preview a single aggressiveness value (0-100)")
		step           = flag.Float64("step", 10, "Step for the sweep table when no single value is given")
	)
	flag.Parse()

	if *aggressiveness >= 0 {
		result, err := strategy.Preview(*aggressiveness)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		renderTable([]strategy.PreviewResult{result})
		return
	}

	if *step <= 0 || *step > 100 {
		log.Fatalf("❌ Step must be in (0, 100]")
	}

	var results []strategy.PreviewResult
	for agg := 0.0; agg <= 100; agg += *step {
		result, err := strategy.Preview(agg)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		results = append(results, result)
	}
	renderTable(results)
}

func renderTable(results []strategy.PreviewResult) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("STRATEGY PREVIEW")
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{
		"Aggr", "RSI Buy", "RSI Sell", "Sent Weight", "Sent Min",
		"Min Conf", "SL %", "TP %", "Trades/Day", "Est Win Rate", "Risk",
	})

	for _, r := range results {
		p := r.Parameters
		t.AppendRow(table.Row{
			fmt.Sprintf("%.0f", r.Aggressiveness),
			fmt.Sprintf("%.1f", p.RSIBuy),
			fmt.Sprintf("%.1f", p.RSISell),
			fmt.Sprintf("%.3f", p.SentimentWeight),
			fmt.Sprintf("%.3f", p.SentimentMin),
			fmt.Sprintf("%.3f", p.MinConfidence),
			fmt.Sprintf("%.2f", p.StopLossPercent),
			fmt.Sprintf("%.2f", p.TakeProfitPercent),
			fmt.Sprintf("%.2f", r.EstimatedTradesPerDay),
			fmt.Sprintf("%.0f%%", r.EstimatedWinRate*100),
			string(r.RiskLevel),
		})
	}
	t.Render()
}
