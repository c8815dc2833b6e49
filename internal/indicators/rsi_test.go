package indicators

import (
	"testing"
)

func TestRSI_Calculate(t *testing.T) {
	rsi := NewRSI(14)

	prices := []float64{
		44.34, 44.09, 44.15, 43.61, 44.33, 44.83, 45.10, 45.42,
		45.84, 46.08, 45.89, 46.03, 45.61, 46.28, 46.28, 46.00,
		46.03, 46.41, 46.22, 45.64,
	}

	value, err := rsi.Calculate(prices)
	if err != nil {
		t.Fatalf("RSI calculation failed: %v", err)
	}

	if value < 0 || value > 100 {
		t.Errorf("RSI value out of range: %f", value)
	}
	// Mixed up/down series should land well inside the band
	if value < 40 || value > 80 {
		t.Errorf("RSI value implausible for test series: %f", value)
	}
}

func TestRSI_AllGains(t *testing.T) {
	rsi := NewRSI(14)

	prices := make([]float64, 20)
	for i := range prices {
		prices[i] = 100.0 + float64(i)
	}

	value, err := rsi.Calculate(prices)
	if err != nil {
		t.Fatalf("RSI calculation failed: %v", err)
	}

	// No losses in the window reads as maximum strength
	if value != 100 {
		t.Errorf("Expected RSI 100 for monotonically rising prices, got %f", value)
	}
}

func TestRSI_AllLosses(t *testing.T) {
	rsi := NewRSI(14)

	prices := make([]float64, 20)
	for i := range prices {
		prices[i] = 100.0 - float64(i)
	}

	value, err := rsi.Calculate(prices)
	if err != nil {
		t.Fatalf("RSI calculation failed: %v", err)
	}

	if value != 0 {
		t.Errorf("Expected RSI 0 for monotonically falling prices, got %f", value)
	}
}

func TestRSI_FlatPrices(t *testing.T) {
	rsi := NewRSI(14)

	prices := make([]float64, 20)
	for i := range prices {
		prices[i] = 100.0
	}

	value, err := rsi.Calculate(prices)
	if err != nil {
		t.Fatalf("RSI calculation failed: %v", err)
	}

	if value != 100 {
		t.Errorf("Expected RSI 100 for flat prices, got %f", value)
	}
}

func TestRSI_InsufficientData(t *testing.T) {
	rsi := NewRSI(14)

	// 14 closes produce only 13 deltas; 15 are required
	prices := make([]float64, 14)
	for i := range prices {
		prices[i] = 100.0 + float64(i)
	}

	if _, err := rsi.Calculate(prices); err == nil {
		t.Error("Expected error for insufficient data")
	}
}

func TestRSI_RequiredPeriods(t *testing.T) {
	if got := NewRSI(14).GetRequiredPeriods(); got != 15 {
		t.Errorf("Expected 15 required periods, got %d", got)
	}
}
