package data

import (
	"fmt"
	"time"

	"github.com/ducminhle1904/crypto-signal-bot/pkg/types"
)

// DefaultBarFilter implements BarFilter for common filtering operations
type DefaultBarFilter struct{}

// NewDefaultBarFilter creates a new default bar filter
func NewDefaultBarFilter() *DefaultBarFilter {
	return &DefaultBarFilter{}
}

// FilterByDateRange keeps bars within [start, end] inclusive
func (f *DefaultBarFilter) FilterByDateRange(bars []types.PriceBar, start, end time.Time) []types.PriceBar {
	if len(bars) == 0 {
		return bars
	}

	var filtered []types.PriceBar
	for _, bar := range bars {
		if !bar.Timestamp.Before(start) && !bar.Timestamp.After(end) {
			filtered = append(filtered, bar)
		}
	}
	return filtered
}

// FilterSentimentByDateRange keeps readings within [start, end] inclusive
func (f *DefaultBarFilter) FilterSentimentByDateRange(readings []types.SentimentReading, start, end time.Time) []types.SentimentReading {
	var filtered []types.SentimentReading
	for _, r := range readings {
		if !r.Timestamp.Before(start) && !r.Timestamp.After(end) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// ValidateTimeSequence ensures bars are in chronological order with no
// duplicate timestamps
func (f *DefaultBarFilter) ValidateTimeSequence(bars []types.PriceBar) error {
	for i := 1; i < len(bars); i++ {
		if bars[i].Timestamp.Before(bars[i-1].Timestamp) {
			return fmt.Errorf("bars not in chronological order at index %d: %s comes after %s",
				i, bars[i].Timestamp.Format(time.RFC3339), bars[i-1].Timestamp.Format(time.RFC3339))
		}
		if bars[i].Timestamp.Equal(bars[i-1].Timestamp) {
			return fmt.Errorf("duplicate timestamp at index %d: %s",
				i, bars[i].Timestamp.Format(time.RFC3339))
		}
	}
	return nil
}
