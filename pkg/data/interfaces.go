package data

import (
	"time"

	"github.com/ducminhle1904/crypto-signal-bot/pkg/types"
)

// BarProvider loads historical price bars from a source.
type BarProvider interface {
	// LoadBars loads historical bars for a symbol from the given source
	LoadBars(source, symbol string) ([]types.PriceBar, error)

	// ValidateBars validates the integrity of loaded bars
	ValidateBars(bars []types.PriceBar) error

	// GetName returns the name of the provider
	GetName() string
}

// BarCache caches loaded bar series by source key.
type BarCache interface {
	Get(key string) ([]types.PriceBar, bool)
	Set(key string, bars []types.PriceBar)
	Clear()
	Size() int
}

// BarFilter narrows bar series for a backtest range.
type BarFilter interface {
	// FilterByDateRange keeps bars within [start, end] inclusive
	FilterByDateRange(bars []types.PriceBar, start, end time.Time) []types.PriceBar

	// ValidateTimeSequence ensures bars are chronological with no duplicates
	ValidateTimeSequence(bars []types.PriceBar) error
}

// CSVColumnMapping defines the column positions for supported CSV layouts.
type CSVColumnMapping struct {
	TimestampCol int
	OpenCol      int
	HighCol      int
	LowCol       int
	CloseCol     int
	VolumeCol    int
	MinColumns   int
	DateFormat   string
}

// DefaultCSVFormat matches the candles.csv layout produced by the
// download command.
var DefaultCSVFormat = CSVColumnMapping{
	TimestampCol: 0,
	OpenCol:      1,
	HighCol:      2,
	LowCol:       3,
	CloseCol:     4,
	VolumeCol:    5,
	MinColumns:   6,
	DateFormat:   "2006-01-02 15:04:05",
}
