package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/ducminhle1904/crypto-signal-bot/pkg/types"
)

// CSVProvider implements BarProvider for CSV files
type CSVProvider struct {
	format CSVColumnMapping
}

// NewCSVProvider creates a new CSV bar provider with the default format
func NewCSVProvider() *CSVProvider {
	return &CSVProvider{format: DefaultCSVFormat}
}

// NewCSVProviderWithFormat creates a CSV bar provider with a custom format
func NewCSVProviderWithFormat(format CSVColumnMapping) *CSVProvider {
	return &CSVProvider{format: format}
}

// GetName returns the name of the provider
func (p *CSVProvider) GetName() string {
	return "CSV Provider"
}

// LoadBars loads historical bars from a CSV file
func (p *CSVProvider) LoadBars(source, symbol string) ([]types.PriceBar, error) {
	file, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file %s: %w", source, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var bars []types.PriceBar
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record at line %d: %w", line, err)
		}
		line++

		if len(record) < p.format.MinColumns {
			continue
		}

		bar, err := p.parseBar(record, symbol)
		if err != nil {
			return nil, fmt.Errorf("invalid bar at line %d: %w", line, err)
		}
		bars = append(bars, bar)
	}

	return bars, nil
}

// ValidateBars validates the integrity of loaded bars
func (p *CSVProvider) ValidateBars(bars []types.PriceBar) error {
	if len(bars) == 0 {
		return fmt.Errorf("no bars loaded")
	}
	for i, bar := range bars {
		if bar.Close <= 0 || bar.Open <= 0 || bar.High <= 0 || bar.Low <= 0 {
			return fmt.Errorf("non-positive price at index %d (%s)", i, bar.Timestamp.Format(time.RFC3339))
		}
		if bar.High < bar.Low {
			return fmt.Errorf("high below low at index %d (%s)", i, bar.Timestamp.Format(time.RFC3339))
		}
	}
	return NewDefaultBarFilter().ValidateTimeSequence(bars)
}

func (p *CSVProvider) parseBar(record []string, symbol string) (types.PriceBar, error) {
	ts, err := p.parseTimestamp(record[p.format.TimestampCol])
	if err != nil {
		return types.PriceBar{}, err
	}

	open, err := strconv.ParseFloat(record[p.format.OpenCol], 64)
	if err != nil {
		return types.PriceBar{}, fmt.Errorf("bad open: %w", err)
	}
	high, err := strconv.ParseFloat(record[p.format.HighCol], 64)
	if err != nil {
		return types.PriceBar{}, fmt.Errorf("bad high: %w", err)
	}
	low, err := strconv.ParseFloat(record[p.format.LowCol], 64)
	if err != nil {
		return types.PriceBar{}, fmt.Errorf("bad low: %w", err)
	}
	closePrice, err := strconv.ParseFloat(record[p.format.CloseCol], 64)
	if err != nil {
		return types.PriceBar{}, fmt.Errorf("bad close: %w", err)
	}
	volume, err := strconv.ParseFloat(record[p.format.VolumeCol], 64)
	if err != nil {
		return types.PriceBar{}, fmt.Errorf("bad volume: %w", err)
	}

	return types.PriceBar{
		Symbol:    symbol,
		Open:      open,
		High:      high,
		Low:       low,
		Close:     closePrice,
		Volume:    volume,
		Timestamp: ts,
	}, nil
}

// parseTimestamp accepts either the configured date format or a unix
// millisecond epoch, which is what exchange downloads use.
func (p *CSVProvider) parseTimestamp(raw string) (time.Time, error) {
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	ts, err := time.Parse(p.format.DateFormat, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad timestamp %q: %w", raw, err)
	}
	return ts.UTC(), nil
}
