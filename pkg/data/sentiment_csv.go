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

// LoadSentimentCSV loads sentiment readings from a CSV file with columns
// timestamp, source, score. The timestamp accepts the default date format
// or unix milliseconds.
func LoadSentimentCSV(source, symbol string) ([]types.SentimentReading, error) {
	file, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("failed to open sentiment file %s: %w", source, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var readings []types.SentimentReading
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

		if len(record) < 3 {
			continue
		}

		ts, err := parseFlexibleTimestamp(record[0])
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp at line %d: %w", line, err)
		}
		score, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid score at line %d: %w", line, err)
		}
		if score < -1 || score > 1 {
			return nil, fmt.Errorf("score out of [-1,1] at line %d: %f", line, score)
		}

		readings = append(readings, types.SentimentReading{
			Symbol:    symbol,
			Source:    types.SentimentSource(record[1]),
			Score:     score,
			Timestamp: ts,
		})
	}

	return readings, nil
}

func parseFlexibleTimestamp(raw string) (time.Time, error) {
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	ts, err := time.Parse(DefaultCSVFormat.DateFormat, raw)
	if err != nil {
		return time.Time{}, err
	}
	return ts.UTC(), nil
}
