package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ducminhle1904/crypto-signal-bot/internal/backtest"
)

// JSONReporter serializes backtest results as indented JSON
type JSONReporter struct{}

// NewJSONReporter creates a new JSON reporter
func NewJSONReporter() *JSONReporter {
	return &JSONReporter{}
}

// FormatResult formats the result as JSON bytes
func (f *JSONReporter) FormatResult(result *backtest.Result) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}

// PrintResult prints the result as JSON to stdout
func (f *JSONReporter) PrintResult(result *backtest.Result) {
	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(data))
}

// WriteResultJSON writes the result to a JSON file, creating parent
// directories as needed.
func WriteResultJSON(result *backtest.Result, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return os.WriteFile(path, data, 0644)
}
