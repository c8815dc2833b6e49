package types

import "time"

// PriceBar is a single OHLCV bar for one symbol. Bars are immutable once
// recorded and strictly ordered by timestamp (no duplicates per symbol).
type PriceBar struct {
	Symbol    string    `json:"symbol"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
	Timestamp time.Time `json:"timestamp"`
}

// SentimentSource identifies where a sentiment reading came from.
type SentimentSource string

const (
	SourceCryptoPanic SentimentSource = "cryptopanic"
	SourceNewsAPI     SentimentSource = "newsapi"
	SourceFearGreed   SentimentSource = "fear_greed"
)

// SentimentReading is a single scored sentiment observation in [-1, 1].
type SentimentReading struct {
	Symbol    string          `json:"symbol"`
	Source    SentimentSource `json:"source"`
	Score     float64         `json:"score"`
	Timestamp time.Time       `json:"timestamp"`
}

// Ticker is the latest traded price for a symbol.
type Ticker struct {
	Symbol    string
	Price     float64
	Volume    float64
	Timestamp time.Time
}
