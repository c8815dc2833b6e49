package sentiment

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/ducminhle1904/crypto-signal-bot/pkg/types"
)

// Base weights per sentiment source. They sum to 1.0; when a source has no
// readings in the lookback window the remaining weights are renormalized so
// they still sum to 1.0.
var baseWeights = map[types.SentimentSource]float64{
	types.SourceCryptoPanic: 0.40,
	types.SourceNewsAPI:     0.40,
	types.SourceFearGreed:   0.20,
}

// DefaultLookback is how far back readings are considered fresh enough to
// feed signal generation.
const DefaultLookback = 2 * time.Hour

// Score is the outcome of one aggregation pass.
type Score struct {
	Value         float64
	HasData       bool
	SourcesUsed   int
	SourceMeans   map[types.SentimentSource]float64
	SourceWeights map[types.SentimentSource]float64
}

// Aggregator combines per-source sentiment readings into one weighted score.
type Aggregator struct {
	lookback time.Duration
	logger   zerolog.Logger
}

// NewAggregator creates an aggregator with the given lookback window.
// A non-positive lookback falls back to DefaultLookback.
func NewAggregator(lookback time.Duration, logger zerolog.Logger) *Aggregator {
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	return &Aggregator{lookback: lookback, logger: logger}
}

// Aggregate computes the weighted sentiment score from readings, considering
// only those within the lookback window ending at asOf. Sources without any
// reading in the window are dropped and their weight redistributed. With no
// sources at all the score is neutral (0.0) and HasData is false so
// downstream confidence logic can discount it.
func (a *Aggregator) Aggregate(readings []types.SentimentReading, asOf time.Time) Score {
	since := asOf.Add(-a.lookback)

	sums := make(map[types.SentimentSource]float64)
	counts := make(map[types.SentimentSource]int)
	for _, r := range readings {
		if _, known := baseWeights[r.Source]; !known {
			continue
		}
		if r.Timestamp.Before(since) || r.Timestamp.After(asOf) {
			continue
		}
		sums[r.Source] += r.Score
		counts[r.Source]++
	}

	score := Score{
		SourceMeans:   make(map[types.SentimentSource]float64),
		SourceWeights: make(map[types.SentimentSource]float64),
	}

	totalWeight := 0.0
	for source, n := range counts {
		score.SourceMeans[source] = sums[source] / float64(n)
		totalWeight += baseWeights[source]
	}

	if totalWeight == 0 {
		a.logger.Warn().
			Time("as_of", asOf).
			Dur("lookback", a.lookback).
			Msg("no sentiment data in window, treating as neutral")
		return score
	}

	for source, mean := range score.SourceMeans {
		w := baseWeights[source] / totalWeight
		score.SourceWeights[source] = w
		score.Value += w * mean
	}
	score.HasData = true
	score.SourcesUsed = len(score.SourceMeans)

	a.logger.Debug().
		Float64("score", score.Value).
		Int("sources", score.SourcesUsed).
		Msg("aggregated sentiment")

	return score
}

// BaseWeight returns the configured base weight for a source (0 if unknown).
func BaseWeight(source types.SentimentSource) float64 {
	return baseWeights[source]
}
