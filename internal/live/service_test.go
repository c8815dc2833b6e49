package live

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ducminhle1904/crypto-signal-bot/internal/position"
	"github.com/ducminhle1904/crypto-signal-bot/internal/signal"
	"github.com/ducminhle1904/crypto-signal-bot/pkg/types"
)

var serviceTime = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

// fallingBars produces a decline steep enough to read oversold and sit
// below MA(50).
func fallingBars(n int) []types.PriceBar {
	bars := make([]types.PriceBar, n)
	price := 60000.0
	for i := 0; i < n; i++ {
		price -= 100
		bars[i] = types.PriceBar{
			Symbol:    "BTCUSDT",
			Open:      price + 50,
			High:      price + 100,
			Low:       price - 100,
			Close:     price,
			Volume:    1000,
			Timestamp: serviceTime.Add(time.Duration(i) * time.Hour),
		}
	}
	return bars
}

func optimisticReadings(asOf time.Time) []types.SentimentReading {
	return []types.SentimentReading{
		{Symbol: "BTCUSDT", Source: types.SourceNewsAPI, Score: 0.6, Timestamp: asOf.Add(-30 * time.Minute)},
	}
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	rule, err := signal.NewRSIOnlyRule(30, 70, 3, 5)
	require.NoError(t, err)
	svc, err := NewService("BTCUSDT", rule, 0.1, 2*time.Hour, zerolog.Nop())
	require.NoError(t, err)
	return svc
}

func TestNewService_RequiresRule(t *testing.T) {
	_, err := NewService("BTCUSDT", nil, 0.1, 2*time.Hour, zerolog.Nop())
	assert.Error(t, err)
}

func TestNewService_RequiresPositionSize(t *testing.T) {
	rule, err := signal.NewRSIOnlyRule(30, 70, 3, 5)
	require.NoError(t, err)

	_, err = NewService("BTCUSDT", rule, 0, 2*time.Hour, zerolog.Nop())
	assert.Error(t, err)
}

func TestService_EvaluateSignal_Buys(t *testing.T) {
	svc := newTestService(t)

	bars := fallingBars(120)
	last := bars[len(bars)-1].Timestamp

	sig, trade, err := svc.EvaluateSignal(bars, optimisticReadings(last))
	require.NoError(t, err)

	assert.Equal(t, signal.ActionBuy, sig.Action)
	assert.Equal(t, "BTCUSDT", sig.Symbol)
	require.NotNil(t, trade)
	assert.Equal(t, position.StatusOpen, trade.Status)
	require.NotNil(t, svc.OpenPosition())
}

func TestService_EvaluateSignal_NoBars(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.EvaluateSignal(nil, nil)
	assert.Error(t, err)
}

func TestService_EvaluateSignal_HoldWithoutSentiment(t *testing.T) {
	svc := newTestService(t)

	sig, trade, err := svc.EvaluateSignal(fallingBars(120), nil)
	require.NoError(t, err)

	assert.Equal(t, signal.ActionHold, sig.Action)
	assert.Nil(t, trade)
	assert.Nil(t, svc.OpenPosition())
}

func TestService_CheckStops(t *testing.T) {
	svc := newTestService(t)

	bars := fallingBars(120)
	last := bars[len(bars)-1]

	_, trade, err := svc.EvaluateSignal(bars, optimisticReadings(last.Timestamp))
	require.NoError(t, err)
	require.NotNil(t, trade)

	// Above the stop, below the target: nothing closes
	assert.Nil(t, svc.CheckStops(last.Close, last.Timestamp.Add(5*time.Minute)))

	// 3% under the entry triggers the stop
	stopPrice := last.Close * 0.969
	closed := svc.CheckStops(stopPrice, last.Timestamp.Add(10*time.Minute))
	require.NotNil(t, closed)
	assert.Equal(t, position.ExitStopLoss, closed.ExitReason)
	assert.Nil(t, svc.OpenPosition())
}
