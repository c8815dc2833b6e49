package bybit

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	bybit_api "github.com/bybit-exchange/bybit.go.api"

	"github.com/ducminhle1904/crypto-signal-bot/pkg/types"
)

// KlineInterval represents the time interval for kline data
type KlineInterval string

const (
	Interval1m  KlineInterval = "1"
	Interval5m  KlineInterval = "5"
	Interval15m KlineInterval = "15"
	Interval1h  KlineInterval = "60"
	Interval4h  KlineInterval = "240"
	Interval1d  KlineInterval = "D"
)

// KlineParams holds parameters for fetching kline data
type KlineParams struct {
	Category string        // "spot", "linear", "inverse"
	Symbol   string        // Trading pair symbol (e.g., "BTCUSDT")
	Interval KlineInterval // Time interval
	Start    *time.Time    // Start time (optional)
	End      *time.Time    // End time (optional)
	Limit    int           // Number of records to return (max 1000, default 200)
}

// GetKlines fetches klines from Bybit and converts them to price bars in
// chronological order (Bybit returns newest first).
func (c *Client) GetKlines(ctx context.Context, params KlineParams) ([]types.PriceBar, error) {
	if params.Category == "" {
		params.Category = "spot"
	}
	if params.Limit == 0 {
		params.Limit = 200
	}
	if params.Limit > 1000 {
		params.Limit = 1000
	}

	reqParams := map[string]interface{}{
		"category": params.Category,
		"symbol":   params.Symbol,
		"interval": string(params.Interval),
		"limit":    params.Limit,
	}
	if params.Start != nil {
		reqParams["start"] = params.Start.UnixMilli()
	}
	if params.End != nil {
		reqParams["end"] = params.End.UnixMilli()
	}

	result, err := c.httpClient.NewUtaBybitServiceWithParams(reqParams).GetMarketKline(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get klines: %w", err)
	}

	bars, err := parseKlineResponse(result, params.Symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to parse kline response: %w", err)
	}
	return bars, nil
}

// GetKlineRange pages backward through the API until the full [start, end]
// range is covered, returning bars oldest first.
func (c *Client) GetKlineRange(ctx context.Context, category, symbol string, interval KlineInterval, start, end time.Time) ([]types.PriceBar, error) {
	var all []types.PriceBar
	cursor := end

	for cursor.After(start) {
		batch, err := c.GetKlines(ctx, KlineParams{
			Category: category,
			Symbol:   symbol,
			Interval: interval,
			Start:    &start,
			End:      &cursor,
			Limit:    1000,
		})
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}

		all = append(all, batch...)

		earliest := batch[0].Timestamp
		if !earliest.Before(cursor) {
			break
		}
		cursor = earliest.Add(-time.Millisecond)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Timestamp.Before(all[j].Timestamp)
	})

	// Drop duplicates from overlapping pages
	deduped := all[:0]
	for i, bar := range all {
		if i > 0 && bar.Timestamp.Equal(all[i-1].Timestamp) {
			continue
		}
		deduped = append(deduped, bar)
	}

	return deduped, nil
}

// GetLatestPrice gets the latest traded price for a symbol
func (c *Client) GetLatestPrice(ctx context.Context, category, symbol string) (float64, error) {
	if category == "" {
		category = "spot"
	}

	params := map[string]interface{}{
		"category": category,
		"symbol":   symbol,
	}

	result, err := c.httpClient.NewUtaBybitServiceWithParams(params).GetMarketTickers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest price: %w", err)
	}

	price, err := parseLatestPriceResponse(result)
	if err != nil {
		return 0, fmt.Errorf("failed to parse price response: %w", err)
	}
	return price, nil
}

func parseKlineResponse(response interface{}, symbol string) ([]types.PriceBar, error) {
	serverResp, ok := response.(*bybit_api.ServerResponse)
	if !ok {
		return nil, fmt.Errorf("invalid response type")
	}
	if serverResp.RetCode != 0 {
		return nil, fmt.Errorf("API error: %s (code: %d)", serverResp.RetMsg, serverResp.RetCode)
	}

	resultBytes, err := json.Marshal(serverResp.Result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	var klineResult struct {
		Symbol   string     `json:"symbol"`
		Category string     `json:"category"`
		List     [][]string `json:"list"`
	}
	if err := json.Unmarshal(resultBytes, &klineResult); err != nil {
		return nil, fmt.Errorf("failed to unmarshal kline result: %w", err)
	}

	// Bybit kline rows: [startTime, open, high, low, close, volume, turnover],
	// newest first
	bars := make([]types.PriceBar, 0, len(klineResult.List))
	for _, item := range klineResult.List {
		if len(item) < 7 {
			continue
		}
		bars = append(bars, types.PriceBar{
			Symbol:    symbol,
			Open:      parseFloat64(item[1]),
			High:      parseFloat64(item[2]),
			Low:       parseFloat64(item[3]),
			Close:     parseFloat64(item[4]),
			Volume:    parseFloat64(item[5]),
			Timestamp: time.UnixMilli(parseInt64(item[0])).UTC(),
		})
	}

	// Oldest first for the engine
	sort.Slice(bars, func(i, j int) bool {
		return bars[i].Timestamp.Before(bars[j].Timestamp)
	})
	return bars, nil
}

func parseLatestPriceResponse(response interface{}) (float64, error) {
	serverResp, ok := response.(*bybit_api.ServerResponse)
	if !ok {
		return 0, fmt.Errorf("invalid response type")
	}
	if serverResp.RetCode != 0 {
		return 0, fmt.Errorf("API error: %s (code: %d)", serverResp.RetMsg, serverResp.RetCode)
	}

	resultBytes, err := json.Marshal(serverResp.Result)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal result: %w", err)
	}

	var tickerResult struct {
		List []struct {
			Symbol    string `json:"symbol"`
			LastPrice string `json:"lastPrice"`
		} `json:"list"`
	}
	if err := json.Unmarshal(resultBytes, &tickerResult); err != nil {
		return 0, fmt.Errorf("failed to unmarshal ticker result: %w", err)
	}
	if len(tickerResult.List) == 0 {
		return 0, fmt.Errorf("empty ticker list")
	}
	return strconv.ParseFloat(tickerResult.List[0].LastPrice, 64)
}

func parseFloat64(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseInt64(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}
