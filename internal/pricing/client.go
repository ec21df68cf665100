// Package pricing serves historical Bitcoin prices through a cache in front
// of an external price oracle.
package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Oracle failures, distinguished so handlers can answer 502 vs 404.
var (
	ErrOracleUnavailable = errors.New("price oracle unavailable")
	ErrNoData            = errors.New("no price data available for this date")
)

// Pair holds one day's closing price in both supported currencies.
type Pair struct {
	USD float64 `json:"usd"`
	EUR float64 `json:"eur"`
}

// Oracle looks up the historical Bitcoin price for a calendar date.
type Oracle interface {
	HistoricalPrice(ctx context.Context, date time.Time) (Pair, error)
}

// CoinGecko queries the CoinGecko coins/bitcoin/history endpoint.
type CoinGecko struct {
	baseURL string
	client  *http.Client
}

// NewCoinGecko creates an oracle client against baseURL (the API root, e.g.
// "https://api.coingecko.com/api/v3").
func NewCoinGecko(baseURL string) *CoinGecko {
	return &CoinGecko{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// HistoricalPrice fetches the price pair for date. CoinGecko takes the date
// as DD-MM-YYYY.
func (c *CoinGecko) HistoricalPrice(ctx context.Context, date time.Time) (Pair, error) {
	url := fmt.Sprintf("%s/coins/bitcoin/history?date=%s&localization=false",
		c.baseURL, date.Format("02-01-2006"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Pair{}, fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Pair{}, fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Pair{}, fmt.Errorf("%w: HTTP %d", ErrOracleUnavailable, resp.StatusCode)
	}

	var body struct {
		MarketData *struct {
			CurrentPrice map[string]float64 `json:"current_price"`
		} `json:"market_data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Pair{}, fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}

	// Dates before the coin's history have no market data.
	if body.MarketData == nil || len(body.MarketData.CurrentPrice) == 0 {
		return Pair{}, ErrNoData
	}

	return Pair{
		USD: body.MarketData.CurrentPrice["usd"],
		EUR: body.MarketData.CurrentPrice["eur"],
	}, nil
}
