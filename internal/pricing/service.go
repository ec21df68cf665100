package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"regexp"
	"time"

	"badtakes/internal/cache"
	"badtakes/internal/metrics"
)

// Request validation errors, answered with 400.
var (
	ErrInvalidDate     = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidCurrency = errors.New("currency must be usd or eur")
)

// Currency is a supported display currency.
type Currency string

const (
	CurrencyUSD Currency = "usd"
	CurrencyEUR Currency = "eur"
)

// ParseCurrency validates a currency query parameter; empty defaults to usd.
func ParseCurrency(raw string) (Currency, error) {
	switch Currency(raw) {
	case CurrencyUSD, "":
		return CurrencyUSD, nil
	case CurrencyEUR:
		return CurrencyEUR, nil
	}
	return "", ErrInvalidCurrency
}

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Service answers price lookups from the cache, falling back to the oracle.
// Both currencies are cached together under the date, so a USD hit also
// warms EUR.
type Service struct {
	oracle Oracle
	cache  cache.Cache
	ttl    time.Duration
}

// NewService creates a price service. ttl bounds how long a fetched pair is
// reused; historical prices never change, so long TTLs are safe.
func NewService(oracle Oracle, store cache.Cache, ttl time.Duration) *Service {
	return &Service{oracle: oracle, cache: store, ttl: ttl}
}

// Price returns the Bitcoin price for date (YYYY-MM-DD) in currency,
// rounded to 2 decimal places.
func (s *Service) Price(ctx context.Context, date string, currency Currency) (float64, error) {
	if !datePattern.MatchString(date) {
		return 0, ErrInvalidDate
	}
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, ErrInvalidDate
	}

	cacheKey := "btcprice:" + date

	if raw, ok, err := s.cache.Get(ctx, cacheKey); err == nil && ok {
		var pair Pair
		if err := json.Unmarshal(raw, &pair); err == nil {
			metrics.RecordPriceLookup("cache")
			return pair.value(currency), nil
		}
	} else if err != nil {
		slog.Warn("price cache read failed", "date", date, "error", err)
	}

	pair, err := s.oracle.HistoricalPrice(ctx, parsed)
	if err != nil {
		return 0, err
	}
	metrics.RecordPriceLookup("oracle")

	pair.USD = round2(pair.USD)
	pair.EUR = round2(pair.EUR)

	if raw, err := json.Marshal(pair); err == nil {
		if err := s.cache.Set(ctx, cacheKey, raw, s.ttl); err != nil {
			slog.Warn("price cache write failed", "date", date, "error", err)
		}
	}

	return pair.value(currency), nil
}

func (p Pair) value(currency Currency) float64 {
	if currency == CurrencyEUR {
		return p.EUR
	}
	return p.USD
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
