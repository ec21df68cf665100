package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"

	"badtakes/internal/cache"
	"badtakes/internal/pricing"
)

type stubOracle struct {
	pair pricing.Pair
	err  error
}

func (o *stubOracle) HistoricalPrice(context.Context, time.Time) (pricing.Pair, error) {
	if o.err != nil {
		return pricing.Pair{}, o.err
	}
	return o.pair, nil
}

func newPriceApp(oracle pricing.Oracle) *fiber.App {
	service := pricing.NewService(oracle, cache.NewMemory(), time.Hour)
	handler := NewPriceHandler(service)

	app := fiber.New()
	app.Get("/api/bitcoin-price", handler.Get)
	return app
}

func TestPriceGet(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		oracle     *stubOracle
		wantStatus int
		wantPrice  *float64
	}{
		{
			name:       "usd price",
			url:        "/api/bitcoin-price?date=2021-05-19&currency=usd",
			oracle:     &stubOracle{pair: pricing.Pair{USD: 42736.12, EUR: 35110.99}},
			wantStatus: fiber.StatusOK,
			wantPrice:  ptr(42736.12),
		},
		{
			name:       "currency defaults to usd",
			url:        "/api/bitcoin-price?date=2021-05-19",
			oracle:     &stubOracle{pair: pricing.Pair{USD: 42736.12, EUR: 35110.99}},
			wantStatus: fiber.StatusOK,
			wantPrice:  ptr(42736.12),
		},
		{
			name:       "eur price",
			url:        "/api/bitcoin-price?date=2021-05-19&currency=eur",
			oracle:     &stubOracle{pair: pricing.Pair{USD: 42736.12, EUR: 35110.99}},
			wantStatus: fiber.StatusOK,
			wantPrice:  ptr(35110.99),
		},
		{
			name:       "invalid currency",
			url:        "/api/bitcoin-price?date=2021-05-19&currency=gbp",
			oracle:     &stubOracle{},
			wantStatus: fiber.StatusBadRequest,
		},
		{
			name:       "invalid date",
			url:        "/api/bitcoin-price?date=19-05-2021",
			oracle:     &stubOracle{},
			wantStatus: fiber.StatusBadRequest,
		},
		{
			name:       "missing date",
			url:        "/api/bitcoin-price",
			oracle:     &stubOracle{},
			wantStatus: fiber.StatusBadRequest,
		},
		{
			name:       "no data for date",
			url:        "/api/bitcoin-price?date=2009-01-03",
			oracle:     &stubOracle{err: pricing.ErrNoData},
			wantStatus: fiber.StatusNotFound,
		},
		{
			name:       "oracle unavailable",
			url:        "/api/bitcoin-price?date=2021-05-19",
			oracle:     &stubOracle{err: pricing.ErrOracleUnavailable},
			wantStatus: fiber.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newPriceApp(tt.oracle)

			req, _ := http.NewRequest("GET", tt.url, nil)
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}

			var body struct {
				Success bool     `json:"success"`
				Price   *float64 `json:"price"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("decoding response: %v", err)
			}

			if tt.wantPrice != nil {
				if body.Price == nil || *body.Price != *tt.wantPrice {
					t.Errorf("price = %v, want %v", body.Price, *tt.wantPrice)
				}
			} else if tt.wantStatus == fiber.StatusNotFound || tt.wantStatus == fiber.StatusBadGateway {
				// Oracle failures still carry an explicit null price.
				if body.Price != nil {
					t.Errorf("price = %v, want null", *body.Price)
				}
			}
		})
	}
}

func ptr(f float64) *float64 { return &f }
