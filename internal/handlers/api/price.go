package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"badtakes/internal/pricing"
)

// PriceHandler answers historical Bitcoin price lookups.
type PriceHandler struct {
	service *pricing.Service
}

// NewPriceHandler creates a new price handler.
func NewPriceHandler(service *pricing.Service) *PriceHandler {
	return &PriceHandler{service: service}
}

// Get handles GET /api/bitcoin-price?date=YYYY-MM-DD&currency=usd|eur.
func (h *PriceHandler) Get(c fiber.Ctx) error {
	currency, err := pricing.ParseCurrency(c.Query("currency"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	price, err := h.service.Price(c.Context(), c.Query("date"), currency)
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrInvalidDate):
			return jsonError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, pricing.ErrNoData):
			return priceError(c, fiber.StatusNotFound, "no price data for this date")
		default:
			return priceError(c, fiber.StatusBadGateway, "price service unavailable")
		}
	}

	return jsonSuccess(c, fiber.StatusOK, fiber.Map{
		"price":    price,
		"currency": currency,
	})
}

// priceError mirrors jsonError but carries an explicit null price so
// gallery clients can always read the price field.
func priceError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
		"price":   nil,
	})
}
