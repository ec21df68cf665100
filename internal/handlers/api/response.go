package api

import (
	"github.com/gofiber/fiber/v3"
)

// jsonSuccess returns a response with data merged into the success envelope.
func jsonSuccess(c fiber.Ctx, status int, data fiber.Map) error {
	body := fiber.Map{"success": true}
	for k, v := range data {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}
