package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"badtakes/internal/config"
	"badtakes/internal/db"
)

// AuthMiddleware handles user authentication via sessions.
type AuthMiddleware struct {
	store      *session.Store
	db         *db.DB
	adminEmail string
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(store *session.Store, database *db.DB, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{store: store, db: database, adminEmail: cfg.AdminEmail}
}

// RequireAdmin ensures the request comes from the configured admin identity.
// All gated endpoints are JSON, so failures answer with a JSON error rather
// than a redirect. The response does not distinguish "not logged in" from
// "logged in as someone else".
func (m *AuthMiddleware) RequireAdmin(c fiber.Ctx) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return unauthorized(c)
	}

	userSub := sess.Get("user_sub")
	if userSub == nil {
		return unauthorized(c)
	}

	user, err := m.db.GetUserBySub(c.Context(), userSub.(string))
	if err != nil {
		sess.Destroy()
		return unauthorized(c)
	}

	if !m.isAdmin(user.Email) {
		return unauthorized(c)
	}

	c.Locals("user", user)
	return c.Next()
}

// isAdmin reports whether email matches the configured admin address.
// An empty admin address locks moderation out entirely.
func (m *AuthMiddleware) isAdmin(email string) bool {
	if m.adminEmail == "" || email == "" {
		return false
	}
	return strings.EqualFold(email, m.adminEmail)
}

func unauthorized(c fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"error":   "Unauthorized",
	})
}
