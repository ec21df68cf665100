package server

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/encryptcookie"
	"github.com/gofiber/fiber/v3/middleware/session"

	"badtakes/internal/config"
)

// TestEncryptCookieSessionRoundTrip verifies that the encryptcookie +
// session middleware stack does not panic when a client replays encrypted
// session cookies across multiple requests. This was broken in Fiber
// v3.0.0-rc.3 (index-out-of-range in encryptcookie decryption).
func TestEncryptCookieSessionRoundTrip(t *testing.T) {
	secret := "test-secret-that-is-long-enough-for-production"
	encryptionKey := deriveEncryptionKey(secret)

	app := fiber.New()

	// Mirror the production middleware order:
	// 1. encryptcookie  2. session  3. route handler
	app.Use(encryptcookie.New(encryptcookie.Config{
		Key: encryptionKey,
	}))

	sessionMiddleware, _ := session.NewWithStore(session.Config{
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
	app.Use(sessionMiddleware)

	app.Post("/session-set", func(c fiber.Ctx) error {
		sess := session.FromContext(c)
		if sess == nil {
			return c.Status(500).SendString("no session")
		}
		sess.Set("user_sub", "admin-sub")
		return c.SendString("ok")
	})
	app.Get("/session-get", func(c fiber.Ctx) error {
		sess := session.FromContext(c)
		if sess == nil {
			return c.Status(500).SendString("no session")
		}
		val, _ := sess.Get("user_sub").(string)
		return c.SendString(val)
	})

	req, _ := http.NewRequest("POST", "/session-set", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request 1 failed: %v", err)
	}
	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("request 1: expected 200, got %d: %s", resp.StatusCode, body)
	}

	cookies := resp.Cookies()
	if len(cookies) == 0 {
		t.Fatal("request 1: no cookies returned")
	}

	// Replaying the cookies exercises encryptcookie decryption.
	req2, _ := http.NewRequest("GET", "/session-get", nil)
	for _, c := range cookies {
		req2.AddCookie(c)
	}

	resp2, err := app.Test(req2)
	if err != nil {
		t.Fatalf("request 2 failed (possible encryptcookie panic): %v", err)
	}
	body, _ := io.ReadAll(resp2.Body)
	if resp2.StatusCode != 200 {
		t.Fatalf("request 2: expected 200, got %d: %s", resp2.StatusCode, body)
	}
	if string(body) != "admin-sub" {
		t.Errorf("request 2: expected session value 'admin-sub', got %q", body)
	}
}

func TestErrorHandlerReturnsJSON(t *testing.T) {
	cfg := &config.Config{
		ServerAddr:    ":0",
		BaseURL:       "http://localhost:3000",
		SessionSecret: "test-secret-that-is-long-enough-for-tests",
		Env:           "development",
	}
	srv := New(cfg)

	srv.App.Get("/boom", func(c fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})

	req, _ := http.NewRequest("GET", "/boom", nil)
	resp, err := srv.App.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusTeapot {
		t.Fatalf("status = %d, want %d", resp.StatusCode, fiber.StatusTeapot)
	}

	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body.Success {
		t.Error("error response should have success=false")
	}
	if body.Error != "short and stout" {
		t.Errorf("error message = %q", body.Error)
	}
}

func TestUnknownRouteReturnsJSON404(t *testing.T) {
	cfg := &config.Config{
		ServerAddr:    ":0",
		BaseURL:       "http://localhost:3000",
		SessionSecret: "test-secret-that-is-long-enough-for-tests",
		Env:           "development",
	}
	srv := New(cfg)

	req, _ := http.NewRequest("GET", "/definitely-not-a-route", nil)
	resp, err := srv.App.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}
