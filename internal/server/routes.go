package server

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"badtakes/internal/db"
	"badtakes/internal/email"
	"badtakes/internal/handlers"
	"badtakes/internal/handlers/api"
	"badtakes/internal/intake"
	"badtakes/internal/middleware"
	"badtakes/internal/pricing"
	"badtakes/internal/storage"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(
	ctx context.Context,
	database *db.DB,
	blobs storage.BlobStore,
	pipeline *intake.Pipeline,
	prices *pricing.Service,
	notifier *email.Notifier,
) error {
	authMiddleware := middleware.NewAuthMiddleware(s.sessionStore, database, s.Cfg)

	submitHandler := api.NewSubmitHandler(pipeline, notifier)
	submissionHandler := api.NewSubmissionHandler(database)
	moderationHandler := api.NewModerationHandler(database, blobs)
	priceHandler := api.NewPriceHandler(prices)
	healthHandler := api.NewHealthHandler(database)

	// Auth routes - moderation is locked out without OIDC
	if s.Cfg.OIDCIssuer != "" {
		authHandler, err := handlers.NewAuthHandler(ctx, s.Cfg, database)
		if err != nil {
			return err
		}
		s.App.Get("/auth/login", authHandler.Login)
		s.App.Get("/auth/callback", authHandler.Callback)
		s.App.Get("/auth/logout", authHandler.Logout)
	} else {
		log.Println("OIDC authentication is disabled. Set OIDC_ISSUER to enable moderation.")
	}

	// Public API
	s.App.Post("/api/submissions", submitHandler.Create)
	s.App.Get("/api/submissions", submissionHandler.List)
	s.App.Get("/api/bitcoin-price", priceHandler.Get)

	// Moderation API (admin only)
	s.App.Get("/api/admin/submissions", authMiddleware.RequireAdmin, moderationHandler.List)
	s.App.Patch("/api/admin/submissions/:id", authMiddleware.RequireAdmin, moderationHandler.Review)
	s.App.Delete("/api/admin/submissions/:id", authMiddleware.RequireAdmin, moderationHandler.Delete)

	// Ops surface
	s.App.Get("/healthz", healthHandler.Check)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return nil
}
