package api

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"badtakes/internal/db"
	"badtakes/internal/models"
)

const (
	defaultPageSize = 12
	maxPageSize     = 50
)

// SubmissionHandler serves the public gallery listing.
type SubmissionHandler struct {
	db *db.DB
}

// NewSubmissionHandler creates a new public listing handler.
func NewSubmissionHandler(database *db.DB) *SubmissionHandler {
	return &SubmissionHandler{db: database}
}

// List handles GET /api/submissions: approved records, newest source date
// first, with the exact match count and the distinct years available for
// the year filter.
func (h *SubmissionHandler) List(c fiber.Ctx) error {
	filter := db.ListFilter{
		Language: c.Query("language"),
		Platform: c.Query("platform"),
		Topic:    c.Query("topic"),
		Search:   c.Query("search"),
		Page:     queryInt(c, "page", 0),
		Limit:    queryInt(c, "limit", defaultPageSize),
	}

	if year := c.Query("year"); year != "" {
		parsed, err := strconv.Atoi(year)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "invalid year")
		}
		filter.Year = parsed
	}

	if filter.Page < 0 {
		filter.Page = 0
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}

	submissions, total, err := h.db.ListApproved(c.Context(), filter)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch submissions")
	}

	years, err := h.db.AvailableYears(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch submissions")
	}

	// Ensure non-null arrays in JSON
	if submissions == nil {
		submissions = []models.Submission{}
	}
	if years == nil {
		years = []int{}
	}

	return jsonSuccess(c, fiber.StatusOK, fiber.Map{
		"submissions":    submissions,
		"totalCount":     total,
		"availableYears": years,
	})
}

func queryInt(c fiber.Ctx, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
