package api

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"badtakes/internal/db"
	"badtakes/internal/models"
	"badtakes/internal/storage"
)

// ModerationHandler handles the admin review queue via JSON API.
type ModerationHandler struct {
	db    *db.DB
	blobs storage.BlobStore
}

// NewModerationHandler creates a new moderation handler.
func NewModerationHandler(database *db.DB, blobs storage.BlobStore) *ModerationHandler {
	return &ModerationHandler{db: database, blobs: blobs}
}

// List returns submissions by status. Pending submissions come back oldest
// first so the queue is worked in arrival order; reviewed ones newest first.
func (h *ModerationHandler) List(c fiber.Ctx) error {
	status := models.Status(c.Query("status", string(models.StatusPending)))
	if !status.Valid() {
		return jsonError(c, fiber.StatusBadRequest, "invalid status")
	}

	submissions, err := h.db.ListByStatus(c.Context(), status)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch submissions")
	}

	if submissions == nil {
		submissions = []models.Submission{}
	}

	return jsonSuccess(c, fiber.StatusOK, fiber.Map{
		"submissions": submissions,
	})
}

// Review handles PATCH /api/admin/submissions/:id, transitioning a pending
// submission to approved or rejected.
func (h *ModerationHandler) Review(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid submission id")
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	status := models.Status(body.Status)
	if !status.Reviewed() {
		return jsonError(c, fiber.StatusBadRequest, "status must be approved or rejected")
	}

	sub, err := h.db.ReviewSubmission(c.Context(), id, status)
	if err != nil {
		if errors.Is(err, db.ErrSubmissionNotFound) || errors.Is(err, db.ErrAlreadyReviewed) {
			return jsonError(c, fiber.StatusNotFound, "submission not found or already processed")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to review submission")
	}

	return jsonSuccess(c, fiber.StatusOK, fiber.Map{
		"submission": sub,
	})
}

// Delete handles DELETE /api/admin/submissions/:id. The blob is removed
// first on a best-effort basis; a storage failure is logged and the record
// is deleted regardless, leaving the orphan sweeper to retry the blob.
func (h *ModerationHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid submission id")
	}

	sub, err := h.db.GetSubmissionByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrSubmissionNotFound) {
			return jsonError(c, fiber.StatusNotFound, "submission not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch submission")
	}

	if err := h.blobs.Delete(c.Context(), sub.ImagePath); err != nil {
		slog.Error("failed to delete submission blob", "key", sub.ImagePath, "error", err)
	}

	if err := h.db.DeleteSubmission(c.Context(), id); err != nil {
		if errors.Is(err, db.ErrSubmissionNotFound) {
			return jsonError(c, fiber.StatusNotFound, "submission not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to delete submission")
	}

	return jsonSuccess(c, fiber.StatusOK, fiber.Map{
		"message": "submission deleted",
	})
}
