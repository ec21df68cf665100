package api

import (
	"io"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v3"

	"badtakes/internal/email"
	"badtakes/internal/intake"
	"badtakes/internal/metrics"
	"badtakes/internal/validation"
)

// SubmitHandler accepts new gallery submissions.
type SubmitHandler struct {
	pipeline *intake.Pipeline
	notifier *email.Notifier
}

// NewSubmitHandler creates a new submission intake handler.
func NewSubmitHandler(pipeline *intake.Pipeline, notifier *email.Notifier) *SubmitHandler {
	return &SubmitHandler{pipeline: pipeline, notifier: notifier}
}

// Create handles POST /api/submissions (multipart form).
func (h *SubmitHandler) Create(c fiber.Ctx) error {
	imageData, err := readImageFile(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "image file is required")
	}

	req := intake.Request{
		Identity: clientIdentity(c),
		Honeypot: c.FormValue("honeypot"),
		Fields: validation.SubmissionInput{
			ImageData:   imageData,
			Platform:    c.FormValue("platform"),
			SourceDate:  c.FormValue("source_date"),
			Topic:       c.FormValue("topic"),
			Language:    c.FormValue("language"),
			Description: c.FormValue("description"),
		},
	}

	result, err := h.pipeline.Submit(c.Context(), req)
	if err != nil {
		metrics.RecordIntake("failed")
		slog.Error("submission intake failed", "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "failed to save submission")
	}

	metrics.RecordIntake(string(result.Disposition))

	switch result.Disposition {
	case intake.DispositionCreated:
		if h.notifier != nil {
			h.notifier.NotifySubmissionReceived(result.Submission)
		}
		return jsonSuccess(c, fiber.StatusCreated, nil)
	case intake.DispositionHoneypot:
		// Indistinguishable from a success on purpose.
		return jsonSuccess(c, fiber.StatusOK, nil)
	case intake.DispositionRateLimited:
		return jsonError(c, fiber.StatusTooManyRequests, "too many submissions, please try again later")
	case intake.DispositionInvalid:
		return jsonError(c, fiber.StatusBadRequest, result.FieldError.Error())
	default:
		return jsonError(c, fiber.StatusInternalServerError, "failed to save submission")
	}
}

// readImageFile reads the uploaded image field into memory. The pipeline
// enforces the size cap; the fiber body limit bounds worst-case reads.
func readImageFile(c fiber.Ctx) ([]byte, error) {
	header, err := c.FormFile("image")
	if err != nil {
		return nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}

// clientIdentity resolves the submitting client address for rate limiting.
// Proxy headers take precedence over the socket address because the service
// runs behind a reverse proxy in production.
func clientIdentity(c fiber.Ctx) string {
	if fwd := c.Get("X-Forwarded-For"); fwd != "" {
		first := strings.TrimSpace(strings.Split(fwd, ",")[0])
		if first != "" {
			return first
		}
	}
	if real := c.Get("X-Real-IP"); real != "" {
		return real
	}
	return intake.IdentityUnknown
}
