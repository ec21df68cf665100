// Package intake orchestrates the submission write path: rate limiting,
// honeypot defense, validation, and the two-phase blob-then-record write
// with compensating cleanup on partial failure.
package intake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"badtakes/internal/imaging"
	"badtakes/internal/models"
	"badtakes/internal/ratelimit"
	"badtakes/internal/storage"
	"badtakes/internal/validation"
)

// IdentityUnknown is the identity used when no client address could be
// resolved. It is a regular identity: unknown callers share one rate bucket.
const IdentityUnknown = "unknown"

// Terminal pipeline failures. Callers map both to a generic message; the
// distinction only matters for logs and metrics.
var (
	ErrUploadFailed = errors.New("image upload failed")
	ErrSaveFailed   = errors.New("failed to save submission")
)

// Recorder is the slice of the database the pipeline writes to.
type Recorder interface {
	CreateSubmission(ctx context.Context, sub *models.Submission) error
}

// Disposition classifies how an attempt ended.
type Disposition string

const (
	// DispositionCreated means the record and blob both exist.
	DispositionCreated Disposition = "created"
	// DispositionHoneypot means the trap field was set: the caller sees
	// success, nothing was written.
	DispositionHoneypot Disposition = "honeypot"
	// DispositionRateLimited means the identity exhausted its window.
	DispositionRateLimited Disposition = "rate_limited"
	// DispositionInvalid means a field failed validation.
	DispositionInvalid Disposition = "invalid"
)

// Request is one raw submission attempt.
type Request struct {
	Identity string // resolved network origin, or IdentityUnknown
	Honeypot string // hidden trap field, empty for humans
	Fields   validation.SubmissionInput
}

// Result is the terminal state of an attempt that did not fail outright.
type Result struct {
	Disposition Disposition
	FieldError  *validation.FieldError // set when Disposition is invalid
	Submission  *models.Submission     // set when Disposition is created
}

// Pipeline runs submission attempts. Each attempt passes every gate in
// order exactly once; there is no internal retry.
type Pipeline struct {
	limiter *ratelimit.Limiter
	blobs   storage.BlobStore
	db      Recorder
	now     func() time.Time
}

// New creates a pipeline.
func New(limiter *ratelimit.Limiter, blobs storage.BlobStore, db Recorder) *Pipeline {
	return &Pipeline{
		limiter: limiter,
		blobs:   blobs,
		db:      db,
		now:     time.Now,
	}
}

// step is one unit of the write saga: an action plus the compensation that
// undoes it if a later step fails.
type step struct {
	name       string
	run        func(ctx context.Context) error
	compensate func(ctx context.Context)
}

// runSaga executes steps in order. When one fails, the compensations of all
// completed steps run in reverse; their own failures are logged and
// swallowed because the attempt is already failed.
func runSaga(ctx context.Context, steps []step) error {
	for i, s := range steps {
		if err := s.run(ctx); err != nil {
			for j := i - 1; j >= 0; j-- {
				if steps[j].compensate != nil {
					steps[j].compensate(ctx)
				}
			}
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

// Submit runs one attempt through every gate. A non-nil error means an
// upstream failure (storage or database); every other ending is a Result.
func (p *Pipeline) Submit(ctx context.Context, req Request) (*Result, error) {
	identity := req.Identity
	if identity == "" {
		identity = IdentityUnknown
	}

	allowed, err := p.limiter.Allow(ctx, identity)
	if err != nil {
		// The limiter fails open; a broken counter store must not block
		// submissions.
		slog.Warn("rate limiter store error", "error", err)
	}
	if !allowed {
		return &Result{Disposition: DispositionRateLimited}, nil
	}

	// Bots fill the hidden field. Answer exactly like a success so they
	// cannot tell they were caught, and write nothing.
	if req.Honeypot != "" {
		return &Result{Disposition: DispositionHoneypot}, nil
	}

	validated, fieldErr := validation.ValidateSubmission(req.Fields, p.now())
	if fieldErr != nil {
		return &Result{Disposition: DispositionInvalid, FieldError: fieldErr}, nil
	}

	imageData := imaging.Downsample(validated.ImageData, validated.ImageFormat)

	key := storage.NewKey(validated.ImageFormat.Ext)
	sub := &models.Submission{
		ImagePath:   key,
		ImageURL:    p.blobs.PublicURL(key),
		Platform:    validated.Platform,
		SourceDate:  validated.SourceDate,
		Topic:       validated.Topic,
		Language:    validated.Language,
		Description: validated.Description,
	}
	if identity != IdentityUnknown {
		sub.SubmittedByIP = &identity
	}

	saga := []step{
		{
			name: "upload blob",
			run: func(ctx context.Context) error {
				if err := p.blobs.Put(ctx, key, imageData, validated.ImageFormat.MIME); err != nil {
					return fmt.Errorf("%w: %v", ErrUploadFailed, err)
				}
				return nil
			},
			compensate: func(ctx context.Context) {
				if err := p.blobs.Delete(ctx, key); err != nil {
					slog.Error("failed to delete orphaned blob after insert failure", "key", key, "error", err)
				}
			},
		},
		{
			name: "insert record",
			run: func(ctx context.Context) error {
				if err := p.db.CreateSubmission(ctx, sub); err != nil {
					return fmt.Errorf("%w: %v", ErrSaveFailed, err)
				}
				return nil
			},
		},
	}

	if err := runSaga(ctx, saga); err != nil {
		return nil, err
	}

	return &Result{Disposition: DispositionCreated, Submission: sub}, nil
}
