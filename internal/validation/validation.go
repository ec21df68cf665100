// Package validation enforces the field-level contract for new submissions,
// independent of transport.
package validation

import (
	"time"
	"unicode/utf8"

	"badtakes/internal/imaging"
	"badtakes/internal/models"
)

// MaxDescriptionLength is the cap on description length, in code points.
const MaxDescriptionLength = 280

// FieldError identifies the first invalid field so the form can highlight it.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// SubmissionInput carries the raw, untrusted form fields.
type SubmissionInput struct {
	ImageData   []byte
	Platform    string
	SourceDate  string
	Topic       string
	Language    string
	Description string
}

// Submission is a fully validated intake, safe to hand to storage and the
// database. Enum fields hold known values only.
type Submission struct {
	ImageData   []byte
	ImageFormat imaging.Format
	Platform    models.Platform
	SourceDate  time.Time
	Topic       models.Topic
	Language    models.Language
	Description *string
}

// ValidateSubmission checks every field and returns the validated form, or
// the first field error found. now anchors the no-future-dates rule.
func ValidateSubmission(in SubmissionInput, now time.Time) (*Submission, *FieldError) {
	if len(in.ImageData) == 0 {
		return nil, &FieldError{Field: "image", Message: "An image is required."}
	}
	if len(in.ImageData) > imaging.MaxUploadBytes {
		return nil, &FieldError{Field: "image", Message: "Image too large. Max 5 MB."}
	}

	format, ok := imaging.Detect(in.ImageData)
	if !ok {
		return nil, &FieldError{Field: "image", Message: "Invalid image format. Only JPG, PNG, and WebP allowed."}
	}

	platform := models.Platform(in.Platform)
	if !platform.Valid() {
		return nil, &FieldError{Field: "platform", Message: "Invalid platform."}
	}

	topic := models.Topic(in.Topic)
	if !topic.Valid() {
		return nil, &FieldError{Field: "topic", Message: "Invalid topic."}
	}

	// Absent or unknown languages silently default to English rather than
	// failing the submission.
	language := models.Language(in.Language)
	if !language.Valid() {
		language = models.LanguageEnglish
	}

	sourceDate, err := time.Parse("2006-01-02", in.SourceDate)
	if err != nil {
		return nil, &FieldError{Field: "source_date", Message: "Invalid date."}
	}
	if sourceDate.After(now) {
		return nil, &FieldError{Field: "source_date", Message: "Date cannot be in the future."}
	}

	var description *string
	if in.Description != "" {
		if utf8.RuneCountInString(in.Description) > MaxDescriptionLength {
			return nil, &FieldError{Field: "description", Message: "Description too long. Max 280 characters."}
		}
		desc := in.Description
		description = &desc
	}

	return &Submission{
		ImageData:   in.ImageData,
		ImageFormat: format,
		Platform:    platform,
		SourceDate:  sourceDate,
		Topic:       topic,
		Language:    language,
		Description: description,
	}, nil
}
