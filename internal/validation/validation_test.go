package validation

import (
	"bytes"
	"image"
	"image/jpeg"
	"strings"
	"testing"
	"time"

	"badtakes/internal/models"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func validInput(t *testing.T) SubmissionInput {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 16, 16)), nil); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return SubmissionInput{
		ImageData:  buf.Bytes(),
		Platform:   "twitter",
		SourceDate: "2021-05-19",
		Topic:      "scam",
		Language:   "en",
	}
}

func TestValidateSubmission_Valid(t *testing.T) {
	sub, fieldErr := ValidateSubmission(validInput(t), testNow)
	if fieldErr != nil {
		t.Fatalf("ValidateSubmission() error = %v", fieldErr)
	}
	if sub.Platform != models.PlatformTwitter {
		t.Errorf("Platform = %q, want twitter", sub.Platform)
	}
	if sub.Topic != models.TopicScam {
		t.Errorf("Topic = %q, want scam", sub.Topic)
	}
	if sub.ImageFormat.MIME != "image/jpeg" {
		t.Errorf("ImageFormat = %q, want image/jpeg", sub.ImageFormat.MIME)
	}
	if !sub.SourceDate.Equal(time.Date(2021, 5, 19, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("SourceDate = %v", sub.SourceDate)
	}
	if sub.Description != nil {
		t.Error("expected nil description for empty input")
	}
}

func TestValidateSubmission_FieldErrors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*SubmissionInput)
		wantField string
	}{
		{
			name:      "missing image",
			mutate:    func(in *SubmissionInput) { in.ImageData = nil },
			wantField: "image",
		},
		{
			name:      "oversized image",
			mutate:    func(in *SubmissionInput) { in.ImageData = make([]byte, 5*1024*1024+1) },
			wantField: "image",
		},
		{
			name:      "non-image payload",
			mutate:    func(in *SubmissionInput) { in.ImageData = []byte("plain text") },
			wantField: "image",
		},
		{
			name:      "unknown platform",
			mutate:    func(in *SubmissionInput) { in.Platform = "myspace" },
			wantField: "platform",
		},
		{
			name:      "empty platform",
			mutate:    func(in *SubmissionInput) { in.Platform = "" },
			wantField: "platform",
		},
		{
			name:      "unknown topic",
			mutate:    func(in *SubmissionInput) { in.Topic = "fomo" },
			wantField: "topic",
		},
		{
			name:      "unparseable date",
			mutate:    func(in *SubmissionInput) { in.SourceDate = "19.05.2021" },
			wantField: "source_date",
		},
		{
			name:      "future date",
			mutate:    func(in *SubmissionInput) { in.SourceDate = "2031-01-01" },
			wantField: "source_date",
		},
		{
			name:      "description over 280 code points",
			mutate:    func(in *SubmissionInput) { in.Description = strings.Repeat("x", 281) },
			wantField: "description",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput(t)
			tt.mutate(&in)

			sub, fieldErr := ValidateSubmission(in, testNow)
			if fieldErr == nil {
				t.Fatal("expected a field error")
			}
			if sub != nil {
				t.Error("expected nil submission on validation failure")
			}
			if fieldErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", fieldErr.Field, tt.wantField)
			}
		})
	}
}

func TestValidateSubmission_LanguageDefaults(t *testing.T) {
	tests := []struct {
		name string
		lang string
		want models.Language
	}{
		{"english kept", "en", models.LanguageEnglish},
		{"german kept", "de", models.LanguageGerman},
		{"absent defaults to en", "", models.LanguageEnglish},
		{"unknown defaults to en", "fr", models.LanguageEnglish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput(t)
			in.Language = tt.lang

			sub, fieldErr := ValidateSubmission(in, testNow)
			if fieldErr != nil {
				t.Fatalf("ValidateSubmission() error = %v", fieldErr)
			}
			if sub.Language != tt.want {
				t.Errorf("Language = %q, want %q", sub.Language, tt.want)
			}
		})
	}
}

func TestValidateSubmission_DescriptionBoundary(t *testing.T) {
	in := validInput(t)
	// 280 multi-byte code points must pass: the cap counts runes, not bytes.
	in.Description = strings.Repeat("ü", 280)

	sub, fieldErr := ValidateSubmission(in, testNow)
	if fieldErr != nil {
		t.Fatalf("expected 280 code points to pass, got %v", fieldErr)
	}
	if sub.Description == nil {
		t.Fatal("expected description to be set")
	}
}

func TestValidateSubmission_TodayIsNotFuture(t *testing.T) {
	in := validInput(t)
	in.SourceDate = "2024-06-01"

	if _, fieldErr := ValidateSubmission(in, testNow); fieldErr != nil {
		t.Errorf("expected today's date to pass, got %v", fieldErr)
	}
}
