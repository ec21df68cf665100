package models

import (
	"time"

	"github.com/google/uuid"
)

// Status is the moderation state of a submission. It starts at pending and
// transitions at most once, to approved or rejected.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Reviewed reports whether s is a terminal (post-moderation) status.
func (s Status) Reviewed() bool {
	return s == StatusApproved || s == StatusRejected
}

// Platform identifies where a screenshot was taken from.
type Platform string

const (
	PlatformTwitter  Platform = "twitter"
	PlatformReddit   Platform = "reddit"
	PlatformYouTube  Platform = "youtube"
	PlatformFacebook Platform = "facebook"
	PlatformLinkedIn Platform = "linkedin"
	PlatformNews     Platform = "news"
	PlatformOther    Platform = "other"
)

// Platforms lists all accepted platform values, in display order.
var Platforms = []Platform{
	PlatformTwitter,
	PlatformReddit,
	PlatformYouTube,
	PlatformFacebook,
	PlatformLinkedIn,
	PlatformNews,
	PlatformOther,
}

// Valid reports whether p is one of the known platforms.
func (p Platform) Valid() bool {
	for _, known := range Platforms {
		if p == known {
			return true
		}
	}
	return false
}

// Topic is the editorial category of a take.
type Topic string

const (
	TopicBubble      Topic = "bubble"
	TopicScam        Topic = "scam"
	TopicEnvironment Topic = "environment"
	TopicObituary    Topic = "obituary"
	TopicRegulation  Topic = "regulation"
	TopicOther       Topic = "other"
)

// Topics lists all accepted topic values, in display order.
var Topics = []Topic{
	TopicBubble,
	TopicScam,
	TopicEnvironment,
	TopicObituary,
	TopicRegulation,
	TopicOther,
}

// Valid reports whether t is one of the known topics.
func (t Topic) Valid() bool {
	for _, known := range Topics {
		if t == known {
			return true
		}
	}
	return false
}

// Language is the content language of a take.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageGerman  Language = "de"
)

// Valid reports whether l is one of the known languages.
func (l Language) Valid() bool {
	return l == LanguageEnglish || l == LanguageGerman
}

// Submission is a user-submitted screenshot awaiting or past moderation.
// ImageURL and ImagePath always refer to the same stored blob; the blob
// lives exactly as long as the record does.
type Submission struct {
	ID            uuid.UUID  `json:"id"`
	ImageURL      string     `json:"image_url"`
	ImagePath     string     `json:"image_path"`
	Platform      Platform   `json:"platform"`
	SourceDate    time.Time  `json:"source_date"`
	Topic         Topic      `json:"topic"`
	Language      Language   `json:"language"`
	Description   *string    `json:"description"`
	SubmittedByIP *string    `json:"-"`
	Status        Status     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	ReviewedAt    *time.Time `json:"reviewed_at"`
}

// IsPending returns true if the submission has not been reviewed yet.
func (s *Submission) IsPending() bool {
	return s.Status == StatusPending
}

// IsApproved returns true if the submission is publicly visible.
func (s *Submission) IsApproved() bool {
	return s.Status == StatusApproved
}
