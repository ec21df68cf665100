package db

import "errors"

// Domain-level database error sentinels.
var (
	// Submission errors
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrAlreadyReviewed    = errors.New("submission has already been reviewed")
	ErrDuplicateImagePath = errors.New("image path already exists")

	// User errors
	ErrUserNotFound = errors.New("user not found")
)
