package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a moderator authenticated via OIDC. Visitors submitting
// takes never get a user row; only the admin logs in.
type User struct {
	ID        uuid.UUID `json:"id"`
	Sub       string    `json:"sub"` // OIDC subject identifier
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
