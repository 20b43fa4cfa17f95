// internal/domain/user.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user of the exercise tracker.
type User struct {
	ID        string    `db:"id" json:"id"`                 // Opaque unique identifier (UUID)
	Username  string    `db:"username" json:"username"`     // Unique username
	CreatedAt time.Time `db:"created_at" json:"created_at"` // Timestamp of creation
}

// NewUser creates a new User instance with a freshly minted identifier.
func NewUser(username string) *User {
	return &User{
		ID:        uuid.NewString(),
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}
}
