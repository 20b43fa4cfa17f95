// internal/domain/exercise.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the day-level rendering used in every response that carries a
// date, e.g. "Sun Jan 15 2023".
const DateLayout = "Mon Jan 02 2006"

// Exercise represents a single timed exercise entry attributed to a user.
type Exercise struct {
	ID          string    `db:"id" json:"id"`                   // Opaque unique identifier (UUID)
	UserID      string    `db:"user_id" json:"user_id"`         // Owning user's identifier, immutable after creation
	Description string    `db:"description" json:"description"` // What was done
	Duration    int       `db:"duration" json:"duration"`       // Duration in minutes
	Date        time.Time `db:"date" json:"date"`               // Calendar day of the exercise (midnight UTC)
	CreatedAt   time.Time `db:"created_at" json:"created_at"`   // Timestamp of record creation
}

// NewExercise creates a new Exercise instance. A zero date defaults to the
// current day; any supplied date is reduced to its calendar day.
func NewExercise(userID, description string, duration int, date time.Time) *Exercise {
	if date.IsZero() {
		date = time.Now().UTC()
	}
	return &Exercise{
		ID:          uuid.NewString(),
		UserID:      userID,
		Description: description,
		Duration:    duration,
		Date:        Day(date),
		CreatedAt:   time.Now().UTC(),
	}
}

// Day reduces t to its calendar day at midnight UTC, discarding time-of-day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateString renders the exercise date at day granularity.
func (e *Exercise) DateString() string {
	return e.Date.Format(DateLayout)
}
