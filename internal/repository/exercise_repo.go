// internal/repository/exercise_repo.go
package repository

import (
	"context"
	"time"

	"exercise-tracker/internal/domain"
)

// LogFilter bounds an exercise log query. From and To are inclusive calendar
// days. A Limit of zero means unlimited.
type LogFilter struct {
	From  time.Time
	To    time.Time
	Limit int
}

// ExerciseRepository defines the interface for exercise data operations.
type ExerciseRepository interface {
	// CreateExercise adds a new exercise entry using the provided DBExecutor.
	CreateExercise(ctx context.Context, q DBExecutor, exercise *domain.Exercise) error
	// ListByUser retrieves a user's exercises within the filter's date range,
	// sorted by date descending, truncated to the filter's limit.
	ListByUser(ctx context.Context, q DBExecutor, userID string, filter LogFilter) ([]domain.Exercise, error)
}
