// internal/repository/postgres/exercise_pg.go
package postgres

import (
	"context"
	"fmt"

	"exercise-tracker/internal/domain"
	"exercise-tracker/internal/repository"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// psql builds queries with PostgreSQL-style $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ExerciseRepository implements repository.ExerciseRepository for PostgreSQL.
type ExerciseRepository struct {
	// No *sqlx.DB field; methods receive a DBExecutor directly.
}

// NewExerciseRepository creates a new ExerciseRepository.
func NewExerciseRepository(db *sqlx.DB) repository.ExerciseRepository {
	return &ExerciseRepository{}
}

// CreateExercise inserts a new exercise entry using the provided DBExecutor.
func (r *ExerciseRepository) CreateExercise(ctx context.Context, q repository.DBExecutor, exercise *domain.Exercise) error {
	query := `INSERT INTO exercises (id, user_id, description, duration, date, created_at)
              VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := q.ExecContext(ctx, query,
		exercise.ID,
		exercise.UserID,
		exercise.Description,
		exercise.Duration,
		exercise.Date,
		exercise.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create exercise: %w", err)
	}
	return nil
}

// ListByUser retrieves a user's exercises with date in [filter.From, filter.To],
// both ends inclusive, sorted by date descending. A positive filter.Limit caps
// the result; zero means unlimited. The query is assembled with squirrel since
// the LIMIT clause is conditional.
func (r *ExerciseRepository) ListByUser(ctx context.Context, q repository.DBExecutor, userID string, filter repository.LogFilter) ([]domain.Exercise, error) {
	builder := psql.
		Select("id", "user_id", "description", "duration", "date", "created_at").
		From("exercises").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.GtOrEq{"date": filter.From}).
		Where(sq.LtOrEq{"date": filter.To}).
		OrderBy("date DESC", "created_at DESC")
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build exercise log query: %w", err)
	}

	exercises := []domain.Exercise{}
	if err := q.SelectContext(ctx, &exercises, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch exercises for user %s: %w", userID, err)
	}
	return exercises, nil
}
