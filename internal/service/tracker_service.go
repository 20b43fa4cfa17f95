// internal/service/tracker_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"exercise-tracker/internal/domain"
	"exercise-tracker/internal/repository"
)

// earliestDate is the lower bound applied when a log query has no "from".
var earliestDate = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// TrackerService defines the interface for user-directory and exercise-log
// business logic.
type TrackerService interface {
	CreateUser(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	// AddExercise resolves the user, persists the exercise, and returns both;
	// a zero date defaults to the current day.
	AddExercise(ctx context.Context, userID, description string, duration int, date time.Time) (*domain.User, *domain.Exercise, error)
	// GetLogs resolves the user and returns their exercises filtered to the
	// given range, sorted by date descending. Zero filter fields take the
	// defaults: From becomes 1970-01-01, To becomes today, Limit 0 means
	// unlimited.
	GetLogs(ctx context.Context, userID string, filter repository.LogFilter) (*domain.User, []domain.Exercise, error)
}

// trackerService implements the TrackerService interface.
type trackerService struct {
	dbExecutor   repository.DBExecutor // The pool handle acquired at startup (e.g. *sqlx.DB)
	userRepo     repository.UserRepository
	exerciseRepo repository.ExerciseRepository
}

// NewTrackerService creates a new instance of TrackerService.
func NewTrackerService(
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	exerciseRepo repository.ExerciseRepository,
) TrackerService {
	return &trackerService{
		dbExecutor:   dbExecutor,
		userRepo:     userRepo,
		exerciseRepo: exerciseRepo,
	}
}

// CreateUser persists a new user. Uniqueness of the username is enforced by
// the store; a violation comes back as a wrapped ErrDuplicateEntry.
func (s *trackerService) CreateUser(ctx context.Context, username string) (*domain.User, error) {
	user := domain.NewUser(username)
	if err := s.userRepo.CreateUser(ctx, s.dbExecutor, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// ListUsers returns every user in store-native order.
func (s *trackerService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.ListUsers(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// AddExercise resolves the referenced user before writing, so a dangling user
// id surfaces as a distinguished not-found error instead of a dereference
// failure after the write.
func (s *trackerService) AddExercise(ctx context.Context, userID, description string, duration int, date time.Time) (*domain.User, *domain.Exercise, error) {
	user, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("add exercise: %w", err)
	}

	exercise := domain.NewExercise(user.ID, description, duration, date)
	if err := s.exerciseRepo.CreateExercise(ctx, s.dbExecutor, exercise); err != nil {
		return nil, nil, fmt.Errorf("add exercise: %w", err)
	}
	return user, exercise, nil
}

// GetLogs resolves the user, applies range defaults, and fetches the filtered,
// date-descending exercise log.
func (s *trackerService) GetLogs(ctx context.Context, userID string, filter repository.LogFilter) (*domain.User, []domain.Exercise, error) {
	user, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("get logs: %w", err)
	}

	if filter.From.IsZero() {
		filter.From = earliestDate
	}
	if filter.To.IsZero() {
		filter.To = domain.Day(time.Now().UTC())
	}

	exercises, err := s.exerciseRepo.ListByUser(ctx, s.dbExecutor, user.ID, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("get logs: %w", err)
	}
	return user, exercises, nil
}
