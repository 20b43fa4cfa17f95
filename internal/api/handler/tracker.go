// internal/api/handler/tracker.go
package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"exercise-tracker/internal/api/types"
	"exercise-tracker/internal/repository"
	"exercise-tracker/internal/service"
	"exercise-tracker/internal/util"
)

// DefaultTimeout bounds request handling time at the router level.
const DefaultTimeout = 60 * time.Second

// dateFormats are the input formats accepted for exercise dates and log range
// bounds, tried in order.
var dateFormats = []string{"2006-01-02", time.RFC3339}

// TrackerHandler handles HTTP requests for the user directory and exercise log.
type TrackerHandler struct {
	service service.TrackerService
	logger  *slog.Logger
}

// NewTrackerHandler creates a new TrackerHandler.
func NewTrackerHandler(svc service.TrackerService, logger *slog.Logger) *TrackerHandler {
	return &TrackerHandler{
		service: svc,
		logger:  logger,
	}
}

// Helper function to send JSON responses.
func (h *TrackerHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// Helper function to send error responses. Every failure carries the
// handler's fixed label plus the underlying message text. A missing user maps
// to 404 and invalid input to 400; everything else is a 500 store failure.
func (h *TrackerHandler) respondWithError(w http.ResponseWriter, label string, err error) {
	statusCode := http.StatusInternalServerError

	switch {
	case util.IsError(err, util.ErrUserNotFound):
		statusCode = http.StatusNotFound
	case util.IsError(err, util.ErrInvalidInput):
		statusCode = http.StatusBadRequest
	default:
		h.logger.Error("Request failed", "label", label, "error", err)
	}

	h.respondWithJSON(w, statusCode, types.ErrorResponse{Error: label, Message: err.Error()})
}

// CreateUserRequest represents the request body for user creation.
type CreateUserRequest struct {
	Username string `json:"username"`
}

// CreateUser handles user creation.
// POST /api/users
func (h *TrackerHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, "Failed to create user", fmt.Errorf("%w: %v", util.ErrInvalidInput, err))
		return
	}

	user, err := h.service.CreateUser(r.Context(), req.Username)
	if err != nil {
		h.respondWithError(w, "Failed to create user", err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, types.UserResponse{
		Username: user.Username,
		ID:       user.ID,
	})
}

// ListUsers handles the full user listing.
// GET /api/users
func (h *TrackerHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.respondWithError(w, "Failed to retrieve users", err)
		return
	}

	response := make([]types.UserResponse, 0, len(users))
	for _, user := range users {
		response = append(response, types.UserResponse{
			Username: user.Username,
			ID:       user.ID,
		})
	}
	h.respondWithJSON(w, http.StatusOK, response)
}

// AddExerciseRequest represents the request body for exercise creation.
type AddExerciseRequest struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// AddExercise handles exercise creation for a user.
// POST /api/users/{_id}/exercises
func (h *TrackerHandler) AddExercise(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "_id")

	var req AddExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, "Failed to create exercise", fmt.Errorf("%w: %v", util.ErrInvalidInput, err))
		return
	}

	// An absent date stays zero; the service defaults it to the current day.
	var date time.Time
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			h.respondWithError(w, "Failed to create exercise", err)
			return
		}
		date = parsed
	}

	user, exercise, err := h.service.AddExercise(r.Context(), userID, req.Description, req.Duration, date)
	if err != nil {
		h.respondWithError(w, "Failed to create exercise", err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, types.ExerciseResponse{
		Username:    user.Username,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        exercise.DateString(),
		ID:          user.ID,
	})
}

// GetLogs handles the filtered, sorted exercise log view for a user.
// GET /api/users/{_id}/logs?from=&to=&limit=
func (h *TrackerHandler) GetLogs(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "_id")

	filter, err := parseLogFilter(r)
	if err != nil {
		h.respondWithError(w, "Failed to find user exercise logs", err)
		return
	}

	user, exercises, err := h.service.GetLogs(r.Context(), userID, filter)
	if err != nil {
		h.respondWithError(w, "Failed to find user exercise logs", err)
		return
	}

	log := make([]types.LogEntry, 0, len(exercises))
	for _, exercise := range exercises {
		log = append(log, types.LogEntry{
			Description: exercise.Description,
			Duration:    exercise.Duration,
			Date:        exercise.DateString(),
		})
	}

	h.respondWithJSON(w, http.StatusOK, types.LogResponse{
		Username: user.Username,
		Count:    len(log),
		ID:       user.ID,
		Log:      log,
	})
}

// parseLogFilter reads the from/to/limit query parameters. Absent parameters
// leave zero values for the service to default. A non-numeric or negative
// limit is rejected; zero is accepted and means unlimited.
func parseLogFilter(r *http.Request) (repository.LogFilter, error) {
	var filter repository.LogFilter

	if from := r.URL.Query().Get("from"); from != "" {
		parsed, err := parseDate(from)
		if err != nil {
			return repository.LogFilter{}, err
		}
		filter.From = parsed
	}
	if to := r.URL.Query().Get("to"); to != "" {
		parsed, err := parseDate(to)
		if err != nil {
			return repository.LogFilter{}, err
		}
		filter.To = parsed
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			return repository.LogFilter{}, fmt.Errorf("%w: limit must be a non-negative integer, got %q", util.ErrInvalidInput, limitStr)
		}
		filter.Limit = limit
	}

	return filter, nil
}

// parseDate parses a date string in any of the accepted input formats.
func parseDate(value string) (time.Time, error) {
	for _, layout := range dateFormats {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognized date %q", util.ErrInvalidInput, value)
}
