// internal/api/handler/tracker_test.go
package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"exercise-tracker/internal/api"
	"exercise-tracker/internal/api/handler"
	"exercise-tracker/internal/domain"
	"exercise-tracker/internal/repository"
	"exercise-tracker/internal/util"
)

// MockTrackerService is a mock implementation of service.TrackerService.
type MockTrackerService struct {
	mock.Mock
}

func (m *MockTrackerService) CreateUser(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockTrackerService) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockTrackerService) AddExercise(ctx context.Context, userID, description string, duration int, date time.Time) (*domain.User, *domain.Exercise, error) {
	args := m.Called(ctx, userID, description, duration, date)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.User), args.Get(1).(*domain.Exercise), args.Error(2)
}

func (m *MockTrackerService) GetLogs(ctx context.Context, userID string, filter repository.LogFilter) (*domain.User, []domain.Exercise, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.User), args.Get(1).([]domain.Exercise), args.Error(2)
}

// newTestServer mounts the full router over a mocked service.
func newTestServer(t *testing.T) (*httptest.Server, *MockTrackerService) {
	t.Helper()
	mockService := new(MockTrackerService)
	trackerHandler := handler.NewTrackerHandler(mockService, util.GetLogger())
	server := httptest.NewServer(api.NewRouter(trackerHandler, util.GetLogger()))
	t.Cleanup(server.Close)
	return server, mockService
}

func decodeBody(t *testing.T, res *http.Response, dest interface{}) {
	t.Helper()
	defer res.Body.Close()
	require.NoError(t, json.NewDecoder(res.Body).Decode(dest))
}

func TestCreateUserEndpoint(t *testing.T) {
	t.Run("ReturnsUsernameAndID", func(t *testing.T) {
		server, mockService := newTestServer(t)

		mockService.On("CreateUser", mock.Anything, "alice").
			Return(&domain.User{ID: "user-1", Username: "alice"}, nil).Once()

		res, err := http.Post(server.URL+"/api/users", "application/json", strings.NewReader(`{"username":"alice"}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)

		var body map[string]interface{}
		decodeBody(t, res, &body)
		assert.Equal(t, "alice", body["username"])
		assert.Equal(t, "user-1", body["_id"])
		mockService.AssertExpectations(t)
	})

	t.Run("StoreFailureReturns500WithLabelAndMessage", func(t *testing.T) {
		server, mockService := newTestServer(t)

		storeErr := fmt.Errorf("create user: %w: duplicate key value", util.ErrDuplicateEntry)
		mockService.On("CreateUser", mock.Anything, "alice").Return(nil, storeErr).Once()

		res, err := http.Post(server.URL+"/api/users", "application/json", strings.NewReader(`{"username":"alice"}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)

		var body map[string]string
		decodeBody(t, res, &body)
		assert.Equal(t, "Failed to create user", body["error"])
		assert.Contains(t, body["message"], "duplicate key value")
	})

	t.Run("MalformedBodyReturns400", func(t *testing.T) {
		server, mockService := newTestServer(t)

		res, err := http.Post(server.URL+"/api/users", "application/json", strings.NewReader(`{`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		mockService.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})
}

func TestListUsersEndpoint(t *testing.T) {
	t.Run("ReturnsAllUsers", func(t *testing.T) {
		server, mockService := newTestServer(t)

		mockService.On("ListUsers", mock.Anything).Return([]domain.User{
			{ID: "id-a", Username: "alice"},
			{ID: "id-b", Username: "bob"},
		}, nil).Once()

		res, err := http.Get(server.URL + "/api/users")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)

		var body []map[string]interface{}
		decodeBody(t, res, &body)
		require.Len(t, body, 2)
		assert.Equal(t, "alice", body[0]["username"])
		assert.Equal(t, "id-a", body[0]["_id"])
		assert.Equal(t, "bob", body[1]["username"])
	})

	t.Run("EmptyDirectoryIsEmptyArray", func(t *testing.T) {
		server, mockService := newTestServer(t)

		mockService.On("ListUsers", mock.Anything).Return([]domain.User{}, nil).Once()

		res, err := http.Get(server.URL + "/api/users")
		require.NoError(t, err)

		var body []map[string]interface{}
		decodeBody(t, res, &body)
		assert.Empty(t, body)
	})
}

func TestAddExerciseEndpoint(t *testing.T) {
	user := &domain.User{ID: "user-1", Username: "alice"}

	t.Run("ReturnsExerciseWithUserID", func(t *testing.T) {
		server, mockService := newTestServer(t)

		exercise := domain.NewExercise("user-1", "run", 30, time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC))
		mockService.On("AddExercise", mock.Anything, "user-1", "run", 30,
			time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC)).
			Return(user, exercise, nil).Once()

		res, err := http.Post(server.URL+"/api/users/user-1/exercises", "application/json",
			strings.NewReader(`{"description":"run","duration":30,"date":"2023-01-15"}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)

		var body map[string]interface{}
		decodeBody(t, res, &body)
		assert.Equal(t, "alice", body["username"])
		assert.Equal(t, "run", body["description"])
		assert.Equal(t, float64(30), body["duration"])
		assert.Equal(t, "Sun Jan 15 2023", body["date"])
		// The _id field carries the user's id, not the exercise's.
		assert.Equal(t, "user-1", body["_id"])
		mockService.AssertExpectations(t)
	})

	t.Run("AbsentDatePassedAsZero", func(t *testing.T) {
		server, mockService := newTestServer(t)

		exercise := domain.NewExercise("user-1", "run", 30, time.Time{})
		mockService.On("AddExercise", mock.Anything, "user-1", "run", 30, time.Time{}).
			Return(user, exercise, nil).Once()

		res, err := http.Post(server.URL+"/api/users/user-1/exercises", "application/json",
			strings.NewReader(`{"description":"run","duration":30}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)

		var body map[string]interface{}
		decodeBody(t, res, &body)
		assert.Equal(t, exercise.DateString(), body["date"])
		mockService.AssertExpectations(t)
	})

	t.Run("MissingUserReturns404", func(t *testing.T) {
		server, mockService := newTestServer(t)

		mockService.On("AddExercise", mock.Anything, "missing", "run", 30, time.Time{}).
			Return(nil, nil, fmt.Errorf("add exercise: %w", util.ErrUserNotFound)).Once()

		res, err := http.Post(server.URL+"/api/users/missing/exercises", "application/json",
			strings.NewReader(`{"description":"run","duration":30}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})

	t.Run("UnparseableDateReturns400", func(t *testing.T) {
		server, mockService := newTestServer(t)

		res, err := http.Post(server.URL+"/api/users/user-1/exercises", "application/json",
			strings.NewReader(`{"description":"run","duration":30,"date":"next tuesday"}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		mockService.AssertNotCalled(t, "AddExercise", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetLogsEndpoint(t *testing.T) {
	user := &domain.User{ID: "user-1", Username: "alice"}

	t.Run("ReturnsShapedLog", func(t *testing.T) {
		server, mockService := newTestServer(t)

		exercises := []domain.Exercise{
			{ID: "ex-2", UserID: "user-1", Description: "swim", Duration: 45, Date: time.Date(2023, time.January, 10, 0, 0, 0, 0, time.UTC)},
			{ID: "ex-1", UserID: "user-1", Description: "run", Duration: 30, Date: time.Date(2023, time.January, 6, 0, 0, 0, 0, time.UTC)},
		}
		mockService.On("GetLogs", mock.Anything, "user-1", repository.LogFilter{}).
			Return(user, exercises, nil).Once()

		res, err := http.Get(server.URL + "/api/users/user-1/logs")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)

		var body struct {
			Username string `json:"username"`
			Count    int    `json:"count"`
			ID       string `json:"_id"`
			Log      []struct {
				Description string `json:"description"`
				Duration    int    `json:"duration"`
				Date        string `json:"date"`
			} `json:"log"`
		}
		decodeBody(t, res, &body)
		assert.Equal(t, "alice", body.Username)
		assert.Equal(t, 2, body.Count)
		assert.Equal(t, "user-1", body.ID)
		require.Len(t, body.Log, 2)
		assert.Equal(t, "swim", body.Log[0].Description)
		assert.Equal(t, "Tue Jan 10 2023", body.Log[0].Date)
		assert.Equal(t, "run", body.Log[1].Description)
		mockService.AssertExpectations(t)
	})

	t.Run("ForwardsRangeAndLimit", func(t *testing.T) {
		server, mockService := newTestServer(t)

		expectedFilter := repository.LogFilter{
			From:  time.Date(2023, time.January, 5, 0, 0, 0, 0, time.UTC),
			To:    time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC),
			Limit: 1,
		}
		mockService.On("GetLogs", mock.Anything, "user-1", expectedFilter).
			Return(user, []domain.Exercise{}, nil).Once()

		res, err := http.Get(server.URL + "/api/users/user-1/logs?from=2023-01-05&to=2023-01-15&limit=1")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		mockService.AssertExpectations(t)
	})

	t.Run("ZeroLimitForwardedAsUnlimited", func(t *testing.T) {
		server, mockService := newTestServer(t)

		mockService.On("GetLogs", mock.Anything, "user-1", repository.LogFilter{Limit: 0}).
			Return(user, []domain.Exercise{}, nil).Once()

		res, err := http.Get(server.URL + "/api/users/user-1/logs?limit=0")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		mockService.AssertExpectations(t)
	})

	t.Run("NonNumericLimitReturns400", func(t *testing.T) {
		server, mockService := newTestServer(t)

		res, err := http.Get(server.URL + "/api/users/user-1/logs?limit=lots")
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		mockService.AssertNotCalled(t, "GetLogs", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MissingUserReturns404", func(t *testing.T) {
		server, mockService := newTestServer(t)

		mockService.On("GetLogs", mock.Anything, "missing", repository.LogFilter{}).
			Return(nil, nil, fmt.Errorf("get logs: %w", util.ErrUserNotFound)).Once()

		res, err := http.Get(server.URL + "/api/users/missing/logs")
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)

		var body map[string]string
		decodeBody(t, res, &body)
		assert.Equal(t, "Failed to find user exercise logs", body["error"])
	})
}
