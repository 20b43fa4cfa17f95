// internal/api/types/response.go
package types

// ErrorResponse is the body of every failed request: a fixed short label plus
// the underlying message text.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// UserResponse is the wire shape of a user record.
type UserResponse struct {
	Username string `json:"username"`
	ID       string `json:"_id"`
}

// ExerciseResponse is the body returned after creating an exercise.
// ID carries the user's identifier, not the exercise's, matching the
// original API contract.
type ExerciseResponse struct {
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
	ID          string `json:"_id"`
}

// LogEntry is a single exercise inside a log response, with the date rendered
// as a day-level string.
type LogEntry struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogResponse is the body of the per-user exercise log view.
type LogResponse struct {
	Username string     `json:"username"`
	Count    int        `json:"count"`
	ID       string     `json:"_id"`
	Log      []LogEntry `json:"log"`
}
