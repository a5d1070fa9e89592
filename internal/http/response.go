package http

import (
	"exercise-tracker/internal/domain"
	"exercise-tracker/internal/service"
)

// CreateUserResponse is returned after a user is created.
type CreateUserResponse struct {
	Username string `json:"username"`
	ID       int64  `json:"_id"`
}

// UserResponse is one entry of the user listing.
type UserResponse struct {
	ID       int64  `json:"_id"`
	Username string `json:"username"`
}

// ExerciseResponse echoes a saved exercise together with its owner.
type ExerciseResponse struct {
	ID          int64  `json:"_id"`
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int64  `json:"duration"`
	Date        string `json:"date"`
}

// LogEntryResponse is a single exercise inside a log.
type LogEntryResponse struct {
	Description string `json:"description"`
	Duration    int64  `json:"duration"`
	Date        string `json:"date"`
}

// LogResponse is a user's filtered exercise log; Count ignores the limit.
type LogResponse struct {
	ID       int64              `json:"_id"`
	Username string             `json:"username"`
	Count    int                `json:"count"`
	Log      []LogEntryResponse `json:"log"`
}

func usersToResponse(users []domain.User) []UserResponse {
	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = UserResponse{ID: users[i].ID, Username: users[i].Username}
	}
	return resp
}

func exerciseToResponse(user domain.User, exercise domain.Exercise) ExerciseResponse {
	return ExerciseResponse{
		ID:          user.ID,
		Username:    user.Username,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        domain.DisplayDate(exercise.Date),
	}
}

func logToResponse(log *service.ExerciseLog) LogResponse {
	resp := LogResponse{
		ID:       log.User.ID,
		Username: log.User.Username,
		Count:    log.Count,
		Log:      make([]LogEntryResponse, len(log.Exercises)),
	}
	for i, e := range log.Exercises {
		resp.Log[i] = LogEntryResponse{
			Description: e.Description,
			Duration:    e.Duration,
			Date:        domain.DisplayDate(e.Date),
		}
	}
	return resp
}
