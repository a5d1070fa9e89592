package service

import "errors"

var (
	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken is returned when registering a username that already exists.
	ErrUsernameTaken = errors.New("username already taken")
)

// ValidationError reports malformed or missing input. Message is safe to
// show to clients as-is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Message
}

var (
	ErrUsernameRequired = &ValidationError{Field: "username", Message: "Username is required"}
	ErrExerciseRequired = &ValidationError{Field: "description", Message: "Description and duration are required."}
	ErrInvalidDuration  = &ValidationError{Field: "duration", Message: "Duration must be a valid number"}
	ErrInvalidDate      = &ValidationError{Field: "date", Message: "Invalid date format."}
)
