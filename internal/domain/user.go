package domain

// User represents a person whose exercises are tracked.
type User struct {
	ID       int64
	Username string
}
