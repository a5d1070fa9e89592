package domain

import "time"

// Exercise is a single logged activity belonging to a user.
type Exercise struct {
	ID          int64
	UserID      int64
	Description string
	Duration    int64
	Date        time.Time
}

// ExerciseFilter narrows a user's exercise log. Nil fields are ignored.
// Bounds are inclusive; Limit caps the fetched rows but not the count, and a
// negative Limit behaves like no limit.
type ExerciseFilter struct {
	UserID int64
	From   *time.Time
	To     *time.Time
	Limit  *int
}
