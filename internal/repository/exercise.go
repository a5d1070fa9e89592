package repository

import (
	"context"

	"exercise-tracker/internal/domain"
)

// ExerciseRepository exposes persistence operations for logged exercises.
type ExerciseRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, exercise *domain.Exercise) (int64, error)
	// Query returns the rows matching filter together with the number of
	// matching rows before the limit is applied.
	Query(ctx context.Context, filter domain.ExerciseFilter) ([]domain.Exercise, int, error)
}
