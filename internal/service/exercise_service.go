package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"

	"exercise-tracker/internal/domain"
	"exercise-tracker/internal/repository"
)

// AddExerciseInput carries the raw, client supplied exercise fields.
type AddExerciseInput struct {
	Description string
	Duration    string
	Date        string
}

// LogQuery carries the raw log filter parameters. Empty strings mean unset.
type LogQuery struct {
	From  string
	To    string
	Limit string
}

// ExerciseLog is a user's filtered exercise history. Count ignores the limit.
type ExerciseLog struct {
	User      domain.User
	Count     int
	Exercises []domain.Exercise
}

// ExerciseService records exercises and reads them back as logs.
type ExerciseService interface {
	Add(ctx context.Context, rawUserID string, in AddExerciseInput) (*domain.User, *domain.Exercise, error)
	Log(ctx context.Context, rawUserID string, q LogQuery) (*ExerciseLog, error)
}

type exerciseService struct {
	users     UserService
	exercises repository.ExerciseRepository
	now       func() time.Time
}

func NewExerciseService(users UserService, exercises repository.ExerciseRepository) ExerciseService {
	return &exerciseService{
		users:     users,
		exercises: exercises,
		now:       time.Now,
	}
}

func (s *exerciseService) Add(ctx context.Context, rawUserID string, in AddExerciseInput) (*domain.User, *domain.Exercise, error) {
	if strings.TrimSpace(in.Description) == "" || strings.TrimSpace(in.Duration) == "" {
		return nil, nil, ErrExerciseRequired
	}
	duration, err := parseDuration(in.Duration)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.users.Get(ctx, rawUserID)
	if err != nil {
		return nil, nil, err
	}

	date := s.now()
	if strings.TrimSpace(in.Date) != "" {
		if date, err = domain.ParseDate(in.Date); err != nil {
			return nil, nil, ErrInvalidDate
		}
	}

	exercise := &domain.Exercise{
		UserID:      user.ID,
		Description: in.Description,
		Duration:    duration,
		Date:        date,
	}
	if _, err := s.exercises.Create(ctx, exercise); err != nil {
		return nil, nil, fmt.Errorf("save exercise for user %d: %w", user.ID, err)
	}
	return user, exercise, nil
}

func (s *exerciseService) Log(ctx context.Context, rawUserID string, q LogQuery) (*ExerciseLog, error) {
	user, err := s.users.Get(ctx, rawUserID)
	if err != nil {
		return nil, err
	}

	filter := domain.ExerciseFilter{UserID: user.ID}
	if filter.From, err = parseBound(q.From); err != nil {
		return nil, err
	}
	if filter.To, err = parseBound(q.To); err != nil {
		return nil, err
	}
	if limit, err := strconv.Atoi(strings.TrimSpace(q.Limit)); err == nil {
		filter.Limit = &limit
	}

	exercises, count, err := s.exercises.Query(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("query log for user %d: %w", user.ID, err)
	}
	return &ExerciseLog{
		User:      *user,
		Count:     count,
		Exercises: exercises,
	}, nil
}

// parseDuration accepts any finite number in [0, 2^63) and truncates it to
// whole minutes.
func parseDuration(raw string) (int64, error) {
	f, err := cast.ToFloat64E(strings.TrimSpace(raw))
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f >= math.MaxInt64 {
		return 0, ErrInvalidDuration
	}
	return int64(f), nil
}

func parseBound(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := domain.ParseDate(raw)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &t, nil
}
