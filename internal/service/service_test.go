package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exercise-tracker/internal/domain"
	"exercise-tracker/internal/repository"
)

type mockUserRepo struct {
	users     []domain.User
	createErr error
	getErr    error
	getCalls  int
}

func (m *mockUserRepo) Init(context.Context) error { return nil }

func (m *mockUserRepo) Create(_ context.Context, user *domain.User) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	for _, u := range m.users {
		if u.Username == user.Username {
			return 0, fmt.Errorf("user %q: %w", user.Username, repository.ErrDuplicate)
		}
	}
	user.ID = int64(len(m.users) + 1)
	m.users = append(m.users, *user)
	return user.ID, nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	m.getCalls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, u := range m.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
}

func (m *mockUserRepo) List(context.Context) ([]domain.User, error) {
	return m.users, nil
}

type mockExerciseRepo struct {
	created   []domain.Exercise
	lastQuery domain.ExerciseFilter
	queryErr  error
	createErr error
}

func (m *mockExerciseRepo) Init(context.Context) error { return nil }

func (m *mockExerciseRepo) Create(_ context.Context, e *domain.Exercise) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	e.ID = int64(len(m.created) + 1)
	m.created = append(m.created, *e)
	return e.ID, nil
}

func (m *mockExerciseRepo) Query(_ context.Context, f domain.ExerciseFilter) ([]domain.Exercise, int, error) {
	m.lastQuery = f
	if m.queryErr != nil {
		return nil, 0, m.queryErr
	}
	return m.created, len(m.created), nil
}

func newServices(t *testing.T) (*mockUserRepo, *mockExerciseRepo, UserService, ExerciseService) {
	t.Helper()
	users := &mockUserRepo{}
	exercises := &mockExerciseRepo{}
	userSvc := NewUserService(users)
	exerciseSvc := NewExerciseService(userSvc, exercises)
	return users, exercises, userSvc, exerciseSvc
}

func TestUserServiceCreate(t *testing.T) {
	ctx := context.Background()
	_, _, users, _ := newServices(t)

	user, err := users.Create(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "alice", user.Username)

	_, err = users.Create(ctx, "alice")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = users.Create(ctx, "  ")
	assert.ErrorIs(t, err, ErrUsernameRequired)
}

func TestUserServiceCreateStoreError(t *testing.T) {
	repo := &mockUserRepo{createErr: errors.New("disk full")}
	_, err := NewUserService(repo).Create(context.Background(), "alice")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUsernameTaken)

	var verr *ValidationError
	assert.False(t, errors.As(err, &verr))
}

func TestUserServiceGet(t *testing.T) {
	ctx := context.Background()
	repo, _, users, _ := newServices(t)
	_, err := users.Create(ctx, "alice")
	require.NoError(t, err)

	user, err := users.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = users.Get(ctx, "2")
	assert.ErrorIs(t, err, ErrUserNotFound)

	calls := repo.getCalls
	_, err = users.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Equal(t, calls, repo.getCalls, "non-numeric ids never reach the store")
}

func TestExerciseServiceAddValidationOrder(t *testing.T) {
	ctx := context.Background()
	_, _, users, exercises := newServices(t)
	_, err := users.Create(ctx, "alice")
	require.NoError(t, err)

	cases := []struct {
		name   string
		userID string
		in     AddExerciseInput
		want   error
	}{
		{"missing description", "1", AddExerciseInput{Duration: "10"}, ErrExerciseRequired},
		{"missing duration", "1", AddExerciseInput{Description: "run"}, ErrExerciseRequired},
		{"missing fields beat unknown user", "99", AddExerciseInput{}, ErrExerciseRequired},
		{"negative duration", "1", AddExerciseInput{Description: "run", Duration: "-1"}, ErrInvalidDuration},
		{"non-numeric duration", "1", AddExerciseInput{Description: "run", Duration: "ten"}, ErrInvalidDuration},
		{"NaN duration", "1", AddExerciseInput{Description: "run", Duration: "NaN"}, ErrInvalidDuration},
		{"duration past int64", "1", AddExerciseInput{Description: "run", Duration: "9999999999999999999"}, ErrInvalidDuration},
		{"huge exponent duration", "1", AddExerciseInput{Description: "run", Duration: "1e300"}, ErrInvalidDuration},
		{"unknown user", "99", AddExerciseInput{Description: "run", Duration: "10"}, ErrUserNotFound},
		{"unknown user beats bad date", "99", AddExerciseInput{Description: "run", Duration: "10", Date: "nope"}, ErrUserNotFound},
		{"bad date", "1", AddExerciseInput{Description: "run", Duration: "10", Date: "nope"}, ErrInvalidDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := exercises.Add(ctx, tc.userID, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestExerciseServiceAdd(t *testing.T) {
	ctx := context.Background()
	_, repo, users, svc := newServices(t)
	_, err := users.Create(ctx, "alice")
	require.NoError(t, err)

	fixed := time.Date(2024, 6, 1, 9, 30, 0, 0, time.Local)
	svc.(*exerciseService).now = func() time.Time { return fixed }

	user, exercise, err := svc.Add(ctx, "1", AddExerciseInput{Description: "rowing", Duration: "25.9"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, int64(25), exercise.Duration)
	assert.True(t, exercise.Date.Equal(fixed))

	_, exercise, err = svc.Add(ctx, "1", AddExerciseInput{Description: "stretch", Duration: "0", Date: "2024-01-01"})
	require.NoError(t, err)
	assert.Zero(t, exercise.Duration)
	assert.Equal(t, "Mon Jan 01 2024", domain.DisplayDate(exercise.Date))

	require.Len(t, repo.created, 2)
	assert.Equal(t, int64(1), repo.created[0].UserID)
}

func TestExerciseServiceAddStoreError(t *testing.T) {
	ctx := context.Background()
	_, repo, users, svc := newServices(t)
	_, err := users.Create(ctx, "alice")
	require.NoError(t, err)
	repo.createErr = errors.New("locked")

	_, _, err = svc.Add(ctx, "1", AddExerciseInput{Description: "run", Duration: "5"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserNotFound)
}

func TestExerciseServiceLogFilter(t *testing.T) {
	ctx := context.Background()
	_, repo, users, svc := newServices(t)
	_, err := users.Create(ctx, "alice")
	require.NoError(t, err)

	log, err := svc.Log(ctx, "1", LogQuery{From: "2024-01-02", To: "2024-01-05", Limit: "2"})
	require.NoError(t, err)
	assert.Equal(t, "alice", log.User.Username)

	f := repo.lastQuery
	assert.Equal(t, int64(1), f.UserID)
	require.NotNil(t, f.From)
	require.NotNil(t, f.To)
	require.NotNil(t, f.Limit)
	assert.Equal(t, "Tue Jan 02 2024", domain.DisplayDate(*f.From))
	assert.Equal(t, "Fri Jan 05 2024", domain.DisplayDate(*f.To))
	assert.Equal(t, 2, *f.Limit)

	_, err = svc.Log(ctx, "1", LogQuery{Limit: "lots"})
	require.NoError(t, err)
	assert.Nil(t, repo.lastQuery.From)
	assert.Nil(t, repo.lastQuery.To)
	assert.Nil(t, repo.lastQuery.Limit)
}

func TestExerciseServiceLogErrors(t *testing.T) {
	ctx := context.Background()
	_, repo, users, svc := newServices(t)
	_, err := users.Create(ctx, "alice")
	require.NoError(t, err)

	_, err = svc.Log(ctx, "7", LogQuery{From: "garbage"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Log(ctx, "1", LogQuery{To: "garbage"})
	assert.ErrorIs(t, err, ErrInvalidDate)

	repo.queryErr = errors.New("io")
	_, err = svc.Log(ctx, "1", LogQuery{})
	require.Error(t, err)
}
