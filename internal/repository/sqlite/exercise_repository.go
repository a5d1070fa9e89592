package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"exercise-tracker/internal/domain"
	"exercise-tracker/internal/repository"
)

const createExercisesTable = `
CREATE TABLE IF NOT EXISTS exercises (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	userId INTEGER NOT NULL,
	description TEXT NOT NULL,
	duration INTEGER NOT NULL,
	date TEXT NOT NULL,
	FOREIGN KEY (userId) REFERENCES users(id)
);
CREATE INDEX IF NOT EXISTS idx_exercises_user_date ON exercises(userId, date);
`

type ExerciseRepository struct {
	db *sql.DB
}

func NewExerciseRepository(db *sql.DB) repository.ExerciseRepository {
	return &ExerciseRepository{db: db}
}

func (r *ExerciseRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createExercisesTable); err != nil {
		return fmt.Errorf("create exercises table: %w", err)
	}
	return nil
}

func (r *ExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO exercises (userId, description, duration, date)
VALUES (?, ?, ?, ?)`,
		exercise.UserID,
		exercise.Description,
		exercise.Duration,
		domain.NormalizeDate(exercise.Date),
	)
	if err != nil {
		return 0, fmt.Errorf("insert exercise: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("exercise last insert id: %w", err)
	}
	exercise.ID = id
	return id, nil
}

// Query counts and fetches with the same predicate in two statements; a
// concurrent insert between them may leave count and rows out of step.
func (r *ExerciseRepository) Query(ctx context.Context, filter domain.ExerciseFilter) ([]domain.Exercise, int, error) {
	where, args := exerciseWhere(filter)

	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM exercises WHERE `+where, args...).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("count exercises: %w", err)
	}

	query := `
SELECT id, userId, description, duration, date
FROM exercises
WHERE ` + where + `
ORDER BY id ASC`
	if filter.Limit != nil {
		query += ` LIMIT ?`
		args = append(args, *filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query exercises: %w", err)
	}
	defer rows.Close()

	exercises := []domain.Exercise{}
	for rows.Next() {
		var (
			exercise domain.Exercise
			date     string
		)
		if err := rows.Scan(&exercise.ID, &exercise.UserID, &exercise.Description, &exercise.Duration, &date); err != nil {
			return nil, 0, fmt.Errorf("scan exercise: %w", err)
		}
		if exercise.Date, err = domain.ParseStoredDate(date); err != nil {
			return nil, 0, err
		}
		exercises = append(exercises, exercise)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate exercises: %w", err)
	}

	return exercises, count, nil
}

func exerciseWhere(filter domain.ExerciseFilter) (string, []any) {
	clauses := []string{"userId = ?"}
	args := []any{filter.UserID}
	if filter.From != nil {
		clauses = append(clauses, "date >= ?")
		args = append(args, domain.NormalizeDate(*filter.From))
	}
	if filter.To != nil {
		clauses = append(clauses, "date <= ?")
		args = append(args, domain.NormalizeDate(*filter.To))
	}
	return strings.Join(clauses, " AND "), args
}
