package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/claude/repkeeper/internal/models"
	"github.com/google/uuid"
)

// GetExercises retrieves all exercises.
func (s *Store) GetExercises(ctx context.Context) ([]models.Exercise, error) {
	return s.queryExercises(ctx,
		`SELECT exercise_id, exercise_name, exercise_description, created_at, updated_at
		 FROM exercises
		 ORDER BY created_at`)
}

// SearchExercises finds exercises whose name contains the given substring,
// case-insensitively.
func (s *Store) SearchExercises(ctx context.Context, name string) ([]models.Exercise, error) {
	return s.queryExercises(ctx,
		`SELECT exercise_id, exercise_name, exercise_description, created_at, updated_at
		 FROM exercises
		 WHERE LOWER(exercise_name) LIKE '%' || LOWER($1) || '%'
		 ORDER BY created_at`,
		name)
}

func (s *Store) queryExercises(ctx context.Context, query string, args ...any) ([]models.Exercise, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []models.Exercise
	for rows.Next() {
		var (
			e                    models.Exercise
			createdAt, updatedAt sql.NullTime
		)
		if err := rows.Scan(&e.ExerciseID, &e.ExerciseName, &e.ExerciseDescription, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		e.CreatedAt = timePtr(createdAt)
		e.UpdatedAt = timePtr(updatedAt)
		result = append(result, e)
	}
	return result, rows.Err()
}

// CreateExercise inserts a new exercise and returns it.
func (s *Store) CreateExercise(ctx context.Context, create models.CreateExercise) (*models.Exercise, error) {
	ts := now()
	e := models.Exercise{
		ExerciseID:          uuid.New(),
		ExerciseName:        create.ExerciseName,
		ExerciseDescription: create.ExerciseDescription,
		CreatedAt:           &ts,
		UpdatedAt:           &ts,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO exercises (exercise_id, exercise_name, exercise_description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		e.ExerciseID, e.ExerciseName, e.ExerciseDescription, ts, ts)
	if err != nil {
		return nil, fmt.Errorf("inserting exercise: %w", err)
	}
	return &e, nil
}

// CreateExercises inserts a batch one row at a time, same non-atomic
// policy as CreateTrainingDays.
func (s *Store) CreateExercises(ctx context.Context, create []models.CreateExercise) ([]models.Exercise, error) {
	result := make([]models.Exercise, 0, len(create))
	for _, c := range create {
		e, err := s.CreateExercise(ctx, c)
		if err != nil {
			return nil, err
		}
		result = append(result, *e)
	}
	return result, nil
}

// AddExerciseToTrainingDay links an exercise to a day and returns the
// link record.
func (s *Store) AddExerciseToTrainingDay(ctx context.Context, exerciseID, dayID uuid.UUID) (*models.ExerciseLink, error) {
	ts := now()
	link := models.ExerciseLink{
		LinkID:     uuid.New(),
		ExerciseID: exerciseID,
		DayID:      dayID,
		CreatedAt:  &ts,
		UpdatedAt:  &ts,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO exercise_training_day_link (link_id, exercise_id, day_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		link.LinkID, link.ExerciseID, link.DayID, ts, ts)
	if err != nil {
		return nil, fmt.Errorf("linking exercise %s to day %s: %w", exerciseID, dayID, err)
	}
	return &link, nil
}

// GetExercisesForTrainingDay returns a day's linked exercises in
// link-creation order, each carrying its link id.
func (s *Store) GetExercisesForTrainingDay(ctx context.Context, dayID uuid.UUID) ([]models.ExerciseWithLinkID, error) {
	return getExercisesForTrainingDay(ctx, s.db, dayID)
}

func getExercisesForTrainingDay(ctx context.Context, q queryer, dayID uuid.UUID) ([]models.ExerciseWithLinkID, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT e.exercise_id, e.exercise_name, e.exercise_description,
			l.link_id, e.created_at, e.updated_at
		 FROM exercises e
		 JOIN exercise_training_day_link l ON l.exercise_id = e.exercise_id
		 WHERE l.day_id = $1
		 ORDER BY l.created_at`,
		dayID)
	if err != nil {
		return nil, fmt.Errorf("querying exercises for day %s: %w", dayID, err)
	}
	defer rows.Close()

	var result []models.ExerciseWithLinkID
	for rows.Next() {
		var (
			e                    models.ExerciseWithLinkID
			createdAt, updatedAt sql.NullTime
		)
		if err := rows.Scan(&e.ExerciseID, &e.ExerciseName, &e.ExerciseDescription,
			&e.LinkID, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning linked exercise: %w", err)
		}
		e.CreatedAt = timePtr(createdAt)
		e.UpdatedAt = timePtr(updatedAt)
		result = append(result, e)
	}
	return result, rows.Err()
}

// RemoveExerciseFromTrainingDay deletes one link row by its link id,
// leaving the exercise and any other links untouched.
func (s *Store) RemoveExerciseFromTrainingDay(ctx context.Context, linkID uuid.UUID) (uuid.UUID, error) {
	tag, err := s.db.ExecContext(ctx,
		`DELETE FROM exercise_training_day_link WHERE link_id = $1`, linkID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("removing link %s: %w", linkID, err)
	}
	n, err := tag.RowsAffected()
	if err != nil {
		return uuid.Nil, fmt.Errorf("removing link %s: %w", linkID, err)
	}
	if n == 0 {
		return uuid.Nil, fmt.Errorf("removing link %s: %w", linkID, ErrNotFound)
	}
	return linkID, nil
}

// GetLinkTable dumps the whole link table. Debug surface.
func (s *Store) GetLinkTable(ctx context.Context) ([]models.ExerciseLink, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT link_id, exercise_id, day_id, created_at, updated_at
		 FROM exercise_training_day_link
		 ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("querying link table: %w", err)
	}
	defer rows.Close()

	var result []models.ExerciseLink
	for rows.Next() {
		var (
			l                    models.ExerciseLink
			createdAt, updatedAt sql.NullTime
		)
		if err := rows.Scan(&l.LinkID, &l.ExerciseID, &l.DayID, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning link: %w", err)
		}
		l.CreatedAt = timePtr(createdAt)
		l.UpdatedAt = timePtr(updatedAt)
		result = append(result, l)
	}
	return result, rows.Err()
}
