package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/claude/repkeeper/internal/models"
	"github.com/google/uuid"
)

// GetRoutines retrieves all routines.
func (s *Store) GetRoutines(ctx context.Context) ([]models.Routine, error) {
	return s.queryRoutines(ctx,
		`SELECT routine_id, name, description, is_active, created_at, updated_at
		 FROM routines
		 ORDER BY created_at`)
}

// GetActiveRoutines retrieves routines flagged active. Nothing enforces a
// single active routine; callers get however many are flagged.
func (s *Store) GetActiveRoutines(ctx context.Context) ([]models.Routine, error) {
	return s.queryRoutines(ctx,
		`SELECT routine_id, name, description, is_active, created_at, updated_at
		 FROM routines
		 WHERE is_active = TRUE
		 ORDER BY created_at`)
}

func (s *Store) queryRoutines(ctx context.Context, query string, args ...any) ([]models.Routine, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying routines: %w", err)
	}
	defer rows.Close()

	var result []models.Routine
	for rows.Next() {
		var (
			r                    models.Routine
			createdAt, updatedAt sql.NullTime
		)
		if err := rows.Scan(&r.RoutineID, &r.Name, &r.Description, &r.IsActive, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning routine: %w", err)
		}
		r.CreatedAt = timePtr(createdAt)
		r.UpdatedAt = timePtr(updatedAt)
		result = append(result, r)
	}
	return result, rows.Err()
}

// CreateRoutine inserts a new routine and returns it.
func (s *Store) CreateRoutine(ctx context.Context, create models.CreateRoutine) (*models.Routine, error) {
	ts := now()
	r := models.Routine{
		RoutineID:   uuid.New(),
		Name:        create.Name,
		Description: create.Description,
		IsActive:    create.IsActive,
		CreatedAt:   &ts,
		UpdatedAt:   &ts,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO routines (routine_id, name, description, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		r.RoutineID, r.Name, r.Description, r.IsActive, ts, ts)
	if err != nil {
		return nil, fmt.Errorf("inserting routine: %w", err)
	}
	return &r, nil
}

// UpdateRoutine overwrites name, description and the active flag.
func (s *Store) UpdateRoutine(ctx context.Context, routine models.Routine) (*models.Routine, error) {
	ts := now()
	var (
		updated              models.Routine
		createdAt, updatedAt sql.NullTime
	)
	err := s.db.QueryRowContext(ctx,
		`UPDATE routines
		 SET name = $1, description = $2, is_active = $3, updated_at = $4
		 WHERE routine_id = $5
		 RETURNING routine_id, name, description, is_active, created_at, updated_at`,
		routine.Name, routine.Description, routine.IsActive, ts, routine.RoutineID,
	).Scan(&updated.RoutineID, &updated.Name, &updated.Description, &updated.IsActive, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("updating routine %s: %w", routine.RoutineID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("updating routine %s: %w", routine.RoutineID, err)
	}
	updated.CreatedAt = timePtr(createdAt)
	updated.UpdatedAt = timePtr(updatedAt)
	return &updated, nil
}

// DeleteRoutine removes a routine by id and returns the id.
func (s *Store) DeleteRoutine(ctx context.Context, routineID uuid.UUID) (uuid.UUID, error) {
	tag, err := s.db.ExecContext(ctx,
		`DELETE FROM routines WHERE routine_id = $1`, routineID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("deleting routine %s: %w", routineID, err)
	}
	n, err := tag.RowsAffected()
	if err != nil {
		return uuid.Nil, fmt.Errorf("deleting routine %s: %w", routineID, err)
	}
	if n == 0 {
		return uuid.Nil, fmt.Errorf("deleting routine %s: %w", routineID, ErrNotFound)
	}
	return routineID, nil
}
