package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/claude/repkeeper/internal/models"
	"github.com/google/uuid"
)

// AddSetPerformance records one set for an exercise within a session.
// (session_id, exercise_id, set_number) is the natural key: a second
// write for the same set number updates the existing row in place, which
// is how clients correct an already-recorded set. The session's state is
// deliberately not inspected here; the write is keyed by session id only.
func (s *Store) AddSetPerformance(ctx context.Context, sessionID, exerciseID uuid.UUID, payload models.SetPerformancePayload) (*models.SetPerformance, error) {
	ts := now()
	var (
		p                    models.SetPerformance
		rir                  sql.NullInt64
		createdAt, updatedAt sql.NullTime
	)
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO session_exercise_performance
			(performance_id, session_id, exercise_id, set_number, weight, reps, rir, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (session_id, exercise_id, set_number) DO UPDATE
			SET weight = excluded.weight,
			    reps = excluded.reps,
			    rir = excluded.rir,
			    updated_at = excluded.updated_at
		 RETURNING performance_id, session_id, exercise_id, set_number, weight, reps, rir, created_at, updated_at`,
		uuid.New(), sessionID, exerciseID, payload.SetNumber, payload.Weight, payload.Reps,
		nullableInt(payload.RIR), ts, ts,
	).Scan(&p.PerformanceID, &p.SessionID, &p.ExerciseID, &p.SetNumber, &p.Weight, &p.Reps,
		&rir, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("recording set %d for session %s exercise %s: %w",
			payload.SetNumber, sessionID, exerciseID, err)
	}
	p.RIR = intPtr(rir)
	p.CreatedAt = timePtr(createdAt)
	p.UpdatedAt = timePtr(updatedAt)
	return &p, nil
}

// RemoveSetPerformance deletes one recorded set by its id.
func (s *Store) RemoveSetPerformance(ctx context.Context, performanceID uuid.UUID) (uuid.UUID, error) {
	tag, err := s.db.ExecContext(ctx,
		`DELETE FROM session_exercise_performance WHERE performance_id = $1`, performanceID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("removing set performance %s: %w", performanceID, err)
	}
	n, err := tag.RowsAffected()
	if err != nil {
		return uuid.Nil, fmt.Errorf("removing set performance %s: %w", performanceID, err)
	}
	if n == 0 {
		return uuid.Nil, fmt.Errorf("removing set performance %s: %w", performanceID, ErrNotFound)
	}
	return performanceID, nil
}

// querySetPerformances loads every set recorded for a session, ordered by
// set number.
func querySetPerformances(ctx context.Context, q queryer, sessionID uuid.UUID) ([]models.SetPerformance, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT performance_id, session_id, exercise_id, set_number, weight, reps, rir, created_at, updated_at
		 FROM session_exercise_performance
		 WHERE session_id = $1
		 ORDER BY set_number`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying set performances for session %s: %w", sessionID, err)
	}
	defer rows.Close()

	var result []models.SetPerformance
	for rows.Next() {
		var (
			p                    models.SetPerformance
			rir                  sql.NullInt64
			createdAt, updatedAt sql.NullTime
		)
		if err := rows.Scan(&p.PerformanceID, &p.SessionID, &p.ExerciseID, &p.SetNumber,
			&p.Weight, &p.Reps, &rir, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning set performance: %w", err)
		}
		p.RIR = intPtr(rir)
		p.CreatedAt = timePtr(createdAt)
		p.UpdatedAt = timePtr(updatedAt)
		result = append(result, p)
	}
	return result, rows.Err()
}

func nullableInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
