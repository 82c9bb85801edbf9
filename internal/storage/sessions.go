package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/claude/repkeeper/internal/models"
	"github.com/google/uuid"
)

// IsSessionInProgress reports whether the day has a running session.
func (s *Store) IsSessionInProgress(ctx context.Context, dayID uuid.UUID) (bool, error) {
	return sessionInProgress(ctx, s.db, dayID)
}

func sessionInProgress(ctx context.Context, q queryer, dayID uuid.UUID) (bool, error) {
	var n int
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sessions WHERE day_id = $1 AND in_progress = TRUE`,
		dayID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking in-progress session for day %s: %w", dayID, err)
	}
	return n > 0, nil
}

// StartSession opens a session against a training day. It fails with
// ErrSessionInProgress while another session is running for the day, and
// with ErrNoLinkedExercises when the day has nothing to perform. The
// returned view carries one empty performance entry per linked exercise,
// in link order.
//
// The check and the insert run in one transaction; the partial unique
// index on sessions(day_id) catches the remaining race between two
// concurrent starts, which is reported as the same conflict.
func (s *Store) StartSession(ctx context.Context, dayID uuid.UUID) (*models.SessionWithPerformance, error) {
	var view *models.SessionWithPerformance
	err := s.withTx(ctx, "start session", func(tx *sql.Tx) error {
		running, err := sessionInProgress(ctx, tx, dayID)
		if err != nil {
			return err
		}
		if running {
			return fmt.Errorf("starting session for day %s: %w", dayID, ErrSessionInProgress)
		}

		day, err := s.getTrainingDay(ctx, tx, dayID)
		if err != nil {
			return err
		}

		ts := now()
		session := models.Session{
			SessionID:  uuid.New(),
			DayID:      day.DayID,
			DayName:    day.DayName,
			InProgress: true,
			CreatedAt:  &ts,
			UpdatedAt:  &ts,
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO sessions (session_id, day_id, day_name, in_progress, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			session.SessionID, session.DayID, session.DayName, session.InProgress, ts, ts)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("starting session for day %s: %w", dayID, ErrSessionInProgress)
			}
			return fmt.Errorf("inserting session for day %s: %w", dayID, err)
		}

		view, err = sessionPerformance(ctx, tx, session)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// GetSessionsByDay lists every session recorded against a day.
func (s *Store) GetSessionsByDay(ctx context.Context, dayID uuid.UUID) ([]models.Session, error) {
	return s.querySessions(ctx,
		`SELECT session_id, day_id, day_name, in_progress, created_at, updated_at
		 FROM sessions
		 WHERE day_id = $1
		 ORDER BY created_at`,
		dayID)
}

// GetSessionsByRoutine lists sessions across all of a routine's days.
func (s *Store) GetSessionsByRoutine(ctx context.Context, routineID uuid.UUID) ([]models.Session, error) {
	return s.querySessions(ctx,
		`SELECT s.session_id, s.day_id, s.day_name, s.in_progress, s.created_at, s.updated_at
		 FROM sessions s
		 JOIN training_days td ON td.day_id = s.day_id
		 WHERE td.routine_id = $1
		 ORDER BY s.created_at`,
		routineID)
}

func (s *Store) querySessions(ctx context.Context, query string, args ...any) ([]models.Session, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var result []models.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *sess)
	}
	return result, rows.Err()
}

// GetSessionsWithExercises returns a day's sessions each paired with the
// day's linked exercises. A session whose day has no linked exercises is
// an inconsistency, not an empty result: every session was started
// against at least one exercise, so a zero-child parent means the links
// were removed after the fact and the caller contract cannot be met.
func (s *Store) GetSessionsWithExercises(ctx context.Context, dayID uuid.UUID) ([]models.SessionWithExercises, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT
			s.session_id, s.day_id, s.day_name, s.in_progress, s.created_at, s.updated_at,
			e.exercise_id, e.exercise_name, e.exercise_description,
			l.link_id, e.created_at, e.updated_at
		 FROM sessions s
		 LEFT JOIN exercise_training_day_link l ON l.day_id = s.day_id
		 LEFT JOIN exercises e ON e.exercise_id = l.exercise_id
		 WHERE s.day_id = $1
		 ORDER BY s.created_at, l.created_at`,
		dayID)
	if err != nil {
		return nil, fmt.Errorf("querying sessions with exercises: %w", err)
	}
	defer rows.Close()

	g := newGrouping[uuid.UUID, models.Session, models.ExerciseWithLinkID]()
	for rows.Next() {
		var (
			sess                 models.Session
			createdAt, updatedAt sql.NullTime
			exID, exName, exDesc sql.NullString
			linkID               sql.NullString
			exCreated, exUpdated sql.NullTime
		)
		if err := rows.Scan(
			&sess.SessionID, &sess.DayID, &sess.DayName, &sess.InProgress, &createdAt, &updatedAt,
			&exID, &exName, &exDesc, &linkID, &exCreated, &exUpdated); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		sess.CreatedAt = timePtr(createdAt)
		sess.UpdatedAt = timePtr(updatedAt)

		slot := g.visit(sess.SessionID, func() models.Session { return sess })
		if exID.Valid && exName.Valid && linkID.Valid {
			child, err := exerciseWithLink(exID.String, exName.String, exDesc.String, linkID.String, exCreated, exUpdated)
			if err != nil {
				return nil, err
			}
			g.add(slot, *child)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := make([]models.SessionWithExercises, 0, g.size())
	var inconsistent error
	g.each(func(sess models.Session, exercises []models.ExerciseWithLinkID) {
		if len(exercises) == 0 && inconsistent == nil {
			inconsistent = fmt.Errorf("session %s for day %s: %w", sess.SessionID, dayID, ErrNoLinkedExercises)
			return
		}
		result = append(result, models.SessionWithExercises{Session: sess, Exercises: exercises})
	})
	if inconsistent != nil {
		return nil, inconsistent
	}
	return result, nil
}

// GetSessionInProgress finds the running session for a routine, if any,
// with the performance recorded so far. Idle routines yield (nil, nil).
func (s *Store) GetSessionInProgress(ctx context.Context, routineID uuid.UUID) (*models.SessionWithPerformance, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT s.session_id, s.day_id, s.day_name, s.in_progress, s.created_at, s.updated_at
		 FROM sessions s
		 JOIN training_days td ON td.day_id = s.day_id
		 WHERE td.routine_id = $1 AND s.in_progress = TRUE`,
		routineID)
	sess, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sessionPerformance(ctx, s.db, *sess)
}

// EndSession flips a running session to ended. The update is conditional
// on in_progress, so ending a session twice reports ErrNotFound on the
// second call: zero rows matched, same as a session that never existed.
func (s *Store) EndSession(ctx context.Context, sessionID uuid.UUID) (uuid.UUID, error) {
	tag, err := s.db.ExecContext(ctx,
		`UPDATE sessions
		 SET in_progress = FALSE, updated_at = $1
		 WHERE session_id = $2 AND in_progress = TRUE`,
		now(), sessionID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("ending session %s: %w", sessionID, err)
	}
	n, err := tag.RowsAffected()
	if err != nil {
		return uuid.Nil, fmt.Errorf("ending session %s: %w", sessionID, err)
	}
	if n == 0 {
		return uuid.Nil, fmt.Errorf("ending session %s: %w", sessionID, ErrNotFound)
	}
	return sessionID, nil
}

func scanSession(row interface{ Scan(dest ...any) error }) (*models.Session, error) {
	var (
		sess                 models.Session
		createdAt, updatedAt sql.NullTime
	)
	if err := row.Scan(&sess.SessionID, &sess.DayID, &sess.DayName, &sess.InProgress, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	sess.CreatedAt = timePtr(createdAt)
	sess.UpdatedAt = timePtr(updatedAt)
	return &sess, nil
}

// sessionPerformance assembles the per-exercise performance view for a
// session: the day's linked exercises in link order, each with the sets
// recorded so far ordered by set number. A day with no links cannot back
// a session view.
func sessionPerformance(ctx context.Context, q queryer, session models.Session) (*models.SessionWithPerformance, error) {
	exercises, err := getExercisesForTrainingDay(ctx, q, session.DayID)
	if err != nil {
		return nil, err
	}
	if len(exercises) == 0 {
		return nil, fmt.Errorf("session %s for day %s: %w", session.SessionID, session.DayID, ErrNoLinkedExercises)
	}

	sets, err := querySetPerformances(ctx, q, session.SessionID)
	if err != nil {
		return nil, err
	}

	// Dependent second grouping: sets keyed by exercise id.
	byExercise := make(map[uuid.UUID][]models.SetPerformance, len(exercises))
	for _, set := range sets {
		byExercise[set.ExerciseID] = append(byExercise[set.ExerciseID], set)
	}

	view := &models.SessionWithPerformance{
		Session:   session,
		Exercises: make([]models.ExercisePerformance, 0, len(exercises)),
	}
	for _, ex := range exercises {
		perf := models.ExercisePerformance{Exercise: ex, Sets: []models.SetPerformance{}}
		if recorded, ok := byExercise[ex.ExerciseID]; ok {
			models.SortSetPerformances(recorded)
			perf.Sets = recorded
		}
		view.Exercises = append(view.Exercises, perf)
	}
	return view, nil
}
