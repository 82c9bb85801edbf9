package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/claude/repkeeper/internal/models"
	"github.com/google/uuid"
)

// GetTrainingDays retrieves the training days of a routine.
func (s *Store) GetTrainingDays(ctx context.Context, routineID uuid.UUID) ([]models.TrainingDay, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT day_id, routine_id, day_name, created_at, updated_at
		 FROM training_days
		 WHERE routine_id = $1
		 ORDER BY created_at`,
		routineID)
	if err != nil {
		return nil, fmt.Errorf("querying training days: %w", err)
	}
	defer rows.Close()

	var result []models.TrainingDay
	for rows.Next() {
		d, err := scanTrainingDay(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *d)
	}
	return result, rows.Err()
}

// CreateTrainingDay inserts a single training day under a routine.
func (s *Store) CreateTrainingDay(ctx context.Context, create models.CreateTrainingDay) (*models.TrainingDay, error) {
	ts := now()
	d := models.TrainingDay{
		DayID:     uuid.New(),
		RoutineID: create.RoutineID,
		DayName:   create.DayName,
		CreatedAt: &ts,
		UpdatedAt: &ts,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO training_days (day_id, routine_id, day_name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		d.DayID, d.RoutineID, d.DayName, ts, ts)
	if err != nil {
		return nil, fmt.Errorf("inserting training day: %w", err)
	}
	return &d, nil
}

// CreateTrainingDays inserts a batch of training days one row at a time.
// The batch is not atomic: a failure at item k leaves items 1..k-1 in
// place and returns the error. Callers treating the batch as a unit must
// clean up themselves.
func (s *Store) CreateTrainingDays(ctx context.Context, create []models.CreateTrainingDay) ([]models.TrainingDay, error) {
	result := make([]models.TrainingDay, 0, len(create))
	for _, c := range create {
		d, err := s.CreateTrainingDay(ctx, c)
		if err != nil {
			return nil, err
		}
		result = append(result, *d)
	}
	return result, nil
}

// DeleteTrainingDay removes a day's exercise links and then the day row,
// atomically. If either statement fails the store is left unchanged.
// Returns (nil, nil) when the day did not exist; the link cleanup of a
// nonexistent day deletes nothing, so that path commits harmlessly.
func (s *Store) DeleteTrainingDay(ctx context.Context, dayID uuid.UUID) (*uuid.UUID, error) {
	var deleted bool
	err := s.withTx(ctx, "delete training day", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM exercise_training_day_link WHERE day_id = $1`, dayID); err != nil {
			return fmt.Errorf("deleting links for day %s: %w", dayID, err)
		}
		tag, err := tx.ExecContext(ctx,
			`DELETE FROM training_days WHERE day_id = $1`, dayID)
		if err != nil {
			return fmt.Errorf("deleting day %s: %w", dayID, err)
		}
		n, err := tag.RowsAffected()
		if err != nil {
			return fmt.Errorf("deleting day %s: %w", dayID, err)
		}
		deleted = n > 0
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, nil
	}
	id := dayID
	return &id, nil
}

// GetTrainingDaysWithExercises returns every training day of a routine
// with its linked exercises. Days without links are included with an
// empty exercise list. Exercise order within a day is link-creation order.
func (s *Store) GetTrainingDaysWithExercises(ctx context.Context, routineID uuid.UUID) ([]models.TrainingDayWithExercises, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT
			td.day_id, td.routine_id, td.day_name, td.created_at, td.updated_at,
			e.exercise_id, e.exercise_name, e.exercise_description,
			l.link_id, e.created_at, e.updated_at
		 FROM training_days td
		 LEFT JOIN exercise_training_day_link l ON l.day_id = td.day_id
		 LEFT JOIN exercises e ON e.exercise_id = l.exercise_id
		 WHERE td.routine_id = $1
		 ORDER BY td.created_at, l.created_at`,
		routineID)
	if err != nil {
		return nil, fmt.Errorf("querying training days with exercises: %w", err)
	}
	defer rows.Close()

	g := newGrouping[uuid.UUID, models.TrainingDayWithExercises, models.ExerciseWithLinkID]()
	for rows.Next() {
		var (
			day                      models.TrainingDay
			dayCreated, dayUpdated   sql.NullTime
			exID, exName, exDesc     sql.NullString
			linkID                   sql.NullString
			exCreated, exUpdated     sql.NullTime
		)
		if err := rows.Scan(
			&day.DayID, &day.RoutineID, &day.DayName, &dayCreated, &dayUpdated,
			&exID, &exName, &exDesc, &linkID, &exCreated, &exUpdated); err != nil {
			return nil, fmt.Errorf("scanning training day row: %w", err)
		}

		slot := g.visit(day.DayID, func() models.TrainingDayWithExercises {
			return models.TrainingDayWithExercises{
				DayID:     day.DayID,
				RoutineID: day.RoutineID,
				DayName:   day.DayName,
				CreatedAt: timePtr(dayCreated),
				UpdatedAt: timePtr(dayUpdated),
			}
		})

		// Left-join null columns mean the day has no link on this row.
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

	result := make([]models.TrainingDayWithExercises, 0, g.size())
	g.each(func(day models.TrainingDayWithExercises, exercises []models.ExerciseWithLinkID) {
		day.Exercises = exercises
		result = append(result, day)
	})
	return result, nil
}

// getTrainingDay loads one day row, used when snapshotting for sessions.
func (s *Store) getTrainingDay(ctx context.Context, q queryer, dayID uuid.UUID) (*models.TrainingDay, error) {
	row := q.QueryRowContext(ctx,
		`SELECT day_id, routine_id, day_name, created_at, updated_at
		 FROM training_days
		 WHERE day_id = $1`,
		dayID)
	d, err := scanTrainingDay(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("training day %s: %w", dayID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// scanTrainingDay reads a day from either a *sql.Row or *sql.Rows.
func scanTrainingDay(row interface{ Scan(dest ...any) error }) (*models.TrainingDay, error) {
	var (
		d                    models.TrainingDay
		createdAt, updatedAt sql.NullTime
	)
	if err := row.Scan(&d.DayID, &d.RoutineID, &d.DayName, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning training day: %w", err)
	}
	d.CreatedAt = timePtr(createdAt)
	d.UpdatedAt = timePtr(updatedAt)
	return &d, nil
}

// exerciseWithLink builds the child record from scanned nullable columns.
func exerciseWithLink(exID, exName, exDesc, linkID string, created, updated sql.NullTime) (*models.ExerciseWithLinkID, error) {
	exerciseID, err := uuid.Parse(exID)
	if err != nil {
		return nil, fmt.Errorf("parsing exercise id %q: %w", exID, err)
	}
	link, err := uuid.Parse(linkID)
	if err != nil {
		return nil, fmt.Errorf("parsing link id %q: %w", linkID, err)
	}
	return &models.ExerciseWithLinkID{
		ExerciseID:          exerciseID,
		ExerciseName:        exName,
		ExerciseDescription: exDesc,
		LinkID:              link,
		CreatedAt:           timePtr(created),
		UpdatedAt:           timePtr(updated),
	}, nil
}

// queryer is the subset of *sql.DB / *sql.Tx the read helpers need.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
