package storage

import (
	"context"
	"testing"

	"github.com/claude/repkeeper/internal/models"
	"github.com/google/uuid"
)

// newTestStore opens an in-memory SQLite store with the full schema.
// All repository tests run against it, exercising the same SQL the
// Postgres backend executes.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seedRoutine(t *testing.T, s *Store, name string) *models.Routine {
	t.Helper()
	r, err := s.CreateRoutine(context.Background(), models.CreateRoutine{
		Name:        name,
		Description: "seeded",
		IsActive:    true,
	})
	if err != nil {
		t.Fatalf("seeding routine: %v", err)
	}
	return r
}

func seedDay(t *testing.T, s *Store, routineID uuid.UUID, name string) *models.TrainingDay {
	t.Helper()
	d, err := s.CreateTrainingDay(context.Background(), models.CreateTrainingDay{
		RoutineID: routineID,
		DayName:   name,
	})
	if err != nil {
		t.Fatalf("seeding training day: %v", err)
	}
	return d
}

func seedExercise(t *testing.T, s *Store, name string) *models.Exercise {
	t.Helper()
	e, err := s.CreateExercise(context.Background(), models.CreateExercise{
		ExerciseName:        name,
		ExerciseDescription: "seeded",
	})
	if err != nil {
		t.Fatalf("seeding exercise: %v", err)
	}
	return e
}

func seedLink(t *testing.T, s *Store, exerciseID, dayID uuid.UUID) *models.ExerciseLink {
	t.Helper()
	l, err := s.AddExerciseToTrainingDay(context.Background(), exerciseID, dayID)
	if err != nil {
		t.Fatalf("seeding link: %v", err)
	}
	return l
}

// countRows counts rows in a table directly, bypassing the repository.
func countRows(t *testing.T, s *Store, table string) int {
	t.Helper()
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("counting %s: %v", table, err)
	}
	return n
}
