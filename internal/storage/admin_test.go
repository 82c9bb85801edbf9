package storage

import (
	"context"
	"testing"

	"github.com/claude/repkeeper/internal/models"
)

func TestClearData(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateUser(ctx, models.CreateUser{Username: "alice", Password: "hashed"}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	r := seedRoutine(t, s, "split")
	day := seedDay(t, s, r.RoutineID, "Monday")
	e := seedExercise(t, s, "Squat")
	seedLink(t, s, e.ExerciseID, day.DayID)
	view, err := s.StartSession(ctx, day.DayID)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if _, err := s.AddSetPerformance(ctx, view.Session.SessionID, e.ExerciseID,
		models.SetPerformancePayload{SetNumber: 1, Weight: 100, Reps: 5}); err != nil {
		t.Fatalf("AddSetPerformance: %v", err)
	}

	if err := s.ClearData(ctx); err != nil {
		t.Fatalf("ClearData: %v", err)
	}

	for _, table := range []string{
		"session_exercise_performance",
		"sessions",
		"exercise_training_day_link",
		"training_days",
		"exercises",
		"routines",
	} {
		if n := countRows(t, s, table); n != 0 {
			t.Errorf("%s has %d rows after ClearData, want 0", table, n)
		}
	}
	// Accounts survive a data wipe.
	if n := countRows(t, s, "users"); n != 1 {
		t.Errorf("users has %d rows after ClearData, want 1", n)
	}
}

func TestClearDataEmptyStore(t *testing.T) {
	s := newTestStore(t)

	if err := s.ClearData(context.Background()); err != nil {
		t.Fatalf("ClearData on empty store: %v", err)
	}
	if err := s.ClearData(context.Background()); err != nil {
		t.Fatalf("second ClearData: %v", err)
	}
}
