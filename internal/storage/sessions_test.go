package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/claude/repkeeper/internal/models"
	"github.com/google/uuid"
)

func TestStartSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	r := seedRoutine(t, s, "split")
	day := seedDay(t, s, r.RoutineID, "Monday")
	bench := seedExercise(t, s, "Bench Press")
	row := seedExercise(t, s, "Barbell Row")
	seedLink(t, s, bench.ExerciseID, day.DayID)
	seedLink(t, s, row.ExerciseID, day.DayID)

	view, err := s.StartSession(ctx, day.DayID)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if !view.Session.InProgress {
		t.Error("new session is not in progress")
	}
	if view.Session.DayName != "Monday" {
		t.Errorf("session day name = %q, want Monday", view.Session.DayName)
	}
	if len(view.Exercises) != 2 {
		t.Fatalf("view has %d exercises, want 2", len(view.Exercises))
	}
	// Link order, each with an empty recorded-set list.
	if view.Exercises[0].Exercise.ExerciseName != "Bench Press" ||
		view.Exercises[1].Exercise.ExerciseName != "Barbell Row" {
		t.Errorf("exercise order = [%s %s], want [Bench Press Barbell Row]",
			view.Exercises[0].Exercise.ExerciseName, view.Exercises[1].Exercise.ExerciseName)
	}
	for _, perf := range view.Exercises {
		if perf.Sets == nil || len(perf.Sets) != 0 {
			t.Errorf("fresh session sets for %s = %v, want empty list",
				perf.Exercise.ExerciseName, perf.Sets)
		}
	}
}

func TestStartSessionConflict(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	r := seedRoutine(t, s, "split")
	day := seedDay(t, s, r.RoutineID, "Monday")
	e := seedExercise(t, s, "Squat")
	seedLink(t, s, e.ExerciseID, day.DayID)

	if _, err := s.StartSession(ctx, day.DayID); err != nil {
		t.Fatalf("first StartSession: %v", err)
	}
	if _, err := s.StartSession(ctx, day.DayID); !errors.Is(err, ErrSessionInProgress) {
		t.Errorf("second StartSession = %v, want ErrSessionInProgress", err)
	}
	if n := countRows(t, s, "sessions"); n != 1 {
		t.Errorf("%d session rows, want 1", n)
	}
}

func TestStartSessionAfterEnd(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	r := seedRoutine(t, s, "split")
	day := seedDay(t, s, r.RoutineID, "Monday")
	e := seedExercise(t, s, "Squat")
	seedLink(t, s, e.ExerciseID, day.DayID)

	first, err := s.StartSession(ctx, day.DayID)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if _, err := s.EndSession(ctx, first.Session.SessionID); err != nil {
		t.Fatalf("EndSession: %v", err)
	}
	if _, err := s.StartSession(ctx, day.DayID); err != nil {
		t.Errorf("StartSession after end: %v", err)
	}
}

func TestStartSessionNoExercises(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	r := seedRoutine(t, s, "split")
	day := seedDay(t, s, r.RoutineID, "Rest")

	if _, err := s.StartSession(ctx, day.DayID); !errors.Is(err, ErrNoLinkedExercises) {
		t.Errorf("StartSession on empty day = %v, want ErrNoLinkedExercises", err)
	}
	// The insert rolled back with the rest of the transaction.
	if n := countRows(t, s, "sessions"); n != 0 {
		t.Errorf("%d session rows, want 0", n)
	}
}

func TestStartSessionMissingDay(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.StartSession(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("StartSession(missing day) = %v, want ErrNotFound", err)
	}
}

func TestEndSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	r := seedRoutine(t, s, "split")
	day := seedDay(t, s, r.RoutineID, "Monday")
	e := seedExercise(t, s, "Squat")
	seedLink(t, s, e.ExerciseID, day.DayID)
	view, err := s.StartSession(ctx, day.DayID)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	id, err := s.EndSession(ctx, view.Session.SessionID)
	if err != nil {
		t.Fatalf("EndSession: %v", err)
	}
	if id != view.Session.SessionID {
		t.Errorf("EndSession returned %s, want %s", id, view.Session.SessionID)
	}

	running, err := s.IsSessionInProgress(ctx, day.DayID)
	if err != nil {
		t.Fatalf("IsSessionInProgress: %v", err)
	}
	if running {
		t.Error("day still reports a running session after EndSession")
	}

	// Ending twice is not idempotent: the second call matches zero rows.
	if _, err := s.EndSession(ctx, view.Session.SessionID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second EndSession = %v, want ErrNotFound", err)
	}
}

func TestEndSessionMissing(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.EndSession(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("EndSession(missing) = %v, want ErrNotFound", err)
	}
}

func TestGetSessionInProgress(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	r := seedRoutine(t, s, "split")
	day := seedDay(t, s, r.RoutineID, "Monday")
	e := seedExercise(t, s, "Squat")
	seedLink(t, s, e.ExerciseID, day.DayID)

	// Idle routine: no session, no error.
	got, err := s.GetSessionInProgress(ctx, r.RoutineID)
	if err != nil {
		t.Fatalf("GetSessionInProgress (idle): %v", err)
	}
	if got != nil {
		t.Fatalf("idle routine returned session %+v, want nil", got)
	}

	started, err := s.StartSession(ctx, day.DayID)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	rir := 2
	if _, err := s.AddSetPerformance(ctx, started.Session.SessionID, e.ExerciseID,
		models.SetPerformancePayload{SetNumber: 1, Weight: 100, Reps: 5, RIR: &rir}); err != nil {
		t.Fatalf("AddSetPerformance: %v", err)
	}

	got, err = s.GetSessionInProgress(ctx, r.RoutineID)
	if err != nil {
		t.Fatalf("GetSessionInProgress: %v", err)
	}
	if got == nil || got.Session.SessionID != started.Session.SessionID {
		t.Fatalf("GetSessionInProgress = %+v, want session %s", got, started.Session.SessionID)
	}
	if len(got.Exercises) != 1 || len(got.Exercises[0].Sets) != 1 {
		t.Fatalf("performance view = %+v, want one exercise with one set", got.Exercises)
	}
	if got.Exercises[0].Sets[0].Weight != 100 {
		t.Errorf("recorded weight = %v, want 100", got.Exercises[0].Sets[0].Weight)
	}

	if _, err := s.EndSession(ctx, started.Session.SessionID); err != nil {
		t.Fatalf("EndSession: %v", err)
	}
	got, err = s.GetSessionInProgress(ctx, r.RoutineID)
	if err != nil {
		t.Fatalf("GetSessionInProgress (after end): %v", err)
	}
	if got != nil {
		t.Errorf("ended routine returned session %+v, want nil", got)
	}
}

func TestGetSessionsByDayAndRoutine(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	r := seedRoutine(t, s, "split")
	day := seedDay(t, s, r.RoutineID, "Monday")
	other := seedDay(t, s, r.RoutineID, "Thursday")
	e := seedExercise(t, s, "Squat")
	seedLink(t, s, e.ExerciseID, day.DayID)
	seedLink(t, s, e.ExerciseID, other.DayID)

	for _, d := range []uuid.UUID{day.DayID, other.DayID} {
		view, err := s.StartSession(ctx, d)
		if err != nil {
			t.Fatalf("StartSession(%s): %v", d, err)
		}
		if _, err := s.EndSession(ctx, view.Session.SessionID); err != nil {
			t.Fatalf("EndSession: %v", err)
		}
	}

	byDay, err := s.GetSessionsByDay(ctx, day.DayID)
	if err != nil {
		t.Fatalf("GetSessionsByDay: %v", err)
	}
	if len(byDay) != 1 {
		t.Errorf("GetSessionsByDay returned %d sessions, want 1", len(byDay))
	}

	byRoutine, err := s.GetSessionsByRoutine(ctx, r.RoutineID)
	if err != nil {
		t.Fatalf("GetSessionsByRoutine: %v", err)
	}
	if len(byRoutine) != 2 {
		t.Errorf("GetSessionsByRoutine returned %d sessions, want 2", len(byRoutine))
	}
}

func TestGetSessionsWithExercises(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	r := seedRoutine(t, s, "split")
	day := seedDay(t, s, r.RoutineID, "Monday")
	squat := seedExercise(t, s, "Squat")
	press := seedExercise(t, s, "Leg Press")
	seedLink(t, s, squat.ExerciseID, day.DayID)
	seedLink(t, s, press.ExerciseID, day.DayID)

	view, err := s.StartSession(ctx, day.DayID)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if _, err := s.EndSession(ctx, view.Session.SessionID); err != nil {
		t.Fatalf("EndSession: %v", err)
	}

	got, err := s.GetSessionsWithExercises(ctx, day.DayID)
	if err != nil {
		t.Fatalf("GetSessionsWithExercises: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d sessions, want 1", len(got))
	}
	if len(got[0].Exercises) != 2 {
		t.Fatalf("session carries %d exercises, want 2", len(got[0].Exercises))
	}
	if got[0].Exercises[0].ExerciseName != "Squat" || got[0].Exercises[1].ExerciseName != "Leg Press" {
		t.Errorf("exercise order = [%s %s], want link order [Squat Leg Press]",
			got[0].Exercises[0].ExerciseName, got[0].Exercises[1].ExerciseName)
	}
}

func TestGetSessionsWithExercisesOrphanedSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	r := seedRoutine(t, s, "split")
	day := seedDay(t, s, r.RoutineID, "Monday")
	e := seedExercise(t, s, "Squat")
	link := seedLink(t, s, e.ExerciseID, day.DayID)

	view, err := s.StartSession(ctx, day.DayID)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if _, err := s.EndSession(ctx, view.Session.SessionID); err != nil {
		t.Fatalf("EndSession: %v", err)
	}
	// Unlinking after the fact leaves a session whose day has no exercises.
	if _, err := s.RemoveExerciseFromTrainingDay(ctx, link.LinkID); err != nil {
		t.Fatalf("RemoveExerciseFromTrainingDay: %v", err)
	}

	if _, err := s.GetSessionsWithExercises(ctx, day.DayID); !errors.Is(err, ErrNoLinkedExercises) {
		t.Errorf("GetSessionsWithExercises = %v, want ErrNoLinkedExercises", err)
	}
}

// TestSessionLifecycle records a whole workout: start, log sets across
// two exercises with an in-flight correction, end, and read the history
// back.
func TestSessionLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	r := seedRoutine(t, s, "upper body")
	day := seedDay(t, s, r.RoutineID, "Push")
	bench := seedExercise(t, s, "Bench Press")
	press := seedExercise(t, s, "Overhead Press")
	seedLink(t, s, bench.ExerciseID, day.DayID)
	seedLink(t, s, press.ExerciseID, day.DayID)

	view, err := s.StartSession(ctx, day.DayID)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	sessionID := view.Session.SessionID

	rir := 1
	sets := []struct {
		exerciseID uuid.UUID
		payload    models.SetPerformancePayload
	}{
		{bench.ExerciseID, models.SetPerformancePayload{SetNumber: 1, Weight: 60, Reps: 8, RIR: &rir}},
		{bench.ExerciseID, models.SetPerformancePayload{SetNumber: 2, Weight: 60, Reps: 7}},
		{press.ExerciseID, models.SetPerformancePayload{SetNumber: 1, Weight: 40, Reps: 10}},
	}
	for _, rec := range sets {
		if _, err := s.AddSetPerformance(ctx, sessionID, rec.exerciseID, rec.payload); err != nil {
			t.Fatalf("AddSetPerformance: %v", err)
		}
	}
	// Correct bench set 1: the bar was loaded to 65, not 60.
	if _, err := s.AddSetPerformance(ctx, sessionID, bench.ExerciseID,
		models.SetPerformancePayload{SetNumber: 1, Weight: 65, Reps: 8, RIR: &rir}); err != nil {
		t.Fatalf("AddSetPerformance (correction): %v", err)
	}

	got, err := s.GetSessionInProgress(ctx, r.RoutineID)
	if err != nil {
		t.Fatalf("GetSessionInProgress: %v", err)
	}
	if got == nil {
		t.Fatal("GetSessionInProgress returned nil mid-workout")
	}
	benchSets := got.Exercises[0].Sets
	if len(benchSets) != 2 {
		t.Fatalf("bench has %d sets, want 2 (correction must overwrite, not append)", len(benchSets))
	}
	if benchSets[0].SetNumber != 1 || benchSets[0].Weight != 65 {
		t.Errorf("bench set 1 = %+v, want corrected weight 65", benchSets[0])
	}
	if benchSets[1].SetNumber != 2 || benchSets[1].Weight != 60 {
		t.Errorf("bench set 2 = %+v, want weight 60", benchSets[1])
	}
	if len(got.Exercises[1].Sets) != 1 {
		t.Errorf("press has %d sets, want 1", len(got.Exercises[1].Sets))
	}

	if _, err := s.EndSession(ctx, sessionID); err != nil {
		t.Fatalf("EndSession: %v", err)
	}
	history, err := s.GetSessionsByDay(ctx, day.DayID)
	if err != nil {
		t.Fatalf("GetSessionsByDay: %v", err)
	}
	if len(history) != 1 || history[0].InProgress {
		t.Errorf("history = %+v, want one ended session", history)
	}
}
