package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/claude/repkeeper/internal/models"
	"github.com/google/uuid"
)

func TestCreateAndGetRoutines(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	r, err := s.CreateRoutine(ctx, models.CreateRoutine{
		Name:        "Push Pull Legs",
		Description: "6 day split",
		IsActive:    true,
	})
	if err != nil {
		t.Fatalf("CreateRoutine: %v", err)
	}
	if r.RoutineID == uuid.Nil {
		t.Error("routine id not assigned")
	}
	if r.CreatedAt == nil || r.UpdatedAt == nil {
		t.Error("timestamps not set")
	}

	all, err := s.GetRoutines(ctx)
	if err != nil {
		t.Fatalf("GetRoutines: %v", err)
	}
	if len(all) != 1 || all[0].Name != "Push Pull Legs" {
		t.Errorf("GetRoutines = %+v, want one routine named Push Pull Legs", all)
	}
}

func TestGetActiveRoutines(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateRoutine(ctx, models.CreateRoutine{Name: "active", IsActive: true}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateRoutine(ctx, models.CreateRoutine{Name: "shelved", IsActive: false}); err != nil {
		t.Fatal(err)
	}

	active, err := s.GetActiveRoutines(ctx)
	if err != nil {
		t.Fatalf("GetActiveRoutines: %v", err)
	}
	if len(active) != 1 || active[0].Name != "active" {
		t.Errorf("GetActiveRoutines = %+v, want only the active routine", active)
	}
}

func TestUpdateRoutine(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	r := seedRoutine(t, s, "before")

	r.Name = "after"
	r.IsActive = false
	updated, err := s.UpdateRoutine(ctx, *r)
	if err != nil {
		t.Fatalf("UpdateRoutine: %v", err)
	}
	if updated.Name != "after" || updated.IsActive {
		t.Errorf("updated = %+v, want name=after is_active=false", updated)
	}
}

func TestUpdateRoutineNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UpdateRoutine(context.Background(), models.Routine{RoutineID: uuid.New(), Name: "ghost"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateRoutine(missing) = %v, want ErrNotFound", err)
	}
}

func TestDeleteRoutine(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	r := seedRoutine(t, s, "doomed")

	id, err := s.DeleteRoutine(ctx, r.RoutineID)
	if err != nil {
		t.Fatalf("DeleteRoutine: %v", err)
	}
	if id != r.RoutineID {
		t.Errorf("deleted id = %s, want %s", id, r.RoutineID)
	}

	_, err = s.DeleteRoutine(ctx, r.RoutineID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteRoutine = %v, want ErrNotFound", err)
	}
}
