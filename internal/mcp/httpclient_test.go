package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/claude/repkeeper/internal/models"
	"github.com/google/uuid"
)

// newTestServer creates an httptest server that routes requests to handler functions
// keyed by path. Verifies the HTTP client sends correct paths and query params.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestGetRoutines verifies the HTTP client sends the bearer token and
// parses the routine list.
func TestGetRoutines(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/routines": func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
				t.Errorf("authorization = %q, want bearer test-token", got)
			}
			writeTestJSON(t, w, []models.Routine{
				{RoutineID: uuid.New(), Name: "push pull legs", IsActive: true},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "test-token")
	routines, err := client.GetRoutines(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(routines) != 1 || routines[0].Name != "push pull legs" {
		t.Errorf("routines = %+v, want one named push pull legs", routines)
	}
}

// TestSearchExercises verifies the search term travels as a query param.
func TestSearchExercises(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/exercises/search": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("name"); got != "bench" {
				t.Errorf("name=%q, want bench", got)
			}
			writeTestJSON(t, w, []models.Exercise{
				{ExerciseID: uuid.New(), ExerciseName: "Bench Press"},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "test-token")
	exercises, err := client.SearchExercises(context.Background(), "bench")
	if err != nil {
		t.Fatal(err)
	}
	if len(exercises) != 1 || exercises[0].ExerciseName != "Bench Press" {
		t.Errorf("exercises = %+v, want Bench Press", exercises)
	}
}

// TestGetTrainingDaysWithExercises verifies the routine id is embedded in
// the path.
func TestGetTrainingDaysWithExercises(t *testing.T) {
	routineID := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/routines/" + routineID.String() + "/training_days/with_exercises": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, []models.TrainingDayWithExercises{
				{DayID: uuid.New(), RoutineID: routineID, DayName: "Monday", Exercises: []models.ExerciseWithLinkID{}},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "test-token")
	days, err := client.GetTrainingDaysWithExercises(context.Background(), routineID)
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 1 || days[0].DayName != "Monday" {
		t.Errorf("days = %+v, want Monday", days)
	}
}

// TestGetSessionInProgressIdle verifies a null body decodes to nil, the
// same idle contract the local store has.
func TestGetSessionInProgressIdle(t *testing.T) {
	routineID := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/routines/" + routineID.String() + "/sessions/in_progress": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte("null"))
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "test-token")
	view, err := client.GetSessionInProgress(context.Background(), routineID)
	if err != nil {
		t.Fatal(err)
	}
	if view != nil {
		t.Errorf("view = %+v, want nil for idle routine", view)
	}
}

// TestErrorStatus verifies non-200 responses surface as errors with the
// body included.
func TestErrorStatus(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/routines": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"invalid token"}`, http.StatusForbidden)
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "stale-token")
	if _, err := client.GetRoutines(context.Background()); err == nil {
		t.Fatal("expected error for 403 response")
	}
}
