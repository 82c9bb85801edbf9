package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/claude/repkeeper/internal/storage"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	repo   storage.Repository
	auth   *Authenticator
	log    *slog.Logger
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(repo storage.Repository, auth *Authenticator, log *slog.Logger) *Server {
	s := &Server{
		repo:   repo,
		auth:   auth,
		log:    log,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Open endpoints: registration and token exchange.
		r.Post("/users", s.handleCreateUser)
		r.Get("/users/auth", s.handleAuth)

		// Everything else requires a bearer token.
		r.Group(func(r chi.Router) {
			r.Use(JWTAuth(s.auth))

			r.Get("/users", s.handleGetUsers)

			r.Get("/routines", s.handleGetRoutines)
			r.Get("/routines/active", s.handleGetActiveRoutines)
			r.Post("/routines", s.handleCreateRoutine)
			r.Put("/routines", s.handleUpdateRoutine)
			r.Delete("/routines/{routine_id}", s.handleDeleteRoutine)
			r.Get("/routines/{routine_id}/training_days", s.handleGetTrainingDays)
			r.Get("/routines/{routine_id}/training_days/with_exercises", s.handleGetTrainingDaysWithExercises)
			r.Get("/routines/{routine_id}/sessions", s.handleGetSessionsByRoutine)
			r.Get("/routines/{routine_id}/sessions/in_progress", s.handleGetSessionInProgress)

			r.Post("/training_days", s.handleCreateTrainingDay)
			r.Post("/training_days/bulk", s.handleCreateTrainingDays)
			r.Delete("/training_days/{day_id}", s.handleDeleteTrainingDay)
			r.Get("/training_days/{day_id}/exercises", s.handleGetExercisesForDay)
			r.Post("/training_days/{day_id}/exercises/{exercise_id}", s.handleLinkExercise)
			r.Post("/training_days/{day_id}/sessions", s.handleStartSession)
			r.Get("/training_days/{day_id}/sessions", s.handleGetSessionsByDay)
			r.Get("/training_days/{day_id}/sessions/with_exercises", s.handleGetSessionsWithExercises)

			r.Get("/exercises", s.handleGetExercises)
			r.Get("/exercises/search", s.handleSearchExercises)
			r.Post("/exercises", s.handleCreateExercise)
			r.Post("/exercises/bulk", s.handleCreateExercises)

			r.Delete("/links/{link_id}", s.handleUnlinkExercise)

			r.Put("/sessions/{session_id}/end", s.handleEndSession)
			r.Post("/sessions/{session_id}/exercises/{exercise_id}/sets", s.handleAddSetPerformance)
			r.Delete("/sets/{performance_id}", s.handleRemoveSetPerformance)

			r.Get("/debug/links", s.handleGetLinkTable)
			r.Post("/debug/clear_data", s.handleClearData)
		})
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps storage sentinel errors onto HTTP statuses. Anything
// unrecognized is a 500 and gets logged; the sentinel cases are expected
// client-visible outcomes and are not.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, storage.ErrSessionInProgress):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, storage.ErrNoLinkedExercises):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	default:
		s.log.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
