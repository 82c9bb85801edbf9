package server

import (
	"net/http"

	"github.com/claude/repkeeper/internal/models"
)

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	dayID, ok := pathID(w, r, "day_id")
	if !ok {
		return
	}
	view, err := s.repo.StartSession(r.Context(), dayID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (s *Server) handleGetSessionsByDay(w http.ResponseWriter, r *http.Request) {
	dayID, ok := pathID(w, r, "day_id")
	if !ok {
		return
	}
	sessions, err := s.repo.GetSessionsByDay(r.Context(), dayID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleGetSessionsWithExercises(w http.ResponseWriter, r *http.Request) {
	dayID, ok := pathID(w, r, "day_id")
	if !ok {
		return
	}
	sessions, err := s.repo.GetSessionsWithExercises(r.Context(), dayID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleGetSessionsByRoutine(w http.ResponseWriter, r *http.Request) {
	routineID, ok := pathID(w, r, "routine_id")
	if !ok {
		return
	}
	sessions, err := s.repo.GetSessionsByRoutine(r.Context(), routineID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

// handleGetSessionInProgress responds with the running session's
// performance view, or null when the routine is idle.
func (s *Server) handleGetSessionInProgress(w http.ResponseWriter, r *http.Request) {
	routineID, ok := pathID(w, r, "routine_id")
	if !ok {
		return
	}
	view, err := s.repo.GetSessionInProgress(r.Context(), routineID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathID(w, r, "session_id")
	if !ok {
		return
	}
	ended, err := s.repo.EndSession(r.Context(), sessionID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ended)
}

func (s *Server) handleAddSetPerformance(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathID(w, r, "session_id")
	if !ok {
		return
	}
	exerciseID, ok := pathID(w, r, "exercise_id")
	if !ok {
		return
	}
	var payload models.SetPerformancePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	set, err := s.repo.AddSetPerformance(r.Context(), sessionID, exerciseID, payload)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, set)
}

func (s *Server) handleRemoveSetPerformance(w http.ResponseWriter, r *http.Request) {
	performanceID, ok := pathID(w, r, "performance_id")
	if !ok {
		return
	}
	removed, err := s.repo.RemoveSetPerformance(r.Context(), performanceID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, removed)
}
