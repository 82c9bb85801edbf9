package server

import (
	"encoding/json"
	"net/http"

	"github.com/claude/repkeeper/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleGetRoutines(w http.ResponseWriter, r *http.Request) {
	routines, err := s.repo.GetRoutines(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, routines)
}

func (s *Server) handleGetActiveRoutines(w http.ResponseWriter, r *http.Request) {
	routines, err := s.repo.GetActiveRoutines(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, routines)
}

func (s *Server) handleCreateRoutine(w http.ResponseWriter, r *http.Request) {
	var payload models.CreateRoutine
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	routine, err := s.repo.CreateRoutine(r.Context(), payload)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, routine)
}

func (s *Server) handleUpdateRoutine(w http.ResponseWriter, r *http.Request) {
	var payload models.Routine
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	routine, err := s.repo.UpdateRoutine(r.Context(), payload)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, routine)
}

func (s *Server) handleDeleteRoutine(w http.ResponseWriter, r *http.Request) {
	routineID, ok := pathID(w, r, "routine_id")
	if !ok {
		return
	}
	deleted, err := s.repo.DeleteRoutine(r.Context(), routineID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deleted)
}

func (s *Server) handleGetTrainingDays(w http.ResponseWriter, r *http.Request) {
	routineID, ok := pathID(w, r, "routine_id")
	if !ok {
		return
	}
	days, err := s.repo.GetTrainingDays(r.Context(), routineID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, days)
}

func (s *Server) handleGetTrainingDaysWithExercises(w http.ResponseWriter, r *http.Request) {
	routineID, ok := pathID(w, r, "routine_id")
	if !ok {
		return
	}
	days, err := s.repo.GetTrainingDaysWithExercises(r.Context(), routineID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, days)
}

func (s *Server) handleCreateTrainingDay(w http.ResponseWriter, r *http.Request) {
	var payload models.CreateTrainingDay
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	day, err := s.repo.CreateTrainingDay(r.Context(), payload)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, day)
}

func (s *Server) handleCreateTrainingDays(w http.ResponseWriter, r *http.Request) {
	var payload []models.CreateTrainingDay
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	days, err := s.repo.CreateTrainingDays(r.Context(), payload)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, days)
}

// handleDeleteTrainingDay responds 200 with the deleted id, or with null
// when the day did not exist. Absence is not an error here.
func (s *Server) handleDeleteTrainingDay(w http.ResponseWriter, r *http.Request) {
	dayID, ok := pathID(w, r, "day_id")
	if !ok {
		return
	}
	deleted, err := s.repo.DeleteTrainingDay(r.Context(), dayID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deleted)
}

func (s *Server) handleGetExercises(w http.ResponseWriter, r *http.Request) {
	exercises, err := s.repo.GetExercises(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

func (s *Server) handleSearchExercises(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name parameter required"})
		return
	}
	exercises, err := s.repo.SearchExercises(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

func (s *Server) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	var payload models.CreateExercise
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	exercise, err := s.repo.CreateExercise(r.Context(), payload)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, exercise)
}

func (s *Server) handleCreateExercises(w http.ResponseWriter, r *http.Request) {
	var payload []models.CreateExercise
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	exercises, err := s.repo.CreateExercises(r.Context(), payload)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, exercises)
}

func (s *Server) handleGetExercisesForDay(w http.ResponseWriter, r *http.Request) {
	dayID, ok := pathID(w, r, "day_id")
	if !ok {
		return
	}
	exercises, err := s.repo.GetExercisesForTrainingDay(r.Context(), dayID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

func (s *Server) handleLinkExercise(w http.ResponseWriter, r *http.Request) {
	dayID, ok := pathID(w, r, "day_id")
	if !ok {
		return
	}
	exerciseID, ok := pathID(w, r, "exercise_id")
	if !ok {
		return
	}
	link, err := s.repo.AddExerciseToTrainingDay(r.Context(), exerciseID, dayID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, link)
}

func (s *Server) handleUnlinkExercise(w http.ResponseWriter, r *http.Request) {
	linkID, ok := pathID(w, r, "link_id")
	if !ok {
		return
	}
	removed, err := s.repo.RemoveExerciseFromTrainingDay(r.Context(), linkID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, removed)
}

func (s *Server) handleGetLinkTable(w http.ResponseWriter, r *http.Request) {
	links, err := s.repo.GetLinkTable(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, links)
}

func (s *Server) handleClearData(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.ClearData(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// pathID parses a UUID route parameter, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}
