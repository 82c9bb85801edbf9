package mcp

import (
	"context"
	"encoding/json"

	"github.com/claude/repkeeper/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

// activeRoutine assembles the full picture of what the user is training
// right now: every active routine with its days and exercises, plus the
// running session when one exists.
func (h *handlers) activeRoutine(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	routines, err := h.ds.GetActiveRoutines(ctx)
	if err != nil {
		return nil, err
	}

	type routineView struct {
		Routine models.Routine                    `json:"routine"`
		Days    []models.TrainingDayWithExercises `json:"days"`
		Session *models.SessionWithPerformance    `json:"session_in_progress"`
	}

	views := make([]routineView, 0, len(routines))
	for _, routine := range routines {
		days, err := h.ds.GetTrainingDaysWithExercises(ctx, routine.RoutineID)
		if err != nil {
			return nil, err
		}
		session, err := h.ds.GetSessionInProgress(ctx, routine.RoutineID)
		if err != nil {
			h.log.Warn("active_routine: session lookup failed", "routine", routine.RoutineID, "error", err)
		}
		views = append(views, routineView{Routine: routine, Days: days, Session: session})
	}

	data, err := json.Marshal(views)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
