package mcp

import (
	"context"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolListRoutines = mcp.NewTool("list_routines",
	mcp.WithDescription("List workout routines. Each routine is a named plan composed of training days."),
	mcp.WithBoolean("active_only", mcp.Description("When true, return only routines marked active. Defaults to false.")),
)

var toolGetTrainingDays = mcp.NewTool("get_training_days",
	mcp.WithDescription("List a routine's training days, each with its linked exercises in order. Days without exercises are included with an empty list."),
	mcp.WithString("routine_id", mcp.Required(), mcp.Description("Routine UUID")),
)

var toolSearchExercises = mcp.NewTool("search_exercises",
	mcp.WithDescription("Search the exercise catalog by name. Matching is case-insensitive on any substring (e.g. 'bench' finds 'Incline Bench Press')."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Search term")),
)

var toolGetSessions = mcp.NewTool("get_sessions",
	mcp.WithDescription("List the workout sessions recorded against a training day, oldest first."),
	mcp.WithString("day_id", mcp.Required(), mcp.Description("Training day UUID")),
)

// --- Tool handlers ---

func (h *handlers) listRoutines(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var (
		routines any
		err      error
	)
	if req.GetBool("active_only", false) {
		routines, err = h.ds.GetActiveRoutines(ctx)
	} else {
		routines, err = h.ds.GetRoutines(ctx)
	}
	if err != nil {
		h.log.Error("mcp list_routines", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(routines)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getTrainingDays(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	routineID, ok := requireUUID(req, "routine_id")
	if !ok {
		return mcp.NewToolResultError("routine_id must be a valid UUID"), nil
	}

	days, err := h.ds.GetTrainingDaysWithExercises(ctx, routineID)
	if err != nil {
		h.log.Error("mcp get_training_days", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(days)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) searchExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	exercises, err := h.ds.SearchExercises(ctx, name)
	if err != nil {
		h.log.Error("mcp search_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(exercises)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dayID, ok := requireUUID(req, "day_id")
	if !ok {
		return mcp.NewToolResultError("day_id must be a valid UUID"), nil
	}

	sessions, err := h.ds.GetSessionsByDay(ctx, dayID)
	if err != nil {
		h.log.Error("mcp get_sessions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(sessions)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func requireUUID(req mcp.CallToolRequest, param string) (uuid.UUID, bool) {
	raw, err := req.RequireString(param)
	if err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
