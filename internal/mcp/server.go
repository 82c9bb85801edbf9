package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("RepKeeper", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("RepKeeper workout tracking server. Query routines, training days with their exercises, the exercise catalog, and workout session history. Read-only."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListRoutines, Handler: h.listRoutines},
		server.ServerTool{Tool: toolGetTrainingDays, Handler: h.getTrainingDays},
		server.ServerTool{Tool: toolSearchExercises, Handler: h.searchExercises},
		server.ServerTool{Tool: toolGetSessions, Handler: h.getSessions},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resActiveRoutine, Handler: h.activeRoutine},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resActiveRoutine = mcp.NewResource(
	"repkeeper://active_routine",
	"Active Routine",
	mcp.WithResourceDescription("The currently active routines, each with its training days, linked exercises, and the in-progress session if one is running"),
	mcp.WithMIMEType("application/json"),
)
