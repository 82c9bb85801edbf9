package mcp

import (
	"context"

	"github.com/claude/repkeeper/internal/models"
	"github.com/claude/repkeeper/internal/storage"
	"github.com/google/uuid"
)

// DataSource abstracts the data layer for MCP tools. Both the storage
// Repository (local) and HTTPClient (remote via REST API) satisfy this
// interface. All operations are read-only: the MCP surface exposes the
// training plan and history, never mutations.
type DataSource interface {
	GetRoutines(ctx context.Context) ([]models.Routine, error)
	GetActiveRoutines(ctx context.Context) ([]models.Routine, error)
	GetTrainingDaysWithExercises(ctx context.Context, routineID uuid.UUID) ([]models.TrainingDayWithExercises, error)
	SearchExercises(ctx context.Context, name string) ([]models.Exercise, error)
	GetSessionsByDay(ctx context.Context, dayID uuid.UUID) ([]models.Session, error)
	GetSessionInProgress(ctx context.Context, routineID uuid.UUID) (*models.SessionWithPerformance, error)
}

// Compile-time check: the storage Repository satisfies DataSource.
var _ DataSource = (storage.Repository)(nil)
