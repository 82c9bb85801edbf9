package storage

import (
	"context"

	"github.com/claude/repkeeper/internal/models"
	"github.com/google/uuid"
)

// Repository is the persistence contract the rest of the application
// depends on. *Store implements it for both Postgres and SQLite; callers
// never see driver error types, only the sentinel kinds in errors.go or
// wrapped store failures.
type Repository interface {
	// Users
	CreateUser(ctx context.Context, create models.CreateUser) (*models.User, error)
	GetUsers(ctx context.Context) ([]models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// Routines
	GetRoutines(ctx context.Context) ([]models.Routine, error)
	GetActiveRoutines(ctx context.Context) ([]models.Routine, error)
	CreateRoutine(ctx context.Context, create models.CreateRoutine) (*models.Routine, error)
	UpdateRoutine(ctx context.Context, routine models.Routine) (*models.Routine, error)
	DeleteRoutine(ctx context.Context, routineID uuid.UUID) (uuid.UUID, error)

	// Training days
	GetTrainingDays(ctx context.Context, routineID uuid.UUID) ([]models.TrainingDay, error)
	GetTrainingDaysWithExercises(ctx context.Context, routineID uuid.UUID) ([]models.TrainingDayWithExercises, error)
	CreateTrainingDay(ctx context.Context, create models.CreateTrainingDay) (*models.TrainingDay, error)
	CreateTrainingDays(ctx context.Context, create []models.CreateTrainingDay) ([]models.TrainingDay, error)
	// DeleteTrainingDay removes the day and all of its exercise links in
	// one transaction. Returns (nil, nil) when the day did not exist.
	DeleteTrainingDay(ctx context.Context, dayID uuid.UUID) (*uuid.UUID, error)

	// Exercises and links
	GetExercises(ctx context.Context) ([]models.Exercise, error)
	SearchExercises(ctx context.Context, name string) ([]models.Exercise, error)
	CreateExercise(ctx context.Context, create models.CreateExercise) (*models.Exercise, error)
	CreateExercises(ctx context.Context, create []models.CreateExercise) ([]models.Exercise, error)
	AddExerciseToTrainingDay(ctx context.Context, exerciseID, dayID uuid.UUID) (*models.ExerciseLink, error)
	GetExercisesForTrainingDay(ctx context.Context, dayID uuid.UUID) ([]models.ExerciseWithLinkID, error)
	RemoveExerciseFromTrainingDay(ctx context.Context, linkID uuid.UUID) (uuid.UUID, error)
	GetLinkTable(ctx context.Context) ([]models.ExerciseLink, error)

	// Sessions
	IsSessionInProgress(ctx context.Context, dayID uuid.UUID) (bool, error)
	StartSession(ctx context.Context, dayID uuid.UUID) (*models.SessionWithPerformance, error)
	GetSessionsByDay(ctx context.Context, dayID uuid.UUID) ([]models.Session, error)
	GetSessionsWithExercises(ctx context.Context, dayID uuid.UUID) ([]models.SessionWithExercises, error)
	// GetSessionInProgress returns (nil, nil) when no session is running
	// for the routine; idle is not an error.
	GetSessionInProgress(ctx context.Context, routineID uuid.UUID) (*models.SessionWithPerformance, error)
	GetSessionsByRoutine(ctx context.Context, routineID uuid.UUID) ([]models.Session, error)
	EndSession(ctx context.Context, sessionID uuid.UUID) (uuid.UUID, error)

	// Set performance
	AddSetPerformance(ctx context.Context, sessionID, exerciseID uuid.UUID, payload models.SetPerformancePayload) (*models.SetPerformance, error)
	RemoveSetPerformance(ctx context.Context, performanceID uuid.UUID) (uuid.UUID, error)

	// Admin
	ClearData(ctx context.Context) error

	Close() error
}

// Compile-time check: *Store satisfies Repository.
var _ Repository = (*Store)(nil)
