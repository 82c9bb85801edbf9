package models

import (
	"time"

	"github.com/google/uuid"
)

// Routine is a named workout plan composed of training days.
type Routine struct {
	RoutineID   uuid.UUID  `json:"routine_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// CreateRoutine is the payload for creating a routine.
type CreateRoutine struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}

// TrainingDay is a named slot within a routine (e.g. "Monday").
type TrainingDay struct {
	DayID     uuid.UUID  `json:"day_id"`
	RoutineID uuid.UUID  `json:"routine_id"`
	DayName   string     `json:"day_name"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// CreateTrainingDay is the payload for creating a training day.
type CreateTrainingDay struct {
	RoutineID uuid.UUID `json:"routine_id"`
	DayName   string    `json:"day_name"`
}

// Exercise is a reusable named movement, independent of any day.
type Exercise struct {
	ExerciseID          uuid.UUID  `json:"exercise_id"`
	ExerciseName        string     `json:"exercise_name"`
	ExerciseDescription string     `json:"exercise_description"`
	CreatedAt           *time.Time `json:"created_at"`
	UpdatedAt           *time.Time `json:"updated_at"`
}

// CreateExercise is the payload for creating an exercise.
type CreateExercise struct {
	ExerciseName        string `json:"exercise_name"`
	ExerciseDescription string `json:"exercise_description"`
}

// ExerciseLink joins one exercise to one training day. Its link_id is the
// stable handle for removing the exercise from that day without touching
// the exercise itself or other links.
type ExerciseLink struct {
	LinkID     uuid.UUID  `json:"link_id"`
	ExerciseID uuid.UUID  `json:"exercise_id"`
	DayID      uuid.UUID  `json:"day_id"`
	CreatedAt  *time.Time `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

// ExerciseWithLinkID is an exercise as seen from a training day, carrying
// the link row's id alongside the exercise fields.
type ExerciseWithLinkID struct {
	ExerciseID          uuid.UUID  `json:"exercise_id"`
	ExerciseName        string     `json:"exercise_name"`
	ExerciseDescription string     `json:"exercise_description"`
	LinkID              uuid.UUID  `json:"link_id"`
	CreatedAt           *time.Time `json:"created_at"`
	UpdatedAt           *time.Time `json:"updated_at"`
}

// TrainingDayWithExercises is a training day with its linked exercises.
// A day with no links has an empty (non-nil) Exercises slice.
type TrainingDayWithExercises struct {
	DayID     uuid.UUID            `json:"day_id"`
	RoutineID uuid.UUID            `json:"routine_id"`
	DayName   string               `json:"day_name"`
	Exercises []ExerciseWithLinkID `json:"exercises"`
	CreatedAt *time.Time           `json:"created_at"`
	UpdatedAt *time.Time           `json:"updated_at"`
}
