package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Session is one timed execution of a training day. DayName is snapshotted
// at creation so the session history survives later renames.
type Session struct {
	SessionID  uuid.UUID  `json:"session_id"`
	DayID      uuid.UUID  `json:"day_id"`
	DayName    string     `json:"day_name"`
	InProgress bool       `json:"in_progress"`
	CreatedAt  *time.Time `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

// SetPerformance is one recorded set for one exercise within one session.
// (session_id, exercise_id, set_number) is the natural key; re-recording
// the same set number overwrites the earlier row.
type SetPerformance struct {
	PerformanceID uuid.UUID  `json:"performance_id"`
	SessionID     uuid.UUID  `json:"session_id"`
	ExerciseID    uuid.UUID  `json:"exercise_id"`
	SetNumber     int        `json:"set_number"`
	Weight        float64    `json:"weight"`
	Reps          int        `json:"reps"`
	RIR           *int       `json:"rir"`
	CreatedAt     *time.Time `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
}

// SetPerformancePayload is the client payload for recording a set.
type SetPerformancePayload struct {
	SetNumber int     `json:"set_number"`
	Weight    float64 `json:"weight"`
	Reps      int     `json:"reps"`
	RIR       *int    `json:"rir"`
}

// ExercisePerformance pairs an exercise with the sets recorded for it so
// far in a session. A fresh session has an empty Sets slice per exercise.
type ExercisePerformance struct {
	Exercise ExerciseWithLinkID `json:"exercise"`
	Sets     []SetPerformance   `json:"sets"`
}

// SessionWithExercises is a session plus its day's linked exercises.
type SessionWithExercises struct {
	Session   Session              `json:"session"`
	Exercises []ExerciseWithLinkID `json:"exercises"`
}

// SessionWithPerformance is a session plus per-exercise recorded sets.
type SessionWithPerformance struct {
	Session   Session               `json:"session"`
	Exercises []ExercisePerformance `json:"exercises"`
}

// SortSetPerformances orders sets by set number, in place. Presentation
// order is by set number regardless of recording order.
func SortSetPerformances(sets []SetPerformance) {
	sort.SliceStable(sets, func(i, j int) bool {
		return sets[i].SetNumber < sets[j].SetNumber
	})
}
