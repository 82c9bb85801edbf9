package storage

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	sqlite3 "modernc.org/sqlite"
)

// Sentinel error kinds. Handlers match on these with errors.Is; anything
// else coming out of the repository is a wrapped store failure.
var (
	// ErrNotFound means the requested id had no matching row.
	ErrNotFound = errors.New("not found")

	// ErrSessionInProgress means a session is already running for the
	// training day and a second one may not be started.
	ErrSessionInProgress = errors.New("session already in progress")

	// ErrNoLinkedExercises means a session view was requested for a
	// training day that has no exercises linked to it, so there is
	// nothing to perform against.
	ErrNoLinkedExercises = errors.New("training day has no linked exercises")
)

// isUniqueViolation recognizes a unique-constraint failure from either
// backend, so the race behind a check-then-insert can be reported as the
// same conflict the check would have produced.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var sqErr *sqlite3.Error
	if errors.As(err, &sqErr) {
		switch sqErr.Code() {
		case 19, 1555, 2067: // SQLITE_CONSTRAINT and the unique variants
			return true
		}
	}
	return false
}
