package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// ClearData empties all six domain tables, children before parents, in
// one transaction. Running it against an already-empty store succeeds.
// Users are kept; only workout data is wiped.
func (s *Store) ClearData(ctx context.Context) error {
	tables := []string{
		"session_exercise_performance",
		"sessions",
		"exercise_training_day_link",
		"training_days",
		"exercises",
		"routines",
	}
	return s.withTx(ctx, "clear data", func(tx *sql.Tx) error {
		for _, table := range tables {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("clearing %s: %w", table, err)
			}
		}
		return nil
	})
}
