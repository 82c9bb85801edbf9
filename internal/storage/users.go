package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/claude/repkeeper/internal/models"
	"github.com/google/uuid"
)

// CreateUser inserts a user. The password must already be hashed by the
// auth boundary; this layer stores whatever it is given.
func (s *Store) CreateUser(ctx context.Context, create models.CreateUser) (*models.User, error) {
	ts := now()
	u := models.User{
		UserID:    uuid.New(),
		Username:  create.Username,
		Password:  create.Password,
		CreatedAt: &ts,
		UpdatedAt: &ts,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (user_id, username, password, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		u.UserID, u.Username, u.Password, ts, ts)
	if err != nil {
		return nil, fmt.Errorf("inserting user %q: %w", create.Username, err)
	}
	return &u, nil
}

// GetUsers retrieves all users.
func (s *Store) GetUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, username, password, created_at, updated_at
		 FROM users
		 ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	var result []models.User
	for rows.Next() {
		var (
			u                    models.User
			createdAt, updatedAt sql.NullTime
		)
		if err := rows.Scan(&u.UserID, &u.Username, &u.Password, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		u.CreatedAt = timePtr(createdAt)
		u.UpdatedAt = timePtr(updatedAt)
		result = append(result, u)
	}
	return result, rows.Err()
}

// GetUserByUsername looks up one user for authentication.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var (
		u                    models.User
		createdAt, updatedAt sql.NullTime
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, username, password, created_at, updated_at
		 FROM users
		 WHERE username = $1`,
		username).Scan(&u.UserID, &u.Username, &u.Password, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying user %q: %w", username, err)
	}
	u.CreatedAt = timePtr(createdAt)
	u.UpdatedAt = timePtr(updatedAt)
	return &u, nil
}
