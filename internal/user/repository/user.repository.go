package repository

import (
	"context"
	"database/sql"

	"jsonshare/pkg/logger"
)

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// EnsureExists lazily materializes a user row for an identity seen for the
// first time. An existing row is left untouched, so an email set by the
// webhook is never overwritten.
func (r *UserRepository) EnsureExists(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (id) VALUES ($1) ON CONFLICT (id) DO NOTHING", id)
	if err != nil {
		logger.Sugar.Errorf("Failed to ensure user %s exists: %v", id, err)
	}
	return err
}

// Upsert creates or updates the user with the provider-reported email.
func (r *UserRepository) Upsert(ctx context.Context, id, email string) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (id, email) VALUES ($1, NULLIF($2, ''))
		 ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, updated_at = NOW()`,
		id, email)
	if err != nil {
		logger.Sugar.Errorf("Failed to upsert user %s: %v", id, err)
	}
	return err
}

// Delete removes the user row; owned documents go with it via the cascading
// foreign key.
func (r *UserRepository) Delete(ctx context.Context, id string) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		logger.Sugar.Errorf("Failed to delete user %s: %v", id, err)
		return 0, err
	}
	return result.RowsAffected()
}
