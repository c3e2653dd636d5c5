package user

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Jaydev1110/TripShare/internal/models"
)

// Repository abstracts user persistence.
type Repository interface {
	Upsert(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Repo is the Postgres implementation of Repository.
type Repo struct {
	db *sql.DB
}

// NewRepository creates a new user repository
func NewRepository(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Upsert mirrors an identity-provider account into the users table.
// Signup is a pass-through to the provider, so a retried signup must not
// fail on the local mirror.
func (r *Repo) Upsert(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users (id, username, email)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET username = EXCLUDED.username, email = EXCLUDED.email
	`

	if _, err := r.db.ExecContext(ctx, query, u.ID, u.Username, u.Email); err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by its ID
func (r *Repo) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, username, email, created_at
		FROM users
		WHERE id = $1
	`

	u := &models.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}
