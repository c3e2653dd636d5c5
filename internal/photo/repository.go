package photo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/Jaydev1110/TripShare/internal/models"
)

// Repository abstracts photo metadata persistence.
type Repository interface {
	Create(ctx context.Context, p *models.Photo) error
	GetByID(ctx context.Context, id string) (*models.Photo, error)
	ListByGroup(ctx context.Context, groupID string) ([]*models.Photo, error)
	ListByIDs(ctx context.Context, ids []string) ([]*models.Photo, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteByGroup(ctx context.Context, groupID string) error
}

// Repo is the Postgres implementation of Repository.
type Repo struct {
	db *sql.DB
}

// NewRepository creates a new photo repository
func NewRepository(db *sql.DB) *Repo {
	return &Repo{db: db}
}

const photoColumns = `id, group_id, uploader_id, storage_path, filename, mime_type, size, uploaded_at`

// Create inserts a photo metadata row.
func (r *Repo) Create(ctx context.Context, p *models.Photo) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO photos (`+photoColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, p.ID, p.GroupID, p.UploaderID, p.StoragePath, p.Filename, p.MimeType, p.Size, p.UploadedAt)
	if err != nil {
		return fmt.Errorf("failed to create photo: %w", err)
	}
	return nil
}

// GetByID retrieves a photo by its ID
func (r *Repo) GetByID(ctx context.Context, id string) (*models.Photo, error) {
	p := &models.Photo{}
	err := r.db.QueryRowContext(ctx, `SELECT `+photoColumns+` FROM photos WHERE id = $1`, id).Scan(
		&p.ID, &p.GroupID, &p.UploaderID, &p.StoragePath, &p.Filename, &p.MimeType, &p.Size, &p.UploadedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}
	return p, nil
}

// ListByGroup retrieves all photos of a group
func (r *Repo) ListByGroup(ctx context.Context, groupID string) ([]*models.Photo, error) {
	return r.list(ctx, `SELECT `+photoColumns+` FROM photos WHERE group_id = $1 ORDER BY uploaded_at DESC`, groupID)
}

// ListByIDs retrieves the photos matching the given ids. Unknown ids are
// simply absent from the result.
func (r *Repo) ListByIDs(ctx context.Context, ids []string) ([]*models.Photo, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx, `SELECT `+photoColumns+` FROM photos WHERE id = ANY($1)`, pq.Array(ids))
}

// DeleteByID removes a photo metadata row.
func (r *Repo) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM photos WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	return nil
}

// DeleteByGroup removes all photo metadata rows of a group.
func (r *Repo) DeleteByGroup(ctx context.Context, groupID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM photos WHERE group_id = $1`, groupID); err != nil {
		return fmt.Errorf("failed to delete group photos: %w", err)
	}
	return nil
}

func (r *Repo) list(ctx context.Context, query string, args ...interface{}) ([]*models.Photo, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	defer rows.Close()

	var photos []*models.Photo
	for rows.Next() {
		p := &models.Photo{}
		if err := rows.Scan(&p.ID, &p.GroupID, &p.UploaderID, &p.StoragePath, &p.Filename, &p.MimeType, &p.Size, &p.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}
