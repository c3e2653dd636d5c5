package notification

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Jaydev1110/TripShare/internal/models"
)

// Repository handles notification rows and the expiry-warning markers.
type Repository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByRecipient(ctx context.Context, recipientID string) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id, recipientID string) error

	// CreateWarning records that an expiry warning was issued for the
	// group. Returns false when a warning already exists; at most one
	// warning is ever recorded per group.
	CreateWarning(ctx context.Context, groupID string) (bool, error)
}

// Repo is the Postgres implementation of Repository.
type Repo struct {
	db *sql.DB
}

// NewRepository creates a new notification repository
func NewRepository(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Create inserts a notification row.
func (r *Repo) Create(ctx context.Context, n *models.Notification) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (id, recipient_id, message, related_entity_type, related_entity_id)
		VALUES ($1, $2, $3, $4, $5)
	`, n.ID, n.RecipientID, n.Message, n.RelatedEntityType, n.RelatedEntityID)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// ListByRecipient retrieves all notifications for a user
func (r *Repo) ListByRecipient(ctx context.Context, recipientID string) ([]*models.Notification, error) {
	query := `
		SELECT id, recipient_id, message, is_read, related_entity_type, related_entity_id, created_at
		FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, recipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		n := &models.Notification{}
		if err := rows.Scan(
			&n.ID, &n.RecipientID, &n.Message, &n.IsRead,
			&n.RelatedEntityType, &n.RelatedEntityID, &n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkRead flags a notification as read. Scoped to the recipient so a
// user cannot touch someone else's rows.
func (r *Repo) MarkRead(ctx context.Context, id, recipientID string) error {
	if _, err := r.db.ExecContext(ctx, `
		UPDATE notifications SET is_read = TRUE WHERE id = $1 AND recipient_id = $2
	`, id, recipientID); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// CreateWarning inserts the warning marker for a group. The primary key
// makes the insert a no-op when a warning was already issued, which is
// what keeps the notifier idempotent across runs.
func (r *Repo) CreateWarning(ctx context.Context, groupID string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO group_warnings (group_id) VALUES ($1)
		ON CONFLICT (group_id) DO NOTHING
	`, groupID)
	if err != nil {
		return false, fmt.Errorf("failed to create warning: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}
