package group

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/Jaydev1110/TripShare/internal/models"
)

// Store-level errors surfaced to the service layer.
var (
	// ErrCodeTaken means the generated join code collided with a live
	// group. The service retries with a fresh code.
	ErrCodeTaken = errors.New("group code already in use")
	// ErrDuplicateMember means a membership row already exists for the
	// (group, user) pair.
	ErrDuplicateMember = errors.New("membership already exists")
)

const pqUniqueViolation = "23505"

// Repository abstracts group and membership persistence.
type Repository interface {
	Create(ctx context.Context, g *models.Group, owner *models.Membership) error
	GetByID(ctx context.Context, id string) (*models.Group, error)
	GetByCode(ctx context.Context, code string) (*models.Group, error)
	ListByUserID(ctx context.Context, userID string) ([]*models.Group, error)
	UpdateExpiry(ctx context.Context, id string, expiresAt time.Time) error
	Delete(ctx context.Context, id string) error

	GetMember(ctx context.Context, groupID, userID string) (*models.Membership, error)
	GetMemberByID(ctx context.Context, memberID string) (*models.Membership, error)
	AddMember(ctx context.Context, m *models.Membership) error
	SetMemberApproval(ctx context.Context, memberID string, approved bool) error
	ListMembers(ctx context.Context, groupID string) ([]*models.Membership, error)
	RemoveMember(ctx context.Context, groupID, userID string) error
	ApprovedGroupIDs(ctx context.Context, userID string, groupIDs []string) ([]string, error)

	ListExpiredBefore(ctx context.Context, t time.Time) ([]*models.Group, error)
	ListExpiringBetween(ctx context.Context, from, to time.Time) ([]*models.Group, error)
}

// Repo is the Postgres implementation of Repository.
type Repo struct {
	db *sql.DB
}

// NewRepository creates a new group repository
func NewRepository(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Create inserts the group row and the pre-approved owner membership in a
// single transaction, so a group can never exist without its owner row.
func (r *Repo) Create(ctx context.Context, g *models.Group, owner *models.Membership) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO groups (id, code, owner_id, title, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, g.ID, g.Code, g.OwnerID, g.Title, g.CreatedAt, g.ExpiresAt)
	if err != nil {
		if isUniqueViolation(err) {
			err = ErrCodeTaken
			return err
		}
		return fmt.Errorf("failed to create group: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO group_members (id, group_id, user_id, approved, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, owner.ID, owner.GroupID, owner.UserID, owner.Approved, owner.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create owner membership: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit group creation: %w", err)
	}
	return nil
}

// GetByID retrieves a group by its ID
func (r *Repo) GetByID(ctx context.Context, id string) (*models.Group, error) {
	return r.getGroup(ctx, `WHERE id = $1`, id)
}

// GetByCode retrieves a group by its join code
func (r *Repo) GetByCode(ctx context.Context, code string) (*models.Group, error) {
	return r.getGroup(ctx, `WHERE code = $1`, code)
}

func (r *Repo) getGroup(ctx context.Context, where string, arg interface{}) (*models.Group, error) {
	query := `
		SELECT id, code, owner_id, title, created_at, expires_at
		FROM groups ` + where

	g := &models.Group{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&g.ID, &g.Code, &g.OwnerID, &g.Title, &g.CreatedAt, &g.ExpiresAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return g, nil
}

// ListByUserID retrieves all groups the user has a membership row in.
func (r *Repo) ListByUserID(ctx context.Context, userID string) ([]*models.Group, error) {
	query := `
		SELECT g.id, g.code, g.owner_id, g.title, g.created_at, g.expires_at
		FROM groups g
		JOIN group_members gm ON g.id = gm.group_id
		WHERE gm.user_id = $1
		ORDER BY g.created_at DESC
	`
	return r.listGroups(ctx, query, userID)
}

// UpdateExpiry persists a new expiry timestamp.
func (r *Repo) UpdateExpiry(ctx context.Context, id string, expiresAt time.Time) error {
	result, err := r.db.ExecContext(ctx, `UPDATE groups SET expires_at = $2 WHERE id = $1`, id, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to update expiry: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a group row. Membership rows and the warning marker are
// removed by the store's cascade.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}

// GetMember retrieves the membership row for a (group, user) pair
func (r *Repo) GetMember(ctx context.Context, groupID, userID string) (*models.Membership, error) {
	query := `
		SELECT id, group_id, user_id, approved, created_at
		FROM group_members
		WHERE group_id = $1 AND user_id = $2
	`

	m := &models.Membership{}
	err := r.db.QueryRowContext(ctx, query, groupID, userID).Scan(
		&m.ID, &m.GroupID, &m.UserID, &m.Approved, &m.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return m, nil
}

// GetMemberByID retrieves a membership row by its own ID
func (r *Repo) GetMemberByID(ctx context.Context, memberID string) (*models.Membership, error) {
	query := `
		SELECT id, group_id, user_id, approved, created_at
		FROM group_members
		WHERE id = $1
	`

	m := &models.Membership{}
	err := r.db.QueryRowContext(ctx, query, memberID).Scan(
		&m.ID, &m.GroupID, &m.UserID, &m.Approved, &m.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return m, nil
}

// AddMember inserts a membership row.
func (r *Repo) AddMember(ctx context.Context, m *models.Membership) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO group_members (id, group_id, user_id, approved, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, m.ID, m.GroupID, m.UserID, m.Approved, m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateMember
		}
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// SetMemberApproval flips the approved flag on a membership row.
func (r *Repo) SetMemberApproval(ctx context.Context, memberID string, approved bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE group_members SET approved = $2 WHERE id = $1`, memberID, approved)
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListMembers retrieves all membership rows of a group with usernames.
func (r *Repo) ListMembers(ctx context.Context, groupID string) ([]*models.Membership, error) {
	query := `
		SELECT gm.id, gm.group_id, gm.user_id, gm.approved, gm.created_at, COALESCE(u.username, '')
		FROM group_members gm
		LEFT JOIN users u ON gm.user_id = u.id
		WHERE gm.group_id = $1
		ORDER BY gm.created_at
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*models.Membership
	for rows.Next() {
		m := &models.Membership{}
		if err := rows.Scan(&m.ID, &m.GroupID, &m.UserID, &m.Approved, &m.CreatedAt, &m.Username); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// RemoveMember deletes the membership row for a (group, user) pair.
// Removing an absent row is a no-op.
func (r *Repo) RemoveMember(ctx context.Context, groupID, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM group_members WHERE group_id = $1 AND user_id = $2`, groupID, userID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

// ApprovedGroupIDs returns the subset of groupIDs the user holds an
// approved membership in.
func (r *Repo) ApprovedGroupIDs(ctx context.Context, userID string, groupIDs []string) ([]string, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT group_id
		FROM group_members
		WHERE user_id = $1 AND approved = TRUE AND group_id = ANY($2)
	`

	rows, err := r.db.QueryContext(ctx, query, userID, pq.Array(groupIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to query approved groups: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan group id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListExpiredBefore returns groups whose expiry lies strictly before t.
func (r *Repo) ListExpiredBefore(ctx context.Context, t time.Time) ([]*models.Group, error) {
	query := `
		SELECT id, code, owner_id, title, created_at, expires_at
		FROM groups
		WHERE expires_at < $1
	`
	return r.listGroups(ctx, query, t)
}

// ListExpiringBetween returns groups with from < expires_at < to.
func (r *Repo) ListExpiringBetween(ctx context.Context, from, to time.Time) ([]*models.Group, error) {
	query := `
		SELECT id, code, owner_id, title, created_at, expires_at
		FROM groups
		WHERE expires_at > $1 AND expires_at < $2
	`
	return r.listGroups(ctx, query, from, to)
}

func (r *Repo) listGroups(ctx context.Context, query string, args ...interface{}) ([]*models.Group, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		g := &models.Group{}
		if err := rows.Scan(&g.ID, &g.Code, &g.OwnerID, &g.Title, &g.CreatedAt, &g.ExpiresAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}
