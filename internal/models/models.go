// Package models holds the entities shared across feature packages.
// Keeping them in one place lets the access package reason about groups,
// memberships and photos without importing the feature packages that use it.
package models

import "time"

// User mirrors an identity-provider account in the local users table.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Group is a time-bounded shared collection with an owner, a join code
// and an expiry. ExpiresAt is always set; groups never live forever.
type Group struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	OwnerID   string    `json:"owner_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Membership relates a user to a group. A row with Approved=false is a
// pending join request; only approved members may view group contents.
type Membership struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"group_id"`
	UserID    string    `json:"user_id"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`

	// Populated from JOIN with users
	Username string `json:"username,omitempty"`
}

// Photo is the metadata record for a blob in object storage. StoragePath
// is assigned by the system, never by the client.
type Photo struct {
	ID          string    `json:"id"`
	GroupID     string    `json:"group_id"`
	UploaderID  string    `json:"uploader_id"`
	StoragePath string    `json:"-"`
	Filename    string    `json:"filename"`
	MimeType    string    `json:"mime_type"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// Notification is an in-app message for a user.
type Notification struct {
	ID                string    `json:"id"`
	RecipientID       string    `json:"recipient_id"`
	Message           string    `json:"message"`
	IsRead            bool      `json:"is_read"`
	RelatedEntityType *string   `json:"related_entity_type,omitempty"`
	RelatedEntityID   *string   `json:"related_entity_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}
