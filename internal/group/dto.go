package group

import (
	"time"

	"github.com/Jaydev1110/TripShare/internal/models"
)

// CreateGroupRequest represents the request to create a new group
type CreateGroupRequest struct {
	Title         string `json:"title" validate:"required,min=1,max=100"`
	ExpiresInDays int    `json:"expires_in_days" validate:"required,min=1,max=365"`
}

// JoinGroupRequest represents the request to join a group by code
type JoinGroupRequest struct {
	Code string `json:"code" validate:"required,len=6"`
}

// ApproveMemberRequest represents the request to approve or reject a member
type ApproveMemberRequest struct {
	MemberID string `json:"member_id" validate:"required,uuid"`
	Approve  bool   `json:"approve"`
}

// ExtendGroupRequest represents the request to extend a group's expiry
type ExtendGroupRequest struct {
	ExtendDays int `json:"extend_days" validate:"required,min=1,max=365"`
}

// GroupResponse represents the response for a group
type GroupResponse struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	OwnerID   string `json:"owner_id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
	ExpiresAt string `json:"expires_at"`
}

// MemberResponse represents a member in a group response
type MemberResponse struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Approved bool   `json:"approved"`
	JoinedAt string `json:"joined_at"`
}

// ExtendGroupResponse carries the new expiry after an extension
type ExtendGroupResponse struct {
	ExpiresAt string `json:"expires_at"`
}

// ToGroupResponse converts a Group model to a GroupResponse DTO
func ToGroupResponse(g *models.Group) *GroupResponse {
	return &GroupResponse{
		ID:        g.ID,
		Code:      g.Code,
		OwnerID:   g.OwnerID,
		Title:     g.Title,
		CreatedAt: g.CreatedAt.UTC().Format(time.RFC3339),
		ExpiresAt: g.ExpiresAt.UTC().Format(time.RFC3339),
	}
}

// ToMemberResponse converts a Membership model to a MemberResponse DTO
func ToMemberResponse(m *models.Membership) *MemberResponse {
	return &MemberResponse{
		ID:       m.ID,
		UserID:   m.UserID,
		Username: m.Username,
		Approved: m.Approved,
		JoinedAt: m.CreatedAt.UTC().Format(time.RFC3339),
	}
}
