// Package mocks holds hand-written testify mocks for the repository and
// collaborator interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Jaydev1110/TripShare/internal/models"
)

// GroupRepositoryMock mocks group.Repository.
type GroupRepositoryMock struct {
	mock.Mock
}

func (m *GroupRepositoryMock) Create(ctx context.Context, g *models.Group, owner *models.Membership) error {
	args := m.Called(ctx, g, owner)
	return args.Error(0)
}

func (m *GroupRepositoryMock) GetByID(ctx context.Context, id string) (*models.Group, error) {
	args := m.Called(ctx, id)
	var g *models.Group
	if val := args.Get(0); val != nil {
		g = val.(*models.Group)
	}
	return g, args.Error(1)
}

func (m *GroupRepositoryMock) GetByCode(ctx context.Context, code string) (*models.Group, error) {
	args := m.Called(ctx, code)
	var g *models.Group
	if val := args.Get(0); val != nil {
		g = val.(*models.Group)
	}
	return g, args.Error(1)
}

func (m *GroupRepositoryMock) ListByUserID(ctx context.Context, userID string) ([]*models.Group, error) {
	args := m.Called(ctx, userID)
	var groups []*models.Group
	if val := args.Get(0); val != nil {
		groups = val.([]*models.Group)
	}
	return groups, args.Error(1)
}

func (m *GroupRepositoryMock) UpdateExpiry(ctx context.Context, id string, expiresAt time.Time) error {
	args := m.Called(ctx, id, expiresAt)
	return args.Error(0)
}

func (m *GroupRepositoryMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *GroupRepositoryMock) GetMember(ctx context.Context, groupID, userID string) (*models.Membership, error) {
	args := m.Called(ctx, groupID, userID)
	var member *models.Membership
	if val := args.Get(0); val != nil {
		member = val.(*models.Membership)
	}
	return member, args.Error(1)
}

func (m *GroupRepositoryMock) GetMemberByID(ctx context.Context, memberID string) (*models.Membership, error) {
	args := m.Called(ctx, memberID)
	var member *models.Membership
	if val := args.Get(0); val != nil {
		member = val.(*models.Membership)
	}
	return member, args.Error(1)
}

func (m *GroupRepositoryMock) AddMember(ctx context.Context, member *models.Membership) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *GroupRepositoryMock) SetMemberApproval(ctx context.Context, memberID string, approved bool) error {
	args := m.Called(ctx, memberID, approved)
	return args.Error(0)
}

func (m *GroupRepositoryMock) ListMembers(ctx context.Context, groupID string) ([]*models.Membership, error) {
	args := m.Called(ctx, groupID)
	var members []*models.Membership
	if val := args.Get(0); val != nil {
		members = val.([]*models.Membership)
	}
	return members, args.Error(1)
}

func (m *GroupRepositoryMock) RemoveMember(ctx context.Context, groupID, userID string) error {
	args := m.Called(ctx, groupID, userID)
	return args.Error(0)
}

func (m *GroupRepositoryMock) ApprovedGroupIDs(ctx context.Context, userID string, groupIDs []string) ([]string, error) {
	args := m.Called(ctx, userID, groupIDs)
	var ids []string
	if val := args.Get(0); val != nil {
		ids = val.([]string)
	}
	return ids, args.Error(1)
}

func (m *GroupRepositoryMock) ListExpiredBefore(ctx context.Context, t time.Time) ([]*models.Group, error) {
	args := m.Called(ctx, t)
	var groups []*models.Group
	if val := args.Get(0); val != nil {
		groups = val.([]*models.Group)
	}
	return groups, args.Error(1)
}

func (m *GroupRepositoryMock) ListExpiringBetween(ctx context.Context, from, to time.Time) ([]*models.Group, error) {
	args := m.Called(ctx, from, to)
	var groups []*models.Group
	if val := args.Get(0); val != nil {
		groups = val.([]*models.Group)
	}
	return groups, args.Error(1)
}

// PhotoRepositoryMock mocks photo.Repository.
type PhotoRepositoryMock struct {
	mock.Mock
}

func (m *PhotoRepositoryMock) Create(ctx context.Context, p *models.Photo) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *PhotoRepositoryMock) GetByID(ctx context.Context, id string) (*models.Photo, error) {
	args := m.Called(ctx, id)
	var p *models.Photo
	if val := args.Get(0); val != nil {
		p = val.(*models.Photo)
	}
	return p, args.Error(1)
}

func (m *PhotoRepositoryMock) ListByGroup(ctx context.Context, groupID string) ([]*models.Photo, error) {
	args := m.Called(ctx, groupID)
	var photos []*models.Photo
	if val := args.Get(0); val != nil {
		photos = val.([]*models.Photo)
	}
	return photos, args.Error(1)
}

func (m *PhotoRepositoryMock) ListByIDs(ctx context.Context, ids []string) ([]*models.Photo, error) {
	args := m.Called(ctx, ids)
	var photos []*models.Photo
	if val := args.Get(0); val != nil {
		photos = val.([]*models.Photo)
	}
	return photos, args.Error(1)
}

func (m *PhotoRepositoryMock) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *PhotoRepositoryMock) DeleteByGroup(ctx context.Context, groupID string) error {
	args := m.Called(ctx, groupID)
	return args.Error(0)
}

// BlobStoreMock mocks storage.BlobStore.
type BlobStoreMock struct {
	mock.Mock
}

func (m *BlobStoreMock) Put(ctx context.Context, path string, data []byte, contentType string) error {
	args := m.Called(ctx, path, data, contentType)
	return args.Error(0)
}

func (m *BlobStoreMock) SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, path, ttl)
	return args.String(0), args.Error(1)
}

func (m *BlobStoreMock) Delete(ctx context.Context, paths []string) error {
	args := m.Called(ctx, paths)
	return args.Error(0)
}

// ThumbnailerMock mocks storage.Thumbnailer.
type ThumbnailerMock struct {
	mock.Mock
}

func (m *ThumbnailerMock) Thumbnail(data []byte) ([]byte, error) {
	args := m.Called(data)
	var thumb []byte
	if val := args.Get(0); val != nil {
		thumb = val.([]byte)
	}
	return thumb, args.Error(1)
}

// NotificationRepositoryMock mocks notification.Repository.
type NotificationRepositoryMock struct {
	mock.Mock
}

func (m *NotificationRepositoryMock) Create(ctx context.Context, n *models.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *NotificationRepositoryMock) ListByRecipient(ctx context.Context, recipientID string) ([]*models.Notification, error) {
	args := m.Called(ctx, recipientID)
	var notifications []*models.Notification
	if val := args.Get(0); val != nil {
		notifications = val.([]*models.Notification)
	}
	return notifications, args.Error(1)
}

func (m *NotificationRepositoryMock) MarkRead(ctx context.Context, id, recipientID string) error {
	args := m.Called(ctx, id, recipientID)
	return args.Error(0)
}

func (m *NotificationRepositoryMock) CreateWarning(ctx context.Context, groupID string) (bool, error) {
	args := m.Called(ctx, groupID)
	return args.Bool(0), args.Error(1)
}

// PhotoPurgerMock mocks the purge hook shared by the group service and
// the reaper.
type PhotoPurgerMock struct {
	mock.Mock
}

func (m *PhotoPurgerMock) PurgeGroupPhotos(ctx context.Context, groupID string) error {
	args := m.Called(ctx, groupID)
	return args.Error(0)
}

// UserRepositoryMock mocks user.Repository.
type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) Upsert(ctx context.Context, u *models.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepositoryMock) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	var u *models.User
	if val := args.Get(0); val != nil {
		u = val.(*models.User)
	}
	return u, args.Error(1)
}
