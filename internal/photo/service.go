package photo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Jaydev1110/TripShare/internal/access"
	"github.com/Jaydev1110/TripShare/internal/expiry"
	"github.com/Jaydev1110/TripShare/internal/group"
	"github.com/Jaydev1110/TripShare/internal/models"
	"github.com/Jaydev1110/TripShare/internal/storage"
)

// Common errors
var (
	ErrPhotoNotFound   = errors.New("photo not found")
	ErrGroupNotFound   = errors.New("group not found")
	ErrGroupExpired    = errors.New("group has expired")
	ErrNotAuthorized   = errors.New("not authorized to perform this action")
	ErrFileTooLarge    = errors.New("file exceeds the upload size limit")
	ErrInvalidMimeType = errors.New("file type not allowed")
)

// allowedMimeTypes is the upload allowlist.
var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// SignedURL pairs a photo id with a time-limited download link.
type SignedURL struct {
	PhotoID   string `json:"photo_id"`
	SignedURL string `json:"signed_url"`
}

// Service handles photo business logic
type Service struct {
	repo     Repository
	groups   group.Repository
	blobs    storage.BlobStore
	thumbs   storage.Thumbnailer
	maxBytes int64
	now      func() time.Time
}

// NewService creates a new photo service
func NewService(repo Repository, groups group.Repository, blobs storage.BlobStore, thumbs storage.Thumbnailer, maxBytes int64) *Service {
	return &Service{
		repo:     repo,
		groups:   groups,
		blobs:    blobs,
		thumbs:   thumbs,
		maxBytes: maxBytes,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the service clock. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Upload stores a photo blob and its metadata row. Input is validated
// before any I/O; the blob is written before the row so an aborted
// request never leaves a dangling reference.
func (s *Service) Upload(ctx context.Context, userID, groupID, filename, mimeType string, data []byte) (*models.Photo, error) {
	if int64(len(data)) > s.maxBytes {
		return nil, ErrFileTooLarge
	}
	if !allowedMimeTypes[mimeType] {
		return nil, ErrInvalidMimeType
	}

	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}
	if expiry.IsExpired(g.ExpiresAt, s.now()) {
		return nil, ErrGroupExpired
	}

	m, err := s.groups.GetMember(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if !access.CanViewGroupContents(m) {
		return nil, ErrNotAuthorized
	}

	now := s.now()
	storagePath := BuildStoragePath(groupID, userID, filename, now)

	if err := s.blobs.Put(ctx, storagePath, data, mimeType); err != nil {
		return nil, err
	}

	p := &models.Photo{
		ID:          uuid.NewString(),
		GroupID:     groupID,
		UploaderID:  userID,
		StoragePath: storagePath,
		Filename:    filename,
		MimeType:    mimeType,
		Size:        int64(len(data)),
		UploadedAt:  now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		// Compensate the blob write so no unreferenced object lingers.
		// The rollback itself is best-effort.
		if delErr := s.blobs.Delete(ctx, []string{storagePath}); delErr != nil {
			logrus.WithError(delErr).WithFields(logrus.Fields{
				"group_id":     groupID,
				"storage_path": storagePath,
			}).Error("failed to roll back blob after metadata failure")
		}
		return nil, err
	}

	s.generateThumbnail(ctx, p, data)

	return p, nil
}

// generateThumbnail is a best-effort side channel; its failure never
// fails the upload.
func (s *Service) generateThumbnail(ctx context.Context, p *models.Photo, data []byte) {
	thumb, err := s.thumbs.Thumbnail(data)
	if err != nil {
		logrus.WithError(err).WithField("photo_id", p.ID).Warn("thumbnail generation failed")
		return
	}
	if err := s.blobs.Put(ctx, ThumbPath(p.GroupID, p.StoragePath), thumb, "image/jpeg"); err != nil {
		logrus.WithError(err).WithField("photo_id", p.ID).Warn("thumbnail upload failed")
	}
}

// List returns the metadata of a group's photos. Requires an approved
// membership; callers fetch signed URLs separately.
func (s *Service) List(ctx context.Context, userID, groupID string) ([]*models.Photo, error) {
	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}

	m, err := s.groups.GetMember(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if !access.CanViewGroupContents(m) {
		return nil, ErrNotAuthorized
	}

	return s.repo.ListByGroup(ctx, groupID)
}

// SignedURLs resolves download links for the requested photos. Photos in
// groups the caller is not approved in are silently omitted: the contract
// is "return what you are allowed to see", not an error.
func (s *Service) SignedURLs(ctx context.Context, userID string, photoIDs []string, ttl time.Duration) ([]*SignedURL, error) {
	photos, err := s.repo.ListByIDs(ctx, photoIDs)
	if err != nil {
		return nil, err
	}
	if len(photos) == 0 {
		return []*SignedURL{}, nil
	}

	groupSet := map[string]struct{}{}
	groupIDs := make([]string, 0, len(photos))
	for _, p := range photos {
		if _, seen := groupSet[p.GroupID]; !seen {
			groupSet[p.GroupID] = struct{}{}
			groupIDs = append(groupIDs, p.GroupID)
		}
	}

	allowedIDs, err := s.groups.ApprovedGroupIDs(ctx, userID, groupIDs)
	if err != nil {
		return nil, err
	}
	allowed := map[string]bool{}
	for _, id := range allowedIDs {
		allowed[id] = true
	}

	urls := make([]*SignedURL, 0, len(photos))
	for _, p := range photos {
		if !allowed[p.GroupID] {
			continue
		}
		url, err := s.blobs.SignedURL(ctx, p.StoragePath, ttl)
		if err != nil {
			return nil, err
		}
		urls = append(urls, &SignedURL{PhotoID: p.ID, SignedURL: url})
	}
	return urls, nil
}

// Delete removes a photo. Allowed for the uploader and the group owner.
// The metadata row is authoritative: a failed blob delete is logged and
// does not keep the row alive.
func (s *Service) Delete(ctx context.Context, userID, photoID string) error {
	p, err := s.repo.GetByID(ctx, photoID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrPhotoNotFound
	}

	g, err := s.groups.GetByID(ctx, p.GroupID)
	if err != nil {
		return err
	}

	if !access.CanDeletePhoto(userID, p, g) {
		return ErrNotAuthorized
	}

	paths := []string{p.StoragePath, ThumbPath(p.GroupID, p.StoragePath)}
	if err := s.blobs.Delete(ctx, paths); err != nil {
		logrus.WithError(err).WithField("photo_id", p.ID).Warn("failed to delete photo blobs")
	}

	return s.repo.DeleteByID(ctx, photoID)
}

// PurgeGroupPhotos deletes every blob and metadata row of a group. Used
// by owner-driven group deletion and by the reaper; runs without an
// access check because both callers have already authorized the removal.
func (s *Service) PurgeGroupPhotos(ctx context.Context, groupID string) error {
	photos, err := s.repo.ListByGroup(ctx, groupID)
	if err != nil {
		return err
	}

	if len(photos) > 0 {
		paths := make([]string, 0, len(photos)*2)
		for _, p := range photos {
			paths = append(paths, p.StoragePath, ThumbPath(groupID, p.StoragePath))
		}
		if err := s.blobs.Delete(ctx, paths); err != nil {
			logrus.WithError(err).WithField("group_id", groupID).Warn("failed to delete group photo blobs")
		}
	}

	return s.repo.DeleteByGroup(ctx, groupID)
}
