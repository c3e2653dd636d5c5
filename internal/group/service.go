package group

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Jaydev1110/TripShare/internal/access"
	"github.com/Jaydev1110/TripShare/internal/expiry"
	"github.com/Jaydev1110/TripShare/internal/models"
	"github.com/Jaydev1110/TripShare/internal/qr"
)

// Common errors
var (
	ErrGroupNotFound  = errors.New("group not found")
	ErrMemberNotFound = errors.New("member not found")
	ErrGroupExpired   = errors.New("group has expired")
	ErrNotAuthorized  = errors.New("not authorized to perform this action")
	ErrCodeExhausted  = errors.New("could not generate a unique group code")
)

// maxCodeAttempts bounds the retry loop on join-code collisions.
const maxCodeAttempts = 5

// JoinStatus is the outcome of a join-by-code request.
type JoinStatus string

const (
	JoinStatusPending       JoinStatus = "pending"
	JoinStatusAlreadyMember JoinStatus = "already_member"
)

// JoinResult describes what happened when a user joined by code.
type JoinResult struct {
	Status   JoinStatus `json:"status"`
	GroupID  string     `json:"group_id"`
	Approved bool       `json:"approved"`
}

// PhotoPurger removes all photo metadata and blobs belonging to a group.
// Implemented by the photo service; a narrow interface here avoids a
// package cycle.
type PhotoPurger interface {
	PurgeGroupPhotos(ctx context.Context, groupID string) error
}

// Service handles group business logic
type Service struct {
	repo         Repository
	photos       PhotoPurger
	codes        *CodeGenerator
	joinLinkBase string
	now          func() time.Time
}

// NewService creates a new group service
func NewService(repo Repository, photos PhotoPurger, codes *CodeGenerator, joinLinkBase string) *Service {
	return &Service{
		repo:         repo,
		photos:       photos,
		codes:        codes,
		joinLinkBase: joinLinkBase,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the service clock. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create creates a group and its pre-approved owner membership. The join
// code is regenerated on collision rather than serialized behind a lock.
func (s *Service) Create(ctx context.Context, ownerID, title string, expiresInDays int) (*models.Group, error) {
	now := s.now()

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := s.codes.Generate()
		if err != nil {
			return nil, err
		}

		g := &models.Group{
			ID:        uuid.NewString(),
			Code:      code,
			OwnerID:   ownerID,
			Title:     title,
			CreatedAt: now,
			ExpiresAt: now.Add(time.Duration(expiresInDays) * 24 * time.Hour),
		}
		owner := &models.Membership{
			ID:        uuid.NewString(),
			GroupID:   g.ID,
			UserID:    ownerID,
			Approved:  true,
			CreatedAt: now,
		}

		err = s.repo.Create(ctx, g, owner)
		if errors.Is(err, ErrCodeTaken) {
			logrus.WithField("attempt", attempt+1).Debug("group code collision, retrying")
			continue
		}
		if err != nil {
			return nil, err
		}
		return g, nil
	}

	return nil, ErrCodeExhausted
}

// Get retrieves a group by ID. Group metadata is readable by any
// authenticated user who knows the id; contents are not.
func (s *Service) Get(ctx context.Context, groupID string) (*models.Group, error) {
	g, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}
	return g, nil
}

// ListMine retrieves every group the user has a membership row in,
// including pending ones.
func (s *Service) ListMine(ctx context.Context, userID string) ([]*models.Group, error) {
	return s.repo.ListByUserID(ctx, userID)
}

// Join handles a join-by-code request. Joining a group the user already
// belongs to is an idempotent no-op reporting the current status.
func (s *Service) Join(ctx context.Context, userID, code string) (*JoinResult, error) {
	g, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}
	if expiry.IsExpired(g.ExpiresAt, s.now()) {
		return nil, ErrGroupExpired
	}

	existing, err := s.repo.GetMember(ctx, g.ID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &JoinResult{Status: JoinStatusAlreadyMember, GroupID: g.ID, Approved: existing.Approved}, nil
	}

	m := &models.Membership{
		ID:        uuid.NewString(),
		GroupID:   g.ID,
		UserID:    userID,
		Approved:  false,
		CreatedAt: s.now(),
	}
	if err := s.repo.AddMember(ctx, m); err != nil {
		// Two concurrent joins race on the (group, user) constraint; the
		// loser is still a member.
		if errors.Is(err, ErrDuplicateMember) {
			return &JoinResult{Status: JoinStatusAlreadyMember, GroupID: g.ID}, nil
		}
		return nil, err
	}

	return &JoinResult{Status: JoinStatusPending, GroupID: g.ID, Approved: false}, nil
}

// ApproveMember sets the approval flag on a membership row. Owner only.
// The target row must belong to the given group; a mismatch reads as not
// found rather than leaking the row's existence elsewhere.
func (s *Service) ApproveMember(ctx context.Context, actorID, groupID, memberID string, approve bool) error {
	g, err := s.Get(ctx, groupID)
	if err != nil {
		return err
	}
	if !access.CanManageGroup(actorID, g) {
		return ErrNotAuthorized
	}

	m, err := s.repo.GetMemberByID(ctx, memberID)
	if err != nil {
		return err
	}
	if m == nil || m.GroupID != groupID {
		return ErrMemberNotFound
	}

	return s.repo.SetMemberApproval(ctx, memberID, approve)
}

// ListMembers returns all membership rows of a group. Requires the caller
// to be an approved member.
func (s *Service) ListMembers(ctx context.Context, userID, groupID string) ([]*models.Membership, error) {
	if _, err := s.Get(ctx, groupID); err != nil {
		return nil, err
	}

	m, err := s.repo.GetMember(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if !access.CanViewGroupContents(m) {
		return nil, ErrNotAuthorized
	}

	return s.repo.ListMembers(ctx, groupID)
}

// Leave removes the caller's own membership row. Leaving a group the
// user is not in is a no-op.
func (s *Service) Leave(ctx context.Context, userID, groupID string) error {
	return s.repo.RemoveMember(ctx, groupID, userID)
}

// Extend pushes the group's expiry out by extendDays. Owner only. An
// expired-but-not-yet-reaped group restarts its clock from now.
func (s *Service) Extend(ctx context.Context, actorID, groupID string, extendDays int) (time.Time, error) {
	g, err := s.Get(ctx, groupID)
	if err != nil {
		return time.Time{}, err
	}
	if !access.CanManageGroup(actorID, g) {
		return time.Time{}, ErrNotAuthorized
	}

	newExpiresAt := expiry.Extend(g.ExpiresAt, s.now(), extendDays)
	if err := s.repo.UpdateExpiry(ctx, groupID, newExpiresAt); err != nil {
		return time.Time{}, err
	}
	return newExpiresAt, nil
}

// Delete removes a group, its photos and blobs, and (via cascade) its
// memberships. Photos go first: a photo row referencing a deleted group
// would be an orphan nothing can clean up.
func (s *Service) Delete(ctx context.Context, actorID, groupID string) error {
	g, err := s.Get(ctx, groupID)
	if err != nil {
		return err
	}
	if !access.CanManageGroup(actorID, g) {
		return ErrNotAuthorized
	}

	if err := s.photos.PurgeGroupPhotos(ctx, groupID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, groupID)
}

// QRCode renders the group's join deep link as a PNG image.
func (s *Service) QRCode(ctx context.Context, groupID string) ([]byte, error) {
	g, err := s.Get(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return qr.Render(s.joinLinkBase + g.Code)
}
