package group

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Jaydev1110/TripShare/internal/mocks"
	"github.com/Jaydev1110/TripShare/internal/models"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestService(repo Repository, purger PhotoPurger) *Service {
	return NewService(repo, purger, NewCodeGenerator(6), "tripshare://join?code=").
		WithClock(func() time.Time { return testNow })
}

func TestCreateGroupOwnerIsApprovedMember(t *testing.T) {
	repo := new(mocks.GroupRepositoryMock)
	svc := newTestService(repo, nil)

	repo.On("Create", mock.Anything,
		mock.MatchedBy(func(g *models.Group) bool {
			return g.OwnerID == "alice" && g.Title == "Trip" && len(g.Code) == 6 &&
				g.ExpiresAt.Equal(testNow.Add(7*24*time.Hour))
		}),
		mock.MatchedBy(func(m *models.Membership) bool {
			return m.UserID == "alice" && m.Approved
		}),
	).Return(nil).Once()

	g, err := svc.Create(context.Background(), "alice", "Trip", 7)
	require.NoError(t, err)
	require.Equal(t, "alice", g.OwnerID)
	repo.AssertExpectations(t)
}

func TestCreateGroupRetriesOnCodeCollision(t *testing.T) {
	repo := new(mocks.GroupRepositoryMock)
	svc := newTestService(repo, nil)

	repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(ErrCodeTaken).Once()
	repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	g, err := svc.Create(context.Background(), "alice", "Trip", 7)
	require.NoError(t, err)
	require.NotEmpty(t, g.Code)
	repo.AssertExpectations(t)
}

func TestCreateGroupCodeExhausted(t *testing.T) {
	repo := new(mocks.GroupRepositoryMock)
	svc := newTestService(repo, nil)

	repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(ErrCodeTaken).Times(maxCodeAttempts)

	_, err := svc.Create(context.Background(), "alice", "Trip", 7)
	require.ErrorIs(t, err, ErrCodeExhausted)
	repo.AssertExpectations(t)
}

func TestJoinFreshUserIsPending(t *testing.T) {
	repo := new(mocks.GroupRepositoryMock)
	svc := newTestService(repo, nil)

	g := &models.Group{ID: "g1", Code: "ABC123", OwnerID: "alice", ExpiresAt: testNow.Add(24 * time.Hour)}
	repo.On("GetByCode", mock.Anything, "ABC123").Return(g, nil).Once()
	repo.On("GetMember", mock.Anything, "g1", "bob").Return(nil, nil).Once()
	repo.On("AddMember", mock.Anything, mock.MatchedBy(func(m *models.Membership) bool {
		return m.GroupID == "g1" && m.UserID == "bob" && !m.Approved
	})).Return(nil).Once()

	result, err := svc.Join(context.Background(), "bob", "ABC123")
	require.NoError(t, err)
	require.Equal(t, JoinStatusPending, result.Status)
	require.False(t, result.Approved)
	repo.AssertExpectations(t)
}

func TestJoinAgainIsIdempotent(t *testing.T) {
	repo := new(mocks.GroupRepositoryMock)
	svc := newTestService(repo, nil)

	g := &models.Group{ID: "g1", Code: "ABC123", ExpiresAt: testNow.Add(24 * time.Hour)}
	repo.On("GetByCode", mock.Anything, "ABC123").Return(g, nil).Once()
	repo.On("GetMember", mock.Anything, "g1", "bob").
		Return(&models.Membership{ID: "m1", GroupID: "g1", UserID: "bob", Approved: false}, nil).Once()

	result, err := svc.Join(context.Background(), "bob", "ABC123")
	require.NoError(t, err)
	require.Equal(t, JoinStatusAlreadyMember, result.Status)
	repo.AssertNotCalled(t, "AddMember", mock.Anything, mock.Anything)
}

func TestJoinExpiredGroupIsGone(t *testing.T) {
	repo := new(mocks.GroupRepositoryMock)
	svc := newTestService(repo, nil)

	g := &models.Group{ID: "g1", Code: "ABC123", ExpiresAt: testNow.Add(-time.Minute)}
	repo.On("GetByCode", mock.Anything, "ABC123").Return(g, nil).Once()

	_, err := svc.Join(context.Background(), "bob", "ABC123")
	require.ErrorIs(t, err, ErrGroupExpired)
	repo.AssertNotCalled(t, "GetMember", mock.Anything, mock.Anything, mock.Anything)
}

func TestJoinInvalidCode(t *testing.T) {
	repo := new(mocks.GroupRepositoryMock)
	svc := newTestService(repo, nil)

	repo.On("GetByCode", mock.Anything, "NOPE00").Return(nil, nil).Once()

	_, err := svc.Join(context.Background(), "bob", "NOPE00")
	require.ErrorIs(t, err, ErrGroupNotFound)
}

func TestJoinDuplicateRaceMapsToAlreadyMember(t *testing.T) {
	repo := new(mocks.GroupRepositoryMock)
	svc := newTestService(repo, nil)

	g := &models.Group{ID: "g1", Code: "ABC123", ExpiresAt: testNow.Add(24 * time.Hour)}
	repo.On("GetByCode", mock.Anything, "ABC123").Return(g, nil).Once()
	repo.On("GetMember", mock.Anything, "g1", "bob").Return(nil, nil).Once()
	repo.On("AddMember", mock.Anything, mock.Anything).Return(ErrDuplicateMember).Once()

	result, err := svc.Join(context.Background(), "bob", "ABC123")
	require.NoError(t, err)
	require.Equal(t, JoinStatusAlreadyMember, result.Status)
}

func TestApproveMemberRequiresOwner(t *testing.T) {
	repo := new(mocks.GroupRepositoryMock)
	svc := newTestService(repo, nil)

	repo.On("GetByID", mock.Anything, "g1").Return(&models.Group{ID: "g1", OwnerID: "alice"}, nil).Once()

	err := svc.ApproveMember(context.Background(), "bob", "g1", "m1", true)
	require.ErrorIs(t, err, ErrNotAuthorized)
	repo.AssertNotCalled(t, "SetMemberApproval", mock.Anything, mock.Anything, mock.Anything)
}

func TestApproveMemberRejectsForeignMembershipRow(t *testing.T) {
	repo := new(mocks.GroupRepositoryMock)
	svc := newTestService(repo, nil)

	repo.On("GetByID", mock.Anything, "g1").Return(&models.Group{ID: "g1", OwnerID: "alice"}, nil).Once()
	repo.On("GetMemberByID", mock.Anything, "m1").
		Return(&models.Membership{ID: "m1", GroupID: "other-group", UserID: "bob"}, nil).Once()

	err := svc.ApproveMember(context.Background(), "alice", "g1", "m1", true)
	require.ErrorIs(t, err, ErrMemberNotFound)
	repo.AssertNotCalled(t, "SetMemberApproval", mock.Anything, mock.Anything, mock.Anything)
}

func TestApproveMemberSuccess(t *testing.T) {
	repo := new(mocks.GroupRepositoryMock)
	svc := newTestService(repo, nil)

	repo.On("GetByID", mock.Anything, "g1").Return(&models.Group{ID: "g1", OwnerID: "alice"}, nil).Once()
	repo.On("GetMemberByID", mock.Anything, "m1").
		Return(&models.Membership{ID: "m1", GroupID: "g1", UserID: "bob"}, nil).Once()
	repo.On("SetMemberApproval", mock.Anything, "m1", true).Return(nil).Once()

	err := svc.ApproveMember(context.Background(), "alice", "g1", "m1", true)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestListMembersRequiresApprovedMembership(t *testing.T) {
	repo := new(mocks.GroupRepositoryMock)
	svc := newTestService(repo, nil)

	repo.On("GetByID", mock.Anything, "g1").Return(&models.Group{ID: "g1", OwnerID: "alice"}, nil).Twice()
	repo.On("GetMember", mock.Anything, "g1", "bob").
		Return(&models.Membership{GroupID: "g1", UserID: "bob", Approved: false}, nil).Once()

	_, err := svc.ListMembers(context.Background(), "bob", "g1")
	require.ErrorIs(t, err, ErrNotAuthorized)

	repo.On("GetMember", mock.Anything, "g1", "carol").
		Return(&models.Membership{GroupID: "g1", UserID: "carol", Approved: true}, nil).Once()
	repo.On("ListMembers", mock.Anything, "g1").
		Return([]*models.Membership{{UserID: "alice"}, {UserID: "carol"}}, nil).Once()

	members, err := svc.ListMembers(context.Background(), "carol", "g1")
	require.NoError(t, err)
	require.Len(t, members, 2)
}

func TestExtendResetsClockOnExpiredGroup(t *testing.T) {
	repo := new(mocks.GroupRepositoryMock)
	svc := newTestService(repo, nil)

	g := &models.Group{ID: "g1", OwnerID: "alice", ExpiresAt: testNow.Add(-48 * time.Hour)}
	want := testNow.Add(7 * 24 * time.Hour)

	repo.On("GetByID", mock.Anything, "g1").Return(g, nil).Once()
	repo.On("UpdateExpiry", mock.Anything, "g1", want).Return(nil).Once()

	newExpiresAt, err := svc.Extend(context.Background(), "alice", "g1", 7)
	require.NoError(t, err)
	require.Equal(t, want, newExpiresAt)
	repo.AssertExpectations(t)
}

func TestExtendRequiresOwner(t *testing.T) {
	repo := new(mocks.GroupRepositoryMock)
	svc := newTestService(repo, nil)

	repo.On("GetByID", mock.Anything, "g1").Return(&models.Group{ID: "g1", OwnerID: "alice"}, nil).Once()

	_, err := svc.Extend(context.Background(), "bob", "g1", 7)
	require.ErrorIs(t, err, ErrNotAuthorized)
	repo.AssertNotCalled(t, "UpdateExpiry", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteGroupPurgesPhotosBeforeRow(t *testing.T) {
	repo := new(mocks.GroupRepositoryMock)
	purger := new(mocks.PhotoPurgerMock)
	svc := newTestService(repo, purger)

	var order []string
	repo.On("GetByID", mock.Anything, "g1").Return(&models.Group{ID: "g1", OwnerID: "alice"}, nil).Once()
	purger.On("PurgeGroupPhotos", mock.Anything, "g1").Run(func(mock.Arguments) {
		order = append(order, "photos")
	}).Return(nil).Once()
	repo.On("Delete", mock.Anything, "g1").Run(func(mock.Arguments) {
		order = append(order, "group")
	}).Return(nil).Once()

	err := svc.Delete(context.Background(), "alice", "g1")
	require.NoError(t, err)
	require.Equal(t, []string{"photos", "group"}, order)
}

func TestDeleteGroupRequiresOwner(t *testing.T) {
	repo := new(mocks.GroupRepositoryMock)
	purger := new(mocks.PhotoPurgerMock)
	svc := newTestService(repo, purger)

	repo.On("GetByID", mock.Anything, "g1").Return(&models.Group{ID: "g1", OwnerID: "alice"}, nil).Once()

	err := svc.Delete(context.Background(), "bob", "g1")
	require.ErrorIs(t, err, ErrNotAuthorized)
	purger.AssertNotCalled(t, "PurgeGroupPhotos", mock.Anything, mock.Anything)
}

func TestLeaveIsIdempotent(t *testing.T) {
	repo := new(mocks.GroupRepositoryMock)
	svc := newTestService(repo, nil)

	repo.On("RemoveMember", mock.Anything, "g1", "bob").Return(nil).Twice()

	require.NoError(t, svc.Leave(context.Background(), "bob", "g1"))
	require.NoError(t, svc.Leave(context.Background(), "bob", "g1"))
}
