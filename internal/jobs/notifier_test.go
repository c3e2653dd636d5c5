package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Jaydev1110/TripShare/internal/mocks"
	"github.com/Jaydev1110/TripShare/internal/models"
)

func TestNotifierWarnsOwnerOnce(t *testing.T) {
	groups := new(mocks.GroupRepositoryMock)
	notifications := new(mocks.NotificationRepositoryMock)
	notifier := NewNotifier(groups, notifications, 24*time.Hour).
		WithClock(func() time.Time { return testNow })

	expiring := []*models.Group{{ID: "g1", OwnerID: "alice", Title: "Trip", ExpiresAt: testNow.Add(6 * time.Hour)}}
	groups.On("ListExpiringBetween", mock.Anything, testNow, testNow.Add(24*time.Hour)).
		Return(expiring, nil).Twice()

	// First pass claims the warning marker, second pass finds it taken.
	notifications.On("CreateWarning", mock.Anything, "g1").Return(true, nil).Once()
	notifications.On("CreateWarning", mock.Anything, "g1").Return(false, nil).Once()
	notifications.On("Create", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
		return n.RecipientID == "alice" && n.RelatedEntityID != nil && *n.RelatedEntityID == "g1"
	})).Return(nil).Once()

	require.NoError(t, notifier.RunOnce(context.Background()))
	require.NoError(t, notifier.RunOnce(context.Background()))
	notifications.AssertExpectations(t)
	notifications.AssertNumberOfCalls(t, "Create", 1)
}

func TestNotifierContinuesPastWarningErrors(t *testing.T) {
	groups := new(mocks.GroupRepositoryMock)
	notifications := new(mocks.NotificationRepositoryMock)
	notifier := NewNotifier(groups, notifications, 24*time.Hour).
		WithClock(func() time.Time { return testNow })

	expiring := []*models.Group{
		{ID: "g1", OwnerID: "alice", Title: "Broken"},
		{ID: "g2", OwnerID: "bob", Title: "Fine"},
	}
	groups.On("ListExpiringBetween", mock.Anything, testNow, testNow.Add(24*time.Hour)).
		Return(expiring, nil).Once()

	notifications.On("CreateWarning", mock.Anything, "g1").Return(false, errors.New("db down")).Once()
	notifications.On("CreateWarning", mock.Anything, "g2").Return(true, nil).Once()
	notifications.On("Create", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
		return n.RecipientID == "bob"
	})).Return(nil).Once()

	require.NoError(t, notifier.RunOnce(context.Background()))
	notifications.AssertExpectations(t)
}

func TestNotifierListFailureSurfaces(t *testing.T) {
	groups := new(mocks.GroupRepositoryMock)
	notifications := new(mocks.NotificationRepositoryMock)
	notifier := NewNotifier(groups, notifications, 24*time.Hour).
		WithClock(func() time.Time { return testNow })

	boom := errors.New("db down")
	groups.On("ListExpiringBetween", mock.Anything, mock.Anything, mock.Anything).Return(nil, boom).Once()

	require.ErrorIs(t, notifier.RunOnce(context.Background()), boom)
}
