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

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestReaperDeletesPhotosBeforeGroupRow(t *testing.T) {
	groups := new(mocks.GroupRepositoryMock)
	photos := new(mocks.PhotoPurgerMock)
	reaper := NewReaper(groups, photos).WithClock(func() time.Time { return testNow })

	expired := []*models.Group{{ID: "g1", Title: "Old trip"}}
	groups.On("ListExpiredBefore", mock.Anything, testNow).Return(expired, nil).Once()

	var order []string
	photos.On("PurgeGroupPhotos", mock.Anything, "g1").Run(func(mock.Arguments) {
		order = append(order, "photos")
	}).Return(nil).Once()
	groups.On("Delete", mock.Anything, "g1").Run(func(mock.Arguments) {
		order = append(order, "group")
	}).Return(nil).Once()

	require.NoError(t, reaper.RunOnce(context.Background()))
	require.Equal(t, []string{"photos", "group"}, order)
}

func TestReaperSkipsGroupWhenPurgeFails(t *testing.T) {
	groups := new(mocks.GroupRepositoryMock)
	photos := new(mocks.PhotoPurgerMock)
	reaper := NewReaper(groups, photos).WithClock(func() time.Time { return testNow })

	expired := []*models.Group{{ID: "g1"}, {ID: "g2"}}
	groups.On("ListExpiredBefore", mock.Anything, testNow).Return(expired, nil).Once()

	photos.On("PurgeGroupPhotos", mock.Anything, "g1").Return(errors.New("s3 down")).Once()
	photos.On("PurgeGroupPhotos", mock.Anything, "g2").Return(nil).Once()
	groups.On("Delete", mock.Anything, "g2").Return(nil).Once()

	require.NoError(t, reaper.RunOnce(context.Background()))
	groups.AssertNotCalled(t, "Delete", mock.Anything, "g1")
	groups.AssertExpectations(t)
}

func TestReaperNoExpiredGroups(t *testing.T) {
	groups := new(mocks.GroupRepositoryMock)
	photos := new(mocks.PhotoPurgerMock)
	reaper := NewReaper(groups, photos).WithClock(func() time.Time { return testNow })

	groups.On("ListExpiredBefore", mock.Anything, testNow).Return([]*models.Group{}, nil).Once()

	require.NoError(t, reaper.RunOnce(context.Background()))
	photos.AssertNotCalled(t, "PurgeGroupPhotos", mock.Anything, mock.Anything)
}
