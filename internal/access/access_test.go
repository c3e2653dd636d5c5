package access

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Jaydev1110/TripShare/internal/models"
)

func TestCanManageGroup(t *testing.T) {
	group := &models.Group{ID: "g1", OwnerID: "alice"}

	require.True(t, CanManageGroup("alice", group))
	require.False(t, CanManageGroup("bob", group))
	require.False(t, CanManageGroup("alice", nil))
}

func TestCanViewGroupContents(t *testing.T) {
	require.True(t, CanViewGroupContents(&models.Membership{Approved: true}))
	require.False(t, CanViewGroupContents(&models.Membership{Approved: false}))
	require.False(t, CanViewGroupContents(nil))
}

func TestCanDeletePhoto(t *testing.T) {
	group := &models.Group{ID: "g1", OwnerID: "alice"}
	photo := &models.Photo{ID: "p1", GroupID: "g1", UploaderID: "bob"}

	require.True(t, CanDeletePhoto("bob", photo, group), "uploader may delete")
	require.True(t, CanDeletePhoto("alice", photo, group), "group owner may delete")
	require.False(t, CanDeletePhoto("carol", photo, group))
	require.False(t, CanDeletePhoto("alice", nil, group))
}
