// Package access holds the stateless authorization decisions. Services
// call these before mutating or returning anything group- or photo-scoped.
package access

import "github.com/Jaydev1110/TripShare/internal/models"

// CanManageGroup reports whether the user owns the group. Approval,
// extension and deletion are owner-only.
func CanManageGroup(userID string, group *models.Group) bool {
	return group != nil && group.OwnerID == userID
}

// CanViewGroupContents reports whether the membership grants access to the
// group's members and photos. A missing or unapproved membership does not.
func CanViewGroupContents(membership *models.Membership) bool {
	return membership != nil && membership.Approved
}

// CanDeletePhoto reports whether the user may delete the photo: either the
// uploader or the owner of the group the photo belongs to.
func CanDeletePhoto(userID string, photo *models.Photo, group *models.Group) bool {
	if photo == nil {
		return false
	}
	if photo.UploaderID == userID {
		return true
	}
	return CanManageGroup(userID, group)
}
