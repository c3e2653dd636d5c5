package photo

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// safeFilenameChars are the only non-alphanumeric characters kept when
// sanitizing an uploaded filename.
const safeFilenameChars = "._-"

// SanitizeFilename strips everything but alphanumerics, dots, dashes and
// underscores. The storage path is built by the server, so a hostile
// filename can never traverse outside the group's prefix.
func SanitizeFilename(filename string) string {
	var b strings.Builder
	for _, c := range filename {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteRune(c)
		case strings.ContainsRune(safeFilenameChars, c):
			b.WriteRune(c)
		}
	}
	if b.Len() == 0 {
		return "upload"
	}
	return b.String()
}

// BuildStoragePath constructs the blob key for an upload:
// photos/<groupID>/<uploaderID>/<unix>_<sanitized-filename>.
// The timestamp plus uploader scoping keeps concurrent uploads of the
// same filename from colliding.
func BuildStoragePath(groupID, uploaderID, filename string, now time.Time) string {
	return fmt.Sprintf("photos/%s/%s/%d_%s", groupID, uploaderID, now.UTC().Unix(), SanitizeFilename(filename))
}

// ThumbPath derives the thumbnail key for a photo's storage path.
func ThumbPath(groupID, storagePath string) string {
	return fmt.Sprintf("photos/%s/thumbs/%s", groupID, path.Base(storagePath))
}
