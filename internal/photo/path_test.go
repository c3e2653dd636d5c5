package photo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	require.Equal(t, "beach.jpg", SanitizeFilename("beach.jpg"))
	require.Equal(t, "..etcpasswd", SanitizeFilename("../etc/passwd"))
	require.Equal(t, "mytrip_day-1.png", SanitizeFilename("my trip_day-1.png"))
	require.Equal(t, "upload", SanitizeFilename("???"), "fully stripped names fall back")
}

func TestBuildStoragePath(t *testing.T) {
	at := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	got := BuildStoragePath("g1", "u1", "a photo.jpg", at)
	require.Equal(t, "photos/g1/u1/1749988800_aphoto.jpg", got)
}

func TestThumbPath(t *testing.T) {
	p := BuildStoragePath("g1", "u1", "beach.jpg", time.Unix(100, 0))
	require.Equal(t, "photos/g1/thumbs/100_beach.jpg", ThumbPath("g1", p))
}
