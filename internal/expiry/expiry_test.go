package expiry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestIsExpired(t *testing.T) {
	require.False(t, IsExpired(now.Add(time.Second), now))
	require.False(t, IsExpired(now, now), "expiring exactly now is not expired")
	require.True(t, IsExpired(now.Add(-time.Second), now))
}

func TestExtendFromLiveGroup(t *testing.T) {
	expiresAt := now.Add(48 * time.Hour)
	got := Extend(expiresAt, now, 3)
	require.Equal(t, expiresAt.Add(72*time.Hour), got)
}

func TestExtendResetsClockForExpiredGroup(t *testing.T) {
	expiresAt := now.Add(-10 * 24 * time.Hour)
	got := Extend(expiresAt, now, 7)
	require.Equal(t, now.Add(7*24*time.Hour), got, "stale expiry must not carry over")
}

func TestExtendAtExactExpiry(t *testing.T) {
	got := Extend(now, now, 1)
	require.Equal(t, now.Add(24*time.Hour), got)
}

func TestInWarningWindow(t *testing.T) {
	threshold := 24 * time.Hour

	require.True(t, InWarningWindow(now.Add(time.Hour), now, threshold))
	require.False(t, InWarningWindow(now.Add(-time.Hour), now, threshold), "expired group never warns")
	require.False(t, InWarningWindow(now.Add(25*time.Hour), now, threshold))
	require.False(t, InWarningWindow(now, now, threshold), "boundary is exclusive")
	require.False(t, InWarningWindow(now.Add(threshold), now, threshold), "boundary is exclusive")
}
