// Package expiry holds the pure time arithmetic for group lifetimes.
// All callers pass times in UTC; no I/O happens here.
package expiry

import "time"

// IsExpired reports whether a group whose expiry is expiresAt has expired
// at the instant now. The boundary is exclusive: a group expiring exactly
// now is not yet expired.
func IsExpired(expiresAt, now time.Time) bool {
	return now.After(expiresAt)
}

// Extend returns the new expiry after adding extendDays to a group.
// The clock restarts from now when the group is already past its expiry,
// so an owner can resurrect an expired group that the reaper has not yet
// collected.
func Extend(currentExpiresAt, now time.Time, extendDays int) time.Time {
	base := currentExpiresAt
	if now.After(base) {
		base = now
	}
	return base.Add(time.Duration(extendDays) * 24 * time.Hour)
}

// InWarningWindow reports whether expiresAt falls strictly between now and
// now+threshold. Already-expired groups are never in the window.
func InWarningWindow(expiresAt, now time.Time, threshold time.Duration) bool {
	return now.Before(expiresAt) && expiresAt.Before(now.Add(threshold))
}
