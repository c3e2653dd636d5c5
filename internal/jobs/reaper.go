// Package jobs holds the timer-driven maintenance tasks. They share the
// store interfaces with the request path but no in-process state.
package jobs

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Jaydev1110/TripShare/internal/group"
	"github.com/Jaydev1110/TripShare/internal/observability"
)

// PhotoPurger removes all photo metadata and blobs of a group.
type PhotoPurger interface {
	PurgeGroupPhotos(ctx context.Context, groupID string) error
}

// Reaper deletes expired groups together with their photos and blobs.
// Runs are idempotent: a group deleted by an earlier run or by its owner
// is simply absent from the next scan.
type Reaper struct {
	groups group.Repository
	photos PhotoPurger
	now    func() time.Time
}

// NewReaper creates a reaper over the shared stores.
func NewReaper(groups group.Repository, photos PhotoPurger) *Reaper {
	return &Reaper{
		groups: groups,
		photos: photos,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the job clock. Test hook.
func (r *Reaper) WithClock(now func() time.Time) *Reaper {
	r.now = now
	return r
}

// RunOnce performs a single reap pass.
func (r *Reaper) RunOnce(ctx context.Context) error {
	expired, err := r.groups.ListExpiredBefore(ctx, r.now())
	if err != nil {
		return err
	}
	if len(expired) == 0 {
		return nil
	}

	logrus.WithField("count", len(expired)).Info("reaping expired groups")

	for _, g := range expired {
		log := logrus.WithFields(logrus.Fields{"group_id": g.ID, "title": g.Title})

		// Photos go before the group row; a photo referencing a deleted
		// group could never be cleaned up afterwards.
		if err := r.photos.PurgeGroupPhotos(ctx, g.ID); err != nil {
			observability.ReaperErrors.Inc()
			log.WithError(err).Error("failed to purge group photos, skipping group")
			continue
		}

		if err := r.groups.Delete(ctx, g.ID); err != nil {
			observability.ReaperErrors.Inc()
			log.WithError(err).Error("failed to delete group")
			continue
		}

		observability.GroupsReaped.Inc()
		log.Info("deleted expired group")
	}
	return nil
}

// Run executes RunOnce on a fixed interval until the context is canceled.
// The first pass happens immediately.
func (r *Reaper) Run(ctx context.Context, interval time.Duration) {
	runJob(ctx, interval, "reaper", r.RunOnce)
}

func runJob(ctx context.Context, interval time.Duration, name string, fn func(context.Context) error) {
	run := func() {
		if err := fn(ctx); err != nil {
			logrus.WithError(err).WithField("job", name).Error("job run failed")
		}
	}

	run()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}
