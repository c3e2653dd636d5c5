package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Jaydev1110/TripShare/internal/group"
	"github.com/Jaydev1110/TripShare/internal/models"
	"github.com/Jaydev1110/TripShare/internal/notification"
	"github.com/Jaydev1110/TripShare/internal/observability"
)

// Notifier flags groups nearing expiry. Each group receives at most one
// warning in its lifetime, enforced by the warning marker's primary key,
// so repeated or overlapping runs stay quiet.
type Notifier struct {
	groups        group.Repository
	notifications notification.Repository
	threshold     time.Duration
	now           func() time.Time
}

// NewNotifier creates a notifier with the given warning window.
func NewNotifier(groups group.Repository, notifications notification.Repository, threshold time.Duration) *Notifier {
	return &Notifier{
		groups:        groups,
		notifications: notifications,
		threshold:     threshold,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the job clock. Test hook.
func (n *Notifier) WithClock(now func() time.Time) *Notifier {
	n.now = now
	return n
}

// RunOnce performs a single warning pass.
func (n *Notifier) RunOnce(ctx context.Context) error {
	now := n.now()
	expiring, err := n.groups.ListExpiringBetween(ctx, now, now.Add(n.threshold))
	if err != nil {
		return err
	}

	for _, g := range expiring {
		log := logrus.WithFields(logrus.Fields{"group_id": g.ID, "title": g.Title})

		created, err := n.notifications.CreateWarning(ctx, g.ID)
		if err != nil {
			log.WithError(err).Error("failed to record expiry warning")
			continue
		}
		if !created {
			// Already warned in an earlier run.
			continue
		}

		entityType := "GROUP"
		msg := fmt.Sprintf("Your group %q expires on %s", g.Title, g.ExpiresAt.UTC().Format("Jan 2, 15:04 MST"))
		err = n.notifications.Create(ctx, &models.Notification{
			ID:                uuid.NewString(),
			RecipientID:       g.OwnerID,
			Message:           msg,
			RelatedEntityType: &entityType,
			RelatedEntityID:   &g.ID,
		})
		if err != nil {
			// The warning marker is already in place, so the owner will
			// not be notified again for this group. Log loudly.
			log.WithError(err).Error("failed to create owner notification for warned group")
			continue
		}

		observability.WarningsEmitted.Inc()
		log.Info("expiry warning emitted")
	}
	return nil
}

// Run executes RunOnce on a fixed interval until the context is canceled.
func (n *Notifier) Run(ctx context.Context, interval time.Duration) {
	runJob(ctx, interval, "notifier", n.RunOnce)
}
