package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Jaydev1110/TripShare/internal/config"
	"github.com/Jaydev1110/TripShare/internal/database"
	"github.com/Jaydev1110/TripShare/internal/group"
	"github.com/Jaydev1110/TripShare/internal/jobs"
	"github.com/Jaydev1110/TripShare/internal/notification"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	groupRepo := group.NewRepository(db)
	notificationRepo := notification.NewRepository(db)

	threshold := time.Duration(cfg.WarningThresholdDays) * 24 * time.Hour
	notifier := jobs.NewNotifier(groupRepo, notificationRepo, threshold)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if os.Getenv("RUN_ONCE") == "true" {
		if err := notifier.RunOnce(ctx); err != nil {
			logrus.WithError(err).Fatal("Notifier run failed")
		}
		return
	}

	logrus.WithField("interval", cfg.NotifyInterval).Info("Expiry notifier starting")
	notifier.Run(ctx, cfg.NotifyInterval)
}
