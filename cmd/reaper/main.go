package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Jaydev1110/TripShare/internal/config"
	"github.com/Jaydev1110/TripShare/internal/database"
	"github.com/Jaydev1110/TripShare/internal/group"
	"github.com/Jaydev1110/TripShare/internal/jobs"
	"github.com/Jaydev1110/TripShare/internal/photo"
	"github.com/Jaydev1110/TripShare/internal/storage"
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

	blobs, err := storage.NewS3Store(storage.S3Options{
		Bucket:   cfg.S3Bucket,
		Region:   cfg.S3Region,
		Endpoint: cfg.S3Endpoint,
	})
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize blob storage")
	}

	groupRepo := group.NewRepository(db)
	photoRepo := photo.NewRepository(db)
	photoService := photo.NewService(photoRepo, groupRepo, blobs, storage.NewImageThumbnailer(), cfg.MaxUploadBytes)

	reaper := jobs.NewReaper(groupRepo, photoService)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if os.Getenv("RUN_ONCE") == "true" {
		if err := reaper.RunOnce(ctx); err != nil {
			logrus.WithError(err).Fatal("Reaper run failed")
		}
		return
	}

	logrus.WithField("interval", cfg.ReapInterval).Info("Reaper starting")
	reaper.Run(ctx, cfg.ReapInterval)
}
