package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Jaydev1110/TripShare/docs"
	"github.com/Jaydev1110/TripShare/internal/auth"
	"github.com/Jaydev1110/TripShare/internal/config"
	"github.com/Jaydev1110/TripShare/internal/database"
	"github.com/Jaydev1110/TripShare/internal/group"
	"github.com/Jaydev1110/TripShare/internal/notification"
	"github.com/Jaydev1110/TripShare/internal/observability"
	"github.com/Jaydev1110/TripShare/internal/photo"
	"github.com/Jaydev1110/TripShare/internal/storage"
	"github.com/Jaydev1110/TripShare/internal/user"
	mw "github.com/Jaydev1110/TripShare/pkg/middleware"
)

// @title        TripShare API
// @version      1.0
// @description  Time-bounded photo sharing groups with owner-approved membership.
// @BasePath     /api/v1
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	logrus.Info("Connected to database successfully")

	blobs, err := storage.NewS3Store(storage.S3Options{
		Bucket:   cfg.S3Bucket,
		Region:   cfg.S3Region,
		Endpoint: cfg.S3Endpoint,
	})
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize blob storage")
	}

	// Identity provider strategy, selected once at startup
	provider := newProvider(cfg)

	// User feature
	userRepo := user.NewRepository(db)
	authHandler := auth.NewHandler(provider, userRepo)

	// Group feature
	groupRepo := group.NewRepository(db)
	codeGen := group.NewCodeGenerator(cfg.CodeLength)

	// Photo feature
	photoRepo := photo.NewRepository(db)
	thumbs := storage.NewImageThumbnailer()
	photoService := photo.NewService(photoRepo, groupRepo, blobs, thumbs, cfg.MaxUploadBytes)
	photoHandler := photo.NewHandler(photoService, cfg.MaxUploadBytes)

	groupService := group.NewService(groupRepo, photoService, codeGen, cfg.JoinLinkBase)
	groupHandler := group.NewHandler(groupService)

	// Notification feature
	notificationRepo := notification.NewRepository(db)
	notificationHandler := notification.NewHandler(notificationRepo)

	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(observability.HTTPMetrics)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	requireAuth := mw.Auth(provider)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes())

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/auth/me", authHandler.Me)
			r.Mount("/groups", groupHandler.Routes())
			r.Mount("/photos", photoHandler.Routes())
			r.Mount("/notifications", notificationHandler.Routes())
		})
	})

	logrus.WithField("port", cfg.Port).Info("Server starting")
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logrus.WithError(err).Fatal("Server failed to start")
	}
}

// newProvider picks the identity provider implementation from config.
func newProvider(cfg *config.Config) auth.Provider {
	switch cfg.AuthProvider {
	case "gotrue":
		return auth.NewGoTrueProvider(cfg.AuthURL, cfg.AuthAPIKey)
	default:
		logrus.Warn("Using mock identity provider; do not run this in production")
		return auth.NewMockProvider()
	}
}
