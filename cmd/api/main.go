package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/Thusharawathanan99/gilded-grooming/cmd/mainconfig"
	"github.com/Thusharawathanan99/gilded-grooming/internal/api/router"
	"github.com/Thusharawathanan99/gilded-grooming/internal/appointments"
	"github.com/Thusharawathanan99/gilded-grooming/internal/auth"
	"github.com/Thusharawathanan99/gilded-grooming/internal/booking"
	"github.com/Thusharawathanan99/gilded-grooming/internal/cache"
	appconfig "github.com/Thusharawathanan99/gilded-grooming/internal/config"
	"github.com/Thusharawathanan99/gilded-grooming/internal/customers"
	"github.com/Thusharawathanan99/gilded-grooming/internal/dashboard"
	"github.com/Thusharawathanan99/gilded-grooming/internal/gallery"
	"github.com/Thusharawathanan99/gilded-grooming/internal/notify"
	"github.com/Thusharawathanan99/gilded-grooming/internal/observability/metrics"
	"github.com/Thusharawathanan99/gilded-grooming/internal/services"
	"github.com/Thusharawathanan99/gilded-grooming/internal/settings"
	"github.com/Thusharawathanan99/gilded-grooming/internal/sitecontent"
	"github.com/Thusharawathanan99/gilded-grooming/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting gilded-grooming API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	if cfg.DatabaseURL == "" {
		logger.Error("DATABASE_URL is required")
		os.Exit(1)
	}
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to create pgx pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// The dashboard issues its counts through database/sql.
	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, cache disabled", "error", err)
			redisClient = nil
		}
	}
	cacheStore := cache.New(redisClient, cfg.CacheTTL, logger)
	// The public site payload is assembled from these entities, so their
	// mutations must discard it too.
	cacheStore.DependOn("site", "settings", "services", "gallery")

	reg := prometheus.NewRegistry()
	siteMetrics := metrics.NewSiteMetrics(reg)

	awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}

	var imageStore *gallery.ImageStore
	if cfg.GalleryBucket != "" {
		imageStore = gallery.NewImageStore(s3.NewFromConfig(awsCfg), cfg.GalleryBucket, cfg.GalleryBaseURL, logger)
	}

	var emailSender notify.EmailSender
	switch cfg.EmailProvider {
	case "ses":
		emailSender = notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.NotifyFromEmail,
			FromName:  cfg.NotifyFromName,
		}, logger)
	case "sendgrid":
		emailSender = notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.NotifyFromEmail,
			FromName:  cfg.NotifyFromName,
		}, logger)
	default:
		emailSender = notify.NewStubEmailSender(logger)
	}
	notifier := notify.NewService(emailSender, cfg.BookingAlertEmail, logger)

	appointmentsRepo := appointments.NewPostgresRepository(pool)
	customersRepo := customers.NewPostgresRepository(pool)
	servicesRepo := services.NewPostgresRepository(pool)
	galleryRepo := gallery.NewPostgresRepository(pool)
	settingsRepo := settings.NewPostgresRepository(pool)
	authRepo := auth.NewPostgresRepository(pool)

	r := router.New(&router.Config{
		Logger:              logger,
		BookingHandler:      booking.NewHandler(appointmentsRepo, cacheStore, notifier, siteMetrics, logger),
		AuthHandler:         auth.NewHandler(authRepo, cfg.AdminJWTSecret, cfg.AdminTokenTTL, logger),
		SiteHandler:         sitecontent.NewHandler(settingsRepo, servicesRepo, galleryRepo, cacheStore, siteMetrics, logger),
		AppointmentsHandler: appointments.NewHandler(appointmentsRepo, cacheStore, siteMetrics, logger),
		CustomersHandler:    customers.NewHandler(customersRepo, cacheStore, siteMetrics, logger),
		ServicesHandler:     services.NewHandler(servicesRepo, cacheStore, siteMetrics, logger),
		GalleryHandler:      gallery.NewHandler(galleryRepo, imageStore, cacheStore, siteMetrics, logger),
		SettingsHandler:     settings.NewHandler(settingsRepo, cacheStore, siteMetrics, logger),
		DashboardHandler:    dashboard.NewHandler(db, logger),
		AdminAuthSecret:     cfg.AdminJWTSecret,
		MetricsHandler:      promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
