package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	httpapi "clubsphere-backend/internal/api/http"
	"clubsphere-backend/internal/cache"
	"clubsphere-backend/internal/config"
	"clubsphere-backend/internal/jobs"
	"clubsphere-backend/internal/logger"
	"clubsphere-backend/internal/repository/postgres"
	"clubsphere-backend/internal/scheduler"
	"clubsphere-backend/internal/security"
	"clubsphere-backend/internal/service"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("starting clubsphere backend", "address", cfg.GetServerAddress(), "log_level", cfg.Log.Level)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("failed to open database", "error", err)
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("database connection established", "host", cfg.Database.Host, "database", cfg.Database.Database)

	if err := postgres.Migrate(db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		log.Fatalf("Failed to run migrations: %v", err)
	}

	store := postgres.NewStore(db)

	tokens := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Minute,
	)

	emailSvc := service.NewEmailService(cfg.Email)
	authSvc := service.NewAuthService(store.UserRepository, tokens)
	clubSvc := service.NewClubService(store.ClubRepository, store.MembershipRequestRepository)
	workflowSvc := service.NewWorkflowService(
		store.ClubRepository,
		store.MembershipRequestRepository,
		store.UserRepository,
		store.NotificationRepository,
		emailSvc,
		cfg.Workflow,
	)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	mirror := cache.NewMirror(store.ClubRepository, store.MembershipRequestRepository, time.Minute)
	if err := mirror.Refresh(context.Background(), "manual"); err != nil {
		logger.Warn("initial mirror refresh failed, continuing with empty projections", "error", err)
	}

	jobRunner := jobs.NewJobRunner(cfg, mirror, store.ClubRepository, store.MembershipRequestRepository, store.UserRepository, emailSvc)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	authHandler := httpapi.NewAuthHandler(authSvc)
	clubHandler := httpapi.NewClubHandler(clubSvc, workflowSvc, mirror)
	noteHandler := httpapi.NewNotificationHandler(noteSvc)
	router := httpapi.NewRouter(tokens, authHandler, clubHandler, noteHandler)

	if cfg.Telemetry.MetricsPort > 0 {
		metricsAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Telemetry.MetricsPort)
		go func() {
			metricsMux := http.NewServeMux()
			metricsMux.Handle("/metrics", promhttp.Handler())
			logger.Info("metrics server listening", "address", metricsAddr)
			if err := http.ListenAndServe(metricsAddr, metricsMux); err != nil {
				logger.Error("metrics server error", "error", err)
			}
		}()
	}

	logger.Info("http server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("http server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
