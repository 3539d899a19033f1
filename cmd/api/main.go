// The api command runs the ETAP learning backend: the subject/topic
// catalog, learner registration, the enrollment & progress engine, and
// the assembled curriculum views behind a REST API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/etap-learning/etap-backend/config"
	"github.com/etap-learning/etap-backend/internal/application/command"
	"github.com/etap-learning/etap-backend/internal/application/query"
	"github.com/etap-learning/etap-backend/internal/domain/curriculum"
	"github.com/etap-learning/etap-backend/internal/domain/enrollment"
	"github.com/etap-learning/etap-backend/internal/infrastructure/external/media"
	"github.com/etap-learning/etap-backend/internal/infrastructure/persistence/postgres"
	"github.com/etap-learning/etap-backend/internal/infrastructure/persistence/redis"
	httpiface "github.com/etap-learning/etap-backend/internal/interface/http"
	"github.com/etap-learning/etap-backend/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real deployments use the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.Options{
		Level: logger.ParseLevel(cfg.Observability.LogLevel),
	}).With(logger.String("app", cfg.App.Name), logger.String("version", cfg.App.Version))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ─────────────────────────────────────────────────────────────────────────
	// PostgreSQL
	// ─────────────────────────────────────────────────────────────────────────
	conn, err := postgres.NewConnectionFromURL(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer conn.Close()

	if err := postgres.NewMigrator(conn).Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	log.Info("database ready")

	curriculumRepo := postgres.NewCurriculumRepository(conn)
	learnerRepo := postgres.NewLearnerRepository(conn)
	enrollmentRepo := postgres.NewEnrollmentRepository(conn)

	// ─────────────────────────────────────────────────────────────────────────
	// Redis (optional)
	// ─────────────────────────────────────────────────────────────────────────
	var viewCache enrollment.ViewCache
	var cacheChecker httpiface.HealthChecker
	if !cfg.Redis.Disabled {
		cache, err := redis.NewCache(redis.Config{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer cache.Close()

		viewCache = redis.NewViewCache(cache)
		cacheChecker = cache
		log.Info("cache ready", logger.String("addr", fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)))
	} else {
		log.Warn("redis disabled, read views are uncached")
	}

	// ─────────────────────────────────────────────────────────────────────────
	// Media gateway (optional)
	// ─────────────────────────────────────────────────────────────────────────
	var uploader curriculum.VideoUploader
	if !cfg.Media.Disabled {
		mediaClient, err := media.NewClient(ctx, media.Config{
			Bucket:          cfg.Media.Bucket,
			CDNDomain:       cfg.Media.CDNDomain,
			CredentialsFile: cfg.Media.CredentialsFile,
		}, log)
		if err != nil {
			return fmt.Errorf("create media client: %w", err)
		}
		defer mediaClient.Close()

		uploader = mediaClient
	} else {
		log.Warn("media gateway disabled, binary video uploads will fail")
	}

	// ─────────────────────────────────────────────────────────────────────────
	// Application layer
	// ─────────────────────────────────────────────────────────────────────────
	deps := httpiface.Dependencies{
		CreateSubjectHandler:   command.NewCreateSubjectHandler(curriculumRepo, viewCache, log),
		CreateTopicHandler:     command.NewCreateTopicHandler(curriculumRepo, uploader, viewCache, log),
		RegisterLearnerHandler: command.NewRegisterLearnerHandler(learnerRepo, log),
		AssignTopicsHandler:    command.NewAssignTopicsHandler(enrollmentRepo, viewCache, log),
		UpdateProgressHandler:  command.NewUpdateProgressHandler(enrollmentRepo, viewCache, log),

		ListSubjectsHandler:          query.NewListSubjectsHandler(curriculumRepo, log),
		ListTopicsHandler:            query.NewListTopicsHandler(curriculumRepo, log),
		GetTopicHandler:              query.NewGetTopicHandler(curriculumRepo, log),
		ListLearnersHandler:          query.NewListLearnersHandler(learnerRepo, log),
		GetFullCurriculumHandler:     query.NewGetFullCurriculumHandler(enrollmentRepo, viewCache, cfg.Redis.ViewTTL, log),
		GetEnrolledCurriculumHandler: query.NewGetEnrolledCurriculumHandler(enrollmentRepo, log),
		ListTopicOfferingsHandler:    query.NewListTopicOfferingsHandler(enrollmentRepo, viewCache, cfg.Redis.ViewTTL, log),

		Logger:       log,
		DBChecker:    conn,
		CacheChecker: cacheChecker,
	}

	// ─────────────────────────────────────────────────────────────────────────
	// HTTP server
	// ─────────────────────────────────────────────────────────────────────────
	serverCfg := httpiface.DefaultConfig()
	serverCfg.Host = cfg.HTTP.Host
	serverCfg.Port = cfg.HTTP.Port
	serverCfg.ReadTimeout = cfg.HTTP.ReadTimeout
	serverCfg.WriteTimeout = cfg.HTTP.WriteTimeout
	serverCfg.IdleTimeout = cfg.HTTP.IdleTimeout
	serverCfg.MaxUploadBytes = cfg.HTTP.MaxUploadBytes
	serverCfg.EnableCORS = cfg.HTTP.EnableCORS
	serverCfg.AllowedOrigins = cfg.HTTP.AllowedOrigins

	server := httpiface.NewServer(serverCfg, deps)
	errCh := server.StartAsync()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("shutdown complete")
	return nil
}
