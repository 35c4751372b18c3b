package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"alcyxob/workout-planner/internal/api"
	"alcyxob/workout-planner/internal/catalog"
	"alcyxob/workout-planner/internal/config"
	"alcyxob/workout-planner/internal/generator"
	"alcyxob/workout-planner/internal/logging"
	"alcyxob/workout-planner/internal/metrics"
	"alcyxob/workout-planner/internal/repository"
	"alcyxob/workout-planner/internal/repository/mongo"
	"alcyxob/workout-planner/internal/service"
	"alcyxob/workout-planner/internal/storage"
)

// @title Workout Planner API
// @version 1.0
// @description Generates personalised workout plans and tracks completed sessions.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		slog.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	logger.Info("starting workout planner", slog.String("address", cfg.Server.Address))

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(context.Background(), cfg.Database.URI, logger)
	if err != nil {
		return fmt.Errorf("connect to MongoDB: %w", err)
	}
	defer func() {
		logger.Info("disconnecting MongoDB")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			logger.Error("disconnect MongoDB", slog.Any("error", err))
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)

	// Index creation runs in the background; failures are logged, not fatal
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		mongo.EnsureIndexes(ctx, appDB)
		logger.Info("index creation completed")
	}()

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	planRepo := mongo.NewMongoWorkoutPlanRepository(appDB)
	logRepo := mongo.NewMongoWorkoutLogRepository(appDB)

	cat, exerciseRepo, err := loadCatalog(cfg.Catalog, appDB, logger)
	if err != nil {
		return err
	}

	// --- Initialize Storage ---
	var fileStorage storage.FileStorage
	if cfg.S3.Enabled {
		fileStorage, err = storage.NewS3Storage(context.Background(), cfg.S3, logger)
		if err != nil {
			return fmt.Errorf("init S3 storage: %w", err)
		}
	} else {
		logger.Warn("object storage disabled; avatar upload and export sharing are unavailable")
	}

	// --- Metrics ---
	var m *metrics.Metrics
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		reg, collectors := metrics.NewRegistry()
		m = collectors
		metricsHandler = metrics.HandlerFor(reg)
	}

	// --- Initialize Services ---
	opts := []generator.Option{
		generator.WithPolicy(generator.Policy{AllowUnrecognizedBasic: cfg.Generator.AllowUnrecognizedBasic}),
	}
	if cfg.Generator.Seed != 0 {
		opts = append(opts, generator.WithSeed(cfg.Generator.Seed))
	}
	engine := service.NewEngine(cat, opts...)

	workouts := service.NewWorkoutService(engine, userRepo, planRepo, logRepo, m, logger)
	services := api.Services{
		Auth:     service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration, logger),
		Accounts: service.NewAccountService(userRepo, planRepo, logRepo, fileStorage, logger),
		Workouts: workouts,
		Catalog:  service.NewCatalogService(engine, exerciseRepo, logger),
		Exports:  service.NewExportService(workouts, fileStorage, logger),
	}

	// --- Initialize Gin Engine ---
	if !strings.EqualFold(cfg.Log.Level, "debug") {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(logger, m, metricsHandler)
	api.SetupRoutes(router, cfg.JWT.Secret, services, logger)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		logger.Info("shutting down", slog.String("signal", sig.String()))
	}

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	logger.Info("server exited")
	return nil
}

// loadCatalog resolves the configured catalog source. The exercise repository is only returned
// for the mongo source, where an empty collection is seeded with the built-in catalog.
func loadCatalog(cfg config.CatalogConfig, db *mongodriver.Database, logger *slog.Logger) (*catalog.Catalog, repository.ExerciseRepository, error) {
	switch cfg.Source {
	case config.CatalogFile:
		cat, err := catalog.LoadFile(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("catalog loaded from file", slog.String("path", cfg.Path), slog.Int("exercises", cat.Len()))
		return cat, nil, nil

	case config.CatalogMongo:
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		repo := mongo.NewMongoExerciseRepository(db)
		n, err := repo.Count(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("count exercises: %w", err)
		}
		if n == 0 {
			def, err := catalog.Default()
			if err != nil {
				return nil, nil, err
			}
			if err := repo.ReplaceAll(ctx, def.All()); err != nil {
				return nil, nil, fmt.Errorf("seed exercises: %w", err)
			}
			logger.Info("seeded empty exercise collection", slog.Int("exercises", def.Len()))
		}
		cat, err := catalog.FromLister(ctx, repo)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("catalog loaded from database", slog.Int("exercises", cat.Len()))
		return cat, repo, nil

	default:
		cat, err := catalog.Default()
		if err != nil {
			return nil, nil, err
		}
		return cat, nil, nil
	}
}
