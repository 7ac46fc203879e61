package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nats-io/nats.go"
	v1 "github.com/taskforge-api/api/v1"
	"github.com/taskforge-api/config"
	"github.com/taskforge-api/database"
	"github.com/taskforge-api/lib/events"
	"github.com/taskforge-api/lib/metrics"
	"github.com/taskforge-api/repositories"
	"github.com/taskforge-api/services"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// app holds the opened resources and the wired services
type app struct {
	cfg      *config.Config
	log      *slog.Logger
	db       *gorm.DB
	nc       *nats.Conn
	metrics  *metrics.Metrics
	services v1.Services
	seed     *services.SeedService
}

// loadConfig reads .env, the optional YAML file and the environment, then applies flag overrides
func loadConfig(flags *globalFlags) (*config.Config, *slog.Logger, error) {
	config.LoadEnv()
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, nil, err
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// newApp opens the database and the optional NATS connection and wires every service
func newApp(cfg *config.Config, log *slog.Logger) (*app, error) {
	db, err := database.Open(cfg.Database, log)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, log: log, db: db}

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			a.Close()
			return nil, err
		}
		log.Info("Database migration completed")
	}

	if cfg.HTTP.MetricsEnabled {
		a.metrics = metrics.New()
	}

	activityOpts := []services.ActivityLogOption{services.WithMetrics(a.metrics)}
	if cfg.NATS.URL != "" {
		nc, err := events.Connect(cfg.NATS.URL, log)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.nc = nc
		activityOpts = append(activityOpts, services.WithPublisher(events.NewNATSPublisher(nc), cfg.NATS.SubjectPrefix))
		log.Info("Publishing activity events", "url", cfg.NATS.URL, "prefix", cfg.NATS.SubjectPrefix)
	}

	userRepo := repositories.NewUserRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	activityRepo := repositories.NewActivityLogRepository(db)

	activity := services.NewActivityLogService(activityRepo, log, activityOpts...)
	tasks := services.NewTaskService(taskRepo, projectRepo, activity, log)
	projects := services.NewProjectService(projectRepo)
	users := services.NewUserService(userRepo, cfg.Security.HashPasswords)

	a.services = v1.Services{
		Tasks:    tasks,
		Projects: projects,
		Comments: services.NewCommentService(commentRepo, userRepo, projectRepo, taskRepo),
		Users:    users,
		Activity: activity,
		Health:   services.NewHealthService(db),
		Metrics:  a.metrics,
		Version:  Version,
	}
	a.seed = services.NewSeedService(userRepo, users, projects, tasks, log)
	return a, nil
}

// Close releases the NATS connection and the database pool
func (a *app) Close() {
	if a.nc != nil {
		if err := a.nc.Drain(); err != nil {
			a.log.Warn("Failed to drain NATS connection", "error", err)
		}
	}
	if err := database.Close(a.db); err != nil {
		a.log.Warn("Failed to close database", "error", err)
	}
}

func runServe(ctx context.Context, flags *globalFlags) error {
	cfg, log, err := loadConfig(flags)
	if err != nil {
		return err
	}
	gin.SetMode(cfg.GinMode)

	a, err := newApp(cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           v1.NewRouter(cfg.HTTP, a.services, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("API running", "url", "http://localhost:"+cfg.Port+cfg.HTTP.APIPrefix, "version", Version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func runMigrate(flags *globalFlags) error {
	cfg, log, err := loadConfig(flags)
	if err != nil {
		return err
	}
	db, err := database.Open(cfg.Database, log)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		return err
	}
	log.Info("Database migration completed")
	return nil
}

func runSeed(ctx context.Context, flags *globalFlags) error {
	cfg, log, err := loadConfig(flags)
	if err != nil {
		return err
	}
	cfg.Database.AutoMigrate = true
	a, err := newApp(cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.seed.Run(ctx)
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}
	log.Info("Seed completed", "user", result.User.Email, "project", result.Project.Name, "removed_users", result.UsersRemoved)
	return nil
}

func runTransfer(ctx context.Context, flags *globalFlags, sourceDriver, sourceURL string, batchSize int) error {
	cfg, log, err := loadConfig(flags)
	if err != nil {
		return err
	}

	sourceCfg := cfg.Database
	sourceCfg.Driver = sourceDriver
	sourceCfg.URL = sourceURL

	source, err := database.NewConnection("source", sourceCfg, log)
	if err != nil {
		return err
	}
	defer database.Close(source.DB)

	target, err := database.NewConnection("target", cfg.Database, log)
	if err != nil {
		return err
	}
	defer database.Close(target.DB)

	if err := target.Migrate(); err != nil {
		return err
	}

	stats, err := database.TransferData(ctx, source, target, batchSize, log)
	if err != nil {
		return err
	}
	log.Info("Transfer summary",
		"users", stats.Users,
		"projects", stats.Projects,
		"tasks", stats.Tasks,
		"comments", stats.Comments,
		"activity_logs", stats.ActivityLogs,
	)
	return nil
}
