package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taskforge-api/config"
	"github.com/taskforge-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Connection is a named database handle used when moving data between databases
type Connection struct {
	DB   *gorm.DB
	Name string
}

// NewConnection opens a named connection
func NewConnection(name string, cfg config.DatabaseConfig, log *slog.Logger) (*Connection, error) {
	db, err := Open(cfg, log.With("connection", name))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", name, err)
	}
	return &Connection{DB: db, Name: name}, nil
}

// Migrate migrates the database schema
func (c *Connection) Migrate() error {
	if err := Migrate(c.DB); err != nil {
		return fmt.Errorf("failed to migrate %s database: %w", c.Name, err)
	}
	return nil
}

// TransferStats counts the rows copied per table
type TransferStats struct {
	Users        int64
	Projects     int64
	Tasks        int64
	Comments     int64
	ActivityLogs int64
}

// TransferData copies every row from source to target in foreign-key order.
// The target schema must already exist.
func TransferData(ctx context.Context, source, target *Connection, batchSize int, log *slog.Logger) (TransferStats, error) {
	var stats TransferStats
	if batchSize <= 0 {
		batchSize = 500
	}
	log.Info("Starting data transfer", "source", source.Name, "target", target.Name)

	var err error
	if stats.Users, err = copyTable[models.User](ctx, source.DB, target.DB, batchSize); err != nil {
		return stats, fmt.Errorf("failed to transfer users: %w", err)
	}
	log.Info("Transferred users", "count", stats.Users)

	if stats.Projects, err = copyTable[models.Project](ctx, source.DB, target.DB, batchSize); err != nil {
		return stats, fmt.Errorf("failed to transfer projects: %w", err)
	}
	log.Info("Transferred projects", "count", stats.Projects)

	if stats.Tasks, err = copyTable[models.Task](ctx, source.DB, target.DB, batchSize); err != nil {
		return stats, fmt.Errorf("failed to transfer tasks: %w", err)
	}
	log.Info("Transferred tasks", "count", stats.Tasks)

	if stats.Comments, err = copyTable[models.Comment](ctx, source.DB, target.DB, batchSize); err != nil {
		return stats, fmt.Errorf("failed to transfer comments: %w", err)
	}
	log.Info("Transferred comments", "count", stats.Comments)

	if stats.ActivityLogs, err = copyTable[models.ActivityLog](ctx, source.DB, target.DB, batchSize); err != nil {
		return stats, fmt.Errorf("failed to transfer activity logs: %w", err)
	}
	log.Info("Transferred activity logs", "count", stats.ActivityLogs)

	log.Info("Data transfer completed")
	return stats, nil
}

func copyTable[T any](ctx context.Context, source, target *gorm.DB, batchSize int) (int64, error) {
	var batch []T
	var copied int64
	result := source.WithContext(ctx).FindInBatches(&batch, batchSize, func(_ *gorm.DB, _ int) error {
		if err := target.WithContext(ctx).Omit(clause.Associations).Create(&batch).Error; err != nil {
			return err
		}
		copied += int64(len(batch))
		return nil
	})
	return copied, result.Error
}
