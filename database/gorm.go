package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taskforge-api/config"
	"github.com/taskforge-api/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "modernc.org/sqlite" // pure go sqlite driver, registered as "sqlite"
)

const sqliteDriverName = "sqlite"

// Dialector picks the GORM dialector for the configured driver
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case config.DriverPostgres:
		return postgres.Open(dsn), nil
	case config.DriverSQLite:
		return sqlite.New(sqlite.Config{
			DriverName: sqliteDriverName,
			DSN:        withForeignKeys(dsn),
		}), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", driver)
}

// SQLite only enforces referential constraints when asked to, per connection
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

// Open sets up the GORM database connection
func Open(cfg config.DatabaseConfig, log *slog.Logger) (*gorm.DB, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database URL cannot be empty")
	}
	dialector, err := Dialector(cfg.Driver, cfg.URL)
	if err != nil {
		return nil, err
	}

	// Configure GORM logger on top of slog
	level := logger.Warn
	if log.Enabled(context.Background(), slog.LevelDebug) {
		level = logger.Info
	}
	gormLogger := logger.New(
		slog.NewLogLogger(log.Handler(), slog.LevelDebug),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get and configure the underlying SQL DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get SQL DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)
	if cfg.Driver == config.DriverSQLite {
		// a single writer avoids SQLITE_BUSY and keeps in-memory databases alive
		sqlDB.SetMaxOpenConns(1)
	}

	log.Info("Connected to database", "driver", cfg.Driver)
	if version, err := serverVersion(db, cfg.Driver); err == nil {
		log.Debug("Database version", "version", version)
	}
	return db, nil
}

func serverVersion(db *gorm.DB, driver string) (string, error) {
	query := "SELECT version()"
	if driver == config.DriverSQLite {
		query = "SELECT sqlite_version()"
	}
	var version string
	err := db.Raw(query).Scan(&version).Error
	return version, err
}

// Migrate creates or updates the schema for every model
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	return nil
}

// Ping checks that the database answers
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
