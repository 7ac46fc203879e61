package services

import (
	"context"
	"time"

	"github.com/taskforge-api/database"
	"github.com/taskforge-api/dto"
	"github.com/taskforge-api/utils"
	"gorm.io/gorm"
)

const healthMessage = "Health Check OK"

// HealthService answers liveness and database probes
type HealthService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewHealthService creates a new health service instance
func NewHealthService(db *gorm.DB) *HealthService {
	return &HealthService{db: db, now: utcNow}
}

// Check reports liveness. It never touches the database.
func (s *HealthService) Check() dto.HealthResponse {
	return dto.HealthResponse{
		OK:        true,
		Timestamp: utils.FormatTimestamp(s.now()),
		Message:   healthMessage,
	}
}

// CheckDatabase pings the database with a short deadline
func (s *HealthService) CheckDatabase(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return database.Ping(ctx, s.db)
}
