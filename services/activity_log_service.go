package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/taskforge-api/dto"
	"github.com/taskforge-api/lib/events"
	"github.com/taskforge-api/lib/metrics"
	"github.com/taskforge-api/models"
	"github.com/taskforge-api/repositories"
	"github.com/taskforge-api/utils"
	"gorm.io/datatypes"
)

// RecordInput is one audit entry to append. OldValue and NewValue are stored as JSON.
type RecordInput struct {
	Action    models.ActivityAction
	Message   string
	TaskID    *string
	ProjectID *string
	UserID    *string
	OldValue  any
	NewValue  any
}

// AuditRecorder appends activity log entries
type AuditRecorder interface {
	Record(ctx context.Context, in RecordInput) (models.ActivityLog, error)
}

// ActivityLogService appends and lists activity log entries
type ActivityLogService struct {
	repo          *repositories.ActivityLogRepository
	publisher     events.Publisher
	subjectPrefix string
	metrics       *metrics.Metrics
	log           *slog.Logger
	now           func() time.Time
}

// ActivityLogOption customises an ActivityLogService
type ActivityLogOption func(*ActivityLogService)

// WithPublisher sends every recorded entry to p under "<prefix>.<action>"
func WithPublisher(p events.Publisher, prefix string) ActivityLogOption {
	return func(s *ActivityLogService) {
		s.publisher = p
		s.subjectPrefix = prefix
	}
}

// WithMetrics counts audit writes and publishes
func WithMetrics(m *metrics.Metrics) ActivityLogOption {
	return func(s *ActivityLogService) { s.metrics = m }
}

// WithActivityClock replaces the clock used for the "last N days" window
func WithActivityClock(now func() time.Time) ActivityLogOption {
	return func(s *ActivityLogService) { s.now = now }
}

// NewActivityLogService creates a new activity log service instance
func NewActivityLogService(repo *repositories.ActivityLogRepository, log *slog.Logger, opts ...ActivityLogOption) *ActivityLogService {
	s := &ActivityLogService{
		repo:      repo,
		publisher: events.Nop{},
		log:       log,
		now:       utcNow,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record appends one entry verbatim, then publishes it
func (s *ActivityLogService) Record(ctx context.Context, in RecordInput) (models.ActivityLog, error) {
	entry := models.ActivityLog{
		Action:    in.Action,
		Message:   utils.NilIfEmpty(in.Message),
		TaskID:    in.TaskID,
		ProjectID: in.ProjectID,
		UserID:    in.UserID,
	}
	var err error
	if entry.OldValue, err = snapshot(in.OldValue); err != nil {
		return models.ActivityLog{}, err
	}
	if entry.NewValue, err = snapshot(in.NewValue); err != nil {
		return models.ActivityLog{}, err
	}

	err = s.repo.Create(ctx, &entry)
	s.metrics.AuditRecorded(string(in.Action), err)
	if err != nil {
		return models.ActivityLog{}, err
	}

	if s.subjectPrefix != "" {
		subject := events.Subject(s.subjectPrefix, string(entry.Action))
		perr := s.publisher.Publish(ctx, subject, entry)
		s.metrics.EventPublished(perr)
		if perr != nil {
			s.log.Warn("Failed to publish activity event", "subject", subject, "id", entry.ID, "error", perr)
		}
	}
	return entry, nil
}

// FindAllByEntity lists entries newest first with their related user, task and project
func (s *ActivityLogService) FindAllByEntity(ctx context.Context, q dto.ActivityQuery) (dto.Envelope[models.ActivityLog], error) {
	criteria := repositories.ActivityCriteria{
		TaskID:    q.TaskID,
		ProjectID: q.ProjectID,
		UserID:    q.UserID,
		Action:    q.Action,
	}
	if q.Days > 0 {
		since := utils.DaysAgo(s.now(), q.Days)
		criteria.CreatedAfter = &since
	}
	logs, total, err := s.repo.FindWithPagination(ctx, criteria, repositories.Page{Offset: q.Offset(), Limit: q.Limit})
	if err != nil {
		return dto.Envelope[models.ActivityLog]{}, err
	}
	return dto.NewEnvelope(logs, q.Pagination, total), nil
}

func snapshot(v any) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func utcNow() time.Time {
	return time.Now().UTC()
}
