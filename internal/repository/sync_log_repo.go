package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/OlegRadinuk/lifestyle-crimea/internal/domain"
)

const maxSyncLogLimit = 100

type SyncLogRepository struct {
	db *gorm.DB
}

func NewSyncLogRepository(db *gorm.DB) *SyncLogRepository {
	return &SyncLogRepository{db: db}
}

type syncLogModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	SourceName   string    `gorm:"column:source_name;not null"`
	ApartmentID  *string   `gorm:"column:apartment_id"`
	Action       string    `gorm:"column:action;not null"`
	Status       string    `gorm:"column:status;not null"`
	EventsCount  int       `gorm:"column:events_count;default:0"`
	ErrorMessage *string   `gorm:"column:error_message"`
	DurationMs   int64     `gorm:"column:duration_ms"`
	CreatedAt    time.Time `gorm:"column:created_at;index:idx_sync_logs_created"`
}

func (syncLogModel) TableName() string { return "sync_logs" }

// Append writes one audit row. Rows are never updated or deleted.
func (r *SyncLogRepository) Append(ctx context.Context, l *domain.SyncLog) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	m := syncLogModel{
		ID:          l.ID,
		SourceName:  l.SourceName,
		Action:      string(l.Action),
		Status:      string(l.Status),
		EventsCount: l.EventsCount,
		DurationMs:  l.DurationMs,
	}
	if l.ApartmentID != "" {
		v := l.ApartmentID
		m.ApartmentID = &v
	}
	if l.ErrorMessage != "" {
		v := l.ErrorMessage
		m.ErrorMessage = &v
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	l.CreatedAt = m.CreatedAt
	return nil
}

// Latest returns the most recent entries, newest first. The limit is
// clamped to keep the admin view bounded.
func (r *SyncLogRepository) Latest(ctx context.Context, limit int) ([]domain.SyncLog, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > maxSyncLogLimit {
		limit = maxSyncLogLimit
	}
	var models []syncLogModel
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.SyncLog, 0, len(models))
	for _, m := range models {
		l := domain.SyncLog{
			ID:          m.ID,
			SourceName:  m.SourceName,
			Action:      domain.SyncAction(m.Action),
			Status:      domain.SyncStatus(m.Status),
			EventsCount: m.EventsCount,
			DurationMs:  m.DurationMs,
			CreatedAt:   m.CreatedAt,
		}
		if m.ApartmentID != nil {
			l.ApartmentID = *m.ApartmentID
		}
		if m.ErrorMessage != nil {
			l.ErrorMessage = *m.ErrorMessage
		}
		out = append(out, l)
	}
	return out, nil
}
