package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/OlegRadinuk/lifestyle-crimea/internal/domain"
)

type IcsSourceRepository struct {
	db *gorm.DB
}

func NewIcsSourceRepository(db *gorm.DB) *IcsSourceRepository {
	return &IcsSourceRepository{db: db}
}

type icsSourceModel struct {
	ID           string     `gorm:"column:id;primaryKey"`
	ApartmentID  string     `gorm:"column:apartment_id;not null;uniqueIndex:idx_sources_pair"`
	SourceName   string     `gorm:"column:source_name;not null;uniqueIndex:idx_sources_pair"`
	IcsURL       string     `gorm:"column:ics_url;not null"`
	IsActive     bool       `gorm:"column:is_active;default:true"`
	LastSync     *time.Time `gorm:"column:last_sync"`
	SyncStatus   string     `gorm:"column:sync_status;default:pending"`
	ErrorMessage *string    `gorm:"column:error_message"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (icsSourceModel) TableName() string { return "ics_sources" }

func toDomainSource(m icsSourceModel) domain.IcsSource {
	s := domain.IcsSource{
		ID:          m.ID,
		ApartmentID: m.ApartmentID,
		SourceName:  m.SourceName,
		IcsURL:      m.IcsURL,
		IsActive:    m.IsActive,
		LastSync:    m.LastSync,
		SyncStatus:  domain.SyncStatus(m.SyncStatus),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.ErrorMessage != nil {
		s.ErrorMessage = *m.ErrorMessage
	}
	return s
}

// Create enforces the one-source-per-(apartment, name) invariant through the
// unique index; violations surface as ErrDuplicateSource.
func (r *IcsSourceRepository) Create(ctx context.Context, s *domain.IcsSource) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.SyncStatus == "" {
		s.SyncStatus = domain.SyncPending
	}
	m := icsSourceModel{
		ID:          s.ID,
		ApartmentID: s.ApartmentID,
		SourceName:  s.SourceName,
		IcsURL:      s.IcsURL,
		IsActive:    s.IsActive,
		SyncStatus:  string(s.SyncStatus),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateSource
		}
		return err
	}
	*s = toDomainSource(m)
	return nil
}

func (r *IcsSourceRepository) GetByID(ctx context.Context, id string) (*domain.IcsSource, error) {
	var m icsSourceModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	s := toDomainSource(m)
	return &s, nil
}

// SourceFilter narrows ListActive; zero values mean "all active sources".
type SourceFilter struct {
	ApartmentID string
	SourceName  string
}

func (r *IcsSourceRepository) ListActive(ctx context.Context, f SourceFilter) ([]domain.IcsSource, error) {
	q := r.db.WithContext(ctx).Where("is_active = ?", true).Order("apartment_id, source_name")
	if f.ApartmentID != "" {
		q = q.Where("apartment_id = ?", f.ApartmentID)
	}
	if f.SourceName != "" {
		q = q.Where("source_name = ?", f.SourceName)
	}
	var models []icsSourceModel
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.IcsSource, 0, len(models))
	for _, m := range models {
		out = append(out, toDomainSource(m))
	}
	return out, nil
}

// SourceWithApartment is the admin list row: a source joined with the title
// of the apartment it feeds.
type SourceWithApartment struct {
	domain.IcsSource
	ApartmentTitle string `json:"apartment_title"`
}

func (r *IcsSourceRepository) ListAll(ctx context.Context) ([]SourceWithApartment, error) {
	type row struct {
		icsSourceModel
		ApartmentTitle string `gorm:"column:apartment_title"`
	}
	var rows []row
	err := r.db.WithContext(ctx).Raw(`
SELECT s.*, a.title AS apartment_title
FROM ics_sources s
JOIN apartments a ON s.apartment_id = a.id
ORDER BY a.title, s.source_name
`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]SourceWithApartment, 0, len(rows))
	for _, m := range rows {
		out = append(out, SourceWithApartment{
			IcsSource:      toDomainSource(m.icsSourceModel),
			ApartmentTitle: m.ApartmentTitle,
		})
	}
	return out, nil
}

// UpdateSyncStatus records the outcome of one sync run. Only the sync
// orchestrator calls this; operators mutate URL/active through Update.
func (r *IcsSourceRepository) UpdateSyncStatus(ctx context.Context, id string, status domain.SyncStatus, errorMessage string) error {
	now := time.Now()
	cols := map[string]interface{}{
		"last_sync":   now,
		"sync_status": string(status),
		"updated_at":  now,
	}
	if errorMessage != "" {
		cols["error_message"] = errorMessage
	} else {
		cols["error_message"] = nil
	}
	res := r.db.WithContext(ctx).Model(&icsSourceModel{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SourceUpdate is the explicit operator-side update command.
type SourceUpdate struct {
	IcsURL   *string
	IsActive *bool
}

func (r *IcsSourceRepository) Update(ctx context.Context, id string, upd SourceUpdate) error {
	cols := map[string]interface{}{}
	if upd.IcsURL != nil {
		cols["ics_url"] = *upd.IcsURL
	}
	if upd.IsActive != nil {
		cols["is_active"] = *upd.IsActive
	}
	if len(cols) == 0 {
		return nil
	}
	cols["updated_at"] = time.Now()
	res := r.db.WithContext(ctx).Model(&icsSourceModel{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *IcsSourceRepository) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Delete(&icsSourceModel{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
