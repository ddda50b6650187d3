package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/OlegRadinuk/lifestyle-crimea/internal/domain"
)

type ExportTokenRepository struct {
	db *gorm.DB
}

func NewExportTokenRepository(db *gorm.DB) *ExportTokenRepository {
	return &ExportTokenRepository{db: db}
}

type exportTokenModel struct {
	ID           string     `gorm:"column:id;primaryKey"`
	ApartmentID  string     `gorm:"column:apartment_id;not null"`
	Token        string     `gorm:"column:token;uniqueIndex;not null"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	LastAccessed *time.Time `gorm:"column:last_accessed"`
}

func (exportTokenModel) TableName() string { return "export_tokens" }

// Mint creates a new export token for an apartment. Existing tokens stay
// valid.
func (r *ExportTokenRepository) Mint(ctx context.Context, apartmentID string) (*domain.ExportToken, error) {
	m := exportTokenModel{
		ID:          uuid.NewString(),
		ApartmentID: apartmentID,
		Token:       strings.ReplaceAll(uuid.NewString(), "-", ""),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	return &domain.ExportToken{
		ID:          m.ID,
		ApartmentID: m.ApartmentID,
		Token:       m.Token,
		CreatedAt:   m.CreatedAt,
	}, nil
}

// Resolve maps a token to its apartment and touches last_accessed.
func (r *ExportTokenRepository) Resolve(ctx context.Context, token string) (string, error) {
	var m exportTokenModel
	if err := r.db.WithContext(ctx).First(&m, "token = ?", token).Error; err != nil {
		return "", translateNotFound(err)
	}
	now := time.Now()
	r.db.WithContext(ctx).Model(&exportTokenModel{}).
		Where("id = ?", m.ID).
		Update("last_accessed", now)
	return m.ApartmentID, nil
}
