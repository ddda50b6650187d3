package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/OlegRadinuk/lifestyle-crimea/internal/domain"
)

type ApartmentRepository struct {
	db *gorm.DB
}

func NewApartmentRepository(db *gorm.DB) *ApartmentRepository {
	return &ApartmentRepository{db: db}
}

type apartmentModel struct {
	ID               string    `gorm:"column:id;primaryKey"`
	Title            string    `gorm:"column:title;not null"`
	ShortDescription *string   `gorm:"column:short_description"`
	Description      *string   `gorm:"column:description"`
	MaxGuests        int       `gorm:"column:max_guests;not null"`
	Area             *float64  `gorm:"column:area"`
	PriceBase        int64     `gorm:"column:price_base;not null"`
	View             string    `gorm:"column:view"`
	HasTerrace       bool      `gorm:"column:has_terrace"`
	Features         string    `gorm:"column:features"`
	Images           string    `gorm:"column:images"`
	IsActive         bool      `gorm:"column:is_active"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (apartmentModel) TableName() string { return "apartments" }

func toDomainApartment(m apartmentModel) *domain.Apartment {
	a := &domain.Apartment{
		ID:         m.ID,
		Title:      m.Title,
		MaxGuests:  m.MaxGuests,
		PriceBase:  m.PriceBase,
		View:       domain.ApartmentView(m.View),
		HasTerrace: m.HasTerrace,
		IsActive:   m.IsActive,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
		Features:   []string{},
		Images:     []string{},
	}
	if m.ShortDescription != nil {
		a.ShortDescription = *m.ShortDescription
	}
	if m.Description != nil {
		a.Description = *m.Description
	}
	if m.Area != nil {
		a.Area = *m.Area
	}
	if m.Features != "" {
		_ = json.Unmarshal([]byte(m.Features), &a.Features)
	}
	if m.Images != "" {
		_ = json.Unmarshal([]byte(m.Images), &a.Images)
	}
	return a
}

func toApartmentModel(a *domain.Apartment) apartmentModel {
	m := apartmentModel{
		ID:         a.ID,
		Title:      a.Title,
		MaxGuests:  a.MaxGuests,
		PriceBase:  a.PriceBase,
		View:       string(a.View),
		HasTerrace: a.HasTerrace,
		IsActive:   a.IsActive,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
	if a.ShortDescription != "" {
		v := a.ShortDescription
		m.ShortDescription = &v
	}
	if a.Description != "" {
		v := a.Description
		m.Description = &v
	}
	if a.Area > 0 {
		v := a.Area
		m.Area = &v
	}
	features, _ := json.Marshal(a.Features)
	images, _ := json.Marshal(a.Images)
	m.Features = string(features)
	m.Images = string(images)
	return m
}

func (r *ApartmentRepository) Create(ctx context.Context, a *domain.Apartment) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	m := toApartmentModel(a)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*a = *toDomainApartment(m)
	return nil
}

func (r *ApartmentRepository) GetByID(ctx context.Context, id string) (*domain.Apartment, error) {
	var m apartmentModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return toDomainApartment(m), nil
}

func (r *ApartmentRepository) List(ctx context.Context, activeOnly bool) ([]domain.Apartment, error) {
	var models []apartmentModel
	q := r.db.WithContext(ctx).Order("title")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Apartment, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainApartment(m))
	}
	return out, nil
}

// ApartmentUpdate is the explicit update command for an apartment. Each nil
// field is left untouched; the column list below is the complete mutable
// surface, so nothing outside it can be mass-assigned.
type ApartmentUpdate struct {
	Title            *string
	ShortDescription *string
	Description      *string
	MaxGuests        *int
	Area             *float64
	PriceBase        *int64
	View             *string
	HasTerrace       *bool
	Features         []string
	Images           []string
	IsActive         *bool
}

func (r *ApartmentRepository) Update(ctx context.Context, id string, upd ApartmentUpdate) error {
	cols := map[string]interface{}{}
	if upd.Title != nil {
		cols["title"] = *upd.Title
	}
	if upd.ShortDescription != nil {
		cols["short_description"] = *upd.ShortDescription
	}
	if upd.Description != nil {
		cols["description"] = *upd.Description
	}
	if upd.MaxGuests != nil {
		cols["max_guests"] = *upd.MaxGuests
	}
	if upd.Area != nil {
		cols["area"] = *upd.Area
	}
	if upd.PriceBase != nil {
		cols["price_base"] = *upd.PriceBase
	}
	if upd.View != nil {
		cols["view"] = *upd.View
	}
	if upd.HasTerrace != nil {
		cols["has_terrace"] = *upd.HasTerrace
	}
	if upd.Features != nil {
		b, _ := json.Marshal(upd.Features)
		cols["features"] = string(b)
	}
	if upd.Images != nil {
		b, _ := json.Marshal(upd.Images)
		cols["images"] = string(b)
	}
	if upd.IsActive != nil {
		cols["is_active"] = *upd.IsActive
	}
	if len(cols) == 0 {
		return nil
	}
	cols["updated_at"] = time.Now()

	tx := r.db.WithContext(ctx).Model(&apartmentModel{}).Where("id = ?", id).Updates(cols)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ApartmentRepository) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Delete(&apartmentModel{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
