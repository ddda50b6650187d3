package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/OlegRadinuk/lifestyle-crimea/internal/domain"
)

type ExternalBookingRepository struct {
	db *gorm.DB
}

func NewExternalBookingRepository(db *gorm.DB) *ExternalBookingRepository {
	return &ExternalBookingRepository{db: db}
}

type externalBookingModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	ApartmentID string    `gorm:"column:apartment_id;not null;index:idx_external_pair"`
	SourceName  string    `gorm:"column:source_name;not null;index:idx_external_pair"`
	ExternalID  *string   `gorm:"column:external_id"`
	CheckIn     string    `gorm:"column:check_in;type:date;not null;index:idx_external_dates"`
	CheckOut    string    `gorm:"column:check_out;type:date;not null;index:idx_external_dates"`
	RawData     *string   `gorm:"column:raw_data"`
	ImportedAt  time.Time `gorm:"column:imported_at"`
}

func (externalBookingModel) TableName() string { return "external_bookings" }

// ReplaceFuture swaps the current-and-future record set for one
// (apartment, source) pair in a single transaction. Feeds are authoritative
// snapshots, not diffs: an interval the feed no longer reports must stop
// blocking. Past rows (check_out < today) are retained for audit and are
// never re-validated against the feed. On error or context cancellation the
// transaction rolls back and the previous snapshot stays intact.
func (r *ExternalBookingRepository) ReplaceFuture(ctx context.Context, apartmentID, sourceName string, records []domain.ExternalBooking, today string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("apartment_id = ? AND source_name = ? AND check_out >= ?",
			apartmentID, sourceName, today).
			Delete(&externalBookingModel{}).Error
		if err != nil {
			return err
		}

		now := time.Now()
		for i := range records {
			rec := &records[i]
			m := externalBookingModel{
				ID:          uuid.NewString(),
				ApartmentID: apartmentID,
				SourceName:  sourceName,
				CheckIn:     rec.Dates.CheckIn,
				CheckOut:    rec.Dates.CheckOut,
				ImportedAt:  now,
			}
			if rec.ExternalID != "" {
				v := rec.ExternalID
				m.ExternalID = &v
			}
			if rec.RawData != "" {
				v := rec.RawData
				m.RawData = &v
			}
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
			rec.ID = m.ID
			rec.ImportedAt = now
		}
		return nil
	})
}

// GetBlocked returns current-and-future external intervals for the
// apartment, tagged with their source name, ordered by check-in.
func (r *ExternalBookingRepository) GetBlocked(ctx context.Context, apartmentID, from string) ([]domain.BlockedRange, error) {
	var models []externalBookingModel
	err := r.db.WithContext(ctx).
		Where("apartment_id = ? AND check_out >= ?", apartmentID, from).
		Order("check_in").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.BlockedRange, 0, len(models))
	for _, m := range models {
		out = append(out, domain.BlockedRange{
			DateRange: domain.DateRange{CheckIn: m.CheckIn, CheckOut: m.CheckOut},
			Source:    m.SourceName,
		})
	}
	return out, nil
}

// ListBySource returns every record for the pair, past included. Used by
// tests and the admin calendar history view.
func (r *ExternalBookingRepository) ListBySource(ctx context.Context, apartmentID, sourceName string) ([]domain.ExternalBooking, error) {
	var models []externalBookingModel
	err := r.db.WithContext(ctx).
		Where("apartment_id = ? AND source_name = ?", apartmentID, sourceName).
		Order("check_in").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.ExternalBooking, 0, len(models))
	for _, m := range models {
		b := domain.ExternalBooking{
			ID:          m.ID,
			ApartmentID: m.ApartmentID,
			SourceName:  m.SourceName,
			Dates:       domain.DateRange{CheckIn: m.CheckIn, CheckOut: m.CheckOut},
			ImportedAt:  m.ImportedAt,
		}
		if m.ExternalID != nil {
			b.ExternalID = *m.ExternalID
		}
		if m.RawData != nil {
			b.RawData = *m.RawData
		}
		out = append(out, b)
	}
	return out, nil
}
