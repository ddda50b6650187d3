package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/OlegRadinuk/lifestyle-crimea/internal/domain"
	"github.com/OlegRadinuk/lifestyle-crimea/internal/pkg/lock"
)

type BookingRepository struct {
	db *gorm.DB
	// locks serializes check-and-insert per apartment. On PostgreSQL the
	// advisory lock inside the transaction does the same across processes;
	// on SQLite this in-process lock is the guarantee.
	locks *lock.Keyed
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db, locks: lock.NewKeyed()}
}

type bookingModel struct {
	ID            string    `gorm:"column:id;primaryKey"`
	ApartmentID   string    `gorm:"column:apartment_id;not null;index:idx_bookings_apartment"`
	GuestName     *string   `gorm:"column:guest_name"`
	GuestPhone    *string   `gorm:"column:guest_phone"`
	GuestEmail    *string   `gorm:"column:guest_email"`
	CheckIn       string    `gorm:"column:check_in;type:date;not null;index:idx_bookings_dates"`
	CheckOut      string    `gorm:"column:check_out;type:date;not null;index:idx_bookings_dates"`
	GuestsCount   int       `gorm:"column:guests_count;not null"`
	TotalPrice    int64     `gorm:"column:total_price;not null"`
	PrepaidAmount int64     `gorm:"column:prepaid_amount;default:0"`
	Status        string    `gorm:"column:status;default:confirmed"`
	Source        string    `gorm:"column:source;default:website"`
	Notes         *string   `gorm:"column:notes"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

type bookingHistoryModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	BookingID string    `gorm:"column:booking_id;not null;index:idx_booking_history_booking"`
	Action    string    `gorm:"column:action;not null"`
	NewValue  string    `gorm:"column:new_value"`
	CreatedBy string    `gorm:"column:created_by"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (bookingHistoryModel) TableName() string { return "booking_history" }

func toDomainBooking(m bookingModel) *domain.Booking {
	b := &domain.Booking{
		ID:            m.ID,
		ApartmentID:   m.ApartmentID,
		Dates:         domain.DateRange{CheckIn: m.CheckIn, CheckOut: m.CheckOut},
		GuestsCount:   m.GuestsCount,
		TotalPrice:    m.TotalPrice,
		PrepaidAmount: m.PrepaidAmount,
		Status:        domain.BookingStatus(m.Status),
		Source:        domain.BookingSource(m.Source),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.GuestName != nil {
		b.GuestName = *m.GuestName
	}
	if m.GuestPhone != nil {
		b.GuestPhone = *m.GuestPhone
	}
	if m.GuestEmail != nil {
		b.GuestEmail = *m.GuestEmail
	}
	if m.Notes != nil {
		b.Notes = *m.Notes
	}
	return b
}

func toBookingModel(b *domain.Booking) bookingModel {
	m := bookingModel{
		ID:            b.ID,
		ApartmentID:   b.ApartmentID,
		CheckIn:       b.Dates.CheckIn,
		CheckOut:      b.Dates.CheckOut,
		GuestsCount:   b.GuestsCount,
		TotalPrice:    b.TotalPrice,
		PrepaidAmount: b.PrepaidAmount,
		Status:        string(b.Status),
		Source:        string(b.Source),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
	if b.GuestName != "" {
		v := b.GuestName
		m.GuestName = &v
	}
	if b.GuestPhone != "" {
		v := b.GuestPhone
		m.GuestPhone = &v
	}
	if b.GuestEmail != "" {
		v := b.GuestEmail
		m.GuestEmail = &v
	}
	if b.Notes != "" {
		v := b.Notes
		m.Notes = &v
	}
	return m
}

// conflictCountQuery counts half-open overlaps against both local bookings
// (pending/confirmed only) and every external source for the apartment.
// The [in, out) convention is encoded as check_in < ? AND check_out > ?.
const conflictCountQuery = `
SELECT COUNT(1) FROM (
  SELECT check_in, check_out FROM bookings
  WHERE apartment_id = ? AND status IN ('pending', 'confirmed')
    AND check_in < ? AND check_out > ?
  UNION ALL
  SELECT check_in, check_out FROM external_bookings
  WHERE apartment_id = ?
    AND check_in < ? AND check_out > ?
) conflicts
`

func conflictCount(tx *gorm.DB, apartmentID string, r domain.DateRange) (int64, error) {
	var cnt int64
	err := tx.Raw(conflictCountQuery,
		apartmentID, r.CheckOut, r.CheckIn,
		apartmentID, r.CheckOut, r.CheckIn,
	).Scan(&cnt).Error
	return cnt, err
}

// CountConflicts is the read-side overlap check used by the availability
// engine. Writers must not rely on it; they go through
// CreateWithAvailabilityCheck which re-checks inside the transaction.
func (r *BookingRepository) CountConflicts(ctx context.Context, apartmentID string, rng domain.DateRange) (int64, error) {
	return conflictCount(r.db.WithContext(ctx), apartmentID, rng)
}

// CreateWithAvailabilityCheck atomically re-validates the range against both
// local and external bookings and inserts the row. Two concurrent calls for
// overlapping ranges on one apartment cannot both commit: the per-apartment
// lock serializes them here, and pg_advisory_xact_lock extends the guarantee
// across processes on PostgreSQL.
func (r *BookingRepository) CreateWithAvailabilityCheck(ctx context.Context, b *domain.Booking) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}

	unlock := r.locks.Lock(b.ApartmentID)
	defer unlock()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", b.ApartmentID).Error; err != nil {
				return err
			}
		}

		if b.Status.BlocksAvailability() {
			cnt, err := conflictCount(tx, b.ApartmentID, b.Dates)
			if err != nil {
				return err
			}
			if cnt > 0 {
				return ErrDatesUnavailable
			}
		}

		m := toBookingModel(b)
		if err := tx.Create(&m).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23P01" {
				// Exclusion constraint, if the operator added one.
				return ErrDatesUnavailable
			}
			return err
		}
		*b = *toDomainBooking(m)

		return appendHistory(tx, b.ID, "create", b, string(b.Source))
	})
	return err
}

func appendHistory(tx *gorm.DB, bookingID, action string, value interface{}, createdBy string) error {
	raw, _ := json.Marshal(value)
	h := bookingHistoryModel{
		ID:        uuid.NewString(),
		BookingID: bookingID,
		Action:    action,
		NewValue:  string(raw),
		CreatedBy: createdBy,
	}
	return tx.Create(&h).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return toDomainBooking(m), nil
}

// BookingFilter narrows List; zero values mean "all".
type BookingFilter struct {
	ApartmentID string
	Status      domain.BookingStatus
}

func (r *BookingRepository) List(ctx context.Context, f BookingFilter) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).Order("check_in")
	if f.ApartmentID != "" {
		q = q.Where("apartment_id = ?", f.ApartmentID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var models []bookingModel
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// ListBlocked returns the occupied ranges of pending/confirmed local
// bookings ending on or after from, for the merged availability view.
func (r *BookingRepository) ListBlocked(ctx context.Context, apartmentID, from string) ([]domain.BlockedRange, error) {
	var models []bookingModel
	err := r.db.WithContext(ctx).
		Where("apartment_id = ? AND status IN ('pending', 'confirmed') AND check_out >= ?", apartmentID, from).
		Order("check_in").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.BlockedRange, 0, len(models))
	for _, m := range models {
		out = append(out, domain.BlockedRange{
			DateRange: domain.DateRange{CheckIn: m.CheckIn, CheckOut: m.CheckOut},
			Source:    "booking",
		})
	}
	return out, nil
}

// ListForExport returns confirmed stays ending on or after from, ordered by
// check-in, for the outbound ICS calendar.
func (r *BookingRepository) ListForExport(ctx context.Context, apartmentID, from string) ([]domain.DateRange, error) {
	var models []bookingModel
	err := r.db.WithContext(ctx).
		Where("apartment_id = ? AND status = ? AND check_out >= ?", apartmentID, domain.BookingConfirmed, from).
		Order("check_in").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.DateRange, 0, len(models))
	for _, m := range models {
		out = append(out, domain.DateRange{CheckIn: m.CheckIn, CheckOut: m.CheckOut})
	}
	return out, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, actor string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&bookingModel{}).Where("id = ?", id).
			Updates(map[string]interface{}{"status": string(status), "updated_at": time.Now()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return appendHistory(tx, id, "status:"+string(status), status, actor)
	})
}

func (r *BookingRepository) UpdatePrepaidAmount(ctx context.Context, id string, amount int64, actor string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&bookingModel{}).Where("id = ?", id).
			Updates(map[string]interface{}{"prepaid_amount": amount, "updated_at": time.Now()})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return appendHistory(tx, id, "prepaid", amount, actor)
	})
}

func (r *BookingRepository) UpdateNotes(ctx context.Context, id string, notes string) error {
	res := r.db.WithContext(ctx).Model(&bookingModel{}).Where("id = ?", id).
		Updates(map[string]interface{}{"notes": notes, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Delete(&bookingModel{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// BookingStats backs the admin dashboard counters.
type BookingStats struct {
	Total     int64 `json:"total"`
	Confirmed int64 `json:"confirmed"`
	Cancelled int64 `json:"cancelled"`
	Upcoming  int64 `json:"upcoming"`
	Revenue   int64 `json:"revenue"`
}

func (r *BookingRepository) Stats(ctx context.Context, apartmentID, today string) (*BookingStats, error) {
	q := `
SELECT
  COUNT(1) AS total,
  SUM(CASE WHEN status = 'confirmed' THEN 1 ELSE 0 END) AS confirmed,
  SUM(CASE WHEN status = 'cancelled' THEN 1 ELSE 0 END) AS cancelled,
  SUM(CASE WHEN check_in > ? AND status != 'cancelled' THEN 1 ELSE 0 END) AS upcoming,
  COALESCE(SUM(CASE WHEN status != 'cancelled' THEN total_price ELSE 0 END), 0) AS revenue
FROM bookings
`
	args := []interface{}{today}
	if apartmentID != "" {
		q += " WHERE apartment_id = ?"
		args = append(args, apartmentID)
	}
	var stats BookingStats
	if err := r.db.WithContext(ctx).Raw(q, args...).Scan(&stats).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
