package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	m "gymbook_backend/internals/features/bookings/booking/model"
	"gymbook_backend/internals/features/bookings/booking/service"
	userModel "gymbook_backend/internals/features/users/user/model"
)

/* =======================================================
   BookingRepository — implementasi GORM dari
   service.BookingStore + service.UserDirectory.
   ======================================================= */

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// --- PG error mapping (teacher-style, driver-agnostic lewat SQLState) ---

type pgSQLErr interface {
	SQLState() string
	Error() string
}

func isUniqueViolation(err error) bool {
	var pgErr pgSQLErr
	return errors.As(err, &pgErr) && pgErr.SQLState() == "23505"
}

/* =========================
   service.BookingStore
   ========================= */

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*m.BookingModel, error) {
	var b m.BookingModel
	if err := r.db.WithContext(ctx).First(&b, "booking_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) ListOnDay(ctx context.Context, userID uuid.UUID, dayStart, dayEnd time.Time) ([]m.BookingModel, error) {
	var rows []m.BookingModel
	err := r.db.WithContext(ctx).
		Where("booking_user_id = ? AND booking_start_time BETWEEN ? AND ?", userID, dayStart, dayEnd).
		Find(&rows).Error
	return rows, err
}

func (r *BookingRepository) CountActiveInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&m.BookingModel{}).
		Where("booking_user_id = ? AND booking_status <> ? AND booking_start_time BETWEEN ? AND ?",
			userID, m.BookingCancelled, from, to).
		Count(&n).Error
	return n, err
}

// Create menutup race (user, day) dengan transaksi + lock kandidat baris;
// partial unique index uq_bookings_user_day_active jadi jaring terakhir.
func (r *BookingRepository) Create(ctx context.Context, b *m.BookingModel) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing m.BookingModel
		err := tx.Model(&m.BookingModel{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("booking_user_id = ? AND booking_day = ? AND booking_status <> ?",
				b.BookingUserID, b.BookingDay, m.BookingCancelled).
			Take(&existing).Error

		if err == nil {
			return service.ErrDayTaken
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(b).Error
	})
	if isUniqueViolation(err) {
		return service.ErrDayTaken
	}
	return err
}

func (r *BookingRepository) Save(ctx context.Context, b *m.BookingModel) error {
	err := r.db.WithContext(ctx).Save(b).Error
	if isUniqueViolation(err) {
		return service.ErrDayTaken
	}
	return err
}

func (r *BookingRepository) CancelAllForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Model(&m.BookingModel{}).
		Where("booking_user_id = ? AND booking_status <> ?", userID, m.BookingCancelled).
		Update("booking_status", m.BookingCancelled)
	return res.RowsAffected, res.Error
}

/* =========================
   Sweeper support
   ========================= */

// CompleteExpired mentransisikan semua CONFIRMED yang end_time-nya sudah
// lewat menjadi COMPLETED. Idempotent.
func (r *BookingRepository) CompleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&m.BookingModel{}).
		Where("booking_status = ? AND booking_end_time < ?", m.BookingConfirmed, now).
		Update("booking_status", m.BookingCompleted)
	return res.RowsAffected, res.Error
}

/* =========================
   service.UserDirectory
   ========================= */

func (r *BookingRepository) UserByID(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error) {
	var u userModel.UserModel
	if err := r.db.WithContext(ctx).First(&u, "user_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

/* =========================
   Listing untuk controller
   ========================= */

type ListFilter struct {
	UserID *uuid.UUID
	Status *m.BookingStatus
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

func (r *BookingRepository) List(ctx context.Context, f ListFilter) ([]m.BookingModel, error) {
	db := r.db.WithContext(ctx).Model(&m.BookingModel{})
	if f.UserID != nil {
		db = db.Where("booking_user_id = ?", *f.UserID)
	}
	if f.Status != nil {
		db = db.Where("booking_status = ?", *f.Status)
	}
	if f.From != nil {
		db = db.Where("booking_start_time >= ?", *f.From)
	}
	if f.To != nil {
		db = db.Where("booking_start_time <= ?", *f.To)
	}
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	var rows []m.BookingModel
	err := db.Order("booking_start_time ASC").
		Limit(f.Limit).Offset(f.Offset).
		Find(&rows).Error
	return rows, err
}
