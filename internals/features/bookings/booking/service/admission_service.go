package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gymbook_backend/internals/constants"
	m "gymbook_backend/internals/features/bookings/booking/model"
	"gymbook_backend/internals/features/bookings/booking/policy"
	userModel "gymbook_backend/internals/features/users/user/model"
	"gymbook_backend/internals/helpers/timeutil"
)

/* =======================================================
   Kolaborator eksternal — interface sempit supaya admission
   bisa dites tanpa DB maupun timer hidup.
   ======================================================= */

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// BookingStore: penyimpanan durable booking. Metode lookup mengembalikan
// (nil, nil) saat baris tidak ditemukan.
type BookingStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*m.BookingModel, error)
	ListOnDay(ctx context.Context, userID uuid.UUID, dayStart, dayEnd time.Time) ([]m.BookingModel, error)
	CountActiveInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, error)

	// Create menolak dengan ErrDayTaken bila baris aktif (user, day) sudah ada.
	Create(ctx context.Context, b *m.BookingModel) error
	Save(ctx context.Context, b *m.BookingModel) error
	CancelAllForUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

// UserDirectory: lookup user + kuota mingguan. (nil, nil) saat tidak ditemukan.
type UserDirectory interface {
	UserByID(ctx context.Context, id uuid.UUID) (*userModel.UserModel, error)
}

/* =======================================================
   AdmissionService — satu-satunya jalur lahirnya booking
   CONFIRMED, dan otoritas transisi CANCELLED.
   ======================================================= */

type AdmissionService struct {
	Store BookingStore
	Users UserDirectory
	Clock Clock

	// MinNotice: jarak minimal start dari sekarang; juga dipakai sebagai
	// cutoff reschedule/cancel non-admin. 0 = nonaktif.
	MinNotice time.Duration
	// HorizonDays: batas hari ke depan untuk booking baru. 0 = nonaktif.
	HorizonDays int
}

func NewAdmissionService(store BookingStore, users UserDirectory, minNotice time.Duration, horizonDays int) *AdmissionService {
	return &AdmissionService{
		Store:       store,
		Users:       users,
		Clock:       realClock{},
		MinNotice:   minNotice,
		HorizonDays: horizonDays,
	}
}

/* =========================
   Create
   ========================= */

func (s *AdmissionService) Create(ctx context.Context, userID uuid.UUID, start, end time.Time, notes *string) (*m.BookingModel, error) {
	user, err := s.Users.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, newNotFound("User not found")
	}

	now := s.Clock.Now()

	// 1. Advance notice
	if s.MinNotice > 0 && start.Sub(now) < s.MinNotice {
		return nil, newValidation(fmt.Sprintf(
			"Bookings must be made at least %d hours in advance",
			int(s.MinNotice.Hours())))
	}

	// 2. Slot legality
	if err := policy.CheckSlot(start, end); err != nil {
		return nil, newValidation(err.Error())
	}

	// 3. Booking horizon
	if s.HorizonDays > 0 {
		lastDay, _ := timeutil.DayBounds(now.AddDate(0, 0, s.HorizonDays))
		startDay, _ := timeutil.DayBounds(start)
		if startDay.After(lastDay) {
			return nil, newValidation(fmt.Sprintf(
				"Bookings can only be made up to %d days in advance", s.HorizonDays))
		}
	}

	// 4. Past time
	if !start.After(now) {
		return nil, newValidation("Cannot book a time in the past")
	}

	// 5. Same-day conflict (baris CANCELLED boleh direvive)
	dayStart, dayEnd := timeutil.DayBounds(start)
	sameDay, err := s.Store.ListOnDay(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	var revivable *m.BookingModel
	for i := range sameDay {
		if sameDay[i].BookingStatus != m.BookingCancelled {
			return nil, newConflict("You already have a booking on this day")
		}
		if revivable == nil {
			revivable = &sameDay[i]
		}
	}

	// 6. Weekly quota (minggu Senin–Minggu yang memuat start)
	weekStart, weekEnd := timeutil.WeekBounds(start)
	count, err := s.Store.CountActiveInRange(ctx, userID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}
	if count >= int64(user.UserWeeklyBookingLimit) {
		return nil, newConflict(fmt.Sprintf(
			"Weekly booking limit (%d) reached", user.UserWeeklyBookingLimit))
	}

	// 7. Commit — revive baris CANCELLED hari yang sama, atau insert baru.
	if revivable != nil {
		revivable.BookingStartTime = start
		revivable.BookingEndTime = end
		revivable.BookingNotes = notes
		revivable.BookingStatus = m.BookingConfirmed
		revivable.SetDay()
		if err := s.Store.Save(ctx, revivable); err != nil {
			return nil, mapStoreErr(err)
		}
		return revivable, nil
	}

	b := &m.BookingModel{
		BookingUserID:    userID,
		BookingStartTime: start,
		BookingEndTime:   end,
		BookingNotes:     notes,
		BookingStatus:    m.BookingConfirmed,
	}
	b.SetDay()
	if err := s.Store.Create(ctx, b); err != nil {
		return nil, mapStoreErr(err)
	}
	return b, nil
}

/* =========================
   Update
   ========================= */

type UpdatePatch struct {
	Start *time.Time
	End   *time.Time
	Notes *string
}

func (s *AdmissionService) Update(ctx context.Context, bookingID, requesterID uuid.UUID, patch UpdatePatch) (*m.BookingModel, error) {
	booking, isAdmin, err := s.loadForMutation(ctx, bookingID, requesterID)
	if err != nil {
		return nil, err
	}

	timeChange := patch.Start != nil || patch.End != nil
	now := s.Clock.Now()

	if timeChange && !isAdmin {
		// Cutoff reschedule untuk pemilik
		if s.MinNotice > 0 && booking.BookingStartTime.Sub(now) < s.MinNotice {
			return nil, newValidation(fmt.Sprintf(
				"Bookings cannot be rescheduled less than %d hours before start",
				int(s.MinNotice.Hours())))
		}
	}

	if timeChange {
		newStart := booking.BookingStartTime
		newEnd := booking.BookingEndTime
		if patch.Start != nil {
			newStart = *patch.Start
		}
		if patch.End != nil {
			newEnd = *patch.End
		}

		if !isAdmin {
			if err := policy.CheckSlot(newStart, newEnd); err != nil {
				return nil, newValidation(err.Error())
			}

			// Same-day conflict, tidak menghitung booking yang sedang diubah.
			dayStart, dayEnd := timeutil.DayBounds(newStart)
			sameDay, err := s.Store.ListOnDay(ctx, booking.BookingUserID, dayStart, dayEnd)
			if err != nil {
				return nil, err
			}
			for i := range sameDay {
				if sameDay[i].BookingID == booking.BookingID {
					continue
				}
				if sameDay[i].BookingStatus != m.BookingCancelled {
					return nil, newConflict("You already have a booking on this day")
				}
			}
		}

		booking.BookingStartTime = newStart
		booking.BookingEndTime = newEnd
		booking.SetDay()
	}

	if patch.Notes != nil {
		booking.BookingNotes = patch.Notes
	}

	if err := s.Store.Save(ctx, booking); err != nil {
		return nil, mapStoreErr(err)
	}
	return booking, nil
}

/* =========================
   Cancel
   ========================= */

func (s *AdmissionService) Cancel(ctx context.Context, bookingID, requesterID uuid.UUID) (*m.BookingModel, error) {
	booking, isAdmin, err := s.loadForMutation(ctx, bookingID, requesterID)
	if err != nil {
		return nil, err
	}

	if booking.BookingStatus == m.BookingCancelled {
		return booking, nil
	}

	if !isAdmin && s.MinNotice > 0 {
		if booking.BookingStartTime.Sub(s.Clock.Now()) < s.MinNotice {
			return nil, newValidation(fmt.Sprintf(
				"Bookings cannot be cancelled less than %d hours before start",
				int(s.MinNotice.Hours())))
		}
	}

	// Soft transition — baris tetap ada untuk riwayat & revival.
	booking.BookingStatus = m.BookingCancelled
	if err := s.Store.Save(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

/* =========================
   CancelAllForUser
   ========================= */

func (s *AdmissionService) CancelAllForUser(ctx context.Context, userID, requesterID uuid.UUID) (int64, error) {
	requester, err := s.Users.UserByID(ctx, requesterID)
	if err != nil {
		return 0, err
	}
	if requester == nil {
		return 0, newNotFound("User not found")
	}
	if requester.UserID != userID && requester.UserRole != constants.RoleAdmin {
		return 0, newForbidden("You may only cancel your own bookings")
	}
	return s.Store.CancelAllForUser(ctx, userID)
}

/* =========================
   Shared
   ========================= */

func (s *AdmissionService) loadForMutation(ctx context.Context, bookingID, requesterID uuid.UUID) (*m.BookingModel, bool, error) {
	booking, err := s.Store.FindByID(ctx, bookingID)
	if err != nil {
		return nil, false, err
	}
	if booking == nil {
		return nil, false, newNotFound("Booking not found")
	}

	requester, err := s.Users.UserByID(ctx, requesterID)
	if err != nil {
		return nil, false, err
	}
	if requester == nil {
		return nil, false, newNotFound("User not found")
	}

	isAdmin := requester.UserRole == constants.RoleAdmin
	if booking.BookingUserID != requesterID && !isAdmin {
		return nil, false, newForbidden("You may only modify your own bookings")
	}
	return booking, isAdmin, nil
}

func mapStoreErr(err error) error {
	if errors.Is(err, ErrDayTaken) {
		return newConflict("You already have a booking on this day")
	}
	return err
}
