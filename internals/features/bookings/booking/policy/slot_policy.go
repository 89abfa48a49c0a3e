package policy

import (
	"errors"
	"time"

	"gymbook_backend/internals/helpers/timeutil"
)

/* =======================================================
   Slot legality — predikat murni, tidak tergantung user.

   Aturan produksi (varian day-aware):
   - Minggu tutup.
   - Sabtu: mulai 07:00–10:59, selesai maksimal 11:00.
   - Senin–Jumat: mulai 07:00–20:59, selesai maksimal 21:00.
   - Durasi tetap satu jam: end hour == start hour + 1.
   ======================================================= */

var (
	ErrInvalidInterval = errors.New("End time must be after start time")
	ErrSlotDuration    = errors.New("Bookings must be exactly one hour long")
	ErrSundayClosed    = errors.New("The gym is closed on Sundays")
	ErrSaturdayHours   = errors.New("Saturday bookings must be between 07:00 and 11:00")
	ErrWeekdayHours    = errors.New("Bookings must be between 07:00 and 21:00")
)

const (
	openHour          = 7
	weekdayCloseHour  = 21
	saturdayCloseHour = 11
)

// CheckSlot memutuskan apakah [start, end) adalah slot yang sah,
// dengan alasan penolakan yang spesifik.
func CheckSlot(start, end time.Time) error {
	if !end.After(start) {
		return ErrInvalidInterval
	}

	switch start.Weekday() {
	case time.Sunday:
		return ErrSundayClosed
	case time.Saturday:
		if !withinWindow(start, end, openHour, saturdayCloseHour) {
			return ErrSaturdayHours
		}
	default:
		if !withinWindow(start, end, openHour, weekdayCloseHour) {
			return ErrWeekdayHours
		}
	}

	if !timeutil.SameDay(start, end) || end.Hour() != start.Hour()+1 {
		return ErrSlotDuration
	}
	return nil
}

// IsLegalSlot adalah bentuk boolean dari CheckSlot.
func IsLegalSlot(start, end time.Time) bool {
	return CheckSlot(start, end) == nil
}

// withinWindow: start >= open jam openHour, end <= jam closeHour (menit diperhitungkan).
func withinWindow(start, end time.Time, openHour, closeHour int) bool {
	startMin := start.Hour()*60 + start.Minute()
	endMin := end.Hour()*60 + end.Minute()
	if end.Second() > 0 || end.Nanosecond() > 0 {
		endMin++
	}
	return startMin >= openHour*60 && endMin <= closeHour*60
}
