package timeutil

import "time"

// DayBounds mengembalikan [00:00:00, 23:59:59.999999999] untuk hari kalender t.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return start, end
}

// WeekBounds mengembalikan batas minggu Senin–Minggu yang memuat t:
// Senin 00:00:00 s/d Minggu 23:59:59.999999999.
func WeekBounds(t time.Time) (time.Time, time.Time) {
	dayStart, _ := DayBounds(t)

	// time.Weekday: Sunday == 0, Monday == 1
	offset := int(dayStart.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	weekStart := dayStart.AddDate(0, 0, -offset)
	weekEnd := weekStart.AddDate(0, 0, 7).Add(-time.Nanosecond)
	return weekStart, weekEnd
}

// SameDay true jika a dan b jatuh pada hari kalender yang sama.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
