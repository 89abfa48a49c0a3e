package timeutil

import (
	"testing"
	"time"
)

func TestWeekBounds_MondayStart(t *testing.T) {
	// Wednesday 2025-01-15
	ref := time.Date(2025, 1, 15, 13, 45, 0, 0, time.UTC)
	start, end := WeekBounds(ref)

	wantStart := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC) // Monday
	if !start.Equal(wantStart) {
		t.Errorf("WeekBounds start = %v, want %v", start, wantStart)
	}
	if start.Weekday() != time.Monday {
		t.Errorf("WeekBounds start weekday = %v, want Monday", start.Weekday())
	}
	if end.Weekday() != time.Sunday {
		t.Errorf("WeekBounds end weekday = %v, want Sunday", end.Weekday())
	}
	wantEnd := time.Date(2025, 1, 19, 23, 59, 59, 999999999, time.UTC)
	if !end.Equal(wantEnd) {
		t.Errorf("WeekBounds end = %v, want %v", end, wantEnd)
	}
}

func TestWeekBounds_SundayBelongsToPreviousMonday(t *testing.T) {
	// Sunday 2025-01-19 must map back to Monday 2025-01-13
	ref := time.Date(2025, 1, 19, 8, 0, 0, 0, time.UTC)
	start, _ := WeekBounds(ref)

	want := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Errorf("WeekBounds start = %v, want %v", start, want)
	}
}

func TestWeekBounds_MondayIsItsOwnStart(t *testing.T) {
	ref := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)
	start, _ := WeekBounds(ref)
	if !start.Equal(ref) {
		t.Errorf("WeekBounds start = %v, want %v", start, ref)
	}
}

func TestDayBounds(t *testing.T) {
	ref := time.Date(2025, 3, 2, 17, 30, 12, 999, time.UTC)
	start, end := DayBounds(ref)

	if !start.Equal(time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("DayBounds start = %v", start)
	}
	if !end.Equal(time.Date(2025, 3, 2, 23, 59, 59, 999999999, time.UTC)) {
		t.Errorf("DayBounds end = %v", end)
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2025, 5, 10, 0, 0, 1, 0, time.UTC)
	b := time.Date(2025, 5, 10, 23, 59, 0, 0, time.UTC)
	c := time.Date(2025, 5, 11, 0, 0, 0, 0, time.UTC)

	if !SameDay(a, b) {
		t.Error("SameDay(a, b) = false, want true")
	}
	if SameDay(b, c) {
		t.Error("SameDay(b, c) = true, want false")
	}
}
