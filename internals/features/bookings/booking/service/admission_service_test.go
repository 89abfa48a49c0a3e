package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"gymbook_backend/internals/constants"
	m "gymbook_backend/internals/features/bookings/booking/model"
	userModel "gymbook_backend/internals/features/users/user/model"
	"gymbook_backend/internals/helpers/timeutil"
)

/* =========================
   Fakes
   ========================= */

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

type fakeStore struct {
	rows []*m.BookingModel
}

func (s *fakeStore) FindByID(_ context.Context, id uuid.UUID) (*m.BookingModel, error) {
	for _, r := range s.rows {
		if r.BookingID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) ListOnDay(_ context.Context, userID uuid.UUID, dayStart, dayEnd time.Time) ([]m.BookingModel, error) {
	var out []m.BookingModel
	for _, r := range s.rows {
		if r.BookingUserID == userID &&
			!r.BookingStartTime.Before(dayStart) && !r.BookingStartTime.After(dayEnd) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *fakeStore) CountActiveInRange(_ context.Context, userID uuid.UUID, from, to time.Time) (int64, error) {
	var n int64
	for _, r := range s.rows {
		if r.BookingUserID == userID && r.BookingStatus != m.BookingCancelled &&
			!r.BookingStartTime.Before(from) && !r.BookingStartTime.After(to) {
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) Create(_ context.Context, b *m.BookingModel) error {
	for _, r := range s.rows {
		if r.BookingUserID == b.BookingUserID && r.BookingStatus != m.BookingCancelled &&
			r.BookingDay.Equal(b.BookingDay) {
			return ErrDayTaken
		}
	}
	b.BookingID = uuid.New()
	s.rows = append(s.rows, b)
	return nil
}

func (s *fakeStore) Save(_ context.Context, b *m.BookingModel) error {
	for i, r := range s.rows {
		if r.BookingID == b.BookingID {
			s.rows[i] = b
			return nil
		}
	}
	s.rows = append(s.rows, b)
	return nil
}

func (s *fakeStore) CancelAllForUser(_ context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, r := range s.rows {
		if r.BookingUserID == userID && r.BookingStatus != m.BookingCancelled {
			r.BookingStatus = m.BookingCancelled
			n++
		}
	}
	return n, nil
}

type fakeUsers struct {
	users map[uuid.UUID]*userModel.UserModel
}

func (f *fakeUsers) UserByID(_ context.Context, id uuid.UUID) (*userModel.UserModel, error) {
	return f.users[id], nil
}

/* =========================
   Harness
   ========================= */

// now: Monday 2025-01-13 06:00 UTC — semua slot minggu ini masih di depan.
var testNow = time.Date(2025, 1, 13, 6, 0, 0, 0, time.UTC)

func newTestService(limit int) (*AdmissionService, *fakeStore, uuid.UUID, uuid.UUID) {
	userID := uuid.New()
	adminID := uuid.New()
	store := &fakeStore{}
	users := &fakeUsers{users: map[uuid.UUID]*userModel.UserModel{
		userID: {UserID: userID, UserRole: constants.RoleUser, UserWeeklyBookingLimit: limit, UserIsActive: true},
		adminID: {UserID: adminID, UserRole: constants.RoleAdmin, UserWeeklyBookingLimit: limit, UserIsActive: true},
	}}
	svc := NewAdmissionService(store, users, 2*time.Hour, 14)
	svc.Clock = &fakeClock{now: testNow}
	return svc, store, userID, adminID
}

func at(day, hour int) time.Time {
	return time.Date(2025, 1, day, hour, 0, 0, 0, time.UTC)
}

/* =========================
   Create
   ========================= */

func TestCreate_ScenarioA_FirstBookingAccepted(t *testing.T) {
	svc, _, userID, _ := newTestService(3)

	// Tuesday 09:00–10:00
	b, err := svc.Create(context.Background(), userID, at(14, 9), at(14, 10), nil)
	if err != nil {
		t.Fatalf("Create() error = %v, want nil", err)
	}
	if b.BookingStatus != m.BookingConfirmed {
		t.Errorf("status = %s, want CONFIRMED", b.BookingStatus)
	}
}

func TestCreate_ScenarioB_SecondDaySameWeekAccepted(t *testing.T) {
	svc, _, userID, _ := newTestService(3)
	ctx := context.Background()

	if _, err := svc.Create(ctx, userID, at(14, 9), at(14, 10), nil); err != nil {
		t.Fatalf("Tuesday booking: %v", err)
	}
	// Wednesday same week → 2 of 3 used, accepted
	if _, err := svc.Create(ctx, userID, at(15, 9), at(15, 10), nil); err != nil {
		t.Fatalf("Wednesday booking: %v", err)
	}
}

func TestCreate_ScenarioC_SameDayConflict(t *testing.T) {
	svc, _, userID, _ := newTestService(3)
	ctx := context.Background()

	if _, err := svc.Create(ctx, userID, at(14, 9), at(14, 10), nil); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	_, err := svc.Create(ctx, userID, at(14, 14), at(14, 15), nil)
	if KindOf(err) != ErrKindConflict {
		t.Fatalf("second same-day booking error = %v, want conflict", err)
	}
}

func TestCreate_WeeklyQuotaExhausted(t *testing.T) {
	svc, _, userID, _ := newTestService(2)
	ctx := context.Background()

	if _, err := svc.Create(ctx, userID, at(14, 9), at(14, 10), nil); err != nil {
		t.Fatalf("booking 1: %v", err)
	}
	if _, err := svc.Create(ctx, userID, at(15, 9), at(15, 10), nil); err != nil {
		t.Fatalf("booking 2: %v", err)
	}
	_, err := svc.Create(ctx, userID, at(16, 9), at(16, 10), nil)
	if KindOf(err) != ErrKindConflict {
		t.Fatalf("booking 3 error = %v, want conflict (quota)", err)
	}
}

func TestCreate_QuotaIgnoresCancelled(t *testing.T) {
	svc, _, userID, _ := newTestService(1)
	ctx := context.Background()

	b, err := svc.Create(ctx, userID, at(14, 9), at(14, 10), nil)
	if err != nil {
		t.Fatalf("booking: %v", err)
	}
	if _, err := svc.Cancel(ctx, b.BookingID, userID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	// Kuota 1 sudah "terpakai" tapi cancelled → hari lain tetap boleh.
	if _, err := svc.Create(ctx, userID, at(15, 9), at(15, 10), nil); err != nil {
		t.Fatalf("rebooking after cancel: %v", err)
	}
}

func TestCreate_RevivalReusesCancelledRow(t *testing.T) {
	svc, store, userID, _ := newTestService(3)
	ctx := context.Background()

	b, err := svc.Create(ctx, userID, at(14, 9), at(14, 10), nil)
	if err != nil {
		t.Fatalf("booking: %v", err)
	}
	if _, err := svc.Cancel(ctx, b.BookingID, userID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	revived, err := svc.Create(ctx, userID, at(14, 14), at(14, 15), nil)
	if err != nil {
		t.Fatalf("rebooking same day: %v", err)
	}

	if revived.BookingID != b.BookingID {
		t.Errorf("revival created a new row: got %s, want %s", revived.BookingID, b.BookingID)
	}
	if revived.BookingStatus != m.BookingConfirmed {
		t.Errorf("revived status = %s, want CONFIRMED", revived.BookingStatus)
	}
	if !revived.BookingStartTime.Equal(at(14, 14)) {
		t.Errorf("revived start = %v, want %v", revived.BookingStartTime, at(14, 14))
	}
	if len(store.rows) != 1 {
		t.Errorf("store has %d rows for (user, day), want 1", len(store.rows))
	}
}

func TestCreate_AdvanceNoticeTooShort(t *testing.T) {
	svc, _, userID, _ := newTestService(3)

	// now 06:00 Monday, slot 07:00 Monday → hanya 1 jam notice
	_, err := svc.Create(context.Background(), userID, at(13, 7), at(13, 8), nil)
	if KindOf(err) != ErrKindValidation {
		t.Fatalf("error = %v, want validation (advance notice)", err)
	}
}

func TestCreate_OutsideHorizon(t *testing.T) {
	svc, _, userID, _ := newTestService(3)

	// 15 hari ke depan (horizon 14)
	start := time.Date(2025, 1, 28, 9, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), userID, start, start.Add(time.Hour), nil)
	if KindOf(err) != ErrKindValidation {
		t.Fatalf("error = %v, want validation (horizon)", err)
	}
}

func TestCreate_IllegalSlotRejected(t *testing.T) {
	svc, _, userID, _ := newTestService(3)

	// Sunday 2025-01-19
	_, err := svc.Create(context.Background(), userID, at(19, 9), at(19, 10), nil)
	if KindOf(err) != ErrKindValidation {
		t.Fatalf("Sunday booking error = %v, want validation", err)
	}
}

func TestCreate_UnknownUser(t *testing.T) {
	svc, _, _, _ := newTestService(3)

	_, err := svc.Create(context.Background(), uuid.New(), at(14, 9), at(14, 10), nil)
	if KindOf(err) != ErrKindNotFound {
		t.Fatalf("error = %v, want not_found", err)
	}
}

func TestCreate_OnePerDayInvariant(t *testing.T) {
	svc, store, userID, _ := newTestService(5)
	ctx := context.Background()

	// Sequence create/cancel/create pada hari yang sama.
	b, _ := svc.Create(ctx, userID, at(14, 9), at(14, 10), nil)
	_, _ = svc.Cancel(ctx, b.BookingID, userID)
	_, _ = svc.Create(ctx, userID, at(14, 10), at(14, 11), nil)
	_, _ = svc.Create(ctx, userID, at(14, 11), at(14, 12), nil) // conflict, ditolak

	day, dayEnd := timeutil.DayBounds(at(14, 0))
	active := 0
	for _, r := range store.rows {
		if r.BookingStatus != m.BookingCancelled &&
			!r.BookingStartTime.Before(day) && !r.BookingStartTime.After(dayEnd) {
			active++
		}
	}
	if active != 1 {
		t.Errorf("active rows on day = %d, want 1", active)
	}
}

/* =========================
   Update
   ========================= */

func TestUpdate_OwnerReschedule(t *testing.T) {
	svc, _, userID, _ := newTestService(3)
	ctx := context.Background()

	b, err := svc.Create(ctx, userID, at(14, 9), at(14, 10), nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newStart, newEnd := at(14, 11), at(14, 12)
	updated, err := svc.Update(ctx, b.BookingID, userID, UpdatePatch{Start: &newStart, End: &newEnd})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.BookingStartTime.Equal(newStart) {
		t.Errorf("start = %v, want %v", updated.BookingStartTime, newStart)
	}
}

func TestUpdate_NonOwnerForbidden(t *testing.T) {
	svc, _, userID, _ := newTestService(3)
	ctx := context.Background()

	b, _ := svc.Create(ctx, userID, at(14, 9), at(14, 10), nil)

	stranger := uuid.New()
	svc.Users.(*fakeUsers).users[stranger] = &userModel.UserModel{
		UserID: stranger, UserRole: constants.RoleUser, UserWeeklyBookingLimit: 3,
	}
	notes := "mine now"
	_, err := svc.Update(ctx, b.BookingID, stranger, UpdatePatch{Notes: &notes})
	if KindOf(err) != ErrKindForbidden {
		t.Fatalf("error = %v, want forbidden", err)
	}
}

func TestUpdate_RescheduleCutoff(t *testing.T) {
	svc, _, userID, adminID := newTestService(3)
	ctx := context.Background()

	b, err := svc.Create(ctx, userID, at(14, 9), at(14, 10), nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Majukan jam: booking mulai 90 menit dari "now"
	svc.Clock = &fakeClock{now: at(14, 9).Add(-90 * time.Minute)}

	newStart, newEnd := at(14, 11), at(14, 12)
	_, err = svc.Update(ctx, b.BookingID, userID, UpdatePatch{Start: &newStart, End: &newEnd})
	if KindOf(err) != ErrKindValidation {
		t.Fatalf("owner reschedule inside cutoff = %v, want validation", err)
	}

	// Admin bypass cutoff
	if _, err := svc.Update(ctx, b.BookingID, adminID, UpdatePatch{Start: &newStart, End: &newEnd}); err != nil {
		t.Fatalf("admin reschedule inside cutoff: %v", err)
	}
}

func TestUpdate_SameDayConflictExcludesSelf(t *testing.T) {
	svc, _, userID, _ := newTestService(3)
	ctx := context.Background()

	b, err := svc.Create(ctx, userID, at(14, 9), at(14, 10), nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Geser slot di hari yang sama — booking sendiri tidak boleh dihitung bentrok.
	newStart, newEnd := at(14, 10), at(14, 11)
	if _, err := svc.Update(ctx, b.BookingID, userID, UpdatePatch{Start: &newStart, End: &newEnd}); err != nil {
		t.Fatalf("same-day reschedule: %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _, userID, _ := newTestService(3)

	notes := "x"
	_, err := svc.Update(context.Background(), uuid.New(), userID, UpdatePatch{Notes: &notes})
	if KindOf(err) != ErrKindNotFound {
		t.Fatalf("error = %v, want not_found", err)
	}
}

/* =========================
   Cancel
   ========================= */

func TestCancel_ScenarioD_CutoffOwnerVsAdmin(t *testing.T) {
	svc, _, userID, adminID := newTestService(3)
	ctx := context.Background()

	b, err := svc.Create(ctx, userID, at(14, 9), at(14, 10), nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Booking mulai 90 menit dari "now" → di dalam cutoff 2 jam.
	svc.Clock = &fakeClock{now: at(14, 9).Add(-90 * time.Minute)}

	_, err = svc.Cancel(ctx, b.BookingID, userID)
	if KindOf(err) != ErrKindValidation {
		t.Fatalf("owner cancel inside cutoff = %v, want validation", err)
	}

	cancelled, err := svc.Cancel(ctx, b.BookingID, adminID)
	if err != nil {
		t.Fatalf("admin cancel inside cutoff: %v", err)
	}
	if cancelled.BookingStatus != m.BookingCancelled {
		t.Errorf("status = %s, want CANCELLED", cancelled.BookingStatus)
	}
}

func TestCancel_IsSoft(t *testing.T) {
	svc, store, userID, _ := newTestService(3)
	ctx := context.Background()

	b, _ := svc.Create(ctx, userID, at(14, 9), at(14, 10), nil)
	if _, err := svc.Cancel(ctx, b.BookingID, userID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if len(store.rows) != 1 {
		t.Fatalf("rows = %d, want 1 (no hard delete)", len(store.rows))
	}
	if store.rows[0].BookingStatus != m.BookingCancelled {
		t.Errorf("status = %s, want CANCELLED", store.rows[0].BookingStatus)
	}
}

/* =========================
   CancelAllForUser
   ========================= */

func TestCancelAllForUser(t *testing.T) {
	svc, _, userID, adminID := newTestService(5)
	ctx := context.Background()

	_, _ = svc.Create(ctx, userID, at(14, 9), at(14, 10), nil)
	_, _ = svc.Create(ctx, userID, at(15, 9), at(15, 10), nil)

	n, err := svc.CancelAllForUser(ctx, userID, adminID)
	if err != nil {
		t.Fatalf("cancel all: %v", err)
	}
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}

	// Kedua kalinya no-op
	n, err = svc.CancelAllForUser(ctx, userID, userID)
	if err != nil {
		t.Fatalf("cancel all (2nd): %v", err)
	}
	if n != 0 {
		t.Errorf("second count = %d, want 0", n)
	}
}

func TestCancelAllForUser_StrangerForbidden(t *testing.T) {
	svc, _, userID, _ := newTestService(3)

	stranger := uuid.New()
	svc.Users.(*fakeUsers).users[stranger] = &userModel.UserModel{
		UserID: stranger, UserRole: constants.RoleUser, UserWeeklyBookingLimit: 3,
	}
	_, err := svc.CancelAllForUser(context.Background(), userID, stranger)
	if KindOf(err) != ErrKindForbidden {
		t.Fatalf("error = %v, want forbidden", err)
	}
}
