package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

/* =======================================================
   Lifecycle Sweeper — tugas periodik yang mem-finalkan
   booking CONFIRMED yang end_time-nya sudah lewat menjadi
   COMPLETED. Komponen injectable dengan Start/Stop, bukan
   timer global, supaya admission bisa dites tanpa timer.
   ======================================================= */

type ExpiryStore interface {
	CompleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type Sweeper struct {
	store    ExpiryStore
	interval time.Duration
	cron     *cron.Cron

	// Now dapat dioverride di test.
	Now func() time.Time
}

func NewSweeper(store ExpiryStore, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return &Sweeper{
		store:    store,
		interval: interval,
		Now:      time.Now,
	}
}

// Start menjadwalkan pass periodik dan menjalankan satu pass langsung.
func (s *Sweeper) Start() {
	s.cron = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.interval), s.tick); err != nil {
		log.Fatalf("[SWEEPER] add cron failed: %v", err)
	}

	log.Printf("[SWEEPER] started interval=%s", s.interval)
	go s.tick() // pass pertama langsung saat startup
	s.cron.Start()
}

func (s *Sweeper) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		log.Println("[SWEEPER] stopped")
	}
}

// tick: satu pass dengan timeout; gagal → log saja, tick berikutnya retry.
func (s *Sweeper) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := s.RunOnce(ctx)
	if err != nil {
		log.Printf("[SWEEPER] scan error: %v", err)
		return
	}
	if n > 0 {
		log.Printf("[SWEEPER] completed %d expired bookings", n)
	}
}

// RunOnce menjalankan satu pass dan mengembalikan jumlah booking yang
// ditransisikan. Idempotent: tanpa booking kadaluarsa baru hasilnya 0.
func (s *Sweeper) RunOnce(ctx context.Context) (int64, error) {
	return s.store.CompleteExpired(ctx, s.Now())
}
