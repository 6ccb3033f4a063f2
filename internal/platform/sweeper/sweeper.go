package sweeper

import (
	"context"
	"log/slog"
	"time"

	"mesaYaBooking/internal/modules/bookings/application/usecase"
)

// Sweeper corre en segundo plano cancelando reservas cuyo periodo de gracia
// venció sin check-in. Cada barrido es idempotente: solo toca reservas UPCOMING.
type Sweeper struct {
	bookings *usecase.Service
	interval time.Duration
	stopChan chan struct{}
}

func New(bookings *usecase.Service, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{
		bookings: bookings,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

func (s *Sweeper) Start(ctx context.Context) {
	slog.Info("starting no-show sweeper", slog.Duration("interval", s.interval))
	go s.run(ctx)
}

func (s *Sweeper) Stop() {
	slog.Info("stopping no-show sweeper")
	close(s.stopChan)
}

func (s *Sweeper) run(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.stopChan:
			slog.Info("no-show sweeper stopped")
			return
		case <-ctx.Done():
			slog.Info("no-show sweeper cancelled")
			return
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	swept, err := s.bookings.SweepNoShows(ctx)
	if err != nil {
		slog.Error("no-show sweep failed", slog.Any("error", err))
		return
	}
	if swept > 0 {
		slog.Info("no-show sweep completed", slog.Int("cancelled", swept))
	}
}
