package game

import (
	"context"
	"log/slog"
	"time"

	"github.com/mcoot/dragonword-go/internal/model"
)

// DefaultSweepInterval is how often the sweeper wakes up
const DefaultSweepInterval = time.Minute

// HubCleanup is the slice of the realtime hub manager the sweeper needs:
// tearing down hubs for sessions it removed and reaping empty ones.
type HubCleanup interface {
	RemoveHub(id model.SessionID)
	CleanupEmptyHubs() int
}

// Sweeper periodically removes expired sessions and cleans up their
// realtime hubs.
type Sweeper struct {
	controller *Controller
	hubs       HubCleanup
	interval   time.Duration
	logger     *slog.Logger
}

// NewSweeper creates a sweeper. A non-positive interval falls back to
// DefaultSweepInterval; hubs may be nil when no realtime layer is wired.
func NewSweeper(controller *Controller, hubs HubCleanup, interval time.Duration, logger *slog.Logger) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{
		controller: controller,
		hubs:       hubs,
		interval:   interval,
		logger:     logger.With(slog.String("component", "sweeper")),
	}
}

// Run sweeps on a fixed ticker until the context is cancelled
func (s *Sweeper) Run(ctx context.Context) {
	s.logger.Info("sweeper started",
		slog.Duration("interval", s.interval),
	)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep(ctx)
		case <-ctx.Done():
			s.logger.Info("sweeper stopped")
			return
		}
	}
}

// Sweep performs a single pass: expired sessions go first, then the hubs
// they leave behind.
func (s *Sweeper) Sweep(ctx context.Context) {
	removed, err := s.controller.SweepExpired(ctx)
	if err != nil {
		s.logger.Error("sweep failed",
			slog.String("error", err.Error()),
		)
	}

	if s.hubs == nil {
		return
	}
	for _, id := range removed {
		s.hubs.RemoveHub(id)
	}
	s.hubs.CleanupEmptyHubs()
}
