package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/DhavalSuthar-24/rosterhub/pkg/logger"
)

// InvitationExpirer declines pending invitations older than their TTL.
type InvitationExpirer interface {
	ExpireStaleInvitations(ctx context.Context) (int64, error)
}

// Scheduler runs the periodic roster maintenance jobs.
type Scheduler struct {
	cron     *cron.Cron
	expirer  InvitationExpirer
	schedule string
	timeout  time.Duration

	mu      sync.Mutex
	entryID cron.EntryID
}

func NewScheduler(expirer InvitationExpirer, schedule string) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		expirer:  expirer,
		schedule: schedule,
		timeout:  time.Minute,
	}
}

// Start registers the invitation sweep and starts the cron loop.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entryID, err := s.cron.AddFunc(s.schedule, func() { s.RunOnce(context.Background()) })
	if err != nil {
		return fmt.Errorf("schedule invitation expiry %q: %w", s.schedule, err)
	}
	s.entryID = entryID
	s.cron.Start()
	logger.Info().Str("schedule", s.schedule).Msg("invitation expiry scheduler started")
	return nil
}

// Stop halts the cron loop and waits for a running sweep to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		logger.Warn().Msg("invitation expiry scheduler did not stop in time")
	}
}

// NextRun reports when the sweep fires next; zero before Start.
func (s *Scheduler) NextRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entryID == 0 {
		return time.Time{}
	}
	return s.cron.Entry(s.entryID).Next
}

// RunOnce performs a single sweep and returns how many invitations were expired.
func (s *Scheduler) RunOnce(ctx context.Context) int64 {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	n, err := s.expirer.ExpireStaleInvitations(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("invitation expiry sweep failed")
		return 0
	}
	if n > 0 {
		logger.Info().Int64("expired", n).Msg("expired stale invitations")
	}
	return n
}
