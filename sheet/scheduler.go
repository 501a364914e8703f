package sheet

import (
	"context"
	"fmt"

	"github.com/etnz/smartbiz"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler pushes the workspace periodically.
type Scheduler struct {
	cron     *cron.Cron
	client   *Client
	snapshot func(context.Context) (smartbiz.Snapshot, error)
	done     chan Result
}

// NewScheduler returns a scheduler pushing the snapshot returned by snapshot
// on every tick of schedule, a cron expression or a descriptor such as
// "@every 15m". The snapshot is captured on each tick, a tick whose capture
// fails is skipped.
func NewScheduler(schedule string, c *Client, snapshot func(context.Context) (smartbiz.Snapshot, error)) (*Scheduler, error) {
	s := &Scheduler{
		cron:     cron.New(),
		client:   c,
		snapshot: snapshot,
		done:     make(chan Result, 1),
	}
	if _, err := s.cron.AddFunc(schedule, s.push); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Done returns a channel receiving the result of each successful push. A
// result is dropped when the previous one was not received.
func (s *Scheduler) Done() <-chan Result { return s.done }

func (s *Scheduler) push() {
	ctx := context.Background()
	snap, err := s.snapshot(ctx)
	if err != nil {
		log.Error().Err(err).Msg("cannot capture the books, sync skipped")
		return
	}
	r, err := s.client.Push(ctx, snap)
	if err != nil {
		log.Error().Err(err).Msg("scheduled sync failed")
		return
	}
	select {
	case s.done <- r:
	default:
	}
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	log.Info().Int("jobs", len(s.cron.Entries())).Msg("auto sync started")
	s.cron.Start()
}

// Stop stops the scheduler and waits for a running push to complete, or for
// ctx to be done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
	log.Info().Msg("auto sync stopped")
}
