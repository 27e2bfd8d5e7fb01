package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/bayarea-transit/vehicle-tracker/hub"
	"github.com/bayarea-transit/vehicle-tracker/store"
	"github.com/bayarea-transit/vehicle-tracker/utils"
)

// Runner produces one snapshot per cycle. The fetch orchestrator implements
// it; the error reports a degraded cycle for the error broadcast.
type Runner interface {
	RunCycle(ctx context.Context) (store.Snapshot, error)
}

// Broadcaster delivers an event to all current subscribers. The hub
// implements it.
type Broadcaster interface {
	Broadcast(event string, data any)
	SubscriberCount() int
}

// Scheduler is the connection-count-gated cycle driver.
//
// Idle: no subscribers, no timer. Running: a loop goroutine fires a cycle
// every interval. The 0→1 subscriber edge starts the loop with one
// immediate out-of-band cycle so the first subscriber does not wait a full
// interval; the N→0 edge cancels the loop, letting an in-flight cycle
// finish with its result simply broadcast to nobody.
type Scheduler struct {
	runner   Runner
	bcast    Broadcaster
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
}

func New(runner Runner, bcast Broadcaster, interval time.Duration) *Scheduler {
	return &Scheduler{runner: runner, bcast: bcast, interval: interval}
}

// Interval returns the configured cycle interval.
func (s *Scheduler) Interval() time.Duration { return s.interval }

// Running reports whether the cycle loop is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

// FirstSubscriber transitions Idle→Running.
func (s *Scheduler) FirstSubscriber() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	log.Printf("scheduler: starting, interval %s", s.interval)
	go s.run(ctx)
}

// LastSubscriber transitions Running→Idle.
func (s *Scheduler) LastSubscriber() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel == nil {
		return
	}
	log.Printf("scheduler: stopping, no subscribers")
	s.cancel()
	s.cancel = nil
}

// Shutdown stops the loop regardless of subscriber count, for process
// shutdown.
func (s *Scheduler) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// ForceUpdate runs one cycle immediately in either state. It neither
// changes state nor resets the timer phase; the result is broadcast only if
// subscribers are present.
func (s *Scheduler) ForceUpdate() {
	s.tick(context.Background())
}

func (s *Scheduler) run(ctx context.Context) {
	// The loop context only gates the loop itself. A cycle already in
	// flight when the last subscriber leaves must run to completion so the
	// stored snapshot stays intact; its result is broadcast to nobody.
	s.tick(context.WithoutCancel(ctx))
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(context.WithoutCancel(ctx))
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	snap, err := s.runner.RunCycle(ctx)
	if err != nil {
		log.Printf("scheduler: degraded cycle: %v", err)
		s.bcast.Broadcast(hub.EventError, hub.ErrorPayload{
			Message:   err.Error(),
			Timestamp: utils.Iso8601Now(),
		})
	}
	if s.bcast.SubscriberCount() > 0 {
		s.bcast.Broadcast(hub.EventBulkUpdate, hub.UpdateFrom(snap))
	}
}
