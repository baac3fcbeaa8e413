package engine

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"
)

// scheduled is one pending callback, ordered by deadline then registration
type scheduled struct {
	name     string
	deadline time.Time
	seq      uint64
	fn       func()
}

// Scheduler registers fire-and-forget one-shot callbacks at clock deadlines
// Callbacks run one at a time in deadline order; coincident deadlines run in registration order
// There is no drift correction or re-synchronization once a callback is registered
type Scheduler struct {
	clock *PlaybackClock
	tp    TimeProvider
	guard func(func())
	spawn func(func())

	mu          sync.Mutex
	queue       []scheduled
	seq         uint64
	timer       Timer
	dispatching bool
	stopped     bool
	wg          sync.WaitGroup
}

// NewScheduler creates a scheduler over clock
// guard wraps each callback on the dispatch goroutine, spawn starts tracked goroutines for Go
// Either may be nil
func NewScheduler(clock *PlaybackClock, tp TimeProvider, guard, spawn func(func())) *Scheduler {
	return &Scheduler{
		clock: clock,
		tp:    tp,
		guard: guard,
		spawn: spawn,
	}
}

// At registers fn to run at the deadline for logical offset
// Elapsed deadlines are due immediately and keep registration order; returns false after Stop
// fn runs on the dispatch goroutine and must hand long work to Go
func (s *Scheduler) At(name string, offset time.Duration, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return false
	}

	delay := s.clock.Delay(offset)
	log.Printf("[SCHED] %s at %v (delay %v)", name, offset, delay)

	s.seq++
	e := scheduled{name: name, deadline: s.tp.Now().Add(delay), seq: s.seq, fn: fn}
	i := sort.Search(len(s.queue), func(i int) bool {
		return s.queue[i].deadline.After(e.deadline)
	})
	s.queue = append(s.queue, scheduled{})
	copy(s.queue[i+1:], s.queue[i:])
	s.queue[i] = e

	s.wg.Add(1)
	if i == 0 {
		s.arm()
	}
	return true
}

// Go runs fn on a new goroutine that Wait also waits for
func (s *Scheduler) Go(fn func()) {
	s.wg.Add(1)
	run := func() {
		defer s.wg.Done()
		fn()
	}
	if s.spawn != nil {
		s.spawn(run)
		return
	}
	go run()
}

// Len returns the number of callbacks still queued
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// arm points the single underlying timer at the queue head, caller holds lock
func (s *Scheduler) arm() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.stopped || len(s.queue) == 0 {
		return
	}
	delay := max(0, s.queue[0].deadline.Sub(s.tp.Now()))
	s.timer = s.tp.AfterFunc(delay, s.dispatch)
}

// dispatch drains every due callback in queue order
// Only one goroutine dispatches at a time; a concurrent timer leaves the draining to it
func (s *Scheduler) dispatch() {
	s.mu.Lock()
	if s.dispatching {
		s.mu.Unlock()
		return
	}
	s.dispatching = true

	for !s.stopped && len(s.queue) > 0 && !s.queue[0].deadline.After(s.tp.Now()) {
		e := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()
		s.invoke(e)
		s.mu.Lock()
	}

	s.dispatching = false
	s.arm()
	s.mu.Unlock()
}

func (s *Scheduler) invoke(e scheduled) {
	defer s.wg.Done()
	if s.guard != nil {
		s.guard(e.fn)
		return
	}
	e.fn()
}

// Wait blocks until every registered callback and every Go function has returned or ctx ends
func (s *Scheduler) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop abandons all queued callbacks
// Callbacks and Go functions already running are not interrupted
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.stopped = true

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	for range s.queue {
		s.wg.Done()
	}
	s.queue = nil
}
