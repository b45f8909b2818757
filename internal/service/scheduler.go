package service

import (
	"sync"
	"time"
)

type task struct {
	timer *time.Timer
	fn    func()
}

// Scheduler runs deferred one-shot tasks keyed by id. Each task keeps
// a cancellation handle so callers (and tests) can observe and resolve
// the scheduled state without waiting on the wall clock.
type Scheduler struct {
	mu    sync.Mutex
	tasks map[string]*task
}

func NewScheduler() *Scheduler {
	return &Scheduler{tasks: make(map[string]*task)}
}

// Schedule queues fn to run after delay. Re-scheduling the same id
// replaces the pending task.
func (s *Scheduler) Schedule(id string, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tasks[id]; ok {
		t.timer.Stop()
	}
	t := &task{fn: fn}
	t.timer = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.tasks, id)
		s.mu.Unlock()
		fn()
	})
	s.tasks[id] = t
}

// Cancel stops a pending task. Reports whether one was pending.
func (s *Scheduler) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return false
	}
	t.timer.Stop()
	delete(s.tasks, id)
	return true
}

// Scheduled reports whether the id has a pending task.
func (s *Scheduler) Scheduled(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tasks[id]
	return ok
}

// Fire runs a pending task immediately instead of at its deadline.
// Reports whether the task was still pending.
func (s *Scheduler) Fire(id string) bool {
	s.mu.Lock()
	t, ok := s.tasks[id]
	if !ok || !t.timer.Stop() {
		s.mu.Unlock()
		return false
	}
	delete(s.tasks, id)
	s.mu.Unlock()
	t.fn()
	return true
}
