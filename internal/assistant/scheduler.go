package assistant

import (
	"sync"
	"time"
)

// Task is a handle on a deferred function
type Task struct {
	once      sync.Once
	timer     *time.Timer
	owner     *Scheduler
	session   string
	cancelled func()
}

// Cancel stops the task if it has not run yet. It reports whether the
// call prevented the function from running.
func (t *Task) Cancel() bool {
	stopped := t.stop()
	t.owner.forget(t)
	return stopped
}

func (t *Task) stop() bool {
	if !t.timer.Stop() {
		return false
	}
	if t.cancelled != nil {
		t.cancelled()
	}
	return true
}

// Scheduler runs deferred work per session and cancels it on disposal
type Scheduler struct {
	mu      sync.Mutex
	pending map[string]map[*Task]struct{}
	stopped bool
}

// NewScheduler creates an empty scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{pending: make(map[string]map[*Task]struct{})}
}

// Schedule runs fn after delay unless the task is cancelled first. It
// returns nil once the scheduler is stopped.
func (s *Scheduler) Schedule(session string, delay time.Duration, fn func()) *Task {
	return s.ScheduleOrCancel(session, delay, fn, nil)
}

// ScheduleOrCancel is Schedule with a hook that runs instead of fn when
// the task is cancelled before it fires.
func (s *Scheduler) ScheduleOrCancel(session string, delay time.Duration, fn, cancelled func()) *Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return nil
	}

	t := &Task{owner: s, session: session, cancelled: cancelled}
	// the task stays pending until fn returns
	t.timer = time.AfterFunc(delay, func() {
		defer s.forget(t)
		fn()
	})

	tasks, ok := s.pending[session]
	if !ok {
		tasks = make(map[*Task]struct{})
		s.pending[session] = tasks
	}
	tasks[t] = struct{}{}
	return t
}

// CancelSession cancels every outstanding task of session and returns
// how many were stopped before running.
func (s *Scheduler) CancelSession(session string) int {
	s.mu.Lock()
	tasks := s.pending[session]
	delete(s.pending, session)
	s.mu.Unlock()

	n := 0
	for t := range tasks {
		if t.stop() {
			n++
		}
	}
	return n
}

// Pending returns the number of outstanding tasks of session, counting
// one that is running
func (s *Scheduler) Pending(session string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending[session])
}

// Stop cancels all tasks and refuses new ones
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	all := s.pending
	s.pending = make(map[string]map[*Task]struct{})
	s.mu.Unlock()

	for _, tasks := range all {
		for t := range tasks {
			t.stop()
		}
	}
}

func (s *Scheduler) forget(t *Task) {
	t.once.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if tasks, ok := s.pending[t.session]; ok {
			delete(tasks, t)
			if len(tasks) == 0 {
				delete(s.pending, t.session)
			}
		}
	})
}
