package view

import (
	"sync"
	"time"
)

// Session owns one view state and its pending loading transition. It is safe
// for concurrent use; the loading task runs on the clock's goroutine.
type Session struct {
	mu      sync.Mutex
	state   State
	task    Timer
	readyFn func()
}

// NewSession starts a view in the loading state and schedules the single
// transition to ready after delay.
func NewSession(clock Clock, delay time.Duration) *Session {
	s := &Session{state: Initial()}
	s.mu.Lock()
	s.task = clock.AfterFunc(delay, s.finishLoading)
	s.mu.Unlock()
	return s
}

// OnReady registers f to run once the loading transition fires. It must be
// called before the transition; later registrations are ignored.
func (s *Session) OnReady(f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Loading {
		s.readyFn = f
	}
}

func (s *Session) finishLoading() {
	s.mu.Lock()
	if !s.state.Loading {
		s.mu.Unlock()
		return
	}
	s.state = s.state.SetLoading(false)
	s.task = nil
	fn := s.readyFn
	s.readyFn = nil
	s.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// State returns a snapshot of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SelectTab sets the active tab and returns the resulting state. Selecting
// while loading records the choice; it becomes visible once ready.
func (s *Session) SelectTab(t Tab) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.SetActiveTab(t)
	return s.state
}

// Close cancels the loading transition if it has not fired. It reports
// whether a pending task was cancelled.
func (s *Session) Close() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.task == nil {
		return false
	}
	stopped := s.task.Stop()
	s.task = nil
	s.readyFn = nil
	return stopped
}
