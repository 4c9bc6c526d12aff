package client

import (
	"sync"
	"time"
)

// SessionTimer is the single resettable countdown behind the gateway's
// inactivity probe. Every reset cancels the pending callback and schedules a
// fresh one; the callback only ever fires after a full interval with no
// traffic. The timer is armed lazily by the first Reset.
type SessionTimer struct {
	mu       sync.Mutex
	interval time.Duration
	fire     func()
	timer    *time.Timer
	stopped  bool
}

// NewSessionTimer builds a timer that invokes fire after interval of
// inactivity. It stays disarmed until the first Reset.
func NewSessionTimer(interval time.Duration, fire func()) *SessionTimer {
	return &SessionTimer{interval: interval, fire: fire}
}

// Reset postpones the countdown by a full interval, arming the timer if it
// was not running yet.
func (s *SessionTimer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped || s.interval <= 0 {
		return
	}
	if s.timer == nil {
		s.timer = time.AfterFunc(s.interval, s.fire)
		return
	}
	s.timer.Stop()
	s.timer.Reset(s.interval)
}

// Stop cancels the countdown permanently. A stopped timer ignores further
// resets.
func (s *SessionTimer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
	}
}
