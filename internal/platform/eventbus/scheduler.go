package eventbus

import (
	"sync"
	"time"
)

// Scheduler decides when a pending delivery runs. Every Notify that finds no
// pending delivery on its channel hands exactly one func to Schedule.
type Scheduler interface {
	Schedule(fn func())
}

// TimerScheduler runs deliveries on a timer goroutine after window. Notifies
// arriving inside the window collapse into the same delivery.
type TimerScheduler struct {
	window time.Duration
	wg     sync.WaitGroup
}

func NewTimerScheduler(window time.Duration) *TimerScheduler {
	return &TimerScheduler{window: window}
}

func (s *TimerScheduler) Schedule(fn func()) {
	s.wg.Add(1)
	time.AfterFunc(s.window, func() {
		defer s.wg.Done()
		fn()
	})
}

// Wait blocks until every scheduled func has returned.
func (s *TimerScheduler) Wait() {
	s.wg.Wait()
}

// ManualScheduler queues deliveries until Drain is called. It gives tests and
// headless commands an explicit end of the current execution window.
type ManualScheduler struct {
	mu    sync.Mutex
	queue []func()
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) Schedule(fn func()) {
	s.mu.Lock()
	s.queue = append(s.queue, fn)
	s.mu.Unlock()
}

// Drain runs queued deliveries, including any scheduled while draining, and
// returns how many ran.
func (s *ManualScheduler) Drain() int {
	ran := 0
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.mu.Unlock()
			return ran
		}
		next := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()
		next()
		ran++
	}
}

// Pending reports how many deliveries are queued.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}
