package binsort

import "time"

// Timer identifies a scheduled callback. Lower values fire first when
// two timers are due at the same instant.
type Timer int

const (
	TimerDifficulty Timer = iota
	TimerSpawn
	timerCount
)

// String returns the timer name.
func (t Timer) String() string {
	switch t {
	case TimerDifficulty:
		return "difficulty"
	case TimerSpawn:
		return "spawn"
	default:
		return "unknown"
	}
}

type timerSlot struct {
	due   time.Duration
	every time.Duration // 0 for single-shot
	gen   uint64
	armed bool
}

// Scheduler is a simulated clock driving the game timers. It never reads
// wall time: the host advances it explicitly.
type Scheduler struct {
	now   time.Duration
	gen   uint64
	slots [timerCount]timerSlot
}

// NewScheduler creates a scheduler at time zero with nothing armed.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the simulated time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After arms t to fire once after delay, replacing any previous arm.
func (s *Scheduler) After(t Timer, delay time.Duration) {
	s.arm(t, delay, 0)
}

// Every arms t to fire repeatedly. Non-positive intervals are ignored.
func (s *Scheduler) Every(t Timer, interval time.Duration) {
	if interval <= 0 {
		return
	}
	s.arm(t, interval, interval)
}

func (s *Scheduler) arm(t Timer, delay, every time.Duration) {
	if delay < 0 {
		delay = 0
	}
	s.slots[t] = timerSlot{due: s.now + delay, every: every, gen: s.gen, armed: true}
}

// Cancel disarms one timer.
func (s *Scheduler) Cancel(t Timer) {
	s.slots[t].armed = false
}

// CancelAll disarms every timer. Arms made before the call can never fire.
func (s *Scheduler) CancelAll() {
	s.gen++
	for i := range s.slots {
		s.slots[i].armed = false
	}
}

// Armed reports whether t is waiting to fire.
func (s *Scheduler) Armed(t Timer) bool {
	slot := s.slots[t]
	return slot.armed && slot.gen == s.gen
}

// Until returns the time left before t fires, or false if it is not armed.
func (s *Scheduler) Until(t Timer) (time.Duration, bool) {
	if !s.Armed(t) {
		return 0, false
	}
	return s.slots[t].due - s.now, true
}

// Advance moves the clock forward by dt and fires every timer that
// becomes due, in due order. The clock is set to each due time before its
// callback runs, so callbacks re-arming timers do so relative to the
// moment they fired. Timers cancelled by a callback do not fire.
// Returns the number of callbacks run.
func (s *Scheduler) Advance(dt time.Duration, fire func(Timer)) int {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt
	fired := 0
	for {
		next, ok := s.nextDue(target)
		if !ok {
			break
		}
		slot := &s.slots[next]
		s.now = slot.due
		if slot.every > 0 {
			slot.due += slot.every
		} else {
			slot.armed = false
		}
		fired++
		if fire != nil {
			fire(next)
		}
	}
	s.now = target
	return fired
}

// nextDue returns the armed timer with the earliest due time not after limit.
func (s *Scheduler) nextDue(limit time.Duration) (Timer, bool) {
	best := Timer(-1)
	for t := range timerCount {
		if !s.Armed(t) || s.slots[t].due > limit {
			continue
		}
		if best < 0 || s.slots[t].due < s.slots[best].due {
			best = t
		}
	}
	return best, best >= 0
}
