package auction

import (
	"math"
	"sync"
	"time"

	auction_constants "Gavel/constants/auction"

	"github.com/jonboulle/clockwork"
)

// TimerCoordinator runs one countdown per room. Remaining time is always
// derived from an absolute deadline, never from a stored counter, so resync
// after pause cycles or slow clients cannot drift.
type TimerCoordinator struct {
	clock     clockwork.Clock
	broadcast Broadcaster
	onExpire  func(roomID string)

	mu     sync.Mutex
	timers map[string]*roomTimer
}

type roomTimer struct {
	deadline time.Time
	paused   bool
	tick     clockwork.Timer
}

func NewTimerCoordinator(clock clockwork.Clock, broadcast Broadcaster, onExpire func(roomID string)) *TimerCoordinator {
	return &TimerCoordinator{
		clock:     clock,
		broadcast: broadcast,
		onExpire:  onExpire,
		timers:    make(map[string]*roomTimer),
	}
}

func (tc *TimerCoordinator) duration() time.Duration {
	return time.Duration(auction_constants.AuctionTimerSeconds) * time.Second
}

// Start resets the countdown to the full duration. A running timer with
// nearly the full window left is not restarted (debounce), so rapid bid
// exchanges don't make the clock jump back and forth.
func (tc *TimerCoordinator) Start(roomID string) {
	tc.mu.Lock()
	dur := tc.duration()
	debounce := time.Duration(auction_constants.TimerDebounceSeconds) * time.Second
	t := tc.timers[roomID]
	if t != nil {
		if !t.paused && t.deadline.Sub(tc.clock.Now()) >= dur-debounce {
			tc.mu.Unlock()
			return
		}
		t.deadline = tc.clock.Now().Add(dur)
		t.paused = false
	} else {
		t = &roomTimer{deadline: tc.clock.Now().Add(dur)}
		tc.timers[roomID] = t
		t.tick = tc.clock.AfterFunc(auction_constants.TimerTickInterval, func() { tc.handleTick(roomID) })
	}
	tc.mu.Unlock()

	tc.broadcast.ToRoom(roomID, "timer_tick", auction_constants.AuctionTimerSeconds)
	tc.broadcast.ToRoom(roomID, "timer_status", false)
}

func (tc *TimerCoordinator) handleTick(roomID string) {
	tc.mu.Lock()
	t := tc.timers[roomID]
	if t == nil {
		// Cancelled between scheduling and firing.
		tc.mu.Unlock()
		return
	}

	if t.paused {
		// Push the deadline forward by exactly one tick so the remaining
		// time is preserved across the pause.
		t.deadline = t.deadline.Add(auction_constants.TimerTickInterval)
		t.tick = tc.clock.AfterFunc(auction_constants.TimerTickInterval, func() { tc.handleTick(roomID) })
		tc.mu.Unlock()
		return
	}

	remaining := remainingSeconds(t.deadline, tc.clock.Now())
	if remaining <= 0 {
		delete(tc.timers, roomID)
		tc.mu.Unlock()
		tc.broadcast.ToRoom(roomID, "timer_tick", 0)
		tc.onExpire(roomID)
		return
	}

	t.tick = tc.clock.AfterFunc(auction_constants.TimerTickInterval, func() { tc.handleTick(roomID) })
	tc.mu.Unlock()

	tc.broadcast.ToRoom(roomID, "timer_tick", remaining)
}

// Stop cancels the room's countdown. Safe to call when no timer is running.
func (tc *TimerCoordinator) Stop(roomID string) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	if t := tc.timers[roomID]; t != nil {
		if t.tick != nil {
			t.tick.Stop()
		}
		delete(tc.timers, roomID)
	}
}

// Toggle flips the pause state and reports the new one. Resuming re-announces
// the remaining time so clients repaint immediately.
func (tc *TimerCoordinator) Toggle(roomID string) (bool, error) {
	tc.mu.Lock()
	t := tc.timers[roomID]
	if t == nil {
		tc.mu.Unlock()
		return false, ErrStateConflict
	}
	t.paused = !t.paused
	paused := t.paused
	remaining := remainingSeconds(t.deadline, tc.clock.Now())
	tc.mu.Unlock()

	tc.broadcast.ToRoom(roomID, "timer_status", paused)
	if !paused {
		tc.broadcast.ToRoom(roomID, "timer_tick", remaining)
	}
	return paused, nil
}

func (tc *TimerCoordinator) Paused(roomID string) bool {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	t := tc.timers[roomID]
	return t != nil && t.paused
}

// Remaining reports the seconds left on the room's countdown, computed from
// the deadline. Rooms without a running timer report zero.
func (tc *TimerCoordinator) Remaining(roomID string) int {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	t := tc.timers[roomID]
	if t == nil {
		return 0
	}
	r := remainingSeconds(t.deadline, tc.clock.Now())
	if r < 0 {
		return 0
	}
	return r
}

func (tc *TimerCoordinator) Running(roomID string) bool {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.timers[roomID] != nil
}

func remainingSeconds(deadline, now time.Time) int {
	return int(math.Ceil(deadline.Sub(now).Seconds()))
}
