package auction

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCoordinator() (*TimerCoordinator, *recordingBroadcaster, *clockwork.FakeClock, *[]string) {
	clock := clockwork.NewFakeClock()
	broadcast := &recordingBroadcaster{}
	var expired []string
	tc := NewTimerCoordinator(clock, broadcast, func(roomID string) {
		expired = append(expired, roomID)
	})
	return tc, broadcast, clock, &expired
}

func TestTimerCountsDownAndExpires(t *testing.T) {
	tc, b, clock, expired := newTestCoordinator()

	tc.Start("room1")
	assert.Equal(t, 10, tc.Remaining("room1"))

	clock.Advance(4 * time.Second)
	assert.Equal(t, 6, tc.Remaining("room1"))

	clock.Advance(6 * time.Second)
	assert.Equal(t, []string{"room1"}, *expired)
	assert.False(t, tc.Running("room1"))

	// Every second produced a tick, ending at zero.
	ticks := b.roomEvents("timer_tick")
	require.NotEmpty(t, ticks)
	assert.Equal(t, 0, ticks[len(ticks)-1].payload)
}

func TestTimerDebouncesEarlyRestart(t *testing.T) {
	tc, _, clock, _ := newTestCoordinator()

	tc.Start("room1")
	clock.Advance(1 * time.Second)
	require.Equal(t, 9, tc.Remaining("room1"))

	// 9s left is within the debounce window, restart is ignored.
	tc.Start("room1")
	assert.Equal(t, 9, tc.Remaining("room1"))

	clock.Advance(2 * time.Second)
	require.Equal(t, 7, tc.Remaining("room1"))

	// Below the window, restart resets to the full duration.
	tc.Start("room1")
	assert.Equal(t, 10, tc.Remaining("room1"))
}

func TestTimerPausePreservesRemaining(t *testing.T) {
	tc, _, clock, expired := newTestCoordinator()

	tc.Start("room1")
	clock.Advance(3 * time.Second)
	require.Equal(t, 7, tc.Remaining("room1"))

	paused, err := tc.Toggle("room1")
	require.NoError(t, err)
	require.True(t, paused)

	// Time passes while paused; the deadline slides with it.
	clock.Advance(5 * time.Second)
	assert.InDelta(t, 7, tc.Remaining("room1"), 1)
	assert.Empty(t, *expired)

	paused, err = tc.Toggle("room1")
	require.NoError(t, err)
	require.False(t, paused)

	clock.Advance(8 * time.Second)
	assert.Equal(t, []string{"room1"}, *expired)
}

func TestTimerToggleWithoutTimer(t *testing.T) {
	tc, _, _, _ := newTestCoordinator()

	_, err := tc.Toggle("room1")
	assert.ErrorIs(t, err, ErrStateConflict)
}

func TestTimerStopCancelsCountdown(t *testing.T) {
	tc, _, clock, expired := newTestCoordinator()

	tc.Start("room1")
	clock.Advance(2 * time.Second)
	tc.Stop("room1")

	clock.Advance(20 * time.Second)
	assert.Empty(t, *expired)
	assert.Equal(t, 0, tc.Remaining("room1"))
}

func TestTimerRoomsAreIndependent(t *testing.T) {
	tc, _, clock, expired := newTestCoordinator()

	tc.Start("room1")
	clock.Advance(5 * time.Second)
	tc.Start("room2")

	clock.Advance(5 * time.Second)
	assert.Equal(t, []string{"room1"}, *expired)
	assert.Equal(t, 5, tc.Remaining("room2"))

	clock.Advance(5 * time.Second)
	assert.Equal(t, []string{"room1", "room2"}, *expired)
}
