package auction_constants

import "time"

const AuctionTimerSeconds = 10

// A bid placed with almost the full window remaining does not restart the
// countdown, so rapid bid exchanges don't make the clock jitter.
const TimerDebounceSeconds = 2

const TimerTickInterval = 1 * time.Second

// Pause between a lot being resolved and the next lot opening.
const SettleDelay = 4 * time.Second

// How long a finished room stays around before it is removed from the
// registry and the mirror.
const RoomCleanupDelay = 60 * time.Second

const DefaultTeamBudget = 10000

// Snapshot TTL in the Redis mirror.
const SnapshotTTL = 24 * time.Hour
