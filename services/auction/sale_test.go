package auction

import (
	"testing"
	"time"

	auction_constants "Gavel/constants/auction"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceBidValidationOrder(t *testing.T) {
	e, _, _ := newTestEngine(t)
	startAuction(t, e)

	// Unknown team.
	assert.ErrorIs(t, e.PlaceBid("room1", connA, pidA, "nope", 20), ErrTeamNotFound)

	// Bidding on a team you don't own.
	assert.ErrorIs(t, e.PlaceBid("room1", connA, pidA, "bravo", 20), ErrUnauthorized)

	// First bid below the base price of 10.
	assert.ErrorIs(t, e.PlaceBid("room1", connA, pidA, "alpha", 5), ErrBidTooLow)

	// First bid at the base price is fine.
	require.NoError(t, e.PlaceBid("room1", connA, pidA, "alpha", 10))

	// Raising your own bid.
	assert.ErrorIs(t, e.PlaceBid("room1", connA, pidA, "alpha", 15), ErrAlreadyHighBidder)

	// Matching the current bid is not a raise.
	assert.ErrorIs(t, e.PlaceBid("room1", connB, pidB, "bravo", 10), ErrBidTooLow)

	// More than the team has.
	assert.ErrorIs(t, e.PlaceBid("room1", connB, pidB, "bravo", 101), ErrInsufficientBudget)

	require.NoError(t, e.PlaceBid("room1", connB, pidB, "bravo", 15))

	room := getRoom(t, e, "room1")
	room.mu.Lock()
	assert.Equal(t, 15, room.CurrentBid)
	assert.Equal(t, "bravo", room.CurrentBidder)
	room.mu.Unlock()
}

func TestPlaceBidOutsideActiveAuction(t *testing.T) {
	e, _, _ := newTestEngine(t)
	createLobby(t, e)

	assert.ErrorIs(t, e.PlaceBid("room1", connA, pidA, "alpha", 20), ErrAuctionNotActive)
}

func TestPlaceBidRejectedWhilePaused(t *testing.T) {
	e, _, _ := newTestEngine(t)
	startAuction(t, e)

	require.NoError(t, e.ToggleTimer("room1", adminConn))
	assert.ErrorIs(t, e.PlaceBid("room1", connA, pidA, "alpha", 20), ErrAuctionNotActive)

	require.NoError(t, e.ToggleTimer("room1", adminConn))
	assert.NoError(t, e.PlaceBid("room1", connA, pidA, "alpha", 20))
}

func TestTimerExpiryChargesHighestBidder(t *testing.T) {
	e, b, clock := newTestEngine(t)
	startAuction(t, e)

	require.NoError(t, e.PlaceBid("room1", connA, pidA, "alpha", 20))
	require.NoError(t, e.PlaceBid("room1", connB, pidB, "bravo", 25))

	clock.Advance(10 * time.Second)

	sales := b.roomEvents("sale_finalized")
	require.Len(t, sales, 1)
	assert.Len(t, b.roomEvents("timer_ended"), 1)

	payload, ok := sales[0].payload.(gin.H)
	require.True(t, ok)
	assert.Equal(t, false, payload["isUnsold"])
	assert.Equal(t, 25, payload["price"])
	details, ok := payload["soldDetails"].(gin.H)
	require.True(t, ok)
	assert.Equal(t, "Bravo", details["soldTeam"])
	soldLot, ok := payload["soldLot"].(Lot)
	require.True(t, ok)
	assert.Equal(t, "l1", soldLot.ID)
	assert.NotNil(t, payload["updatedTeams"])

	room := getRoom(t, e, "room1")
	room.mu.Lock()
	alpha := room.findTeam("alpha")
	bravo := room.findTeam("bravo")
	assert.Equal(t, 100, alpha.Budget)
	assert.Empty(t, alpha.Roster)
	assert.Equal(t, 75, bravo.Budget)
	assert.Equal(t, 25, bravo.TotalSpent)
	assert.Equal(t, 1, bravo.TotalPlayers)
	require.Len(t, bravo.Roster, 1)
	assert.Equal(t, "l1", bravo.Roster[0].ID)
	assert.Equal(t, 25, bravo.Roster[0].SoldPrice)
	assert.Equal(t, LotSold, room.Queue[0].Status)
	assert.True(t, room.SellingInProgress)
	assert.Equal(t, 0, room.AuctionIndex)
	room.mu.Unlock()

	// Settle window elapses, next lot opens, index advanced exactly once.
	clock.Advance(auction_constants.SettleDelay)

	room.mu.Lock()
	assert.False(t, room.SellingInProgress)
	assert.Equal(t, 1, room.AuctionIndex)
	require.NotNil(t, room.CurrentLot)
	assert.Equal(t, "l2", room.CurrentLot.ID)
	assert.Equal(t, 5, room.CurrentBid)
	assert.Equal(t, "", room.CurrentBidder)
	room.mu.Unlock()

	lots := b.roomEvents("update_lot")
	require.Len(t, lots, 2)
	next, ok := lots[1].payload.(gin.H)
	require.True(t, ok)
	assert.Equal(t, 2, next["lotNumber"])
	assert.Equal(t, 5, next["currentBid"])
	assert.Equal(t, 10, e.timers.Remaining("room1"))
}

func TestLotWithoutBidsGoesUnsold(t *testing.T) {
	e, b, clock := newTestEngine(t)
	startAuction(t, e)

	clock.Advance(10 * time.Second)

	sales := b.roomEvents("sale_finalized")
	require.Len(t, sales, 1)

	payload, ok := sales[0].payload.(gin.H)
	require.True(t, ok)
	assert.Equal(t, true, payload["isUnsold"])
	assert.Equal(t, 0, payload["price"])
	details, ok := payload["soldDetails"].(gin.H)
	require.True(t, ok)
	assert.Equal(t, "", details["soldTeam"])

	room := getRoom(t, e, "room1")
	room.mu.Lock()
	assert.Equal(t, LotUnsold, room.Queue[0].Status)
	assert.Equal(t, 100, room.findTeam("alpha").Budget)
	assert.Equal(t, 100, room.findTeam("bravo").Budget)
	room.mu.Unlock()
}

func TestFinalizeSaleHappensOnce(t *testing.T) {
	e, b, clock := newTestEngine(t)
	startAuction(t, e)

	require.NoError(t, e.PlaceBid("room1", connA, pidA, "alpha", 30))

	require.NoError(t, e.AdminFinalize("room1", adminConn))

	// The timer-side trigger arrives after the admin already won the race.
	assert.ErrorIs(t, e.FinalizeSale("room1", TriggerTimer), ErrStateConflict)
	assert.ErrorIs(t, e.AdminFinalize("room1", adminConn), ErrStateConflict)

	room := getRoom(t, e, "room1")
	room.mu.Lock()
	alpha := room.findTeam("alpha")
	assert.Equal(t, 70, alpha.Budget)
	assert.Equal(t, 1, alpha.TotalPlayers)
	room.mu.Unlock()

	assert.Len(t, b.roomEvents("sale_finalized"), 1)
	// The admin trigger notifies clients the countdown is over too.
	assert.Len(t, b.roomEvents("timer_ended"), 1)

	// The countdown was stopped by the finalize; letting time run must not
	// produce a second sale.
	clock.Advance(30 * time.Second)
	assert.Len(t, b.roomEvents("sale_finalized"), 1)
}

func TestAdminFinalizeRequiresAdmin(t *testing.T) {
	e, _, _ := newTestEngine(t)
	startAuction(t, e)

	assert.ErrorIs(t, e.AdminFinalize("room1", connA), ErrUnauthorized)
}

func TestSettleSkipsResolvedLots(t *testing.T) {
	e, _, clock := newTestEngine(t)
	startAuction(t, e)

	room := getRoom(t, e, "room1")
	room.mu.Lock()
	room.Queue[1].Status = LotUnsold
	room.mu.Unlock()

	require.NoError(t, e.AdminFinalize("room1", adminConn))
	clock.Advance(auction_constants.SettleDelay)

	room.mu.Lock()
	assert.Equal(t, 2, room.AuctionIndex)
	require.NotNil(t, room.CurrentLot)
	assert.Equal(t, "l3", room.CurrentLot.ID)
	room.mu.Unlock()
}

func TestQueueExhaustionOpensSquadSelection(t *testing.T) {
	e, b, clock := newTestEngine(t)
	startAuction(t, e)

	for i := 0; i < 3; i++ {
		require.NoError(t, e.AdminFinalize("room1", adminConn))
		clock.Advance(auction_constants.SettleDelay)
	}

	room := getRoom(t, e, "room1")
	room.mu.Lock()
	assert.Equal(t, PhaseSquadSelection, room.Phase)
	assert.Nil(t, room.CurrentLot)
	room.mu.Unlock()

	assert.Len(t, b.roomEvents("open_squad_selection"), 1)
	assert.False(t, e.timers.Running("room1"))

	// No further finalization is possible.
	assert.ErrorIs(t, e.AdminFinalize("room1", adminConn), ErrStateConflict)
}

func TestEndAuctionForcesSquadSelection(t *testing.T) {
	e, b, _ := newTestEngine(t)
	startAuction(t, e)

	assert.ErrorIs(t, e.EndAuction("room1", connA), ErrUnauthorized)
	require.NoError(t, e.EndAuction("room1", adminConn))

	room := getRoom(t, e, "room1")
	room.mu.Lock()
	assert.Equal(t, PhaseSquadSelection, room.Phase)
	assert.Equal(t, LotPending, room.Queue[0].Status)
	room.mu.Unlock()

	assert.False(t, e.timers.Running("room1"))
	assert.Len(t, b.roomEvents("open_squad_selection"), 1)

	assert.ErrorIs(t, e.EndAuction("room1", adminConn), ErrStateConflict)
}

func TestResolvedLotStatusIsTerminal(t *testing.T) {
	e, _, clock := newTestEngine(t)
	startAuction(t, e)

	require.NoError(t, e.PlaceBid("room1", connA, pidA, "alpha", 12))
	require.NoError(t, e.AdminFinalize("room1", adminConn))
	clock.Advance(auction_constants.SettleDelay)

	// Resolve the rest of the queue; the first lot keeps its price.
	require.NoError(t, e.AdminFinalize("room1", adminConn))
	clock.Advance(auction_constants.SettleDelay)
	require.NoError(t, e.AdminFinalize("room1", adminConn))
	clock.Advance(auction_constants.SettleDelay)

	room := getRoom(t, e, "room1")
	room.mu.Lock()
	assert.Equal(t, LotSold, room.Queue[0].Status)
	assert.Equal(t, 12, room.Queue[0].SoldPrice)
	assert.Equal(t, LotUnsold, room.Queue[1].Status)
	assert.Equal(t, LotUnsold, room.Queue[2].Status)
	room.mu.Unlock()
}
