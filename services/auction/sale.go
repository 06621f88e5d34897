package auction

import (
	"log"

	auction_constants "Gavel/constants/auction"

	"github.com/gin-gonic/gin"
)

// SaleTrigger records what fired a finalization. Both paths race for the same
// latch; whichever loses becomes a no-op.
type SaleTrigger string

const (
	TriggerTimer SaleTrigger = "timer"
	TriggerAdmin SaleTrigger = "admin"
)

// AdminFinalize is the manual hammer: the admin closes the current lot
// without waiting for the countdown.
func (e *Engine) AdminFinalize(roomID, connID string) error {
	room, err := e.registry.Get(roomID)
	if err != nil {
		return err
	}
	room.mu.Lock()
	authorized := room.requireAdmin(connID)
	room.mu.Unlock()
	if !authorized {
		return ErrUnauthorized
	}
	return e.FinalizeSale(roomID, TriggerAdmin)
}

// FinalizeSale resolves the current lot exactly once. The SellingInProgress
// latch is tested and set under the room mutex, so a timer expiry and an
// admin hammer arriving together produce one sale and one charge.
func (e *Engine) FinalizeSale(roomID string, trigger SaleTrigger) error {
	room, err := e.registry.Get(roomID)
	if err != nil {
		return err
	}

	room.mu.Lock()
	if room.Phase != PhaseAuctionActive || room.CurrentLot == nil || room.SellingInProgress {
		room.mu.Unlock()
		return ErrStateConflict
	}
	room.SellingInProgress = true
	e.timers.Stop(roomID)

	lot := room.CurrentLot
	var soldTo *Team
	if room.CurrentBidder != "" {
		soldTo = room.findTeam(room.CurrentBidder)
	}

	if soldTo != nil {
		lot.Status = LotSold
		lot.SoldPrice = room.CurrentBid
		soldTo.Budget -= room.CurrentBid
		soldTo.TotalSpent += room.CurrentBid
		soldTo.TotalPlayers++
		soldTo.Roster = append(soldTo.Roster, *lot)
	} else {
		lot.Status = LotUnsold
	}

	lotCopy := *lot
	soldTeamName := ""
	if soldTo != nil {
		soldTeamName = soldTo.Name
	}
	teams := room.teamsCopy()
	snap := room.snapshotLocked()
	room.mu.Unlock()

	// Both triggers end the countdown for clients, not just timer expiry.
	e.broadcast.ToRoom(roomID, "timer_ended", nil)
	e.broadcast.ToRoom(roomID, "sale_finalized", gin.H{
		"soldLot":      lotCopy,
		"isUnsold":     soldTo == nil,
		"soldDetails":  gin.H{"soldTeam": soldTeamName},
		"price":        lotCopy.SoldPrice,
		"updatedTeams": teams,
	})
	e.mirrorSnapshot(snap)
	log.Printf("[SALE] room %s lot %s resolved as %s (trigger=%s)", roomID, lotCopy.Name, lotCopy.Status, trigger)

	// Hold the room in the settled state for a few seconds before the next
	// lot so clients can show the result.
	e.clock.AfterFunc(auction_constants.SettleDelay, func() { e.settle(roomID) })
	return nil
}

// settle ends the post-sale pause: it clears the latch, advances the queue
// and either opens the next lot or completes the auction.
func (e *Engine) settle(roomID string) {
	room, err := e.registry.Get(roomID)
	if err != nil {
		return
	}

	room.mu.Lock()
	if room.Phase != PhaseAuctionActive || !room.SellingInProgress {
		// The room moved on (forced end, cleanup) while we waited.
		room.mu.Unlock()
		return
	}
	room.SellingInProgress = false
	room.AuctionIndex++
	opened := e.openNextLotLocked(room)
	snap := room.snapshotLocked()
	room.mu.Unlock()

	if opened {
		e.timers.Start(roomID)
	}
	e.mirrorSnapshot(snap)
}

// openNextLotLocked makes Queue[AuctionIndex] the current lot, skipping any
// already-resolved entries. When the queue is exhausted it moves the room to
// squad selection. Caller holds the room mutex; reports whether a lot opened.
func (e *Engine) openNextLotLocked(room *Room) bool {
	for room.AuctionIndex < len(room.Queue) && room.Queue[room.AuctionIndex].Status != LotPending {
		room.AuctionIndex++
	}

	if room.AuctionIndex >= len(room.Queue) {
		room.Phase = PhaseSquadSelection
		room.CurrentLot = nil
		room.CurrentBid = 0
		room.CurrentBidder = ""
		teams := room.teamsCopy()
		e.broadcast.ToRoom(room.RoomID, "open_squad_selection", gin.H{"teams": teams})
		log.Printf("[AUCTION] room %s queue exhausted, moving to squad selection", room.RoomID)
		return false
	}

	lot := room.Queue[room.AuctionIndex]
	room.CurrentLot = lot
	room.CurrentBid = lot.BasePrice
	room.CurrentBidder = ""

	e.broadcast.ToRoom(room.RoomID, "update_lot", gin.H{
		"player":     *lot,
		"currentBid": lot.BasePrice,
		"lotNumber":  room.AuctionIndex + 1,
	})
	return true
}

// ToggleTimer pauses or resumes the countdown. Admin only.
func (e *Engine) ToggleTimer(roomID, connID string) error {
	room, err := e.registry.Get(roomID)
	if err != nil {
		return err
	}
	room.mu.Lock()
	authorized := room.requireAdmin(connID)
	room.mu.Unlock()
	if !authorized {
		return ErrUnauthorized
	}
	_, err = e.timers.Toggle(roomID)
	return err
}

// EndAuction force-closes the auction phase regardless of remaining lots.
// Admin only. The current lot, if any, is left pending.
func (e *Engine) EndAuction(roomID, connID string) error {
	room, err := e.registry.Get(roomID)
	if err != nil {
		return err
	}

	room.mu.Lock()
	if !room.requireAdmin(connID) {
		room.mu.Unlock()
		return ErrUnauthorized
	}
	if room.Phase != PhaseAuctionActive {
		room.mu.Unlock()
		return ErrStateConflict
	}
	room.Phase = PhaseSquadSelection
	room.CurrentLot = nil
	room.CurrentBid = 0
	room.CurrentBidder = ""
	room.SellingInProgress = false
	teams := room.teamsCopy()
	snap := room.snapshotLocked()
	room.mu.Unlock()

	e.timers.Stop(roomID)
	e.broadcast.ToRoom(roomID, "open_squad_selection", gin.H{"teams": teams})
	e.mirrorSnapshot(snap)
	log.Printf("[AUCTION] room %s ended early by admin", roomID)
	return nil
}
