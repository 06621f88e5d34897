package auction

import "github.com/gin-gonic/gin"

// PlaceBid validates and applies a bid on the room's current lot. The checks
// run in a fixed order (liveness, team, ownership, self-outbid, budget,
// amount) so a rejected bid always reports its most fundamental problem.
func (e *Engine) PlaceBid(roomID, connID, playerID, teamKey string, amount int) error {
	room, err := e.registry.Get(roomID)
	if err != nil {
		return err
	}

	room.mu.Lock()
	if room.Phase != PhaseAuctionActive || room.CurrentLot == nil || room.SellingInProgress {
		room.mu.Unlock()
		return ErrAuctionNotActive
	}
	if e.timers.Paused(roomID) {
		room.mu.Unlock()
		return ErrAuctionNotActive
	}

	team := room.findTeam(teamKey)
	if team == nil {
		room.mu.Unlock()
		return ErrTeamNotFound
	}
	if team.OwnerPlayerID == "" || team.OwnerPlayerID != playerID {
		room.mu.Unlock()
		return ErrUnauthorized
	}
	// The owner may be bidding from a newer socket than the one recorded.
	team.OwnerConnID = connID

	if room.CurrentBidder == teamKey {
		room.mu.Unlock()
		return ErrAlreadyHighBidder
	}
	if amount > team.Budget {
		room.mu.Unlock()
		return ErrInsufficientBudget
	}
	if room.CurrentBidder != "" && amount <= room.CurrentBid {
		room.mu.Unlock()
		return ErrBidTooLow
	}
	if room.CurrentBidder == "" && amount < room.CurrentBid {
		// First bid must at least meet the base price.
		room.mu.Unlock()
		return ErrBidTooLow
	}

	room.CurrentBid = amount
	room.CurrentBidder = teamKey

	teamCopy := *team
	teamCopy.Roster = append([]Lot(nil), team.Roster...)
	snap := room.snapshotLocked()
	room.mu.Unlock()

	e.broadcast.ToRoom(roomID, "bid_update", gin.H{
		"amount": amount,
		"team":   teamCopy,
	})
	e.timers.Start(roomID)
	e.mirrorSnapshot(snap)
	return nil
}
