package auction

import "github.com/gin-gonic/gin"

// SyncData sends a connection the complete current room state in one event.
// Clients request this after a reconnect instead of replaying history; the
// timer numbers come from the coordinator so they reflect pause cycles.
func (e *Engine) SyncData(roomID, connID string) error {
	room, err := e.registry.Get(roomID)
	if err != nil {
		return err
	}

	room.mu.Lock()
	phase := room.Phase
	teams := room.teamsCopy()
	queue := room.queueCopy()
	index := room.AuctionIndex
	var currentLot *Lot
	if room.CurrentLot != nil {
		c := *room.CurrentLot
		currentLot = &c
	}
	currentBid := room.CurrentBid
	currentBidder := room.CurrentBidder
	selling := room.SellingInProgress
	userCount := len(room.Users)
	room.mu.Unlock()

	e.broadcast.ToConn(connID, "sync_data", gin.H{
		"phase":             phase,
		"teams":             teams,
		"queue":             queue,
		"auctionIndex":      index,
		"currentLot":        currentLot,
		"currentBid":        currentBid,
		"currentBidder":     currentBidder,
		"sellingInProgress": selling,
		"userCount":         userCount,
		"timer":             e.timers.Remaining(roomID),
		"timerPaused":       e.timers.Paused(roomID),
	})
	return nil
}

// CheckActiveRoom looks for a room the persistent identity still belongs to,
// either as a team owner or as the admin. Used by clients on startup to offer
// a rejoin instead of the create/join screen.
func (e *Engine) CheckActiveRoom(connID, playerID string) {
	for _, room := range e.registry.Rooms() {
		room.mu.Lock()
		team := room.teamOwnedBy(playerID)
		isAdmin := room.AdminPlayerID == playerID
		if team == nil && !isAdmin {
			room.mu.Unlock()
			continue
		}
		payload := gin.H{
			"roomId":  room.RoomID,
			"phase":   room.Phase,
			"isAdmin": isAdmin,
		}
		if team != nil {
			payload["teamKey"] = team.BidKey
			payload["teamName"] = team.Name
		}
		room.mu.Unlock()

		e.broadcast.ToConn(connID, "active_room_found", payload)
		return
	}
	e.broadcast.ToConn(connID, "no_active_room", nil)
}
