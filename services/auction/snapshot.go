package auction

import "time"

// RoomSnapshot is the serializable view of a room handed to the mirror and
// the results recorder.
type RoomSnapshot struct {
	RoomID        string                     `json:"roomId"`
	Password      string                     `json:"password"`
	Config        Config                     `json:"config"`
	AdminPlayerID string                     `json:"adminPlayerId"`
	Phase         Phase                      `json:"phase"`
	Teams         []Team                     `json:"teams"`
	Queue         []Lot                      `json:"auctionQueue"`
	AuctionIndex  int                        `json:"auctionIndex"`
	CurrentBid    int                        `json:"currentBid"`
	CurrentBidder string                     `json:"currentBidder"`
	PlayerNames   map[string]string          `json:"playerNames"`
	Squads        map[string]SquadSubmission `json:"squads"`
	LastActivity  time.Time                  `json:"lastActivity"`
}

// snapshotLocked builds a snapshot; the caller must hold the room mutex.
// Volatile fields (live connections, timer, latch) are intentionally not
// mirrored.
func (r *Room) snapshotLocked() *RoomSnapshot {
	names := make(map[string]string, len(r.PlayerNames))
	for k, v := range r.PlayerNames {
		names[k] = v
	}
	squads := make(map[string]SquadSubmission, len(r.Squads))
	for k, v := range r.Squads {
		squads[k] = v
	}
	return &RoomSnapshot{
		RoomID:        r.RoomID,
		Password:      r.Password,
		Config:        r.Config,
		AdminPlayerID: r.AdminPlayerID,
		Phase:         r.Phase,
		Teams:         r.teamsCopy(),
		Queue:         r.queueCopy(),
		AuctionIndex:  r.AuctionIndex,
		CurrentBid:    r.CurrentBid,
		CurrentBidder: r.CurrentBidder,
		PlayerNames:   names,
		Squads:        squads,
		LastActivity:  time.Now(),
	}
}
