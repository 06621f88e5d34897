package auction

import (
	"sync"
	"time"

	auction_constants "Gavel/constants/auction"
)

type Phase string

const (
	PhaseLobby          Phase = "LOBBY"
	PhaseAuctionActive  Phase = "AUCTION_ACTIVE"
	PhaseSquadSelection Phase = "SQUAD_SELECTION"
)

type LotStatus string

const (
	LotPending LotStatus = ""
	LotSold    LotStatus = "SOLD"
	LotUnsold  LotStatus = "UNSOLD"
)

// Lot is a single item in a room's auction queue. Status is monotonic: it is
// written exactly once, when the lot is resolved.
type Lot struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	BasePrice int       `json:"basePrice"`
	Status    LotStatus `json:"status"`
	SoldPrice int       `json:"soldPrice"`
}

// Team ownership is split in two: OwnerPlayerID is the persistent identity
// that survives reconnects, OwnerConnID is whatever socket the owner is
// currently on. Rebinding the latter never touches the former.
type Team struct {
	BidKey        string `json:"bidKey"`
	Name          string `json:"name"`
	OwnerPlayerID string `json:"ownerPlayerId"`
	OwnerConnID   string `json:"ownerConnId"`
	OwnerName     string `json:"ownerName"`
	OwnerEmail    string `json:"ownerEmail,omitempty"`
	IsTaken       bool   `json:"isTaken"`
	Budget        int    `json:"budget"`
	TotalSpent    int    `json:"totalSpent"`
	TotalPlayers  int    `json:"totalPlayers"`
	Roster        []Lot  `json:"roster"`
}

type TeamSeed struct {
	BidKey string `json:"bidKey"`
	Name   string `json:"name"`
	Budget int    `json:"budget"`
}

type Config struct {
	Budget int        `json:"budget"`
	Teams  []TeamSeed `json:"teams"`
}

type SquadSubmission struct {
	Squad      []string `json:"squad"`
	Captain    string   `json:"captain"`
	BatImpact  []string `json:"batImpact"`
	BowlImpact []string `json:"bowlImpact"`
}

type pendingReclaim struct {
	requesterConnID   string
	requesterPlayerID string
}

// Room is the full state of one auction session. All fields below the mutex
// are guarded by it; handlers and timer callbacks must hold it across any
// read-modify-write.
type Room struct {
	mu sync.Mutex

	RoomID   string
	Password string
	Config   Config

	AdminPlayerID string
	AdminConnID   string

	Phase Phase

	Teams       []*Team
	Users       []string
	PlayerNames map[string]string

	Queue        []*Lot
	AuctionIndex int

	CurrentLot    *Lot
	CurrentBid    int
	CurrentBidder string

	// Latched between a finalize trigger and the next lot opening; while
	// set, no bid is accepted and a second finalize trigger is a no-op.
	SellingInProgress bool

	Squads map[string]SquadSubmission

	CreatedAt time.Time

	pendingReclaims   map[string]pendingReclaim
	simulationStarted bool
}

func newRoom(roomID, password string, cfg Config, adminPlayerID string, now time.Time) *Room {
	r := &Room{
		RoomID:          roomID,
		Password:        password,
		Config:          cfg,
		AdminPlayerID:   adminPlayerID,
		Phase:           PhaseLobby,
		PlayerNames:     make(map[string]string),
		Squads:          make(map[string]SquadSubmission),
		CreatedAt:       now,
		pendingReclaims: make(map[string]pendingReclaim),
	}
	if r.Config.Budget <= 0 {
		r.Config.Budget = auction_constants.DefaultTeamBudget
	}
	for _, seed := range cfg.Teams {
		budget := seed.Budget
		if budget <= 0 {
			budget = r.Config.Budget
		}
		r.Teams = append(r.Teams, &Team{
			BidKey: seed.BidKey,
			Name:   seed.Name,
			Budget: budget,
			Roster: []Lot{},
		})
	}
	return r
}

func (r *Room) findTeam(bidKey string) *Team {
	for _, t := range r.Teams {
		if t.BidKey == bidKey {
			return t
		}
	}
	return nil
}

func (r *Room) teamOwnedBy(playerID string) *Team {
	if playerID == "" {
		return nil
	}
	for _, t := range r.Teams {
		if t.OwnerPlayerID == playerID {
			return t
		}
	}
	return nil
}

func (r *Room) claimedTeamCount() int {
	n := 0
	for _, t := range r.Teams {
		if t.IsTaken {
			n++
		}
	}
	return n
}

func (r *Room) hasUser(connID string) bool {
	for _, id := range r.Users {
		if id == connID {
			return true
		}
	}
	return false
}

func (r *Room) removeUser(connID string) {
	for i, id := range r.Users {
		if id == connID {
			r.Users = append(r.Users[:i], r.Users[i+1:]...)
			return
		}
	}
}

// teamsCopy returns value copies of all teams so payloads can be serialized
// after the room lock is released.
func (r *Room) teamsCopy() []Team {
	out := make([]Team, 0, len(r.Teams))
	for _, t := range r.Teams {
		c := *t
		c.Roster = append([]Lot(nil), t.Roster...)
		out = append(out, c)
	}
	return out
}

func (r *Room) queueCopy() []Lot {
	out := make([]Lot, 0, len(r.Queue))
	for _, l := range r.Queue {
		out = append(out, *l)
	}
	return out
}
