package auction

import (
	"log"

	auction_constants "Gavel/constants/auction"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
)

// Broadcaster delivers outbound events either to every connection in a room
// or to a single connection. The socket.io layer provides the production
// implementation; tests use a recorder.
type Broadcaster interface {
	ToRoom(roomID string, event string, payload interface{})
	ToConn(connID string, event string, payload interface{})
}

// Mirror receives room snapshots for external session mirroring. Calls are
// fire-and-forget: they run on their own goroutine and can never stall lot
// processing.
type Mirror interface {
	SaveRoomSnapshot(snap *RoomSnapshot) error
	DeleteRoomSnapshot(roomID string) error
}

// TournamentRunner simulates the post-auction tournament. Invoked exactly
// once per room, after every active team has submitted its squad.
type TournamentRunner interface {
	RunTournament(input TournamentInput) (*TournamentResult, error)
}

// ResultsRecorder persists tournament outcomes (win records, profile stats).
type ResultsRecorder interface {
	RecordTournament(snap *RoomSnapshot, result *TournamentResult) error
}

type TournamentInput struct {
	RoomID string                     `json:"roomId"`
	Teams  []Team                     `json:"teams"`
	Squads map[string]SquadSubmission `json:"squads"`
}

type MatchResult struct {
	Label      string `json:"label"`
	HomeTeam   string `json:"homeTeam"`
	AwayTeam   string `json:"awayTeam"`
	HomeScore  int    `json:"homeScore"`
	AwayScore  int    `json:"awayScore"`
	WinnerName string `json:"winnerName"`
}

type Standing struct {
	TeamName   string  `json:"teamName"`
	OwnerName  string  `json:"ownerName"`
	Played     int     `json:"played"`
	Won        int     `json:"won"`
	Lost       int     `json:"lost"`
	Points     int     `json:"points"`
	NetRunRate float64 `json:"nrr"`
}

type TournamentResult struct {
	Winner    Standing      `json:"winner"`
	RunnerUp  Standing      `json:"runnerUp"`
	Standings []Standing    `json:"standings"`
	Matches   []MatchResult `json:"leagueMatches"`
}

// Engine composes the registry, the timer coordinator and the external
// collaborators into the per-room auction state machine. Every mutation of a
// room happens under that room's mutex; collaborator calls happen outside it.
type Engine struct {
	registry  *Registry
	timers    *TimerCoordinator
	broadcast Broadcaster
	clock     clockwork.Clock
	mirror    Mirror
	sim       TournamentRunner
	recorder  ResultsRecorder
}

type EngineOptions struct {
	Clock     clockwork.Clock
	Broadcast Broadcaster
	Mirror    Mirror
	Simulator TournamentRunner
	Recorder  ResultsRecorder
}

func NewEngine(opts EngineOptions) *Engine {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	e := &Engine{
		registry:  NewRegistry(),
		broadcast: opts.Broadcast,
		clock:     clock,
		mirror:    opts.Mirror,
		sim:       opts.Simulator,
		recorder:  opts.Recorder,
	}
	e.timers = NewTimerCoordinator(clock, opts.Broadcast, func(roomID string) {
		// The countdown hit zero; the admin's manual finalize may have won
		// the race already, in which case the latch makes this a no-op.
		if err := e.FinalizeSale(roomID, TriggerTimer); err != nil {
			log.Printf("[TIMER] expiry for room %s not applied: %v", roomID, err)
		}
	})
	return e
}

func (e *Engine) Registry() *Registry { return e.registry }

func (e *Engine) Timers() *TimerCoordinator { return e.timers }

// CreateRoom registers a new room in LOBBY phase with its teams built from
// the config. Fails if the id is already taken.
func (e *Engine) CreateRoom(roomID, password string, cfg Config, connID, playerID, playerName string) error {
	room, err := e.registry.Create(roomID, password, cfg, playerID, e.clock.Now())
	if err != nil {
		return err
	}

	room.mu.Lock()
	room.AdminConnID = connID
	room.Users = append(room.Users, connID)
	if playerName != "" {
		room.PlayerNames[playerID] = playerName
	}
	snap := room.snapshotLocked()
	room.mu.Unlock()

	e.mirrorSnapshot(snap)
	e.broadcast.ToConn(connID, "roomcreated", roomID)
	log.Printf("[ROOM] room %s created by %s", roomID, playerID)
	return nil
}

// JoinRoom admits a connection into a room. A caller whose persistent
// identity already owns a team (or the admin seat) is rebound to it without
// a password check; everyone else must present the room password.
func (e *Engine) JoinRoom(roomID, password, connID, playerID, playerName string) error {
	room, err := e.registry.Get(roomID)
	if err != nil {
		return ErrInvalidCredentials
	}

	room.mu.Lock()
	existingTeam := room.teamOwnedBy(playerID)
	if existingTeam == nil && room.AdminPlayerID != playerID {
		if room.Password != "" && room.Password != password {
			room.mu.Unlock()
			return ErrInvalidCredentials
		}
	}

	if !room.hasUser(connID) {
		room.Users = append(room.Users, connID)
	}
	if playerName != "" {
		room.PlayerNames[playerID] = playerName
	}

	isAdmin := false
	if room.AdminPlayerID == playerID {
		room.AdminConnID = connID
		isAdmin = true
	}

	reclaimedKey := ""
	if existingTeam != nil {
		existingTeam.OwnerConnID = connID
		reclaimedKey = existingTeam.BidKey
	}

	phase := room.Phase
	teams := room.teamsCopy()
	queue := room.queueCopy()
	userCount := len(room.Users)
	snap := room.snapshotLocked()
	room.mu.Unlock()

	if reclaimedKey != "" {
		e.broadcast.ToConn(connID, "team_claim_success", reclaimedKey)
	}

	e.broadcast.ToConn(connID, "room_joined", gin.H{
		"roomId":  roomID,
		"isAdmin": isAdmin,
		"lobbyState": gin.H{
			"teams":     teams,
			"userCount": userCount,
		},
		"state": gin.H{
			"isActive": phase == PhaseAuctionActive,
			"teams":    teams,
			"queue":    queue,
		},
	})

	e.broadcast.ToRoom(roomID, "lobby_update", gin.H{
		"teams":     teams,
		"userCount": userCount,
	})

	if phase == PhaseSquadSelection {
		e.broadcast.ToConn(connID, "open_squad_selection", gin.H{"teams": teams})
	}

	e.mirrorSnapshot(snap)
	log.Printf("[ROOM] player %s joined room %s (admin=%v, team=%q)", playerID, roomID, isAdmin, reclaimedKey)
	return nil
}

// Leave drops a connection from the room roster. Team and admin ownership
// are keyed by persistent identity and are deliberately left untouched.
func (e *Engine) Leave(roomID, connID string) {
	room, err := e.registry.Get(roomID)
	if err != nil {
		return
	}

	room.mu.Lock()
	room.removeUser(connID)
	teams := room.teamsCopy()
	userCount := len(room.Users)
	room.mu.Unlock()

	e.broadcast.ToRoom(roomID, "lobby_update", gin.H{
		"teams":     teams,
		"userCount": userCount,
	})
}

// mirrorSnapshot hands a snapshot to the mirror on its own goroutine.
func (e *Engine) mirrorSnapshot(snap *RoomSnapshot) {
	if e.mirror == nil || snap == nil {
		return
	}
	go func() {
		if err := e.mirror.SaveRoomSnapshot(snap); err != nil {
			log.Printf("[MIRROR-ERROR] saving room %s: %v", snap.RoomID, err)
		}
	}()
}

func (e *Engine) scheduleCleanup(roomID string) {
	e.clock.AfterFunc(auction_constants.RoomCleanupDelay, func() {
		e.registry.Remove(roomID)
		if e.mirror != nil {
			if err := e.mirror.DeleteRoomSnapshot(roomID); err != nil {
				log.Printf("[MIRROR-ERROR] deleting room %s: %v", roomID, err)
			}
		}
		log.Printf("[CLEANUP] room %s removed", roomID)
	})
}
