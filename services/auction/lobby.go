package auction

import (
	"log"

	"github.com/gin-gonic/gin"
)

// requireAdmin reports whether the acting connection is currently bound as
// the room admin. Privilege follows AdminPlayerID across reconnects, but an
// operation only succeeds from the connection that identity is bound to.
func (r *Room) requireAdmin(connID string) bool {
	return r.AdminConnID != "" && r.AdminConnID == connID
}

// ClaimTeam assigns a free team to the caller. A player holds at most one
// team per room; re-claiming the same team just refreshes the connection
// binding.
func (e *Engine) ClaimTeam(roomID, connID, playerID, playerName, teamKey, email string) error {
	room, err := e.registry.Get(roomID)
	if err != nil {
		return err
	}

	room.mu.Lock()
	if existing := room.teamOwnedBy(playerID); existing != nil {
		if existing.BidKey == teamKey {
			existing.OwnerConnID = connID
			if email != "" {
				existing.OwnerEmail = email
			}
			room.mu.Unlock()
			e.broadcast.ToConn(connID, "team_claim_success", teamKey)
			return nil
		}
		room.mu.Unlock()
		return ErrAlreadyOwnsTeam
	}

	team := room.findTeam(teamKey)
	if team == nil {
		room.mu.Unlock()
		return ErrTeamNotFound
	}
	if team.IsTaken && team.OwnerPlayerID != playerID {
		room.mu.Unlock()
		return ErrTeamTaken
	}

	team.IsTaken = true
	team.OwnerConnID = connID
	team.OwnerPlayerID = playerID
	if name, ok := room.PlayerNames[playerID]; ok {
		team.OwnerName = name
	} else if playerName != "" {
		team.OwnerName = playerName
	}
	if email != "" {
		team.OwnerEmail = email
	}

	teams := room.teamsCopy()
	userCount := len(room.Users)
	snap := room.snapshotLocked()
	room.mu.Unlock()

	e.broadcast.ToConn(connID, "team_claim_success", teamKey)
	e.broadcast.ToRoom(roomID, "lobby_update", gin.H{
		"teams":     teams,
		"userCount": userCount,
	})
	e.mirrorSnapshot(snap)
	log.Printf("[LOBBY] team %s claimed by %s in room %s", teamKey, playerID, roomID)
	return nil
}

// ReclaimTeam rebinds a team to a fresh connection when the caller's
// persistent identity matches the recorded owner. The room password is
// deliberately not re-checked here: the persistent id is the reconnect
// credential.
func (e *Engine) ReclaimTeam(roomID, connID, playerID, teamKey string) error {
	room, err := e.registry.Get(roomID)
	if err != nil {
		return err
	}

	room.mu.Lock()
	team := room.findTeam(teamKey)
	if team == nil {
		room.mu.Unlock()
		return ErrTeamNotFound
	}
	if team.OwnerPlayerID != playerID {
		room.mu.Unlock()
		return ErrUnauthorized
	}
	team.OwnerConnID = connID
	room.mu.Unlock()

	e.broadcast.ToConn(connID, "team_claim_success", teamKey)
	return nil
}

// RequestReclaim routes a reclaim attempt from a non-matching identity to
// the admin as a pending decision.
func (e *Engine) RequestReclaim(roomID, connID, playerID, teamKey string) error {
	room, err := e.registry.Get(roomID)
	if err != nil {
		return err
	}

	room.mu.Lock()
	team := room.findTeam(teamKey)
	if team == nil {
		room.mu.Unlock()
		return ErrTeamNotFound
	}
	room.pendingReclaims[teamKey] = pendingReclaim{
		requesterConnID:   connID,
		requesterPlayerID: playerID,
	}
	adminConn := room.AdminConnID
	teamName := team.Name
	room.mu.Unlock()

	if adminConn != "" {
		e.broadcast.ToConn(adminConn, "admin_reclaim_request", gin.H{
			"teamKey":      teamKey,
			"teamName":     teamName,
			"requesterId":  connID,
			"requesterPid": playerID,
		})
	}
	return nil
}

// ReclaimDecision resolves a pending reclaim exactly once. A second decision
// for the same team finds no pending entry and is a no-op.
func (e *Engine) ReclaimDecision(roomID, connID string, approved bool, teamKey string) error {
	room, err := e.registry.Get(roomID)
	if err != nil {
		return err
	}

	room.mu.Lock()
	if !room.requireAdmin(connID) {
		room.mu.Unlock()
		return ErrUnauthorized
	}
	pending, ok := room.pendingReclaims[teamKey]
	if !ok {
		room.mu.Unlock()
		return ErrStateConflict
	}
	delete(room.pendingReclaims, teamKey)

	if !approved {
		room.mu.Unlock()
		e.broadcast.ToConn(pending.requesterConnID, "error_message", "Host denied your reclaim request.")
		return nil
	}

	team := room.findTeam(teamKey)
	if team == nil {
		room.mu.Unlock()
		return ErrTeamNotFound
	}
	team.OwnerConnID = pending.requesterConnID
	team.OwnerPlayerID = pending.requesterPlayerID
	team.IsTaken = true

	teams := room.teamsCopy()
	userCount := len(room.Users)
	snap := room.snapshotLocked()
	room.mu.Unlock()

	e.broadcast.ToConn(pending.requesterConnID, "team_claim_success", teamKey)
	e.broadcast.ToRoom(roomID, "lobby_update", gin.H{
		"teams":     teams,
		"userCount": userCount,
	})
	e.mirrorSnapshot(snap)
	return nil
}

// RenameTeam is an admin-only lobby operation.
func (e *Engine) RenameTeam(roomID, connID, teamKey, newName string) error {
	room, err := e.registry.Get(roomID)
	if err != nil {
		return err
	}

	room.mu.Lock()
	if !room.requireAdmin(connID) {
		room.mu.Unlock()
		return ErrUnauthorized
	}
	team := room.findTeam(teamKey)
	if team == nil {
		room.mu.Unlock()
		return ErrTeamNotFound
	}
	team.Name = newName
	teams := room.teamsCopy()
	userCount := len(room.Users)
	room.mu.Unlock()

	e.broadcast.ToRoom(roomID, "lobby_update", gin.H{
		"teams":     teams,
		"userCount": userCount,
	})
	return nil
}

// UpdateLobbyTeams lets the admin replace the team list while still in the
// lobby, e.g. to adjust names or budgets before the auction starts.
func (e *Engine) UpdateLobbyTeams(roomID, connID string, seeds []TeamSeed) error {
	room, err := e.registry.Get(roomID)
	if err != nil {
		return err
	}

	room.mu.Lock()
	if !room.requireAdmin(connID) {
		room.mu.Unlock()
		return ErrUnauthorized
	}
	if room.Phase != PhaseLobby {
		room.mu.Unlock()
		return ErrStateConflict
	}

	teams := make([]*Team, 0, len(seeds))
	seen := make(map[string]bool, len(seeds))
	for _, seed := range seeds {
		if seen[seed.BidKey] {
			continue
		}
		seen[seed.BidKey] = true
		budget := seed.Budget
		if budget <= 0 {
			budget = room.Config.Budget
		}
		// Keep ownership when a team with the same key already exists.
		if existing := room.findTeam(seed.BidKey); existing != nil {
			existing.Name = seed.Name
			existing.Budget = budget
			teams = append(teams, existing)
			continue
		}
		teams = append(teams, &Team{
			BidKey: seed.BidKey,
			Name:   seed.Name,
			Budget: budget,
			Roster: []Lot{},
		})
	}
	room.Teams = teams

	out := room.teamsCopy()
	userCount := len(room.Users)
	snap := room.snapshotLocked()
	room.mu.Unlock()

	e.broadcast.ToRoom(roomID, "lobby_update", gin.H{
		"teams":     out,
		"userCount": userCount,
	})
	e.mirrorSnapshot(snap)
	return nil
}

// UpdatePlayerName records a display name for a persistent identity and
// refreshes the owned team, if any.
func (e *Engine) UpdatePlayerName(roomID, playerID, name string) error {
	room, err := e.registry.Get(roomID)
	if err != nil {
		return err
	}

	room.mu.Lock()
	room.PlayerNames[playerID] = name
	team := room.teamOwnedBy(playerID)
	if team == nil {
		room.mu.Unlock()
		return nil
	}
	team.OwnerName = name
	teams := room.teamsCopy()
	userCount := len(room.Users)
	room.mu.Unlock()

	e.broadcast.ToRoom(roomID, "lobby_update", gin.H{
		"teams":     teams,
		"userCount": userCount,
	})
	return nil
}

// StartAuction snapshots the claimed teams, resets their roster and spend,
// stores the lot queue and opens the first lot. Admin-only, lobby-only.
func (e *Engine) StartAuction(roomID, connID string, queue []Lot) error {
	room, err := e.registry.Get(roomID)
	if err != nil {
		return err
	}

	room.mu.Lock()
	if !room.requireAdmin(connID) {
		room.mu.Unlock()
		return ErrUnauthorized
	}
	if room.Phase != PhaseLobby {
		room.mu.Unlock()
		return ErrStateConflict
	}
	if room.claimedTeamCount() == 0 {
		room.mu.Unlock()
		return ErrStateConflict
	}

	active := make([]*Team, 0, len(room.Teams))
	for _, t := range room.Teams {
		if !t.IsTaken {
			continue
		}
		t.Roster = []Lot{}
		t.TotalSpent = 0
		t.TotalPlayers = 0
		active = append(active, t)
	}
	room.Teams = active

	room.Queue = make([]*Lot, 0, len(queue))
	for i := range queue {
		lot := queue[i]
		room.Queue = append(room.Queue, &lot)
	}
	room.AuctionIndex = 0
	room.Phase = PhaseAuctionActive

	teams := room.teamsCopy()
	lots := room.queueCopy()

	e.broadcast.ToRoom(roomID, "auction_started", gin.H{
		"teams": teams,
		"queue": lots,
	})

	opened := e.openNextLotLocked(room)
	snap := room.snapshotLocked()
	room.mu.Unlock()

	if opened {
		e.timers.Start(roomID)
	}
	e.mirrorSnapshot(snap)
	log.Printf("[AUCTION] room %s started with %d teams, %d lots", roomID, len(teams), len(lots))
	return nil
}
