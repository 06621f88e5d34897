package auction

import (
	"log"

	"github.com/gin-gonic/gin"
)

// SubmitSquad stores a team's final squad during squad selection. When the
// last active team submits, the tournament starts exactly once.
func (e *Engine) SubmitSquad(roomID, connID, playerID string, sub SquadSubmission) error {
	room, err := e.registry.Get(roomID)
	if err != nil {
		return err
	}

	room.mu.Lock()
	if room.Phase != PhaseSquadSelection {
		room.mu.Unlock()
		return ErrStateConflict
	}
	team := room.teamOwnedBy(playerID)
	if team == nil {
		room.mu.Unlock()
		return ErrUnauthorized
	}
	team.OwnerConnID = connID
	room.Squads[team.BidKey] = sub

	submitted := len(room.Squads)
	total := len(room.Teams)
	allIn := submitted >= total && total > 0 && !room.simulationStarted
	var input TournamentInput
	var snap *RoomSnapshot
	if allIn {
		room.simulationStarted = true
		squads := make(map[string]SquadSubmission, len(room.Squads))
		for k, v := range room.Squads {
			squads[k] = v
		}
		input = TournamentInput{
			RoomID: roomID,
			Teams:  room.teamsCopy(),
			Squads: squads,
		}
		snap = room.snapshotLocked()
	}
	teamKey := team.BidKey
	room.mu.Unlock()

	e.broadcast.ToRoom(roomID, "squad_submission_update", gin.H{
		"teamKey":   teamKey,
		"submitted": submitted,
		"total":     total,
	})

	if allIn {
		go e.runTournament(roomID, input, snap)
	}
	return nil
}

// runTournament simulates on its own goroutine so a slow simulation never
// holds the room lock. The result broadcast re-validates the room: if it was
// cleaned up mid-simulation nothing is emitted.
func (e *Engine) runTournament(roomID string, input TournamentInput, snap *RoomSnapshot) {
	if e.sim == nil {
		log.Printf("[TOURNAMENT] room %s has no simulator configured", roomID)
		return
	}

	result, err := e.sim.RunTournament(input)
	if err != nil {
		log.Printf("[TOURNAMENT-ERROR] room %s: %v", roomID, err)
		e.broadcast.ToRoom(roomID, "error_message", "Tournament simulation failed.")
		return
	}

	room, err := e.registry.Get(roomID)
	if err != nil {
		return
	}
	room.mu.Lock()
	if room.Phase != PhaseSquadSelection {
		room.mu.Unlock()
		return
	}
	room.mu.Unlock()

	e.broadcast.ToRoom(roomID, "tournamentComplete", result)
	log.Printf("[TOURNAMENT] room %s winner: %s", roomID, result.Winner.TeamName)

	if e.recorder != nil {
		if err := e.recorder.RecordTournament(snap, result); err != nil {
			log.Printf("[TOURNAMENT-ERROR] recording results for room %s: %v", roomID, err)
		}
	}

	e.scheduleCleanup(roomID)
}
