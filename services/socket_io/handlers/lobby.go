package handlers

import (
	"errors"
	"log"

	"Gavel/services/auction"
	socketio_types "Gavel/services/socket_io/types"

	"github.com/zishang520/socket.io/v2/socket"
)

// claimPayload reads the `claim_lobby_team` shape `{key, email}`. The email
// is optional and links the team to an account for post-tournament records.
func claimPayload(args []interface{}) (key, email string) {
	return argString(args, "key"), argString(args, "email")
}

// reclaimPayload accepts both `reclaim_team` forms: a bare team key string
// or an object `{key}`.
func reclaimPayload(args []interface{}) string {
	if key, ok := firstArg(args).(string); ok {
		return key
	}
	return argString(args, "key")
}

// renamePayload reads the `admin_rename_team` shape `{key, newName}`.
func renamePayload(args []interface{}) (key, newName string) {
	return argString(args, "key"), argString(args, "newName")
}

func HandleClaimTeam(engine *auction.Engine, client *socket.Socket,
	sess *socketio_types.Session) func(args ...interface{}) {
	return func(args ...interface{}) {
		connID := string(client.Id())
		teamKey, email := claimPayload(args)
		if email == "" {
			email = sess.Email
		}

		err := engine.ClaimTeam(sess.RoomID, connID, sess.PlayerID, sess.Name, teamKey, email)
		switch {
		case err == nil:
		case errors.Is(err, auction.ErrTeamTaken):
			client.Emit("error_message", "Team already taken.")
		case errors.Is(err, auction.ErrAlreadyOwnsTeam):
			client.Emit("error_message", "You already own a team in this room.")
		default:
			log.Printf("[LOBBY-ERROR] claim team %s: %v", teamKey, err)
			client.Emit("error_message", "Could not claim team.")
		}
	}
}

func HandleReclaimTeam(engine *auction.Engine, client *socket.Socket,
	sess *socketio_types.Session) func(args ...interface{}) {
	return func(args ...interface{}) {
		connID := string(client.Id())
		teamKey := reclaimPayload(args)

		err := engine.ReclaimTeam(sess.RoomID, connID, sess.PlayerID, teamKey)
		if errors.Is(err, auction.ErrUnauthorized) {
			// Identity mismatch: escalate to the admin instead of failing
			// silently, so a device swap can still be recovered.
			if err := engine.RequestReclaim(sess.RoomID, connID, sess.PlayerID, teamKey); err != nil {
				client.Emit("error_message", "Could not request team reclaim.")
			}
			return
		}
		if err != nil {
			log.Printf("[LOBBY-ERROR] reclaim team %s: %v", teamKey, err)
			client.Emit("error_message", "Could not reclaim team.")
		}
	}
}

// HandleRequestReclaimManual skips the identity check and goes straight to
// the admin, for owners rejoining from a device without their stored id.
func HandleRequestReclaimManual(engine *auction.Engine, client *socket.Socket,
	sess *socketio_types.Session) func(args ...interface{}) {
	return func(args ...interface{}) {
		connID := string(client.Id())
		teamKey := argString(args, "teamKey")

		if err := engine.RequestReclaim(sess.RoomID, connID, sess.PlayerID, teamKey); err != nil {
			log.Printf("[LOBBY-ERROR] manual reclaim request for %s: %v", teamKey, err)
			client.Emit("error_message", "Could not request team reclaim.")
		}
	}
}

func HandleAdminReclaimDecision(engine *auction.Engine, client *socket.Socket,
	sess *socketio_types.Session) func(args ...interface{}) {
	return func(args ...interface{}) {
		connID := string(client.Id())
		teamKey := argString(args, "teamKey")
		approved := argBool(args, "approved")

		if err := engine.ReclaimDecision(sess.RoomID, connID, approved, teamKey); err != nil {
			log.Printf("[LOBBY-ERROR] reclaim decision for %s: %v", teamKey, err)
		}
	}
}

func HandleRenameTeam(engine *auction.Engine, client *socket.Socket,
	sess *socketio_types.Session) func(args ...interface{}) {
	return func(args ...interface{}) {
		connID := string(client.Id())
		teamKey, newName := renamePayload(args)
		if newName == "" {
			client.Emit("error_message", "Team name cannot be empty.")
			return
		}

		if err := engine.RenameTeam(sess.RoomID, connID, teamKey, newName); err != nil {
			log.Printf("[LOBBY-ERROR] rename team %s: %v", teamKey, err)
			client.Emit("error_message", "Could not rename team.")
		}
	}
}

func HandleUpdateLobbyTeams(engine *auction.Engine, client *socket.Socket,
	sess *socketio_types.Session) func(args ...interface{}) {
	return func(args ...interface{}) {
		connID := string(client.Id())

		var req struct {
			Teams []auction.TeamSeed `json:"teams"`
		}
		if err := decodeArg(firstArg(args), &req); err != nil || len(req.Teams) == 0 {
			client.Emit("error_message", "Invalid team list.")
			return
		}

		if err := engine.UpdateLobbyTeams(sess.RoomID, connID, req.Teams); err != nil {
			log.Printf("[LOBBY-ERROR] update lobby teams: %v", err)
			client.Emit("error_message", "Could not update teams.")
		}
	}
}

func HandleUpdatePlayerName(engine *auction.Engine, client *socket.Socket,
	sess *socketio_types.Session) func(args ...interface{}) {
	return func(args ...interface{}) {
		name := argString(args, "playerName")
		if name == "" {
			return
		}
		sess.Name = name

		if sess.RoomID == "" {
			return
		}
		if err := engine.UpdatePlayerName(sess.RoomID, sess.PlayerID, name); err != nil {
			log.Printf("[LOBBY-ERROR] update player name: %v", err)
		}
	}
}
