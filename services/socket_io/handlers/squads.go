package handlers

import (
	"errors"
	"log"

	"Gavel/services/auction"
	socketio_types "Gavel/services/socket_io/types"

	"github.com/zishang520/socket.io/v2/socket"
)

func HandleSubmitSquad(engine *auction.Engine, client *socket.Socket,
	sess *socketio_types.Session) func(args ...interface{}) {
	return func(args ...interface{}) {
		connID := string(client.Id())

		var sub auction.SquadSubmission
		if err := decodeArg(firstArg(args), &sub); err != nil || len(sub.Squad) == 0 {
			client.Emit("error_message", "Invalid squad submission.")
			return
		}

		err := engine.SubmitSquad(sess.RoomID, connID, sess.PlayerID, sub)
		switch {
		case err == nil:
		case errors.Is(err, auction.ErrStateConflict):
			client.Emit("error_message", "Squad selection is not open.")
		case errors.Is(err, auction.ErrUnauthorized):
			client.Emit("error_message", "You do not own a team in this room.")
		default:
			log.Printf("[SQUAD-ERROR] room %s: %v", sess.RoomID, err)
			client.Emit("error_message", "Could not submit squad.")
		}
	}
}
