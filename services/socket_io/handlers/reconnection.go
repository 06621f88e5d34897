package handlers

import (
	"log"

	"Gavel/services/auction"
	socketio_types "Gavel/services/socket_io/types"

	"github.com/zishang520/socket.io/v2/socket"
)

func HandleRequestSync(engine *auction.Engine, client *socket.Socket,
	sess *socketio_types.Session) func(args ...interface{}) {
	return func(args ...interface{}) {
		connID := string(client.Id())

		roomID := argString(args, "roomId")
		if roomID == "" {
			roomID = sess.RoomID
		}
		if roomID == "" {
			return
		}

		if err := engine.SyncData(roomID, connID); err != nil {
			log.Printf("[SYNC-ERROR] room %s: %v", roomID, err)
		}
	}
}

func HandleCheckActiveRoom(engine *auction.Engine, client *socket.Socket,
	sess *socketio_types.Session) func(args ...interface{}) {
	return func(args ...interface{}) {
		connID := string(client.Id())
		engine.CheckActiveRoom(connID, sess.PlayerID)
	}
}
