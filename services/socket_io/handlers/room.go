package handlers

import (
	"log"

	"Gavel/services/auction"
	socketio_types "Gavel/services/socket_io/types"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

func HandleCreateRoom(engine *auction.Engine, client *socket.Socket,
	sio *socketio_types.SocketServer, sess *socketio_types.Session) func(args ...interface{}) {
	return func(args ...interface{}) {
		connID := string(client.Id())
		log.Printf("[ROOM] HandleCreateRoom - player: %s, socket: %s", sess.PlayerID, connID)

		var req struct {
			RoomID   string         `json:"roomId"`
			Password string         `json:"password"`
			Config   auction.Config `json:"config"`
		}
		if err := decodeArg(firstArg(args), &req); err != nil || req.RoomID == "" {
			client.Emit("error_message", "Invalid room settings.")
			return
		}

		if err := engine.CreateRoom(req.RoomID, req.Password, req.Config, connID, sess.PlayerID, sess.Name); err != nil {
			log.Printf("[ROOM-ERROR] creating room %s: %v", req.RoomID, err)
			client.Emit("error_message", "Room ID already in use.")
			return
		}

		client.Join(socket.Room(req.RoomID))
		sio.SetSessionRoom(connID, req.RoomID)
	}
}

func HandleJoinRoom(engine *auction.Engine, client *socket.Socket,
	sio *socketio_types.SocketServer, sess *socketio_types.Session) func(args ...interface{}) {
	return func(args ...interface{}) {
		connID := string(client.Id())

		roomID := argString(args, "roomId")
		password := argString(args, "password")
		playerName := argString(args, "playerName")
		if playerName == "" {
			playerName = sess.Name
		}

		// Join the socket.io room first so the lobby_update from the engine
		// reaches this client too.
		client.Join(socket.Room(roomID))

		if err := engine.JoinRoom(roomID, password, connID, sess.PlayerID, playerName); err != nil {
			client.Leave(socket.Room(roomID))
			log.Printf("[ROOM-ERROR] join room %s: %v", roomID, err)
			client.Emit("error_message", "Invalid Room ID or Password.")
			return
		}

		sio.SetSessionRoom(connID, roomID)
	}
}

func HandleLeaveRoom(engine *auction.Engine, client *socket.Socket,
	sio *socketio_types.SocketServer, sess *socketio_types.Session) func(args ...interface{}) {
	return func(args ...interface{}) {
		connID := string(client.Id())
		if sess.RoomID == "" {
			return
		}
		roomID := sess.RoomID

		engine.Leave(roomID, connID)
		client.Leave(socket.Room(roomID))
		sio.SetSessionRoom(connID, "")
		client.Emit("room_left", gin.H{"roomId": roomID})
	}
}

// Function to handle socket.io client disconnections.
func HandleDisconnecting(engine *auction.Engine, client *socket.Socket,
	sio *socketio_types.SocketServer, sess *socketio_types.Session) func(args ...interface{}) {
	return func(args ...interface{}) {
		connID := string(client.Id())
		log.Printf("[DISCONNECT] socket %s (player %s)", connID, sess.PlayerID)

		if sess.RoomID != "" {
			engine.Leave(sess.RoomID, connID)
		}

		sio.RemoveConnection(connID)
	}
}
