package socket_io

import (
	socketio_types "Gavel/services/socket_io/types"

	"github.com/zishang520/socket.io/v2/socket"
)

// SioBroadcaster adapts the socket.io server to auction.Broadcaster.
type SioBroadcaster struct {
	sio *socketio_types.SocketServer
}

func NewSioBroadcaster(sio *socketio_types.SocketServer) *SioBroadcaster {
	return &SioBroadcaster{sio: sio}
}

func (b *SioBroadcaster) ToRoom(roomID string, event string, payload interface{}) {
	b.sio.Sio_server.To(socket.Room(roomID)).Emit(event, payload)
}

func (b *SioBroadcaster) ToConn(connID string, event string, payload interface{}) {
	if client, exists := b.sio.GetConnection(connID); exists {
		client.Emit(event, payload)
	}
}
