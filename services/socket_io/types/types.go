package socketio_types

import (
	"sync"

	"github.com/zishang520/socket.io/v2/socket"
)

// Session is the per-connection record: which room the socket is in and the
// persistent player identity it presented on connect.
type Session struct {
	RoomID   string
	PlayerID string
	Name     string
	Email    string
}

// SocketServer contains the socket.io server, a map of live socket
// connections and the session record for each of them.
type SocketServer struct {
	Sio_server *socket.Server
	// Map to track socket id -> socket connections
	Connections map[string]*socket.Socket
	// Map to track socket id -> session record
	Sessions map[string]*Session
	mutex    sync.RWMutex
}

func NewSocketServer() *SocketServer {
	return &SocketServer{
		Connections: make(map[string]*socket.Socket),
		Sessions:    make(map[string]*Session),
	}
}

// Add methods to manage connections
func (s *SocketServer) AddConnection(connID string, client *socket.Socket, sess *Session) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.Connections[connID] = client
	s.Sessions[connID] = sess
}

func (s *SocketServer) RemoveConnection(connID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.Connections, connID)
	delete(s.Sessions, connID)
}

func (s *SocketServer) GetConnection(connID string) (*socket.Socket, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	client, exists := s.Connections[connID]
	return client, exists
}

func (s *SocketServer) GetSession(connID string) (*Session, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	sess, exists := s.Sessions[connID]
	return sess, exists
}

// SetSessionRoom records the room a connection joined.
func (s *SocketServer) SetSessionRoom(connID, roomID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if sess, exists := s.Sessions[connID]; exists {
		sess.RoomID = roomID
	}
}
