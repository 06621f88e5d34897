package auction

import (
	"sync"
	"time"
)

// Registry owns the roomId -> room mapping. It is handed to the engine and
// the handlers explicitly instead of living in a package-level map.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

func (reg *Registry) Create(roomID, password string, cfg Config, adminPlayerID string, now time.Time) (*Room, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if _, exists := reg.rooms[roomID]; exists {
		return nil, ErrRoomExists
	}
	room := newRoom(roomID, password, cfg, adminPlayerID, now)
	reg.rooms[roomID] = room
	return room, nil
}

func (reg *Registry) Get(roomID string) (*Room, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	room, ok := reg.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

func (reg *Registry) Remove(roomID string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.rooms, roomID)
}

// Rooms returns the current room set. Used for the active-room probe on
// reconnect; callers still lock each room before reading it.
func (reg *Registry) Rooms() []*Room {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	out := make([]*Room, 0, len(reg.rooms))
	for _, r := range reg.rooms {
		out = append(out, r)
	}
	return out
}
