package controllers

import (
	"net/http"

	"Gavel/services/auction"

	"github.com/gin-gonic/gin"
)

// SnapshotStore reads mirrored room state. Satisfied by the redis client.
type SnapshotStore interface {
	GetRoomSnapshot(roomID string) (*auction.RoomSnapshot, error)
}

// @Summary Mirrored state of a room
// @Description Returns the last snapshot the auction engine wrote to the mirror
// @Tags auth
// @Produce json
// @Param roomId path string true "Room ID"
// @Success 200 {object} object{room=object}
// @Failure 404 {object} object{error=string}
// @Router /auth/rooms/{roomId} [get]
func GetRoomSnapshot(store SnapshotStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := store.GetRoomSnapshot(c.Param("roomId"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}

		// The snapshot carries the room password for the engine's benefit;
		// it must not leave the server.
		snap.Password = ""
		c.JSON(http.StatusOK, gin.H{"room": snap})
	}
}
