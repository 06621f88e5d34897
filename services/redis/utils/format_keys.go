package utils

import "fmt"

// FormatRoomSnapshotKey returns the Redis key for a room snapshot
// Format: "room:{roomId}"
func FormatRoomSnapshotKey(roomID string) string {
	return fmt.Sprintf("room:%s", roomID)
}
