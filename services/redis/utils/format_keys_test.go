package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatRoomSnapshotKey(t *testing.T) {
	assert.Equal(t, "room:room1", FormatRoomSnapshotKey("room1"))
	assert.Equal(t, "room:", FormatRoomSnapshotKey(""))
}
