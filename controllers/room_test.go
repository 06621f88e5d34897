package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"Gavel/services/auction"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeSnapshotStore struct {
	snapshots map[string]*auction.RoomSnapshot
}

func (s *fakeSnapshotStore) GetRoomSnapshot(roomID string) (*auction.RoomSnapshot, error) {
	snap, ok := s.snapshots[roomID]
	if !ok {
		return nil, errors.New("redis: nil")
	}
	return snap, nil
}

func TestGetRoomSnapshotReturnsMirroredState(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &fakeSnapshotStore{snapshots: map[string]*auction.RoomSnapshot{
		"room1": {RoomID: "room1", Phase: auction.PhaseAuctionActive, Password: "secret-pw"},
	}}

	r := gin.New()
	r.GET("/auth/rooms/:roomId", GetRoomSnapshot(store))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/auth/rooms/room1", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "room1")
	assert.Contains(t, w.Body.String(), "AUCTION_ACTIVE")
	assert.NotContains(t, w.Body.String(), "secret-pw")
}

func TestGetRoomSnapshotUnknownRoom(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := &fakeSnapshotStore{snapshots: map[string]*auction.RoomSnapshot{}}

	r := gin.New()
	r.GET("/auth/rooms/:roomId", GetRoomSnapshot(store))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/auth/rooms/ghost", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
