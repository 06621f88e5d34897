package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	auction_constants "Gavel/constants/auction"
	"Gavel/services/auction"
	redis_utils "Gavel/services/redis/utils"

	"github.com/redis/go-redis/v9"
)

// RedisClient handles Redis operations
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(Addr string, DB int) *RedisClient {
	var client *redis.Client
	if Addr != "localhost:6379" {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(Addr)
		if err != nil {
			panic("Error parsing Redis URL")
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: Addr,
			DB:   DB,
		})
	}
	return &RedisClient{
		client: client,
		ctx:    context.Background(),
	}
}

// SaveRoomSnapshot stores a room snapshot in Redis
// Key format: "room:{roomId}"
// TTL: 24 hours
func (rc *RedisClient) SaveRoomSnapshot(snap *auction.RoomSnapshot) error {
	key := redis_utils.FormatRoomSnapshotKey(snap.RoomID)
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("error marshaling room snapshot: %v", err)
	}
	return rc.client.Set(rc.ctx, key, data, auction_constants.SnapshotTTL).Err()
}

// GetRoomSnapshot retrieves a room snapshot from Redis
// Key format: "room:{roomId}"
func (rc *RedisClient) GetRoomSnapshot(roomID string) (*auction.RoomSnapshot, error) {
	key := redis_utils.FormatRoomSnapshotKey(roomID)
	data, err := rc.client.Get(rc.ctx, key).Bytes()
	if err != nil {
		return nil, fmt.Errorf("error getting room snapshot: %v", err)
	}

	var snap auction.RoomSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("error unmarshaling room snapshot: %v", err)
	}
	return &snap, nil
}

// DeleteRoomSnapshot removes a room snapshot from Redis
func (rc *RedisClient) DeleteRoomSnapshot(roomID string) error {
	key := redis_utils.FormatRoomSnapshotKey(roomID)
	if err := rc.client.Del(rc.ctx, key).Err(); err != nil {
		return fmt.Errorf("error deleting room snapshot: %v", err)
	}
	return nil
}
