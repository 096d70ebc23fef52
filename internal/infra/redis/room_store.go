package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"quizroom-service/internal/domain"
)

// RoomStore keeps each live room as a JSON value under room:{code}. The
// serialization round-trip gives the same snapshot isolation the in-memory
// store provides with explicit clones. A positive TTL lets abandoned rooms
// expire on their own; finished rooms are deleted explicitly.
type RoomStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRoomStore(client *redis.Client, ttl time.Duration) *RoomStore {
	return &RoomStore{client: client, ttl: ttl}
}

func (s *RoomStore) GetRoom(ctx context.Context, roomCode string) (domain.Room, bool, error) {
	data, err := s.client.Get(ctx, s.key(roomCode)).Bytes()
	if err == redis.Nil {
		return domain.Room{}, false, nil
	}
	if err != nil {
		return domain.Room{}, false, err
	}
	var room domain.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return domain.Room{}, false, err
	}
	return room, true, nil
}

func (s *RoomStore) SaveRoom(ctx context.Context, room domain.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(room.RoomCode), data, s.ttl).Err()
}

func (s *RoomStore) DeleteRoom(ctx context.Context, roomCode string) error {
	return s.client.Del(ctx, s.key(roomCode)).Err()
}

func (s *RoomStore) key(roomCode string) string {
	return "room:" + roomCode
}
