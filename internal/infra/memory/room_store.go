package memory

import (
	"context"
	"sync"

	"quizroom-service/internal/domain"
)

// RoomStore is an in-memory implementation of app.RoomStore with snapshot
// isolation: gets return deep copies, saves store deep copies.
type RoomStore struct {
	mu    sync.RWMutex
	rooms map[string]domain.Room
}

func NewRoomStore() *RoomStore {
	return &RoomStore{rooms: make(map[string]domain.Room)}
}

func (s *RoomStore) GetRoom(_ context.Context, roomCode string) (domain.Room, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[roomCode]
	if !ok {
		return domain.Room{}, false, nil
	}
	return room.Clone(), true, nil
}

func (s *RoomStore) SaveRoom(_ context.Context, room domain.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[room.RoomCode] = room.Clone()
	return nil
}

func (s *RoomStore) DeleteRoom(_ context.Context, roomCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, roomCode)
	return nil
}
