package service

import (
	"context"
	"errors"
	"go-acquire/dto"
	"go-acquire/entities"
	"go-acquire/game"
	"go-acquire/repository"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func newRedisManager(t *testing.T, mr *miniredis.Miniredis) *RoomManager {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	store := repository.NewRedisStore(rdb, zap.NewNop())
	return NewRoomManager(store, store, nil, zap.NewNop())
}

func TestRoomManagerLifecycle(t *testing.T) {
	mr := miniredis.RunT(t)
	m := newRedisManager(t, mr)
	ctx := context.Background()

	room, err := m.CreateRoom(ctx, dto.CreateRoomRequest{MaxPlayers: 3, GameMode: entities.ModeTycoon})
	if err != nil {
		t.Fatal(err)
	}
	if len(room.ID) != 8 {
		t.Fatalf("room id = %q", room.ID)
	}
	if got, err := m.Get(room.ID); err != nil || got != room {
		t.Fatalf("get: %v", err)
	}
	if _, err := room.Join("alice"); err != nil {
		t.Fatal(err)
	}

	list := m.List()
	if len(list) != 1 || list[0].GameMode != entities.ModeTycoon || len(list[0].RoomPlayer) != 1 {
		t.Fatalf("list = %+v", list)
	}

	if err := m.Delete(ctx, room.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Get(room.ID); !errors.Is(err, ErrRoomUnknown) {
		t.Fatalf("expected ErrRoomUnknown, got %v", err)
	}
	if err := m.Delete(ctx, room.ID); !errors.Is(err, ErrRoomUnknown) {
		t.Fatalf("second delete: %v", err)
	}
}

func TestRoomManagerRejectsUnknownMode(t *testing.T) {
	m := NewRoomManager(repository.NewMemoryStore(), nil, nil, zap.NewNop())
	if _, err := m.CreateRoom(context.Background(), dto.CreateRoomRequest{MaxPlayers: 2, GameMode: "speed"}); err == nil {
		t.Fatal("expected an error")
	}
}

func TestRoomManagerRestore(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	first := newRedisManager(t, mr)
	room, err := first.CreateRoom(ctx, dto.CreateRoomRequest{MaxPlayers: 2})
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"alice", "bob"} {
		if _, err := room.Join(name); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := room.Dispatch(ctx, game.StartGame{}); err != nil {
		t.Fatal(err)
	}
	if _, err := room.Dispatch(ctx, game.SaveGame{}); err != nil {
		t.Fatal(err)
	}
	first.Flush()

	second := newRedisManager(t, mr)
	if err := second.Restore(ctx); err != nil {
		t.Fatal(err)
	}
	restored, err := second.Get(room.ID)
	if err != nil {
		t.Fatal(err)
	}
	state := restored.State()
	if len(state.Players) != 2 || state.GamePhase != entities.PhaseSetup {
		t.Fatalf("restored state = %+v", state)
	}
	if !restored.HasSeat("P2") {
		t.Fatal("seats should be rebuilt from the save")
	}
}
