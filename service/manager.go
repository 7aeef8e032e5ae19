package service

import (
	"context"
	"fmt"
	"go-acquire/dto"
	"go-acquire/entities"
	"go-acquire/game"
	"go-acquire/repository"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RoomIndex 房间基础信息的持久化（Redis 实现见 repository.RedisStore）
type RoomIndex interface {
	SaveRoomInfo(ctx context.Context, info repository.RoomRecord) error
	ListRoomInfo(ctx context.Context) ([]repository.RoomRecord, error)
	DeleteRoom(ctx context.Context, roomID string) error
}

type RoomManager struct {
	mu    sync.RWMutex
	rooms map[string]*Room

	store   repository.GameStore
	index   RoomIndex
	archive repository.ResultArchive
	log     *zap.Logger
}

// NewRoomManager index 和 archive 可以为 nil
func NewRoomManager(store repository.GameStore, index RoomIndex, archive repository.ResultArchive, log *zap.Logger) *RoomManager {
	return &RoomManager{
		rooms:   make(map[string]*Room),
		store:   store,
		index:   index,
		archive: archive,
		log:     log,
	}
}

func (m *RoomManager) newRoom(id string, maxPlayers int, mode entities.GameMode) *Room {
	var opts []RoomOption
	if m.archive != nil {
		opts = append(opts, WithArchive(m.archive))
	}
	return NewRoom(id, maxPlayers, mode, m.store, m.log, opts...)
}

func (m *RoomManager) CreateRoom(ctx context.Context, params dto.CreateRoomRequest) (*Room, error) {
	if params.GameMode != "" && !entities.IsValidMode(params.GameMode) {
		return nil, fmt.Errorf("%w: 未知的游戏模式 %s", game.ErrInvalidInput, params.GameMode)
	}
	// 生成唯一 Room ID（8位）
	roomID := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	room := m.newRoom(roomID, params.MaxPlayers, params.GameMode)

	if m.index != nil {
		if err := m.index.SaveRoomInfo(ctx, repository.RoomRecord{
			RoomID:     roomID,
			MaxPlayers: params.MaxPlayers,
			GameMode:   room.Mode,
		}); err != nil {
			return nil, err
		}
	}

	m.mu.Lock()
	m.rooms[roomID] = room
	m.mu.Unlock()
	m.log.Info("房间创建成功", zap.String("room_id", roomID), zap.Int("max_players", params.MaxPlayers))
	return room, nil
}

func (m *RoomManager) Get(roomID string) (*Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	room, ok := m.rooms[roomID]
	if !ok {
		return nil, ErrRoomUnknown
	}
	return room, nil
}

func (m *RoomManager) Delete(ctx context.Context, roomID string) error {
	m.mu.Lock()
	room, ok := m.rooms[roomID]
	delete(m.rooms, roomID)
	m.mu.Unlock()
	if !ok {
		return ErrRoomUnknown
	}
	room.Flush()
	if m.index != nil {
		if err := m.index.DeleteRoom(ctx, roomID); err != nil {
			return err
		}
	}
	m.log.Info("房间已删除", zap.String("room_id", roomID))
	return nil
}

func (m *RoomManager) List() []dto.RoomInfo {
	m.mu.RLock()
	rooms := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		rooms = append(rooms, r)
	}
	m.mu.RUnlock()

	list := make([]dto.RoomInfo, 0, len(rooms))
	for _, r := range rooms {
		state := r.State()
		players := []dto.RoomPlayer{}
		for _, s := range r.Seats() {
			players = append(players, dto.RoomPlayer{PlayerID: s.PlayerID, Name: s.Name, Online: s.Online})
		}
		list = append(list, dto.RoomInfo{
			RoomID:     r.ID,
			MaxPlayers: r.MaxPlayers,
			GameMode:   state.Mode,
			Status:     state.GamePhase,
			RoomPlayer: players,
		})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].RoomID < list[j].RoomID })
	return list
}

// Restore 服务重启后从 Redis 恢复房间，有存档的房间同时恢复对局
func (m *RoomManager) Restore(ctx context.Context) error {
	if m.index == nil {
		return nil
	}
	records, err := m.index.ListRoomInfo(ctx)
	if err != nil {
		return err
	}
	for _, rec := range records {
		room := m.newRoom(rec.RoomID, rec.MaxPlayers, rec.GameMode)
		saved, err := m.store.Load(ctx, rec.RoomID)
		if err != nil {
			m.log.Warn("恢复存档失败", zap.String("room_id", rec.RoomID), zap.Error(err))
		}
		if saved != nil {
			room.restore(*saved)
		}
		m.mu.Lock()
		m.rooms[rec.RoomID] = room
		m.mu.Unlock()
	}
	m.log.Info("房间恢复完成", zap.Int("rooms", len(records)))
	return nil
}

// Flush 等待所有房间的后台任务完成
func (m *RoomManager) Flush() {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.rooms {
		r.Flush()
	}
}
