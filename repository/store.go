package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"go-acquire/entities"
	"strconv"
	"sync"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// GameStore 对局存档；Load 在没有存档或存档损坏时返回 (nil, nil)
type GameStore interface {
	Save(ctx context.Context, roomID string, state entities.GameState) error
	Load(ctx context.Context, roomID string) (*entities.GameState, error)
	Clear(ctx context.Context, roomID string) error
}

func gameStateKey(roomID string) string {
	return fmt.Sprintf("acquire:room:%s:game_state", roomID)
}

func roomInfoKey(roomID string) string {
	return fmt.Sprintf("acquire:room:%s:info", roomID)
}

const roomIDsKey = "acquire:room_ids"

type RedisStore struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewRedisStore(rdb *redis.Client, log *zap.Logger) *RedisStore {
	return &RedisStore{rdb: rdb, log: log}
}

func (s *RedisStore) Save(ctx context.Context, roomID string, state entities.GameState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("游戏状态序列化失败: %w", err)
	}
	if err := s.rdb.Set(ctx, gameStateKey(roomID), data, 0).Err(); err != nil {
		return fmt.Errorf("保存游戏状态失败: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, roomID string) (*entities.GameState, error) {
	data, err := s.rdb.Get(ctx, gameStateKey(roomID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取游戏状态失败: %w", err)
	}
	var state entities.GameState
	if err := json.Unmarshal(data, &state); err != nil {
		s.log.Warn("存档无法解析，忽略", zap.String("room_id", roomID), zap.Error(err))
		return nil, nil
	}
	return &state, nil
}

func (s *RedisStore) Clear(ctx context.Context, roomID string) error {
	if err := s.rdb.Del(ctx, gameStateKey(roomID)).Err(); err != nil {
		return fmt.Errorf("删除游戏存档失败: %w", err)
	}
	return nil
}

// RoomRecord 房间基础信息，存放在 Redis Hash 中
type RoomRecord struct {
	RoomID     string            `json:"roomID"`
	MaxPlayers int               `json:"maxPlayers"`
	GameMode   entities.GameMode `json:"gameMode"`
}

func (s *RedisStore) SaveRoomInfo(ctx context.Context, info RoomRecord) error {
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, roomInfoKey(info.RoomID), map[string]interface{}{
		"maxPlayers": info.MaxPlayers,
		"gameMode":   string(info.GameMode),
	})
	pipe.SAdd(ctx, roomIDsKey, info.RoomID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("初始化房间信息失败: %w", err)
	}
	return nil
}

func (s *RedisStore) ListRoomInfo(ctx context.Context) ([]RoomRecord, error) {
	ids, err := s.rdb.SMembers(ctx, roomIDsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("获取房间列表失败: %w", err)
	}
	var rooms []RoomRecord
	for _, id := range ids {
		fields, err := s.rdb.HGetAll(ctx, roomInfoKey(id)).Result()
		if err != nil {
			return nil, fmt.Errorf("获取房间[%s]信息失败: %w", id, err)
		}
		if len(fields) == 0 {
			continue
		}
		maxPlayers, err := strconv.Atoi(fields["maxPlayers"])
		if err != nil {
			s.log.Warn("房间人数字段无法解析，跳过", zap.String("room_id", id), zap.Error(err))
			continue
		}
		rooms = append(rooms, RoomRecord{
			RoomID:     id,
			MaxPlayers: maxPlayers,
			GameMode:   entities.GameMode(fields["gameMode"]),
		})
	}
	return rooms, nil
}

// DeleteRoom 用 SCAN 删除所有以 acquire:room:{roomID}: 开头的 key
func (s *RedisStore) DeleteRoom(ctx context.Context, roomID string) error {
	prefix := fmt.Sprintf("acquire:room:%s:", roomID)
	var cursor uint64
	var keysToDelete []string
	for {
		keys, cur, err := s.rdb.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("扫描房间相关 key 失败: %w", err)
		}
		keysToDelete = append(keysToDelete, keys...)
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	if len(keysToDelete) > 0 {
		if err := s.rdb.Del(ctx, keysToDelete...).Err(); err != nil {
			return fmt.Errorf("删除房间相关 key 失败: %w", err)
		}
	}
	if err := s.rdb.SRem(ctx, roomIDsKey, roomID).Err(); err != nil {
		return fmt.Errorf("移除房间 ID 失败: %w", err)
	}
	return nil
}

// MemoryStore 进程内存档，用于测试和 replay 命令
type MemoryStore struct {
	mu     sync.Mutex
	states map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string][]byte)}
}

func (s *MemoryStore) Save(_ context.Context, roomID string, state entities.GameState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("游戏状态序列化失败: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[roomID] = data
	return nil
}

func (s *MemoryStore) Load(_ context.Context, roomID string) (*entities.GameState, error) {
	s.mu.Lock()
	data, ok := s.states[roomID]
	s.mu.Unlock()
	if !ok {
		return nil, nil
	}
	var state entities.GameState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, nil
	}
	return &state, nil
}

func (s *MemoryStore) Clear(_ context.Context, roomID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, roomID)
	return nil
}
