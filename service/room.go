package service

import (
	"context"
	"errors"
	"fmt"
	"go-acquire/entities"
	"go-acquire/game"
	"go-acquire/logger"
	"go-acquire/repository"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	ErrRoomFull    = errors.New("房间已满")
	ErrRoomStarted = errors.New("游戏已开始，不能加入新玩家")
	ErrNameTaken   = errors.New("该名字已被占用，重连请使用已签发的令牌")
	ErrRoomUnknown = errors.New("房间不存在")
)

// Seat 房间中的一个座位，PlayerID 与游戏中的玩家 ID 一致
type Seat struct {
	PlayerID string `json:"playerID"`
	Name     string `json:"name"`
	Online   bool   `json:"online"`
}

// Listener 按状态变化的顺序被调用；回调里不能再 Dispatch 同一个房间
type Listener func(state entities.GameState, action game.ActionType)

// Room 持有一局游戏的状态；所有动作串行执行，存档和归档在后台完成
type Room struct {
	ID         string
	MaxPlayers int
	Mode       entities.GameMode

	mu        sync.Mutex
	notifyMu  sync.Mutex // 在释放 mu 之前获取，保证通知顺序与执行顺序一致
	state     entities.GameState
	seats     []Seat
	listeners map[int]Listener
	nextID    int

	store   repository.GameStore
	archive repository.ResultArchive
	log     *zap.Logger
	seed    func() int64
	wg      sync.WaitGroup
}

type RoomOption func(*Room)

// WithArchive 游戏结束时归档排名
func WithArchive(archive repository.ResultArchive) RoomOption {
	return func(r *Room) { r.archive = archive }
}

// WithSeed 指定开局洗牌的种子来源
func WithSeed(seed func() int64) RoomOption {
	return func(r *Room) { r.seed = seed }
}

func NewRoom(id string, maxPlayers int, mode entities.GameMode, store repository.GameStore, log *zap.Logger, opts ...RoomOption) *Room {
	if mode == "" {
		mode = entities.ModeClassic
	}
	state := entities.NewGameState()
	state.Mode = mode
	r := &Room{
		ID:         id,
		MaxPlayers: maxPlayers,
		Mode:       mode,
		state:      state,
		listeners:  make(map[int]Listener),
		store:      store,
		log:        logger.Room(log, id),
		seed:       func() int64 { return time.Now().UnixNano() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State 当前状态的副本
func (r *Room) State() entities.GameState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.Clone()
}

func (r *Room) Seats() []Seat {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Seat{}, r.seats...)
}

func (r *Room) IsFull() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.seats) >= r.MaxPlayers
}

// Join 按名字入座；名字不能重复，重连只能凭入座时签发的令牌
func (r *Room) Join(name string) (Seat, error) {
	r.mu.Lock()
	for _, s := range r.seats {
		if s.Name == name {
			r.mu.Unlock()
			return Seat{}, ErrNameTaken
		}
	}
	if len(r.state.Players) > 0 {
		r.mu.Unlock()
		return Seat{}, ErrRoomStarted
	}
	if len(r.seats) >= r.MaxPlayers {
		r.mu.Unlock()
		return Seat{}, ErrRoomFull
	}
	seat := Seat{PlayerID: fmt.Sprintf("P%d", len(r.seats)+1), Name: name}
	names := make([]string, 0, len(r.seats)+1)
	for _, s := range r.seats {
		names = append(names, s.Name)
	}
	names = append(names, name)

	snapshot, listeners, err := r.dispatchLocked(context.Background(), game.SetPlayers{PlayerNames: names})
	if err != nil {
		r.mu.Unlock()
		return Seat{}, err
	}
	r.seats = append(r.seats, seat)
	r.unlockAndNotify(listeners, snapshot, game.ActionSetPlayers)
	r.log.Info("玩家加入房间", zap.String("player_id", seat.PlayerID), zap.String("name", name))
	return seat, nil
}

func (r *Room) HasSeat(playerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.seats {
		if s.PlayerID == playerID {
			return true
		}
	}
	return false
}

func (r *Room) SetOnline(playerID string, online bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.seats {
		if r.seats[i].PlayerID == playerID {
			r.seats[i].Online = online
		}
	}
}

// Subscribe 注册状态变化回调，返回取消函数
func (r *Room) Subscribe(l Listener) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = l
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.listeners, id)
	}
}

// Dispatch 执行动作并返回新状态。被拒绝时状态不变，返回 game 包的错误。
func (r *Room) Dispatch(ctx context.Context, action game.Action) (entities.GameState, error) {
	return r.dispatch(ctx, "", action)
}

// DispatchAs 以座位上的玩家身份执行动作，先做 Authorize 检查
func (r *Room) DispatchAs(ctx context.Context, playerID string, action game.Action) (entities.GameState, error) {
	if playerID == "" {
		return r.State(), ErrForbidden
	}
	return r.dispatch(ctx, playerID, action)
}

func (r *Room) dispatch(ctx context.Context, playerID string, action game.Action) (entities.GameState, error) {
	r.mu.Lock()
	if playerID != "" && action != nil {
		if err := Authorize(r.state, playerID, action); err != nil {
			state := r.state.Clone()
			r.mu.Unlock()
			return state, err
		}
	}
	snapshot, listeners, err := r.dispatchLocked(ctx, action)
	if err != nil {
		r.mu.Unlock()
		return snapshot, err
	}
	r.unlockAndNotify(listeners, snapshot, action.Type())
	return snapshot, nil
}

// unlockAndNotify 调用方持有 r.mu；先拿到 notifyMu 再释放 r.mu，后执行的动作不会先通知
func (r *Room) unlockAndNotify(listeners []Listener, state entities.GameState, action game.ActionType) {
	r.notifyMu.Lock()
	r.mu.Unlock()
	defer r.notifyMu.Unlock()
	notify(listeners, state, action)
}

// dispatchLocked 调用方必须持有 r.mu
func (r *Room) dispatchLocked(ctx context.Context, action game.Action) (entities.GameState, []Listener, error) {
	if action == nil {
		return r.state.Clone(), nil, fmt.Errorf("%w: 动作为空", game.ErrInvalidInput)
	}
	action = r.prepare(ctx, action)

	prev := r.state
	next, err := game.Apply(prev, action)
	if err != nil {
		r.log.Debug("动作被拒绝", zap.String("action", string(action.Type())), zap.Error(err))
		return prev.Clone(), nil, err
	}
	r.state = next
	r.afterApply(prev, next, action)

	listeners := make([]Listener, 0, len(r.listeners))
	for _, l := range r.listeners {
		listeners = append(listeners, l)
	}
	return next.Clone(), listeners, nil
}

func notify(listeners []Listener, state entities.GameState, action game.ActionType) {
	for _, l := range listeners {
		l(state.Clone(), action)
	}
}

// prepare 补全需要外部数据的动作：开局种子、座位名字和读档
func (r *Room) prepare(ctx context.Context, action game.Action) game.Action {
	switch a := action.(type) {
	case game.StartGame:
		if a.Seed == 0 {
			a.Seed = r.seed()
		}
		if len(a.PlayerNames) == 0 && len(r.state.LobbyPlayers) == 0 {
			for _, s := range r.seats {
				a.PlayerNames = append(a.PlayerNames, s.Name)
			}
		}
		return a
	case game.LoadSavedGame:
		if a.Saved != nil {
			return a
		}
		saved, err := r.store.Load(ctx, r.ID)
		if err != nil {
			// 读档失败按没有存档处理
			r.log.Warn("读取存档失败", zap.Error(err))
			return a
		}
		a.Saved = saved
		return a
	}
	return action
}

// afterApply 存档、清档、归档放到后台执行，失败只记录日志
func (r *Room) afterApply(prev, next entities.GameState, action game.Action) {
	switch action.(type) {
	case game.SaveGame:
		r.background("保存存档失败", func(ctx context.Context) error {
			return r.store.Save(ctx, r.ID, next)
		})
	case game.ClearSavedGame:
		r.background("删除存档失败", func(ctx context.Context) error {
			return r.store.Clear(ctx, r.ID)
		})
	}
	if r.archive != nil && prev.GamePhase != entities.PhaseGameOver && next.GamePhase == entities.PhaseGameOver {
		final := next.Clone()
		r.background("归档对局结果失败", func(ctx context.Context) error {
			return r.archive.Archive(ctx, r.ID, final)
		})
	}
}

func (r *Room) background(msg string, fn func(ctx context.Context) error) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := fn(ctx); err != nil {
			r.log.Error(msg, zap.Error(err))
		}
	}()
}

// Flush 等待后台的存档/归档完成
func (r *Room) Flush() {
	r.wg.Wait()
}

// restore 用存档替换状态，并按存档中的玩家重建座位
func (r *Room) restore(saved entities.GameState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = saved
	r.seats = r.seats[:0]
	for _, p := range saved.Players {
		r.seats = append(r.seats, Seat{PlayerID: p.ID, Name: p.Name})
	}
	if len(saved.Players) == 0 {
		for i, name := range saved.LobbyPlayers {
			r.seats = append(r.seats, Seat{PlayerID: fmt.Sprintf("P%d", i+1), Name: name})
		}
	}
	sort.Slice(r.seats, func(i, j int) bool { return r.seats[i].PlayerID < r.seats[j].PlayerID })
}
