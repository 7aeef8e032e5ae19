package ws

import (
	"go-acquire/dto"
	"go-acquire/entities"
	"go-acquire/game"
	"go-acquire/service"
	"go-acquire/utils"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub 管理所有房间的 websocket 连接，房间状态变化时广播给房间内所有连接
type Hub struct {
	rooms  *service.RoomManager
	issuer *utils.TokenIssuer
	log    *zap.Logger
	limit  rate.Limit
	burst  int

	mu    sync.Mutex // 只保护 conns，持有时不能再等待房间的锁
	conns map[string][]*PlayerConn

	subMu sync.Mutex
	unsub map[string]func()
}

func NewHub(rooms *service.RoomManager, issuer *utils.TokenIssuer, log *zap.Logger, perSecond float64, burst int) *Hub {
	if burst < 1 {
		burst = 1
	}
	return &Hub{
		rooms:  rooms,
		issuer: issuer,
		log:    log,
		limit:  rate.Limit(perSecond),
		burst:  burst,
		conns:  make(map[string][]*PlayerConn),
		unsub:  make(map[string]func()),
	}
}

// HandleWebSocket 入口：GET /ws?roomID=&token=
func (h *Hub) HandleWebSocket(c *gin.Context) {
	roomID := c.Query("roomID")
	claims, err := h.issuer.ParseSeatToken(c.Query("token"))
	if err != nil || roomID == "" || claims.RoomID != roomID {
		c.JSON(http.StatusUnauthorized, gin.H{"status_code": http.StatusUnauthorized, "msg": "令牌无效"})
		return
	}
	room, err := h.rooms.Get(roomID)
	if err != nil || !room.HasSeat(claims.PlayerID) {
		c.JSON(http.StatusNotFound, gin.H{"status_code": http.StatusNotFound, "msg": "房间或座位不存在"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("WebSocket 升级失败", zap.Error(err))
		return
	}
	defer conn.Close()

	h.serve(room, claims.PlayerID, conn)
}

// serve 处理单个连接的完整生命周期
func (h *Hub) serve(room *service.Room, playerID string, conn ReadWriteConn) {
	pc := newPlayerConn(playerID, conn, h.limit, h.burst)
	h.join(room, pc)
	defer h.cleanupOnDisconnect(room, pc)

	room.SetOnline(playerID, true)
	pc.send(dto.BuildMessage(dto.ServerMessage{Type: dto.MessageInit, PlayerID: playerID}))
	pc.send(dto.StateMessage(room.State(), playerID, ""))
	h.log.Info("玩家连接", zap.String("room_id", room.ID), zap.String("player_id", playerID))

	h.listen(room, pc)
}

func (h *Hub) join(room *service.Room, pc *PlayerConn) {
	h.subMu.Lock()
	defer h.subMu.Unlock()

	h.mu.Lock()
	h.conns[room.ID] = append(h.conns[room.ID], pc)
	h.mu.Unlock()

	if _, ok := h.unsub[room.ID]; !ok {
		roomID := room.ID
		h.unsub[roomID] = room.Subscribe(func(state entities.GameState, action game.ActionType) {
			h.broadcastState(roomID, state, string(action))
		})
	}
}

// 玩家断开连接后，从房间中移除该连接并标记离线
func (h *Hub) cleanupOnDisconnect(room *service.Room, pc *PlayerConn) {
	h.subMu.Lock()
	h.mu.Lock()
	remaining := h.conns[room.ID][:0]
	online := false
	for _, other := range h.conns[room.ID] {
		if other == pc {
			continue
		}
		remaining = append(remaining, other)
		if other.PlayerID == pc.PlayerID {
			online = true
		}
	}
	empty := len(remaining) == 0
	if empty {
		delete(h.conns, room.ID)
	} else {
		h.conns[room.ID] = remaining
	}
	h.mu.Unlock()

	if unsub, ok := h.unsub[room.ID]; ok && empty {
		unsub()
		delete(h.unsub, room.ID)
	}
	h.subMu.Unlock()

	if !online {
		room.SetOnline(pc.PlayerID, false)
	}
	h.log.Info("玩家离开房间", zap.String("room_id", room.ID), zap.String("player_id", pc.PlayerID))
}

// broadcastState 每个连接只收到自己能看到的状态
func (h *Hub) broadcastState(roomID string, state entities.GameState, action string) {
	h.broadcastToRoom(roomID, func(playerID string) []byte {
		return dto.StateMessage(state, playerID, action)
	})
}

// 广播消息给房间内所有连接，发送失败的连接被移除
func (h *Hub) broadcastToRoom(roomID string, build func(playerID string) []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	alive := make([]*PlayerConn, 0, len(h.conns[roomID]))
	for _, pc := range h.conns[roomID] {
		if err := pc.send(build(pc.PlayerID)); err != nil {
			h.log.Warn("广播失败，移除连接", zap.String("room_id", roomID), zap.String("player_id", pc.PlayerID), zap.Error(err))
			pc.conn.Close()
			continue
		}
		alive = append(alive, pc)
	}
	h.conns[roomID] = alive
}

// ConnectionCount 房间当前连接数
func (h *Hub) ConnectionCount(roomID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns[roomID])
}
