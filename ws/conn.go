package ws

import (
	"sync"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

// 只写接口，广播时使用
type WriteOnlyConn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// 读写接口，供真实客户端连接用
type ReadWriteConn interface {
	WriteOnlyConn
	ReadMessage() (messageType int, p []byte, err error)
}

// PlayerConn 一个玩家的连接；gorilla 的连接不支持并发写，写操作需要加锁
type PlayerConn struct {
	PlayerID string
	conn     ReadWriteConn
	limiter  *rate.Limiter
	writeMu  sync.Mutex
}

func newPlayerConn(playerID string, conn ReadWriteConn, limit rate.Limit, burst int) *PlayerConn {
	return &PlayerConn{
		PlayerID: playerID,
		conn:     conn,
		limiter:  rate.NewLimiter(limit, burst),
	}
}

func (pc *PlayerConn) send(data []byte) error {
	pc.writeMu.Lock()
	defer pc.writeMu.Unlock()
	return pc.conn.WriteMessage(websocket.TextMessage, data)
}

// allow 超出频率限制的消息直接丢弃
func (pc *PlayerConn) allow() bool {
	return pc.limiter.Allow()
}
