package ws

import (
	"context"
	"encoding/json"
	"errors"
	"go-acquire/dto"
	"go-acquire/game"
	"go-acquire/service"

	"go.uber.org/zap"
)

const messageGetState = "GET_STATE"

// 消息处理函数类型
type messageHandler func(h *Hub, room *service.Room, pc *PlayerConn, msg dto.ActionMessage)

// 非动作类消息；其余类型都按游戏动作处理
var messageHandlers = map[string]messageHandler{
	messageGetState: handleGetStateMessage,
}

// 持续监听客户端消息
func (h *Hub) listen(room *service.Room, pc *PlayerConn) {
	for {
		_, raw, err := pc.conn.ReadMessage()
		if err != nil {
			h.log.Debug("读取消息失败", zap.String("player_id", pc.PlayerID), zap.Error(err))
			return
		}
		if !pc.allow() {
			pc.send(dto.ErrorMessage("操作过于频繁"))
			continue
		}
		var msg dto.ActionMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			pc.send(dto.ErrorMessage("消息解析失败"))
			continue
		}
		if handler, found := messageHandlers[string(msg.Type)]; found {
			handler(h, room, pc, msg)
			continue
		}
		handleActionMessage(h, room, pc, msg)
	}
}

func handleGetStateMessage(_ *Hub, room *service.Room, pc *PlayerConn, _ dto.ActionMessage) {
	pc.send(dto.StateMessage(room.State(), pc.PlayerID, ""))
}

// handleActionMessage 成功后由房间订阅负责广播，失败只回给发送者
func handleActionMessage(h *Hub, room *service.Room, pc *PlayerConn, msg dto.ActionMessage) {
	action, err := dto.DecodeAction(msg)
	if err != nil {
		pc.send(dto.ErrorMessage(err.Error()))
		return
	}
	if _, err := room.DispatchAs(context.Background(), pc.PlayerID, action); err != nil {
		if !errors.Is(err, game.ErrRejected) && !errors.Is(err, service.ErrForbidden) {
			h.log.Warn("处理动作失败", zap.String("room_id", room.ID), zap.String("player_id", pc.PlayerID), zap.Error(err))
		}
		pc.send(dto.ErrorMessage(err.Error()))
	}
}
