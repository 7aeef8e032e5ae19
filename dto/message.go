package dto

import (
	"encoding/json"
	"go-acquire/entities"
)

const (
	MessageInit  = "init"
	MessageState = "state"
	MessageError = "error"
)

// ServerMessage 服务端推送的消息
type ServerMessage struct {
	Type     string       `json:"type"`
	PlayerID string       `json:"playerId,omitempty"`
	State    *PublicState `json:"state,omitempty"`
	Action   string       `json:"action,omitempty"`
	Message  string       `json:"message,omitempty"`
}

// BuildMessage 构建一条统一格式的消息
func BuildMessage(msg ServerMessage) []byte {
	data, err := json.Marshal(msg)
	if err != nil {
		data, _ = json.Marshal(ServerMessage{Type: MessageError, Message: err.Error()})
	}
	return data
}

// StateMessage 按接收者裁剪后的状态消息
func StateMessage(state entities.GameState, viewerID, action string) []byte {
	view := Redact(state, viewerID)
	return BuildMessage(ServerMessage{Type: MessageState, PlayerID: viewerID, State: &view, Action: action})
}

func ErrorMessage(message string) []byte {
	return BuildMessage(ServerMessage{Type: MessageError, Message: message})
}
