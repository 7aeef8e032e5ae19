package dto

import "go-acquire/entities"

type RoomPlayer struct {
	PlayerID string `json:"playerID"`
	Name     string `json:"name"`
	Online   bool   `json:"online"`
}

type RoomInfo struct {
	RoomID     string             `json:"roomID"`
	MaxPlayers int                `json:"maxPlayers"`
	GameMode   entities.GameMode  `json:"gameMode"`
	Status     entities.GamePhase `json:"status"`
	RoomPlayer []RoomPlayer       `json:"roomPlayer"`
}

type CreateRoomRequest struct {
	MaxPlayers int               `json:"maxPlayers" binding:"required,min=2,max=6"`
	GameMode   entities.GameMode `json:"gameMode"`
}

type CreateRoomResponse struct {
	RoomID string `json:"room_id"`
}

type DeleteRoomRequest struct {
	RoomID string `json:"roomID" binding:"required"`
}

type GetRoomList struct {
	Rooms []RoomInfo `json:"rooms"`
}

type JoinRoomRequest struct {
	Name string `json:"name" binding:"required"`
}

type JoinRoomResponse struct {
	PlayerID string `json:"playerID"`
	Token    string `json:"token"`
}

// TileInfo 某个坐标的查询结果
type TileInfo struct {
	Coordinate     entities.Coordinate  `json:"coordinate"`
	Placed         bool                 `json:"placed"`
	Chain          entities.ChainName   `json:"chain,omitempty"`
	AdjacentChains []entities.ChainName `json:"adjacentChains"`
	Burned         bool                 `json:"burned"`
}

type EndEligibleResponse struct {
	Eligible bool `json:"eligible"`
}
