package dto

import "go-acquire/entities"

// PublicState 发给客户端的状态：牌堆只给数量，只能看到自己的手牌
type PublicState struct {
	entities.GameState
	TilePoolSize int `json:"tilePoolSize"`
}

// Redact viewerID 为空时所有手牌都隐藏
func Redact(state entities.GameState, viewerID string) PublicState {
	view := state.Clone()
	size := len(view.TilePool)
	view.TilePool = []entities.Coordinate{}
	for i := range view.Players {
		if view.Players[i].ID != viewerID {
			view.Players[i].Tiles = []entities.Coordinate{}
		}
	}
	return PublicState{GameState: view, TilePoolSize: size}
}
