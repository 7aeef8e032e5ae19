package game

import (
	"go-acquire/board"
	"go-acquire/entities"
)

func endTurn(state entities.GameState) (entities.GameState, error) {
	if state.GamePhase != entities.PhaseBuyStock {
		return state, ErrWrongPhase
	}
	if state.HasPending() {
		return state, ErrPendingDecision
	}
	next := state.Clone()
	if IsGameEndEligible(next) {
		settleEndGame(&next)
		return next, nil
	}
	advanceTurn(&next)
	return next, nil
}

// advanceTurn 轮到下一位能出牌的玩家；所有人都无牌可出时结束游戏
func advanceTurn(state *entities.GameState) {
	state.StocksBoughtThisTurn = 0
	n := len(state.Players)
	for step := 1; step <= n; step++ {
		idx := (state.CurrentPlayerIndex + step) % n
		refillHand(state, idx)
		if len(playableTiles(*state, state.Players[idx])) == 0 {
			continue
		}
		state.CurrentPlayerIndex = idx
		state.GamePhase = entities.PhasePlaceTile
		snapshotTurnStart(state)
		return
	}
	settleEndGame(state)
}

// refillHand 丢弃死牌并从牌堆补足手牌
func refillHand(state *entities.GameState, idx int) {
	player := &state.Players[idx]
	kept := player.Tiles[:0]
	for _, c := range player.Tiles {
		if !isTileBurned(*state, c) {
			kept = append(kept, c)
		}
	}
	player.Tiles = kept
	for len(player.Tiles) < entities.HandSize && len(state.TilePool) > 0 {
		c := state.TilePool[0]
		state.TilePool = state.TilePool[1:]
		if isTileBurned(*state, c) {
			continue
		}
		player.Tiles = append(player.Tiles, c)
	}
}

func playableTiles(state entities.GameState, player entities.Player) []entities.Coordinate {
	var playable []entities.Coordinate
	for _, c := range player.Tiles {
		if isPlayable(state, c) {
			playable = append(playable, c)
		}
	}
	return playable
}

func addTileToPlayerHand(state entities.GameState, a AddTileToPlayerHand) (entities.GameState, error) {
	if !board.IsValid(a.Coordinate) {
		return state, invalid("无效的坐标: %q", a.Coordinate)
	}
	idx := state.PlayerIndex(a.PlayerID)
	if idx < 0 {
		return state, ErrUnknownPlayer
	}
	if len(state.Players[idx].Tiles) >= entities.HandSize {
		return state, ErrHandFull
	}
	pos := -1
	for i, c := range state.TilePool {
		if c == a.Coordinate {
			pos = i
			break
		}
	}
	if pos < 0 {
		return state, ErrTileUnavailable
	}
	next := state.Clone()
	next.TilePool = append(next.TilePool[:pos], next.TilePool[pos+1:]...)
	next.Players[idx].Tiles = append(next.Players[idx].Tiles, a.Coordinate)
	return next, nil
}
