package game

import (
	"go-acquire/board"
	"go-acquire/entities"
)

// validatePlacement 检查回合、阶段、手牌、占用和死牌
func validatePlacement(state entities.GameState, playerID string, c entities.Coordinate) error {
	if !board.IsValid(c) {
		return invalid("无效的坐标: %q", c)
	}
	if state.GamePhase != entities.PhasePlaceTile {
		return ErrWrongPhase
	}
	if state.HasPending() {
		return ErrPendingDecision
	}
	idx := state.PlayerIndex(playerID)
	if idx < 0 {
		return ErrUnknownPlayer
	}
	if idx != state.CurrentPlayerIndex {
		return ErrNotYourTurn
	}
	if !state.Players[idx].HasTile(c) {
		return ErrTileNotInHand
	}
	if _, placed := state.PlacedTiles[c]; placed {
		return ErrTileOccupied
	}
	if isTileBurned(state, c) {
		return ErrTileBurned
	}
	return nil
}

// putTile 从手牌移除并放到棋盘上（暂不归属任何酒店）
func putTile(state *entities.GameState, c entities.Coordinate) {
	removeFromHand(&state.Players[state.CurrentPlayerIndex], c)
	state.PlacedTiles[c] = entities.BuildingTile{Coordinate: c, IsPlaced: true}
}

func placeTile(state entities.GameState, a PlaceTile) (entities.GameState, error) {
	if err := validatePlacement(state, a.PlayerID, a.Coordinate); err != nil {
		return state, err
	}
	next := state.Clone()
	putTile(&next, a.Coordinate)
	resolvePlacement(&next, a.Coordinate)
	return next, nil
}

// placeTileAndAddToChain 只适用于恰好与一家酒店相邻的情况
func placeTileAndAddToChain(state entities.GameState, a PlaceTileAndAddToChain) (entities.GameState, error) {
	if err := validatePlacement(state, a.PlayerID, a.Coordinate); err != nil {
		return state, err
	}
	chains := adjacentChains(state, a.Coordinate)
	if len(chains) != 1 || chains[0] != a.ChainName {
		return state, ErrChainUnavailable
	}
	next := state.Clone()
	putTile(&next, a.Coordinate)
	extendChain(&next, a.ChainName, a.Coordinate)
	next.GamePhase = entities.PhaseBuyStock
	return next, nil
}

// foundHotel 创建酒店，创始人获得一股赠股
func foundHotel(state entities.GameState, a FoundHotel) (entities.GameState, error) {
	pending := state.PendingFounding
	if pending == nil {
		return state, ErrNoPendingDecision
	}
	if a.TileCoordinate != "" && a.TileCoordinate != pending.Coordinate {
		return state, ErrNoPendingDecision
	}
	if !entities.IsValidChain(a.ChainName) {
		return state, invalid("未知的酒店: %s", a.ChainName)
	}
	if !hasHeadquarters(state, a.ChainName) {
		return state, ErrChainUnavailable
	}
	connected := board.FindConnectedTiles(pending.Coordinate, state.PlacedTiles)
	if len(a.ConnectedTiles) > 0 && !sameCoordinateSet(a.ConnectedTiles, connected) {
		return state, invalid("相连 tile 与棋盘不一致")
	}

	next := state.Clone()
	chain := next.HotelChains[a.ChainName]
	chain.IsActive = true
	next.HotelChains[a.ChainName] = chain
	assignTiles(&next, a.ChainName, connected)
	removeHeadquarters(&next, a.ChainName)

	if next.StockMarket[a.ChainName] > 0 {
		next.StockMarket[a.ChainName]--
		next.Players[next.CurrentPlayerIndex].Stocks[a.ChainName]++
	}
	next.PendingFounding = nil
	next.GamePhase = entities.PhaseBuyStock
	return next, nil
}

func handleMerger(state entities.GameState, a HandleMerger) (entities.GameState, error) {
	pending := state.PendingMerger
	if pending == nil {
		return state, ErrNoPendingDecision
	}
	if a.Coordinate != "" && a.Coordinate != pending.Coordinate {
		return state, ErrNoPendingDecision
	}
	current, _ := state.CurrentPlayer()
	if a.PlayerID != "" && a.PlayerID != current.ID {
		return state, ErrNotYourTurn
	}
	survivor := a.SurvivingChain
	if survivor == "" {
		survivor = pending.AutomaticSurvivor
	}
	acquired, err := mergerChains(state, *pending, survivor, a.AcquiredChains)
	if err != nil {
		return state, err
	}

	next := state.Clone()
	executeMerger(&next, pending.Coordinate, survivor, acquired)
	return next, nil
}

func handleMergerStocks(state entities.GameState, a HandleMergerStocks) (entities.GameState, error) {
	if state.PendingSettlement == nil || len(state.PendingSettlement.Steps) == 0 {
		return state, ErrNoPendingDecision
	}
	next := state.Clone()
	if err := settleMergerStocks(&next, a); err != nil {
		return state, err
	}
	return next, nil
}
