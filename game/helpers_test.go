package game

import (
	"errors"
	"go-acquire/entities"
	"reflect"
	"testing"
)

// playingState 跳过开局流程，直接进入放置阶段
func playingState(names ...string) entities.GameState {
	state := NewGame(names, entities.ModeClassic, 42)
	state.GamePhase = entities.PhasePlaceTile
	state.SetupPhase = entities.SetupComplete
	return state
}

func removeFromPool(state *entities.GameState, c entities.Coordinate) {
	for i, p := range state.TilePool {
		if p == c {
			state.TilePool = append(state.TilePool[:i], state.TilePool[i+1:]...)
			return
		}
	}
}

func giveTiles(state *entities.GameState, idx int, coords ...entities.Coordinate) {
	for _, c := range coords {
		removeFromPool(state, c)
		state.Players[idx].Tiles = append(state.Players[idx].Tiles, c)
	}
}

func placeFree(state *entities.GameState, coords ...entities.Coordinate) {
	for _, c := range coords {
		removeFromPool(state, c)
		state.PlacedTiles[c] = entities.BuildingTile{Coordinate: c, IsPlaced: true}
	}
}

func placeChain(state *entities.GameState, name entities.ChainName, coords ...entities.Coordinate) {
	for _, c := range coords {
		removeFromPool(state, c)
		state.PlacedTiles[c] = entities.BuildingTile{Coordinate: c, IsPlaced: true, Chain: name}
	}
	chain := state.HotelChains[name]
	chain.IsActive = true
	state.HotelChains[name] = chain
	removeHeadquarters(state, name)
	syncChains(state)
}

func giveStock(state *entities.GameState, idx int, chain entities.ChainName, n int) {
	state.Players[idx].Stocks[chain] += n
	state.StockMarket[chain] -= n
}

func mustApply(t *testing.T, state entities.GameState, action Action) entities.GameState {
	t.Helper()
	next, err := Apply(state, action)
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", action.Type(), err)
	}
	return next
}

// expectRejected 被拒绝时必须返回未修改的原状态
func expectRejected(t *testing.T, state entities.GameState, action Action, target error) {
	t.Helper()
	before := state.Clone()
	next, err := Apply(state, action)
	if err == nil {
		t.Fatalf("%s: expected rejection", action.Type())
	}
	if target != nil && !errors.Is(err, target) {
		t.Fatalf("%s: got error %v want %v", action.Type(), err, target)
	}
	if !reflect.DeepEqual(next.Clone(), before) {
		t.Fatalf("%s: rejected action changed the state", action.Type())
	}
	if !reflect.DeepEqual(state.Clone(), before) {
		t.Fatalf("%s: rejected action mutated the input", action.Type())
	}
}

func assertConservation(t *testing.T, state entities.GameState) {
	t.Helper()
	if !ShareConservationHolds(state) {
		t.Fatalf("share conservation violated: market=%v", state.StockMarket)
	}
}

func coordsOf(n int, all []entities.Coordinate) []entities.Coordinate {
	return append([]entities.Coordinate{}, all[:n]...)
}
