package game

import (
	"errors"
	"go-acquire/entities"
	"reflect"
	"testing"
)

func poolFront(state *entities.GameState, coords ...entities.Coordinate) {
	for _, c := range coords {
		removeFromPool(state, c)
	}
	state.TilePool = append(append([]entities.Coordinate{}, coords...), state.TilePool...)
}

func TestStartGame(t *testing.T) {
	state := mustApply(t, entities.NewGameState(), StartGame{
		PlayerCount: 3,
		PlayerNames: []string{"alice", "bob", "carol"},
		Seed:        7,
	})

	if len(state.Players) != 3 {
		t.Fatalf("got %d players", len(state.Players))
	}
	for i, p := range state.Players {
		if p.Money != entities.StartingMoney {
			t.Errorf("player %d money = %d", i, p.Money)
		}
		if len(p.Tiles) != 0 {
			t.Errorf("player %d should start with an empty hand", i)
		}
	}
	if state.Players[0].ID != "P1" || state.Players[2].ID != "P3" {
		t.Errorf("unexpected player ids: %s %s", state.Players[0].ID, state.Players[2].ID)
	}
	if len(state.TilePool) != 108 {
		t.Errorf("pool size = %d", len(state.TilePool))
	}
	if len(state.AvailableHeadquarters) != 7 {
		t.Errorf("headquarters = %v", state.AvailableHeadquarters)
	}
	for _, name := range entities.ChainNames() {
		if state.StockMarket[name] != entities.SharesPerChain {
			t.Errorf("%s market = %d", name, state.StockMarket[name])
		}
	}
	if state.GamePhase != entities.PhaseSetup || state.SetupPhase != entities.SetupDrawInitialTile {
		t.Errorf("phase = %s/%s", state.GamePhase, state.SetupPhase)
	}
	assertConservation(t, state)
}

func TestStartGameIsReproducible(t *testing.T) {
	start := StartGame{PlayerCount: 2, PlayerNames: []string{"a", "b"}, Seed: 99}
	first := mustApply(t, entities.NewGameState(), start)
	second := mustApply(t, entities.NewGameState(), start)
	if !reflect.DeepEqual(first.TilePool, second.TilePool) {
		t.Fatal("same seed should shuffle the pool the same way")
	}

	start.Seed = 100
	third := mustApply(t, entities.NewGameState(), start)
	if reflect.DeepEqual(first.TilePool, third.TilePool) {
		t.Fatal("different seeds should shuffle differently")
	}
}

func TestStartGameValidation(t *testing.T) {
	tests := []struct {
		name   string
		action StartGame
	}{
		{"too few players", StartGame{PlayerCount: 1, PlayerNames: []string{"solo"}}},
		{"too many players", StartGame{PlayerCount: 7}},
		{"names mismatch", StartGame{PlayerCount: 3, PlayerNames: []string{"a", "b"}}},
		{"unknown mode", StartGame{PlayerCount: 2, PlayerNames: []string{"a", "b"}, GameMode: "blitz"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectRejected(t, entities.NewGameState(), tt.action, ErrInvalidInput)
		})
	}
}

func TestStartGameUsesLobby(t *testing.T) {
	state := mustApply(t, entities.NewGameState(), SetPlayers{PlayerNames: []string{"x", "y"}})
	state = mustApply(t, state, SetGameMode{GameMode: entities.ModeTycoon})
	state = mustApply(t, state, StartGame{})

	if len(state.Players) != 2 || state.Players[1].Name != "y" {
		t.Fatalf("players not taken from lobby: %+v", state.Players)
	}
	if state.Mode != entities.ModeTycoon {
		t.Fatalf("mode = %s", state.Mode)
	}

	expectRejected(t, state, SetPlayers{PlayerNames: []string{"z"}}, ErrWrongPhase)
	expectRejected(t, state, SetGameMode{GameMode: entities.ModeClassic}, ErrWrongPhase)
}

func TestInitialTileOrdering(t *testing.T) {
	state := NewGame([]string{"alice", "bob", "carol"}, entities.ModeClassic, 1)
	poolFront(&state, "5C", "1A", "3B")

	state = mustApply(t, state, DrawInitialTile{PlayerID: "P1"})
	expectRejected(t, state, DrawInitialTile{PlayerID: "P3"}, ErrNotYourTurn)
	state = mustApply(t, state, DrawInitialTile{PlayerID: "P2"})
	state = mustApply(t, state, DrawInitialTile{PlayerID: "P3"})

	var order []string
	for _, p := range state.Players {
		order = append(order, p.ID)
	}
	if !reflect.DeepEqual(order, []string{"P2", "P3", "P1"}) {
		t.Fatalf("turn order = %v", order)
	}
	if state.CurrentPlayerIndex != 0 || state.SetupPhase != entities.SetupDealTiles {
		t.Fatalf("current=%d setup=%s", state.CurrentPlayerIndex, state.SetupPhase)
	}
	for _, c := range []entities.Coordinate{"5C", "1A", "3B"} {
		tile, ok := state.PlacedTiles[c]
		if !ok || !tile.IsFree() {
			t.Errorf("initial tile %s should be on the board unowned", c)
		}
	}

	state = mustApply(t, state, DealStartingTiles{})
	for _, p := range state.Players {
		if len(p.Tiles) != entities.HandSize {
			t.Errorf("%s hand = %d", p.ID, len(p.Tiles))
		}
	}
	if len(state.TilePool) != 108-3-3*entities.HandSize {
		t.Errorf("pool size = %d", len(state.TilePool))
	}
	if state.GamePhase != entities.PhasePlaceTile {
		t.Errorf("phase = %s", state.GamePhase)
	}

	expectRejected(t, state, DealStartingTiles{}, ErrWrongPhase)
}

func TestOrderByInitialTiles(t *testing.T) {
	players := []entities.Player{
		entities.NewPlayer("P1", "a"),
		entities.NewPlayer("P2", "b"),
	}
	ordered := OrderByInitialTiles(players, []entities.InitialTile{
		{PlayerID: "P1", Coordinate: "12A"},
		{PlayerID: "P2", Coordinate: "1B"},
	})
	if ordered[0].ID != "P1" {
		t.Fatalf("12A (distance 11) should precede 1B (distance 100), got %s first", ordered[0].ID)
	}
	if players[0].ID != "P1" || players[1].ID != "P2" {
		t.Fatal("input slice must not be reordered")
	}
}

func TestSetCurrentPlayer(t *testing.T) {
	state := playingState("a", "b", "c")
	state = mustApply(t, state, SetCurrentPlayer{PlayerIndex: 2})
	if state.CurrentPlayerIndex != 2 {
		t.Fatalf("current = %d", state.CurrentPlayerIndex)
	}
	_, err := Apply(state, SetCurrentPlayer{PlayerIndex: 3})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("out of range index: %v", err)
	}
}

func TestAddTileToPlayerHand(t *testing.T) {
	state := playingState("a", "b")
	c := state.TilePool[0]
	state = mustApply(t, state, AddTileToPlayerHand{PlayerID: "P2", Coordinate: c})
	if !state.Players[1].HasTile(c) {
		t.Fatal("tile not added")
	}
	expectRejected(t, state, AddTileToPlayerHand{PlayerID: "P2", Coordinate: c}, ErrTileUnavailable)
	expectRejected(t, state, AddTileToPlayerHand{PlayerID: "P9", Coordinate: state.TilePool[0]}, ErrUnknownPlayer)
	expectRejected(t, state, AddTileToPlayerHand{PlayerID: "P1", Coordinate: "13A"}, ErrInvalidInput)

	for len(state.Players[0].Tiles) < entities.HandSize {
		state = mustApply(t, state, AddTileToPlayerHand{PlayerID: "P1", Coordinate: state.TilePool[0]})
	}
	expectRejected(t, state, AddTileToPlayerHand{PlayerID: "P1", Coordinate: state.TilePool[0]}, ErrHandFull)
}
