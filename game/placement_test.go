package game

import (
	"go-acquire/entities"
	"reflect"
	"testing"
)

func TestPlaceTileValidation(t *testing.T) {
	state := playingState("a", "b")
	giveTiles(&state, 0, "4D")
	giveTiles(&state, 1, "6F")
	placeFree(&state, "9I")

	expectRejected(t, state, PlaceTile{PlayerID: "P1", Coordinate: "6F"}, ErrTileNotInHand)
	expectRejected(t, state, PlaceTile{PlayerID: "P2", Coordinate: "6F"}, ErrNotYourTurn)
	expectRejected(t, state, PlaceTile{PlayerID: "P7", Coordinate: "4D"}, ErrUnknownPlayer)
	expectRejected(t, state, PlaceTile{PlayerID: "P1", Coordinate: "4J"}, ErrInvalidInput)
	expectRejected(t, state, PlaceTile{PlayerID: "P1", Coordinate: "04D"}, ErrInvalidInput)

	// 手里的 tile 已经在棋盘上
	state.Players[0].Tiles = append(state.Players[0].Tiles, "9I")
	expectRejected(t, state, PlaceTile{PlayerID: "P1", Coordinate: "9I"}, ErrTileOccupied)

	buying := state.Clone()
	buying.GamePhase = entities.PhaseBuyStock
	expectRejected(t, buying, PlaceTile{PlayerID: "P1", Coordinate: "4D"}, ErrWrongPhase)
}

func TestPlaceLoneTile(t *testing.T) {
	state := playingState("a", "b")
	giveTiles(&state, 0, "4D")
	before := state.Clone()

	next := mustApply(t, state, PlaceTile{PlayerID: "P1", Coordinate: "4D"})

	tile, ok := next.PlacedTiles["4D"]
	if !ok || !tile.IsFree() {
		t.Fatalf("4D should be placed and unowned: %+v", tile)
	}
	if next.Players[0].HasTile("4D") {
		t.Fatal("tile should leave the hand")
	}
	if next.GamePhase != entities.PhaseBuyStock {
		t.Fatalf("phase = %s", next.GamePhase)
	}
	if !reflect.DeepEqual(state.Clone(), before) {
		t.Fatal("input state was mutated")
	}

	// 同一坐标不能再放一次
	next.GamePhase = entities.PhasePlaceTile
	next.Players[0].Tiles = append(next.Players[0].Tiles, "4D")
	expectRejected(t, next, PlaceTile{PlayerID: "P1", Coordinate: "4D"}, ErrTileOccupied)
}

func TestFoundHotel(t *testing.T) {
	state := playingState("a", "b")
	placeFree(&state, "1A")
	giveTiles(&state, 0, "1B")

	state = mustApply(t, state, PlaceTile{PlayerID: "P1", Coordinate: "1B"})
	if state.PendingFounding == nil {
		t.Fatal("expected a pending founding")
	}
	if !reflect.DeepEqual(state.PendingFounding.ConnectedTiles, []entities.Coordinate{"1A", "1B"}) {
		t.Fatalf("connected = %v", state.PendingFounding.ConnectedTiles)
	}
	if state.GamePhase != entities.PhasePlaceTile {
		t.Fatalf("phase should wait for the founding decision, got %s", state.GamePhase)
	}

	expectRejected(t, state, BuyStock{PlayerID: "P1", ChainName: entities.Luxor, Quantity: 1}, ErrWrongPhase)
	expectRejected(t, state, EndTurn{}, ErrWrongPhase)
	expectRejected(t, state, FoundHotel{ChainName: "hilton"}, ErrInvalidInput)
	expectRejected(t, state, FoundHotel{ChainName: entities.Luxor, ConnectedTiles: []entities.Coordinate{"1A"}}, ErrInvalidInput)

	state = mustApply(t, state, FoundHotel{ChainName: entities.Luxor, TileCoordinate: "1B"})

	luxor := state.HotelChains[entities.Luxor]
	if !luxor.IsActive || luxor.Size() != 2 {
		t.Fatalf("luxor = %+v", luxor)
	}
	if state.Players[0].Stocks[entities.Luxor] != 1 || state.StockMarket[entities.Luxor] != 24 {
		t.Fatalf("founder share: player=%d market=%d", state.Players[0].Stocks[entities.Luxor], state.StockMarket[entities.Luxor])
	}
	if hasHeadquarters(state, entities.Luxor) {
		t.Fatal("luxor headquarters should be taken")
	}
	if state.PendingFounding != nil || state.GamePhase != entities.PhaseBuyStock {
		t.Fatalf("pending=%v phase=%s", state.PendingFounding, state.GamePhase)
	}
	assertConservation(t, state)

	expectRejected(t, state, FoundHotel{ChainName: entities.Tower}, ErrNoPendingDecision)
}

func TestFoundHotelTakenChain(t *testing.T) {
	state := playingState("a", "b")
	placeChain(&state, entities.Luxor, "10H", "10I")
	placeFree(&state, "1A")
	giveTiles(&state, 0, "1B")
	state = mustApply(t, state, PlaceTile{PlayerID: "P1", Coordinate: "1B"})

	expectRejected(t, state, FoundHotel{ChainName: entities.Luxor}, ErrChainUnavailable)
}

func TestFoundingWithoutHeadquarters(t *testing.T) {
	state := playingState("a", "b")
	// 七家酒店全部已创建
	rows := []entities.Coordinate{"12A", "12B", "10A", "10B", "8A", "8B", "6A", "6B", "4A", "4B", "2A", "2B", "12H", "12I"}
	for i, name := range entities.ChainNames() {
		placeChain(&state, name, rows[2*i], rows[2*i+1])
	}
	placeFree(&state, "5F")
	giveTiles(&state, 0, "5G")

	state = mustApply(t, state, PlaceTile{PlayerID: "P1", Coordinate: "5G"})
	if state.PendingFounding != nil {
		t.Fatal("no founding possible without headquarters")
	}
	if !state.PlacedTiles["5G"].IsFree() || state.GamePhase != entities.PhaseBuyStock {
		t.Fatalf("tile=%+v phase=%s", state.PlacedTiles["5G"], state.GamePhase)
	}
}

func TestExtendChain(t *testing.T) {
	state := playingState("a", "b")
	placeChain(&state, entities.Luxor, "1A", "1B")
	placeFree(&state, "2C")
	giveTiles(&state, 0, "1C")

	state = mustApply(t, state, PlaceTile{PlayerID: "P1", Coordinate: "1C"})

	want := []entities.Coordinate{"1A", "1B", "1C", "2C"}
	if got := state.HotelChains[entities.Luxor].Tiles; !reflect.DeepEqual(got, want) {
		t.Fatalf("luxor tiles = %v want %v", got, want)
	}
	if state.PlacedTiles["2C"].Chain != entities.Luxor {
		t.Fatal("connected free tile should join the chain")
	}
	if state.GamePhase != entities.PhaseBuyStock {
		t.Fatalf("phase = %s", state.GamePhase)
	}
}

func TestPlaceTileAndAddToChain(t *testing.T) {
	state := playingState("a", "b")
	placeChain(&state, entities.Luxor, "1A", "1B")
	giveTiles(&state, 0, "1C", "7G")

	expectRejected(t, state, PlaceTileAndAddToChain{PlayerID: "P1", Coordinate: "1C", ChainName: entities.Tower}, ErrChainUnavailable)
	expectRejected(t, state, PlaceTileAndAddToChain{PlayerID: "P1", Coordinate: "7G", ChainName: entities.Luxor}, ErrChainUnavailable)

	state = mustApply(t, state, PlaceTileAndAddToChain{PlayerID: "P1", Coordinate: "1C", ChainName: entities.Luxor})
	if ChainSize(state, entities.Luxor) != 3 {
		t.Fatalf("luxor size = %d", ChainSize(state, entities.Luxor))
	}
}

func TestBurnedTile(t *testing.T) {
	state := playingState("a", "b")
	var columnA, columnC []entities.Coordinate
	for _, row := range []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11"} {
		columnA = append(columnA, entities.Coordinate(row+"A"))
		columnC = append(columnC, entities.Coordinate(row+"C"))
	}
	placeChain(&state, entities.Luxor, columnA...)
	placeChain(&state, entities.Tower, columnC...)
	giveTiles(&state, 0, "5B", "12D")

	if !IsTileBurned(state, "5B") {
		t.Fatal("5B joins two safe chains and should be burned")
	}
	if IsTileBurned(state, "12D") || IsTileBurned(state, "5A") {
		t.Fatal("12D and occupied 5A are not burned")
	}
	if playable := PlayableTiles(state, "P1"); !reflect.DeepEqual(playable, []entities.Coordinate{"12D"}) {
		t.Fatalf("playable = %v", playable)
	}
	expectRejected(t, state, PlaceTile{PlayerID: "P1", Coordinate: "5B"}, ErrTileBurned)
}

func TestSafeChainAbsorbsSmallerChain(t *testing.T) {
	state := playingState("a", "b")
	var columnA []entities.Coordinate
	for _, row := range []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11"} {
		columnA = append(columnA, entities.Coordinate(row+"A"))
	}
	placeChain(&state, entities.Luxor, columnA...)
	placeChain(&state, entities.Tower, "12B", "12C")
	giveTiles(&state, 0, "12A")

	state = mustApply(t, state, PlaceTile{PlayerID: "P1", Coordinate: "12A"})
	if state.PendingMerger == nil || state.PendingMerger.AutomaticSurvivor != entities.Luxor {
		t.Fatalf("pending merger = %+v", state.PendingMerger)
	}
	expectRejected(t, state, HandleMerger{SurvivingChain: entities.Tower}, ErrInvalidSurvivor)

	state = mustApply(t, state, HandleMerger{PlayerID: "P1"})
	if ChainSize(state, entities.Luxor) != 14 {
		t.Fatalf("luxor size = %d", ChainSize(state, entities.Luxor))
	}
	if state.HotelChains[entities.Tower].IsActive {
		t.Fatal("tower should be dissolved")
	}
}
