package game

import (
	"go-acquire/entities"
	"math"
	"reflect"
	"testing"
)

func TestValidateSettlement(t *testing.T) {
	tests := []struct {
		held, keep, sell, trade int
		want                    bool
	}{
		{7, 3, 2, 2, true},
		{7, 3, 3, 1, false},
		{7, 4, 2, 2, false},
		{7, 7, 0, 0, true},
		{7, 1, 0, 6, true},
		{7, -1, 4, 4, false},
		{0, 0, 0, 0, true},
		{7, math.MaxInt, math.MaxInt - 1, 10, false},
		{7, 8, 0, 0, false},
		{7, 0, 0, 8, false},
	}
	for _, tt := range tests {
		if got := ValidateSettlement(tt.held, tt.keep, tt.sell, tt.trade); got != tt.want {
			t.Errorf("ValidateSettlement(%d, %d, %d, %d) = %v want %v", tt.held, tt.keep, tt.sell, tt.trade, got, tt.want)
		}
	}
}

// mergerState tower(1A-1C) 与 american(1E-1F) 之间放置 1D
func mergerState() entities.GameState {
	state := playingState("a", "b", "c")
	placeChain(&state, entities.Tower, "1A", "1B", "1C")
	placeChain(&state, entities.American, "1E", "1F")
	giveStock(&state, 0, entities.American, 7)
	giveStock(&state, 1, entities.American, 2)
	giveTiles(&state, 0, "1D")
	return state
}

func TestMergerWithAutomaticSurvivor(t *testing.T) {
	state := mergerState()

	state = mustApply(t, state, PlaceTile{PlayerID: "P1", Coordinate: "1D"})
	plan := state.PendingMerger
	if plan == nil {
		t.Fatal("expected a pending merger")
	}
	if plan.AutomaticSurvivor != entities.Tower || !reflect.DeepEqual(plan.AcquiredChains, []entities.ChainName{entities.American}) {
		t.Fatalf("plan = %+v", plan)
	}
	expectRejected(t, state, PlaceTile{PlayerID: "P1", Coordinate: "1D"}, ErrPendingDecision)
	expectRejected(t, state, HandleMerger{PlayerID: "P2"}, ErrNotYourTurn)
	expectRejected(t, state, HandleMerger{AcquiredChains: []entities.ChainName{entities.Luxor}}, ErrInvalidAcquired)

	state = mustApply(t, state, HandleMerger{PlayerID: "P1"})

	// american 2 块：大股东 3000，二股东 1500
	if state.Players[0].Money != 9000 || state.Players[1].Money != 7500 {
		t.Fatalf("dividends: P1=%d P2=%d", state.Players[0].Money, state.Players[1].Money)
	}
	if ChainSize(state, entities.Tower) != 6 {
		t.Fatalf("tower size = %d", ChainSize(state, entities.Tower))
	}
	if state.HotelChains[entities.American].IsActive || !hasHeadquarters(state, entities.American) {
		t.Fatal("american should be dissolved and back in the headquarters pool")
	}
	settlement := state.PendingSettlement
	if settlement == nil || len(settlement.Steps) != 1 {
		t.Fatalf("settlement = %+v", settlement)
	}
	if !reflect.DeepEqual(settlement.Steps[0].PendingHolders, []string{"P1", "P2"}) {
		t.Fatalf("holders = %v", settlement.Steps[0].PendingHolders)
	}
	if settlement.Dividends[entities.American]["P1"] != 3000 {
		t.Fatalf("recorded dividends = %v", settlement.Dividends)
	}
	expectRejected(t, state, BuyStock{PlayerID: "P1", ChainName: entities.Tower, Quantity: 1}, ErrWrongPhase)

	expectRejected(t, state, HandleMergerStocks{AcquiredChain: entities.American, StocksToKeep: 3, StocksToSell: 3, StocksToTrade: 1}, ErrInvalidSettlement)
	expectRejected(t, state, HandleMergerStocks{AcquiredChain: entities.American, StocksToKeep: 4, StocksToSell: 2, StocksToTrade: 2}, ErrInvalidSettlement)
	expectRejected(t, state, HandleMergerStocks{AcquiredChain: entities.Luxor, StocksToKeep: 7}, ErrInvalidSettlement)
	// 求和会溢出回 7 的数量
	expectRejected(t, state, HandleMergerStocks{AcquiredChain: entities.American, StocksToKeep: math.MaxInt, StocksToSell: math.MaxInt - 1, StocksToTrade: 10}, ErrInvalidSettlement)

	state = mustApply(t, state, HandleMergerStocks{AcquiredChain: entities.American, StocksToKeep: 3, StocksToSell: 2, StocksToTrade: 2})
	p1 := state.Players[0]
	if p1.Stocks[entities.American] != 3 || p1.Stocks[entities.Tower] != 1 || p1.Money != 9100 {
		t.Fatalf("P1 after settlement: %+v", p1)
	}
	assertConservation(t, state)

	state = mustApply(t, state, HandleMergerStocks{AcquiredChain: entities.American, StocksToSell: 2})
	if state.Players[1].Money != 7600 || state.Players[1].Stocks[entities.American] != 0 {
		t.Fatalf("P2 after settlement: %+v", state.Players[1])
	}
	if state.PendingSettlement != nil || state.GamePhase != entities.PhaseBuyStock {
		t.Fatalf("settlement should be done: %+v phase=%s", state.PendingSettlement, state.GamePhase)
	}
	if state.StockMarket[entities.American] != 22 || state.StockMarket[entities.Tower] != 24 {
		t.Fatalf("market = %v", state.StockMarket)
	}
	assertConservation(t, state)

	expectRejected(t, state, HandleMergerStocks{AcquiredChain: entities.American}, ErrNoPendingDecision)
}

func TestMergerTieRequiresChoice(t *testing.T) {
	state := playingState("a", "b")
	placeChain(&state, entities.Luxor, "1A", "1B")
	placeChain(&state, entities.Tower, "1D", "1E")
	giveTiles(&state, 0, "1C")

	state = mustApply(t, state, PlaceTile{PlayerID: "P1", Coordinate: "1C"})
	plan := state.PendingMerger
	if plan == nil || plan.AutomaticSurvivor != "" {
		t.Fatalf("plan = %+v", plan)
	}
	if !reflect.DeepEqual(plan.SurvivorOptions, []entities.ChainName{entities.Luxor, entities.Tower}) {
		t.Fatalf("options = %v", plan.SurvivorOptions)
	}

	expectRejected(t, state, HandleMerger{}, ErrInvalidSurvivor)
	expectRejected(t, state, HandleMerger{SurvivingChain: entities.American}, ErrInvalidSurvivor)
	expectRejected(t, state, HandleMerger{SurvivingChain: entities.Tower, AcquiredChains: []entities.ChainName{entities.American}}, ErrInvalidAcquired)
	expectRejected(t, state, HandleMerger{SurvivingChain: entities.Tower, Coordinate: "9I"}, ErrNoPendingDecision)

	state = mustApply(t, state, HandleMerger{SurvivingChain: entities.Tower, AcquiredChains: []entities.ChainName{entities.Luxor}})
	if ChainSize(state, entities.Tower) != 5 || state.HotelChains[entities.Luxor].IsActive {
		t.Fatalf("tower=%d luxor active=%v", ChainSize(state, entities.Tower), state.HotelChains[entities.Luxor].IsActive)
	}
	// 没有股东需要处理股票，直接进入买股阶段
	if state.PendingSettlement != nil || state.GamePhase != entities.PhaseBuyStock {
		t.Fatalf("settlement=%+v phase=%s", state.PendingSettlement, state.GamePhase)
	}
}

func TestMultiChainMergerOrder(t *testing.T) {
	state := playingState("a", "b")
	placeChain(&state, entities.Continental, "5A", "5B", "5C", "5D")
	placeChain(&state, entities.Luxor, "6E", "7E")
	placeChain(&state, entities.Festival, "4E", "3E", "2E")
	giveStock(&state, 1, entities.Luxor, 1)
	giveStock(&state, 1, entities.Festival, 1)
	giveTiles(&state, 0, "5E")

	state = mustApply(t, state, PlaceTile{PlayerID: "P1", Coordinate: "5E"})
	if state.PendingMerger.AutomaticSurvivor != entities.Continental {
		t.Fatalf("plan = %+v", state.PendingMerger)
	}
	state = mustApply(t, state, HandleMerger{})

	steps := state.PendingSettlement.Steps
	if len(steps) != 2 || steps[0].Chain != entities.Festival || steps[1].Chain != entities.Luxor {
		t.Fatalf("larger acquired chain settles first: %+v", steps)
	}
	if ChainSize(state, entities.Continental) != 10 {
		t.Fatalf("continental size = %d", ChainSize(state, entities.Continental))
	}
	expectRejected(t, state, HandleMergerStocks{AcquiredChain: entities.Luxor, StocksToSell: 1}, ErrInvalidSettlement)

	state = mustApply(t, state, HandleMergerStocks{AcquiredChain: entities.Festival, StocksToKeep: 1})
	state = mustApply(t, state, HandleMergerStocks{AcquiredChain: entities.Luxor, StocksToKeep: 1})
	if state.GamePhase != entities.PhaseBuyStock {
		t.Fatalf("phase = %s", state.GamePhase)
	}
	assertConservation(t, state)
}

func TestTradeLimitedByMarket(t *testing.T) {
	state := mergerState()
	giveStock(&state, 2, entities.Tower, 25)
	state = mustApply(t, state, PlaceTile{PlayerID: "P1", Coordinate: "1D"})
	state = mustApply(t, state, HandleMerger{})

	expectRejected(t, state, HandleMergerStocks{AcquiredChain: entities.American, StocksToKeep: 5, StocksToTrade: 2}, ErrInsufficientShares)
}
