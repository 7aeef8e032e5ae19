package game

import (
	"go-acquire/entities"
	"go-acquire/utils"
)

// MaxStocksPerTurn 每回合最多购买的股数
const MaxStocksPerTurn = 3

// buyStock 单次购买要么全部成功要么不变
func buyStock(state entities.GameState, a BuyStock) (entities.GameState, error) {
	if !entities.IsValidChain(a.ChainName) {
		return state, invalid("未知的酒店: %s", a.ChainName)
	}
	if a.Quantity <= 0 {
		return state, invalid("购买数量必须大于 0: %d", a.Quantity)
	}
	if state.GamePhase != entities.PhaseBuyStock {
		return state, ErrWrongPhase
	}
	if state.HasPending() {
		return state, ErrPendingDecision
	}
	idx := state.PlayerIndex(a.PlayerID)
	if idx < 0 {
		return state, ErrUnknownPlayer
	}
	if idx != state.CurrentPlayerIndex {
		return state, ErrNotYourTurn
	}
	if !state.HotelChains[a.ChainName].IsActive {
		return state, ErrChainInactive
	}
	if a.Quantity > MaxStocksPerTurn-state.StocksBoughtThisTurn {
		return state, ErrPurchaseLimit
	}
	if state.StockMarket[a.ChainName] < a.Quantity {
		return state, ErrInsufficientShares
	}
	price := utils.CalculateStockPrice(a.ChainName, chainSize(state, a.ChainName))
	total := price.Buy * a.Quantity
	if state.Players[idx].Money < total {
		return state, ErrInsufficientFunds
	}

	next := state.Clone()
	player := &next.Players[idx]
	player.Money -= total
	player.Stocks[a.ChainName] += a.Quantity
	next.StockMarket[a.ChainName] -= a.Quantity
	next.StocksBoughtThisTurn += a.Quantity
	return next, nil
}

func recordStockPurchase(state entities.GameState, a RecordStockPurchase) (entities.GameState, error) {
	if !entities.IsValidChain(a.ChainName) {
		return state, invalid("未知的酒店: %s", a.ChainName)
	}
	if a.Quantity <= 0 {
		return state, invalid("购买数量必须大于 0: %d", a.Quantity)
	}
	next := state.Clone()
	next.StockPurchases = append(next.StockPurchases, entities.StockPurchase{
		PlayerID: a.PlayerID,
		Chain:    a.ChainName,
		Quantity: a.Quantity,
		Price:    a.Price,
	})
	next.ShowPurchaseReport = true
	return next, nil
}

func acknowledgeStockPurchase(state entities.GameState) (entities.GameState, error) {
	next := state.Clone()
	next.StockPurchases = []entities.StockPurchase{}
	next.ShowPurchaseReport = false
	return next, nil
}
