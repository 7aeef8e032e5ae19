package game

import (
	"go-acquire/entities"
	"go-acquire/utils"
)

// IsTileBurned 按当前棋盘实时计算，不做存储
func IsTileBurned(state entities.GameState, c entities.Coordinate) bool {
	return isTileBurned(state, c)
}

// AdjacentChains 与坐标相邻的已创建酒店，规模大的在前
func AdjacentChains(state entities.GameState, c entities.Coordinate) []entities.ChainName {
	return adjacentChains(state, c)
}

func ChainSize(state entities.GameState, chain entities.ChainName) int {
	return chainSize(state, chain)
}

func StockPrice(state entities.GameState, chain entities.ChainName) utils.StockPrice {
	return utils.CalculateStockPrice(chain, chainSize(state, chain))
}

// PlayableTiles 玩家手中可以合法放置的 tile
func PlayableTiles(state entities.GameState, playerID string) []entities.Coordinate {
	idx := state.PlayerIndex(playerID)
	if idx < 0 {
		return nil
	}
	return playableTiles(state, state.Players[idx])
}

// CanAfford 玩家是否买得起 quantity 股（同时考虑库存）
func CanAfford(state entities.GameState, playerID string, chain entities.ChainName, quantity int) bool {
	idx := state.PlayerIndex(playerID)
	if idx < 0 || quantity <= 0 || !state.HotelChains[chain].IsActive {
		return false
	}
	if state.StockMarket[chain] < quantity {
		return false
	}
	return state.Players[idx].Money >= StockPrice(state, chain).Buy*quantity
}

// MaxAffordable 本回合还能买入该酒店的最大股数
func MaxAffordable(state entities.GameState, playerID string, chain entities.ChainName) int {
	limit := MaxStocksPerTurn - state.StocksBoughtThisTurn
	for q := limit; q > 0; q-- {
		if CanAfford(state, playerID, chain, q) {
			return q
		}
	}
	return 0
}

// PurchasesThisTurn 当前玩家相对回合开始时新增的持股
func PurchasesThisTurn(state entities.GameState) map[entities.ChainName]int {
	bought := make(map[entities.ChainName]int)
	current, ok := state.CurrentPlayer()
	if !ok {
		return bought
	}
	for chain, count := range current.Stocks {
		if diff := count - state.TurnStartStocks[chain]; diff > 0 {
			bought[chain] = diff
		}
	}
	return bought
}

// ShareConservationHolds 每家酒店 市场库存+玩家持股 == 25
func ShareConservationHolds(state entities.GameState) bool {
	for _, name := range entities.ChainNames() {
		total := state.StockMarket[name]
		for _, p := range state.Players {
			total += p.Stocks[name]
		}
		if total != entities.SharesPerChain {
			return false
		}
	}
	return true
}
