package game

import (
	"go-acquire/board"
	"go-acquire/entities"
	"go-acquire/utils"
	"sort"
)

// resolvePlacement 放置 tile 后检查创建、扩建、并购规则。
// tile 必须已经写入 PlacedTiles 且不属于任何酒店。
func resolvePlacement(state *entities.GameState, c entities.Coordinate) {
	chains := adjacentChains(*state, c)

	switch {
	case len(chains) >= 2:
		state.PendingMerger = planMerger(*state, c, chains)
		return
	case len(chains) == 1:
		extendChain(state, chains[0], c)
	default:
		connected := board.FindConnectedTiles(c, state.PlacedTiles)
		if len(connected) > 1 && len(state.AvailableHeadquarters) > 0 {
			state.PendingFounding = &entities.PendingFounding{
				Coordinate:     c,
				ConnectedTiles: connected,
			}
			return
		}
	}
	state.GamePhase = entities.PhaseBuyStock
}

// extendChain 新 tile 以及与之相连的空闲 tile 并入酒店
func extendChain(state *entities.GameState, chain entities.ChainName, c entities.Coordinate) {
	assignTiles(state, chain, board.FindConnectedTiles(c, state.PlacedTiles))
}

// planMerger 规模最大的酒店自动存活；并列最大时由玩家选择
func planMerger(state entities.GameState, c entities.Coordinate, chains []entities.ChainName) *entities.PendingMerger {
	maxSize := 0
	for _, name := range chains {
		if size := chainSize(state, name); size > maxSize {
			maxSize = size
		}
	}
	plan := &entities.PendingMerger{
		Coordinate:      c,
		SurvivorOptions: []entities.ChainName{},
		AcquiredChains:  []entities.ChainName{},
	}
	for _, name := range chains {
		if chainSize(state, name) == maxSize {
			plan.SurvivorOptions = append(plan.SurvivorOptions, name)
		} else {
			plan.AcquiredChains = append(plan.AcquiredChains, name)
		}
	}
	if len(plan.SurvivorOptions) == 1 {
		plan.AutomaticSurvivor = plan.SurvivorOptions[0]
	}
	return plan
}

// mergerChains 选定存活酒店后，按并购顺序排列的被并购酒店
func mergerChains(state entities.GameState, plan entities.PendingMerger, survivor entities.ChainName, requested []entities.ChainName) ([]entities.ChainName, error) {
	valid := false
	for _, option := range plan.SurvivorOptions {
		if option == survivor {
			valid = true
			break
		}
	}
	if !valid {
		return nil, ErrInvalidSurvivor
	}

	var acquired []entities.ChainName
	for _, name := range append(append([]entities.ChainName{}, plan.SurvivorOptions...), plan.AcquiredChains...) {
		if name != survivor {
			acquired = append(acquired, name)
		}
	}
	for _, name := range acquired {
		if state.HotelChains[name].IsSafe() {
			return nil, ErrInvalidAcquired
		}
	}
	if len(requested) > 0 && !sameChainSet(requested, acquired) {
		return nil, ErrInvalidAcquired
	}

	// 规模大的先结算；同规模时按玩家给出的顺序
	order := make(map[entities.ChainName]int)
	for i, name := range requested {
		order[name] = i
	}
	for i, name := range entities.ChainNames() {
		if _, ok := order[name]; !ok {
			order[name] = len(requested) + i
		}
	}
	sort.SliceStable(acquired, func(i, j int) bool {
		si, sj := chainSize(state, acquired[i]), chainSize(state, acquired[j])
		if si != sj {
			return si > sj
		}
		return order[acquired[i]] < order[acquired[j]]
	})
	return acquired, nil
}

// executeMerger 发放被并购酒店的红利，合并 tile，并生成股票处理队列
func executeMerger(state *entities.GameState, c entities.Coordinate, survivor entities.ChainName, acquired []entities.ChainName) {
	settlement := &entities.PendingSettlement{
		SurvivingChain: survivor,
		Steps:          []entities.SettlementStep{},
		Dividends:      make(map[entities.ChainName]map[string]int),
	}

	for _, name := range acquired {
		dividends := chainBonuses(*state, name, chainSize(*state, name))
		for playerID, money := range dividends {
			if idx := state.PlayerIndex(playerID); idx >= 0 {
				state.Players[idx].Money += money
			}
		}
		settlement.Dividends[name] = dividends
	}

	merged := make(map[entities.Coordinate]bool)
	for _, name := range acquired {
		for _, c := range state.HotelChains[name].Tiles {
			merged[c] = true
		}
	}
	coords := make([]entities.Coordinate, 0, len(merged))
	for c := range merged {
		coords = append(coords, c)
	}
	// 先把被并购酒店的 tile 标记为存活酒店，再吸收新 tile 相连的空闲 tile
	assignTiles(state, survivor, coords)
	assignTiles(state, survivor, board.FindConnectedTiles(c, state.PlacedTiles))

	for _, name := range acquired {
		chain := state.HotelChains[name]
		chain.IsActive = false
		chain.Tiles = []entities.Coordinate{}
		state.HotelChains[name] = chain
	}
	restoreHeadquarters(state, acquired...)

	for _, name := range acquired {
		holders := holdersInTurnOrder(*state, name)
		if len(holders) > 0 {
			settlement.Steps = append(settlement.Steps, entities.SettlementStep{
				Chain:          name,
				PendingHolders: holders,
			})
		}
	}

	state.PendingMerger = nil
	if len(settlement.Steps) > 0 {
		state.PendingSettlement = settlement
		return
	}
	state.GamePhase = entities.PhaseBuyStock
}

// holdersInTurnOrder 从当前玩家开始顺时针排列持有该酒店股票的玩家
func holdersInTurnOrder(state entities.GameState, chain entities.ChainName) []string {
	holders := []string{}
	n := len(state.Players)
	for step := 0; step < n; step++ {
		p := state.Players[(state.CurrentPlayerIndex+step)%n]
		if p.Stocks[chain] > 0 {
			holders = append(holders, p.ID)
		}
	}
	return holders
}

// ValidateSettlement 保留+卖出+兑换必须等于持股数，且兑换数量为偶数
func ValidateSettlement(held, keep, sell, trade int) bool {
	if keep < 0 || sell < 0 || trade < 0 {
		return false
	}
	// 每一项先与持股数比较，避免求和溢出
	if keep > held || sell > held || trade > held {
		return false
	}
	return keep+sell+trade == held && trade%2 == 0
}

// settleMergerStocks 处理队首股东的股票；卖出价按被并购酒店规模为 0 计算
func settleMergerStocks(state *entities.GameState, a HandleMergerStocks) error {
	settlement := state.PendingSettlement
	step := &settlement.Steps[0]
	if a.AcquiredChain != step.Chain {
		return ErrInvalidSettlement
	}
	idx := state.PlayerIndex(step.PendingHolders[0])
	if idx < 0 {
		return ErrUnknownPlayer
	}
	player := &state.Players[idx]
	held := player.Stocks[step.Chain]
	if !ValidateSettlement(held, a.StocksToKeep, a.StocksToSell, a.StocksToTrade) {
		return ErrInvalidSettlement
	}
	granted := a.StocksToTrade / 2
	survivor := settlement.SurvivingChain
	if state.StockMarket[survivor] < granted {
		return ErrInsufficientShares
	}

	price := utils.CalculateStockPrice(step.Chain, 0)
	player.Stocks[step.Chain] = a.StocksToKeep
	player.Money += a.StocksToSell * price.Sell
	player.Stocks[survivor] += granted
	state.StockMarket[step.Chain] += a.StocksToSell + a.StocksToTrade
	state.StockMarket[survivor] -= granted

	step.PendingHolders = step.PendingHolders[1:]
	if len(step.PendingHolders) == 0 {
		settlement.Steps = settlement.Steps[1:]
	}
	if len(settlement.Steps) == 0 {
		state.PendingSettlement = nil
		state.GamePhase = entities.PhaseBuyStock
	}
	return nil
}
