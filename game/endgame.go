package game

import (
	"go-acquire/entities"
	"go-acquire/utils"
	"sort"
)

// IsGameEndEligible 任一酒店达到 41 块、所有已创建酒店均为安全酒店，或已无有效着法
func IsGameEndEligible(state entities.GameState) bool {
	if state.GamePhase == entities.PhaseGameOver || state.GamePhase == entities.PhaseSetup {
		return false
	}
	active := state.ActiveChains()
	allSafe := len(active) > 0
	for _, chain := range active {
		if len(chain.Tiles) >= entities.EndGameChainSize {
			return true
		}
		if !chain.IsSafe() {
			allSafe = false
		}
	}
	if allSafe {
		return true
	}
	return noLegalMoves(state)
}

// noLegalMoves 可出的 tile 少于 2 块，且手里没有能触发并购的 tile
func noLegalMoves(state entities.GameState) bool {
	remaining := 0
	for _, c := range state.TilePool {
		if isPlayable(state, c) {
			remaining++
		}
	}
	for _, p := range state.Players {
		for _, c := range playableTiles(state, p) {
			remaining++
			if len(adjacentChains(state, c)) >= 2 {
				return false
			}
		}
	}
	return remaining < 2
}

func endGame(state entities.GameState) (entities.GameState, error) {
	if state.HasPending() {
		return state, ErrPendingDecision
	}
	if !IsGameEndEligible(state) {
		return state, ErrNotEligible
	}
	next := state.Clone()
	settleEndGame(&next)
	return next, nil
}

func endGameManually(state entities.GameState) (entities.GameState, error) {
	if state.GamePhase != entities.PhaseBuyStock {
		return state, ErrWrongPhase
	}
	if state.HasPending() {
		return state, ErrPendingDecision
	}
	next := state.Clone()
	settleEndGame(&next)
	return next, nil
}

// settleEndGame 发放所有酒店红利，按卖出价清算持股，然后排名
func settleEndGame(state *entities.GameState) {
	active := state.ActiveChains()
	for _, chain := range active {
		for playerID, money := range chainBonuses(*state, chain.Name, len(chain.Tiles)) {
			if idx := state.PlayerIndex(playerID); idx >= 0 {
				state.Players[idx].Money += money
			}
		}
	}

	sellPrice := make(map[entities.ChainName]int, len(active))
	for _, chain := range active {
		sellPrice[chain.Name] = utils.CalculateStockPrice(chain.Name, len(chain.Tiles)).Sell
	}
	for i := range state.Players {
		player := &state.Players[i]
		for chain, count := range player.Stocks {
			player.Money += count * sellPrice[chain]
			state.StockMarket[chain] += count
			player.Stocks[chain] = 0
		}
	}

	state.FinalStandings = Standings(state.Players)
	state.Winner = ""
	state.Winners = nil
	if len(state.FinalStandings) > 0 {
		var top []string
		for _, s := range state.FinalStandings {
			if s.Rank == 1 {
				top = append(top, s.PlayerID)
			}
		}
		if len(top) == 1 {
			state.Winner = top[0]
		} else {
			state.Winners = top
		}
	}

	state.PendingFounding = nil
	state.PendingMerger = nil
	state.PendingSettlement = nil
	state.GamePhase = entities.PhaseGameOver
	state.GameOver = true
	state.ShowWinnerBanner = true
}

// Standings 按金钱降序排名，金额相同名次相同
func Standings(players []entities.Player) []entities.Standing {
	standings := make([]entities.Standing, 0, len(players))
	for _, p := range players {
		standings = append(standings, entities.Standing{PlayerID: p.ID, Name: p.Name, Money: p.Money})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Money > standings[j].Money
	})
	for i := range standings {
		if i > 0 && standings[i].Money == standings[i-1].Money {
			standings[i].Rank = standings[i-1].Rank
		} else {
			standings[i].Rank = i + 1
		}
	}
	return standings
}
