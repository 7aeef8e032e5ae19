package game

import "go-acquire/entities"

// Apply 纯函数：根据动作计算新状态。
// 被拒绝时返回原状态和错误（errors.Is(err, ErrRejected) 或 ErrInvalidInput），输入状态不会被修改。
func Apply(state entities.GameState, action Action) (entities.GameState, error) {
	if action == nil {
		return state, invalid("动作为空")
	}
	if state.GamePhase == entities.PhaseGameOver && !allowedAfterGameOver(action) {
		return state, ErrGameOver
	}

	switch a := action.(type) {
	case SetPlayers:
		return setPlayers(state, a)
	case SetGameMode:
		return setGameMode(state, a)
	case StartGame:
		return startGame(state, a)
	case SetCurrentPlayer:
		return setCurrentPlayer(state, a)
	case DrawInitialTile:
		return drawInitialTile(state, a)
	case DealStartingTiles:
		return dealStartingTiles(state)
	case PlaceTile:
		return placeTile(state, a)
	case PlaceTileAndAddToChain:
		return placeTileAndAddToChain(state, a)
	case BuyStock:
		return buyStock(state, a)
	case FoundHotel:
		return foundHotel(state, a)
	case HandleMerger:
		return handleMerger(state, a)
	case HandleMergerStocks:
		return handleMergerStocks(state, a)
	case EndTurn:
		return endTurn(state)
	case EndGame:
		return endGame(state)
	case EndGameManually:
		return endGameManually(state)
	case AddTileToPlayerHand:
		return addTileToPlayerHand(state, a)
	case RecordStockPurchase:
		return recordStockPurchase(state, a)
	case AcknowledgeStockPurchase:
		return acknowledgeStockPurchase(state)
	case HideWinnerBanner:
		next := state.Clone()
		next.ShowWinnerBanner = false
		return next, nil
	case SaveGame, ClearSavedGame:
		return state, nil
	case LoadSavedGame:
		if a.Saved == nil {
			return state, nil
		}
		return a.Saved.Clone(), nil
	}
	return state, invalid("未知的动作类型: %s", action.Type())
}

// allowedAfterGameOver 游戏结束后只接受新开局、横幅和存档相关动作
func allowedAfterGameOver(action Action) bool {
	switch action.(type) {
	case StartGame, HideWinnerBanner, SaveGame, LoadSavedGame, ClearSavedGame:
		return true
	}
	return false
}
