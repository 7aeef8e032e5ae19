package service

import (
	"errors"
	"go-acquire/entities"
	"go-acquire/game"
)

var ErrForbidden = errors.New("无权执行该操作")

// Authorize 检查座位上的玩家是否可以提交该动作。
// 规则本身（阶段、回合等）仍由 game.Apply 判断，这里只防止冒充其他玩家和越权操作。
func Authorize(state entities.GameState, playerID string, action game.Action) error {
	if actor, ok := game.ActorOf(action); ok && actor != "" && actor != playerID {
		return ErrForbidden
	}

	lobby := len(state.Players) == 0
	switch action.(type) {
	case game.SetCurrentPlayer, game.AddTileToPlayerHand:
		// 调试用动作，只能由服务端直接调用 Dispatch
		return ErrForbidden
	case game.SetPlayers, game.SetGameMode:
		if !lobby {
			return ErrForbidden
		}
	case game.StartGame:
		if !lobby && state.GamePhase != entities.PhaseGameOver {
			return ErrForbidden
		}
	case game.FoundHotel, game.HandleMerger, game.EndTurn, game.EndGame, game.EndGameManually,
		game.DealStartingTiles, game.RecordStockPurchase, game.AcknowledgeStockPurchase,
		game.LoadSavedGame, game.ClearSavedGame:
		// 轮到自己时才能做的决定
		if current, ok := state.CurrentPlayer(); ok && current.ID != playerID {
			return ErrForbidden
		}
	case game.HandleMergerStocks:
		if holder, ok := pendingHolder(state); ok && holder != playerID {
			return ErrForbidden
		}
	}
	return nil
}

// pendingHolder 当前需要处理被并购股票的玩家
func pendingHolder(state entities.GameState) (string, bool) {
	s := state.PendingSettlement
	if s == nil || len(s.Steps) == 0 || len(s.Steps[0].PendingHolders) == 0 {
		return "", false
	}
	return s.Steps[0].PendingHolders[0], true
}
