package game

import (
	"errors"
	"fmt"
)

var (
	// ErrRejected 规则前置条件不满足，状态保持不变
	ErrRejected = errors.New("操作被拒绝")
	// ErrInvalidInput 调用方传入了格式错误的数据
	ErrInvalidInput = errors.New("无效的输入")
)

var (
	ErrGameOver           = reject("游戏已结束")
	ErrWrongPhase         = reject("当前阶段不允许该操作")
	ErrNotYourTurn        = reject("不是当前玩家的回合")
	ErrUnknownPlayer      = reject("玩家不存在")
	ErrTileNotInHand      = reject("该 tile 不在玩家手牌中")
	ErrTileOccupied       = reject("该位置已放置 tile")
	ErrTileBurned         = reject("该 tile 会连接两家安全酒店，无法放置")
	ErrPendingDecision    = reject("还有未处理的创建/并购决策")
	ErrNoPendingDecision  = reject("没有等待处理的决策")
	ErrChainUnavailable   = reject("该酒店不可用")
	ErrChainInactive      = reject("该酒店尚未创建")
	ErrInvalidSurvivor    = reject("存活酒店选择无效")
	ErrInvalidAcquired    = reject("被并购酒店列表无效")
	ErrInvalidSettlement  = reject("股票处理数量无效")
	ErrInsufficientFunds  = reject("余额不足")
	ErrInsufficientShares = reject("股票库存不足")
	ErrPurchaseLimit      = reject("每回合最多购买 3 股")
	ErrHandFull           = reject("手牌已满")
	ErrTileUnavailable    = reject("牌堆中没有该 tile")
	ErrNotEligible        = reject("尚未满足游戏结束条件")
	ErrAlreadyDrawn       = reject("该玩家已抽过起始 tile")
)

func reject(reason string) error {
	return fmt.Errorf("%w: %s", ErrRejected, reason)
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
