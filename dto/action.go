package dto

import (
	"fmt"
	"go-acquire/game"
	"reflect"
	"strconv"

	"github.com/mitchellh/mapstructure"
)

// ActionMessage 客户端发送的动作消息 {type, payload}
type ActionMessage struct {
	Type    game.ActionType        `json:"type"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

type actionDecoder func(payload map[string]interface{}) (game.Action, error)

var actionDecoders = map[game.ActionType]actionDecoder{
	game.ActionSetPlayers:               decodeInto[game.SetPlayers],
	game.ActionSetGameMode:              decodeInto[game.SetGameMode],
	game.ActionStartGame:                decodeInto[game.StartGame],
	game.ActionSetCurrentPlayer:         decodeInto[game.SetCurrentPlayer],
	game.ActionDrawInitialTile:          decodeInto[game.DrawInitialTile],
	game.ActionDealStartingTiles:        decodeInto[game.DealStartingTiles],
	game.ActionPlaceTile:                decodeInto[game.PlaceTile],
	game.ActionPlaceTileAndAddToChain:   decodeInto[game.PlaceTileAndAddToChain],
	game.ActionBuyStock:                 decodeInto[game.BuyStock],
	game.ActionFoundHotel:               decodeInto[game.FoundHotel],
	game.ActionHandleMerger:             decodeInto[game.HandleMerger],
	game.ActionHandleMergerStocks:       decodeInto[game.HandleMergerStocks],
	game.ActionEndTurn:                  decodeInto[game.EndTurn],
	game.ActionEndGame:                  decodeInto[game.EndGame],
	game.ActionEndGameManually:          decodeInto[game.EndGameManually],
	game.ActionAddTileToPlayerHand:      decodeInto[game.AddTileToPlayerHand],
	game.ActionRecordStockPurchase:      decodeInto[game.RecordStockPurchase],
	game.ActionAcknowledgeStockPurchase: decodeInto[game.AcknowledgeStockPurchase],
	game.ActionHideWinnerBanner:         decodeInto[game.HideWinnerBanner],
	game.ActionSaveGame:                 decodeInto[game.SaveGame],
	game.ActionLoadSavedGame:            decodeInto[game.LoadSavedGame],
	game.ActionClearSavedGame:           decodeInto[game.ClearSavedGame],
}

// DecodeAction 把消息解析成具体的动作类型
func DecodeAction(msg ActionMessage) (game.Action, error) {
	decode, ok := actionDecoders[msg.Type]
	if !ok {
		return nil, fmt.Errorf("%w: 未知的动作类型 %q", game.ErrInvalidInput, msg.Type)
	}
	action, err := decode(msg.Payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %s 参数解析失败: %v", game.ErrInvalidInput, msg.Type, err)
	}
	return action, nil
}

// EncodeAction 动作转成消息，用于回放日志
func EncodeAction(action game.Action) (ActionMessage, error) {
	payload := make(map[string]interface{})
	if err := mapstructure.Decode(action, &payload); err != nil {
		return ActionMessage{}, fmt.Errorf("动作编码失败: %w", err)
	}
	return ActionMessage{Type: action.Type(), Payload: payload}, nil
}

func decodeInto[T game.Action](payload map[string]interface{}) (game.Action, error) {
	var action T
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: stringToIntHookFunc(),
		Result:     &action,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(payload); err != nil {
		return nil, err
	}
	return action, nil
}

// 自定义 HookFunc，把字符串转换成整数（前端有时会把数量当字符串传）
func stringToIntHookFunc() mapstructure.DecodeHookFunc {
	return func(from reflect.Kind, to reflect.Kind, data interface{}) (interface{}, error) {
		if from != reflect.String {
			return data, nil
		}
		switch to {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return strconv.ParseInt(data.(string), 10, 64)
		}
		return data, nil
	}
}
