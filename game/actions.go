package game

import "go-acquire/entities"

type ActionType string

const (
	ActionSetPlayers               ActionType = "SET_PLAYERS"
	ActionSetGameMode              ActionType = "SET_GAME_MODE"
	ActionStartGame                ActionType = "START_GAME"
	ActionSetCurrentPlayer         ActionType = "SET_CURRENT_PLAYER"
	ActionDrawInitialTile          ActionType = "DRAW_INITIAL_TILE"
	ActionDealStartingTiles        ActionType = "DEAL_STARTING_TILES"
	ActionPlaceTile                ActionType = "PLACE_TILE"
	ActionPlaceTileAndAddToChain   ActionType = "PLACE_TILE_AND_ADD_TO_CHAIN"
	ActionBuyStock                 ActionType = "BUY_STOCK"
	ActionFoundHotel               ActionType = "FOUND_HOTEL"
	ActionHandleMerger             ActionType = "HANDLE_MERGER"
	ActionHandleMergerStocks       ActionType = "HANDLE_MERGER_STOCKS"
	ActionEndTurn                  ActionType = "END_TURN"
	ActionEndGame                  ActionType = "END_GAME"
	ActionEndGameManually          ActionType = "END_GAME_MANUALLY"
	ActionAddTileToPlayerHand      ActionType = "ADD_TILE_TO_PLAYER_HAND"
	ActionRecordStockPurchase      ActionType = "RECORD_STOCK_PURCHASE"
	ActionAcknowledgeStockPurchase ActionType = "ACKNOWLEDGE_STOCK_PURCHASE"
	ActionHideWinnerBanner         ActionType = "HIDE_WINNER_BANNER"
	ActionSaveGame                 ActionType = "SAVE_GAME"
	ActionLoadSavedGame            ActionType = "LOAD_SAVED_GAME"
	ActionClearSavedGame           ActionType = "CLEAR_SAVED_GAME"
)

// Action 封闭的动作集合，只有本包内的类型可以实现
type Action interface {
	Type() ActionType
	isAction()
}

type SetPlayers struct {
	PlayerNames []string `json:"playerNames" mapstructure:"playerNames"`
}

type SetGameMode struct {
	GameMode entities.GameMode `json:"gameMode" mapstructure:"gameMode"`
}

// StartGame Seed 为 0 时由调用方（service 层）填充
type StartGame struct {
	PlayerCount int               `json:"playerCount" mapstructure:"playerCount"`
	PlayerNames []string          `json:"playerNames" mapstructure:"playerNames"`
	GameMode    entities.GameMode `json:"gameMode" mapstructure:"gameMode"`
	Seed        int64             `json:"seed" mapstructure:"seed"`
}

type SetCurrentPlayer struct {
	PlayerIndex int `json:"playerIndex" mapstructure:"playerIndex"`
}

type DrawInitialTile struct {
	PlayerID string `json:"playerId" mapstructure:"playerId"`
}

type DealStartingTiles struct{}

type PlaceTile struct {
	Coordinate entities.Coordinate `json:"coordinate" mapstructure:"coordinate"`
	PlayerID   string              `json:"playerId" mapstructure:"playerId"`
}

type PlaceTileAndAddToChain struct {
	Coordinate entities.Coordinate `json:"coordinate" mapstructure:"coordinate"`
	PlayerID   string              `json:"playerId" mapstructure:"playerId"`
	ChainName  entities.ChainName  `json:"chainName" mapstructure:"chainName"`
}

type BuyStock struct {
	ChainName entities.ChainName `json:"chainName" mapstructure:"chainName"`
	PlayerID  string             `json:"playerId" mapstructure:"playerId"`
	Quantity  int                `json:"quantity" mapstructure:"quantity"`
}

type FoundHotel struct {
	ChainName      entities.ChainName    `json:"chainName" mapstructure:"chainName"`
	TileCoordinate entities.Coordinate   `json:"tileCoordinate" mapstructure:"tileCoordinate"`
	ConnectedTiles []entities.Coordinate `json:"connectedTiles" mapstructure:"connectedTiles"`
}

type HandleMerger struct {
	Coordinate     entities.Coordinate  `json:"coordinate" mapstructure:"coordinate"`
	PlayerID       string               `json:"playerId" mapstructure:"playerId"`
	SurvivingChain entities.ChainName   `json:"survivingChain" mapstructure:"survivingChain"`
	AcquiredChains []entities.ChainName `json:"acquiredChains" mapstructure:"acquiredChains"`
}

// HandleMergerStocks 由当前排队中的股东处理被并购酒店的股票
type HandleMergerStocks struct {
	AcquiredChain entities.ChainName `json:"acquiredChain" mapstructure:"acquiredChain"`
	StocksToKeep  int                `json:"stocksToKeep" mapstructure:"stocksToKeep"`
	StocksToSell  int                `json:"stocksToSell" mapstructure:"stocksToSell"`
	StocksToTrade int                `json:"stocksToTrade" mapstructure:"stocksToTrade"`
}

type EndTurn struct{}

type EndGame struct{}

type EndGameManually struct{}

type AddTileToPlayerHand struct {
	PlayerID   string              `json:"playerId" mapstructure:"playerId"`
	Coordinate entities.Coordinate `json:"coordinate" mapstructure:"coordinate"`
}

// RecordStockPurchase 仅用于展示
type RecordStockPurchase struct {
	PlayerID  string             `json:"playerId" mapstructure:"playerId"`
	ChainName entities.ChainName `json:"chainName" mapstructure:"chainName"`
	Quantity  int                `json:"quantity" mapstructure:"quantity"`
	Price     int                `json:"price" mapstructure:"price"`
}

type AcknowledgeStockPurchase struct{}

type HideWinnerBanner struct{}

// SaveGame / ClearSavedGame 不修改状态，持久化由 service 层完成
type SaveGame struct{}

type ClearSavedGame struct{}

// LoadSavedGame Saved 由 service 层从存储中读出后填充；为空表示没有存档
type LoadSavedGame struct {
	Saved *entities.GameState `json:"-" mapstructure:"-"`
}

func (SetPlayers) Type() ActionType               { return ActionSetPlayers }
func (SetGameMode) Type() ActionType              { return ActionSetGameMode }
func (StartGame) Type() ActionType                { return ActionStartGame }
func (SetCurrentPlayer) Type() ActionType         { return ActionSetCurrentPlayer }
func (DrawInitialTile) Type() ActionType          { return ActionDrawInitialTile }
func (DealStartingTiles) Type() ActionType        { return ActionDealStartingTiles }
func (PlaceTile) Type() ActionType                { return ActionPlaceTile }
func (PlaceTileAndAddToChain) Type() ActionType   { return ActionPlaceTileAndAddToChain }
func (BuyStock) Type() ActionType                 { return ActionBuyStock }
func (FoundHotel) Type() ActionType               { return ActionFoundHotel }
func (HandleMerger) Type() ActionType             { return ActionHandleMerger }
func (HandleMergerStocks) Type() ActionType       { return ActionHandleMergerStocks }
func (EndTurn) Type() ActionType                  { return ActionEndTurn }
func (EndGame) Type() ActionType                  { return ActionEndGame }
func (EndGameManually) Type() ActionType          { return ActionEndGameManually }
func (AddTileToPlayerHand) Type() ActionType      { return ActionAddTileToPlayerHand }
func (RecordStockPurchase) Type() ActionType      { return ActionRecordStockPurchase }
func (AcknowledgeStockPurchase) Type() ActionType { return ActionAcknowledgeStockPurchase }
func (HideWinnerBanner) Type() ActionType         { return ActionHideWinnerBanner }
func (SaveGame) Type() ActionType                 { return ActionSaveGame }
func (LoadSavedGame) Type() ActionType            { return ActionLoadSavedGame }
func (ClearSavedGame) Type() ActionType           { return ActionClearSavedGame }

func (SetPlayers) isAction()               {}
func (SetGameMode) isAction()              {}
func (StartGame) isAction()                {}
func (SetCurrentPlayer) isAction()         {}
func (DrawInitialTile) isAction()          {}
func (DealStartingTiles) isAction()        {}
func (PlaceTile) isAction()                {}
func (PlaceTileAndAddToChain) isAction()   {}
func (BuyStock) isAction()                 {}
func (FoundHotel) isAction()               {}
func (HandleMerger) isAction()             {}
func (HandleMergerStocks) isAction()       {}
func (EndTurn) isAction()                  {}
func (EndGame) isAction()                  {}
func (EndGameManually) isAction()          {}
func (AddTileToPlayerHand) isAction()      {}
func (RecordStockPurchase) isAction()      {}
func (AcknowledgeStockPurchase) isAction() {}
func (HideWinnerBanner) isAction()         {}
func (SaveGame) isAction()                 {}
func (LoadSavedGame) isAction()            {}
func (ClearSavedGame) isAction()           {}

// ActorOf 返回动作中声明的玩家 ID（如果有）
func ActorOf(action Action) (string, bool) {
	switch a := action.(type) {
	case DrawInitialTile:
		return a.PlayerID, true
	case PlaceTile:
		return a.PlayerID, true
	case PlaceTileAndAddToChain:
		return a.PlayerID, true
	case BuyStock:
		return a.PlayerID, true
	case HandleMerger:
		return a.PlayerID, true
	case AddTileToPlayerHand:
		return a.PlayerID, true
	case RecordStockPurchase:
		return a.PlayerID, true
	}
	return "", false
}
