package game

import (
	"fmt"
	"go-acquire/board"
	"go-acquire/entities"
	"go-acquire/utils"
	"sort"

	"golang.org/x/exp/rand"
)

const (
	MinPlayers = 2
	MaxPlayers = 6
)

// NewGame 按人数、名字和模式创建一局新游戏；牌堆用 seed 洗牌，保证可复现
func NewGame(names []string, mode entities.GameMode, seed int64) entities.GameState {
	state := entities.NewGameState()
	state.Mode = mode
	state.LobbyPlayers = append([]string{}, names...)

	for i, name := range names {
		state.Players = append(state.Players, entities.NewPlayer(fmt.Sprintf("P%d", i+1), name))
	}
	for _, spec := range entities.ChainCatalog {
		state.HotelChains[spec.Name] = entities.HotelChain{
			Name:     spec.Name,
			Color:    spec.Color,
			Tiles:    []entities.Coordinate{},
			IsActive: false,
		}
		state.StockMarket[spec.Name] = entities.SharesPerChain
		state.AvailableHeadquarters = append(state.AvailableHeadquarters, spec.Name)
	}

	pool := board.AllCoordinates()
	rng := rand.New(rand.NewSource(uint64(seed)))
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	state.TilePool = pool

	state.GamePhase = entities.PhaseSetup
	state.SetupPhase = entities.SetupDrawInitialTile
	state.CurrentPlayerIndex = 0
	return state
}

func startGame(state entities.GameState, a StartGame) (entities.GameState, error) {
	names := a.PlayerNames
	if len(names) == 0 {
		names = state.LobbyPlayers
	}
	count := a.PlayerCount
	if count == 0 {
		count = len(names)
	}
	if count < MinPlayers || count > MaxPlayers {
		return state, invalid("玩家人数必须在 %d-%d 之间: %d", MinPlayers, MaxPlayers, count)
	}
	if len(names) == 0 {
		for i := 0; i < count; i++ {
			names = append(names, fmt.Sprintf("Player %d", i+1))
		}
	}
	if len(names) != count {
		return state, invalid("玩家名字数量 %d 与人数 %d 不一致", len(names), count)
	}
	mode := a.GameMode
	if mode == "" {
		mode = state.Mode
	}
	if mode == "" {
		mode = entities.ModeClassic
	}
	if !entities.IsValidMode(mode) {
		return state, invalid("未知的游戏模式: %s", mode)
	}
	return NewGame(names, mode, a.Seed), nil
}

func setPlayers(state entities.GameState, a SetPlayers) (entities.GameState, error) {
	if len(state.Players) > 0 {
		return state, ErrWrongPhase
	}
	if len(a.PlayerNames) > MaxPlayers {
		return state, invalid("玩家人数不能超过 %d", MaxPlayers)
	}
	next := state.Clone()
	next.LobbyPlayers = append([]string{}, a.PlayerNames...)
	return next, nil
}

func setGameMode(state entities.GameState, a SetGameMode) (entities.GameState, error) {
	if !entities.IsValidMode(a.GameMode) {
		return state, invalid("未知的游戏模式: %s", a.GameMode)
	}
	if len(state.Players) > 0 {
		return state, ErrWrongPhase
	}
	next := state.Clone()
	next.Mode = a.GameMode
	return next, nil
}

func setCurrentPlayer(state entities.GameState, a SetCurrentPlayer) (entities.GameState, error) {
	if a.PlayerIndex < 0 || a.PlayerIndex >= len(state.Players) {
		return state, invalid("玩家下标越界: %d", a.PlayerIndex)
	}
	if state.HasPending() {
		return state, ErrPendingDecision
	}
	next := state.Clone()
	next.CurrentPlayerIndex = a.PlayerIndex
	next.StocksBoughtThisTurn = 0
	snapshotTurnStart(&next)
	return next, nil
}

// drawInitialTile 起始 tile 直接放到棋盘上，用于决定行动顺序
func drawInitialTile(state entities.GameState, a DrawInitialTile) (entities.GameState, error) {
	if state.GamePhase != entities.PhaseSetup || state.SetupPhase != entities.SetupDrawInitialTile {
		return state, ErrWrongPhase
	}
	current, ok := state.CurrentPlayer()
	if !ok || state.PlayerIndex(a.PlayerID) < 0 {
		return state, ErrUnknownPlayer
	}
	if current.ID != a.PlayerID {
		return state, ErrNotYourTurn
	}
	if hasDrawnInitial(state, a.PlayerID) {
		return state, ErrAlreadyDrawn
	}
	if len(state.TilePool) == 0 {
		return state, ErrTileUnavailable
	}

	next := state.Clone()
	tile := next.TilePool[0]
	next.TilePool = next.TilePool[1:]
	next.PlacedTiles[tile] = entities.BuildingTile{Coordinate: tile, IsPlaced: true}
	next.InitialTiles = append(next.InitialTiles, entities.InitialTile{PlayerID: a.PlayerID, Coordinate: tile})

	if len(next.InitialTiles) < len(next.Players) {
		for step := 1; step <= len(next.Players); step++ {
			idx := (next.CurrentPlayerIndex + step) % len(next.Players)
			if !hasDrawnInitial(next, next.Players[idx].ID) {
				next.CurrentPlayerIndex = idx
				break
			}
		}
		return next, nil
	}

	next.Players = OrderByInitialTiles(next.Players, next.InitialTiles)
	next.CurrentPlayerIndex = 0
	next.SetupPhase = entities.SetupDealTiles
	return next, nil
}

func hasDrawnInitial(state entities.GameState, playerID string) bool {
	for _, it := range state.InitialTiles {
		if it.PlayerID == playerID {
			return true
		}
	}
	return false
}

// OrderByInitialTiles 按起始 tile 到 1A 的距离升序排列玩家
func OrderByInitialTiles(players []entities.Player, draws []entities.InitialTile) []entities.Player {
	distance := make(map[string]int, len(draws))
	for _, d := range draws {
		dist, err := board.Distance(d.Coordinate)
		if err != nil {
			dist = int(^uint(0) >> 1)
		}
		distance[d.PlayerID] = dist
	}
	ordered := append([]entities.Player{}, players...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return distance[ordered[i].ID] < distance[ordered[j].ID]
	})
	return ordered
}

func dealStartingTiles(state entities.GameState) (entities.GameState, error) {
	if state.GamePhase != entities.PhaseSetup || state.SetupPhase != entities.SetupDealTiles {
		return state, ErrWrongPhase
	}
	next := state.Clone()
	for i := range next.Players {
		hand := utils.SafeSlice(next.TilePool, entities.HandSize)
		next.Players[i].Tiles = append(next.Players[i].Tiles, hand...)
		next.TilePool = next.TilePool[len(hand):]
	}
	next.SetupPhase = entities.SetupComplete
	next.GamePhase = entities.PhasePlaceTile
	next.StocksBoughtThisTurn = 0
	snapshotTurnStart(&next)
	return next, nil
}

// snapshotTurnStart 记录当前玩家回合开始时的持股，用于展示本回合购买
func snapshotTurnStart(state *entities.GameState) {
	state.TurnStartStocks = map[entities.ChainName]int{}
	if current, ok := state.CurrentPlayer(); ok {
		for chain, count := range current.Stocks {
			state.TurnStartStocks[chain] = count
		}
	}
}
