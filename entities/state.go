package entities

type GamePhase string

const (
	PhaseSetup     GamePhase = "setup"
	PhasePlaceTile GamePhase = "placeTile"
	PhaseBuyStock  GamePhase = "buyStock"
	PhaseGameOver  GamePhase = "gameOver"
)

type SetupPhase string

const (
	SetupDrawInitialTile SetupPhase = "drawInitialTile"
	SetupDealTiles       SetupPhase = "dealTiles"
	SetupComplete        SetupPhase = "complete"
)

type GameMode string

const (
	ModeClassic GameMode = "classic"
	ModeTycoon  GameMode = "tycoon" // 第三大股东也分红
)

func IsValidMode(mode GameMode) bool {
	return mode == ModeClassic || mode == ModeTycoon
}

// PendingFounding 等待玩家选择要创建的酒店
type PendingFounding struct {
	Coordinate     Coordinate   `json:"coordinate"`
	ConnectedTiles []Coordinate `json:"connectedTiles"`
}

// PendingMerger 等待玩家确认并购（平局时选择存活酒店）
type PendingMerger struct {
	Coordinate        Coordinate  `json:"coordinate"`
	SurvivorOptions   []ChainName `json:"survivorOptions"`
	AcquiredChains    []ChainName `json:"acquiredChains"`
	AutomaticSurvivor ChainName   `json:"automaticSurvivor,omitempty"`
}

// SettlementStep 某个被并购酒店上还需要处理股票的玩家
type SettlementStep struct {
	Chain          ChainName `json:"chain"`
	PendingHolders []string  `json:"pendingHolders"`
}

// PendingSettlement 并购后股票处理（保留/卖出/兑换）
type PendingSettlement struct {
	SurvivingChain ChainName                    `json:"survivingChain"`
	Steps          []SettlementStep             `json:"steps"`
	Dividends      map[ChainName]map[string]int `json:"dividends"`
}

// StockPurchase 仅供展示的购买记录
type StockPurchase struct {
	PlayerID string    `json:"playerId"`
	Chain    ChainName `json:"chainName"`
	Quantity int       `json:"quantity"`
	Price    int       `json:"price"`
}

type Standing struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Money    int    `json:"money"`
	Rank     int    `json:"rank"`
}

type GameState struct {
	Mode                  GameMode                    `json:"gameMode"`
	LobbyPlayers          []string                    `json:"lobbyPlayers"`
	Players               []Player                    `json:"players"`
	CurrentPlayerIndex    int                         `json:"currentPlayerIndex"`
	HotelChains           map[ChainName]HotelChain    `json:"hotelChains"`
	PlacedTiles           map[Coordinate]BuildingTile `json:"placedTiles"`
	StockMarket           map[ChainName]int           `json:"stockMarket"`
	TilePool              []Coordinate                `json:"tilePool"`
	GamePhase             GamePhase                   `json:"gamePhase"`
	SetupPhase            SetupPhase                  `json:"setupPhase"`
	AvailableHeadquarters []ChainName                 `json:"availableHeadquarters"`
	InitialTiles          []InitialTile               `json:"initialTiles"`

	PendingFounding   *PendingFounding   `json:"pendingFounding,omitempty"`
	PendingMerger     *PendingMerger     `json:"pendingMerger,omitempty"`
	PendingSettlement *PendingSettlement `json:"pendingSettlement,omitempty"`

	StocksBoughtThisTurn int               `json:"stocksBoughtThisTurn"`
	TurnStartStocks      map[ChainName]int `json:"turnStartStocks"`
	StockPurchases       []StockPurchase   `json:"stockPurchases"`
	ShowPurchaseReport   bool              `json:"showPurchaseReport"`

	GameOver         bool       `json:"gameOver"`
	Winner           string     `json:"winner,omitempty"`
	Winners          []string   `json:"winners,omitempty"`
	FinalStandings   []Standing `json:"finalStandings,omitempty"`
	ShowWinnerBanner bool       `json:"showWinnerBanner"`
}

// NewGameState 空白大厅状态
func NewGameState() GameState {
	return GameState{
		Mode:                  ModeClassic,
		LobbyPlayers:          []string{},
		Players:               []Player{},
		HotelChains:           map[ChainName]HotelChain{},
		PlacedTiles:           map[Coordinate]BuildingTile{},
		StockMarket:           map[ChainName]int{},
		TilePool:              []Coordinate{},
		GamePhase:             PhaseSetup,
		SetupPhase:            SetupDrawInitialTile,
		AvailableHeadquarters: []ChainName{},
		InitialTiles:          []InitialTile{},
		TurnStartStocks:       map[ChainName]int{},
		StockPurchases:        []StockPurchase{},
	}
}

// CurrentPlayer 当前玩家；没有玩家时返回 false
func (s GameState) CurrentPlayer() (Player, bool) {
	if s.CurrentPlayerIndex < 0 || s.CurrentPlayerIndex >= len(s.Players) {
		return Player{}, false
	}
	return s.Players[s.CurrentPlayerIndex], true
}

// PlayerIndex 按 ID 查找玩家下标，找不到返回 -1
func (s GameState) PlayerIndex(playerID string) int {
	for i, p := range s.Players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

// ActiveChains 当前存在的酒店（目录顺序）
func (s GameState) ActiveChains() []HotelChain {
	var active []HotelChain
	for _, spec := range ChainCatalog {
		if chain, ok := s.HotelChains[spec.Name]; ok && chain.IsActive {
			active = append(active, chain)
		}
	}
	return active
}

// HasPending 是否还有未处理的创建/并购/清算
func (s GameState) HasPending() bool {
	return s.PendingFounding != nil || s.PendingMerger != nil || s.PendingSettlement != nil
}

// Clone 深拷贝，reducer 只修改拷贝
func (s GameState) Clone() GameState {
	out := s
	out.LobbyPlayers = append([]string{}, s.LobbyPlayers...)

	out.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		out.Players[i] = p.clone()
	}

	out.HotelChains = make(map[ChainName]HotelChain, len(s.HotelChains))
	for name, chain := range s.HotelChains {
		chain.Tiles = append([]Coordinate{}, chain.Tiles...)
		out.HotelChains[name] = chain
	}

	out.PlacedTiles = make(map[Coordinate]BuildingTile, len(s.PlacedTiles))
	for c, t := range s.PlacedTiles {
		out.PlacedTiles[c] = t
	}

	out.StockMarket = copyCounts(s.StockMarket)
	out.TurnStartStocks = copyCounts(s.TurnStartStocks)
	out.TilePool = append([]Coordinate{}, s.TilePool...)
	out.AvailableHeadquarters = append([]ChainName{}, s.AvailableHeadquarters...)
	out.InitialTiles = append([]InitialTile{}, s.InitialTiles...)
	out.StockPurchases = append([]StockPurchase{}, s.StockPurchases...)

	if s.PendingFounding != nil {
		pf := *s.PendingFounding
		pf.ConnectedTiles = append([]Coordinate{}, pf.ConnectedTiles...)
		out.PendingFounding = &pf
	}
	if s.PendingMerger != nil {
		pm := *s.PendingMerger
		pm.SurvivorOptions = append([]ChainName{}, pm.SurvivorOptions...)
		pm.AcquiredChains = append([]ChainName{}, pm.AcquiredChains...)
		out.PendingMerger = &pm
	}
	if s.PendingSettlement != nil {
		ps := *s.PendingSettlement
		ps.Steps = make([]SettlementStep, len(s.PendingSettlement.Steps))
		for i, step := range s.PendingSettlement.Steps {
			step.PendingHolders = append([]string{}, step.PendingHolders...)
			ps.Steps[i] = step
		}
		ps.Dividends = make(map[ChainName]map[string]int, len(s.PendingSettlement.Dividends))
		for chain, paid := range s.PendingSettlement.Dividends {
			m := make(map[string]int, len(paid))
			for id, v := range paid {
				m[id] = v
			}
			ps.Dividends[chain] = m
		}
		out.PendingSettlement = &ps
	}

	if s.Winners != nil {
		out.Winners = append([]string{}, s.Winners...)
	}
	if s.FinalStandings != nil {
		out.FinalStandings = append([]Standing{}, s.FinalStandings...)
	}
	return out
}

func copyCounts(in map[ChainName]int) map[ChainName]int {
	out := make(map[ChainName]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
