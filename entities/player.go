package entities

const (
	StartingMoney = 6000
	HandSize      = 6
)

type Player struct {
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	Money  int               `json:"money"`
	Stocks map[ChainName]int `json:"stocks"`
	Tiles  []Coordinate      `json:"tiles"`
}

func NewPlayer(id, name string) Player {
	stocks := make(map[ChainName]int, len(ChainCatalog))
	for _, spec := range ChainCatalog {
		stocks[spec.Name] = 0
	}
	return Player{
		ID:     id,
		Name:   name,
		Money:  StartingMoney,
		Stocks: stocks,
		Tiles:  []Coordinate{},
	}
}

// HasTile 玩家手牌中是否有该 tile
func (p Player) HasTile(c Coordinate) bool {
	for _, t := range p.Tiles {
		if t == c {
			return true
		}
	}
	return false
}

func (p Player) clone() Player {
	stocks := make(map[ChainName]int, len(p.Stocks))
	for k, v := range p.Stocks {
		stocks[k] = v
	}
	p.Stocks = stocks
	p.Tiles = append([]Coordinate{}, p.Tiles...)
	return p
}
