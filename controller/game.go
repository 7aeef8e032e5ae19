package controller

import (
	"go-acquire/board"
	"go-acquire/dto"
	"go-acquire/entities"
	"go-acquire/game"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ChainInfo 酒店当前规模、股价和剩余股票
type ChainInfo struct {
	Name      entities.ChainName `json:"name"`
	Size      int                `json:"size"`
	Active    bool               `json:"active"`
	Safe      bool               `json:"safe"`
	Buy       int                `json:"buy"`
	Sell      int                `json:"sell"`
	Available int                `json:"available"`
}

func (rc *RoomController) GetTileInfo(c *gin.Context) {
	room, err := rc.rooms.Get(c.Param("roomID"))
	if err != nil {
		fail(c, statusOf(err), err.Error())
		return
	}
	coord := entities.Coordinate(c.Param("coordinate"))
	if !board.IsValid(coord) {
		fail(c, http.StatusBadRequest, "无效的坐标")
		return
	}
	state := room.State()
	tile, placed := state.PlacedTiles[coord]
	adjacent := game.AdjacentChains(state, coord)
	if adjacent == nil {
		adjacent = []entities.ChainName{}
	}
	ok(c, "获取成功", dto.TileInfo{
		Coordinate:     coord,
		Placed:         placed,
		Chain:          tile.Chain,
		AdjacentChains: adjacent,
		Burned:         game.IsTileBurned(state, coord),
	})
}

func (rc *RoomController) GetEndEligible(c *gin.Context) {
	room, err := rc.rooms.Get(c.Param("roomID"))
	if err != nil {
		fail(c, statusOf(err), err.Error())
		return
	}
	ok(c, "获取成功", dto.EndEligibleResponse{Eligible: game.IsGameEndEligible(room.State())})
}

func (rc *RoomController) GetChains(c *gin.Context) {
	room, err := rc.rooms.Get(c.Param("roomID"))
	if err != nil {
		fail(c, statusOf(err), err.Error())
		return
	}
	state := room.State()
	chains := make([]ChainInfo, 0, len(entities.ChainCatalog))
	for _, name := range entities.ChainNames() {
		chain := state.HotelChains[name]
		price := game.StockPrice(state, name)
		chains = append(chains, ChainInfo{
			Name:      name,
			Size:      game.ChainSize(state, name),
			Active:    chain.IsActive,
			Safe:      chain.IsActive && chain.IsSafe(),
			Buy:       price.Buy,
			Sell:      price.Sell,
			Available: state.StockMarket[name],
		})
	}
	ok(c, "获取成功", chains)
}
