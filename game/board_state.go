package game

import (
	"go-acquire/board"
	"go-acquire/entities"
	"sort"
)

// adjacentChains 与坐标相邻的已创建酒店，按规模降序、目录顺序排列
func adjacentChains(state entities.GameState, c entities.Coordinate) []entities.ChainName {
	seen := make(map[entities.ChainName]bool)
	for _, tile := range board.GetAdjacentTiles(c, state.PlacedTiles) {
		if tile.Chain == "" {
			continue
		}
		if chain, ok := state.HotelChains[tile.Chain]; ok && chain.IsActive {
			seen[tile.Chain] = true
		}
	}
	var chains []entities.ChainName
	for _, name := range entities.ChainNames() {
		if seen[name] {
			chains = append(chains, name)
		}
	}
	sort.SliceStable(chains, func(i, j int) bool {
		return chainSize(state, chains[i]) > chainSize(state, chains[j])
	})
	return chains
}

func chainSize(state entities.GameState, name entities.ChainName) int {
	chain, ok := state.HotelChains[name]
	if !ok || !chain.IsActive {
		return 0
	}
	return len(chain.Tiles)
}

// isTileBurned 放置后会连接两家及以上安全酒店
func isTileBurned(state entities.GameState, c entities.Coordinate) bool {
	if _, placed := state.PlacedTiles[c]; placed {
		return false
	}
	safe := 0
	for _, name := range adjacentChains(state, c) {
		if state.HotelChains[name].IsSafe() {
			safe++
		}
	}
	return safe >= 2
}

// isPlayable 未被占用且不是死牌
func isPlayable(state entities.GameState, c entities.Coordinate) bool {
	if _, placed := state.PlacedTiles[c]; placed {
		return false
	}
	return !isTileBurned(state, c)
}

// assignTiles 将 tile 归入酒店，并重建所有酒店的 tile 列表
func assignTiles(state *entities.GameState, chain entities.ChainName, coords []entities.Coordinate) {
	for _, c := range coords {
		tile := state.PlacedTiles[c]
		tile.Coordinate = c
		tile.IsPlaced = true
		tile.Chain = chain
		state.PlacedTiles[c] = tile
	}
	syncChains(state)
}

// syncChains 以 PlacedTiles 为准重建酒店的 tile 集合
func syncChains(state *entities.GameState) {
	grouped := make(map[entities.ChainName][]entities.Coordinate)
	for c, tile := range state.PlacedTiles {
		if tile.Chain != "" {
			grouped[tile.Chain] = append(grouped[tile.Chain], c)
		}
	}
	for name, chain := range state.HotelChains {
		tiles := grouped[name]
		board.SortCoordinates(tiles)
		if tiles == nil {
			tiles = []entities.Coordinate{}
		}
		chain.Tiles = tiles
		state.HotelChains[name] = chain
	}
}

func removeFromHand(player *entities.Player, c entities.Coordinate) bool {
	for i, t := range player.Tiles {
		if t == c {
			player.Tiles = append(player.Tiles[:i], player.Tiles[i+1:]...)
			return true
		}
	}
	return false
}

func removeHeadquarters(state *entities.GameState, name entities.ChainName) bool {
	for i, hq := range state.AvailableHeadquarters {
		if hq == name {
			state.AvailableHeadquarters = append(state.AvailableHeadquarters[:i], state.AvailableHeadquarters[i+1:]...)
			return true
		}
	}
	return false
}

// restoreHeadquarters 被并购的酒店重新回到可创建列表（保持目录顺序）
func restoreHeadquarters(state *entities.GameState, names ...entities.ChainName) {
	available := make(map[entities.ChainName]bool)
	for _, hq := range state.AvailableHeadquarters {
		available[hq] = true
	}
	for _, name := range names {
		available[name] = true
	}
	state.AvailableHeadquarters = state.AvailableHeadquarters[:0]
	for _, name := range entities.ChainNames() {
		if available[name] {
			state.AvailableHeadquarters = append(state.AvailableHeadquarters, name)
		}
	}
}

func hasHeadquarters(state entities.GameState, name entities.ChainName) bool {
	for _, hq := range state.AvailableHeadquarters {
		if hq == name {
			return true
		}
	}
	return false
}

func sameChainSet(a, b []entities.ChainName) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[entities.ChainName]int)
	for _, n := range a {
		set[n]++
	}
	for _, n := range b {
		set[n]--
		if set[n] < 0 {
			return false
		}
	}
	return true
}

func sameCoordinateSet(a, b []entities.Coordinate) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[entities.Coordinate]int)
	for _, c := range a {
		set[c]++
	}
	for _, c := range b {
		set[c]--
		if set[c] < 0 {
			return false
		}
	}
	return true
}
