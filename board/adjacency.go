package board

import "go-acquire/entities"

// AdjacentCoordinates 上下左右邻接的格子（裁剪到棋盘内）
func AdjacentCoordinates(c entities.Coordinate) []entities.Coordinate {
	cell, err := ParseCoordinate(c)
	if err != nil {
		return nil
	}
	candidates := []Cell{
		{Row: cell.Row - 1, Col: cell.Col}, // 上
		{Row: cell.Row + 1, Col: cell.Col}, // 下
		{Row: cell.Row, Col: cell.Col - 1}, // 左
		{Row: cell.Row, Col: cell.Col + 1}, // 右
	}
	adjacent := make([]entities.Coordinate, 0, len(candidates))
	for _, n := range candidates {
		if n.inBounds() {
			adjacent = append(adjacent, n.Coordinate())
		}
	}
	return adjacent
}

func IsAdjacent(a, b entities.Coordinate) bool {
	ca, err := ParseCoordinate(a)
	if err != nil {
		return false
	}
	cb, err := ParseCoordinate(b)
	if err != nil {
		return false
	}
	dr, dc := ca.Row-cb.Row, ca.Col-cb.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr+dc == 1
}

// GetAdjacentTiles 邻接且已放置的 tile
func GetAdjacentTiles(c entities.Coordinate, placed map[entities.Coordinate]entities.BuildingTile) []entities.BuildingTile {
	var tiles []entities.BuildingTile
	for _, n := range AdjacentCoordinates(c) {
		if tile, ok := placed[n]; ok && tile.IsPlaced {
			tiles = append(tiles, tile)
		}
	}
	return tiles
}

// FindConnectedTiles 从 start 出发查找相连的、不属于任何酒店的 tile。
// start 即使还没放到棋盘上也算在结果里。
func FindConnectedTiles(start entities.Coordinate, placed map[entities.Coordinate]entities.BuildingTile) []entities.Coordinate {
	if !IsValid(start) {
		return nil
	}
	visited := map[entities.Coordinate]bool{start: true}
	stack := []entities.Coordinate{start}
	connected := []entities.Coordinate{}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		connected = append(connected, current)

		for _, n := range AdjacentCoordinates(current) {
			if visited[n] {
				continue
			}
			if tile, ok := placed[n]; ok && tile.IsFree() {
				visited[n] = true
				stack = append(stack, n)
			}
		}
	}

	SortCoordinates(connected)
	return connected
}
