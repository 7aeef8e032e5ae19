package board

import (
	"errors"
	"fmt"
	"go-acquire/entities"
	"sort"
	"strconv"
)

const (
	Rows    = 12
	Columns = 9
	MinCol  = 'A'
	MaxCol  = 'I'
)

var ErrInvalidCoordinate = errors.New("无效的坐标")

// Cell 解析后的坐标，Col 从 1 开始（A=1）
type Cell struct {
	Row int
	Col int
}

func (c Cell) Coordinate() entities.Coordinate {
	return entities.Coordinate(fmt.Sprintf("%d%c", c.Row, rune(MinCol+c.Col-1)))
}

func (c Cell) inBounds() bool {
	return c.Row >= 1 && c.Row <= Rows && c.Col >= 1 && c.Col <= Columns
}

// ParseCoordinate 解析 "5C" 形式的坐标
func ParseCoordinate(c entities.Coordinate) (Cell, error) {
	s := string(c)
	if len(s) < 2 {
		return Cell{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, s)
	}
	row, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || s[0] == '+' || s[0] == '-' || s[0] == '0' {
		return Cell{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, s)
	}
	col := s[len(s)-1]
	cell := Cell{Row: row, Col: int(col) - MinCol + 1}
	if col < MinCol || col > MaxCol || !cell.inBounds() {
		return Cell{}, fmt.Errorf("%w: %q", ErrInvalidCoordinate, s)
	}
	return cell, nil
}

func IsValid(c entities.Coordinate) bool {
	_, err := ParseCoordinate(c)
	return err == nil
}

// AllCoordinates 全部 108 个格子，按行优先
func AllCoordinates() []entities.Coordinate {
	all := make([]entities.Coordinate, 0, Rows*Columns)
	for row := 1; row <= Rows; row++ {
		for col := 1; col <= Columns; col++ {
			all = append(all, Cell{Row: row, Col: col}.Coordinate())
		}
	}
	return all
}

// Distance 到左上角的距离，列的权重远大于行
func Distance(c entities.Coordinate) (int, error) {
	cell, err := ParseCoordinate(c)
	if err != nil {
		return 0, err
	}
	return (cell.Row - 1) + (cell.Col-1)*100, nil
}

// SortCoordinates 按行、列排序（原地）
func SortCoordinates(coords []entities.Coordinate) {
	sort.Slice(coords, func(i, j int) bool {
		a, errA := ParseCoordinate(coords[i])
		b, errB := ParseCoordinate(coords[j])
		if errA != nil || errB != nil {
			return coords[i] < coords[j]
		}
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		return a.Col < b.Col
	})
}
