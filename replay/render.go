package replay

import (
	"fmt"
	"go-acquire/board"
	"go-acquire/entities"
	"go-acquire/game"
	"io"
	"strings"

	"github.com/fatih/color"
)

var chainColors = map[entities.ChainName]*color.Color{
	entities.Luxor:       color.New(color.FgYellow, color.Bold),
	entities.Tower:       color.New(color.FgRed, color.Bold),
	entities.American:    color.New(color.FgBlue, color.Bold),
	entities.Festival:    color.New(color.FgGreen, color.Bold),
	entities.Worldwide:   color.New(color.FgMagenta, color.Bold),
	entities.Continental: color.New(color.FgCyan, color.Bold),
	entities.Imperial:    color.New(color.FgHiRed),
}

var (
	header = color.New(color.FgHiWhite, color.Bold)
	faint  = color.New(color.Faint)
)

// cellText 空格子 "."，无归属 tile "#"，酒店 tile 用酒店首字母
func cellText(state entities.GameState, c entities.Coordinate) string {
	tile, ok := state.PlacedTiles[c]
	if !ok || !tile.IsPlaced {
		return faint.Sprint(".")
	}
	if tile.Chain == "" {
		return "#"
	}
	letter := strings.ToUpper(string(tile.Chain)[:1])
	if paint, ok := chainColors[tile.Chain]; ok {
		return paint.Sprint(letter)
	}
	return letter
}

// RenderBoard 按列 A-I 输出棋盘，每行 12 格
func RenderBoard(w io.Writer, state entities.GameState) {
	var b strings.Builder
	b.WriteString("   ")
	for row := 1; row <= board.Rows; row++ {
		b.WriteString(fmt.Sprintf("%3d", row))
	}
	header.Fprintln(w, b.String())

	for col := 1; col <= board.Columns; col++ {
		b.Reset()
		b.WriteString(fmt.Sprintf("%c  ", rune(board.MinCol+col-1)))
		for row := 1; row <= board.Rows; row++ {
			cell := board.Cell{Row: row, Col: col}
			b.WriteString("  " + cellText(state, cell.Coordinate()))
		}
		fmt.Fprintln(w, b.String())
	}
}

// RenderSummary 输出酒店规模、玩家资金和持股；游戏结束时输出排名
func RenderSummary(w io.Writer, state entities.GameState) {
	header.Fprintln(w, "酒店")
	for _, name := range entities.ChainNames() {
		chain := state.HotelChains[name]
		if !chain.IsActive {
			continue
		}
		price := game.StockPrice(state, name)
		label := string(name)
		if paint, ok := chainColors[name]; ok {
			label = paint.Sprint(label)
		}
		fmt.Fprintf(w, "  %-12s size=%-3d buy=%-5d left=%d\n", label, chain.Size(), price.Buy, state.StockMarket[name])
	}

	header.Fprintln(w, "玩家")
	for _, p := range state.Players {
		var stocks []string
		for _, name := range entities.ChainNames() {
			if n := p.Stocks[name]; n > 0 {
				stocks = append(stocks, fmt.Sprintf("%s:%d", name, n))
			}
		}
		fmt.Fprintf(w, "  %s %-10s $%-6d %s\n", p.ID, p.Name, p.Money, strings.Join(stocks, " "))
	}

	if state.GameOver {
		header.Fprintln(w, "排名")
		for _, s := range state.FinalStandings {
			fmt.Fprintf(w, "  %d. %s $%d\n", s.Rank, s.Name, s.Money)
		}
	}
}
