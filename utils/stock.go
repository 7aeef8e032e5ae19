package utils

import "go-acquire/entities"

type StockInfo struct {
	TileRange [2]int
	Price     int
}

// 基准股价档位（不含酒店档次偏移）
var basePriceTable = []StockInfo{
	{[2]int{0, 0}, 0},
	{[2]int{1, 1}, 100},
	{[2]int{2, 2}, 200},
	{[2]int{3, 3}, 300},
	{[2]int{4, 4}, 400},
	{[2]int{5, 5}, 500},
	{[2]int{6, 10}, 600},
	{[2]int{11, 20}, 700},
	{[2]int{21, 30}, 800},
	{[2]int{31, 40}, 900},
	{[2]int{41, 1 << 30}, 1000},
}

var tierOffset = map[entities.PriceTier]int{
	entities.TierCheap:     0,
	entities.TierMedium:    100,
	entities.TierExpensive: 200,
}

// ChainTiers 酒店 -> 档次映射表，初始化时由酒店目录生成
var ChainTiers = buildChainTiers(entities.ChainCatalog)

func buildChainTiers(catalog []entities.ChainSpec) map[entities.ChainName]entities.PriceTier {
	tiers := make(map[entities.ChainName]entities.PriceTier, len(catalog))
	for _, spec := range catalog {
		tiers[spec.Name] = spec.Tier
	}
	return tiers
}

type StockPrice struct {
	Buy  int `json:"buy"`
	Sell int `json:"sell"`
}

type Bonus struct {
	Primary   int `json:"primary"`
	Secondary int `json:"secondary"`
	Tertiary  int `json:"tertiary"`
}

func basePrice(chainSize int) int {
	for _, info := range basePriceTable {
		if chainSize >= info.TileRange[0] && chainSize <= info.TileRange[1] {
			return info.Price
		}
	}
	return 0
}

// CalculateStockPrice 根据酒店档次和规模计算买入/卖出价
func CalculateStockPrice(chain entities.ChainName, chainSize int) StockPrice {
	buy := basePrice(chainSize) + tierOffset[ChainTiers[chain]]
	return StockPrice{Buy: buy, Sell: buy / 2}
}

// CalculateStockholderBonus 大股东 10 倍、二股东 5 倍；tycoon 模式下三股东拿二股东的一半
func CalculateStockholderBonus(chain entities.ChainName, chainSize int, mode entities.GameMode) Bonus {
	price := CalculateStockPrice(chain, chainSize)
	bonus := Bonus{
		Primary:   price.Buy * 10,
		Secondary: price.Buy * 5,
	}
	if mode == entities.ModeTycoon {
		bonus.Tertiary = bonus.Secondary / 2
	}
	return bonus
}

// Amounts 按股东名次排列的红利
func (b Bonus) Amounts(mode entities.GameMode) []int {
	if mode == entities.ModeTycoon {
		return []int{b.Primary, b.Secondary, b.Tertiary}
	}
	return []int{b.Primary, b.Secondary}
}

// RoundUpToHundred 向上取整到 100
func RoundUpToHundred(amount int) int {
	if amount <= 0 {
		return 0
	}
	return (amount + 99) / 100 * 100
}
