package entities

// ChainName 酒店连锁名称
type ChainName string

const (
	Luxor       ChainName = "luxor"
	Tower       ChainName = "tower"
	American    ChainName = "american"
	Festival    ChainName = "festival"
	Worldwide   ChainName = "worldwide"
	Continental ChainName = "continental"
	Imperial    ChainName = "imperial"
)

// PriceTier 只影响股价基准偏移
type PriceTier string

const (
	TierCheap     PriceTier = "cheap"
	TierMedium    PriceTier = "medium"
	TierExpensive PriceTier = "expensive"
)

// SafeChainSize 达到该规模的酒店不能被并购
const SafeChainSize = 11

// EndGameChainSize 任意酒店达到该规模即可结束游戏
const EndGameChainSize = 41

// SharesPerChain 每家酒店发行的股票总数
const SharesPerChain = 25

type ChainSpec struct {
	Name  ChainName `json:"name"`
	Color string    `json:"color"`
	Tier  PriceTier `json:"tier"`
}

// ChainCatalog 固定的 7 家酒店，顺序即展示顺序
var ChainCatalog = []ChainSpec{
	{Name: Luxor, Color: "#f2c12e", Tier: TierCheap},
	{Name: Tower, Color: "#c0392b", Tier: TierCheap},
	{Name: American, Color: "#2c5fa8", Tier: TierMedium},
	{Name: Festival, Color: "#27ae60", Tier: TierMedium},
	{Name: Worldwide, Color: "#8e5a2b", Tier: TierMedium},
	{Name: Continental, Color: "#17a2b8", Tier: TierExpensive},
	{Name: Imperial, Color: "#e67e22", Tier: TierExpensive},
}

// ChainNames 返回全部酒店名称（目录顺序）
func ChainNames() []ChainName {
	names := make([]ChainName, 0, len(ChainCatalog))
	for _, spec := range ChainCatalog {
		names = append(names, spec.Name)
	}
	return names
}

// LookupChain 查找酒店配置
func LookupChain(name ChainName) (ChainSpec, bool) {
	for _, spec := range ChainCatalog {
		if spec.Name == name {
			return spec, true
		}
	}
	return ChainSpec{}, false
}

func IsValidChain(name ChainName) bool {
	_, ok := LookupChain(name)
	return ok
}

type HotelChain struct {
	Name     ChainName    `json:"name"`
	Color    string       `json:"color"`
	Tiles    []Coordinate `json:"tiles"`
	IsActive bool         `json:"isActive"`
}

func (c HotelChain) Size() int {
	return len(c.Tiles)
}

func (c HotelChain) IsSafe() bool {
	return len(c.Tiles) >= SafeChainSize
}
