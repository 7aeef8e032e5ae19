package entities

// Coordinate 棋盘格子编号，例如 "5C"
type Coordinate string

type BuildingTile struct {
	Coordinate Coordinate `json:"coordinate"`
	IsPlaced   bool       `json:"isPlaced"`
	Chain      ChainName  `json:"belongsToChain,omitempty"` // 空字符串表示未归属任何酒店
}

// IsFree 已放置但不属于任何酒店
func (t BuildingTile) IsFree() bool {
	return t.IsPlaced && t.Chain == ""
}

type InitialTile struct {
	PlayerID   string     `json:"playerId"`
	Coordinate Coordinate `json:"coordinate"`
}
