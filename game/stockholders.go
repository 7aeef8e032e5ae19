package game

import (
	"go-acquire/entities"
	"go-acquire/utils"
	"sort"
)

type Stockholders struct {
	Primary   []string `json:"primary"`
	Secondary []string `json:"secondary"`
	Tertiary  []string `json:"tertiary"`
}

func (s Stockholders) tiers() [][]string {
	var out [][]string
	for _, tier := range [][]string{s.Primary, s.Secondary, s.Tertiary} {
		if len(tier) == 0 {
			break
		}
		out = append(out, tier)
	}
	return out
}

// DetermineStockholders 按持股数量降序分出大股东/二股东/三股东，持股相同的玩家同一档
func DetermineStockholders(players []entities.Player, chain entities.ChainName) Stockholders {
	type holder struct {
		PlayerID string
		Count    int
	}
	var holders []holder
	for _, p := range players {
		if count := p.Stocks[chain]; count > 0 {
			holders = append(holders, holder{PlayerID: p.ID, Count: count})
		}
	}
	sort.SliceStable(holders, func(i, j int) bool {
		return holders[i].Count > holders[j].Count
	})

	var groups [][]string
	for i, h := range holders {
		if i == 0 || h.Count != holders[i-1].Count {
			if len(groups) == 3 {
				break
			}
			groups = append(groups, []string{})
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], h.PlayerID)
	}

	var result Stockholders
	for i, g := range groups {
		switch i {
		case 0:
			result.Primary = g
		case 1:
			result.Secondary = g
		case 2:
			result.Tertiary = g
		}
	}
	return result
}

// PayoutBonuses 计算每位股东应得红利。
// 每一档按人数占用相应数量的红利名额，名额内的红利合计后平分并向上取整到 100；
// 只有一档股东时该档同时拿走大股东和二股东红利。
func PayoutBonuses(holders Stockholders, amounts []int) map[string]int {
	payouts := make(map[string]int)
	tiers := holders.tiers()
	pos := 0
	for i, tier := range tiers {
		if pos >= len(amounts) {
			break
		}
		end := pos + len(tier)
		if len(tiers) == 1 && i == 0 && end < 2 {
			end = 2
		}
		if end > len(amounts) {
			end = len(amounts)
		}
		total := 0
		for _, amount := range amounts[pos:end] {
			total += amount
		}
		share := utils.RoundUpToHundred(ceilDiv(total, len(tier)))
		for _, playerID := range tier {
			payouts[playerID] += share
		}
		pos = end
	}
	return payouts
}

// chainBonuses 某家酒店在指定规模下的红利分配
func chainBonuses(state entities.GameState, chain entities.ChainName, size int) map[string]int {
	holders := DetermineStockholders(state.Players, chain)
	bonus := utils.CalculateStockholderBonus(chain, size, state.Mode)
	return PayoutBonuses(holders, bonus.Amounts(state.Mode))
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
