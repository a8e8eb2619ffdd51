package ranking

import (
	"math/rand/v2"
	"sync"
	"time"

	domain "ranking-insight/internal/domain/ranking"
)

// Generator 依走勢型態產生原始（可能重複、可能超過 N 的）排名。
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator 建立產生器；seed 為 0 時以目前時間為種子。
func NewGenerator(seed uint64) *Generator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// between 回傳 [lo, hi] 內的均勻整數，呼叫端需持有鎖。
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

// RankFor 計算 dayIndex（0 起算）當天的原始排名。
func (g *Generator) RankFor(s domain.Scenario, dayIndex, totalDays int) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	denom := totalDays - 1
	if denom < 1 {
		denom = 1
	}
	progress := float64(dayIndex) / float64(denom)

	switch s {
	case domain.ScenarioBestSeller:
		return g.between(1, 5)
	case domain.ScenarioRisingStar:
		const startRank = 50
		endRank := g.between(5, 15)
		current := int(startRank - float64(startRank-endRank)*progress)
		rank := current + g.between(-3, 3)
		if rank < 1 {
			return 1
		}
		return rank
	case domain.ScenarioStable:
		return g.between(15, 25)
	case domain.ScenarioDeclining:
		const startRank, endRank = 10, 40
		current := int(startRank + float64(endRank-startRank)*progress)
		rank := current + g.between(-2, 5)
		if rank > 100 {
			return 100
		}
		return rank
	case domain.ScenarioCompetitorShock:
		switch {
		case progress < 0.3:
			return g.between(10, 15)
		case progress < 0.6:
			return g.between(30, 50)
		default:
			return g.between(15, 25)
		}
	case domain.ScenarioNewEntry:
		switch {
		case progress < 0.2:
			return g.between(80, 100)
		case progress < 0.5:
			return g.between(40, 60)
		default:
			return g.between(20, 35)
		}
	}
	return 50
}

// ScenarioFor 指派商品的走勢：已知重點商品用固定對應，其他重點商品為 STABLE，競品隨機抽選。
func (g *Generator) ScenarioFor(p domain.Product) domain.Scenario {
	if p.IsFocusBrand {
		if s, ok := domain.FocusScenarios[p.ProductName]; ok {
			return s
		}
		return domain.ScenarioStable
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return domain.CompetitorScenarios[g.rng.IntN(len(domain.CompetitorScenarios))]
}
