package analysis

import (
	"math"

	"ranking-insight/internal/domain/ranking"
)

const (
	// trendWindow 為近期/前期比較的天數。
	trendWindow = 7
	// minTrendPoints 少於此筆數視為資料不足。
	minTrendPoints = 7
)

// Round1 取到小數第一位，剛好在一半時取偶數（2.25 -> 2.2）。
func Round1(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}

func mean(ranks []int) float64 {
	sum := 0
	for _, r := range ranks {
		sum += r
	}
	return float64(sum) / float64(len(ranks))
}

// Avg 回傳平均排名（小數一位）；空序列回傳 ok=false。
func Avg(ranks []int) (float64, bool) {
	if len(ranks) == 0 {
		return 0, false
	}
	return Round1(mean(ranks)), true
}

// Mean 回傳未四捨五入的平均；空序列回傳 ok=false。
func Mean(ranks []int) (float64, bool) {
	if len(ranks) == 0 {
		return 0, false
	}
	return mean(ranks), true
}

// Best 回傳最佳（最小）排名。
func Best(ranks []int) (int, bool) {
	if len(ranks) == 0 {
		return 0, false
	}
	best := ranks[0]
	for _, r := range ranks[1:] {
		if r < best {
			best = r
		}
	}
	return best, true
}

// Worst 回傳最差（最大）排名。
func Worst(ranks []int) (int, bool) {
	if len(ranks) == 0 {
		return 0, false
	}
	worst := ranks[0]
	for _, r := range ranks[1:] {
		if r > worst {
			worst = r
		}
	}
	return worst, true
}

// TopKDays 計算排名 <= k 的天數。
func TopKDays(ranks []int, k int) int {
	n := 0
	for _, r := range ranks {
		if r <= k {
			n++
		}
	}
	return n
}

// Trend 判斷走勢：少於 7 筆為資料不足；14 筆以上比較最近 7 天與前 7 天平均；其餘比較首尾。
func Trend(ranks []int) string {
	t, _ := TrendWithValue(ranks)
	return t
}

// TrendWithValue 同 Trend，另回傳改善幅度（正值代表排名變好）。
func TrendWithValue(ranks []int) (string, float64) {
	n := len(ranks)
	if n < minTrendPoints {
		return ranking.TrendInsufficient, 0
	}
	var prev, recent float64
	if n >= 2*trendWindow {
		recent = mean(ranks[n-trendWindow:])
		prev = mean(ranks[n-2*trendWindow : n-trendWindow])
	} else {
		prev = float64(ranks[0])
		recent = float64(ranks[n-1])
	}
	value := Round1(prev - recent)
	switch {
	case recent < prev:
		return ranking.TrendRising, value
	case recent > prev:
		return ranking.TrendDeclining, value
	default:
		return ranking.TrendStable, 0
	}
}

// EndpointTrend 只比較首尾：最後一筆小於第一筆為上升，其餘（含持平）皆為下降。
func EndpointTrend(ranks []int) string {
	if len(ranks) == 0 {
		return ranking.TrendInsufficient
	}
	if ranks[len(ranks)-1] < ranks[0] {
		return ranking.TrendRising
	}
	return ranking.TrendDeclining
}

// CompetitorGap 回傳競品平均減去重點品牌平均；正值代表重點品牌領先。
func CompetitorGap(focus, competitor []int) (float64, bool) {
	if len(focus) == 0 || len(competitor) == 0 {
		return 0, false
	}
	return mean(competitor) - mean(focus), true
}

// Summarize 由排名序列計算 SummaryStats，trend 決定走勢規則；空序列回傳 ok=false。
func Summarize(ranks []int, trend func([]int) string) (ranking.SummaryStats, bool) {
	if len(ranks) == 0 {
		return ranking.SummaryStats{}, false
	}
	if trend == nil {
		trend = Trend
	}
	avg, _ := Avg(ranks)
	best, _ := Best(ranks)
	worst, _ := Worst(ranks)
	return ranking.SummaryStats{
		AvgRank:     avg,
		BestRank:    best,
		WorstRank:   worst,
		CurrentRank: ranks[len(ranks)-1],
		Trend:       trend(ranks),
		Top5Days:    TopKDays(ranks, 5),
		Top10Days:   TopKDays(ranks, 10),
	}, true
}

// FocusSummary 對寬表中每個重點品牌商品計算摘要，沒有任何排名的商品略過。
func FocusSummary(table ranking.RankTable, trend func([]int) string) map[string]ranking.SummaryStats {
	out := make(map[string]ranking.SummaryStats)
	for _, row := range table.FocusRows() {
		if stats, ok := Summarize(row.Values(), trend); ok {
			out[row.ProductName] = stats
		}
	}
	return out
}

// PooledRanks 將多列的有效排名串接起來。
func PooledRanks(rows []ranking.TableRow) []int {
	var out []int
	for _, r := range rows {
		out = append(out, r.Values()...)
	}
	return out
}
