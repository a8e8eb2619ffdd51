package analysis

import (
	"fmt"
	"math"

	"ranking-insight/internal/domain/ranking"
)

const (
	chartWeeks  = 4
	chartWindow = 30
)

// WeekBucket 為週別圖表的一格。
type WeekBucket struct {
	Week     string  `json:"week"`
	AvgRank  float64 `json:"avgRank"`
	Top5Rate float64 `json:"top5Rate"`
}

// WeekRange 回傳第 w 週（從 0 起算）涵蓋的 day 欄位，含頭尾。
func WeekRange(w int) (start, end int) {
	start = w*7 + 1
	end = (w + 1) * 7
	if end > chartWindow {
		end = chartWindow
	}
	return start, end
}

// WeeklyBuckets 將 30 天窗格切成 4 週，計算各週平均排名與 TOP5 命中率（百分比）。
func WeeklyBuckets(rows []ranking.TableRow) []WeekBucket {
	out := make([]WeekBucket, 0, chartWeeks)
	for w := 0; w < chartWeeks; w++ {
		start, end := WeekRange(w)
		var ranks []int
		for _, row := range rows {
			for d := start; d <= end; d++ {
				if v, ok := row.RankOn(d); ok {
					ranks = append(ranks, v)
				}
			}
		}
		b := WeekBucket{Week: fmt.Sprintf("Week %d", w+1)}
		if len(ranks) > 0 {
			b.AvgRank = Round1(mean(ranks))
			b.Top5Rate = math.Round(float64(TopKDays(ranks, 5)) / float64(len(ranks)) * 100)
		}
		out = append(out, b)
	}
	return out
}
