package ranking

import (
	"sort"

	domain "ranking-insight/internal/domain/ranking"
)

// DenseRank 將原始分數轉成 1..N 的密集排名；分數相同時先出現者在前。
func DenseRank(raw []int) []int {
	order := make([]int, len(raw))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return raw[order[a]] < raw[order[b]]
	})
	out := make([]int, len(raw))
	for pos, idx := range order {
		out[idx] = pos + 1
	}
	return out
}

// RerankColumns 逐日重新排名，讓每個 day 欄位成為 1..N 的排列。
func RerankColumns(rows []domain.TableRow) {
	if len(rows) == 0 {
		return
	}
	days := len(rows[0].Ranks)
	col := make([]int, len(rows))
	for d := 0; d < days; d++ {
		for i := range rows {
			col[i] = rows[i].Ranks[d]
		}
		dense := DenseRank(col)
		for i := range rows {
			rows[i].Ranks[d] = dense[i]
		}
	}
}
