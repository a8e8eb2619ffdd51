package insights

import (
	"ranking-insight/internal/application/analysis"
	"ranking-insight/internal/domain/ranking"
)

// DashboardStats 為首頁統計卡片。
type DashboardStats struct {
	TotalProducts int     `json:"total_products"`
	FocusProducts int     `json:"focus_products"`
	Top5Products  int     `json:"top5_products"`
	AverageRank   float64 `json:"average_rank"`
}

// Dashboard 以商品目錄數量與各類別寬表計算首頁統計。
func Dashboard(totalProducts, focusProducts int, tables map[string]ranking.RankTable) DashboardStats {
	out := DashboardStats{TotalProducts: totalProducts, FocusProducts: focusProducts}
	var means []float64
	for _, table := range tables {
		for _, row := range table.FocusRows() {
			avg, ok := analysis.Mean(row.Values())
			if !ok {
				continue
			}
			means = append(means, avg)
			if avg <= 5 {
				out.Top5Products++
			}
		}
	}
	if len(means) > 0 {
		sum := 0.0
		for _, m := range means {
			sum += m
		}
		out.AverageRank = analysis.Round1(sum / float64(len(means)))
	}
	return out
}
