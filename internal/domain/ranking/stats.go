package ranking

// 趨勢標籤。
const (
	TrendRising       = "rising"
	TrendDeclining    = "declining"
	TrendStable       = "stable"
	TrendInsufficient = "insufficient data"
)

// SummaryStats 為一段排名序列的衍生統計。
type SummaryStats struct {
	AvgRank     float64 `json:"avg_rank"`
	BestRank    int     `json:"best_rank"`
	WorstRank   int     `json:"worst_rank"`
	CurrentRank int     `json:"current_rank"`
	Trend       string  `json:"trend"`
	Top5Days    int     `json:"top5_days"`
	Top10Days   int     `json:"top10_days"`
}

// ProductHistory 為單一商品在區間內的排名歷史。
type ProductHistory struct {
	ProductName  string   `json:"product_name"`
	Category     string   `json:"category"`
	Brand        string   `json:"brand"`
	IsFocusBrand bool     `json:"is_focus_brand"`
	Rankings     []int    `json:"rankings"`
	Dates        []string `json:"dates"`
	SummaryStats
}
