package insights

import (
	"fmt"
	"strings"

	"ranking-insight/internal/domain/ranking"
)

// GenerateInsight 產生單一商品的簡短排名報告。
func GenerateInsight(productName string, stats ranking.SummaryStats) string {
	trend := "declining"
	if stats.Trend == ranking.TrendRising {
		trend = "rising"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] ranking report\n\n", productName)
	fmt.Fprintf(&b, "- Average rank: #%.1f\n", stats.AvgRank)
	fmt.Fprintf(&b, "- Best rank: #%d\n", stats.BestRank)
	fmt.Fprintf(&b, "- Current rank: #%d\n", stats.CurrentRank)
	fmt.Fprintf(&b, "- Days in TOP 5: %d\n", stats.Top5Days)
	fmt.Fprintf(&b, "- Days in TOP 10: %d\n", stats.Top10Days)
	fmt.Fprintf(&b, "- Trend: %s", trend)

	if stats.BestRank <= 3 {
		fmt.Fprintf(&b, "\n%s is a best seller that reached the category TOP 3.", productName)
	}
	if stats.Top5Days >= 7 {
		fmt.Fprintf(&b, "\nHeld the TOP 5 for %d days.", stats.Top5Days)
	}
	if stats.Trend == ranking.TrendRising {
		b.WriteString("\nRanking is on an upward trend.")
	}
	return b.String()
}
