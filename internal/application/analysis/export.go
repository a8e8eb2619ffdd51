package analysis

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"ranking-insight/internal/domain/ranking"
)

// ExportTableCSV 將寬表匯出為 CSV 字串，尾端附上各列的摘要欄位。
// 具體儲存/傳輸方式交由上層決定。
func ExportTableCSV(table ranking.RankTable) (string, error) {
	if table.Empty() {
		return "", fmt.Errorf("export %s: %w", table.Category, ranking.ErrNotFound)
	}

	days := table.Days()
	var sb strings.Builder
	cw := csv.NewWriter(&sb)
	header := []string{"product_id", "product_name", "brand", "is_focus_brand", "price"}
	for d := 1; d <= days; d++ {
		header = append(header, fmt.Sprintf("day_%d", d))
	}
	header = append(header, "avg_rank", "best_rank", "worst_rank", "top5_days", "top10_days")
	if err := cw.Write(header); err != nil {
		return "", err
	}

	for _, r := range table.Rows {
		record := []string{
			r.ProductID,
			r.ProductName,
			r.Brand,
			strconv.FormatBool(r.IsFocusBrand),
			formatFloat(r.Price),
		}
		for d := 1; d <= days; d++ {
			if v, ok := r.RankOn(d); ok {
				record = append(record, strconv.Itoa(v))
			} else {
				record = append(record, "")
			}
		}
		if stats, ok := Summarize(r.Values(), EndpointTrend); ok {
			record = append(record,
				formatFloat(stats.AvgRank),
				strconv.Itoa(stats.BestRank),
				strconv.Itoa(stats.WorstRank),
				strconv.Itoa(stats.Top5Days),
				strconv.Itoa(stats.Top10Days),
			)
		} else {
			record = append(record, "", "", "", "", "")
		}
		if err := cw.Write(record); err != nil {
			return "", err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
