package insights

import (
	"fmt"
	"math"
	"strings"

	"ranking-insight/internal/application/analysis"
	"ranking-insight/internal/domain/ranking"
)

const (
	rapidChangeThreshold = 3
	competitorSample     = 10
	digestTrendPoints    = 14
)

// RapidChange 為一週內排名變動達門檻的商品。
type RapidChange struct {
	Category    string
	ProductName string
	WeekAgo     int
	Current     int
}

// Delta 為正代表排名變好。
func (c RapidChange) Delta() int { return c.WeekAgo - c.Current }

func (c RapidChange) String() string {
	kind := "rapid rise"
	if c.Delta() < 0 {
		kind = "rapid drop"
	}
	return fmt.Sprintf("%s: %s #%d -> #%d (%+d)", kind, c.ProductName, c.WeekAgo, c.Current, c.Delta())
}

// weekAgo 取七筆前的排名，不足七筆時取第一筆。
func weekAgo(values []int) int {
	if len(values) >= 7 {
		return values[len(values)-7]
	}
	return values[0]
}

// RapidChanges 找出重點商品中一週內變動 >= 3 名者。
func RapidChanges(tables map[string]ranking.RankTable) []RapidChange {
	var out []RapidChange
	for _, category := range orderedCategories(tables) {
		for _, row := range tables[category].FocusRows() {
			values := row.Values()
			if len(values) == 0 {
				continue
			}
			c := RapidChange{
				Category:    category,
				ProductName: row.ProductName,
				WeekAgo:     weekAgo(values),
				Current:     values[len(values)-1],
			}
			if abs(c.Delta()) >= rapidChangeThreshold {
				out = append(out, c)
			}
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// digestTrend 需 14 筆以上才比較兩週平均。
func digestTrend(values []int) (string, float64) {
	if len(values) < digestTrendPoints {
		return ranking.TrendInsufficient, 0
	}
	return analysis.TrendWithValue(values)
}

// Digest 將各類別寬表整理成文字摘要，作為 LLM 的輸入。
func Digest(tables map[string]ranking.RankTable) string {
	var body []string
	var focusCount, top5Count int
	var allFocus, allCompetitor []int

	for _, category := range orderedCategories(tables) {
		table := tables[category]
		focus := table.FocusRows()
		if len(focus) == 0 {
			continue
		}
		body = append(body, fmt.Sprintf("\n### %s", ranking.TitleCategory(category)))

		var catFocus []int
		for _, row := range focus {
			values := row.Values()
			if len(values) == 0 {
				continue
			}
			focusCount++
			catFocus = append(catFocus, values...)
			allFocus = append(allFocus, values...)

			stats, _ := analysis.Summarize(values, analysis.Trend)
			avg, _ := analysis.Mean(values)
			if avg <= 5 {
				top5Count++
			}
			trend, value := digestTrend(values)
			body = append(body, fmt.Sprintf("- %s: current #%d, avg #%.1f, best #%d, worst #%d, TOP5 %d days, trend: %s(%+.1f)",
				row.ProductName, stats.CurrentRank, avg, stats.BestRank, stats.WorstRank, stats.Top5Days, trend, value))

			change := RapidChange{ProductName: row.ProductName, WeekAgo: weekAgo(values), Current: stats.CurrentRank}
			if abs(change.Delta()) >= rapidChangeThreshold {
				body = append(body, "  ! "+change.String())
			}
		}

		competitors := table.CompetitorRows()
		if len(competitors) > competitorSample {
			competitors = competitors[:competitorSample]
		}
		var catCompetitor []int
		if len(competitors) > 0 {
			body = append(body, "\n  Competitors (TOP 10):")
			for _, row := range competitors {
				values := row.Values()
				if len(values) == 0 {
					continue
				}
				catCompetitor = append(catCompetitor, values...)
				allCompetitor = append(allCompetitor, values...)
				avg, _ := analysis.Mean(values)
				body = append(body, fmt.Sprintf("  - %s (%s): current #%d, avg #%.1f",
					truncate(row.ProductName, 40), row.Brand, values[len(values)-1], avg))
			}
		}

		if gap, ok := analysis.CompetitorGap(catFocus, catCompetitor); ok {
			focusAvg, _ := analysis.Mean(catFocus)
			compAvg, _ := analysis.Mean(catCompetitor)
			if gap > 0 {
				body = append(body, fmt.Sprintf("\n  Position: focus avg #%.1f vs competitor TOP10 avg #%.1f, ahead by %.1f", focusAvg, compAvg, gap))
			} else {
				body = append(body, fmt.Sprintf("\n  Position: focus avg #%.1f vs competitor TOP10 avg #%.1f, behind by %.1f", focusAvg, compAvg, math.Abs(gap)))
			}
		}

		share := 0
		if days := table.Days(); days > 0 {
			for _, row := range focus {
				if v, ok := row.RankOn(days); ok && v <= 10 {
					share++
				}
			}
		}
		body = append(body, fmt.Sprintf("  TOP 10 share: %d / 10 (%d%%)", share, share*10))
	}

	head := []string{"## Overview", fmt.Sprintf("- Focus products: %d", focusCount)}
	if focusCount > 0 {
		head = append(head, fmt.Sprintf("- TOP 5 products: %d (%.0f%%)", top5Count, float64(top5Count)/float64(focusCount)*100))
	} else {
		head = append(head, "- TOP 5 products: 0")
	}
	if avg, ok := analysis.Mean(allFocus); ok {
		head = append(head, fmt.Sprintf("- Overall average rank: #%.1f", avg))
	}
	if gap, ok := analysis.CompetitorGap(allFocus, allCompetitor); ok {
		focusAvg, _ := analysis.Mean(allFocus)
		compAvg, _ := analysis.Mean(allCompetitor)
		status := "ahead"
		if gap <= 0 {
			status = "behind"
		}
		head = append(head, fmt.Sprintf("- Competitive position: focus #%.1f vs competitors #%.1f (%s, %.1f gap)", focusAvg, compAvg, status, math.Abs(gap)))
	}

	return strings.Join(append(head, body...), "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
