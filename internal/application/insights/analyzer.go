package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"ranking-insight/internal"
	"ranking-insight/internal/application/analysis"
	"ranking-insight/internal/domain/ranking"
)

const systemPrompt = `You are a global beauty market analyst.
You analyse Amazon US beauty ranking data for the focus brand and produce marketing insights:
ranking performance, strengths and weaknesses against competitors, and concrete marketing actions.
Respond with pure JSON only, no other text.`

var categoryColors = map[string]string{
	ranking.CategoryLipCare:    "#E4007F",
	ranking.CategorySkincare:   "#4285F4",
	ranking.CategoryLipMakeup:  "#4CAF50",
	ranking.CategoryFacePowder: "#FF9800",
}

const defaultColor = "#666666"

// Analyzer 產生儀表板洞察；有 Summarizer 時走 LLM，否則走規則。
type Analyzer struct {
	summarizer Summarizer
	now        func() time.Time

	mu   sync.RWMutex
	last *Insights
}

// NewAnalyzer 建立分析器，summarizer 可為 nil（含 typed nil），此時使用規則產生。
func NewAnalyzer(summarizer Summarizer) *Analyzer {
	if internal.IsNil(summarizer) {
		summarizer = nil
	}
	return &Analyzer{summarizer: summarizer, now: time.Now}
}

// Latest 回傳最近一次的分析結果。
func (a *Analyzer) Latest() (Insights, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.last == nil {
		return Insights{}, false
	}
	return *a.last, true
}

// Analyze 依各類別寬表產生洞察，結果同時存為 Latest。
func (a *Analyzer) Analyze(ctx context.Context, tables map[string]ranking.RankTable) Insights {
	updated := a.now().Format(time.RFC3339)

	var out Insights
	if a.summarizer != nil {
		out = a.fromLLM(ctx, tables)
	} else {
		out = RuleBased(tables)
	}
	out.LastUpdated = updated

	a.mu.Lock()
	a.last = &out
	a.mu.Unlock()
	return out
}

func (a *Analyzer) fromLLM(ctx context.Context, tables map[string]ranking.RankTable) Insights {
	raw, err := a.summarizer.Summarize(ctx, systemPrompt, buildPrompt(Digest(tables)))
	if err != nil {
		log.Printf("insight summarizer failed err=%v", err)
		return Fallback()
	}
	var out Insights
	if err := json.Unmarshal([]byte(stripFences(raw)), &out); err != nil {
		log.Printf("insight payload decode failed err=%v", err)
		return Fallback()
	}
	out.Source = SourceLLM
	return out
}

func buildPrompt(digest string) string {
	var b strings.Builder
	b.WriteString("Analyse the following ranking data and produce marketing insights.\n\n")
	b.WriteString("## 30-day ranking summary\n")
	b.WriteString(digest)
	b.WriteString("\n\n## Output\n")
	b.WriteString(`Return JSON with keys "performanceCards" (3 cards: best_seller, rising, achievement; fields type, title, description, metric, color), `)
	b.WriteString(`"marketingCards" (3 cards: competition, opportunity, action; fields type, title, description, details[{category, avgRank, status}], recommendations[], color), `)
	b.WriteString(`"performanceChart" (4 points {week, avgRank, top5Rate}) and "categoryTrend" ([{category, growth, color}]). `)
	b.WriteString("Use the real product names and numbers from the data.")
	return b.String()
}

// stripFences 移除 ```json 區塊標記。
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	parts := strings.Split(s, "```")
	if len(parts) < 2 {
		return s
	}
	body := strings.TrimSpace(parts[1])
	return strings.TrimSpace(strings.TrimPrefix(body, "json"))
}

// Fallback 為 LLM 失敗時的固定 payload。
func Fallback() Insights {
	chart := make([]ChartPoint, 0, 4)
	for w := 1; w <= 4; w++ {
		chart = append(chart, ChartPoint{Week: fmt.Sprintf("Week %d", w), AvgRank: 10, Top5Rate: 30})
	}
	return Insights{
		PerformanceCards: []PerformanceCard{{
			Type:        "best_seller",
			Title:       "Performance analysis",
			Description: "AI analysis failed. Showing default insights.",
			Metric:      "Retry required",
			Color:       "#4CAF50",
		}},
		MarketingCards: []MarketingCard{{
			Type:            "action",
			Title:           "Marketing suggestion",
			Description:     "Refresh insights to try again.",
			Details:         []MarketingDetail{},
			Recommendations: []string{"Refresh insights"},
			Color:           "#2196F3",
		}},
		PerformanceChart: chart,
		CategoryTrend:    []CategoryGrowth{},
		Source:           SourceFallback,
	}
}

// RuleBased 以固定規則產生洞察。
func RuleBased(tables map[string]ranking.RankTable) Insights {
	var cards []PerformanceCard
	if best, ok := bestSeller(tables); ok {
		cards = append(cards, PerformanceCard{
			Type:        "best_seller",
			Title:       "Best seller",
			Description: fmt.Sprintf("%s averages #%.1f in %s.", best.name, best.avg, best.category),
			Metric:      fmt.Sprintf("Best rank: #%d", best.best),
			Color:       "#4CAF50",
		})
	}
	total, top5 := top5Products(tables)
	rate := 0.0
	if total > 0 {
		rate = float64(top5) / float64(total) * 100
	}
	cards = append(cards, PerformanceCard{
		Type:        "achievement",
		Title:       "TOP 5 achievement",
		Description: fmt.Sprintf("%d focus products are in the TOP 5.", top5),
		Metric:      fmt.Sprintf("Rate: %.0f%%", rate),
		Color:       "#4285F4",
	})

	return Insights{
		PerformanceCards: cards,
		MarketingCards: []MarketingCard{{
			Type:        "action",
			Title:       "Marketing action plan",
			Description: "Strategy based on the current ranking data.",
			Details:     []MarketingDetail{},
			Recommendations: []string{
				"Run cross-selling campaigns around TOP 5 products",
				"Strengthen review marketing to build trust",
				"Optimise seasonal keyword ads",
			},
			Color: "#2196F3",
		}},
		PerformanceChart: performanceChart(tables),
		CategoryTrend:    CategoryTrend(tables),
		Source:           SourceRules,
	}
}

type bestProduct struct {
	name     string
	category string
	avg      float64
	best     int
}

func bestSeller(tables map[string]ranking.RankTable) (bestProduct, bool) {
	var out bestProduct
	found := false
	for _, category := range orderedCategories(tables) {
		for _, row := range tables[category].FocusRows() {
			values := row.Values()
			avg, ok := analysis.Mean(values)
			if !ok {
				continue
			}
			if !found || avg < out.avg {
				best, _ := analysis.Best(values)
				out = bestProduct{name: row.ProductName, category: ranking.TitleCategory(category), avg: avg, best: best}
				found = true
			}
		}
	}
	return out, found
}

// top5Products 回傳重點商品總數與平均排名 <= 5 的數量。
func top5Products(tables map[string]ranking.RankTable) (total, top5 int) {
	for _, table := range tables {
		for _, row := range table.FocusRows() {
			total++
			if avg, ok := analysis.Mean(row.Values()); ok && avg <= 5 {
				top5++
			}
		}
	}
	return total, top5
}

func performanceChart(tables map[string]ranking.RankTable) []ChartPoint {
	var rows []ranking.TableRow
	for _, category := range orderedCategories(tables) {
		rows = append(rows, tables[category].FocusRows()...)
	}
	buckets := analysis.WeeklyBuckets(rows)
	out := make([]ChartPoint, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, ChartPoint{Week: b.Week, AvgRank: b.AvgRank, Top5Rate: b.Top5Rate})
	}
	return out
}

// CategoryTrend 比較每個類別前 7 天與最後 7 天的重點商品平均排名，依成長率由高到低排序。
func CategoryTrend(tables map[string]ranking.RankTable) []CategoryGrowth {
	out := []CategoryGrowth{}
	for _, category := range orderedCategories(tables) {
		table := tables[category]
		days := table.Days()
		focus := table.FocusRows()
		if len(focus) == 0 || days < 7 {
			continue
		}
		var first, last []int
		for _, row := range focus {
			for d := 1; d <= 7; d++ {
				if v, ok := row.RankOn(d); ok {
					first = append(first, v)
				}
			}
			for d := days - 6; d <= days; d++ {
				if v, ok := row.RankOn(d); ok {
					last = append(last, v)
				}
			}
		}
		firstAvg, ok1 := analysis.Mean(first)
		lastAvg, ok2 := analysis.Mean(last)
		if !ok1 || !ok2 {
			continue
		}
		growth := 0.0
		if firstAvg > 0 {
			growth = math.Round((firstAvg - lastAvg) / firstAvg * 100)
		}
		color, ok := categoryColors[category]
		if !ok {
			color = defaultColor
		}
		out = append(out, CategoryGrowth{Category: ranking.TitleCategory(category), Growth: growth, Color: color})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Growth > out[j].Growth })
	return out
}

// orderedCategories 先依固定類別順序，其餘類別依字母排序。
func orderedCategories(tables map[string]ranking.RankTable) []string {
	out := make([]string, 0, len(tables))
	for _, c := range ranking.Categories {
		if _, ok := tables[c]; ok {
			out = append(out, c)
		}
	}
	var rest []string
	for c := range tables {
		if !ranking.IsKnownCategory(c) {
			rest = append(rest, c)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}
