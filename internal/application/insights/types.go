package insights

import (
	"context"
	"encoding/json"
	"strconv"
)

// 洞察來源，用於監控與除錯。
const (
	SourceLLM      = "llm"
	SourceRules    = "rules"
	SourceFallback = "fallback"
)

// Summarizer 以 LLM 將排名摘要轉成洞察 JSON。
type Summarizer interface {
	Summarize(ctx context.Context, system, prompt string) (string, error)
}

// PerformanceCard 為成效卡片。
type PerformanceCard struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Metric      string `json:"metric"`
	Color       string `json:"color"`
}

// MarketingDetail 為行銷卡片中的類別明細。
type MarketingDetail struct {
	Category string     `json:"category"`
	AvgRank  flexString `json:"avgRank"`
	Status   string     `json:"status"`
}

// MarketingCard 為行銷建議卡片。
type MarketingCard struct {
	Type            string            `json:"type"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Details         []MarketingDetail `json:"details"`
	Recommendations []string          `json:"recommendations"`
	Color           string            `json:"color"`
}

// ChartPoint 為週別成效圖的一點。
type ChartPoint struct {
	Week     string  `json:"week"`
	AvgRank  float64 `json:"avgRank"`
	Top5Rate float64 `json:"top5Rate"`
}

// CategoryGrowth 為類別成長率。
type CategoryGrowth struct {
	Category string  `json:"category"`
	Growth   float64 `json:"growth"`
	Color    string  `json:"color"`
}

// Insights 為儀表板洞察 payload。
type Insights struct {
	PerformanceCards []PerformanceCard `json:"performanceCards"`
	MarketingCards   []MarketingCard   `json:"marketingCards"`
	PerformanceChart []ChartPoint      `json:"performanceChart"`
	CategoryTrend    []CategoryGrowth  `json:"categoryTrend"`
	LastUpdated      string            `json:"lastUpdated"`

	Source string `json:"-"`
}

// flexString 接受字串或數字，LLM 輸出常混用兩者。
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(strconv.FormatFloat(n, 'f', -1, 64))
	return nil
}
