package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"ranking-insight/internal/application/analysis"
	"ranking-insight/internal/application/insights"
	"ranking-insight/internal/application/reports"
	"ranking-insight/internal/domain/ranking"
	"ranking-insight/internal/infrastructure/metrics"
)

// Collect 收集今日排名並寫入歷史。
func (a *App) Collect(ctx context.Context) (map[string]int, error) {
	start := time.Now()
	saved, err := a.Ranking.CollectToday(ctx)
	if err != nil {
		metrics.CollectRunsTotal.WithLabelValues("error").Inc()
		return saved, err
	}
	total := 0
	for cat, n := range saved {
		metrics.RecordsSavedTotal.WithLabelValues(cat).Add(float64(n))
		total += n
	}
	metrics.CollectRunsTotal.WithLabelValues("ok").Inc()
	log.Printf("collect done provider=%s categories=%d saved=%d duration=%s",
		a.Ranking.Provider().Name(), len(saved), total, time.Since(start).Round(time.Millisecond))
	return saved, nil
}

// Backfill 以模擬資料補齊過去 days 天的歷史。
func (a *App) Backfill(ctx context.Context, days int) (map[string]int, error) {
	saved, err := a.Ranking.Backfill(ctx, days)
	if err != nil {
		return saved, err
	}
	for cat, n := range saved {
		metrics.RecordsSavedTotal.WithLabelValues(cat).Add(float64(n))
	}
	log.Printf("backfill done days=%d categories=%d", days, len(saved))
	return saved, nil
}

// Tables 回傳 days 天內各類別的寬表，days <= 0 使用預設值。
func (a *App) Tables(ctx context.Context, days int) (map[string]ranking.RankTable, error) {
	if days <= 0 {
		days = a.Config.Ranking.DefaultDays
	}
	return a.Ranking.AllRankings(ctx, days)
}

// RefreshInsights 重新計算洞察並更新快取。
func (a *App) RefreshInsights(ctx context.Context) (insights.Insights, error) {
	tables, err := a.Tables(ctx, 0)
	if err != nil {
		return insights.Insights{}, fmt.Errorf("load rankings: %w", err)
	}
	out := a.Analyzer.Analyze(ctx, tables)
	metrics.InsightsTotal.WithLabelValues(out.Source).Inc()
	log.Printf("insights refreshed source=%s cards=%d", out.Source, len(out.PerformanceCards)+len(out.MarketingCards))
	return out, nil
}

// Insights 回傳快取的洞察，尚未計算時即時產生。
func (a *App) Insights(ctx context.Context) (insights.Insights, error) {
	if cached, ok := a.Analyzer.Latest(); ok {
		return cached, nil
	}
	return a.RefreshInsights(ctx)
}

// GenerateReport 以預設天數產生 Excel 報表。
func (a *App) GenerateReport(ctx context.Context) (reports.Report, error) {
	tables, err := a.Tables(ctx, 0)
	if err != nil {
		return reports.Report{}, fmt.Errorf("load rankings: %w", err)
	}
	rep, err := a.Reports.Generate(ctx, tables)
	if err != nil {
		return reports.Report{}, err
	}
	metrics.ReportsGeneratedTotal.Inc()
	return rep, nil
}

// Summary 以文字模板輸出單一類別的重點品牌摘要與急升急降提醒。
func (a *App) Summary(ctx context.Context, category string, days int) (string, error) {
	if days <= 0 {
		days = a.Config.Ranking.DefaultDays
	}
	table, err := a.Ranking.Rankings(ctx, category, days)
	if err != nil {
		return "", err
	}
	summary := analysis.FocusSummary(table, analysis.EndpointTrend)
	alerts := insights.RapidChanges(map[string]ranking.RankTable{category: table})
	title := fmt.Sprintf("%s %s (%d days)", a.Catalog.FocusBrand(), ranking.CategoryLabel(category), days)
	return a.Renderer.Summary(title, summary, alerts)
}

// SendDigest 將各類別摘要推送到 Telegram，未設定時略過。
func (a *App) SendDigest(ctx context.Context) (bool, error) {
	if a.Notifier == nil {
		return false, nil
	}
	days := a.Config.Ranking.DefaultDays
	var msg string
	for _, cat := range a.Ranking.Categories() {
		text, err := a.Summary(ctx, cat, days)
		if err != nil {
			log.Printf("digest skipped category=%s err=%v", cat, err)
			continue
		}
		msg += text + "\n"
	}
	if msg == "" {
		return false, nil
	}
	if err := a.Notifier.Notify(ctx, msg); err != nil {
		return false, fmt.Errorf("notify: %w", err)
	}
	return true, nil
}
