package ranking

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	domain "ranking-insight/internal/domain/ranking"
)

// Stats 為歷史資料庫的概況。
type Stats struct {
	TotalDates     int      `json:"total_dates"`
	Categories     []string `json:"categories"`
	AvailableDates []string `json:"available_dates"`
	Provider       string   `json:"provider"`
	IsLiveData     bool     `json:"is_live_data"`
}

// Service 串接資料來源與歷史資料，收集動作同一時間只允許一個。
type Service struct {
	history    *History
	provider   Provider
	builder    *TableBuilder
	categories []string
	now        func() time.Time

	collectMu sync.Mutex
}

// NewService 建立排名服務；未知類別會被略過，categories 為空時使用全部已知類別。
func NewService(history *History, provider Provider, builder *TableBuilder, categories []string) *Service {
	known := make([]string, 0, len(categories))
	for _, c := range categories {
		if !domain.IsKnownCategory(c) {
			log.Printf("ranking service skip unknown category=%s", c)
			continue
		}
		known = append(known, c)
	}
	categories = known
	if len(categories) == 0 {
		categories = domain.Categories
	}
	return &Service{
		history:    history,
		provider:   provider,
		builder:    builder,
		categories: categories,
		now:        time.Now,
	}
}

// Provider 回傳目前使用的資料來源。
func (s *Service) Provider() Provider { return s.provider }

// History 回傳歷史資料查詢器。
func (s *Service) History() *History { return s.history }

// Categories 回傳服務涵蓋的類別。
func (s *Service) Categories() []string { return s.categories }

// CollectToday 取得今日快照並逐類別寫入，單一類別失敗不影響其他類別。
func (s *Service) CollectToday(ctx context.Context) (map[string]int, error) {
	s.collectMu.Lock()
	defer s.collectMu.Unlock()

	snapshot, err := s.provider.Today(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch today from %s: %w", s.provider.Name(), err)
	}
	today := domain.DateOnly(s.now())
	saved := make(map[string]int, len(snapshot))
	var failed []string
	for _, category := range s.categories {
		rows, ok := snapshot[category]
		if !ok || len(rows) == 0 {
			log.Printf("collect skip category=%s reason=no_rows", category)
			continue
		}
		n, err := s.history.Save(ctx, today, category, rows)
		if err != nil {
			log.Printf("collect failed category=%s err=%v", category, err)
			failed = append(failed, category)
			continue
		}
		saved[category] = n
		log.Printf("collect done category=%s saved=%d", category, n)
	}
	if len(saved) == 0 && len(failed) > 0 {
		return saved, fmt.Errorf("collect failed for %s", strings.Join(failed, ","))
	}
	return saved, nil
}

// Backfill 以模擬器產生 days 天的歷史，day_i 存於 today-(days-i)。
func (s *Service) Backfill(ctx context.Context, days int) (map[string]int, error) {
	if days <= 0 {
		return nil, &domain.ValidationError{Reasons: []string{"days must be positive"}}
	}
	s.collectMu.Lock()
	defer s.collectMu.Unlock()

	start := domain.DateOnly(s.now()).AddDate(0, 0, -(days - 1))
	saved := make(map[string]int, len(s.categories))
	for _, category := range s.categories {
		table := s.builder.Build(category, days, &start)
		if table.Empty() {
			continue
		}
		total := 0
		for day := 1; day <= days; day++ {
			if err := ctx.Err(); err != nil {
				return saved, err
			}
			date := start.AddDate(0, 0, day-1)
			n, err := s.history.Save(ctx, date, category, RecordsForDay(table, day, date))
			if err != nil {
				return saved, err
			}
			total += n
		}
		saved[category] = total
		log.Printf("backfill done category=%s days=%d saved=%d", category, days, total)
	}
	return saved, nil
}

// Rankings 優先使用歷史寬表，該類別沒有歷史時改用資料來源。
func (s *Service) Rankings(ctx context.Context, category string, days int) (domain.RankTable, error) {
	if !domain.IsKnownCategory(category) {
		return domain.RankTable{}, fmt.Errorf("%w: %s", domain.ErrUnknownCategory, category)
	}
	table, err := s.history.AsWideTable(ctx, category, days)
	if err != nil {
		return domain.RankTable{}, err
	}
	if !table.Empty() {
		return table, nil
	}
	return s.provider.Rankings(ctx, category, days)
}

// AllRankings 回傳每個類別的寬表，空表略過。
func (s *Service) AllRankings(ctx context.Context, days int) (map[string]domain.RankTable, error) {
	out := make(map[string]domain.RankTable, len(s.categories))
	for _, c := range s.categories {
		t, err := s.Rankings(ctx, c, days)
		if err != nil {
			return nil, err
		}
		if !t.Empty() {
			out[c] = t
		}
	}
	return out, nil
}

// FocusSummary 回傳類別內重點品牌商品的摘要。
func (s *Service) FocusSummary(ctx context.Context, category string, days int) (map[string]domain.SummaryStats, error) {
	return s.history.FocusSummary(ctx, category, days)
}

// ProductHistory 回傳商品歷史，查無資料時為 nil。
func (s *Service) ProductHistory(ctx context.Context, productName string, days int) (*domain.ProductHistory, error) {
	return s.history.ProductHistory(ctx, productName, days)
}

// Stats 回傳資料庫概況與資料來源資訊。
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	meta, err := s.history.Metadata(ctx)
	if err != nil {
		return Stats{}, err
	}
	dates := map[string]struct{}{}
	for _, list := range meta.DatesByCat {
		for _, d := range list {
			dates[d] = struct{}{}
		}
	}
	available := make([]string, 0, len(dates))
	for d := range dates {
		available = append(available, d)
	}
	sort.Strings(available)
	cats := meta.Categories
	if cats == nil {
		cats = []string{}
	}
	return Stats{
		TotalDates:     len(available),
		Categories:     cats,
		AvailableDates: available,
		Provider:       s.provider.Name(),
		IsLiveData:     s.provider.IsLive(),
	}, nil
}

// HasTodayData 表示今天是否已有任何類別的紀錄。
func (s *Service) HasTodayData(ctx context.Context) (bool, error) {
	return s.history.HasData(ctx, s.now(), "")
}

// EnsureTodayData 今天尚無資料時執行收集，回傳是否有收集。
func (s *Service) EnsureTodayData(ctx context.Context) (bool, error) {
	ok, err := s.HasTodayData(ctx)
	if err != nil {
		return false, err
	}
	if ok {
		return false, nil
	}
	if _, err := s.CollectToday(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// ChartData 以第一個類別的天數為準，輸出每天各重點商品的排名。
func (s *Service) ChartData(ctx context.Context, days int) ([]map[string]interface{}, error) {
	tables, err := s.AllRankings(ctx, days)
	if err != nil {
		return nil, err
	}
	var ordered []domain.RankTable
	for _, c := range s.categories {
		if t, ok := tables[c]; ok {
			ordered = append(ordered, t)
		}
	}
	if len(ordered) == 0 {
		return []map[string]interface{}{}, nil
	}
	n := ordered[0].Days()
	points := make([]map[string]interface{}, 0, n)
	for day := 1; day <= n; day++ {
		point := map[string]interface{}{"date": fmt.Sprintf("Day %d", day)}
		for _, t := range ordered {
			for _, row := range t.FocusRows() {
				key := strings.ReplaceAll(row.ProductName, " ", "_")
				if v, ok := row.RankOn(day); ok {
					point[key] = v
				} else {
					point[key] = nil
				}
			}
		}
		points = append(points, point)
	}
	return points, nil
}
