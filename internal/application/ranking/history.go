package ranking

import (
	"context"
	"fmt"
	"sort"
	"time"

	"ranking-insight/internal/application/analysis"
	domain "ranking-insight/internal/domain/ranking"
)

// Repository 為排名歷史的持久化介面。
type Repository interface {
	// Save 取代 (date, category) 的所有紀錄，回傳寫入筆數。
	Save(ctx context.Context, date time.Time, category string, rows []domain.RankRecord) (int, error)
	// LoadRange 讀取 [start, end] 的紀錄，依日期、類別、名次排序；category 為空表示全部。
	LoadRange(ctx context.Context, start, end time.Time, category string) ([]domain.RankRecord, error)
	// ProductRange 以商品名稱精確比對，依日期排序。
	ProductRange(ctx context.Context, productName string, start, end time.Time) ([]domain.RankRecord, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	DistinctDates(ctx context.Context, category string) ([]time.Time, error)
	CountRecords(ctx context.Context) (int, error)
	HasData(ctx context.Context, date time.Time, category string) (bool, error)
}

// Metadata 為歷史資料的概況。
type Metadata struct {
	TotalRecords  int                 `json:"total_records"`
	Categories    []string            `json:"categories"`
	DatesByCat    map[string][]string `json:"dates_by_category"`
	DaysAvailable int                 `json:"days_available"`
	FirstDate     string              `json:"first_date,omitempty"`
	LastDate      string              `json:"last_date,omitempty"`
}

// History 在 Repository 之上提供寬表與商品歷史查詢。
type History struct {
	repo Repository
	now  func() time.Time
}

// NewHistory 建立歷史資料查詢器。
func NewHistory(repo Repository) *History {
	return &History{repo: repo, now: time.Now}
}

// Window 回傳最近 days 天（含今天）的起訖日。
func (h *History) Window(days int) (time.Time, time.Time) {
	end := domain.DateOnly(h.now())
	if days < 1 {
		days = 1
	}
	return end.AddDate(0, 0, -(days - 1)), end
}

// Save 驗證後寫入單日單類別的排名，同一天重複寫入會取代舊資料。rows 不會被修改。
func (h *History) Save(ctx context.Context, date time.Time, category string, rows []domain.RankRecord) (int, error) {
	day := domain.DateOnly(date)
	normalized := make([]domain.RankRecord, len(rows))
	for i, r := range rows {
		r.Date = day
		r.Category = category
		if err := r.Validate(); err != nil {
			return 0, err
		}
		normalized[i] = r
	}
	n, err := h.repo.Save(ctx, day, category, normalized)
	if err != nil {
		return 0, fmt.Errorf("save %s %s: %w", category, day.Format(domain.DateLayout), err)
	}
	return n, nil
}

// LoadRange 直接讀取區間內的紀錄。
func (h *History) LoadRange(ctx context.Context, start, end time.Time, category string) ([]domain.RankRecord, error) {
	return h.repo.LoadRange(ctx, domain.DateOnly(start), domain.DateOnly(end), category)
}

// HasData 表示某日某類別是否已有紀錄。
func (h *History) HasData(ctx context.Context, date time.Time, category string) (bool, error) {
	return h.repo.HasData(ctx, domain.DateOnly(date), category)
}

// AsWideTable 將最近 days 天的紀錄轉成寬表；沒有資料時回傳空表。
func (h *History) AsWideTable(ctx context.Context, category string, days int) (domain.RankTable, error) {
	start, end := h.Window(days)
	records, err := h.repo.LoadRange(ctx, start, end, category)
	if err != nil {
		return domain.RankTable{}, fmt.Errorf("load range: %w", err)
	}
	return BuildWideTable(category, records), nil
}

// BuildWideTable 以實際出現的日期排序後編號 day_1..day_K，商品以名稱為鍵。
func BuildWideTable(category string, records []domain.RankRecord) domain.RankTable {
	table := domain.RankTable{Category: category}
	if len(records) == 0 {
		return table
	}

	seen := make(map[string]struct{})
	var dates []time.Time
	for _, r := range records {
		key := r.Date.Format(domain.DateLayout)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		dates = append(dates, domain.DateOnly(r.Date))
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	dayIndex := make(map[string]int, len(dates))
	for i, d := range dates {
		dayIndex[d.Format(domain.DateLayout)] = i
	}

	rowIndex := make(map[string]int)
	for _, r := range records {
		idx, ok := rowIndex[r.ProductName]
		if !ok {
			idx = len(table.Rows)
			rowIndex[r.ProductName] = idx
			table.Rows = append(table.Rows, domain.TableRow{
				ProductID:    r.ProductID,
				ProductName:  r.ProductName,
				Brand:        r.Brand,
				Category:     r.Category,
				IsFocusBrand: r.IsFocusBrand,
				Price:        r.Price,
				Ranks:        make([]int, len(dates)),
			})
		}
		table.Rows[idx].Ranks[dayIndex[r.Date.Format(domain.DateLayout)]] = r.Rank
	}
	table.Dates = dates
	return table
}

// AllWideTables 為每個有資料的類別建立寬表。
func (h *History) AllWideTables(ctx context.Context, days int) (map[string]domain.RankTable, error) {
	cats, err := h.repo.DistinctCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make(map[string]domain.RankTable, len(cats))
	for _, c := range cats {
		t, err := h.AsWideTable(ctx, c, days)
		if err != nil {
			return nil, err
		}
		if !t.Empty() {
			out[c] = t
		}
	}
	return out, nil
}

// Metadata 彙整筆數、類別與各類別的日期。
func (h *History) Metadata(ctx context.Context) (Metadata, error) {
	meta := Metadata{DatesByCat: map[string][]string{}}
	total, err := h.repo.CountRecords(ctx)
	if err != nil {
		return meta, fmt.Errorf("count records: %w", err)
	}
	meta.TotalRecords = total
	cats, err := h.repo.DistinctCategories(ctx)
	if err != nil {
		return meta, fmt.Errorf("list categories: %w", err)
	}
	meta.Categories = cats

	all := make(map[string]struct{})
	for _, c := range cats {
		dates, err := h.repo.DistinctDates(ctx, c)
		if err != nil {
			return meta, fmt.Errorf("list dates %s: %w", c, err)
		}
		labels := make([]string, 0, len(dates))
		for _, d := range dates {
			s := d.Format(domain.DateLayout)
			labels = append(labels, s)
			all[s] = struct{}{}
		}
		meta.DatesByCat[c] = labels
	}
	meta.DaysAvailable = len(all)
	if len(all) > 0 {
		keys := make([]string, 0, len(all))
		for k := range all {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		meta.FirstDate = keys[0]
		meta.LastDate = keys[len(keys)-1]
	}
	return meta, nil
}

// ProductHistory 回傳商品最近 days 天的排名歷史；查無資料時回傳 nil。
func (h *History) ProductHistory(ctx context.Context, productName string, days int) (*domain.ProductHistory, error) {
	start, end := h.Window(days)
	records, err := h.repo.ProductRange(ctx, productName, start, end)
	if err != nil {
		return nil, fmt.Errorf("product range: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	ph := &domain.ProductHistory{
		ProductName:  productName,
		Category:     records[0].Category,
		Brand:        records[0].Brand,
		IsFocusBrand: records[0].IsFocusBrand,
		Rankings:     make([]int, 0, len(records)),
		Dates:        make([]string, 0, len(records)),
	}
	for _, r := range records {
		ph.Rankings = append(ph.Rankings, r.Rank)
		ph.Dates = append(ph.Dates, r.Date.Format(domain.DateLayout))
	}
	stats, _ := analysis.Summarize(ph.Rankings, productTrend)
	ph.SummaryStats = stats
	return ph, nil
}

// productTrend 在點數不足時回報資料不足，否則比較頭尾。
func productTrend(ranks []int) string {
	if len(ranks) < 7 {
		return domain.TrendInsufficient
	}
	return analysis.EndpointTrend(ranks)
}

// FocusSummary 回傳最近 days 天重點品牌商品的統計。
func (h *History) FocusSummary(ctx context.Context, category string, days int) (map[string]domain.SummaryStats, error) {
	table, err := h.AsWideTable(ctx, category, days)
	if err != nil {
		return nil, err
	}
	return analysis.FocusSummary(table, analysis.EndpointTrend), nil
}
