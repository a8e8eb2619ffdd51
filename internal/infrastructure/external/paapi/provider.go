package paapi

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"ranking-insight/internal/domain/ranking"
	"ranking-insight/internal/infrastructure/cache"
	"ranking-insight/internal/infrastructure/metrics"
)

// BrowseNodes 為各類別對應的 Amazon BrowseNodeId。
var BrowseNodes = map[string]string{
	ranking.CategoryLipCare:    "11062741",
	ranking.CategorySkincare:   "11062031",
	ranking.CategoryLipMakeup:  "11058281",
	ranking.CategoryFacePowder: "11058251",
}

// Searcher 為 Provider 需要的搜尋能力。
type Searcher interface {
	SearchItems(ctx context.Context, browseNodeID string, page int) ([]Item, error)
}

// Provider 以 PA-API 搜尋結果作為當日排名快照。
type Provider struct {
	search     Searcher
	cache      cache.SnapshotCache
	focusBrand string
	maxPages   int
	now        func() time.Time
}

// NewProvider 建立即時排名來源；snapshots 為 nil 時使用行程內快取。
func NewProvider(search Searcher, snapshots cache.SnapshotCache, focusBrand string, maxPages int) *Provider {
	if snapshots == nil {
		snapshots = cache.NewMemorySnapshotCache()
	}
	if maxPages <= 0 {
		maxPages = 10
	}
	return &Provider{
		search:     search,
		cache:      snapshots,
		focusBrand: focusBrand,
		maxPages:   maxPages,
		now:        time.Now,
	}
}

func (p *Provider) Name() string { return "amazon-paapi" }

func (p *Provider) IsLive() bool { return true }

// Snapshot 取得類別當日的排名；請求失敗時回傳目前已取得的結果。
func (p *Provider) Snapshot(ctx context.Context, category string) ([]ranking.RankRecord, error) {
	node, ok := BrowseNodes[category]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ranking.ErrUnknownCategory, category)
	}
	today := ranking.DateOnly(p.now())
	if rows, ok := p.cache.Get(ctx, category, today); ok {
		return rows, nil
	}

	var rows []ranking.RankRecord
	for page := 1; page <= p.maxPages; page++ {
		items, err := p.search.SearchItems(ctx, node, page)
		if err != nil {
			metrics.ProviderRequestsTotal.WithLabelValues(p.Name(), "error").Inc()
			log.Printf("paapi search failed category=%s page=%d err=%v", category, page, err)
			break
		}
		metrics.ProviderRequestsTotal.WithLabelValues(p.Name(), "ok").Inc()
		if len(items) == 0 {
			break
		}
		for i, it := range items {
			rows = append(rows, ranking.RankRecord{
				Date:         today,
				Category:     category,
				ProductID:    it.ASIN,
				ProductName:  it.Title,
				Brand:        it.Brand,
				Rank:         (page-1)*ItemsPerPage + i + 1,
				IsFocusBrand: p.isFocus(it),
				Price:        it.Price,
			})
		}
	}

	if len(rows) > 0 {
		if err := p.cache.Set(ctx, category, today, rows); err != nil {
			log.Printf("snapshot cache set failed category=%s err=%v", category, err)
		}
	}
	return rows, nil
}

func (p *Provider) isFocus(it Item) bool {
	brand := strings.ToLower(p.focusBrand)
	if brand == "" {
		return false
	}
	return strings.Contains(strings.ToLower(it.Brand), brand) || strings.Contains(strings.ToLower(it.Title), brand)
}

// Rankings 將當日快照的名次複製到每個 day 欄位。
func (p *Provider) Rankings(ctx context.Context, category string, days int) (ranking.RankTable, error) {
	rows, err := p.Snapshot(ctx, category)
	if err != nil {
		return ranking.RankTable{}, err
	}
	if days <= 0 {
		days = 1
	}
	table := ranking.RankTable{Category: category}
	for _, r := range rows {
		ranks := make([]int, days)
		for i := range ranks {
			ranks[i] = r.Rank
		}
		table.Rows = append(table.Rows, ranking.TableRow{
			ProductID:    r.ProductID,
			ProductName:  r.ProductName,
			Brand:        r.Brand,
			Category:     category,
			IsFocusBrand: r.IsFocusBrand,
			Price:        r.Price,
			Ranks:        ranks,
		})
	}
	return table, nil
}

// Today 逐類別取得快照，單一類別失敗時該類別為空。
func (p *Provider) Today(ctx context.Context) (map[string][]ranking.RankRecord, error) {
	out := make(map[string][]ranking.RankRecord, len(ranking.Categories))
	for _, c := range ranking.Categories {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		rows, err := p.Snapshot(ctx, c)
		if err != nil {
			log.Printf("paapi snapshot failed category=%s err=%v", c, err)
			continue
		}
		out[c] = rows
	}
	return out, nil
}
