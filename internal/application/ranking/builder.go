package ranking

import (
	"time"

	domain "ranking-insight/internal/domain/ranking"
)

// ProductSource 提供某類別的商品清單。
type ProductSource interface {
	ForCategory(category string) []domain.Product
}

// TableBuilder 以模擬走勢產生類別寬表。
type TableBuilder struct {
	products ProductSource
	gen      *Generator
	now      func() time.Time
}

// NewTableBuilder 建立寬表產生器。
func NewTableBuilder(products ProductSource, gen *Generator) *TableBuilder {
	return &TableBuilder{products: products, gen: gen, now: time.Now}
}

// GenerateRaw 為每個商品指派走勢並產生未重新排名的原始序列。
func (b *TableBuilder) GenerateRaw(category string, days int) []domain.TableRow {
	products := b.products.ForCategory(category)
	if len(products) == 0 || days <= 0 {
		return nil
	}
	rows := make([]domain.TableRow, 0, len(products))
	for _, p := range products {
		scenario := b.gen.ScenarioFor(p)
		ranks := make([]int, days)
		for d := 0; d < days; d++ {
			ranks[d] = b.gen.RankFor(scenario, d, days)
		}
		rows = append(rows, domain.TableRow{
			ProductID:    p.ProductID,
			ProductName:  p.ProductName,
			Brand:        p.Brand,
			Category:     p.Category,
			IsFocusBrand: p.IsFocusBrand,
			Price:        p.Price,
			Scenario:     scenario,
			Ranks:        ranks,
		})
	}
	return rows
}

// Build 產生 days 天的寬表並逐日重新排名；start 為 nil 時預設為今天往前 days 天。
// 沒有符合的商品時回傳空表。
func (b *TableBuilder) Build(category string, days int, start *time.Time) domain.RankTable {
	table := domain.RankTable{Category: category}
	rows := b.GenerateRaw(category, days)
	if len(rows) == 0 {
		return table
	}
	RerankColumns(rows)

	first := domain.DateOnly(b.now()).AddDate(0, 0, -days)
	if start != nil {
		first = domain.DateOnly(*start)
	}
	table.Dates = make([]time.Time, days)
	for i := range table.Dates {
		table.Dates[i] = first.AddDate(0, 0, i)
	}
	table.Rows = rows
	return table
}

// RecordsForDay 將寬表的 day_N 欄位（1 起算）轉成當日的排名紀錄。
func RecordsForDay(table domain.RankTable, day int, date time.Time) []domain.RankRecord {
	out := make([]domain.RankRecord, 0, len(table.Rows))
	for _, r := range table.Rows {
		rank, ok := r.RankOn(day)
		if !ok {
			continue
		}
		out = append(out, domain.RankRecord{
			Date:         domain.DateOnly(date),
			Category:     table.Category,
			ProductID:    r.ProductID,
			ProductName:  r.ProductName,
			Brand:        r.Brand,
			Rank:         rank,
			IsFocusBrand: r.IsFocusBrand,
			Price:        r.Price,
		})
	}
	return out
}
