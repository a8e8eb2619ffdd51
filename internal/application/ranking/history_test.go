package ranking

import (
	"context"
	"testing"
	"time"

	domain "ranking-insight/internal/domain/ranking"
	"ranking-insight/internal/infra/memory"
)

var fixedToday = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

func newTestHistory() *History {
	h := NewHistory(memory.NewStore())
	h.now = func() time.Time { return fixedToday }
	return h
}

func record(name string, rank int, focus bool) domain.RankRecord {
	return domain.RankRecord{ProductID: name, ProductName: name, Brand: "B", Rank: rank, IsFocusBrand: focus, Price: 10}
}

func TestHistorySaveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	h := newTestHistory()
	rows := func() []domain.RankRecord {
		return []domain.RankRecord{record("A", 1, true), record("B", 2, false)}
	}
	for i := 0; i < 2; i++ {
		if _, err := h.Save(ctx, fixedToday, domain.CategoryLipCare, rows()); err != nil {
			t.Fatal(err)
		}
	}
	got, err := h.LoadRange(ctx, fixedToday, fixedToday, domain.CategoryLipCare)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows after double save, got %d", len(got))
	}
}

func TestHistorySaveLeavesInputUntouched(t *testing.T) {
	ctx := context.Background()
	h := newTestHistory()
	rows := []domain.RankRecord{record("A", 1, true), record("B", 2, false)}
	rows[0].Category = "snapshot"
	if _, err := h.Save(ctx, fixedToday.Add(15*time.Hour), domain.CategoryLipCare, rows); err != nil {
		t.Fatal(err)
	}
	if rows[0].Category != "snapshot" || !rows[0].Date.IsZero() || rows[1].Category != "" {
		t.Fatalf("caller rows were mutated: %+v", rows)
	}
	got, err := h.LoadRange(ctx, fixedToday, fixedToday, domain.CategoryLipCare)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Category != domain.CategoryLipCare || !got[0].Date.Equal(fixedToday) {
		t.Fatalf("expected normalized rows in store, got %+v", got)
	}
}

func TestHistoryResaveReplacesDate(t *testing.T) {
	ctx := context.Background()
	h := newTestHistory()
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, _ = h.Save(ctx, day, domain.CategoryLipCare, []domain.RankRecord{record("A", 1, true), record("B", 2, false)})
	n, err := h.Save(ctx, day, domain.CategoryLipCare, []domain.RankRecord{record("C", 1, false)})
	if err != nil || n != 1 {
		t.Fatalf("save: n=%d err=%v", n, err)
	}
	got, _ := h.LoadRange(ctx, day, day, "")
	if len(got) != 1 || got[0].ProductName != "C" {
		t.Fatalf("expected only second set, got %+v", got)
	}
}

func TestHistorySaveRejectsInvalidRows(t *testing.T) {
	h := newTestHistory()
	_, err := h.Save(context.Background(), fixedToday, domain.CategoryLipCare, []domain.RankRecord{record("A", 0, true)})
	if !domain.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAsWideTableRoundTrip(t *testing.T) {
	ctx := context.Background()
	h := newTestHistory()
	const days = 5
	saved := map[string][]int{"A": {3, 1, 2, 1, 1}, "B": {1, 2, 1, 3, 2}, "C": {2, 3, 3, 2, 3}}
	for i := 0; i < days; i++ {
		date := fixedToday.AddDate(0, 0, -(days - 1 - i))
		var rows []domain.RankRecord
		for name, ranks := range saved {
			rows = append(rows, record(name, ranks[i], name == "A"))
		}
		if _, err := h.Save(ctx, date, domain.CategoryLipCare, rows); err != nil {
			t.Fatal(err)
		}
	}

	table, err := h.AsWideTable(ctx, domain.CategoryLipCare, days)
	if err != nil {
		t.Fatal(err)
	}
	if table.Days() != days || len(table.Rows) != 3 {
		t.Fatalf("unexpected shape days=%d rows=%d", table.Days(), len(table.Rows))
	}
	for name, ranks := range saved {
		row, ok := table.Row(name)
		if !ok {
			t.Fatalf("missing row %s", name)
		}
		for i, want := range ranks {
			if row.Ranks[i] != want {
				t.Errorf("%s day_%d: got %d want %d", name, i+1, row.Ranks[i], want)
			}
		}
	}
	if !table.Dates[0].Equal(fixedToday.AddDate(0, 0, -4)) || !table.Dates[4].Equal(fixedToday) {
		t.Errorf("dates not chronological: %v", table.Dates)
	}
	// 第一天排名第一的商品排在第一列。
	if table.Rows[0].ProductName != "B" {
		t.Errorf("expected first row to follow day_1 rank order, got %s", table.Rows[0].ProductName)
	}
}

func TestAsWideTableCompressesMissingDays(t *testing.T) {
	ctx := context.Background()
	h := newTestHistory()
	_, _ = h.Save(ctx, fixedToday.AddDate(0, 0, -4), domain.CategoryLipCare, []domain.RankRecord{record("A", 4, true)})
	_, _ = h.Save(ctx, fixedToday, domain.CategoryLipCare, []domain.RankRecord{record("A", 2, true), record("B", 1, false)})

	table, err := h.AsWideTable(ctx, domain.CategoryLipCare, 7)
	if err != nil {
		t.Fatal(err)
	}
	if table.Days() != 2 {
		t.Fatalf("expected 2 day columns, got %d", table.Days())
	}
	b, _ := table.Row("B")
	if _, ok := b.RankOn(1); ok {
		t.Error("B has no rank on day_1")
	}
	if v, _ := b.RankOn(2); v != 1 {
		t.Errorf("B day_2 = %d", v)
	}
}

func TestAsWideTableEmpty(t *testing.T) {
	table, err := newTestHistory().AsWideTable(context.Background(), domain.CategoryFacePowder, 30)
	if err != nil {
		t.Fatal(err)
	}
	if !table.Empty() {
		t.Error("expected empty table")
	}
}

func TestProductHistory(t *testing.T) {
	ctx := context.Background()
	h := newTestHistory()

	ph, err := h.ProductHistory(ctx, "X", 30)
	if err != nil || ph != nil {
		t.Fatalf("expected nil history, got %+v err=%v", ph, err)
	}

	for i, r := range []int{5, 4, 3} {
		_, _ = h.Save(ctx, fixedToday.AddDate(0, 0, i-2), domain.CategoryLipCare, []domain.RankRecord{record("A", r, true)})
	}
	ph, err = h.ProductHistory(ctx, "A", 30)
	if err != nil || ph == nil {
		t.Fatalf("expected history, err=%v", err)
	}
	if ph.Trend != domain.TrendInsufficient {
		t.Errorf("expected insufficient data, got %s", ph.Trend)
	}
	if ph.AvgRank != 4 || ph.BestRank != 3 || ph.WorstRank != 5 || ph.CurrentRank != 3 {
		t.Errorf("unexpected stats %+v", ph.SummaryStats)
	}
	if len(ph.Dates) != 3 || ph.Dates[2] != "2024-01-10" {
		t.Errorf("unexpected dates %v", ph.Dates)
	}

	for i := 3; i < 8; i++ {
		_, _ = h.Save(ctx, fixedToday.AddDate(0, 0, -i), domain.CategoryLipCare, []domain.RankRecord{record("A", 3, true)})
	}
	ph, _ = h.ProductHistory(ctx, "A", 30)
	// 頭尾同為 3，仍判定為下降。
	if len(ph.Rankings) != 8 || ph.Trend != domain.TrendDeclining {
		t.Errorf("expected declining for tie, got %s with %v", ph.Trend, ph.Rankings)
	}
}

func TestFocusSummaryUsesEndpointTrend(t *testing.T) {
	ctx := context.Background()
	h := newTestHistory()
	_, _ = h.Save(ctx, fixedToday.AddDate(0, 0, -1), domain.CategoryLipCare, []domain.RankRecord{record("A", 4, true), record("B", 1, false)})
	_, _ = h.Save(ctx, fixedToday, domain.CategoryLipCare, []domain.RankRecord{record("A", 2, true), record("B", 3, false)})

	summary, err := h.FocusSummary(ctx, domain.CategoryLipCare, 7)
	if err != nil {
		t.Fatal(err)
	}
	if len(summary) != 1 {
		t.Fatalf("expected only focus products, got %v", summary)
	}
	if s := summary["A"]; s.Trend != domain.TrendRising || s.Top5Days != 2 {
		t.Errorf("unexpected summary %+v", s)
	}
}

func TestMetadata(t *testing.T) {
	ctx := context.Background()
	h := newTestHistory()
	_, _ = h.Save(ctx, fixedToday.AddDate(0, 0, -1), domain.CategoryLipCare, []domain.RankRecord{record("A", 1, true)})
	_, _ = h.Save(ctx, fixedToday, domain.CategorySkincare, []domain.RankRecord{record("S", 1, false), record("T", 2, false)})

	meta, err := h.Metadata(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if meta.TotalRecords != 3 || meta.DaysAvailable != 2 || len(meta.Categories) != 2 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.FirstDate != "2024-01-09" || meta.LastDate != "2024-01-10" {
		t.Errorf("unexpected range %s..%s", meta.FirstDate, meta.LastDate)
	}
}
