package paapi

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"ranking-insight/internal/domain/ranking"
	"ranking-insight/internal/infrastructure/cache"
)

type fakeSearcher struct {
	pages map[int][]Item
	fail  map[int]bool
	calls int
}

func (f *fakeSearcher) SearchItems(_ context.Context, _ string, page int) ([]Item, error) {
	f.calls++
	if f.fail[page] {
		return nil, errors.New("timeout")
	}
	return f.pages[page], nil
}

func itemsFor(page, n int) []Item {
	out := make([]Item, n)
	for i := range out {
		out[i] = Item{ASIN: fmt.Sprintf("P%dI%d", page, i), Title: fmt.Sprintf("Item %d-%d", page, i), Brand: "Other"}
	}
	return out
}

func TestProviderSnapshotRanksAcrossPages(t *testing.T) {
	first := itemsFor(1, 10)
	first[3] = Item{ASIN: "LANE", Title: "Water Sleeping Mask", Brand: "Laneige"}
	s := &fakeSearcher{pages: map[int][]Item{1: first, 2: itemsFor(2, 4)}}
	p := NewProvider(s, nil, "LANEIGE", 10)
	p.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }

	rows, err := p.Snapshot(context.Background(), ranking.CategorySkincare)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 14 {
		t.Fatalf("expected 14 rows, got %d", len(rows))
	}
	if rows[3].Rank != 4 || !rows[3].IsFocusBrand {
		t.Errorf("unexpected focus row %+v", rows[3])
	}
	if rows[10].Rank != 11 || rows[10].ProductID != "P2I0" {
		t.Errorf("second page must continue numbering, got %+v", rows[10])
	}
	if s.calls != 3 {
		t.Errorf("expected paging to stop at first empty page, calls=%d", s.calls)
	}

	// 同日第二次呼叫走快取。
	if _, err := p.Snapshot(context.Background(), ranking.CategorySkincare); err != nil {
		t.Fatal(err)
	}
	if s.calls != 3 {
		t.Errorf("expected cached snapshot, calls=%d", s.calls)
	}
}

func TestProviderDegradesOnUpstreamError(t *testing.T) {
	s := &fakeSearcher{pages: map[int][]Item{1: itemsFor(1, 10)}, fail: map[int]bool{2: true}}
	p := NewProvider(s, cache.NewMemorySnapshotCache(), "LANEIGE", 10)

	rows, err := p.Snapshot(context.Background(), ranking.CategoryLipCare)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 10 {
		t.Errorf("expected rows from first page only, got %d", len(rows))
	}

	if _, err := p.Snapshot(context.Background(), "hair"); !errors.Is(err, ranking.ErrUnknownCategory) {
		t.Errorf("expected unknown category, got %v", err)
	}
}

func TestProviderRankingsReplicateSnapshot(t *testing.T) {
	s := &fakeSearcher{pages: map[int][]Item{1: itemsFor(1, 3)}}
	p := NewProvider(s, nil, "LANEIGE", 1)

	table, err := p.Rankings(context.Background(), ranking.CategoryLipMakeup, 5)
	if err != nil {
		t.Fatal(err)
	}
	if table.Days() != 5 || len(table.Rows) != 3 {
		t.Fatalf("unexpected shape %d x %d", len(table.Rows), table.Days())
	}
	for _, v := range table.Rows[2].Ranks {
		if v != 3 {
			t.Fatalf("expected constant rank 3, got %v", table.Rows[2].Ranks)
		}
	}
	if !p.IsLive() {
		t.Error("live provider must report live")
	}
}

func TestProviderToday(t *testing.T) {
	s := &fakeSearcher{pages: map[int][]Item{1: itemsFor(1, 2)}}
	p := NewProvider(s, nil, "LANEIGE", 1)
	out, err := p.Today(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != len(ranking.Categories) {
		t.Errorf("expected every category, got %d", len(out))
	}
}
