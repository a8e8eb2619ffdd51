package memory

import (
	"context"
	"testing"
	"time"

	"ranking-insight/internal/domain/auth"
	"ranking-insight/internal/domain/ranking"
)

func rec(date time.Time, category, name string, rank int) ranking.RankRecord {
	return ranking.RankRecord{Date: date, Category: category, ProductName: name, Brand: "B", Rank: rank}
}

func TestStore_History(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	d1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)

	t.Run("SaveReplacesPartition", func(t *testing.T) {
		if _, err := s.Save(ctx, d1, "lip_care", []ranking.RankRecord{rec(d1, "lip_care", "A", 1), rec(d1, "lip_care", "B", 2)}); err != nil {
			t.Fatal(err)
		}
		n, err := s.Save(ctx, d1, "lip_care", []ranking.RankRecord{rec(d1, "lip_care", "C", 1)})
		if err != nil || n != 1 {
			t.Fatalf("save: n=%d err=%v", n, err)
		}
		rows, _ := s.LoadRange(ctx, d1, d1, "lip_care")
		if len(rows) != 1 || rows[0].ProductName != "C" {
			t.Fatalf("expected only second set, got %+v", rows)
		}
	})

	t.Run("LoadRangeOrdering", func(t *testing.T) {
		_, _ = s.Save(ctx, d2, "skincare", []ranking.RankRecord{rec(d2, "skincare", "S2", 2), rec(d2, "skincare", "S1", 1)})
		_, _ = s.Save(ctx, d2, "lip_care", []ranking.RankRecord{rec(d2, "lip_care", "C", 1)})
		rows, _ := s.LoadRange(ctx, d1, d2, "")
		want := []string{"C", "C", "S1", "S2"}
		if len(rows) != len(want) {
			t.Fatalf("expected %d rows, got %d", len(want), len(rows))
		}
		for i, name := range want {
			if rows[i].ProductName != name {
				t.Errorf("row %d: expected %s got %s", i, name, rows[i].ProductName)
			}
		}
	})

	t.Run("Metadata", func(t *testing.T) {
		cats, _ := s.DistinctCategories(ctx)
		if len(cats) != 2 || cats[0] != "lip_care" {
			t.Errorf("unexpected categories %v", cats)
		}
		dates, _ := s.DistinctDates(ctx, "skincare")
		if len(dates) != 1 || !dates[0].Equal(d2) {
			t.Errorf("unexpected dates %v", dates)
		}
		n, _ := s.CountRecords(ctx)
		if n != 4 {
			t.Errorf("expected 4 records, got %d", n)
		}
		if ok, _ := s.HasData(ctx, d1, "skincare"); ok {
			t.Error("skincare has no data on d1")
		}
		if ok, _ := s.HasData(ctx, d1, ""); !ok {
			t.Error("expected data on d1")
		}
	})

	t.Run("ProductRange", func(t *testing.T) {
		rows, _ := s.ProductRange(ctx, "C", d1, d2)
		if len(rows) != 2 || !rows[0].Date.Equal(d1) {
			t.Errorf("unexpected product rows %+v", rows)
		}
	})
}

func TestStore_Users(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	id := s.AddUser("Admin@Example.com", "hashed", "Admin", auth.RoleAdmin)
	u, err := s.FindByID(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if u.Email != "admin@example.com" {
		t.Errorf("expected normalized email, got %s", u.Email)
	}
	if _, err := s.FindByEmail(ctx, "missing@example.com"); err == nil {
		t.Error("expected not found")
	}
}
