package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	authDomain "ranking-insight/internal/domain/auth"
	"ranking-insight/internal/domain/ranking"
)

// Store 為未設定資料庫時使用的記憶體資料庫，保存排名歷史與帳號。
type Store struct {
	mu      sync.RWMutex
	history map[string]map[string][]ranking.RankRecord // date -> category -> rows
	users   map[string]authDomain.User
	idSeq   int64
}

// NewStore 建立新的記憶體 Store 實例。
func NewStore() *Store {
	return &Store{
		history: make(map[string]map[string][]ranking.RankRecord),
		users:   make(map[string]authDomain.User),
	}
}

func (s *Store) nextID() string {
	s.idSeq++
	return fmt.Sprintf("id-%d", s.idSeq)
}

func dateKey(t time.Time) string {
	return t.Format(ranking.DateLayout)
}

// Save 先刪除同日同類別的資料再寫入。
func (s *Store) Save(_ context.Context, date time.Time, category string, rows []ranking.RankRecord) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := dateKey(date)
	byCat, ok := s.history[key]
	if !ok {
		byCat = make(map[string][]ranking.RankRecord)
		s.history[key] = byCat
	}
	delete(byCat, category)
	if len(rows) == 0 {
		return 0, nil
	}
	cp := make([]ranking.RankRecord, len(rows))
	copy(cp, rows)
	byCat[category] = cp
	return len(cp), nil
}

// LoadRange 讀取 [start, end] 內的紀錄，依日期、類別、名次排序。
func (s *Store) LoadRange(_ context.Context, start, end time.Time, category string) ([]ranking.RankRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	from, to := dateKey(start), dateKey(end)
	var out []ranking.RankRecord
	for key, byCat := range s.history {
		if key < from || key > to {
			continue
		}
		for cat, rows := range byCat {
			if category != "" && cat != category {
				continue
			}
			out = append(out, rows...)
		}
	}
	sortRecords(out)
	return out, nil
}

// ProductRange 依商品名稱精確比對。
func (s *Store) ProductRange(ctx context.Context, productName string, start, end time.Time) ([]ranking.RankRecord, error) {
	all, err := s.LoadRange(ctx, start, end, "")
	if err != nil {
		return nil, err
	}
	var out []ranking.RankRecord
	for _, r := range all {
		if r.ProductName == productName {
			out = append(out, r)
		}
	}
	return out, nil
}

// DistinctCategories 回傳排序後的類別。
func (s *Store) DistinctCategories(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := map[string]struct{}{}
	for _, byCat := range s.history {
		for cat, rows := range byCat {
			if len(rows) > 0 {
				seen[cat] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}

// DistinctDates 回傳排序後的日期；category 為空表示全部。
func (s *Store) DistinctDates(_ context.Context, category string) ([]time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []time.Time
	for key, byCat := range s.history {
		has := false
		for cat, rows := range byCat {
			if len(rows) > 0 && (category == "" || cat == category) {
				has = true
				break
			}
		}
		if !has {
			continue
		}
		d, err := time.Parse(ranking.DateLayout, key)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out, nil
}

// CountRecords 回傳總筆數。
func (s *Store) CountRecords(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, byCat := range s.history {
		for _, rows := range byCat {
			n += len(rows)
		}
	}
	return n, nil
}

// HasData 表示某日（及類別）是否有紀錄。
func (s *Store) HasData(_ context.Context, date time.Time, category string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byCat, ok := s.history[dateKey(date)]
	if !ok {
		return false, nil
	}
	if category != "" {
		return len(byCat[category]) > 0, nil
	}
	for _, rows := range byCat {
		if len(rows) > 0 {
			return true, nil
		}
	}
	return false, nil
}

func sortRecords(rows []ranking.RankRecord) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.Rank < b.Rank
	})
}
