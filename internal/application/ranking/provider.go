package ranking

import (
	"context"
	"fmt"
	"sync"
	"time"

	domain "ranking-insight/internal/domain/ranking"
)

// Provider 提供類別寬表與今日快照。
type Provider interface {
	Name() string
	IsLive() bool
	Rankings(ctx context.Context, category string, days int) (domain.RankTable, error)
	Today(ctx context.Context) (map[string][]domain.RankRecord, error)
}

// MockProvider 以模擬走勢提供資料，同一 (category, days) 的結果會被快取。
type MockProvider struct {
	builder *TableBuilder
	now     func() time.Time

	mu    sync.Mutex
	cache map[string]domain.RankTable
}

// NewMockProvider 建立模擬資料來源。
func NewMockProvider(builder *TableBuilder) *MockProvider {
	return &MockProvider{
		builder: builder,
		now:     time.Now,
		cache:   make(map[string]domain.RankTable),
	}
}

func (p *MockProvider) Name() string { return "mock" }

func (p *MockProvider) IsLive() bool { return false }

// Rankings 回傳模擬寬表；未知類別回傳 ErrUnknownCategory。
func (p *MockProvider) Rankings(_ context.Context, category string, days int) (domain.RankTable, error) {
	if !domain.IsKnownCategory(category) {
		return domain.RankTable{}, fmt.Errorf("%w: %s", domain.ErrUnknownCategory, category)
	}
	if days <= 0 {
		return domain.RankTable{}, &domain.ValidationError{Reasons: []string{"days must be positive"}}
	}
	key := fmt.Sprintf("%s:%d", category, days)

	p.mu.Lock()
	defer p.mu.Unlock()
	if t, ok := p.cache[key]; ok {
		return t, nil
	}
	t := p.builder.Build(category, days, nil)
	p.cache[key] = t
	return t, nil
}

// Today 為每個類別產生單日快照。
func (p *MockProvider) Today(ctx context.Context) (map[string][]domain.RankRecord, error) {
	today := domain.DateOnly(p.now())
	out := make(map[string][]domain.RankRecord, len(domain.Categories))
	for _, c := range domain.Categories {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		table := p.builder.Build(c, 1, &today)
		out[c] = RecordsForDay(table, 1, today)
	}
	return out, nil
}

// Reset 清除快取。
func (p *MockProvider) Reset() {
	p.mu.Lock()
	p.cache = make(map[string]domain.RankTable)
	p.mu.Unlock()
}
