package insights

import (
	"fmt"
	"sort"
	"time"

	"ranking-insight/internal/domain/ranking"

	"github.com/osteele/liquid"
)

const summaryTemplate = `*{{ title }}* ({{ date }})
{% for p in products %}- {{ p.name }}: now #{{ p.current }}, avg #{{ p.avg }}, best #{{ p.best }}, TOP5 {{ p.top5 }}d, {{ p.trend }}
{% endfor %}{% if has_alerts %}
Rapid changes:
{% for a in alerts %}- {{ a }}
{% endfor %}{% endif %}`

// TextRenderer 以 Liquid 樣板輸出聊天風格的摘要，供 CLI 與 Telegram 使用。
type TextRenderer struct {
	tpl *liquid.Template
	now func() time.Time
}

// NewTextRenderer 編譯摘要樣板。
func NewTextRenderer() (*TextRenderer, error) {
	engine := liquid.NewEngine()
	tpl, err := engine.ParseString(summaryTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse summary template: %w", err)
	}
	return &TextRenderer{tpl: tpl, now: time.Now}, nil
}

// Summary 依平均排名排序輸出重點商品摘要。
func (r *TextRenderer) Summary(title string, summary map[string]ranking.SummaryStats, alerts []RapidChange) (string, error) {
	names := make([]string, 0, len(summary))
	for name := range summary {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := summary[names[i]], summary[names[j]]
		if a.AvgRank != b.AvgRank {
			return a.AvgRank < b.AvgRank
		}
		return names[i] < names[j]
	})

	products := make([]map[string]interface{}, 0, len(names))
	for _, name := range names {
		s := summary[name]
		products = append(products, map[string]interface{}{
			"name":    name,
			"current": s.CurrentRank,
			"avg":     fmt.Sprintf("%.1f", s.AvgRank),
			"best":    s.BestRank,
			"top5":    s.Top5Days,
			"trend":   s.Trend,
		})
	}
	lines := make([]string, 0, len(alerts))
	for _, a := range alerts {
		lines = append(lines, a.String())
	}

	out, err := r.tpl.RenderString(liquid.Bindings{
		"title":      title,
		"date":       r.now().Format(ranking.DateLayout),
		"products":   products,
		"alerts":     lines,
		"has_alerts": len(lines) > 0,
	})
	if err != nil {
		return "", fmt.Errorf("render summary: %w", err)
	}
	return out, nil
}
