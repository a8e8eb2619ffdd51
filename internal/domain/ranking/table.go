package ranking

import (
	"encoding/json"
	"fmt"
	"time"
)

// TableRow 為寬表中的一個商品列。Ranks[i] 對應 day_{i+1}，0 表示當日沒有資料。
type TableRow struct {
	ProductID    string
	ProductName  string
	Brand        string
	Category     string
	IsFocusBrand bool
	Price        float64
	Scenario     Scenario
	Ranks        []int
}

// Values 依日期順序回傳有資料的排名。
func (r TableRow) Values() []int {
	out := make([]int, 0, len(r.Ranks))
	for _, v := range r.Ranks {
		if v > 0 {
			out = append(out, v)
		}
	}
	return out
}

// RankOn 取得 day_N（從 1 起算）的排名。
func (r TableRow) RankOn(day int) (int, bool) {
	if day < 1 || day > len(r.Ranks) || r.Ranks[day-1] <= 0 {
		return 0, false
	}
	return r.Ranks[day-1], true
}

// MarshalJSON 以 day_N 欄位輸出，缺值為 null。
func (r TableRow) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{
		"product_id":     r.ProductID,
		"product_name":   r.ProductName,
		"brand":          r.Brand,
		"is_focus_brand": r.IsFocusBrand,
		"price":          r.Price,
	}
	if r.Category != "" {
		out["category"] = r.Category
	}
	if r.Scenario != "" {
		out["scenario"] = r.Scenario
	}
	for i, v := range r.Ranks {
		key := fmt.Sprintf("day_%d", i+1)
		if v > 0 {
			out[key] = v
		} else {
			out[key] = nil
		}
	}
	return json.Marshal(out)
}

// RankTable 為某類別在查詢區間內的寬表，每次查詢重建。
// Dates[i] 為 day_{i+1} 的實際日期，可能為空。
type RankTable struct {
	Category string
	Dates    []time.Time
	Rows     []TableRow
}

// Days 回傳 day 欄位數。
func (t RankTable) Days() int {
	n := 0
	for _, r := range t.Rows {
		if len(r.Ranks) > n {
			n = len(r.Ranks)
		}
	}
	return n
}

// Empty 表示沒有任何商品列。
func (t RankTable) Empty() bool {
	return len(t.Rows) == 0
}

// FocusRows 回傳重點品牌的列。
func (t RankTable) FocusRows() []TableRow {
	var out []TableRow
	for _, r := range t.Rows {
		if r.IsFocusBrand {
			out = append(out, r)
		}
	}
	return out
}

// CompetitorRows 回傳非重點品牌的列。
func (t RankTable) CompetitorRows() []TableRow {
	var out []TableRow
	for _, r := range t.Rows {
		if !r.IsFocusBrand {
			out = append(out, r)
		}
	}
	return out
}

// Column 回傳 day_N 欄位（從 1 起算），缺值為 0。
func (t RankTable) Column(day int) []int {
	col := make([]int, len(t.Rows))
	for i, r := range t.Rows {
		if v, ok := r.RankOn(day); ok {
			col[i] = v
		}
	}
	return col
}

// Row 依商品名稱精確查找。
func (t RankTable) Row(productName string) (TableRow, bool) {
	for _, r := range t.Rows {
		if r.ProductName == productName {
			return r, true
		}
	}
	return TableRow{}, false
}
