package catalog

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"ranking-insight/internal/domain/ranking"
)

// DefaultFocusBrand 為預設分析對象品牌。
const DefaultFocusBrand = "LANEIGE"

//go:embed competitors.csv
var defaultCompetitorsCSV []byte

// labelToCategory 將自由文字的 Label 對應到 Amazon 類別；未列出者歸為 skincare。
var labelToCategory = map[string]string{
	"Moisturizer": ranking.CategorySkincare,
	"Cleanser":    ranking.CategorySkincare,
	"Face Mask":   ranking.CategorySkincare,
	"Treatment":   ranking.CategorySkincare,
	"Eye cream":   ranking.CategorySkincare,
	"Sun protect": ranking.CategorySkincare,
}

var skinTypeColumns = []string{"Combination", "Dry", "Normal", "Oily", "Sensitive"}

// Catalog 為啟動時載入一次的商品目錄。
type Catalog struct {
	focusBrand string
	products   []ranking.Product
}

// New 建立目錄：重點品牌商品在前，其後接 extra；product_id 依序編為 1..N。
func New(focusBrand string, focus, extra []ranking.Product) *Catalog {
	if focusBrand == "" {
		focusBrand = DefaultFocusBrand
	}
	all := make([]ranking.Product, 0, len(focus)+len(extra))
	all = append(all, focus...)
	all = append(all, extra...)
	for i := range all {
		all[i].ProductID = strconv.Itoa(i + 1)
		all[i].IsFocusBrand = strings.EqualFold(all[i].Brand, focusBrand)
	}
	return &Catalog{focusBrand: focusBrand, products: all}
}

// Load 依設定建立目錄；csvPath 為空時使用內建競品清單。
func Load(focusBrand, csvPath string) (*Catalog, error) {
	var extra []ranking.Product
	var err error
	if csvPath == "" {
		extra, err = ParseCSV(bytes.NewReader(defaultCompetitorsCSV))
	} else {
		extra, err = LoadFile(csvPath)
	}
	if err != nil {
		return nil, err
	}
	return New(focusBrand, DefaultFocusProducts(), extra), nil
}

// LoadFile 讀取 CSV 商品檔。
func LoadFile(path string) ([]ranking.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog csv: %w", err)
	}
	defer f.Close()
	return ParseCSV(f)
}

// ParseCSV 解析 Label/Brand/Name/Price/Rank 格式的商品資料。
// 若有 amazon_category 欄位則直接採用，否則由 Label 對應。
func ParseCSV(r io.Reader) ([]ranking.Product, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read catalog header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	for _, col := range []string{"Label", "Brand", "Name"} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("catalog csv missing column %q", col)
		}
	}

	get := func(rec []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var out []ranking.Product
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read catalog line %d: %w", line, err)
		}
		label := get(rec, "Label")
		p := ranking.Product{
			ProductName: get(rec, "Name"),
			Brand:       get(rec, "Brand"),
			Category:    label,
			Ingredients: get(rec, "Ingredients"),
			SkinType:    skinType(rec, get),
		}
		if p.ProductName == "" || p.Brand == "" {
			continue
		}
		p.Price, _ = strconv.ParseFloat(get(rec, "Price"), 64)
		p.Rating, _ = strconv.ParseFloat(get(rec, "Rank"), 64)
		p.AmazonCategory = get(rec, "amazon_category")
		if p.AmazonCategory == "" {
			p.AmazonCategory = ranking.CategorySkincare
			if c, ok := labelToCategory[label]; ok {
				p.AmazonCategory = c
			}
		}
		out = append(out, p)
	}
	return out, nil
}

func skinType(rec []string, get func([]string, string) string) string {
	var types []string
	for _, col := range skinTypeColumns {
		if get(rec, col) == "1" {
			types = append(types, col)
		}
	}
	if len(types) == 0 {
		return "All"
	}
	return strings.Join(types, ", ")
}

// FocusBrand 回傳重點品牌名稱。
func (c *Catalog) FocusBrand() string {
	return c.focusBrand
}

// All 回傳所有商品（複本）。
func (c *Catalog) All() []ranking.Product {
	out := make([]ranking.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Focus 回傳重點品牌商品。
func (c *Catalog) Focus() []ranking.Product {
	var out []ranking.Product
	for _, p := range c.products {
		if p.IsFocusBrand {
			out = append(out, p)
		}
	}
	return out
}

// ForCategory 先以 amazon_category 精確比對；若無結果，改用自由文字類別做不分大小寫的子字串比對。
func (c *Catalog) ForCategory(category string) []ranking.Product {
	var out []ranking.Product
	for _, p := range c.products {
		if p.AmazonCategory == category {
			out = append(out, p)
		}
	}
	if len(out) > 0 {
		return out
	}
	needle := strings.ToLower(strings.ReplaceAll(category, "_", " "))
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Category), needle) {
			out = append(out, p)
		}
	}
	return out
}

// Filter 提供 API 列表用的篩選，limit <= 0 表示不限。
func (c *Catalog) Filter(category string, focusOnly bool, limit int) []ranking.Product {
	out := make([]ranking.Product, 0)
	for _, p := range c.products {
		if focusOnly && !p.IsFocusBrand {
			continue
		}
		if category != "" && p.AmazonCategory != category {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}
