package reports

import (
	"bytes"
	"fmt"
	"time"

	"ranking-insight/internal/application/analysis"
	"ranking-insight/internal/domain/ranking"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	focusSheet   = "Focus Brand Analysis"

	headerFill = "1F4E79"
	focusFill  = "E2EFDA"
	top5Color  = "006400"
	top10Color = "0000FF"
)

type styleKey struct {
	fill      string
	fontColor string
	bold      bool
	size      float64
	italic    bool
	center    bool
	border    bool
}

// ExcelWriter 將各類別寬表寫成排名報表活頁簿。
type ExcelWriter struct {
	brand string
	now   func() time.Time

	f      *excelize.File
	styles map[styleKey]int
}

// NewExcelWriter 建立 writer，brand 用於報表標題。
func NewExcelWriter(brand string) *ExcelWriter {
	if brand == "" {
		brand = "Focus Brand"
	}
	return &ExcelWriter{brand: brand, now: time.Now}
}

// Write 產生 Summary、各類別與重點品牌分析工作表並回傳 xlsx 內容。
func (w *ExcelWriter) Write(tables map[string]ranking.RankTable, categories []string) ([]byte, error) {
	w.f = excelize.NewFile()
	w.styles = make(map[styleKey]int)
	defer func() {
		_ = w.f.Close()
		w.f = nil
	}()

	if err := w.f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if err := w.summary(tables, categories); err != nil {
		return nil, fmt.Errorf("summary sheet: %w", err)
	}
	for _, c := range categories {
		table := tables[c]
		if table.Empty() {
			continue
		}
		if err := w.category(c, table); err != nil {
			return nil, fmt.Errorf("%s sheet: %w", c, err)
		}
	}
	if err := w.focus(tables, categories); err != nil {
		return nil, fmt.Errorf("focus sheet: %w", err)
	}

	buf, err := w.f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return bytes.Clone(buf.Bytes()), nil
}

func (w *ExcelWriter) style(k styleKey) (int, error) {
	if id, ok := w.styles[k]; ok {
		return id, nil
	}
	s := &excelize.Style{Font: &excelize.Font{Bold: k.bold, Italic: k.italic, Color: k.fontColor, Size: k.size}}
	if k.fill != "" {
		s.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{k.fill}}
	}
	if k.center {
		s.Alignment = &excelize.Alignment{Horizontal: "center"}
	}
	if k.border {
		s.Border = []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		}
	}
	id, err := w.f.NewStyle(s)
	if err != nil {
		return 0, err
	}
	w.styles[k] = id
	return id, nil
}

// set 寫入 (col,row) 並套用樣式，座標從 1 起算。
func (w *ExcelWriter) set(sheet string, col, row int, v interface{}, k *styleKey) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := w.f.SetCellValue(sheet, cell, v); err != nil {
		return err
	}
	if k == nil {
		return nil
	}
	id, err := w.style(*k)
	if err != nil {
		return err
	}
	return w.f.SetCellStyle(sheet, cell, cell, id)
}

func (w *ExcelWriter) headerRow(sheet string, row int, headers []string, border bool) error {
	k := styleKey{fill: headerFill, fontColor: "FFFFFF", bold: true, size: 11, center: true, border: border}
	for i, h := range headers {
		if err := w.set(sheet, i+1, row, h, &k); err != nil {
			return err
		}
	}
	return nil
}

func (w *ExcelWriter) widths(sheet string, widths map[string]float64) error {
	for col, width := range widths {
		if err := w.f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}
	return nil
}

func (w *ExcelWriter) summary(tables map[string]ranking.RankTable, categories []string) error {
	sheet := summarySheet
	if err := w.set(sheet, 1, 1, w.brand+" Ranking Report", &styleKey{bold: true, size: 16}); err != nil {
		return err
	}
	if err := w.f.MergeCell(sheet, "A1", "E1"); err != nil {
		return err
	}
	if err := w.set(sheet, 1, 2, "Generated: "+w.now().Format("2006-01-02 15:04"), &styleKey{italic: true, size: 10}); err != nil {
		return err
	}
	if err := w.set(sheet, 1, 4, "Category Summary", &styleKey{bold: true, size: 12}); err != nil {
		return err
	}
	if err := w.headerRow(sheet, 5, []string{"Category", "Total Products", "Focus Products", "Focus Best Rank", "Focus Avg Rank"}, false); err != nil {
		return err
	}

	row := 6
	for _, c := range categories {
		table := tables[c]
		if table.Empty() {
			continue
		}
		focus := table.FocusRows()
		var best, avg interface{} = "-", "-"
		pooled := analysis.PooledRanks(focus)
		if v, ok := analysis.Best(pooled); ok {
			best = v
		}
		if v, ok := analysis.Avg(pooled); ok {
			avg = v
		}
		values := []interface{}{ranking.TitleCategory(c), len(table.Rows), len(focus), best, avg}
		var k *styleKey
		if len(focus) > 0 {
			k = &styleKey{fill: focusFill}
		}
		for i, v := range values {
			if err := w.set(sheet, i+1, row, v, k); err != nil {
				return err
			}
		}
		row++
	}
	return w.widths(sheet, map[string]float64{"A": 20, "B": 15, "C": 18, "D": 18, "E": 18})
}

// dayLabel 以實際日期為標題，沒有日期時往回推算。
func (w *ExcelWriter) dayLabel(table ranking.RankTable, day, days int) string {
	if day-1 < len(table.Dates) && !table.Dates[day-1].IsZero() {
		return table.Dates[day-1].Format("01/02")
	}
	return w.now().AddDate(0, 0, -(days - day)).Format("01/02")
}

func (w *ExcelWriter) category(category string, table ranking.RankTable) error {
	sheet := truncate(ranking.TitleCategory(category), 31)
	if _, err := w.f.NewSheet(sheet); err != nil {
		return err
	}
	days := table.Days()
	headers := []string{"Product", "Brand", "Focus"}
	for d := 1; d <= days; d++ {
		headers = append(headers, w.dayLabel(table, d, days))
	}
	if err := w.headerRow(sheet, 1, headers, true); err != nil {
		return err
	}

	for i, r := range table.Rows {
		row := i + 2
		fill := ""
		if r.IsFocusBrand {
			fill = focusFill
		}
		focus := "No"
		if r.IsFocusBrand {
			focus = "Yes"
		}
		base := styleKey{fill: fill, border: true}
		for col, v := range []interface{}{truncate(r.ProductName, 50), truncate(r.Brand, 20), focus} {
			if err := w.set(sheet, col+1, row, v, &base); err != nil {
				return err
			}
		}
		for d := 1; d <= days; d++ {
			k := styleKey{fill: fill, border: true, center: true}
			var v interface{} = "-"
			if rank, ok := r.RankOn(d); ok {
				v = rank
				switch {
				case rank <= 5:
					k.bold, k.fontColor = true, top5Color
				case rank <= 10:
					k.bold, k.fontColor = true, top10Color
				}
			}
			if err := w.set(sheet, d+3, row, v, &k); err != nil {
				return err
			}
		}
	}

	if err := w.widths(sheet, map[string]float64{"A": 40, "B": 15, "C": 10}); err != nil {
		return err
	}
	if days == 0 {
		return nil
	}
	first, _ := excelize.ColumnNumberToName(4)
	last, _ := excelize.ColumnNumberToName(3 + days)
	ref := fmt.Sprintf("%s2:%s%d", first, last, len(table.Rows)+1)
	return w.f.SetConditionalFormat(sheet, ref, []excelize.ConditionalFormatOptions{{
		Type:     "3_color_scale",
		Criteria: "=",
		MinType:  "num",
		MidType:  "num",
		MaxType:  "num",
		MinValue: "1",
		MidValue: "25",
		MaxValue: "50",
		MinColor: "#63BE7B",
		MidColor: "#FFEB84",
		MaxColor: "#F8696B",
	}})
}

func (w *ExcelWriter) focus(tables map[string]ranking.RankTable, categories []string) error {
	sheet := focusSheet
	if _, err := w.f.NewSheet(sheet); err != nil {
		return err
	}
	if err := w.set(sheet, 1, 1, w.brand+" Products Performance", &styleKey{bold: true, size: 14}); err != nil {
		return err
	}
	if err := w.f.MergeCell(sheet, "A1", "F1"); err != nil {
		return err
	}

	row := 3
	for _, c := range categories {
		focus := tables[c].FocusRows()
		if len(focus) == 0 {
			continue
		}
		if err := w.set(sheet, 1, row, "["+ranking.TitleCategory(c)+"]", &styleKey{bold: true, size: 12}); err != nil {
			return err
		}
		row++
		if err := w.headerRow(sheet, row, []string{"Product", "Best Rank", "Worst Rank", "Avg Rank", "TOP 5 Days", "TOP 10 Days"}, true); err != nil {
			return err
		}
		row++

		for _, r := range focus {
			stats, ok := analysis.Summarize(r.Values(), analysis.EndpointTrend)
			if !ok {
				continue
			}
			k := styleKey{border: true}
			if stats.Top5Days >= 7 {
				k.fill = focusFill
			}
			values := []interface{}{truncate(r.ProductName, 50), stats.BestRank, stats.WorstRank, stats.AvgRank, stats.Top5Days, stats.Top10Days}
			for i, v := range values {
				if err := w.set(sheet, i+1, row, v, &k); err != nil {
					return err
				}
			}
			row++
		}
		row += 2
	}
	return w.widths(sheet, map[string]float64{"A": 40, "B": 15, "C": 15, "D": 15, "E": 15, "F": 15})
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
