package ranking

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout 為排名日期在儲存層與 API 的字串格式。
const DateLayout = "2006-01-02"

var (
	// ErrNotFound 表示查無商品或區間內沒有資料。
	ErrNotFound = errors.New("ranking data not found")
	// ErrUnknownCategory 表示類別不在支援清單內。
	ErrUnknownCategory = errors.New("unknown category")
)

// RankRecord 描述單一商品在某日、某類別的排名。建立後不再修改，同日同類別重新寫入時整批取代。
type RankRecord struct {
	Date         time.Time `json:"ranking_date"`
	Category     string    `json:"category"`
	ProductID    string    `json:"product_id"`
	ProductName  string    `json:"product_name"`
	Brand        string    `json:"brand"`
	Rank         int       `json:"rank"`
	IsFocusBrand bool      `json:"is_focus_brand"`
	Price        float64   `json:"price"`
}

// ValidationError 收集多個驗證失敗原因。
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("rank record validation failed: %v", e.Reasons)
}

// Validate 檢查欄位是否符合基本完整性條件。
func (r RankRecord) Validate() error {
	var reasons []string

	if r.Date.IsZero() {
		reasons = append(reasons, "ranking_date is required")
	}
	if r.Category == "" {
		reasons = append(reasons, "category is required")
	}
	if r.ProductName == "" {
		reasons = append(reasons, "product_name is required")
	}
	if r.Rank < 1 {
		reasons = append(reasons, "rank must be >= 1")
	}
	if r.Price < 0 {
		reasons = append(reasons, "price must be >= 0")
	}

	if len(reasons) > 0 {
		return &ValidationError{Reasons: reasons}
	}
	return nil
}

// IsValidationError 檢查錯誤是否為排名紀錄的驗證錯誤。
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// DateOnly 去掉時間部分，以 UTC 零點表示日曆日。
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
