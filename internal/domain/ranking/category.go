package ranking

import "strings"

// 支援的 Amazon 類別。
const (
	CategoryLipCare    = "lip_care"
	CategorySkincare   = "skincare"
	CategoryLipMakeup  = "lip_makeup"
	CategoryFacePowder = "face_powder"
)

// Categories 依固定順序列出所有類別。
var Categories = []string{CategoryLipCare, CategorySkincare, CategoryLipMakeup, CategoryFacePowder}

var categoryLabels = map[string]string{
	"all_beauty":       "Beauty & Personal Care",
	CategoryLipCare:    "Lip Care",
	CategorySkincare:   "Skin Care",
	CategoryLipMakeup:  "Lip Makeup",
	CategoryFacePowder: "Face Powder",
}

// IsKnownCategory 檢查類別是否在支援清單內。
func IsKnownCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// CategoryLabel 回傳類別的顯示名稱。
func CategoryLabel(category string) string {
	if l, ok := categoryLabels[category]; ok {
		return l
	}
	return TitleCategory(category)
}

// TitleCategory 將 lip_care 轉成 "Lip Care"，用於報表與卡片標題。
func TitleCategory(category string) string {
	parts := strings.Fields(strings.ReplaceAll(category, "_", " "))
	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + strings.ToLower(p[1:])
	}
	return strings.Join(parts, " ")
}
