package ranking

// Product 為商品目錄中的一筆資料。
type Product struct {
	ProductID      string  `json:"product_id"`
	ProductName    string  `json:"product_name"`
	Brand          string  `json:"brand"`
	Category       string  `json:"category"`
	AmazonCategory string  `json:"amazon_category"`
	Price          float64 `json:"price"`
	Rating         float64 `json:"rating"`
	SkinType       string  `json:"skin_type"`
	Features       string  `json:"features,omitempty"`
	Ingredients    string  `json:"ingredients,omitempty"`
	IsFocusBrand   bool    `json:"is_focus_brand"`
}
