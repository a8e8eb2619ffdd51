package catalog

import "ranking-insight/internal/domain/ranking"

// DefaultFocusProducts 回傳內建的重點品牌商品陣容。
func DefaultFocusProducts() []ranking.Product {
	return []ranking.Product{
		{
			ProductName:    "Lip Sleeping Mask",
			Brand:          DefaultFocusBrand,
			Category:       "Lip Care",
			AmazonCategory: ranking.CategoryLipCare,
			Price:          24.00,
			Rating:         4.6,
			SkinType:       "All",
			Features:       "Overnight lip treatment, Berry flavor, Vitamin C, Hyaluronic Acid",
			Ingredients:    "Diisostearyl Malate, Hydrogenated Polyisobutene, Candelilla Wax, Murumuru Seed Butter, Coconut Oil",
		},
		{
			ProductName:    "Water Bank Blue Hyaluronic Cream",
			Brand:          DefaultFocusBrand,
			Category:       "Moisturizer",
			AmazonCategory: ranking.CategorySkincare,
			Price:          39.00,
			Rating:         4.5,
			SkinType:       "Normal, Dry, Combination",
			Features:       "Blue Hyaluronic Acid, 72-hour hydration, Squalane, Lightweight texture",
			Ingredients:    "Water, Glycerin, Butylene Glycol, Dimethicone, Niacinamide, Sodium Hyaluronate",
		},
		{
			ProductName:    "Cream Skin Refiner",
			Brand:          DefaultFocusBrand,
			Category:       "Treatment",
			AmazonCategory: ranking.CategorySkincare,
			Price:          38.00,
			Rating:         4.4,
			SkinType:       "All",
			Features:       "2-in-1 toner and cream, White tea leaf water, Amino acid-rich",
			Ingredients:    "Water, Glycerin, Alcohol Denat., Butylene Glycol, Caprylic/Capric Triglyceride, Niacinamide",
		},
		{
			ProductName:    "Water Sleeping Mask",
			Brand:          DefaultFocusBrand,
			Category:       "Face Mask",
			AmazonCategory: ranking.CategorySkincare,
			Price:          32.00,
			Rating:         4.5,
			SkinType:       "All",
			Features:       "Overnight mask, Hydro Ionized Mineral Water, Sleep-Scent technology",
			Ingredients:    "Water, Butylene Glycol, Cyclopentasiloxane, Glycerin, Trehalose, Sodium Hyaluronate",
		},
		{
			ProductName:    "Neo Cushion Matte",
			Brand:          DefaultFocusBrand,
			Category:       "Face Powder",
			AmazonCategory: ranking.CategoryFacePowder,
			Price:          38.00,
			Rating:         4.3,
			SkinType:       "Oily, Combination",
			Features:       "Matte finish, SPF 42 PA++, Blur effect, Long-lasting coverage",
			Ingredients:    "Water, Cyclopentasiloxane, Titanium Dioxide, Phenyl Trimethicone, Ethylhexyl Methoxycinnamate",
		},
		{
			ProductName:    "Lip Glowy Balm",
			Brand:          DefaultFocusBrand,
			Category:       "Lip Makeup",
			AmazonCategory: ranking.CategoryLipMakeup,
			Price:          18.00,
			Rating:         4.4,
			SkinType:       "All",
			Features:       "Tinted lip balm, Shea butter, Murumuru butter, Glossy finish",
			Ingredients:    "Diisostearyl Malate, Hydrogenated Polyisobutene, Polybutene, Mica, Shea Butter",
		},
		{
			ProductName:    "Radian-C Cream",
			Brand:          DefaultFocusBrand,
			Category:       "Moisturizer",
			AmazonCategory: ranking.CategorySkincare,
			Price:          48.00,
			Rating:         4.5,
			SkinType:       "All",
			Features:       "Vitamin C, Brightening, Dark spot care, Antioxidant",
			Ingredients:    "Water, Glycerin, Dimethicone, Niacinamide, Ascorbic Acid, Panthenol",
		},
		{
			ProductName:    "Bouncy & Firm Sleeping Mask",
			Brand:          DefaultFocusBrand,
			Category:       "Face Mask",
			AmazonCategory: ranking.CategorySkincare,
			Price:          36.00,
			Rating:         4.4,
			SkinType:       "Normal, Dry",
			Features:       "Anti-aging, Firming, Overnight treatment, Peptide complex",
			Ingredients:    "Water, Butylene Glycol, Glycerin, Dimethicone, Niacinamide, Adenosine, Peptides",
		},
		{
			ProductName:    "Water Bank Hydro Essence",
			Brand:          DefaultFocusBrand,
			Category:       "Treatment",
			AmazonCategory: ranking.CategorySkincare,
			Price:          44.00,
			Rating:         4.5,
			SkinType:       "All",
			Features:       "Hydrating essence, Blue Hyaluronic Acid, Lightweight, Fast-absorbing",
			Ingredients:    "Water, Butylene Glycol, Glycerin, Sodium Hyaluronate, Niacinamide, Green Mineral Water",
		},
		{
			ProductName:    "Lip Sleeping Mask Vanilla",
			Brand:          DefaultFocusBrand,
			Category:       "Lip Care",
			AmazonCategory: ranking.CategoryLipCare,
			Price:          24.00,
			Rating:         4.6,
			SkinType:       "All",
			Features:       "Overnight lip treatment, Vanilla flavor, Vitamin C, Hyaluronic Acid",
			Ingredients:    "Diisostearyl Malate, Hydrogenated Polyisobutene, Shea Butter, Murumuru Butter, Vanilla Extract",
		},
	}
}
