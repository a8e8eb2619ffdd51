package catalog

import (
	"strings"
	"testing"

	"ranking-insight/internal/domain/ranking"
)

func TestLoadDefault(t *testing.T) {
	c, err := Load("", "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	all := c.All()
	if len(all) <= len(DefaultFocusProducts()) {
		t.Fatalf("expected competitors to be loaded, got %d products", len(all))
	}
	if all[0].ProductID != "1" || !all[0].IsFocusBrand {
		t.Errorf("expected first product to be focus product with id 1, got %+v", all[0])
	}
	if got := len(c.Focus()); got != 10 {
		t.Errorf("expected 10 focus products, got %d", got)
	}
	for _, cat := range ranking.Categories {
		if len(c.ForCategory(cat)) < 2 {
			t.Errorf("category %s should have focus and competitor products", cat)
		}
	}
}

func TestParseCSVMapsLabelsAndSkinTypes(t *testing.T) {
	in := "Label,Brand,Name,Price,Rank,Combination,Dry,Normal,Oily,Sensitive\n" +
		"Moisturizer,Acme,Rich Cream,30,4.1,1,1,0,0,0\n" +
		"Perfume,Acme,Eau,80,4.0,0,0,0,0,0\n" +
		",,,,,,,,,\n"
	got, err := ParseCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 products, got %d", len(got))
	}
	if got[0].AmazonCategory != ranking.CategorySkincare || got[0].SkinType != "Combination, Dry" {
		t.Errorf("unexpected first product %+v", got[0])
	}
	if got[1].AmazonCategory != ranking.CategorySkincare || got[1].SkinType != "All" {
		t.Errorf("unmapped label should default to skincare, got %+v", got[1])
	}
	if got[0].Price != 30 || got[0].Rating != 4.1 {
		t.Errorf("unexpected price/rating %+v", got[0])
	}
}

func TestParseCSVMissingColumn(t *testing.T) {
	if _, err := ParseCSV(strings.NewReader("Brand,Name\nA,B\n")); err == nil {
		t.Fatal("expected error for missing Label column")
	}
}

func TestForCategoryFallsBackToFreeText(t *testing.T) {
	c := New("LANEIGE", nil, []ranking.Product{
		{ProductName: "A", Brand: "X", Category: "Premium Lip Care Set", AmazonCategory: "gift_sets"},
		{ProductName: "B", Brand: "Y", Category: "Hair", AmazonCategory: "hair"},
	})
	got := c.ForCategory("lip_care")
	if len(got) != 1 || got[0].ProductName != "A" {
		t.Fatalf("expected free-text fallback match, got %+v", got)
	}
	if got := c.ForCategory("hair"); len(got) != 1 || got[0].ProductName != "B" {
		t.Fatalf("expected exact match, got %+v", got)
	}
	if got := c.ForCategory("nails"); len(got) != 0 {
		t.Fatalf("expected no match, got %+v", got)
	}
}

func TestFilter(t *testing.T) {
	c := New("LANEIGE", DefaultFocusProducts(), []ranking.Product{
		{ProductName: "Other", Brand: "Other", AmazonCategory: ranking.CategoryLipCare},
	})
	if got := c.Filter(ranking.CategoryLipCare, false, 0); len(got) != 3 {
		t.Errorf("expected 3 lip care products, got %d", len(got))
	}
	if got := c.Filter(ranking.CategoryLipCare, true, 0); len(got) != 2 {
		t.Errorf("expected 2 focus lip care products, got %d", len(got))
	}
	if got := c.Filter("", false, 4); len(got) != 4 {
		t.Errorf("expected limit 4, got %d", len(got))
	}
}
