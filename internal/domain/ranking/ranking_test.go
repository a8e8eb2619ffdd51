package ranking

import (
	"encoding/json"
	"testing"
	"time"
)

func TestRankRecordValidate(t *testing.T) {
	ok := RankRecord{
		Date:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Category:    CategoryLipCare,
		ProductName: "Lip Sleeping Mask",
		Brand:       "LANEIGE",
		Rank:        1,
	}
	if err := ok.Validate(); err != nil {
		t.Fatalf("expected valid record, got %v", err)
	}

	bad := RankRecord{Rank: 0, Price: -1}
	err := bad.Validate()
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	if !IsValidationError(err) {
		t.Fatalf("expected validation error type, got %T", err)
	}
	if got := len(err.(*ValidationError).Reasons); got != 5 {
		t.Errorf("expected 5 reasons, got %d", got)
	}
}

func TestTableRowValuesSkipsMissing(t *testing.T) {
	r := TableRow{Ranks: []int{3, 0, 5}}
	v := r.Values()
	if len(v) != 2 || v[0] != 3 || v[1] != 5 {
		t.Fatalf("unexpected values %v", v)
	}
	if _, ok := r.RankOn(2); ok {
		t.Errorf("day_2 should be missing")
	}
	if got, ok := r.RankOn(3); !ok || got != 5 {
		t.Errorf("expected day_3=5, got %d %v", got, ok)
	}
}

func TestTableRowMarshalJSON(t *testing.T) {
	r := TableRow{ProductID: "1", ProductName: "A", Brand: "B", IsFocusBrand: true, Ranks: []int{2, 0}}
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]interface{}
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["day_1"] != float64(2) {
		t.Errorf("expected day_1=2, got %v", got["day_1"])
	}
	if v, ok := got["day_2"]; !ok || v != nil {
		t.Errorf("expected day_2=null, got %v", v)
	}
	if got["is_focus_brand"] != true {
		t.Errorf("expected focus flag")
	}
}

func TestRankTableHelpers(t *testing.T) {
	tbl := RankTable{Rows: []TableRow{
		{ProductName: "A", IsFocusBrand: true, Ranks: []int{1, 2}},
		{ProductName: "B", Ranks: []int{2, 1}},
	}}
	if tbl.Days() != 2 {
		t.Errorf("expected 2 days, got %d", tbl.Days())
	}
	if len(tbl.FocusRows()) != 1 || len(tbl.CompetitorRows()) != 1 {
		t.Errorf("unexpected focus/competitor split")
	}
	col := tbl.Column(2)
	if col[0] != 2 || col[1] != 1 {
		t.Errorf("unexpected column %v", col)
	}
	if _, ok := tbl.Row("C"); ok {
		t.Errorf("unexpected row C")
	}
}

func TestTitleCategory(t *testing.T) {
	if got := TitleCategory("lip_care"); got != "Lip Care" {
		t.Errorf("got %q", got)
	}
	if got := CategoryLabel(CategorySkincare); got != "Skin Care" {
		t.Errorf("got %q", got)
	}
	if !IsKnownCategory("face_powder") || IsKnownCategory("hair") {
		t.Errorf("unexpected category check")
	}
}
