package httpapi

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func TestRankings(t *testing.T) {
	s := newTestServer(t)

	t.Run("SingleCategory", func(t *testing.T) {
		w := doRequest(s, http.MethodGet, "/api/rankings?category=lip_care&days=7", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string][]map[string]interface{}
		decode(t, w, &body)
		rows := body["lip_care"]
		if len(rows) == 0 {
			t.Fatal("expected lip_care rows")
		}
		if _, ok := rows[0]["day_7"]; !ok {
			t.Errorf("expected day_7 column, got %v", rows[0])
		}
		if _, ok := rows[0]["day_8"]; ok {
			t.Errorf("unexpected day_8 column")
		}
	})

	t.Run("All", func(t *testing.T) {
		w := doRequest(s, http.MethodGet, "/api/rankings?days=5", "", nil)
		var body map[string][]map[string]interface{}
		decode(t, w, &body)
		if len(body) != 4 {
			t.Fatalf("expected 4 categories, got %d", len(body))
		}
	})

	t.Run("UnknownCategory", func(t *testing.T) {
		w := doRequest(s, http.MethodGet, "/api/rankings?category=shoes", "", nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("ExportCSV", func(t *testing.T) {
		w := doRequest(s, http.MethodGet, "/api/rankings/export?category=lip_care&days=3", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
			t.Errorf("unexpected content type %q", ct)
		}
		if !strings.HasPrefix(w.Body.String(), "product_id,product_name,brand,is_focus_brand,price,day_1,day_2,day_3,avg_rank") {
			t.Errorf("unexpected csv header: %s", strings.SplitN(w.Body.String(), "\n", 2)[0])
		}
	})

	t.Run("BadDays", func(t *testing.T) {
		for _, days := range []string{"0", "366", "abc"} {
			w := doRequest(s, http.MethodGet, "/api/rankings?days="+days, "", nil)
			if w.Code != http.StatusBadRequest {
				t.Errorf("days=%s expected 400, got %d", days, w.Code)
			}
		}
	})
}

func TestRankingSummaryAndHistory(t *testing.T) {
	s := newTestServer(t)
	token := adminToken(t, s)
	if w := doRequest(s, http.MethodPost, "/api/admin/backfill", token, backfillRequest{Days: 10}); w.Code != http.StatusOK {
		t.Fatalf("backfill expected 200, got %d", w.Code)
	}

	w := doRequest(s, http.MethodGet, "/api/rankings/summary?days=10", "", nil)
	var summary map[string]map[string]map[string]interface{}
	decode(t, w, &summary)
	lip, ok := summary["lip_care"]
	if !ok || len(lip) == 0 {
		t.Fatalf("expected lip_care focus summary, got %v", summary)
	}

	var product string
	for name := range lip {
		product = name
		break
	}

	t.Run("History", func(t *testing.T) {
		w := doRequest(s, http.MethodGet, "/api/rankings/history?days=10&product="+url.QueryEscape(product), "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body struct {
			History struct {
				ProductName string `json:"product_name"`
				Rankings    []int  `json:"rankings"`
			} `json:"history"`
			Insight string `json:"insight"`
		}
		decode(t, w, &body)
		if body.History.ProductName != product || len(body.History.Rankings) != 10 || body.Insight == "" {
			t.Fatalf("unexpected history: %+v", body)
		}
	})

	t.Run("MissingProduct", func(t *testing.T) {
		w := doRequest(s, http.MethodGet, "/api/rankings/history", "", nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		w := doRequest(s, http.MethodGet, "/api/rankings/history?product=Nope", "", nil)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("ChartData", func(t *testing.T) {
		w := doRequest(s, http.MethodGet, "/api/rankings/chart-data?days=10", "", nil)
		var points []map[string]interface{}
		decode(t, w, &points)
		if len(points) != 10 || points[0]["date"] != "Day 1" {
			t.Fatalf("unexpected chart data: %v", points)
		}
	})

	t.Run("Stats", func(t *testing.T) {
		w := doRequest(s, http.MethodGet, "/api/stats", "", nil)
		var stats struct {
			TotalProducts int `json:"total_products"`
			FocusProducts int `json:"focus_products"`
		}
		decode(t, w, &stats)
		if stats.FocusProducts != 10 || stats.TotalProducts < stats.FocusProducts {
			t.Fatalf("unexpected stats: %+v", stats)
		}
	})
}

func TestInsights(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(s, http.MethodGet, "/api/insights", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]interface{}
	decode(t, w, &body)
	for _, key := range []string{"performanceCards", "marketingCards", "performanceChart", "categoryTrend", "lastUpdated"} {
		if _, ok := body[key]; !ok {
			t.Errorf("missing key %s", key)
		}
	}

	token := adminToken(t, s)
	w = doRequest(s, http.MethodPost, "/api/admin/insights/refresh", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("refresh expected 200, got %d", w.Code)
	}
	var refreshed struct {
		Source string `json:"source"`
	}
	decode(t, w, &refreshed)
	if refreshed.Source != "rules" {
		t.Errorf("expected rules source, got %q", refreshed.Source)
	}
}

func TestReports(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(s, http.MethodGet, "/api/reports", "", nil)
	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Fatalf("expected empty list, got %d %s", w.Code, w.Body.String())
	}

	token := adminToken(t, s)
	w = doRequest(s, http.MethodPost, "/api/admin/reports/generate", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("generate expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var gen struct {
		Filename string `json:"filename"`
	}
	decode(t, w, &gen)
	if gen.Filename == "" {
		t.Fatal("expected filename")
	}

	w = doRequest(s, http.MethodGet, "/api/reports", "", nil)
	var list []map[string]interface{}
	decode(t, w, &list)
	if len(list) != 1 || list[0]["filename"] != gen.Filename {
		t.Fatalf("unexpected list: %v", list)
	}

	w = doRequest(s, http.MethodGet, "/api/reports/download/"+gen.Filename, "", nil)
	if w.Code != http.StatusOK || w.Body.Len() == 0 {
		t.Fatalf("download expected 200 with body, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("unexpected content type %q", ct)
	}

	w = doRequest(s, http.MethodGet, "/api/reports/download/notes.txt", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for non-xlsx, got %d", w.Code)
	}
	w = doRequest(s, http.MethodGet, "/api/reports/download/missing.xlsx", "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
