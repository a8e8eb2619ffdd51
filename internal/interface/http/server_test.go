package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"ranking-insight/internal/app"
	"ranking-insight/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg, err := config.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.DB.DSN = ""
	cfg.Ranking.Provider = "mock"
	cfg.Ranking.Seed = 7
	cfg.Auth.Secret = "test-secret"
	cfg.Auth.AdminEmail = "admin@example.com"
	cfg.Auth.AdminPasswordHash = ""
	cfg.Redis.Addr = ""
	cfg.Insights.LLMEnabled = false
	cfg.Reports.OutputDir = t.TempDir()
	cfg.Reports.S3Bucket = ""
	cfg.Notifier.Telegram.Enabled = false
	cfg.Pipeline.AutoInterval = 0

	a, err := app.NewWithDB(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	return NewServer(a)
}

func doRequest(s *Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func loginToken(t *testing.T, s *Server, email, password string) string {
	t.Helper()
	w := doRequest(s, http.MethodPost, "/api/auth/login", "", loginRequest{Email: email, Password: password})
	if w.Code != http.StatusOK {
		t.Fatalf("login expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.AccessToken == "" {
		t.Fatalf("missing access token: %s", w.Body.String())
	}
	return resp.AccessToken
}

func adminToken(t *testing.T, s *Server) string {
	return loginToken(t, s, "admin@example.com", "password123")
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode body: %v (%s)", err, w.Body.String())
	}
}

func TestServer_Misc(t *testing.T) {
	s := newTestServer(t)

	t.Run("Ping", func(t *testing.T) {
		w := doRequest(s, http.MethodGet, "/api/ping", "", nil)
		if w.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", w.Code)
		}
	})

	t.Run("Health", func(t *testing.T) {
		w := doRequest(s, http.MethodGet, "/api/health", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]interface{}
		decode(t, w, &body)
		if body["db"] != "using_memory" || body["provider"] != "mock" || body["is_live_data"] != false {
			t.Errorf("unexpected health body: %v", body)
		}
	})

	t.Run("Metrics", func(t *testing.T) {
		w := doRequest(s, http.MethodGet, "/metrics", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if !bytes.Contains(w.Body.Bytes(), []byte("ranking_http_request_duration_seconds")) {
			t.Errorf("expected request histogram in metrics output")
		}
	})

	t.Run("Helpers", func(t *testing.T) {
		if optionalString("") != nil {
			t.Error("expected nil")
		}
		if parseIntDefault("123", 0) != 123 {
			t.Error("parseIntDefault failed")
		}
		if parseIntDefault("abc", 9) != 9 {
			t.Error("parseIntDefault fallback failed")
		}
		if parseBearer("Bearer abc") != "abc" || parseBearer("Basic abc") != "" || parseBearer("abc") != "" {
			t.Error("parseBearer failed")
		}
	})
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	t.Run("Success", func(t *testing.T) {
		if adminToken(t, s) == "" {
			t.Fatal("expected token")
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {
		w := doRequest(s, http.MethodPost, "/api/auth/login", "", loginRequest{Email: "admin@example.com", Password: "nope"})
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		var body errorResponse
		decode(t, w, &body)
		if body.ErrorCode != errCodeInvalidCredentials {
			t.Errorf("expected %s, got %s", errCodeInvalidCredentials, body.ErrorCode)
		}
	})

	t.Run("BadBody", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString("{"))
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestProducts(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(s, http.MethodGet, "/api/products/focus", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var focus []map[string]interface{}
	decode(t, w, &focus)
	if len(focus) != 10 {
		t.Fatalf("expected 10 focus products, got %d", len(focus))
	}

	w = doRequest(s, http.MethodGet, "/api/products?category=lip_care&limit=2", "", nil)
	var limited []map[string]interface{}
	decode(t, w, &limited)
	if len(limited) == 0 || len(limited) > 2 {
		t.Fatalf("expected 1-2 products, got %d", len(limited))
	}
	for _, p := range limited {
		if p["amazon_category"] != "lip_care" {
			t.Errorf("unexpected category %v", p["amazon_category"])
		}
	}

	w = doRequest(s, http.MethodGet, "/api/products?limit=-1", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for negative limit, got %d", w.Code)
	}
}
