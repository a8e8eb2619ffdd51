package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

func TestTelegramClient_Notify(t *testing.T) {
	t.Run("nil_client", func(t *testing.T) {
		var c *TelegramClient
		if err := c.Notify(context.Background(), "msg"); err == nil {
			t.Error("expected nil client error")
		}
	})

	t.Run("missing_config", func(t *testing.T) {
		c := NewTelegramClient("", 0, "")
		if err := c.Notify(context.Background(), "msg"); !errors.Is(err, errNotConfigured) {
			t.Errorf("expected missing config error, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		var got map[string]interface{}
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/bottok/sendMessage" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			_ = json.NewDecoder(r.Body).Decode(&got)
			_, _ = w.Write([]byte(`{"ok":true}`))
		}))
		defer ts.Close()

		c := NewTelegramClient("tok", 123, "PROD")
		c.baseURL = ts.URL
		if err := c.Notify(context.Background(), "*Lip Care* digest"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got["text"] != "[PROD] *Lip Care* digest" || got["parse_mode"] != "Markdown" {
			t.Errorf("unexpected payload %v", got)
		}
	})

	t.Run("server_error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"bad"}`))
		}))
		defer ts.Close()

		c := NewTelegramClient("tok", 123, "")
		c.baseURL = ts.URL
		if err := c.Notify(context.Background(), "hello"); err == nil {
			t.Error("expected error for 400 status")
		}
	})

	t.Run("long_message_is_split", func(t *testing.T) {
		var mu sync.Mutex
		calls := 0
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			calls++
			mu.Unlock()
			_, _ = w.Write([]byte(`{"ok":true}`))
		}))
		defer ts.Close()

		c := NewTelegramClient("tok", 123, "")
		c.baseURL = ts.URL
		line := strings.Repeat("x", 100) + "\n"
		if err := c.Notify(context.Background(), strings.Repeat(line, 60)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if calls != 2 {
			t.Errorf("expected 2 messages, got %d", calls)
		}
	})
}

func TestSplitMessage(t *testing.T) {
	if parts := splitMessage("short", 10); len(parts) != 1 || parts[0] != "short" {
		t.Fatalf("unexpected parts %v", parts)
	}
	parts := splitMessage("aaaa\nbbbb\ncccc", 10)
	if len(parts) != 2 || parts[0] != "aaaa\nbbbb" || parts[1] != "cccc" {
		t.Errorf("unexpected line split %q", parts)
	}
	parts = splitMessage(strings.Repeat("z", 25), 10)
	if len(parts) != 3 || len(parts[2]) != 5 {
		t.Errorf("unexpected hard split %q", parts)
	}
}
