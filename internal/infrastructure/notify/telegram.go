package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxMessageLen 為 Telegram 單則訊息字元上限。
const maxMessageLen = 4096

var errNotConfigured = errors.New("telegram token or chat_id missing")

// Notifier 推送排名摘要。
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// TelegramClient 以 sendMessage 推送摘要到指定 chat。
type TelegramClient struct {
	token      string
	chatID     int64
	prefix     string
	baseURL    string
	httpClient *http.Client
}

// NewTelegramClient 建立 client；prefix 會加在每則訊息前，例如環境名稱。
func NewTelegramClient(token string, chatID int64, prefix string) *TelegramClient {
	return &TelegramClient{
		token:      token,
		chatID:     chatID,
		prefix:     prefix,
		baseURL:    "https://api.telegram.org",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Notify 推送訊息，過長時依行切成多則依序送出。
func (c *TelegramClient) Notify(ctx context.Context, text string) error {
	if c == nil {
		return fmt.Errorf("telegram client is nil")
	}
	if c.token == "" || c.chatID == 0 {
		return errNotConfigured
	}
	if c.prefix != "" {
		text = fmt.Sprintf("[%s] %s", c.prefix, text)
	}
	for i, part := range splitMessage(text, maxMessageLen) {
		if err := c.send(ctx, part); err != nil {
			return fmt.Errorf("telegram part %d: %w", i+1, err)
		}
	}
	return nil
}

func (c *TelegramClient) send(ctx context.Context, text string) error {
	body, err := json.Marshal(map[string]interface{}{
		"chat_id":    c.chatID,
		"text":       text,
		"parse_mode": "Markdown",
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram send failed status=%d body=%s", resp.StatusCode, string(raw))
	}
	return nil
}

// splitMessage 盡量在換行處切段，單行超長時硬切。
func splitMessage(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}
	var parts []string
	var cur strings.Builder
	curLen := 0
	flush := func() {
		if curLen > 0 {
			parts = append(parts, strings.TrimRight(cur.String(), "\n"))
			cur.Reset()
			curLen = 0
		}
	}
	for _, line := range strings.SplitAfter(text, "\n") {
		lr := []rune(line)
		if curLen+len(lr) > limit {
			flush()
		}
		for len(lr) > limit {
			parts = append(parts, string(lr[:limit]))
			lr = lr[limit:]
		}
		cur.WriteString(string(lr))
		curLen += len(lr)
	}
	flush()
	return parts
}
