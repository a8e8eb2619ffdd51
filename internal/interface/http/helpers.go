package httpapi

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const maxQueryDays = 365

func parseBearer(h string) string {
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func currentUserID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func parseIntDefault(val string, def int) int {
	if val == "" {
		return def
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return def
	}
	return n
}

// queryDays 讀取 days 參數，超出 1..365 時回傳 ok=false。
func (s *Server) queryDays(c *gin.Context) (int, bool) {
	raw := c.Query("days")
	if raw == "" {
		return s.app.Config.Ranking.DefaultDays, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > maxQueryDays {
		return 0, false
	}
	return n, true
}

func optionalString(v string) interface{} {
	if v == "" {
		return nil
	}
	return v
}

func jobRunToMap(j jobRun) map[string]interface{} {
	return map[string]interface{}{
		"id":               j.ID,
		"kind":             j.Kind,
		"triggered_by":     optionalString(j.TriggeredBy),
		"start":            j.Start.Format(time.RFC3339),
		"end":              j.End.Format(time.RFC3339),
		"duration_seconds": int(j.End.Sub(j.Start).Seconds()),
		"provider":         optionalString(j.Provider),
		"collect": map[string]interface{}{
			"ran":     j.CollectRan,
			"success": j.CollectOK,
			"saved":   j.Saved,
			"error":   optionalString(j.CollectErr),
		},
		"insights": map[string]interface{}{
			"source": optionalString(j.InsightsSource),
			"error":  optionalString(j.InsightsErr),
		},
		"digest_sent": j.DigestSent,
		"report":      optionalString(j.Report),
		"error":       optionalString(j.Err),
	}
}
