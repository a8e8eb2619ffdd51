package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleHealth(c *gin.Context) {
	dbStatus := "using_memory"
	if s.app.DB != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		dbStatus = "ok"
		if err := s.app.DB.PingContext(ctx); err != nil {
			dbStatus = "error: " + err.Error()
		}
	}
	provider := s.app.Ranking.Provider()

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"health":       "ok",
		"db":           dbStatus,
		"provider":     provider.Name(),
		"is_live_data": provider.IsLive(),
		"time":         time.Now().Format(time.RFC3339),
	})
}
