package httpapi

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleInsights(c *gin.Context) {
	out, err := s.app.Insights(c.Request.Context())
	if err != nil {
		log.Printf("insights failed err=%v", err)
		writeError(c, http.StatusServiceUnavailable, errCodeDataNotReady, "ranking data not ready")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleRefreshInsights(c *gin.Context) {
	out, err := s.app.RefreshInsights(c.Request.Context())
	if err != nil {
		log.Printf("insights refresh failed user_id=%s err=%v", currentUserID(c), err)
		writeError(c, http.StatusServiceUnavailable, errCodeDataNotReady, "ranking data not ready")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"source":   out.Source,
		"insights": out,
	})
}
