package httpapi

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"ranking-insight/internal/application/auth"
	"ranking-insight/internal/infrastructure/metrics"

	"github.com/gin-gonic/gin"
)

func (s *Server) requireAuth(perm auth.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := parseBearer(c.GetHeader("Authorization"))
		if token == "" {
			if t, err := c.Cookie("access_token"); err == nil {
				token = t
			}
		}
		if token == "" {
			writeError(c, http.StatusUnauthorized, errCodeUnauthorized, "unauthorized")
			return
		}

		claims, err := s.app.Tokens.ParseAccessToken(token)
		if err != nil {
			writeError(c, http.StatusUnauthorized, errCodeUnauthorized, "invalid token")
			return
		}

		if perm != "" {
			allowed, reason, err := s.app.Authz.Authorize(c.Request.Context(), claims.UserID, perm)
			if err != nil || !allowed {
				log.Printf("[Auth] forbidden user_id=%s perm=%s reason=%s err=%v", claims.UserID, perm, reason, err)
				writeError(c, http.StatusForbidden, errCodeForbidden, "forbidden")
				return
			}
		}

		c.Set("userID", claims.UserID)
		c.Next()
	}
}

func (s *Server) ginLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Observe(latency.Seconds())

		if raw != "" {
			path = path + "?" + raw
		}
		log.Printf("[GIN] %v | %3d | %13v | %-7s %s",
			start.Format("2006/01/02 - 15:04:05"),
			status,
			latency,
			c.Request.Method,
			path,
		)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
