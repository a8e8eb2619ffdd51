package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Ping 回傳存活檢查 handler。
func Ping() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "pong",
			"timestamp": time.Now().Unix(),
		})
	}
}
