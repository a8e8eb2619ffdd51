package httpapi

import (
	"log"
	"net/http"
	"time"

	"ranking-insight/internal/application/auth"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleLogin(c *gin.Context) {
	var body loginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, http.StatusBadRequest, errCodeBadRequest, "invalid body")
		return
	}

	res, err := s.app.Login.Execute(c.Request.Context(), auth.LoginInput{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		log.Printf("[Auth] login failure for %s: %v", body.Email, err)
		writeError(c, http.StatusUnauthorized, errCodeInvalidCredentials, "invalid email or password")
		return
	}
	log.Printf("[Auth] login success user_id=%s role=%s", res.User.ID, res.User.Role)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"id":    res.User.ID,
			"email": res.User.Email,
			"role":  res.User.Role,
		},
		"access_token": res.Token.AccessToken,
		"token_type":   "Bearer",
		"expiry":       res.Token.ExpiresAt.Format(time.RFC3339),
	})
}
