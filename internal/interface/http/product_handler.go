package httpapi

import (
	"net/http"
	"strconv"

	"ranking-insight/internal/domain/ranking"

	"github.com/gin-gonic/gin"
)

const defaultProductLimit = 100

func (s *Server) handleProducts(c *gin.Context) {
	focusOnly, _ := strconv.ParseBool(c.DefaultQuery("focus_only", "false"))
	limit := parseIntDefault(c.Query("limit"), defaultProductLimit)
	if limit < 0 {
		writeError(c, http.StatusBadRequest, errCodeBadRequest, "limit must be non-negative")
		return
	}
	products := s.app.Catalog.Filter(c.Query("category"), focusOnly, limit)
	if products == nil {
		products = []ranking.Product{}
	}
	c.JSON(http.StatusOK, products)
}

func (s *Server) handleFocusProducts(c *gin.Context) {
	products := s.app.Catalog.Focus()
	if products == nil {
		products = []ranking.Product{}
	}
	c.JSON(http.StatusOK, products)
}
