package httpapi

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"ranking-insight/internal/application/analysis"
	"ranking-insight/internal/application/insights"
	"ranking-insight/internal/domain/ranking"

	"github.com/gin-gonic/gin"
)

func rowsOf(t ranking.RankTable) []ranking.TableRow {
	if t.Rows == nil {
		return []ranking.TableRow{}
	}
	return t.Rows
}

func (s *Server) handleRankings(c *gin.Context) {
	days, ok := s.queryDays(c)
	if !ok {
		writeError(c, http.StatusBadRequest, errCodeBadRequest, "days must be between 1 and 365")
		return
	}
	ctx := c.Request.Context()
	category := strings.TrimSpace(c.DefaultQuery("category", "all"))

	if category == "all" {
		tables, err := s.app.Tables(ctx, days)
		if err != nil {
			log.Printf("load rankings failed err=%v", err)
			writeError(c, http.StatusInternalServerError, errCodeInternal, "load rankings failed")
			return
		}
		out := make(map[string][]ranking.TableRow, len(tables))
		for cat, t := range tables {
			out[cat] = rowsOf(t)
		}
		c.JSON(http.StatusOK, out)
		return
	}

	table, err := s.app.Ranking.Rankings(ctx, category, days)
	if err != nil {
		if errors.Is(err, ranking.ErrUnknownCategory) {
			writeError(c, http.StatusBadRequest, errCodeBadRequest, err.Error())
			return
		}
		log.Printf("load rankings failed category=%s err=%v", category, err)
		writeError(c, http.StatusInternalServerError, errCodeInternal, "load rankings failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{category: rowsOf(table)})
}

func (s *Server) handleRankingSummary(c *gin.Context) {
	days, ok := s.queryDays(c)
	if !ok {
		writeError(c, http.StatusBadRequest, errCodeBadRequest, "days must be between 1 and 365")
		return
	}
	ctx := c.Request.Context()
	out := make(map[string]map[string]ranking.SummaryStats)
	for _, cat := range s.app.Ranking.Categories() {
		summary, err := s.app.Ranking.FocusSummary(ctx, cat, days)
		if err != nil {
			log.Printf("focus summary failed category=%s err=%v", cat, err)
			writeError(c, http.StatusInternalServerError, errCodeInternal, "summary failed")
			return
		}
		if len(summary) > 0 {
			out[cat] = summary
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleChartData(c *gin.Context) {
	days, ok := s.queryDays(c)
	if !ok {
		writeError(c, http.StatusBadRequest, errCodeBadRequest, "days must be between 1 and 365")
		return
	}
	points, err := s.app.Ranking.ChartData(c.Request.Context(), days)
	if err != nil {
		log.Printf("chart data failed err=%v", err)
		writeError(c, http.StatusInternalServerError, errCodeInternal, "chart data failed")
		return
	}
	c.JSON(http.StatusOK, points)
}

func (s *Server) handleProductHistory(c *gin.Context) {
	name := strings.TrimSpace(c.Query("product"))
	if name == "" {
		writeError(c, http.StatusBadRequest, errCodeBadRequest, "product required")
		return
	}
	days, ok := s.queryDays(c)
	if !ok {
		writeError(c, http.StatusBadRequest, errCodeBadRequest, "days must be between 1 and 365")
		return
	}
	hist, err := s.app.Ranking.ProductHistory(c.Request.Context(), name, days)
	if err != nil {
		log.Printf("product history failed product=%s err=%v", name, err)
		writeError(c, http.StatusInternalServerError, errCodeInternal, "history failed")
		return
	}
	if hist == nil {
		writeError(c, http.StatusNotFound, errCodeNotFound, "no ranking history for product")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"history": hist,
		"insight": insights.GenerateInsight(hist.ProductName, hist.SummaryStats),
	})
}

func (s *Server) handleStats(c *gin.Context) {
	tables, err := s.app.Tables(c.Request.Context(), 0)
	if err != nil {
		log.Printf("load rankings failed err=%v", err)
		writeError(c, http.StatusInternalServerError, errCodeInternal, "load rankings failed")
		return
	}
	cat := s.app.Catalog
	c.JSON(http.StatusOK, insights.Dashboard(len(cat.All()), len(cat.Focus()), tables))
}

func (s *Server) handleDBStats(c *gin.Context) {
	stats, err := s.app.Ranking.Stats(c.Request.Context())
	if err != nil {
		log.Printf("db stats failed err=%v", err)
		writeError(c, http.StatusInternalServerError, errCodeInternal, "stats failed")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) handleExportRankings(c *gin.Context) {
	category := strings.TrimSpace(c.Query("category"))
	days, ok := s.queryDays(c)
	if !ok {
		writeError(c, http.StatusBadRequest, errCodeBadRequest, "days must be between 1 and 365")
		return
	}
	table, err := s.app.Ranking.Rankings(c.Request.Context(), category, days)
	if err != nil {
		if errors.Is(err, ranking.ErrUnknownCategory) {
			writeError(c, http.StatusBadRequest, errCodeBadRequest, err.Error())
			return
		}
		writeError(c, http.StatusInternalServerError, errCodeInternal, "load rankings failed")
		return
	}
	body, err := analysis.ExportTableCSV(table)
	if errors.Is(err, ranking.ErrNotFound) {
		writeError(c, http.StatusNotFound, errCodeNotFound, "no ranking data for category")
		return
	}
	if err != nil {
		writeError(c, http.StatusInternalServerError, errCodeInternal, "export failed")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="rankings_%s_%dd.csv"`, category, days))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(body))
}
