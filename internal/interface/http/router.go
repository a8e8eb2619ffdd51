package httpapi

import (
	"ranking-insight/internal/application/auth"
	"ranking-insight/internal/infrastructure/metrics"
	"ranking-insight/internal/interface/http/handler"

	"github.com/gin-gonic/gin"
)

func (s *Server) registerRoutes() {
	r := s.router
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	api.GET("/ping", handler.Ping())
	api.GET("/health", s.handleHealth)
	api.POST("/auth/login", s.handleLogin)

	api.GET("/products", s.handleProducts)
	api.GET("/products/focus", s.handleFocusProducts)

	api.GET("/rankings", s.handleRankings)
	api.GET("/rankings/summary", s.handleRankingSummary)
	api.GET("/rankings/chart-data", s.handleChartData)
	api.GET("/rankings/history", s.handleProductHistory)
	api.GET("/rankings/export", s.handleExportRankings)

	api.GET("/insights", s.handleInsights)
	api.GET("/stats", s.handleStats)
	api.GET("/db/stats", s.handleDBStats)

	api.GET("/reports", s.handleListReports)
	api.GET("/reports/download/:filename", s.handleDownloadReport)

	admin := api.Group("/admin")
	admin.POST("/collect", s.requireAuth(auth.PermRankingCollect), s.handleCollect)
	admin.POST("/backfill", s.requireAuth(auth.PermRankingBackfill), s.handleBackfill)
	admin.POST("/reports/generate", s.requireAuth(auth.PermReportsGenerate), s.handleGenerateReport)
	admin.POST("/insights/refresh", s.requireAuth(auth.PermInsightsRefresh), s.handleRefreshInsights)
	admin.GET("/jobs", s.requireAuth(auth.PermJobsView), s.handleJobsHistory)
	admin.GET("/jobs/status", s.requireAuth(auth.PermJobsView), s.handleJobsStatus)
}
