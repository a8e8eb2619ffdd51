package httpapi

import (
	"context"
	"net/http"
	"sync"
	"time"

	"ranking-insight/internal/app"

	"github.com/gin-gonic/gin"
)

const maxJobHistory = 50

// Server 封裝 gin 路由、共用依賴與排程紀錄。
type Server struct {
	app    *app.App
	router *gin.Engine

	autoInterval time.Duration

	jobMu       sync.Mutex
	jobHistory  []jobRun
	lastAutoRun time.Time
}

// NewServer 建立 API 伺服器並註冊路由。
func NewServer(a *app.App) *Server {
	s := &Server{
		app:          a,
		router:       gin.New(),
		autoInterval: a.Config.Pipeline.AutoInterval,
	}
	s.router.Use(gin.Recovery(), s.ginLogger(), corsMiddleware())
	s.registerRoutes()
	return s
}

// Handler 回傳路由處理器，供 HTTP server 掛載。
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start 啟動背景排程；ctx 結束時停止。
func (s *Server) Start(ctx context.Context) {
	if s.autoInterval > 0 {
		go s.startAutoPipeline(ctx)
	}
}
