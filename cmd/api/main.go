package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ranking-insight/internal/app"
	"ranking-insight/internal/infrastructure/config"
	httpapi "ranking-insight/internal/interface/http"
)

func main() {
	cfg, err := config.LoadFromFile("config.yaml")
	if err != nil {
		log.Fatalf("CRITICAL: load config failed: %v", err)
	}
	log.Printf("configuration loaded (HTTP_ADDR=%s provider=%s)", cfg.HTTP.Addr, cfg.ResolveProvider())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	initCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	application, err := app.New(initCtx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("CRITICAL: init failed: %v", err)
	}
	defer application.Close()

	if ok, err := application.Ranking.EnsureTodayData(ctx); err != nil {
		log.Printf("warning: initial collect failed: %v", err)
	} else if ok {
		log.Printf("collected today's rankings on startup")
	}

	apiServer := httpapi.NewServer(application)
	apiServer.Start(ctx)

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("starting HTTP server on %s", cfg.HTTP.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server stopped: %v", err)
	}
	log.Printf("server stopped")
}
