package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"ranking-insight/internal/infrastructure/config"
	"ranking-insight/internal/infrastructure/db"
	"ranking-insight/internal/infrastructure/persistence/sqlrepo"

	_ "github.com/lib/pq"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.LoadFromFile(*cfgPath)
	if err != nil {
		log.Fatalf("讀取組態失敗: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := migrate(ctx, cfg.DB, os.Stdout); err != nil {
		log.Fatalf("migration 失敗: %v", err)
	}
}

// migrate 依 db.driver 開啟連線並建立排名歷史與帳號資料表。
func migrate(ctx context.Context, cfg config.DBConfig, out io.Writer) error {
	if cfg.DSN == "" {
		return fmt.Errorf("config.db.dsn 未設定，無法執行 migration")
	}
	driver, err := db.DriverName(cfg.Driver)
	if err != nil {
		return err
	}

	conn, err := open(ctx, driver, cfg)
	if err != nil {
		return fmt.Errorf("連線資料庫失敗 (driver=%s): %w", driver, err)
	}
	defer conn.Close()

	repo := sqlrepo.NewRepo(conn, sqlrepo.DialectFor(driver))
	if err := repo.EnsureSchema(ctx); err != nil {
		return err
	}
	fmt.Fprintf(out, "Migration 完成 (driver=%s)\n", driver)
	return nil
}

// open 對 postgres 使用 lib/pq，其餘交給 db.Connect。
func open(ctx context.Context, driver string, cfg config.DBConfig) (*sql.DB, error) {
	if driver != "pgx" {
		return db.Connect(ctx, cfg)
	}
	conn, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}
