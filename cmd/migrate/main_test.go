package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"ranking-insight/internal/infrastructure/config"
	"ranking-insight/internal/infrastructure/db"
)

func TestMigrate_SQLiteFile(t *testing.T) {
	ctx := context.Background()
	cfg := config.DBConfig{
		Driver:       "sqlite",
		DSN:          "file:" + filepath.Join(t.TempDir(), "ranking.db"),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}

	var out bytes.Buffer
	for i := 0; i < 2; i++ {
		if err := migrate(ctx, cfg, &out); err != nil {
			t.Fatalf("migrate run %d: %v", i+1, err)
		}
	}
	if !strings.Contains(out.String(), "driver=sqlite") {
		t.Errorf("unexpected output: %s", out.String())
	}

	conn, err := db.Connect(ctx, cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer conn.Close()
	for _, table := range []string{"ranking_history", "users"} {
		var name string
		err := conn.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestMigrate_DriverCheck(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.DBConfig
		want string
	}{
		{"empty dsn", config.DBConfig{Driver: "pgx"}, "dsn"},
		{"unsupported driver", config.DBConfig{Driver: "mysql", DSN: "user@/ranking"}, "unsupported db driver"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := migrate(context.Background(), tc.cfg, &bytes.Buffer{})
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}
