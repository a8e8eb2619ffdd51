package db

import (
	"context"
	"testing"

	"ranking-insight/internal/infrastructure/config"
)

func TestConnect_Empty(t *testing.T) {
	ctx := context.Background()
	cfg := config.DBConfig{DSN: ""}
	db, err := Connect(ctx, cfg)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if db != nil {
		t.Error("expected nil db for empty DSN")
	}
}

func TestConnect_SQLiteMemory(t *testing.T) {
	db, err := Connect(context.Background(), config.DBConfig{Driver: "sqlite", DSN: ":memory:", MaxOpenConns: 5, MaxIdleConns: 1})
	if err != nil {
		t.Fatalf("connect sqlite: %v", err)
	}
	defer db.Close()
	var one int
	if err := db.QueryRow("SELECT 1").Scan(&one); err != nil || one != 1 {
		t.Errorf("query failed: %v", err)
	}
}

func TestDriverName(t *testing.T) {
	cases := map[string]string{"": "sqlite", "sqlite3": "sqlite", "postgres": "pgx", "pgx": "pgx"}
	for in, want := range cases {
		got, err := DriverName(in)
		if err != nil || got != want {
			t.Errorf("DriverName(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := DriverName("mysql"); err == nil {
		t.Error("expected error for unsupported driver")
	}
}
