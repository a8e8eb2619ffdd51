package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"ranking-insight/internal/app"
	"ranking-insight/internal/infrastructure/config"
)

// sharedFactory 讓多次執行共用同一個記憶體 App。
func sharedFactory(t *testing.T) AppFactory {
	t.Helper()
	var a *app.App
	outDir := t.TempDir()
	return func(ctx context.Context, cfg config.Config) (*app.App, error) {
		if a != nil {
			return a, nil
		}
		cfg.DB.DSN = ""
		cfg.Ranking.Provider = "mock"
		cfg.Ranking.Seed = 3
		cfg.Redis.Addr = ""
		cfg.Insights.LLMEnabled = false
		cfg.Reports.OutputDir = outDir
		cfg.Reports.S3Bucket = ""
		cfg.Notifier.Telegram.Enabled = false
		built, err := app.NewWithDB(ctx, cfg, nil)
		a = built
		return built, err
	}
}

func run(t *testing.T, factory AppFactory, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(factory)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "missing.yaml")))
	err := root.Execute()
	return out.String(), err
}

func TestSeedThenSummary(t *testing.T) {
	factory := sharedFactory(t)

	out, err := run(t, factory, "seed", "--days", "5")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	for _, cat := range []string{"lip_care", "skincare", "lip_makeup", "face_powder"} {
		if !strings.Contains(out, cat) {
			t.Errorf("seed output missing %s: %s", cat, out)
		}
	}

	out, err = run(t, factory, "summary", "--category", "lip_care", "--days", "5")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !strings.Contains(out, "LANEIGE Lip Care (5 days)") || !strings.Contains(out, "now #") {
		t.Fatalf("unexpected summary output: %s", out)
	}
}

func TestCollectAndReport(t *testing.T) {
	factory := sharedFactory(t)

	out, err := run(t, factory, "collect")
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if !strings.Contains(out, "provider: mock") || !strings.Contains(out, "saved ") {
		t.Fatalf("unexpected collect output: %s", out)
	}

	out, err = run(t, factory, "report")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if !strings.Contains(out, ".xlsx") {
		t.Fatalf("unexpected report output: %s", out)
	}

	out, err = run(t, factory, "digest", "--days", "1", "--send")
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	if !strings.Contains(out, "## Overview") || !strings.Contains(out, "telegram not configured") {
		t.Fatalf("unexpected digest output: %s", out)
	}
}

func TestValidation(t *testing.T) {
	factory := sharedFactory(t)

	if _, err := run(t, factory, "seed", "--days", "0"); err == nil {
		t.Error("expected error for zero days")
	}
	if _, err := run(t, factory, "summary", "--category", "shoes"); err == nil {
		t.Error("expected error for unknown category")
	}
}
