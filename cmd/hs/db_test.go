package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zulandar/hubscout/internal/db"
)

func TestDBCmd_Help(t *testing.T) {
	out, err := runCmd(t, "", "db", "--help")
	if err != nil {
		t.Fatalf("db --help failed: %v", err)
	}
	if !strings.Contains(out, "Database management") {
		t.Errorf("expected help to mention 'Database management', got: %s", out)
	}
	for _, sub := range []string{"init", "reset"} {
		if !strings.Contains(out, sub) {
			t.Errorf("expected help to list %q subcommand, got: %s", sub, out)
		}
	}
}

func TestDBInitCmd_Help(t *testing.T) {
	out, err := runCmd(t, "", "db", "init", "--help")
	if err != nil {
		t.Fatalf("db init --help failed: %v", err)
	}
	if !strings.Contains(out, "--config") {
		t.Errorf("expected help to mention '--config' flag, got: %s", out)
	}
	if !strings.Contains(out, "hubscout.yaml") {
		t.Errorf("expected default config path 'hubscout.yaml', got: %s", out)
	}
}

func TestDBInitCmd_SQLite(t *testing.T) {
	cfg := writeTestConfig(t)
	out, err := runCmd(t, "", "db", "init", "--config", cfg)
	if err != nil {
		t.Fatalf("db init failed: %v", err)
	}
	want := fmt.Sprintf("Migrated %d tables", len(db.AllModels()))
	if !strings.Contains(out, want) {
		t.Errorf("output = %q, want %q", out, want)
	}
	if !strings.Contains(out, `Store "test_records"`) {
		t.Errorf("output = %q, want store key", out)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(cfg), "records.db")); err != nil {
		t.Errorf("database file not created: %v", err)
	}
}

func TestDBInitCmd_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hubscout.yaml")
	if err := os.WriteFile(path, []byte("database:\n  driver: postgres\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := runCmd(t, "", "db", "init", "--config", path)
	if err == nil {
		t.Fatal("expected error for unsupported driver")
	}
	if !strings.Contains(err.Error(), "load config") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "load config")
	}
}

func TestDBResetCmd(t *testing.T) {
	cfg := writeTestConfig(t)
	seedRecords(t, cfg, testRecord(t, 0, "254", "1"))

	out, err := runCmd(t, "no\n", "db", "reset", "--config", cfg)
	if err != nil {
		t.Fatalf("db reset failed: %v", err)
	}
	if !strings.Contains(out, "Aborted.") {
		t.Errorf("declined reset output = %q, want 'Aborted.'", out)
	}

	out, err = runCmd(t, "", "db", "reset", "--config", cfg, "--yes")
	if err != nil {
		t.Fatalf("db reset --yes failed: %v", err)
	}
	if !strings.Contains(out, "Database reset successfully.") {
		t.Errorf("output = %q", out)
	}

	out, err = runCmd(t, "", "list", "--config", cfg)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "No records found.") {
		t.Errorf("records survived reset:\n%s", out)
	}
}
