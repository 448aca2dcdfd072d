package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zulandar/hubscout/internal/backup"
	"github.com/zulandar/hubscout/internal/export"
)

func TestBackupNowCmd(t *testing.T) {
	cfg := writeTestConfig(t)
	seedRecords(t, cfg, testRecord(t, 0, "254", "1"))

	out, err := runCmd(t, "", "backup", "now", "--config", cfg)
	if err != nil {
		t.Fatalf("backup now failed: %v", err)
	}
	var path string
	for _, line := range strings.Split(out, "\n") {
		if p, ok := strings.CutPrefix(line, "Backup written to "); ok {
			path = p
		}
	}
	if path == "" {
		t.Fatalf("output = %q, want 'Backup written to <path>'", out)
	}
	if filepath.Dir(path) != filepath.Join(filepath.Dir(cfg), "backups") {
		t.Errorf("backup path = %q, want it under the configured backup dir", path)
	}
	if !strings.HasPrefix(filepath.Base(path), backup.FilePrefix) {
		t.Errorf("backup name = %q, want prefix %q", filepath.Base(path), backup.FilePrefix)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	records, err := export.ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("backup has %d records, want 1", len(records))
	}
}

func TestBackupListCmd(t *testing.T) {
	cfg := writeTestConfig(t)
	dir := t.TempDir()

	out, err := runCmd(t, "", "backup", "list", "--config", cfg, "--dir", dir)
	if err != nil {
		t.Fatalf("backup list failed: %v", err)
	}
	if !strings.Contains(out, "No backups found.") {
		t.Errorf("output = %q, want 'No backups found.'", out)
	}

	if _, err := runCmd(t, "", "backup", "now", "--config", cfg, "--dir", dir); err != nil {
		t.Fatalf("backup now failed: %v", err)
	}
	out, err = runCmd(t, "", "backup", "list", "--config", cfg, "--dir", dir)
	if err != nil {
		t.Fatalf("backup list failed: %v", err)
	}
	if !strings.Contains(out, "FILE") || !strings.Contains(out, backup.FilePrefix) {
		t.Errorf("output = %q, want one backup listed", out)
	}
}

func TestBackupCmd_Help(t *testing.T) {
	out, err := runCmd(t, "", "backup", "--help")
	if err != nil {
		t.Fatalf("backup --help failed: %v", err)
	}
	for _, sub := range []string{"now", "run", "list"} {
		if !strings.Contains(out, sub) {
			t.Errorf("expected help to list %q, got: %s", sub, out)
		}
	}
}
