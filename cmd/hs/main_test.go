package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/zulandar/hubscout/internal/config"
	"github.com/zulandar/hubscout/internal/db"
	"github.com/zulandar/hubscout/internal/scout"
	"github.com/zulandar/hubscout/internal/store"
)

// baseTime is when the first test record was created.
var baseTime = time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC)

// writeTestConfig writes a config whose database, exports and backups all
// live under a fresh temp dir, and returns its path.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	yaml := fmt.Sprintf(`store_key: test_records
defaults:
  event: 2026txhou
  scout: Sam
database:
  path: %s
export:
  dir: %s
backup:
  dir: %s
  keep: 3
`, filepath.Join(dir, "records.db"), filepath.Join(dir, "exports"), filepath.Join(dir, "backups"))
	path := filepath.Join(dir, "hubscout.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// testRecord returns a record created minutes after baseTime, with every
// segment entered and some data in each branch.
func testRecord(t *testing.T, minutes int, team, match string) *scout.Record {
	t.Helper()
	r, err := scout.NewRecord(scout.NewRecordOpts{
		Now:   baseTime.Add(time.Duration(minutes) * time.Minute),
		Event: "2026txhou",
		Match: match,
		Scout: "Sam",
		Team:  team,
	})
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}
	r.AutoFuel = 3
	if err := r.SetAutoResult(scout.ResultMine); err != nil {
		t.Fatalf("SetAutoResult: %v", err)
	}
	for i := range r.Segments {
		scout.EnterSegment(r, i)
		seg := &r.Segments[i]
		if fav, ok := seg.Favorable(); ok {
			fav.AddFuel(4)
			fav.AddCycles(1)
		}
		if unfav, ok := seg.Unfavorable(); ok {
			if err := unfav.Toggle(scout.BehaviorDefense); err != nil {
				t.Fatalf("Toggle: %v", err)
			}
		}
	}
	return r
}

// seedRecords appends records to the store configPath points at.
func seedRecords(t *testing.T, configPath string, records ...*scout.Record) {
	t.Helper()
	cfg, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	gdb, err := db.Open(cfg)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, _ := gdb.DB()
	defer sqlDB.Close()

	st := store.New(gdb, cfg.StoreKey)
	for _, r := range records {
		if err := st.Append(t.Context(), r); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
}

// runCmd executes the root command with args and stdin and returns combined
// output.
func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := runCmd(t, "", "version")
	if err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if !strings.Contains(out, "hs dev") {
		t.Errorf("expected output to contain 'hs dev', got: %s", out)
	}
	if !strings.Contains(out, "commit: none") {
		t.Errorf("expected output to contain 'commit: none', got: %s", out)
	}
}

func TestVersionCmdWithCustomValues(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, Date
	Version, Commit, Date = "1.0.0", "abc123", "2026-01-01"
	defer func() { Version, Commit, Date = origVersion, origCommit, origDate }()

	out, err := runCmd(t, "", "version")
	if err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	for _, want := range []string{"hs 1.0.0", "commit: abc123", "built: 2026-01-01"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got: %s", want, out)
		}
	}
}

func TestRootCmdHelp(t *testing.T) {
	out, err := runCmd(t, "", "--help")
	if err != nil {
		t.Fatalf("help failed: %v", err)
	}
	for _, sub := range []string{"scout", "plan", "list", "show", "delete", "clear", "export", "import", "dashboard", "backup", "db", "init"} {
		if !strings.Contains(out, sub) {
			t.Errorf("expected help to list %q, got: %s", sub, out)
		}
	}
}

func TestExecute_ReturnsExitCode(t *testing.T) {
	ok := &cobra.Command{Use: "ok", RunE: func(*cobra.Command, []string) error { return nil }}
	if got := execute(ok); got != 0 {
		t.Errorf("execute(ok) = %d, want 0", got)
	}

	bad := &cobra.Command{
		Use:           "bad",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          func(*cobra.Command, []string) error { return fmt.Errorf("boom") },
	}
	if got := execute(bad); got != 1 {
		t.Errorf("execute(bad) = %d, want 1", got)
	}
}

// writeInvalidConfig writes a config that fails validation.
func writeInvalidConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hubscout.yaml")
	if err := os.WriteFile(path, []byte("layout: sideways\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConnectFromConfig_InvalidConfig(t *testing.T) {
	_, err := runCmd(t, "", "list", "--config", writeInvalidConfig(t))
	if err == nil {
		t.Fatal("expected error for invalid config")
	}
	if !strings.Contains(err.Error(), "load config") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "load config")
	}
}

func TestConnectFromConfig_MissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	out, err := runCmd(t, "", "list", "--config", filepath.Join(dir, "nope.yaml"))
	if err != nil {
		t.Fatalf("list with missing config failed: %v", err)
	}
	if !strings.Contains(out, "No records found") {
		t.Errorf("output = %q, want 'No records found'", out)
	}
	if _, err := os.Stat(filepath.Join(dir, ".hubscout", "records.db")); err != nil {
		t.Errorf("default database not created: %v", err)
	}
}
