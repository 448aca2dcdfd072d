// Package backup writes periodic JSON snapshots of the record store and keeps
// only the newest few.
package backup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/zulandar/hubscout/internal/export"
	"github.com/zulandar/hubscout/internal/logging"
	"github.com/zulandar/hubscout/internal/scout"
)

// FilePrefix starts every backup file name.
const FilePrefix = "rebuildt_scout_backup_"

// stampLayout sorts lexically in time order.
const stampLayout = "20060102T150405.000Z"

// Loader reads every stored record.
type Loader interface {
	Load(ctx context.Context) ([]*scout.Record, error)
}

// Options configures a Scheduler.
type Options struct {
	Store  Loader
	Dir    string
	Keep   int
	Cron   string
	Logger *slog.Logger
	Now    func() time.Time
}

// Scheduler takes snapshots on a cron schedule.
type Scheduler struct {
	store    Loader
	dir      string
	keep     int
	schedule cron.Schedule
	log      *slog.Logger
	now      func() time.Time
}

// New validates opts and returns a Scheduler. Cron may be empty when only
// RunOnce will be used.
func New(opts Options) (*Scheduler, error) {
	if opts.Store == nil {
		return nil, errors.New("backup: store is required")
	}
	if opts.Dir == "" {
		return nil, errors.New("backup: dir is required")
	}
	if opts.Keep < 1 {
		return nil, fmt.Errorf("backup: keep must be at least 1, got %d", opts.Keep)
	}
	s := &Scheduler{
		store: opts.Store,
		dir:   opts.Dir,
		keep:  opts.Keep,
		log:   opts.Logger,
		now:   opts.Now,
	}
	if s.log == nil {
		s.log = logging.Discard()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if opts.Cron != "" {
		// Same parser config validation uses: 5 fields or an @descriptor.
		sched, err := cron.ParseStandard(opts.Cron)
		if err != nil {
			return nil, fmt.Errorf("backup: parse cron %q: %w", opts.Cron, err)
		}
		s.schedule = sched
	}
	return s, nil
}

// Run takes a snapshot at every scheduled time until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.schedule == nil {
		return errors.New("backup: no cron schedule configured")
	}
	timer := time.NewTimer(s.untilNext())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
			if _, err := s.RunOnce(ctx); err != nil {
				s.log.Error("backup failed", "error", err)
			}
			timer.Reset(s.untilNext())
		}
	}
}

func (s *Scheduler) untilNext() time.Duration {
	now := s.now()
	d := s.schedule.Next(now).Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// RunOnce writes one snapshot and prunes old ones. It returns the new file's
// path.
func (s *Scheduler) RunOnce(ctx context.Context) (string, error) {
	records, err := s.store.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("backup: load: %w", err)
	}
	data, err := export.JSON(records)
	if err != nil {
		return "", fmt.Errorf("backup: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("backup: create directory %s: %w", s.dir, err)
	}

	path := filepath.Join(s.dir, FilePrefix+s.now().UTC().Format(stampLayout)+".json")
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("backup: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("backup: rename %s: %w", path, err)
	}
	s.log.Info("backup written", "path", path, "records", len(records))

	removed, err := s.Prune()
	if err != nil {
		return path, err
	}
	if len(removed) > 0 {
		s.log.Debug("old backups pruned", "removed", len(removed))
	}
	return path, nil
}

// List returns backup files in dir, oldest first.
func (s *Scheduler) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("backup: list %s: %w", s.dir, err)
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, FilePrefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join(s.dir, n)
	}
	return paths, nil
}

// Prune deletes all but the newest keep backups and returns what it removed.
func (s *Scheduler) Prune() ([]string, error) {
	paths, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(paths) <= s.keep {
		return nil, nil
	}
	old := paths[:len(paths)-s.keep]
	for _, p := range old {
		if err := os.Remove(p); err != nil {
			return nil, fmt.Errorf("backup: prune %s: %w", p, err)
		}
	}
	return old, nil
}
