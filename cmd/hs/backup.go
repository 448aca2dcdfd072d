package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/zulandar/hubscout/internal/backup"
)

func newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "JSON snapshots of the record store",
	}

	cmd.AddCommand(newBackupNowCmd())
	cmd.AddCommand(newBackupRunCmd())
	cmd.AddCommand(newBackupListCmd())
	return cmd
}

func newBackupNowCmd() *cobra.Command {
	var (
		configPath string
		dir        string
	)

	cmd := &cobra.Command{
		Use:   "now",
		Short: "Write one snapshot and prune old ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackupNow(cmd, configPath, dir)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to hubscout config file")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "backup directory (default backup.dir)")
	return cmd
}

func runBackupNow(cmd *cobra.Command, configPath, dir string) error {
	e, err := connectFromConfig(configPath, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer e.Close()

	sched, err := newScheduler(e, dir, false)
	if err != nil {
		return err
	}
	path, err := sched.RunOnce(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", path)
	return nil
}

func newBackupRunCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Write snapshots on the backup.cron schedule until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackupRun(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to hubscout config file")
	return cmd
}

func runBackupRun(cmd *cobra.Command, configPath string) error {
	e, err := connectFromConfig(configPath, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer e.Close()

	sched, err := newScheduler(e, "", true)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			fmt.Fprintf(cmd.OutOrStdout(), "\nReceived %s, shutting down...\n", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "Backing up to %s on schedule %q (keeping %d)\n",
		e.cfg.Backup.Dir, e.cfg.Backup.Cron, e.cfg.Backup.Keep)
	return sched.Run(ctx)
}

func newBackupListCmd() *cobra.Command {
	var (
		configPath string
		dir        string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List backup files, oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackupList(cmd, configPath, dir)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to hubscout config file")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "backup directory (default backup.dir)")
	return cmd
}

func runBackupList(cmd *cobra.Command, configPath, dir string) error {
	e, err := connectFromConfig(configPath, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer e.Close()

	sched, err := newScheduler(e, dir, false)
	if err != nil {
		return err
	}
	paths, err := sched.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(paths) == 0 {
		fmt.Fprintln(out, "No backups found.")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tSIZE\tWRITTEN")
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", filepath.Base(p),
			humanize.Bytes(uint64(info.Size())), humanize.RelTime(info.ModTime(), now(), "ago", "from now"))
	}
	return w.Flush()
}

// newScheduler builds a backup.Scheduler from config. The cron schedule is
// only parsed when scheduled is set.
func newScheduler(e *env, dir string, scheduled bool) (*backup.Scheduler, error) {
	if dir == "" {
		dir = e.cfg.Backup.Dir
	}
	opts := backup.Options{
		Store:  e.store(),
		Dir:    dir,
		Keep:   e.cfg.Backup.Keep,
		Logger: e.log,
	}
	if scheduled {
		opts.Cron = e.cfg.Backup.Cron
	}
	return backup.New(opts)
}
