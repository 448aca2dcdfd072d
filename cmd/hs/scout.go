package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/zulandar/hubscout/internal/scout"
	"github.com/zulandar/hubscout/internal/session"
	"github.com/zulandar/hubscout/internal/tui"
	"golang.org/x/term"
)

// errNotTerminal is returned when the wizard is started without a TTY.
var errNotTerminal = errors.New("hs scout needs an interactive terminal; use `hs list` or `hs export` for scripted access")

// isTerminal reports whether stdin is a TTY. Replaced in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func newScoutCmd() *cobra.Command {
	var (
		configPath string
		event      string
		scoutName  string
		alliance   string
	)

	cmd := &cobra.Command{
		Use:   "scout",
		Short: "Start the match entry wizard",
		Long: `Opens the full-screen wizard: setup, auto, auto result, each teleop shift,
endgame and review. Saving appends the record to the store and starts the next
match with the event, scout and alliance carried over.

When backup.enabled is set, snapshots are written on the configured schedule
while the wizard is open.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScout(cmd, configPath, event, scoutName, alliance)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to hubscout config file")
	cmd.Flags().StringVar(&event, "event", "", "event code (overrides defaults.event)")
	cmd.Flags().StringVar(&scoutName, "scout", "", "scout name (overrides defaults.scout)")
	cmd.Flags().StringVar(&alliance, "alliance", "", "alliance (overrides defaults.alliance)")
	return cmd
}

func runScout(cmd *cobra.Command, configPath, event, scoutName, alliance string) error {
	if !isTerminal() {
		return errNotTerminal
	}

	// Log lines would corrupt the alternate screen, so without a log file
	// they are dropped.
	e, err := connectFromConfig(configPath, io.Discard)
	if err != nil {
		return err
	}
	defer e.Close()

	opts, err := sessionOptions(e, event, scoutName, alliance)
	if err != nil {
		return err
	}
	s, err := session.New(opts)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	var wg sync.WaitGroup
	if e.cfg.Backup.Enabled {
		sched, err := newScheduler(e, "", true)
		if err != nil {
			return err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := sched.Run(ctx); err != nil {
				e.log.Error("backup scheduler stopped", "error", err)
			}
		}()
	}

	err = tui.Run(ctx, s, e.log)
	cancel()
	wg.Wait()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %d record(s) this session.\n", s.Saved())
	return nil
}

// sessionOptions merges config defaults with flag overrides.
func sessionOptions(e *env, event, scoutName, alliance string) (session.Options, error) {
	layout, err := scout.ParseLayout(e.cfg.Layout)
	if err != nil {
		return session.Options{}, err
	}
	cmp, err := scout.ParseComparison(e.cfg.Comparison)
	if err != nil {
		return session.Options{}, err
	}
	if event == "" {
		event = e.cfg.Defaults.Event
	}
	if scoutName == "" {
		scoutName = e.cfg.Defaults.Scout
	}
	if alliance == "" {
		alliance = e.cfg.Defaults.Alliance
	}
	a, err := scout.ParseAlliance(alliance)
	if err != nil {
		return session.Options{}, err
	}
	return session.Options{
		Store:      e.store(),
		Layout:     layout,
		Comparison: cmp,
		Event:      event,
		Scout:      scoutName,
		Alliance:   a,
		Logger:     e.log,
	}, nil
}
