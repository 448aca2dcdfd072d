package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/zulandar/hubscout/internal/dashboard"
	"github.com/zulandar/hubscout/internal/scout"
	"github.com/zulandar/hubscout/internal/store"
)

// now is the clock used for relative ages. Replaced in tests.
var now = time.Now

func newListCmd() *cobra.Command {
	var (
		configPath string
		team       string
		event      string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved records, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, configPath, team, event)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to hubscout config file")
	cmd.Flags().StringVar(&team, "team", "", "only records for this team number")
	cmd.Flags().StringVar(&event, "event", "", "only records for this event")
	return cmd
}

func runList(cmd *cobra.Command, configPath, team, event string) error {
	e, err := connectFromConfig(configPath, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer e.Close()

	all, err := e.store().Load(cmd.Context())
	if err != nil {
		return err
	}
	var records []*scout.Record
	for _, r := range all {
		if team != "" && r.Team != team {
			continue
		}
		if event != "" && !strings.EqualFold(r.Event, event) {
			continue
		}
		records = append(records, r)
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "No records found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CREATED\tEVENT\tMATCH\tTEAM\tALLIANCE\tAUTO\tACTIVE FUEL\tINACTIVE\tCLIMB\tAGE")
	for _, row := range dashboard.RecordRows(records, now()) {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%d\t%s\t%s\t%s\n",
			row.Key, dash(row.Event), dash(row.Match), dash(row.Team), row.Alliance,
			row.AutoFuel, row.ActiveFuel, dash(row.Inactive), row.Climb, row.Age)
	}
	w.Flush()
	fmt.Fprintf(out, "\n%s record(s)\n", humanize.Comma(int64(len(records))))
	return nil
}

func newShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <createdAt>",
		Short: "Show one saved record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to hubscout config file")
	return cmd
}

func runShow(cmd *cobra.Command, configPath, key string) error {
	e, err := connectFromConfig(configPath, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer e.Close()

	r, err := e.store().Get(cmd.Context(), key)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Record:     %s (%s)\n", r.Key(), humanize.RelTime(r.CreatedAt, now(), "ago", "from now"))
	fmt.Fprintf(out, "Event:      %s\n", dash(r.Event))
	fmt.Fprintf(out, "Match:      %s\n", dash(r.Match))
	fmt.Fprintf(out, "Team:       %s (%s)\n", dash(r.Team), r.Alliance)
	fmt.Fprintf(out, "Scout:      %s\n", dash(r.Scout))
	fmt.Fprintf(out, "Layout:     %s, %s\n", r.Layout, r.Comparison)
	fmt.Fprintf(out, "Auto:       %d fuel, result %s, override %s\n", r.AutoFuel, r.AutoResult, r.Override)

	fmt.Fprintln(out, "\nTeleop:")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  SEGMENT\tSTATUS\tFUEL\tCYCLES\tBEHAVIORS")
	for _, seg := range r.Segments {
		snap := seg.Snapshot()
		fuel, cycles, behaviors := "-", "-", "-"
		switch snap.Status {
		case scout.StatusActive:
			fuel = fmt.Sprint(snap.Fuel)
			cycles = fmt.Sprint(snap.Cycles)
		case scout.StatusInactive:
			behaviors = dash(joinBehaviors(snap.Behaviors))
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n", snap.Label, snap.Status, fuel, cycles, behaviors)
	}
	w.Flush()

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Climb:      %s", r.Climb)
	if r.ScoredNoClimb {
		fmt.Fprint(out, " (scored without climbing)")
	}
	fmt.Fprintln(out)
	var ratings []string
	for _, name := range scout.RatingNames {
		v, _ := r.Ratings.Get(name)
		ratings = append(ratings, fmt.Sprintf("%s %s", name, stars(v)))
	}
	fmt.Fprintf(out, "Ratings:    %s\n", strings.Join(ratings, ", "))
	if r.Notes != "" {
		fmt.Fprintf(out, "Notes:      %s\n", r.Notes)
	}
	return nil
}

func newDeleteCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "delete <createdAt>",
		Short: "Delete a saved record by its created-at key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to hubscout config file")
	return cmd
}

func runDelete(cmd *cobra.Command, configPath, key string) error {
	e, err := connectFromConfig(configPath, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer e.Close()

	n, err := e.store().Delete(cmd.Context(), key)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no record with key %s (see `hs list`)", key)
	}
	if err != nil {
		return err
	}
	e.log.Info("record deleted", "key", key, "removed", n)
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d record(s) with key %s\n", n, key)
	return nil
}

func newClearCmd() *cobra.Command {
	var (
		configPath string
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every saved record",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClear(cmd, configPath, yes)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to hubscout config file")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}

func runClear(cmd *cobra.Command, configPath string, skipConfirm bool) error {
	out := cmd.OutOrStdout()

	e, err := connectFromConfig(configPath, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer e.Close()

	st := e.store()
	n, err := st.Count(cmd.Context())
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Fprintln(out, "Store is already empty.")
		return nil
	}
	if !skipConfirm && !confirm(cmd, fmt.Sprintf("This will delete all %d record(s) in store %q.", n, st.Key())) {
		fmt.Fprintln(out, "Aborted.")
		return nil
	}
	if err := st.Clear(cmd.Context()); err != nil {
		return err
	}
	e.log.Warn("all records cleared", "store_key", st.Key(), "count", n)
	fmt.Fprintf(out, "Cleared %d record(s).\n", n)
	return nil
}

func joinBehaviors(bs []scout.Behavior) string {
	parts := make([]string, len(bs))
	for i, b := range bs {
		parts[i] = string(b)
	}
	return strings.Join(parts, ", ")
}

func stars(v int) string {
	if v == 0 {
		return "-"
	}
	return strings.Repeat("*", v)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

