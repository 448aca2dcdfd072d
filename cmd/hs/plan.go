package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zulandar/hubscout/internal/config"
	"github.com/zulandar/hubscout/internal/scout"
)

func newPlanCmd() *cobra.Command {
	var (
		configPath string
		result     string
		override   string
		alliance   string
		layout     string
		comparison string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print which teleop segments are active for an auto result",
		Long: `Resolves the hub status of every teleop segment for the given autonomous
result and override, without touching the store. Layout, comparison and
alliance default to the config file.`,
		Example: `  hs plan --result Mine
  hs plan --result Red --alliance Blue --comparison side_label
  hs plan --override InactiveFirst`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, configPath, result, override, alliance, layout, comparison)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to hubscout config file")
	cmd.Flags().StringVar(&result, "result", scout.ResultUnknown, "autonomous result label")
	cmd.Flags().StringVar(&override, "override", string(scout.OverrideAuto), "Auto, ActiveFirst or InactiveFirst")
	cmd.Flags().StringVar(&alliance, "alliance", "", "observed alliance (default defaults.alliance)")
	cmd.Flags().StringVar(&layout, "layout", "", "folded or terminal (default layout)")
	cmd.Flags().StringVar(&comparison, "comparison", "", "mine_opponent or side_label (default comparison)")
	return cmd
}

func runPlan(cmd *cobra.Command, configPath, result, override, alliance, layout, comparison string) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if alliance == "" {
		alliance = cfg.Defaults.Alliance
	}
	if layout == "" {
		layout = cfg.Layout
	}
	if comparison == "" {
		comparison = cfg.Comparison
	}

	l, err := scout.ParseLayout(layout)
	if err != nil {
		return err
	}
	c, err := scout.ParseComparison(comparison)
	if err != nil {
		return err
	}
	a, err := scout.ParseAlliance(alliance)
	if err != nil {
		return err
	}
	o, err := scout.ParseOverride(override)
	if err != nil {
		return err
	}
	leader, err := c.Leader(result, a)
	if err != nil {
		return err
	}
	rv, err := scout.NewResolver(l, leader, o)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Auto result %s for %s (%s leads), override %s, %s layout\n\n",
		result, a, leader, o, l)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tSEGMENT\tSTATUS")
	for i, def := range l.Segments() {
		status := rv.Status(i)
		label := def.Label
		if def.Fixed {
			label += " (fixed)"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", i, label, status)
	}
	w.Flush()
	return nil
}
