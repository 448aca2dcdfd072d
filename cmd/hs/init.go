package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zulandar/hubscout/internal/config"
	"github.com/zulandar/hubscout/internal/scout"
)

func newInitCmd() *cobra.Command {
	var (
		configPath string
		event      string
		scoutName  string
		alliance   string
		layout     string
		comparison string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter hubscout.yaml",
		Long: `Writes a config file with defaults filled in. Event, scout name and alliance
pre-fill the setup screen of every new record. An existing file is never
overwritten.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, configPath, event, scoutName, alliance, layout, comparison)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path of the config file to write")
	cmd.Flags().StringVar(&event, "event", "", "default event code")
	cmd.Flags().StringVar(&scoutName, "scout", "", "default scout name")
	cmd.Flags().StringVar(&alliance, "alliance", string(scout.AllianceRed), "default alliance (Red or Blue)")
	cmd.Flags().StringVar(&layout, "layout", string(scout.LayoutFolded), "segment layout (folded or terminal)")
	cmd.Flags().StringVar(&comparison, "comparison", string(scout.ComparisonMineOpponent), "auto result vocabulary (mine_opponent or side_label)")
	return cmd
}

func runInit(cmd *cobra.Command, configPath, event, scoutName, alliance, layout, comparison string) error {
	out := cmd.OutOrStdout()

	cfg := config.Default()
	cfg.Defaults.Event = event
	cfg.Defaults.Scout = scoutName
	cfg.Defaults.Alliance = alliance
	cfg.Layout = layout
	cfg.Comparison = comparison

	if err := config.Write(configPath, cfg); err != nil {
		return err
	}
	// Bad flag values fail the same way a bad file would.
	if _, err := config.Load(configPath); err != nil {
		os.Remove(configPath)
		return err
	}

	fmt.Fprintf(out, "Wrote %s (layout %s, comparison %s, store key %s)\n",
		configPath, cfg.Layout, cfg.Comparison, cfg.StoreKey)
	fmt.Fprintln(out, "Run `hs db init` next, then `hs scout`.")
	return nil
}
