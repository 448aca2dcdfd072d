package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/zulandar/hubscout/internal/dashboard"
)

func newDashboardCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Start the local web dashboard",
		Long:  "Launches a local web dashboard listing saved records, with delete, clear and CSV/JSON download.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, configPath, port)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to hubscout config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (default dashboard.port)")
	return cmd
}

func runDashboard(cmd *cobra.Command, configPath string, port int) error {
	e, err := connectFromConfig(configPath, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer e.Close()

	if port == 0 {
		port = e.cfg.Dashboard.Port
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

	return dashboard.Start(ctx, dashboard.StartOpts{
		DB:       e.db,
		StoreKey: e.cfg.StoreKey,
		Port:     port,
		Out:      cmd.OutOrStdout(),
		Logger:   e.log,
	})
}
