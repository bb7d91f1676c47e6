package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/zulandar/podium/internal/dashboard"
	"github.com/zulandar/podium/internal/janitor"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the display and admin web server",
		Long:  "Launches the web server displays and operators connect to. Also runs the retention sweep if configured.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath, port)
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides config)")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string, port int) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	if port <= 0 {
		port = cfg.Server.Port
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(cmd.OutOrStdout(), "\nReceived %s, shutting down...\n", sig)
		cancel()
	}()

	if cfg.Retention.MessageHours > 0 {
		j, err := janitor.New(janitor.Opts{
			DB:        gormDB,
			Schedule:  cfg.Retention.Schedule,
			Retention: time.Duration(cfg.Retention.MessageHours) * time.Hour,
		})
		if err != nil {
			return err
		}
		go j.Run(ctx)
		fmt.Fprintf(cmd.OutOrStdout(), "Retention sweep scheduled (%s, keep %dh)\n",
			cfg.Retention.Schedule, cfg.Retention.MessageHours)
	}

	return dashboard.Start(ctx, dashboard.StartOpts{
		DB:   gormDB,
		Port: port,
		Out:  cmd.OutOrStdout(),
	})
}
