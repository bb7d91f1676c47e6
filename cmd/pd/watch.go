package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/zulandar/podium/internal/session"
	"github.com/zulandar/podium/internal/viewer"
)

func newWatchCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the countdown in the terminal",
		Long:  "Runs a terminal viewer: polls the store like a display would and prints the countdown and current announcement each second.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, configPath)
		},
	}

	addConfigFlag(cmd, &configPath)
	return cmd
}

func runWatch(cmd *cobra.Command, configPath string) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	v, err := viewer.New(viewer.Opts{
		DB:          gormDB,
		Tick:        cfg.Tick(),
		SessionPoll: cfg.SessionPoll(),
		MessagePoll: cfg.MessagePoll(),
		FreshWindow: cfg.FreshWindow(),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Watching... (Ctrl+C to stop)")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	for frame := range v.Run(ctx) {
		printFrame(out, frame)
	}
	return nil
}

func printFrame(out io.Writer, f viewer.Frame) {
	ts := f.Now.Format("15:04:05")

	if !f.HasSession {
		fmt.Fprintf(out, "[%s] no active session\n", ts)
		return
	}

	line := fmt.Sprintf("[%s] %s  %s  %3.0f%%  %s",
		ts, f.Session.Title, f.State.TimeRemaining, f.State.Progress, f.State.Status)
	if f.State.Status == session.StatusEnded {
		line = fmt.Sprintf("[%s] %s  ended", ts, f.Session.Title)
	}
	if f.Message != nil {
		marker := ""
		if f.MessageFresh {
			marker = " *"
		}
		line += fmt.Sprintf("  | %s%s", truncate(f.Message.Content, 60), marker)
	}
	fmt.Fprintln(out, line)
}
