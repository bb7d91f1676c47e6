package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zulandar/podium/internal/session"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Session management commands",
	}

	cmd.AddCommand(newSessionCreateCmd())
	cmd.AddCommand(newSessionListCmd())
	cmd.AddCommand(newSessionActivateCmd())
	cmd.AddCommand(newSessionEditCmd())
	cmd.AddCommand(newSessionDeleteCmd())
	cmd.AddCommand(newSessionResetCmd())
	return cmd
}

func newSessionCreateCmd() *cobra.Command {
	var (
		configPath string
		title      string
		start      string
		end        string
		activate   bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a session",
		Long:  "Creates a session with a start and end time of day. Use --activate to make it the session displays count down.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			if activate {
				if _, err := session.Reset(gormDB); err != nil {
					return err
				}
			}

			s, err := session.Create(gormDB, title, start, end, activate)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created session %d (%s–%s)\n", s.ID, s.StartTime, s.EndTime)
			return nil
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().StringVar(&title, "title", "", "session title")
	cmd.Flags().StringVar(&start, "start", "", "start time, HH:MM (required)")
	cmd.Flags().StringVar(&end, "end", "", "end time, HH:MM (required)")
	cmd.Flags().BoolVar(&activate, "activate", false, "activate this session, deactivating any other")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")
	return cmd
}

func newSessionListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			sessions, err := session.List(gormDB)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(sessions) == 0 {
				fmt.Fprintln(out, "No sessions")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tSTART\tEND\tACTIVE")
			for _, s := range sessions {
				active := ""
				if s.Active {
					active = "yes"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", s.ID, s.Title, s.StartTime, s.EndTime, active)
			}
			w.Flush()
			return nil
		},
	}

	addConfigFlag(cmd, &configPath)
	return cmd
}

func newSessionActivateCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "activate <session-id>",
		Short: "Activate a session",
		Long:  "Marks a session active and deactivates every other session, so displays count down exactly one.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSessionID(args[0])
			if err != nil {
				return err
			}

			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			if _, err := session.Reset(gormDB); err != nil {
				return err
			}
			active := true
			s, err := session.Update(gormDB, id, session.UpdateOpts{Active: &active})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Session %d active (%s–%s)\n", s.ID, s.StartTime, s.EndTime)
			return nil
		},
	}

	addConfigFlag(cmd, &configPath)
	return cmd
}

func newSessionEditCmd() *cobra.Command {
	var (
		configPath string
		title      string
		start      string
		end        string
	)

	cmd := &cobra.Command{
		Use:   "edit <session-id>",
		Short: "Edit a session",
		Long:  "Changes a session's title or times. Viewers pick up the change on their next poll.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSessionID(args[0])
			if err != nil {
				return err
			}

			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			var opts session.UpdateOpts
			if cmd.Flags().Changed("title") {
				opts.Title = &title
			}
			if cmd.Flags().Changed("start") {
				opts.StartTime = &start
			}
			if cmd.Flags().Changed("end") {
				opts.EndTime = &end
			}

			s, err := session.Update(gormDB, id, opts)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated session %d (%s–%s)\n", s.ID, s.StartTime, s.EndTime)
			return nil
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().StringVar(&title, "title", "", "session title")
	cmd.Flags().StringVar(&start, "start", "", "start time, HH:MM")
	cmd.Flags().StringVar(&end, "end", "", "end time, HH:MM")
	return cmd
}

func newSessionDeleteCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSessionID(args[0])
			if err != nil {
				return err
			}

			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			if err := session.Delete(gormDB, id); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %d\n", id)
			return nil
		},
	}

	addConfigFlag(cmd, &configPath)
	return cmd
}

func newSessionResetCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Deactivate all sessions",
		Long:  "Deactivates every session. Displays fall back to their idle view.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			n, err := session.Reset(gormDB)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deactivated %d sessions\n", n)
			return nil
		},
	}

	addConfigFlag(cmd, &configPath)
	return cmd
}

func parseSessionID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid session ID: %w", err)
	}
	return uint(id), nil
}
