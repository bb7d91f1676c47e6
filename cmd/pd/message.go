package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zulandar/podium/internal/announce"
	"github.com/zulandar/podium/internal/messaging"
)

func newMessageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "message",
		Short: "Announcement feed commands",
	}

	cmd.AddCommand(newMessageSendCmd())
	cmd.AddCommand(newMessageListCmd())
	cmd.AddCommand(newMessageHideCmd())
	cmd.AddCommand(newMessageDeleteCmd())
	return cmd
}

func newMessageSendCmd() *cobra.Command {
	var (
		configPath string
		noMirror   bool
	)

	cmd := &cobra.Command{
		Use:   "send <content>...",
		Short: "Broadcast an announcement",
		Long:  "Appends an announcement to the feed. Configured chat platforms receive a mirror copy unless --no-mirror is set.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			content := strings.Join(args, " ")
			msg, err := messaging.Broadcast(gormDB, content)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sent message %d\n", msg.ID)

			if noMirror {
				return nil
			}
			fanout, err := announce.FromConfig(cfg.Announce)
			if err != nil {
				return err
			}
			defer fanout.Close()
			if fanout.Len() > 0 {
				fanout.Announce(cmd.Context(), content)
				fmt.Fprintf(cmd.OutOrStdout(), "Mirrored to %d platforms\n", fanout.Len())
			}
			return nil
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().BoolVar(&noMirror, "no-mirror", false, "skip mirroring to chat platforms")
	return cmd
}

func newMessageListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List visible announcements, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			feed, err := messaging.Visible(gormDB)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(feed) == 0 {
				fmt.Fprintln(out, "No messages")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCREATED\tCONTENT")
			for _, m := range feed {
				fmt.Fprintf(w, "%d\t%s\t%s\n", m.ID, m.CreatedAt.Format("2006-01-02 15:04"), truncate(m.Content, 80))
			}
			w.Flush()
			return nil
		},
	}

	addConfigFlag(cmd, &configPath)
	return cmd
}

func newMessageHideCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "hide <message-id>",
		Short: "Hide an announcement",
		Long:  "Removes an announcement from the feed without deleting it from the store.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMessageID(args[0])
			if err != nil {
				return err
			}

			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			if err := messaging.Hide(gormDB, id); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Hid message %d\n", id)
			return nil
		},
	}

	addConfigFlag(cmd, &configPath)
	return cmd
}

func newMessageDeleteCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "delete <message-id>",
		Short: "Delete an announcement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMessageID(args[0])
			if err != nil {
				return err
			}

			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			if err := messaging.Delete(gormDB, id); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted message %d\n", id)
			return nil
		},
	}

	addConfigFlag(cmd, &configPath)
	return cmd
}

func parseMessageID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid message ID: %w", err)
	}
	return uint(id), nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
