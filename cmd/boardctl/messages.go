package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var messagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "Work with board messages",
}

var messagesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List messages, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		msgs, err := newClient().ListMessages(newContext(cmd))
		if err != nil {
			return err
		}
		if formatFlag == "json" {
			return writeJSON(cmd.OutOrStdout(), msgs)
		}
		renderMessages(cmd.OutOrStdout(), msgs)
		return nil
	},
}

var messagesPostCmd = &cobra.Command{
	Use:   "post <text>",
	Short: "Post a new message",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := newClient().CreateMessage(newContext(cmd), strings.Join(args, " "))
		if err != nil {
			return err
		}
		if formatFlag == "json" {
			return writeJSON(cmd.OutOrStdout(), msg)
		}
		renderMessage(cmd.OutOrStdout(), *msg)
		return nil
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check service health",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := newClient().Health(newContext(cmd))
		if err != nil {
			return err
		}
		if formatFlag == "json" {
			return writeJSON(cmd.OutOrStdout(), h)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", h.Status, h.Timestamp.Local().Format(timeLayout))
		return nil
	},
}

func init() {
	messagesCmd.AddCommand(messagesListCmd, messagesPostCmd)
	rootCmd.AddCommand(messagesCmd, healthCmd)
}
