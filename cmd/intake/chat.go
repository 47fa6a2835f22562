package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plaide-ai/intake/internal/chat"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask questions about a case",
}

var chatSendCmd = &cobra.Command{
	Use:     "send <case-id> <question>",
	Short:   "Ask a question about a case",
	Example: `  intake chat send 0190f7a2 "Quel est le salaire mentionné dans le contrat ?"`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		session := chat.NewSession(args[0], a.chatClient, a.store, a.log)
		if _, err := session.History(cmd.Context()); err != nil {
			return err
		}

		if err := session.Send(cmd.Context(), args[1]); err != nil {
			return fmt.Errorf("question discarded, please retry: %w", err)
		}

		entries := session.Transcript()
		last := entries[len(entries)-1]
		fmt.Println(last.Message.Content)
		for _, src := range last.Message.Sources {
			if src.Page != "" {
				fmt.Printf("  [source: %s, page %s]\n", src.Evidence, src.Page)
			} else {
				fmt.Printf("  [source: %s]\n", src.Evidence)
			}
		}
		return nil
	},
}

var chatHistoryCmd = &cobra.Command{
	Use:   "history <case-id>",
	Short: "Show a case's transcript",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session := chat.NewSession(args[0], a.chatClient, a.store, a.log)
		messages, err := session.History(cmd.Context())
		if err != nil {
			return err
		}
		for _, m := range messages {
			fmt.Printf("[%s] %s\n", m.Role, m.Content)
		}
		return nil
	},
}

var chatClearCmd = &cobra.Command{
	Use:   "clear <case-id>",
	Short: "Clear a case's transcript",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session := chat.NewSession(args[0], a.chatClient, a.store, a.log)
		if err := session.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Transcript cleared.")
		return nil
	},
}

func init() {
	chatCmd.AddCommand(chatSendCmd)
	chatCmd.AddCommand(chatHistoryCmd)
	chatCmd.AddCommand(chatClearCmd)
}
