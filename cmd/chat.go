package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mosdac/assist/internal"
	"github.com/spf13/cobra"
)

var chatSessionID string

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive conversation",
	Long: `Start an interactive conversation with the assistant.

Each line you type is sent as one question. Type /new to start a fresh
session, /history to replay the current session, or /quit to leave.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if chatSessionID != "" {
			a.repo.Select(chatSessionID)
		}

		session := a.repo.Current()
		if session == nil {
			session = a.repo.Create()
		}
		internal.PrintInfo(fmt.Sprintf("Session: %s", session.Title))

		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				break
			}

			line := strings.TrimSpace(scanner.Text())
			switch {
			case line == "":
				continue
			case line == "/quit", line == "/exit":
				return nil
			case line == "/new":
				session := a.repo.Create()
				internal.PrintInfo(fmt.Sprintf("Started session %s", session.ID))
				continue
			case line == "/history":
				replayHistory(a)
				continue
			}

			a.dispatcher.Send(cmd.Context(), line, nil)

			current := a.repo.Current()
			if current == nil || len(current.Messages) == 0 {
				internal.PrintWarning("No reply recorded")
				continue
			}
			internal.RenderMessage(os.Stdout, current.Messages[len(current.Messages)-1])
		}

		return scanner.Err()
	},
}

func replayHistory(a *app) {
	session := a.repo.Current()
	if session == nil {
		internal.PrintWarning("No current session")
		return
	}
	for _, msg := range session.Messages {
		internal.RenderMessage(os.Stdout, msg)
	}
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVar(&chatSessionID, "session", "", "Resume a specific session id")
}
