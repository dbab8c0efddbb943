package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/mosdac/assist/internal"
	"github.com/spf13/cobra"
)

// sessionsCmd groups session management subcommands
var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage stored conversations",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all sessions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		sessions := a.repo.List()
		if len(sessions) == 0 {
			internal.PrintInfo("No sessions yet. Start one with 'mosdac-assist chat'.")
			return nil
		}

		currentID := a.repo.CurrentID()
		for _, session := range sessions {
			internal.RenderSessionLine(os.Stdout, session, session.ID == currentID)
		}
		return nil
	},
}

var sessionsNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new session and make it current",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		session := a.repo.Create()
		internal.PrintSuccess(fmt.Sprintf("Created session %s", session.ID))
		return nil
	},
}

var sessionsUseCmd = &cobra.Command{
	Use:   "use <session-id>",
	Short: "Make a session current",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		id := resolveSessionID(a, args[0])
		a.repo.Select(id)
		if a.repo.CurrentID() != id {
			internal.PrintWarning(fmt.Sprintf("No session %s; nothing selected", args[0]))
			return nil
		}
		internal.PrintSuccess(fmt.Sprintf("Now using session %s", id))
		return nil
	},
}

var sessionsRenameCmd = &cobra.Command{
	Use:   "rename <session-id> <title>",
	Short: "Rename a session",
	Long: `Rename a session. A blank title leaves the session unchanged.`,
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		id := resolveSessionID(a, args[0])
		title := strings.Join(args[1:], " ")
		a.repo.Rename(id, title)

		session := a.repo.Get(id)
		if session == nil {
			internal.PrintWarning(fmt.Sprintf("No session %s", args[0]))
			return nil
		}
		internal.PrintSuccess(fmt.Sprintf("Session %s is now titled %q", internal.ShortID(id), session.Title))
		return nil
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		id := resolveSessionID(a, args[0])

		// Abort any in-flight turn before the target goes away.
		a.dispatcher.CancelSession(id)

		if !a.repo.Delete(id) {
			internal.PrintWarning(fmt.Sprintf("No session %s", args[0]))
			return nil
		}
		internal.PrintSuccess(fmt.Sprintf("Deleted session %s", internal.ShortID(id)))
		return nil
	},
	Args: cobra.ExactArgs(1),
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show a session's full conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		session := a.repo.Get(resolveSessionID(a, args[0]))
		if session == nil {
			return fmt.Errorf("session not found: %s (use 'mosdac-assist sessions list')", args[0])
		}

		internal.PrintInfo(fmt.Sprintf("%s (%d messages)", session.Title, len(session.Messages)))
		for _, msg := range session.Messages {
			internal.RenderMessage(os.Stdout, msg)
		}
		return nil
	},
}

// resolveSessionID expands an abbreviated id to a full one when exactly
// one stored session matches the prefix.
func resolveSessionID(a *app, id string) string {
	var match string
	for _, session := range a.repo.List() {
		if session.ID == id {
			return id
		}
		if strings.HasPrefix(session.ID, id) {
			if match != "" {
				return id // ambiguous prefix, let downstream miss
			}
			match = session.ID
		}
	}
	if match != "" {
		return match
	}
	return id
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsNewCmd)
	sessionsCmd.AddCommand(sessionsUseCmd)
	sessionsCmd.AddCommand(sessionsRenameCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
}
