package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/mosdac/assist/internal"
	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check backend and local store health",
	Long: `Check whether the assistant backend is reachable and report local
store statistics. The assistant still works when the backend is down;
answers then come from the local substitute.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		sessions := a.repo.List()
		messages := 0
		for _, session := range sessions {
			messages += len(session.Messages)
		}
		internal.PrintInfo(fmt.Sprintf("Local store: %d session(s), %d message(s)", len(sessions), messages))

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()

		if err := a.remote.Healthy(ctx); err != nil {
			internal.PrintWarning(fmt.Sprintf("Backend unreachable: %v", err))
			internal.PrintInfo("Answers will come from the local substitute.")
			return nil
		}

		internal.PrintSuccess("Backend is reachable")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
