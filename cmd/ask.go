package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/mosdac/assist/internal"
	"github.com/spf13/cobra"
)

var (
	askSessionID string
	askLat       float64
	askLon       float64
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the assistant a single question",
	Long: `Ask the assistant a single question and print the answer.

The question is appended to the current session (or a new one if none is
current). Pass --session to target a specific session, and --lat/--lon to
attach a location to the query.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if askSessionID != "" {
			a.repo.Select(resolveSessionID(a, askSessionID))
		}

		var loc *internal.Location
		if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lon") {
			loc = &internal.Location{Lat: askLat, Lon: askLon}
		}

		question := strings.Join(args, " ")
		a.dispatcher.Send(cmd.Context(), question, loc)

		session := a.repo.Current()
		if session == nil || len(session.Messages) == 0 {
			return fmt.Errorf("no answer recorded (was the session deleted?)")
		}

		last := session.Messages[len(session.Messages)-1]
		internal.RenderMessage(os.Stdout, last)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVar(&askSessionID, "session", "", "Target session id")
	askCmd.Flags().Float64Var(&askLat, "lat", 0, "Latitude to attach to the query")
	askCmd.Flags().Float64Var(&askLon, "lon", 0, "Longitude to attach to the query")
}
