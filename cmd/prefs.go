package cmd

import (
	"fmt"
	"strconv"

	"github.com/mosdac/assist/internal"
	"github.com/spf13/cobra"
)

// prefsCmd groups preference subcommands
var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change preferences",
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		fmt.Printf("theme:                 %s\n", a.prefs.Theme)
		fmt.Printf("default_export_format: %s\n", a.prefs.DefaultExportFormat)
		fmt.Printf("include_sources:       %t\n", a.prefs.IncludeSources)
		fmt.Printf("include_entities:      %t\n", a.prefs.IncludeEntities)
		fmt.Printf("endpoint:              %s\n", a.prefs.Endpoint)
		return nil
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a preference",
	Long: `Set a preference. Keys: theme, default_export_format,
include_sources, include_entities, endpoint.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		key, value := args[0], args[1]
		switch key {
		case "theme":
			a.prefs.Theme = value
		case "default_export_format":
			a.prefs.DefaultExportFormat = value
		case "endpoint":
			a.prefs.Endpoint = value
		case "include_sources", "include_entities":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid boolean %q for %s", value, key)
			}
			if key == "include_sources" {
				a.prefs.IncludeSources = b
			} else {
				a.prefs.IncludeEntities = b
			}
		default:
			return fmt.Errorf("unknown preference %q", key)
		}

		if err := a.store.SavePreferences(a.prefs); err != nil {
			return fmt.Errorf("failed to save preferences: %w", err)
		}

		internal.PrintSuccess(fmt.Sprintf("Set %s = %s", key, value))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(prefsCmd)
	prefsCmd.AddCommand(prefsShowCmd)
	prefsCmd.AddCommand(prefsSetCmd)
}
