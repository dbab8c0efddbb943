package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mosdac/assist/internal"
	"github.com/mosdac/assist/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat   string
	exportOut      string
	exportSessions []string
	exportRange    string
	exportFrom     string
	exportTo       string
	noMessages     bool
	noSources      bool
	noEntities     bool
	noMetadata     bool
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export conversations to file",
	Long: `Export stored conversations to JSON, CSV or HTML.

By default every session is exported with messages, sources, entities and
metadata included. Use --sessions to pick specific sessions, --range to
limit by last activity, and the --no-* flags to strip parts of the
output. The PDF format is accepted but currently rendered as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		format := exportFormat
		if format == "" {
			format = a.prefs.DefaultExportFormat
		}

		includeSources := a.prefs.IncludeSources
		if cmd.Flags().Changed("no-sources") {
			includeSources = !noSources
		}
		includeEntities := a.prefs.IncludeEntities
		if cmd.Flags().Changed("no-entities") {
			includeEntities = !noEntities
		}

		opts := export.Options{
			Format:             export.Format(format),
			IncludeMessages:    !noMessages,
			IncludeSources:     includeSources,
			IncludeEntities:    includeEntities,
			IncludeMetadata:    !noMetadata,
			DateRange:          export.DateRange(exportRange),
			SelectedSessionIDs: expandSessionIDs(a, exportSessions),
		}

		if exportFrom != "" {
			from, err := time.Parse("2006-01-02", exportFrom)
			if err != nil {
				return fmt.Errorf("invalid --from date (want YYYY-MM-DD): %w", err)
			}
			opts.CustomFrom = from
			opts.DateRange = export.RangeCustom
		}
		if exportTo != "" {
			to, err := time.Parse("2006-01-02", exportTo)
			if err != nil {
				return fmt.Errorf("invalid --to date (want YYYY-MM-DD): %w", err)
			}
			// Include the whole end day.
			opts.CustomTo = to.AddDate(0, 0, 1).Add(-time.Second)
			opts.DateRange = export.RangeCustom
		}

		doc, err := export.Run(a.repo.List(), opts)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(exportOut, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		path := filepath.Join(exportOut, doc.Filename)
		if err := os.WriteFile(path, doc.Content, 0644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}

		internal.PrintSuccess(fmt.Sprintf("Exported to %s (%s)", path, doc.MIMEType))
		return nil
	},
}

// expandSessionIDs resolves abbreviated ids the same way the sessions
// subcommands do.
func expandSessionIDs(a *app, ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, resolveSessionID(a, id))
	}
	return out
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Export format (json, csv, html, pdf)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "./exports", "Output directory")
	exportCmd.Flags().StringSliceVar(&exportSessions, "sessions", nil, "Session ids to export (default: all)")
	exportCmd.Flags().StringVar(&exportRange, "range", "all", "Date range (all, today, week, month)")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "Custom range start (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "Custom range end (YYYY-MM-DD)")
	exportCmd.Flags().BoolVar(&noMessages, "no-messages", false, "Exclude messages (metadata only)")
	exportCmd.Flags().BoolVar(&noSources, "no-sources", false, "Strip sources from messages")
	exportCmd.Flags().BoolVar(&noEntities, "no-entities", false, "Strip entities from messages")
	exportCmd.Flags().BoolVar(&noMetadata, "no-metadata", false, "Exclude session timestamps")
}
