package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/mosdac/assist/internal"
)

// CSVExporter exports one row per message across all selected sessions,
// in session-then-message order. Embedded quotes are escaped by doubling,
// commas survive inside quoted fields.
type CSVExporter struct{}

var csvHeader = []string{"Session ID", "Title", "Message ID", "Sender", "Text", "Timestamp", "Confidence"}

// Export writes the snapshot to w
func (e *CSVExporter) Export(snapshot *Snapshot, w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, session := range snapshot.Sessions {
		for _, msg := range session.Messages {
			record := []string{
				session.ID,
				session.Title,
				msg.ID,
				string(msg.Sender),
				msg.Text,
				msg.Timestamp.Format(time.RFC3339),
				confidenceField(msg),
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func confidenceField(msg internal.Message) string {
	if msg.Sender != internal.SenderAssistant {
		return ""
	}
	return fmt.Sprintf("%.2f", msg.Confidence)
}

// Extension returns the file extension for this format
func (e *CSVExporter) Extension() string {
	return "csv"
}

// MIMEType returns the mime type for this format
func (e *CSVExporter) MIMEType() string {
	return "text/csv"
}
