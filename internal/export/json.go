package export

import (
	"encoding/json"
	"io"
)

// JSONExporter exports the snapshot as pretty-printed JSON. It is also
// the default renderer for formats without a dedicated exporter.
type JSONExporter struct{}

// Export writes the snapshot to w
func (e *JSONExporter) Export(snapshot *Snapshot, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(snapshot)
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}

// MIMEType returns the mime type for this format
func (e *JSONExporter) MIMEType() string {
	return "application/json"
}
