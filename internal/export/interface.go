package export

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/mosdac/assist/internal"
)

// Format is the closed set of selectable export formats
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatHTML Format = "html"
	// FormatPDF is selectable but has no renderer yet; it falls through
	// to the JSON exporter like any unknown format.
	FormatPDF Format = "pdf"
)

// DateRange selects which sessions to include by last update time
type DateRange string

const (
	RangeAll    DateRange = "all"
	RangeToday  DateRange = "today"
	RangeWeek   DateRange = "week"
	RangeMonth  DateRange = "month"
	RangeCustom DateRange = "custom"
)

// Options controls filtering and rendering of an export. It is validated
// once at the boundary; downstream code can assume it is well-formed.
type Options struct {
	Format             Format    `json:"format"`
	IncludeMessages    bool      `json:"include_messages"`
	IncludeSources     bool      `json:"include_sources"`
	IncludeEntities    bool      `json:"include_entities"`
	IncludeMetadata    bool      `json:"include_metadata"`
	DateRange          DateRange `json:"date_range"`
	CustomFrom         time.Time `json:"custom_from,omitempty"`
	CustomTo           time.Time `json:"custom_to,omitempty"`
	SelectedSessionIDs []string  `json:"selected_session_ids,omitempty"`
}

// Validate checks the closed enums. An empty DateRange means "all".
func (o *Options) Validate() error {
	switch o.Format {
	case FormatJSON, FormatCSV, FormatHTML, FormatPDF:
	default:
		return &internal.ExportError{
			Format: string(o.Format),
			Err:    fmt.Errorf("unsupported format (supported: json, csv, html, pdf)"),
		}
	}

	if o.DateRange == "" {
		o.DateRange = RangeAll
	}
	switch o.DateRange {
	case RangeAll, RangeToday, RangeWeek, RangeMonth, RangeCustom:
	default:
		return &internal.ExportError{
			Format: string(o.Format),
			Err:    fmt.Errorf("unsupported date range %q", o.DateRange),
		}
	}

	return nil
}

// Snapshot is the filtered, strip-applied view of the session collection
// that exporters render.
type Snapshot struct {
	ExportedAt time.Time     `json:"exported_at"`
	Options    Options       `json:"options"`
	Sessions   []SessionView `json:"sessions"`
}

// SessionView is a session prepared for export. Metadata timestamps are
// empty when the export excludes metadata.
type SessionView struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	CreatedAt string             `json:"created_at,omitempty"`
	UpdatedAt string             `json:"updated_at,omitempty"`
	Messages  []internal.Message `json:"messages"`
}

// Document is a rendered export ready to hand to the caller
type Document struct {
	Filename string
	MIMEType string
	Content  []byte
}

// Exporter defines the interface for all export formats
type Exporter interface {
	Export(snapshot *Snapshot, w io.Writer) error
	Extension() string
	MIMEType() string
}

// NewExporter creates an exporter for a format. PDF and anything unknown
// fall through to JSON.
func NewExporter(format Format) Exporter {
	switch format {
	case FormatCSV:
		return &CSVExporter{}
	case FormatHTML:
		return &HTMLExporter{}
	default:
		return &JSONExporter{}
	}
}

// Run filters sessions per opts and renders the chosen format. It is a
// pure read: the input sessions are never mutated.
func Run(sessions []*internal.Session, opts Options) (*Document, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	snapshot := &Snapshot{
		ExportedAt: now,
		Options:    opts,
		Sessions:   buildViews(sessions, opts, now),
	}

	exporter := NewExporter(opts.Format)

	var buf bytes.Buffer
	if err := exporter.Export(snapshot, &buf); err != nil {
		return nil, &internal.ExportError{Format: string(opts.Format), Err: err}
	}

	return &Document{
		Filename: fmt.Sprintf("mosdac-export-%s.%s", now.Format("2006-01-02"), exporter.Extension()),
		MIMEType: exporter.MIMEType(),
		Content:  buf.Bytes(),
	}, nil
}
