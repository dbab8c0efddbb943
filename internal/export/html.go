package export

import (
	"fmt"
	"html"
	"io"

	"github.com/mosdac/assist/internal"
)

// HTMLExporter renders a single self-contained document: one block per
// session with a heading, plus one styled block per message
// distinguishing sender.
type HTMLExporter struct{}

const htmlHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>MOSDAC Chat Export</title>
<style>
body { font-family: sans-serif; max-width: 800px; margin: 2em auto; color: #222; }
.session { border: 1px solid #ddd; border-radius: 8px; padding: 1em; margin-bottom: 2em; }
.session h2 { margin-top: 0; }
.meta { color: #777; font-size: 0.85em; }
.message { border-radius: 6px; padding: 0.6em 0.9em; margin: 0.6em 0; }
.message.user { background: #e3f2fd; }
.message.assistant { background: #f3e5f5; }
.sender { font-weight: bold; font-size: 0.9em; }
.confidence { color: #777; font-size: 0.8em; }
</style>
</head>
<body>
<h1>MOSDAC Chat Export</h1>
`

// Export writes the snapshot to w
func (e *HTMLExporter) Export(snapshot *Snapshot, w io.Writer) error {
	if _, err := io.WriteString(w, htmlHead); err != nil {
		return err
	}

	fmt.Fprintf(w, "<p class=\"meta\">Exported %s</p>\n", html.EscapeString(snapshot.ExportedAt.Format("2006-01-02 15:04:05")))

	for _, session := range snapshot.Sessions {
		fmt.Fprintf(w, "<div class=\"session\">\n<h2>%s</h2>\n", html.EscapeString(session.Title))
		if session.CreatedAt != "" {
			fmt.Fprintf(w, "<p class=\"meta\">Created %s</p>\n", html.EscapeString(session.CreatedAt))
		}

		for _, msg := range session.Messages {
			e.writeMessage(w, msg)
		}

		fmt.Fprint(w, "</div>\n")
	}

	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}

func (e *HTMLExporter) writeMessage(w io.Writer, msg internal.Message) {
	class := "user"
	sender := "You"
	if msg.Sender == internal.SenderAssistant {
		class = "assistant"
		sender = "Assistant"
	}

	fmt.Fprintf(w, "<div class=\"message %s\">\n", class)
	fmt.Fprintf(w, "<div class=\"sender\">%s <span class=\"meta\">%s</span></div>\n",
		sender, html.EscapeString(msg.Timestamp.Format("2006-01-02 15:04:05")))
	fmt.Fprintf(w, "<div>%s</div>\n", html.EscapeString(msg.Text))
	if msg.Sender == internal.SenderAssistant && msg.Confidence > 0 {
		fmt.Fprintf(w, "<div class=\"confidence\">confidence %.2f</div>\n", msg.Confidence)
	}
	fmt.Fprint(w, "</div>\n")
}

// Extension returns the file extension for this format
func (e *HTMLExporter) Extension() string {
	return "html"
}

// MIMEType returns the mime type for this format
func (e *HTMLExporter) MIMEType() string {
	return "text/html"
}
