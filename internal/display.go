package internal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	assistantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("213")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	if isTerminal(os.Stdout) {
		fmt.Printf("%s %s\n", successStyle.Render("✓"), message)
	} else {
		fmt.Println(message)
	}
}

// PrintError prints an error message
func PrintError(message string) {
	if isTerminal(os.Stderr) {
		fmt.Fprintf(os.Stderr, "%s %s\n", errorStyle.Render("✗"), message)
	} else {
		fmt.Fprintf(os.Stderr, "%s\n", message)
	}
}

// PrintInfo prints an info message
func PrintInfo(message string) {
	if isTerminal(os.Stdout) {
		fmt.Printf("%s %s\n", infoStyle.Render("ℹ"), message)
	} else {
		fmt.Println(message)
	}
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	if isTerminal(os.Stderr) {
		fmt.Fprintf(os.Stderr, "%s %s\n", warningStyle.Render("!"), message)
	} else {
		fmt.Fprintf(os.Stderr, "%s\n", message)
	}
}

// RenderMessage writes one chat message with sender styling, confidence
// and source list.
func RenderMessage(w io.Writer, msg Message) {
	label := "You"
	style := userStyle
	if msg.Sender == SenderAssistant {
		label = "Assistant"
		style = assistantStyle
	}

	ts := msg.Timestamp.Format("15:04:05")
	fmt.Fprintf(w, "%s %s\n", style.Render(label+":"), dimStyle.Render(ts))
	fmt.Fprintf(w, "%s\n", msg.Text)

	if msg.Sender == SenderAssistant && msg.Confidence > 0 {
		fmt.Fprintf(w, "%s\n", dimStyle.Render(fmt.Sprintf("confidence: %.2f", msg.Confidence)))
	}
	if len(msg.Sources) > 0 {
		fmt.Fprintf(w, "%s\n", dimStyle.Render("sources:"))
		for _, src := range msg.Sources {
			fmt.Fprintf(w, "%s\n", dimStyle.Render("  - "+src.Title+" ("+src.URL+")"))
		}
	}
	fmt.Fprintln(w)
}

// RenderSessionLine writes one row of a session listing
func RenderSessionLine(w io.Writer, s *Session, current bool) {
	marker := "  "
	if current {
		marker = successStyle.Render("* ")
	}

	title := s.Title
	if strings.TrimSpace(title) == "" {
		title = "(untitled)"
	}

	fmt.Fprintf(w, "%s%s  %s  %s\n",
		marker,
		dimStyle.Render(ShortID(s.ID)),
		title,
		dimStyle.Render(fmt.Sprintf("%d msgs, updated %s", len(s.Messages), s.UpdatedAt.Format(time.DateTime))),
	)
}

// ShortID abbreviates a uuid for listings
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// isTerminal checks if the writer is a terminal
func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}
