package internal

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Session represents one persisted conversation thread
type Session struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message represents a single turn within a session. Messages are
// immutable once appended; append order is the only valid display order.
type Message struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	Sender     Sender    `json:"sender"`
	Timestamp  time.Time `json:"timestamp"`
	Sources    []Source  `json:"sources,omitempty"`
	Entities   []Entity  `json:"entities,omitempty"`
	Confidence float64   `json:"confidence,omitempty"`
}

// Source is a document reference attached to an assistant message
type Source struct {
	URL       string  `json:"url"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	Relevance float64 `json:"relevance"`
}

// Entity is a named entity extracted from an assistant answer
type Entity struct {
	Text       string  `json:"text"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Start      int     `json:"start,omitempty"`
	End        int     `json:"end,omitempty"`
}

// NewSession creates an empty session with a fresh id and default title
func NewSession() *Session {
	now := time.Now().Truncate(time.Second)
	return &Session{
		ID:        uuid.New().String(),
		Title:     "New Chat",
		Messages:  []Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewUserMessage creates a user message with a fresh id and current timestamp
func NewUserMessage(text string) Message {
	return Message{
		ID:        uuid.New().String(),
		Text:      text,
		Sender:    SenderUser,
		Timestamp: time.Now().Truncate(time.Second),
	}
}

// NewAssistantMessage creates an assistant message from a resolved response
func NewAssistantMessage(resp *Response) Message {
	return Message{
		ID:         uuid.New().String(),
		Text:       resp.Answer,
		Sender:     SenderAssistant,
		Timestamp:  time.Now().Truncate(time.Second),
		Sources:    resp.Sources,
		Entities:   resp.Entities,
		Confidence: resp.Confidence,
	}
}

// TitleFromText derives a session title from the first user message,
// truncated to 50 characters.
func TitleFromText(text string) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) > 50 {
		return string(runes[:50])
	}
	return text
}

// Clone returns a deep copy of the session so callers can read without
// aliasing repository-owned state.
func (s *Session) Clone() *Session {
	out := *s
	out.Messages = make([]Message, len(s.Messages))
	copy(out.Messages, s.Messages)
	for i := range out.Messages {
		out.Messages[i].Sources = append([]Source(nil), s.Messages[i].Sources...)
		out.Messages[i].Entities = append([]Entity(nil), s.Messages[i].Entities...)
	}
	return &out
}
