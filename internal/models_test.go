package internal

import (
	"strings"
	"testing"
)

func TestTitleFromText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "short text kept as is",
			text: "What is INSAT-3D?",
			want: "What is INSAT-3D?",
		},
		{
			name: "surrounding whitespace trimmed",
			text: "  hello there  ",
			want: "hello there",
		},
		{
			name: "long text truncated to 50 characters",
			text: strings.Repeat("a", 80),
			want: strings.Repeat("a", 50),
		},
		{
			name: "empty text",
			text: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TitleFromText(tt.text); got != tt.want {
				t.Errorf("TitleFromText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewSession(t *testing.T) {
	session := NewSession()

	if session.ID == "" {
		t.Error("NewSession() should assign an id")
	}
	if session.Title != "New Chat" {
		t.Errorf("NewSession() title = %q, want %q", session.Title, "New Chat")
	}
	if len(session.Messages) != 0 {
		t.Errorf("NewSession() should start with no messages, got %d", len(session.Messages))
	}
	if !session.CreatedAt.Equal(session.UpdatedAt) {
		t.Error("NewSession() CreatedAt and UpdatedAt should match")
	}

	other := NewSession()
	if other.ID == session.ID {
		t.Error("NewSession() ids should be unique")
	}
}

func TestSessionClone(t *testing.T) {
	session := CreateTestSession("clone-test")
	clone := session.Clone()

	clone.Title = "mutated"
	clone.Messages[0].Text = "mutated"
	clone.Messages[1].Sources[0].URL = "mutated"
	clone.Messages[1].Entities[0].Text = "mutated"

	if session.Title == "mutated" {
		t.Error("Clone() should not share the title")
	}
	if session.Messages[0].Text == "mutated" {
		t.Error("Clone() should not share the message slice")
	}
	if session.Messages[1].Sources[0].URL == "mutated" {
		t.Error("Clone() should not share source slices")
	}
	if session.Messages[1].Entities[0].Text == "mutated" {
		t.Error("Clone() should not share entity slices")
	}
}

func TestNewAssistantMessage(t *testing.T) {
	resp := &Response{
		Answer:     "the answer",
		Confidence: 0.9,
		Sources:    []Source{{URL: "https://example.com", Title: "src"}},
		Entities:   []Entity{{Text: "INSAT-3D", Label: "SATELLITE", Confidence: 0.98}},
	}

	msg := NewAssistantMessage(resp)
	if msg.Sender != SenderAssistant {
		t.Errorf("sender = %q, want %q", msg.Sender, SenderAssistant)
	}
	if msg.Text != resp.Answer {
		t.Errorf("text = %q, want %q", msg.Text, resp.Answer)
	}
	if msg.Confidence != resp.Confidence {
		t.Errorf("confidence = %v, want %v", msg.Confidence, resp.Confidence)
	}
	if len(msg.Sources) != 1 || len(msg.Entities) != 1 {
		t.Error("sources and entities should carry over from the response")
	}
	if msg.ID == "" {
		t.Error("assistant message should get a fresh id")
	}
}
