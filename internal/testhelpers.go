package internal

import (
	"fmt"
	"time"
)

// CreateTestSession creates a test session with one user/assistant pair
func CreateTestSession(id string) *Session {
	now := time.Now().Truncate(time.Second)
	return &Session{
		ID:        id,
		Title:     "Test Conversation",
		CreatedAt: now,
		UpdatedAt: now,
		Messages: []Message{
			{
				ID:        "msg-" + id + "-1",
				Text:      "What is INSAT-3D?",
				Sender:    SenderUser,
				Timestamp: now,
			},
			{
				ID:         "msg-" + id + "-2",
				Text:       "INSAT-3D is a meteorological satellite.",
				Sender:     SenderAssistant,
				Timestamp:  now,
				Confidence: 0.92,
				Sources: []Source{
					{URL: "https://www.mosdac.gov.in/insat-3d", Title: "INSAT-3D", Content: "Mission page", Relevance: 0.95},
				},
				Entities: []Entity{
					{Text: "INSAT-3D", Label: "SATELLITE", Confidence: 0.98},
				},
			},
		},
	}
}

// CreateTestSessionWithMessages creates a test session with custom messages
func CreateTestSessionWithMessages(id string, messages []Message) *Session {
	now := time.Now().Truncate(time.Second)
	return &Session{
		ID:        id,
		Title:     fmt.Sprintf("Session %s", id),
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  messages,
	}
}
