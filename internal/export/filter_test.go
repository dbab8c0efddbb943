package export

import (
	"testing"
	"time"

	"github.com/mosdac/assist/internal"
)

func TestBuildViewsSelection(t *testing.T) {
	sessions := []*internal.Session{
		internal.CreateTestSession("keep"),
		internal.CreateTestSession("drop"),
	}

	opts := allOptions(FormatJSON)
	opts.SelectedSessionIDs = []string{"keep"}

	views := buildViews(sessions, opts, time.Now())
	if len(views) != 1 {
		t.Fatalf("selected %d sessions, want 1", len(views))
	}
	if views[0].ID != "keep" {
		t.Errorf("selected id = %q, want %q", views[0].ID, "keep")
	}

	// Empty selection means all sessions.
	opts.SelectedSessionIDs = nil
	if got := len(buildViews(sessions, opts, time.Now())); got != 2 {
		t.Errorf("empty selection kept %d sessions, want 2", got)
	}
}

func TestBuildViewsStripsAreIndependent(t *testing.T) {
	tests := []struct {
		name         string
		sources      bool
		entities     bool
		wantSources  bool
		wantEntities bool
	}{
		{name: "both kept", sources: true, entities: true, wantSources: true, wantEntities: true},
		{name: "sources stripped", sources: false, entities: true, wantSources: false, wantEntities: true},
		{name: "entities stripped", sources: true, entities: false, wantSources: true, wantEntities: false},
		{name: "both stripped", sources: false, entities: false, wantSources: false, wantEntities: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := allOptions(FormatJSON)
			opts.IncludeSources = tt.sources
			opts.IncludeEntities = tt.entities

			views := buildViews([]*internal.Session{internal.CreateTestSession("strip")}, opts, time.Now())
			msg := views[0].Messages[1] // the assistant message

			if (len(msg.Sources) > 0) != tt.wantSources {
				t.Errorf("sources present = %v, want %v", len(msg.Sources) > 0, tt.wantSources)
			}
			if (len(msg.Entities) > 0) != tt.wantEntities {
				t.Errorf("entities present = %v, want %v", len(msg.Entities) > 0, tt.wantEntities)
			}
		})
	}
}

func TestBuildViewsWithoutMessages(t *testing.T) {
	opts := allOptions(FormatJSON)
	opts.IncludeMessages = false

	views := buildViews([]*internal.Session{internal.CreateTestSession("meta-only")}, opts, time.Now())
	view := views[0]

	if len(view.Messages) != 0 {
		t.Errorf("message count = %d, want 0", len(view.Messages))
	}
	if view.Title == "" || view.CreatedAt == "" {
		t.Error("metadata must survive a messages-less export")
	}
}

func TestBuildViewsDateRanges(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	fresh := internal.CreateTestSession("fresh")
	fresh.UpdatedAt = now.Add(-2 * time.Hour)

	lastWeek := internal.CreateTestSession("last-week")
	lastWeek.UpdatedAt = now.AddDate(0, 0, -5)

	old := internal.CreateTestSession("old")
	old.UpdatedAt = now.AddDate(0, -3, 0)

	sessions := []*internal.Session{fresh, lastWeek, old}

	tests := []struct {
		name    string
		rng     DateRange
		wantIDs []string
	}{
		{name: "all", rng: RangeAll, wantIDs: []string{"fresh", "last-week", "old"}},
		{name: "today", rng: RangeToday, wantIDs: []string{"fresh"}},
		{name: "week", rng: RangeWeek, wantIDs: []string{"fresh", "last-week"}},
		{name: "month", rng: RangeMonth, wantIDs: []string{"fresh", "last-week"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := allOptions(FormatJSON)
			opts.DateRange = tt.rng

			views := buildViews(sessions, opts, now)
			if len(views) != len(tt.wantIDs) {
				t.Fatalf("kept %d sessions, want %d", len(views), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if views[i].ID != id {
					t.Errorf("view %d id = %q, want %q", i, views[i].ID, id)
				}
			}
		})
	}
}

func TestBuildViewsCustomRange(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	inside := internal.CreateTestSession("inside")
	inside.UpdatedAt = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	before := internal.CreateTestSession("before")
	before.UpdatedAt = time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	after := internal.CreateTestSession("after")
	after.UpdatedAt = time.Date(2025, 6, 14, 9, 0, 0, 0, time.UTC)

	opts := allOptions(FormatJSON)
	opts.DateRange = RangeCustom
	opts.CustomFrom = time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
	opts.CustomTo = time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)

	views := buildViews([]*internal.Session{inside, before, after}, opts, now)
	if len(views) != 1 {
		t.Fatalf("kept %d sessions, want 1", len(views))
	}
	if views[0].ID != "inside" {
		t.Errorf("kept id = %q, want %q", views[0].ID, "inside")
	}
}
