package internal

import (
	"testing"
	"time"
)

// recordingWriter counts store syncs so tests can assert write-on-change
type recordingWriter struct {
	saves    [][]*Session
	currents []string
}

func (w *recordingWriter) SaveSessions(sessions []*Session) error {
	snapshot := make([]*Session, len(sessions))
	copy(snapshot, sessions)
	w.saves = append(w.saves, snapshot)
	return nil
}

func (w *recordingWriter) SaveCurrentID(id string) error {
	w.currents = append(w.currents, id)
	return nil
}

func TestRepositoryCreate(t *testing.T) {
	writer := &recordingWriter{}
	repo := NewRepository(writer, nil, "")

	first := repo.Create()
	second := repo.Create()

	if first.ID == second.ID {
		t.Fatal("Create() should generate unique ids")
	}
	if repo.CurrentID() != second.ID {
		t.Errorf("current = %s, want most recently created %s", repo.CurrentID(), second.ID)
	}

	list := repo.List()
	if len(list) != 2 {
		t.Fatalf("List() returned %d sessions, want 2", len(list))
	}
	if list[0].ID != second.ID {
		t.Error("newest session should be at the head of the collection")
	}
	if len(writer.saves) != 2 {
		t.Errorf("expected 2 store syncs, got %d", len(writer.saves))
	}
	if len(writer.currents) != 2 || writer.currents[1] != second.ID {
		t.Errorf("Create() should persist the new current pointer, got %v", writer.currents)
	}
}

func TestRepositorySelect(t *testing.T) {
	writer := &recordingWriter{}
	repo := NewRepository(writer, nil, "")
	session := repo.Create()

	repo.Select("no-such-id")
	if repo.CurrentID() != session.ID {
		t.Error("selecting an unknown id should be a silent no-op")
	}

	other := repo.Create()
	repo.Select(session.ID)
	if repo.CurrentID() != session.ID {
		t.Errorf("current = %s, want %s", repo.CurrentID(), session.ID)
	}
	_ = other

	// Only the two creates and the successful select reach the store.
	if len(writer.currents) != 3 || writer.currents[2] != session.ID {
		t.Errorf("Select() should persist the pointer, got %v", writer.currents)
	}
}

func TestRepositoryDelete(t *testing.T) {
	writer := &recordingWriter{}
	repo := NewRepository(writer, nil, "")
	first := repo.Create()
	second := repo.Create()

	if !repo.Delete(second.ID) {
		t.Fatal("Delete() should report removal of an existing session")
	}
	if repo.CurrentID() != "" {
		t.Error("deleting the current session should unset the current pointer, not advance it")
	}
	if len(writer.currents) == 0 || writer.currents[len(writer.currents)-1] != "" {
		t.Errorf("deleting the current session should persist the cleared pointer, got %v", writer.currents)
	}
	if repo.Get(second.ID) != nil {
		t.Error("deleted session should be gone")
	}
	if repo.Get(first.ID) == nil {
		t.Error("other sessions should survive deletion")
	}

	if repo.Delete("no-such-id") {
		t.Error("Delete() on unknown id should report false")
	}
}

func TestRepositoryCurrentPointerAlwaysValid(t *testing.T) {
	// The current pointer must always be unset or name an existing
	// session, under any call sequence.
	repo := NewRepository(nil, nil, "")

	check := func(step string) {
		t.Helper()
		id := repo.CurrentID()
		if id == "" {
			return
		}
		if repo.Get(id) == nil {
			t.Fatalf("after %s: current id %s does not exist", step, id)
		}
	}

	a := repo.Create()
	check("create a")
	b := repo.Create()
	check("create b")
	repo.Rename(b.ID, "renamed")
	check("rename b")
	repo.Delete(a.ID)
	check("delete a")
	repo.Delete(b.ID)
	check("delete b")
	repo.Select(a.ID)
	check("select deleted a")
}

func TestRepositoryRename(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		wantTitle string
	}{
		{
			name:      "normal rename",
			title:     "Cyclone queries",
			wantTitle: "Cyclone queries",
		},
		{
			name:      "whitespace only is a no-op",
			title:     "   ",
			wantTitle: "New Chat",
		},
		{
			name:      "empty is a no-op",
			title:     "",
			wantTitle: "New Chat",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewRepository(nil, nil, "")
			session := repo.Create()

			repo.Rename(session.ID, tt.title)

			got := repo.Get(session.ID)
			if got.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", got.Title, tt.wantTitle)
			}
		})
	}
}

func TestRepositoryRenameBumpsUpdatedAt(t *testing.T) {
	repo := NewRepository(nil, nil, "")
	session := repo.Create()

	// Backdate so the bump is observable at second precision.
	repo.mu.Lock()
	repo.find(session.ID).UpdatedAt = time.Now().Add(-time.Hour)
	repo.mu.Unlock()

	repo.Rename(session.ID, "bumped")
	got := repo.Get(session.ID)
	if !got.UpdatedAt.After(time.Now().Add(-time.Minute)) {
		t.Error("Rename() should bump UpdatedAt")
	}
}

func TestRepositoryAppend(t *testing.T) {
	writer := &recordingWriter{}
	repo := NewRepository(writer, nil, "")
	session := repo.Create()

	if !repo.Append(session.ID, NewUserMessage("What sensors does Oceansat-2 carry into orbit?")) {
		t.Fatal("Append() to existing session should succeed")
	}

	got := repo.Get(session.ID)
	if len(got.Messages) != 1 {
		t.Fatalf("message count = %d, want 1", len(got.Messages))
	}
	if got.Title != "What sensors does Oceansat-2 carry into orbit?" {
		t.Errorf("first user message should auto-title the session, got %q", got.Title)
	}

	// A second message must not retitle.
	repo.Append(session.ID, NewUserMessage("And SCATSAT-1?"))
	got = repo.Get(session.ID)
	if got.Title != "What sensors does Oceansat-2 carry into orbit?" {
		t.Errorf("title changed on second append: %q", got.Title)
	}

	if repo.Append("no-such-id", NewUserMessage("orphan")) {
		t.Error("Append() to missing session should report false")
	}

	// create + 2 appends = 3 syncs; failed append does not sync.
	if len(writer.saves) != 3 {
		t.Errorf("expected 3 store syncs, got %d", len(writer.saves))
	}
}

func TestRepositoryAppendAssistantFirstDoesNotTitle(t *testing.T) {
	repo := NewRepository(nil, nil, "")
	session := repo.Create()

	repo.Append(session.ID, Message{ID: "m1", Text: "canned", Sender: SenderAssistant, Timestamp: time.Now()})

	got := repo.Get(session.ID)
	if got.Title != "New Chat" {
		t.Errorf("assistant message should not auto-title, got %q", got.Title)
	}
}

func TestRepositorySeededFromStore(t *testing.T) {
	seed := []*Session{CreateTestSession("seed-1"), CreateTestSession("seed-2")}

	repo := NewRepository(nil, seed, "")
	if len(repo.List()) != 2 {
		t.Fatalf("seeded repo should expose 2 sessions, got %d", len(repo.List()))
	}
	if repo.CurrentID() != "" {
		t.Error("with no stored pointer there should be no current session")
	}

	repo = NewRepository(nil, seed, "seed-2")
	if repo.CurrentID() != "seed-2" {
		t.Errorf("stored pointer should be restored, got %q", repo.CurrentID())
	}

	// A pointer naming a session that did not survive loading (e.g. a
	// malformed entry that was skipped) is discarded.
	repo = NewRepository(nil, seed, "gone")
	if repo.CurrentID() != "" {
		t.Errorf("stale stored pointer should be discarded, got %q", repo.CurrentID())
	}
}
