package internal

import (
	"strings"
	"sync"
	"time"
)

// SessionWriter is the slice of the store the repository needs to mirror
// its state after every mutation.
type SessionWriter interface {
	SaveSessions(sessions []*Session) error
	SaveCurrentID(id string) error
}

// Repository owns the in-memory session collection, newest first, and the
// current-session pointer. Every mutation re-serializes the full
// collection to the store.
type Repository struct {
	mu        sync.RWMutex
	store     SessionWriter
	sessions  []*Session
	currentID string
}

// NewRepository creates a repository seeded with previously persisted
// sessions and current-session pointer. A pointer naming a session that
// did not survive loading is discarded. The store may be nil, in which
// case state is memory-only.
func NewRepository(store SessionWriter, initial []*Session, currentID string) *Repository {
	sessions := make([]*Session, 0, len(initial))
	sessions = append(sessions, initial...)
	r := &Repository{
		store:    store,
		sessions: sessions,
	}
	if currentID != "" && r.find(currentID) != nil {
		r.currentID = currentID
	}
	return r
}

// Create adds a fresh empty session at the head of the collection, makes
// it current and returns a copy of it.
func (r *Repository) Create() *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	session := NewSession()
	r.sessions = append([]*Session{session}, r.sessions...)
	r.currentID = session.ID
	r.sync()
	r.syncCurrent()

	return session.Clone()
}

// Select sets the current-session pointer. Selecting an unknown id is a
// silent no-op; downstream callers simply observe no current session.
func (r *Repository) Select(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.find(id) == nil {
		LogDebug("Select: unknown session %s ignored", id)
		return
	}
	r.currentID = id
	r.syncCurrent()
}

// Delete removes a session. If it was current, the current pointer
// becomes unset. Returns whether a session was removed.
func (r *Repository) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, session := range r.sessions {
		if session.ID == id {
			r.sessions = append(r.sessions[:i], r.sessions[i+1:]...)
			if r.currentID == id {
				r.currentID = ""
				r.syncCurrent()
			}
			r.sync()
			return true
		}
	}
	return false
}

// Rename replaces a session's title. An empty or whitespace-only title is
// a silent no-op, not an error.
func (r *Repository) Rename(id, title string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	session := r.find(id)
	if session == nil {
		return
	}
	session.Title = title
	session.UpdatedAt = time.Now().Truncate(time.Second)
	r.sync()
}

// Append adds a message to a session and bumps UpdatedAt. The first user
// message auto-titles the session. Returns false if the session no longer
// exists, so a late resolution can be dropped instead of resurrecting it.
func (r *Repository) Append(sessionID string, msg Message) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	session := r.find(sessionID)
	if session == nil {
		return false
	}

	if len(session.Messages) == 0 && msg.Sender == SenderUser {
		session.Title = TitleFromText(msg.Text)
	}
	session.Messages = append(session.Messages, msg)
	session.UpdatedAt = time.Now().Truncate(time.Second)
	r.sync()

	return true
}

// Current returns a copy of the current session, or nil if unset
func (r *Repository) Current() *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.currentID == "" {
		return nil
	}
	session := r.find(r.currentID)
	if session == nil {
		return nil
	}
	return session.Clone()
}

// CurrentID returns the id of the current session, or "" if unset
func (r *Repository) CurrentID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.currentID
}

// Get returns a copy of a session by id, or nil
func (r *Repository) Get(id string) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session := r.find(id)
	if session == nil {
		return nil
	}
	return session.Clone()
}

// List returns copies of all sessions, newest first
func (r *Repository) List() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Session, 0, len(r.sessions))
	for _, session := range r.sessions {
		out = append(out, session.Clone())
	}
	return out
}

// find must be called with the lock held
func (r *Repository) find(id string) *Session {
	for _, session := range r.sessions {
		if session.ID == id {
			return session
		}
	}
	return nil
}

// sync mirrors the collection to the store; must be called with the lock
// held. Persistence failures are logged, never propagated to callers.
func (r *Repository) sync() {
	if r.store == nil {
		return
	}
	if err := r.store.SaveSessions(r.sessions); err != nil {
		LogError("Failed to persist sessions: %v", err)
	}
}

// syncCurrent mirrors the current-session pointer to the store so the
// selection survives process restarts; must be called with the lock held.
func (r *Repository) syncCurrent() {
	if r.store == nil {
		return
	}
	if err := r.store.SaveCurrentID(r.currentID); err != nil {
		LogError("Failed to persist current session: %v", err)
	}
}
