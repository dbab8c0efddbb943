package internal

import (
	"context"
	"sync"
	"sync/atomic"
)

// apologyText is the synthetic assistant answer for second-order
// failures, where even the fallback path could not produce a response.
const apologyText = "I apologize, but I'm having trouble processing your " +
	"request right now. Please try again in a moment."

// Dispatcher orchestrates one conversation turn: optimistic user append,
// resolution, assistant append. Sends are serialized per session so reply
// order is deterministic, and each in-flight resolution is cancellable by
// session id.
type Dispatcher struct {
	repo     *Repository
	resolver *Resolver
	loading  atomic.Bool

	mu      sync.Mutex
	locks   map[string]*sync.Mutex
	cancels map[string]map[uint64]context.CancelFunc
	nextTok uint64
}

// NewDispatcher creates a dispatcher over a repository and resolver
func NewDispatcher(repo *Repository, resolver *Resolver) *Dispatcher {
	return &Dispatcher{
		repo:     repo,
		resolver: resolver,
		locks:    make(map[string]*sync.Mutex),
		cancels:  make(map[string]map[uint64]context.CancelFunc),
	}
}

// Loading reports whether any send is currently in flight
func (d *Dispatcher) Loading() bool {
	return d.loading.Load()
}

// Send runs one turn. The user message is appended before any network
// activity; the assistant message (real, substitute or apology) lands on
// the session captured at entry even if the user switches sessions while
// waiting. A turn whose session is deleted mid-flight is dropped.
func (d *Dispatcher) Send(ctx context.Context, text string, loc *Location) {
	sessionID := d.repo.CurrentID()
	if sessionID == "" {
		sessionID = d.repo.Create().ID
	}

	lock := d.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	if !d.repo.Append(sessionID, NewUserMessage(text)) {
		// Session vanished between capture and append.
		LogWarn("Dropping send for deleted session %s", sessionID)
		return
	}

	d.loading.Store(true)
	defer d.loading.Store(false)

	ctx, cancel := context.WithCancel(ctx)
	token := d.registerCancel(sessionID, cancel)
	defer d.releaseCancel(sessionID, token)

	resp := d.resolve(ctx, text, sessionID, loc)
	if resp == nil {
		// Cancelled: the target session was deleted or we are shutting
		// down. Drop the result instead of appending into a void target.
		LogDebug("Dropping cancelled resolution for session %s", sessionID)
		return
	}

	if !d.repo.Append(sessionID, NewAssistantMessage(resp)) {
		LogWarn("Dropping assistant reply for deleted session %s", sessionID)
	}
}

// resolve settles every non-cancelled turn with a Response: a real
// answer, a substitute answer, or the apology.
func (d *Dispatcher) resolve(ctx context.Context, text, sessionID string, loc *Location) (resp *Response) {
	defer func() {
		if r := recover(); r != nil {
			LogError("Panic during resolution: %v", r)
			resp = apologyResponse()
		}
	}()

	resp, err := d.resolver.Resolve(ctx, text, sessionID, loc)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		LogError("Resolution failed beyond fallback: %v", err)
		return apologyResponse()
	}
	return resp
}

func apologyResponse() *Response {
	return &Response{
		Answer:     apologyText,
		Confidence: 0.1,
	}
}

// CancelSession aborts all in-flight sends targeting a session. Called
// before session deletion and on shutdown.
func (d *Dispatcher) CancelSession(sessionID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, cancel := range d.cancels[sessionID] {
		cancel()
	}
}

// Shutdown aborts every in-flight send
func (d *Dispatcher) Shutdown() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, byToken := range d.cancels {
		for _, cancel := range byToken {
			cancel()
		}
	}
}

func (d *Dispatcher) sessionLock(sessionID string) *sync.Mutex {
	d.mu.Lock()
	defer d.mu.Unlock()

	lock, ok := d.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		d.locks[sessionID] = lock
	}
	return lock
}

func (d *Dispatcher) registerCancel(sessionID string, cancel context.CancelFunc) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextTok++
	token := d.nextTok
	if d.cancels[sessionID] == nil {
		d.cancels[sessionID] = make(map[uint64]context.CancelFunc)
	}
	d.cancels[sessionID][token] = cancel
	return token
}

func (d *Dispatcher) releaseCancel(sessionID string, token uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if byToken, ok := d.cancels[sessionID]; ok {
		if cancel, ok := byToken[token]; ok {
			cancel()
			delete(byToken, token)
		}
		if len(byToken) == 0 {
			delete(d.cancels, sessionID)
		}
	}
}
