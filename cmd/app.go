package cmd

import (
	"fmt"
	"time"

	"github.com/mosdac/assist/internal"
)

// app bundles the wired-up core for a command invocation. The store is
// constructed once here and injected everywhere; nothing reaches for it
// ambiently.
type app struct {
	store      *internal.Store
	prefs      *internal.Preferences
	repo       *internal.Repository
	remote     *internal.RemoteService
	dispatcher *internal.Dispatcher
}

// openApp loads persisted state and wires the core components
func openApp() (*app, error) {
	path, err := defaultDataPath()
	if err != nil {
		return nil, err
	}

	store, err := internal.OpenStore(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	prefs, err := store.LoadPreferences()
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	sessions, err := store.LoadSessions()
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}

	currentID, err := store.LoadCurrentID()
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to load current session: %w", err)
	}

	target := endpoint
	if target == "" {
		target = prefs.Endpoint
	}

	repo := internal.NewRepository(store, sessions, currentID)
	remote := internal.NewRemoteService(target, 30*time.Second)
	resolver := internal.NewResolver(remote, internal.NewSubstitute())
	dispatcher := internal.NewDispatcher(repo, resolver)

	return &app{
		store:      store,
		prefs:      prefs,
		repo:       repo,
		remote:     remote,
		dispatcher: dispatcher,
	}, nil
}

// Close cancels outstanding work and flushes the store
func (a *app) Close() {
	a.dispatcher.Shutdown()
	if err := a.store.Close(); err != nil {
		internal.LogWarn("Failed to close store: %v", err)
	}
}
