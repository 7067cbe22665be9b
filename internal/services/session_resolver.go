package services

import (
	"context"
	"sync"
)

// AuthStream is the auth collaborator's state stream. Subscribe must invoke
// onChange once immediately with the current identity ("" when signed out)
// and again on every transition.
type AuthStream interface {
	Subscribe(onChange func(identity string)) (unsubscribe func())
}

// SessionResolver tracks the currently signed-in identity. Resolving a new
// identity loads its settings session; resolving to none releases all local
// state so nothing from the previous user leaks into the next one.
type SessionResolver struct {
	mu          sync.Mutex
	settings    *SettingsService
	identity    string
	unsubscribe func()
}

func NewSessionResolver(settings *SettingsService) *SessionResolver {
	return &SessionResolver{settings: settings}
}

// Watch subscribes to the auth stream and drives identity transitions from
// it. Close undoes the subscription.
func (r *SessionResolver) Watch(ctx context.Context, stream AuthStream) {
	r.mu.Lock()
	prev := r.unsubscribe
	r.unsubscribe = nil
	r.mu.Unlock()

	if prev != nil {
		prev()
	}

	// Subscribe fires synchronously with the current state, so the lock
	// must not be held across it.
	unsubscribe := stream.Subscribe(func(identity string) {
		r.Set(ctx, identity)
	})

	r.mu.Lock()
	r.unsubscribe = unsubscribe
	r.mu.Unlock()
}

// Set applies an identity transition directly.
func (r *SessionResolver) Set(ctx context.Context, identity string) {
	r.mu.Lock()
	prev := r.identity
	r.identity = identity
	r.mu.Unlock()

	if identity == prev {
		return
	}
	if prev != "" {
		r.settings.Release(prev)
	}
	if identity != "" {
		// Load happens once, here; later lookups reuse the session.
		_, _ = r.settings.Session(ctx, identity)
	}
}

// Identity returns the current identity, or "" when signed out.
func (r *SessionResolver) Identity() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.identity
}

// Session returns the current identity's settings session. Without a
// resolved identity it fails with ErrUnauthenticated before any I/O.
func (r *SessionResolver) Session(ctx context.Context) (*SettingsSession, error) {
	r.mu.Lock()
	identity := r.identity
	r.mu.Unlock()

	if identity == "" {
		return nil, ErrUnauthenticated
	}
	return r.settings.Session(ctx, identity)
}

func (r *SessionResolver) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.unsubscribe != nil {
		r.unsubscribe()
		r.unsubscribe = nil
	}
}
