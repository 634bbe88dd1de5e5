package client

import (
	"sync"
	"time"
)

// Identity is the signed-in account as the client knows it.
type Identity struct {
	Email string
	Name  string
	Role  Role
}

// Session holds authentication state for one Client. There is no
// package-level session; every Client owns its own. Observers receive
// the new identity on sign-in and nil on sign-out or expiry.
type Session struct {
	mu           sync.Mutex
	identity     *Identity
	accessToken  string
	refreshToken string
	accessExpiry time.Time

	observers  map[int]func(*Identity)
	observerID int
}

func newSession() *Session {
	return &Session{observers: make(map[int]func(*Identity))}
}

// Current returns a copy of the signed-in identity, or nil.
func (s *Session) Current() *Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return nil
	}
	ident := *s.identity
	return &ident
}

// Authenticated reports whether a sign-in is active.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity != nil
}

// Subscribe registers an auth-state observer and returns a handle for
// Unsubscribe.
func (s *Session) Subscribe(fn func(*Identity)) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observerID++
	s.observers[s.observerID] = fn
	return s.observerID
}

// Unsubscribe removes an observer.
func (s *Session) Unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.observers, id)
}

// begin installs a fresh sign-in and notifies observers.
func (s *Session) begin(ident Identity, accessToken, refreshToken string, accessExpiry time.Time) {
	s.mu.Lock()
	s.identity = &ident
	s.accessToken = accessToken
	s.refreshToken = refreshToken
	s.accessExpiry = accessExpiry
	observers := s.snapshotObservers()
	s.mu.Unlock()

	notifyAll(observers, &ident)
}

// end clears the session and notifies observers. It reports whether
// this call performed the clear, so expiry handling runs exactly once
// per sign-in even when several requests fail concurrently.
func (s *Session) end() bool {
	s.mu.Lock()
	if s.identity == nil {
		s.mu.Unlock()
		return false
	}
	s.identity = nil
	s.accessToken = ""
	s.refreshToken = ""
	s.accessExpiry = time.Time{}
	observers := s.snapshotObservers()
	s.mu.Unlock()

	notifyAll(observers, nil)
	return true
}

// tokens returns the current token material.
func (s *Session) tokens() (accessToken, refreshToken string, accessExpiry time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken, s.refreshToken, s.accessExpiry
}

// setAccessToken swaps in a refreshed access token.
func (s *Session) setAccessToken(token string, expiry time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return
	}
	s.accessToken = token
	s.accessExpiry = expiry
}

// snapshotObservers must be called with the lock held.
func (s *Session) snapshotObservers() []func(*Identity) {
	observers := make([]func(*Identity), 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	return observers
}

func notifyAll(observers []func(*Identity), ident *Identity) {
	for _, fn := range observers {
		fn(ident)
	}
}
