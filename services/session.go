package services

import (
	"sync"

	"github.com/HaiderNafees/ElysianThreads/models"
)

// SessionStatus tracks the identity lifecycle: loading until the auth
// subsystem reports its first state, then authenticated or none.
type SessionStatus int

const (
	SessionLoading SessionStatus = iota
	SessionNone
	SessionAuthenticated
)

func (s SessionStatus) String() string {
	switch s {
	case SessionNone:
		return "none"
	case SessionAuthenticated:
		return "authenticated"
	default:
		return "loading"
	}
}

// SessionChange is delivered to listeners on every identity transition.
type SessionChange struct {
	Status   SessionStatus
	Identity *models.Identity
}

// SessionState is the reactive identity value for one user session. It is
// an explicit object handed to its dependents; identity transitions are the
// sole trigger for their subscription setup and teardown, and listeners run
// synchronously inside SetIdentity/Clear so teardown completes before the
// call returns.
type SessionState struct {
	mu        sync.Mutex
	status    SessionStatus
	identity  *models.Identity
	listeners []func(SessionChange)
}

func NewSessionState() *SessionState {
	return &SessionState{status: SessionLoading}
}

// OnChange registers a listener for identity transitions.
func (s *SessionState) OnChange(fn func(SessionChange)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Current returns the status and, when authenticated, the identity.
func (s *SessionState) Current() (SessionStatus, *models.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return s.status, nil
	}
	id := *s.identity
	return s.status, &id
}

// SetIdentity records a sign-in and notifies listeners.
func (s *SessionState) SetIdentity(id models.Identity) {
	s.mu.Lock()
	s.status = SessionAuthenticated
	s.identity = &id
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	for _, l := range listeners {
		l(SessionChange{Status: SessionAuthenticated, Identity: &id})
	}
}

// Clear records a sign-out (or the initial "no user" resolution) and
// notifies listeners.
func (s *SessionState) Clear() {
	s.mu.Lock()
	s.status = SessionNone
	s.identity = nil
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	for _, l := range listeners {
		l(SessionChange{Status: SessionNone})
	}
}

func (s *SessionState) snapshotListeners() []func(SessionChange) {
	out := make([]func(SessionChange), len(s.listeners))
	copy(out, s.listeners)
	return out
}
