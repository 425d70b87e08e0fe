package client

import "sync"

// Identity is the signed-in user as the SDK sees it. A nil Identity in an
// AuthState means signed out.
type Identity struct {
	UserID   string
	Name     string
	Email    string
	PhotoURL string
	IDToken  string
}

// AuthState is what subscribers observe. Loading is true only until the
// first publication; it never flips back.
type AuthState struct {
	Loading bool
	User    *Identity
}

// SessionStore is the single source of truth for auth state. Every login and
// logout path publishes through it; nothing else mutates the state.
type SessionStore struct {
	mu     sync.Mutex
	state  AuthState
	subs   map[int]chan AuthState
	nextID int
	closed bool
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		state: AuthState{Loading: true},
		subs:  make(map[int]chan AuthState),
	}
}

// Current returns the latest state without subscribing.
func (s *SessionStore) Current() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers an observer. The current state is delivered
// immediately, then every publication after it. The returned func
// unsubscribes; calling it twice is safe.
func (s *SessionStore) Subscribe() (<-chan AuthState, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan AuthState, 16)
	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	ch <- s.state

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if sub, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(sub)
			}
		})
	}
	return ch, cancel
}

// Publish replaces the state and notifies every subscriber, in subscription
// order per channel. The first call ends the loading phase. A slow
// subscriber loses intermediate states, never the lock.
func (s *SessionStore) Publish(user *Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.state = AuthState{Loading: false, User: user}
	for _, ch := range s.subs {
		select {
		case ch <- s.state:
		default:
			// drop the oldest so the latest state always lands
			select {
			case <-ch:
			default:
			}
			ch <- s.state
		}
	}
}

// Close tears the store down. Subscriber channels are closed and further
// publications are ignored.
func (s *SessionStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}
