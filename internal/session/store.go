package session

import (
	"sync"
	"time"
)

// State is the per-session view state kept between requests.
// Actions receive the session explicitly; there is no shared global.
type State struct {
	Username   string    `json:"username"`
	Sorted     bool      `json:"sorted"`
	LoggedInAt time.Time `json:"logged_in_at"`
}

type entry struct {
	state   State
	expires int64
}

// Store is a thread-safe in-memory session store with TTL expiry.
// A background janitor drops stale sessions on a fixed interval.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]entry
	ttl      time.Duration
	closeCh  chan struct{}
}

// NewStore creates a session store whose sessions expire after ttl.
// cleaningInterval controls how often expired sessions are swept.
func NewStore(ttl, cleaningInterval time.Duration) *Store {
	s := &Store{
		sessions: make(map[string]entry),
		ttl:      ttl,
		closeCh:  make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(cleaningInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				now := time.Now().UnixNano()

				s.mu.Lock()
				for username, e := range s.sessions {
					if e.expires > 0 && now > e.expires {
						delete(s.sessions, username)
					}
				}
				s.mu.Unlock()

			case <-s.closeCh:
				return
			}
		}
	}()

	return s
}

// Get returns the session state for a username, if a live session exists
func (s *Store) Get(username string) (State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.sessions[username]
	if !exists {
		return State{}, false
	}
	if e.expires > 0 && time.Now().UnixNano() > e.expires {
		return State{}, false
	}
	return e.state, true
}

// Put stores session state, resetting the expiry clock
func (s *Store) Put(state State) {
	var expires int64
	if s.ttl > 0 {
		expires = time.Now().Add(s.ttl).UnixNano()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[state.Username] = entry{state: state, expires: expires}
}

// Delete ends a session
func (s *Store) Delete(username string) {
	s.mu.Lock()
	delete(s.sessions, username)
	s.mu.Unlock()
}

// Close stops the janitor and drops all sessions
func (s *Store) Close() {
	s.closeCh <- struct{}{}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[string]entry)
}
