// Package session keeps the per-account conversation position in memory
package session

import "sync"

// State is a position in the conversation menu tree
type State int

const (
	StateNone State = iota
	StateLogin
	StatePassword
	StateMainMenu
	StateProfile
	StateInfo
	StateLogoutConfirm
	StateAdminMenu
	StateBroadcast
	StateBroadcastConfirm
	StateUserList
	StateEditInfo
	StateEditInfoConfirm
)

var stateNames = map[State]string{
	StateNone:             "none",
	StateLogin:            "login",
	StatePassword:         "password",
	StateMainMenu:         "main_menu",
	StateProfile:          "profile",
	StateInfo:             "info",
	StateLogoutConfirm:    "logout_confirm",
	StateAdminMenu:        "admin_menu",
	StateBroadcast:        "broadcast",
	StateBroadcastConfirm: "broadcast_confirm",
	StateUserList:         "user_list",
	StateEditInfo:         "edit_info",
	StateEditInfoConfirm:  "edit_info_confirm",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Session holds the conversation position and scratch input of one account
type Session struct {
	State State

	// Login is the platform login typed before the password
	Login string
	// Attempts counts failed logins. It is tracked only; nothing enforces a
	// lockout on it.
	Attempts int
	// LogoutLogin is the login the user must retype to confirm logout
	LogoutLogin string
	// Draft holds a broadcast or info text waiting for confirmation
	Draft string
}

// Store is a concurrency safe map of sessions keyed by chat user id
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

// Get returns a copy of the session
func (s *Store) Get(id int64) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}
	return *session, true
}

// State returns the tracked state, or StateNone when nothing is tracked
func (s *Store) State(id int64) State {
	session, _ := s.Get(id)
	return session.State
}

// Reset replaces any existing session with a fresh one in the given state
func (s *Store) Reset(id int64, state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &Session{State: state}
}

// SetState moves the session to state, creating it when needed
func (s *Store) SetState(id int64, state State) {
	s.Update(id, func(session *Session) { session.State = state })
}

// Update applies fn to the session under the lock, creating it when needed
func (s *Store) Update(id int64, fn func(session *Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		session = &Session{}
		s.sessions[id] = session
	}
	fn(session)
}

// Clear drops the session on logout, ban or staleness
func (s *Store) Clear(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of tracked sessions
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
