package conversation

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrFlowActive is returned when a user tries to start a flow while one is
// already in progress.
var ErrFlowActive = errors.New("a flow is already active for this user")

// Manager holds the per-user sessions in memory. At most one session exists
// per user at a time; entering a new flow requires the previous one to be
// completed or cancelled first.
type Manager struct {
	sessions map[int64]*Session
	mu       sync.RWMutex
}

// NewManager creates an empty session manager
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[int64]*Session),
	}
}

// Begin creates a session for the user at the given entry state.
// Returns ErrFlowActive if the user already has one.
func (m *Manager) Begin(userID int64, entry State) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[userID]; ok {
		return nil, ErrFlowActive
	}

	session := &Session{
		UserID: userID,
		FlowID: uuid.New().String(),
		State:  entry,
	}
	m.sessions[userID] = session
	return session, nil
}

// Get retrieves the user's active session, if any
func (m *Manager) Get(userID int64) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[userID]
	return session, ok
}

// End discards the user's session and its draft. Reports whether a session
// existed. This is the single cleanup path for completion and cancellation.
func (m *Manager) End(userID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[userID]; !ok {
		return false
	}
	delete(m.sessions, userID)
	return true
}
