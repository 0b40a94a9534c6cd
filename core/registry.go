package core

import (
	"sync"
	"sync/atomic"
	"time"
)

// RegistryConfig configures registry behavior.
// A TTL of zero keeps entries for the process lifetime.
type RegistryConfig struct {
	TTL time.Duration
}

// RegistryStats are simple counters for registry behavior.
// These are intended for diagnostics and monitoring.
type RegistryStats struct {
	Hits    int64         `json:"hits"`
	Misses  int64         `json:"misses"`
	Puts    int64         `json:"puts"`
	Deletes int64         `json:"deletes"`
	Size    int           `json:"size"`
	TTL     time.Duration `json:"ttl"`
}

// SessionRegistry is a process-wide map from authenticated user ID to
// a session handle. It is written by every concurrent login and
// registration and read by every authenticated request, so all access
// goes through a single RWMutex. Concurrent writers to the same key
// are last-write-wins.
type SessionRegistry struct {
	sessions map[int64]*registeredSession
	mu       sync.RWMutex
	ttl      time.Duration

	// counters
	hits    int64
	misses  int64
	puts    int64
	deletes int64
}

type registeredSession struct {
	session  *Session
	storedAt time.Time
}

func NewSessionRegistry(c RegistryConfig) *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[int64]*registeredSession),
		ttl:      c.TTL,
	}
}

// Put inserts or overwrites the session handle for a user.
func (r *SessionRegistry) Put(userID int64, session *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[userID] = &registeredSession{
		session:  session,
		storedAt: time.Now(),
	}
	atomic.AddInt64(&r.puts, 1)
}

// Get looks up the session handle for a user. Absence is not an
// error; callers fall back to re-resolving identity from the store.
func (r *SessionRegistry) Get(userID int64) (*Session, bool) {
	r.mu.RLock()
	entry, exists := r.sessions[userID]
	r.mu.RUnlock()

	if !exists {
		atomic.AddInt64(&r.misses, 1)
		return nil, false
	}

	if r.ttl > 0 && time.Since(entry.storedAt) > r.ttl {
		atomic.AddInt64(&r.misses, 1)
		r.Delete(userID)
		return nil, false
	}

	atomic.AddInt64(&r.hits, 1)
	return entry.session, true
}

func (r *SessionRegistry) Delete(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, existed := r.sessions[userID]; existed {
		delete(r.sessions, userID)
		atomic.AddInt64(&r.deletes, 1)
	}
}

func (r *SessionRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = make(map[int64]*registeredSession)
}

func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *SessionRegistry) Stats() RegistryStats {
	return RegistryStats{
		Hits:    atomic.LoadInt64(&r.hits),
		Misses:  atomic.LoadInt64(&r.misses),
		Puts:    atomic.LoadInt64(&r.puts),
		Deletes: atomic.LoadInt64(&r.deletes),
		Size:    r.Len(),
		TTL:     r.ttl,
	}
}
