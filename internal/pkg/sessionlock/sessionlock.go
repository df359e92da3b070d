package sessionlock

import (
	"sync"
)

// Registry serializes turns per session. TryAcquire is non-blocking: a
// second turn for a session already mid-turn is rejected, not queued.
type Registry struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		held: make(map[string]struct{}),
	}
}

// TryAcquire claims the session's turn slot. Returns false when another
// turn for the same session is still running.
func (r *Registry) TryAcquire(sessionId string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.held[sessionId]; taken {
		return false
	}
	r.held[sessionId] = struct{}{}
	return true
}

// Release frees the session's turn slot. Releasing an unheld slot is a
// no-op.
func (r *Registry) Release(sessionId string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.held, sessionId)
}
