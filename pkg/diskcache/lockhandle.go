package diskcache

import (
	"sync"

	"github.com/google/uuid"
)

// LockHandle is an externally owned manual-reset event: the cache
// associates it with an incremented lock count on Lookup, and the owner
// calls Signal (indirectly, via Cache.Unlock) once it is done with the
// looked-up file. Wait lets a consumer block until the handle has been
// signaled, mirroring the OS-event semantics spec.md describes.
type LockHandle struct {
	// Token uniquely identifies the handle for logging and diagnostics.
	Token string

	mu       sync.Mutex
	signaled bool
	done     chan struct{}
}

// NewLockHandle creates an unsignaled lock handle.
func NewLockHandle() *LockHandle {
	return &LockHandle{Token: uuid.NewString(), done: make(chan struct{})}
}

// Signal sets the event. Signaling an already-signaled handle is a no-op.
func (h *LockHandle) Signal() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.signaled {
		return
	}
	h.signaled = true
	close(h.done)
}

// Wait blocks until the handle is signaled.
func (h *LockHandle) Wait() {
	<-h.done
}

// IsSignaled reports whether the handle has been signaled, without
// blocking.
func (h *LockHandle) IsSignaled() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}
