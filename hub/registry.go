package hub

import "sync"

// TransitionListener receives subscriber-count edge transitions. The
// scheduler implements it.
type TransitionListener interface {
	FirstSubscriber()
	LastSubscriber()
}

// Registry is a monotonic non-negative subscriber counter. Transitions are
// reported to the listener under the registry mutex, so a last-disconnect
// interleaving with a new connect cannot double-start or strand the
// scheduler.
type Registry struct {
	mu       sync.Mutex
	count    int
	listener TransitionListener
}

func NewRegistry() *Registry {
	return &Registry{}
}

// SetListener installs the transition listener. Must be called before the
// first connection is accepted.
func (r *Registry) SetListener(l TransitionListener) {
	r.mu.Lock()
	r.listener = l
	r.mu.Unlock()
}

// OnConnect increments the counter and returns the new count, firing
// FirstSubscriber on the 0→1 edge.
func (r *Registry) OnConnect() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.count++
	if r.count == 1 && r.listener != nil {
		r.listener.FirstSubscriber()
	}
	return r.count
}

// OnDisconnect decrements the counter with a floor at zero and returns the
// new count, firing LastSubscriber on the 1→0 edge.
func (r *Registry) OnDisconnect() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.count == 0 {
		return 0
	}
	r.count--
	if r.count == 0 && r.listener != nil {
		r.listener.LastSubscriber()
	}
	return r.count
}

func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}
