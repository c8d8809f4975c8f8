package mouse

import (
	"fmt"
	"sync"
)

// registry is the shared callback table. The public hook/unhook API mutates
// it and the dispatcher iterates it, all under one lock.
type registry struct {
	mu        sync.Mutex
	callbacks map[CallbackID]Callback
	nextID    CallbackID
}

func newRegistry() *registry {
	return &registry{callbacks: make(map[CallbackID]Callback)}
}

func (r *registry) add(cb Callback) CallbackID {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	r.callbacks[id] = cb
	return id
}

func (r *registry) remove(id CallbackID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.callbacks[id]; !ok {
		return fmt.Errorf("callback id %d: %w", id, ErrCallbackNotFound)
	}
	delete(r.callbacks, id)
	return nil
}

func (r *registry) clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks = make(map[CallbackID]Callback)
}

// dispatch invokes every registered callback with the event, holding the
// lock for the duration. Iteration order is not defined; callbacks must be
// fast and non-blocking or they stall dispatch for everyone.
func (r *registry) dispatch(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cb := range r.callbacks {
		cb(ev)
	}
}
