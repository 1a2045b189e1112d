package store

import (
	"sync"

	"go.uber.org/zap"
)

// Registry hands out one Store per signed-in user. Stores live for the
// session: Drop releases a user's store on logout.
type Registry struct {
	gateway Gateway
	log     *zap.Logger

	mu     sync.Mutex
	stores map[string]*Store
}

func NewRegistry(gateway Gateway, log *zap.Logger) *Registry {
	return &Registry{
		gateway: gateway,
		log:     log,
		stores:  make(map[string]*Store),
	}
}

// For returns the user's store, creating it on first use.
func (r *Registry) For(userID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.stores[userID]
	if !ok {
		s = New(userID, r.gateway, r.log)
		r.stores[userID] = s
	}
	return s
}

// Drop discards the user's store.
func (r *Registry) Drop(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.stores, userID)
}
