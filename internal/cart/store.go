package cart

import (
	"sync"

	"github.com/google/uuid"
)

// Store holds one cart and applies actions to it synchronously.
// It is meant for a single consumer and does no locking.
type Store struct {
	state State
}

// NewStore creates a Store with an empty cart.
func NewStore() *Store {
	return &Store{state: Empty()}
}

// Dispatch applies action and returns the resulting state.
func (s *Store) Dispatch(action Action) State {
	s.state = Reduce(s.state, action)
	return s.State()
}

// State returns a copy of the current cart.
func (s *Store) State() State {
	return s.state.clone()
}

func (s *Store) Add(item Item, quantity int) State {
	return s.Dispatch(Add{Item: item, Quantity: quantity})
}

func (s *Store) Remove(id int) State {
	return s.Dispatch(Remove{ID: id})
}

func (s *Store) UpdateQuantity(id, quantity int) State {
	return s.Dispatch(UpdateQuantity{ID: id, Quantity: quantity})
}

func (s *Store) Clear() State {
	return s.Dispatch(Clear{})
}

// Registry keeps one Store per storefront session.
type Registry struct {
	mu     sync.Mutex
	stores map[string]*Store
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{stores: make(map[string]*Store)}
}

// Create opens a new empty cart and returns its id.
func (r *Registry) Create() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.New().String()
	r.stores[id] = NewStore()
	return id
}

// Get returns the current state of cart id.
func (r *Registry) Get(id string) (State, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	store, ok := r.stores[id]
	if !ok {
		return State{}, false
	}
	return store.State(), true
}

// Dispatch applies action to cart id while holding the registry lock.
func (r *Registry) Dispatch(id string, action Action) (State, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	store, ok := r.stores[id]
	if !ok {
		return State{}, false
	}
	return store.Dispatch(action), true
}

// Delete forgets cart id. It reports whether the cart existed.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.stores[id]; !ok {
		return false
	}
	delete(r.stores, id)
	return true
}
