package param

import (
	"fmt"
	"sync"
)

// Registry manages plugin parameters. It is meant for the control side;
// the audio thread must not touch it.
type Registry struct {
	params      map[uint32]*Parameter
	identifiers map[string]uint32
	order       []uint32 // Maintain order for indexed access
	mu          sync.RWMutex
}

// NewRegistry creates a new parameter registry
func NewRegistry() *Registry {
	return &Registry{
		params:      make(map[uint32]*Parameter),
		identifiers: make(map[string]uint32),
		order:       make([]uint32, 0),
	}
}

// Add registers new parameters. A duplicate ID or identifier is an error.
func (r *Registry) Add(params ...*Parameter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range params {
		if existing, exists := r.params[p.ID]; exists {
			return fmt.Errorf("parameter ID %d already used by '%s'", p.ID, existing.Name)
		}
		if p.Identifier != "" {
			if _, exists := r.identifiers[p.Identifier]; exists {
				return fmt.Errorf("parameter identifier %q already registered", p.Identifier)
			}
			r.identifiers[p.Identifier] = p.ID
		}
		r.params[p.ID] = p
		r.order = append(r.order, p.ID)
	}

	return nil
}

// Get retrieves a parameter by ID
func (r *Registry) Get(id uint32) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.params[id]
}

// GetByIdentifier retrieves a parameter by its string key
func (r *Registry) GetByIdentifier(identifier string) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.identifiers[identifier]
	if !ok {
		return nil
	}
	return r.params[id]
}

// GetByIndex retrieves a parameter by index
func (r *Registry) GetByIndex(index int32) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index < 0 || index >= int32(len(r.order)) {
		return nil
	}

	id := r.order[index]
	return r.params[id]
}

// Count returns the number of parameters
func (r *Registry) Count() int32 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int32(len(r.order))
}

// All returns all parameters in order
func (r *Registry) All() []*Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Parameter, len(r.order))
	for i, id := range r.order {
		result[i] = r.params[id]
	}

	return result
}
